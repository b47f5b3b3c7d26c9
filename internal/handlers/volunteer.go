package handlers

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/givebridge/givebridge/db"
	"github.com/givebridge/givebridge/internal/models"
	"github.com/givebridge/givebridge/internal/types"
	"github.com/givebridge/givebridge/internal/utils"
	"gorm.io/gorm"
)

type JoinNgoRequest struct {
	UserID uint `json:"userId" binding:"required"`
	NgoID  uint `json:"ngoId" binding:"required"`
}

type VolunteerRequestSummary struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	NgoID     uint      `json:"ngo_id"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
	NgoName   string    `json:"ngo_name,omitempty"`
}

// JoinNgo files a volunteer request. A pair that already has a request
// on record is rejected no matter what state that request is in.
func JoinNgo(ctx *gin.Context) {
	var req JoinNgoRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "User ID and NGO ID are required"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, req.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		} else {
			log.Printf("Failed to fetch user: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	var ngo models.Ngo

	if err := db.DB.First(&ngo, req.NgoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "NGO not found"})
		} else {
			log.Printf("Failed to fetch NGO: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	var existing models.VolunteerRequest

	err := db.DB.Where("user_id = ? AND ngo_id = ?", req.UserID, req.NgoID).First(&existing).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Request already sent"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing request: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	request := models.VolunteerRequest{
		UserID: req.UserID,
		NgoID:  req.NgoID,
		Status: types.StatusPending,
	}

	if err := db.DB.Create(&request).Error; err != nil {
		log.Printf("Failed to create volunteer request: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"message": "Volunteer request sent successfully",
		"request": volunteerSummary(request, &user, &ngo),
	})
}

// ListNgoVolunteerRequests returns the requests awaiting review.
func ListNgoVolunteerRequests(ctx *gin.Context) {
	listNgoVolunteers(ctx, types.StatusPending)
}

// ListNgoVolunteers returns the approved volunteers of an NGO.
func ListNgoVolunteers(ctx *gin.Context) {
	listNgoVolunteers(ctx, types.StatusApproved)
}

func listNgoVolunteers(ctx *gin.Context, status string) {
	ngoID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid NGO ID"})
		return
	}

	var requests []models.VolunteerRequest

	if err := db.DB.Preload("User").
		Where("ngo_id = ? AND status = ?", ngoID, status).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		log.Printf("Failed to list volunteer requests for NGO %d: %v", ngoID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	summaries := make([]VolunteerRequestSummary, 0, len(requests))

	for _, request := range requests {
		summaries = append(summaries, volunteerSummary(request, &request.User, nil))
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "requests": summaries})
}

func MyVolunteerRequests(ctx *gin.Context) {
	userID, err := utils.GetIDParam(ctx, "userId")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	var requests []models.VolunteerRequest

	if err := db.DB.Preload("Ngo").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&requests).Error; err != nil {
		log.Printf("Failed to list volunteer requests for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	summaries := make([]VolunteerRequestSummary, 0, len(requests))

	for _, request := range requests {
		summaries = append(summaries, volunteerSummary(request, nil, &request.Ngo))
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "requests": summaries})
}

// UpdateVolunteerStatus shares the unrestricted transition policy of
// donations.
func UpdateVolunteerStatus(ctx *gin.Context) {
	requestID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request ID"})
		return
	}

	var req UpdateStatusRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status is required"})
		return
	}

	if !types.ValidStatus(req.Status) {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Status must be Pending, Approved or Rejected"})
		return
	}

	var request models.VolunteerRequest

	if err := db.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Volunteer request not found"})
		} else {
			log.Printf("Failed to fetch volunteer request: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	if err := db.DB.Model(&request).Update("status", req.Status).Error; err != nil {
		log.Printf("Failed to update volunteer request status: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Volunteer request status updated"})
}

// CancelVolunteerRequest removes a request for good. Only a request
// still in Pending may be cancelled.
func CancelVolunteerRequest(ctx *gin.Context) {
	requestID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid request ID"})
		return
	}

	var request models.VolunteerRequest

	if err := db.DB.First(&request, requestID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Volunteer request not found"})
		} else {
			log.Printf("Failed to fetch volunteer request: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	if request.Status != types.StatusPending {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Only pending requests can be cancelled"})
		return
	}

	if err := db.DB.Unscoped().Delete(&request).Error; err != nil {
		log.Printf("Failed to delete volunteer request: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Volunteer request cancelled"})
}

func volunteerSummary(request models.VolunteerRequest, user *models.User, ngo *models.Ngo) VolunteerRequestSummary {
	summary := VolunteerRequestSummary{
		ID:        request.ID,
		UserID:    request.UserID,
		NgoID:     request.NgoID,
		Status:    request.Status,
		CreatedAt: request.CreatedAt,
	}

	if user != nil {
		summary.UserName = user.Name
		summary.UserEmail = user.Email
	}

	if ngo != nil {
		summary.NgoName = ngo.Name
	}

	return summary
}
