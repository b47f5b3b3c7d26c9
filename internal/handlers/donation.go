package handlers

import (
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/givebridge/givebridge/db"
	"github.com/givebridge/givebridge/internal/models"
	"github.com/givebridge/givebridge/internal/storage"
	"github.com/givebridge/givebridge/internal/types"
	"github.com/givebridge/givebridge/internal/utils"
	"gorm.io/gorm"
)

type DonationSummary struct {
	ID        uint      `json:"id"`
	UserID    uint      `json:"user_id"`
	NgoID     uint      `json:"ngo_id"`
	Category  string    `json:"category"`
	Quantity  int       `json:"quantity"`
	Address   string    `json:"address"`
	Notes     string    `json:"notes"`
	Photo     string    `json:"photo"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UserName  string    `json:"user_name,omitempty"`
	UserEmail string    `json:"user_email,omitempty"`
	NgoName   string    `json:"ngo_name,omitempty"`
	NgoEmail  string    `json:"ngo_email,omitempty"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// CreateDonation accepts a multipart form with the donation fields and
// a mandatory photo. The photo upload must complete before the row is
// inserted; an insert failure after a successful upload may leave an
// orphaned file behind.
func CreateDonation(ctx *gin.Context) {
	userID, err := utils.ParseID(ctx.PostForm("user_id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	ngoID, err := utils.ParseID(ctx.PostForm("ngo_id"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid NGO ID"})
		return
	}

	category := ctx.PostForm("category")
	address := ctx.PostForm("address")
	notes := ctx.PostForm("notes")

	if category == "" || address == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All required fields are needed"})
		return
	}

	quantity, err := strconv.Atoi(ctx.PostForm("quantity"))

	if err != nil || quantity <= 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Quantity must be a positive number"})
		return
	}

	var user models.User

	if err := db.DB.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "User not found"})
		} else {
			log.Printf("Failed to fetch user: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	var ngo models.Ngo

	if err := db.DB.First(&ngo, ngoID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "NGO not found"})
		} else {
			log.Printf("Failed to fetch NGO: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	header, err := ctx.FormFile("photo")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Photo is required"})
		return
	}

	if header.Size > storage.MaxPhotoSize {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Photo must be 5MB or smaller"})
		return
	}

	file, err := header.Open()

	if err != nil {
		log.Printf("Failed to open uploaded photo: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	defer file.Close()

	// Sniff the real content type instead of trusting the part header.
	buf := make([]byte, 512)
	n, err := file.Read(buf)

	if err != nil && n == 0 {
		log.Printf("Failed to read uploaded photo: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	contentType := http.DetectContentType(buf[:n])

	if !storage.AllowedContentType(contentType) {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Photo must be a JPEG or PNG image"})
		return
	}

	if _, err := file.Seek(0, 0); err != nil {
		log.Printf("Failed to rewind uploaded photo: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	photoRef, err := storage.Photos.Save(ctx.Request.Context(), storage.NewObjectName(header.Filename), file, header.Size, contentType)

	if err != nil {
		log.Printf("Failed to store photo: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Failed to store photo"})
		return
	}

	donation := models.Donation{
		UserID:   user.ID,
		NgoID:    ngo.ID,
		Category: category,
		Quantity: quantity,
		Address:  address,
		Notes:    notes,
		Photo:    photoRef,
		Status:   types.StatusPending,
	}

	if err := db.DB.Create(&donation).Error; err != nil {
		log.Printf("Failed to create donation: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusCreated, gin.H{
		"success":  true,
		"message":  "Donation submitted successfully",
		"donation": donationSummary(donation, nil, &ngo),
	})
}

func ListUserDonations(ctx *gin.Context) {
	userID, err := utils.ParseID(ctx.Query("userId"))

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid user ID"})
		return
	}

	var donations []models.Donation

	if err := db.DB.Preload("Ngo").
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		log.Printf("Failed to list donations for user %d: %v", userID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	summaries := make([]DonationSummary, 0, len(donations))

	for _, donation := range donations {
		summaries = append(summaries, donationSummary(donation, nil, &donation.Ngo))
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "donations": summaries})
}

func ListNgoDonations(ctx *gin.Context) {
	ngoID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid NGO ID"})
		return
	}

	var donations []models.Donation

	if err := db.DB.Preload("User").
		Where("ngo_id = ?", ngoID).
		Order("created_at DESC").
		Find(&donations).Error; err != nil {
		log.Printf("Failed to list donations for NGO %d: %v", ngoID, err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	summaries := make([]DonationSummary, 0, len(donations))

	for _, donation := range donations {
		summaries = append(summaries, donationSummary(donation, &donation.User, nil))
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "donations": summaries})
}

func GetDonation(ctx *gin.Context) {
	donationID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid donation ID"})
		return
	}

	var donation models.Donation

	if err := db.DB.Preload("Ngo").First(&donation, donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Donation not found"})
		} else {
			log.Printf("Failed to fetch donation: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":  true,
		"donation": donationSummary(donation, nil, &donation.Ngo),
	})
}

// UpdateDonationStatus overwrites the status unconditionally; any of
// the three states is reachable from any other.
func UpdateDonationStatus(ctx *gin.Context) {
	donationID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid donation ID"})
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

	var donation models.Donation

	if err := db.DB.First(&donation, donationID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Donation not found"})
		} else {
			log.Printf("Failed to fetch donation: %v", err)
			ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		}
		return
	}

	if err := db.DB.Model(&donation).Update("status", req.Status).Error; err != nil {
		log.Printf("Failed to update donation status: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "message": "Donation status updated"})
}

func donationSummary(donation models.Donation, user *models.User, ngo *models.Ngo) DonationSummary {
	summary := DonationSummary{
		ID:        donation.ID,
		UserID:    donation.UserID,
		NgoID:     donation.NgoID,
		Category:  donation.Category,
		Quantity:  donation.Quantity,
		Address:   donation.Address,
		Notes:     donation.Notes,
		Photo:     donation.Photo,
		Status:    donation.Status,
		CreatedAt: donation.CreatedAt,
	}

	if user != nil {
		summary.UserName = user.Name
		summary.UserEmail = user.Email
	}

	if ngo != nil {
		summary.NgoName = ngo.Name
		summary.NgoEmail = ngo.Email
	}

	return summary
}
