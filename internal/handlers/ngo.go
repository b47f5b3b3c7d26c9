package handlers

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/givebridge/givebridge/db"
	"github.com/givebridge/givebridge/internal/auth"
	"github.com/givebridge/givebridge/internal/models"
	"github.com/givebridge/givebridge/internal/types"
	"github.com/givebridge/givebridge/internal/utils"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type RegisterNgoRequest struct {
	Name        string `json:"name" binding:"required"`
	Email       string `json:"email" binding:"required,email"`
	Password    string `json:"password" binding:"required,min=8"`
	Phone       string `json:"phone" binding:"required"`
	Address     string `json:"address" binding:"required"`
	Description string `json:"description"`
}

type NgoListItem struct {
	ID          uint   `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

func RegisterNgo(ctx *gin.Context) {
	var req RegisterNgoRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "All required fields are needed"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var existingNgo models.Ngo

	err := db.DB.Where("email = ?", req.Email).First(&existingNgo).Error

	if err == nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "NGO already registered"})
		return
	}

	if !errors.Is(err, gorm.ErrRecordNotFound) {
		log.Printf("Database error when checking existing NGO: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	passwordHash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)

	if err != nil {
		log.Printf("Failed to hash password: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	ngo := models.Ngo{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: string(passwordHash),
		Phone:        req.Phone,
		Address:      req.Address,
		Description:  req.Description,
	}

	if err := db.DB.Create(&ngo).Error; err != nil {
		log.Printf("Failed to create NGO: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	token, err := auth.GenerateJWT(ngo.ID, ngo.Email, types.RoleNgo)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	setTokenCookie(ctx, token)

	ctx.JSON(http.StatusCreated, gin.H{
		"success": true,
		"token":   token,
		"ngo":     ngoResponse(ngo),
	})
}

func LoginNgo(ctx *gin.Context) {
	var req LoginRequest

	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Email and password are required"})
		return
	}

	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	var ngo models.Ngo

	err := db.DB.Where("email = ?", req.Email).First(&ngo).Error

	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
			return
		}
		log.Printf("Database error when fetching NGO: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(ngo.PasswordHash), []byte(req.Password)); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid credentials"})
		return
	}

	token, err := auth.GenerateJWT(ngo.ID, ngo.Email, types.RoleNgo)

	if err != nil {
		log.Printf("Failed to generate JWT: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	setTokenCookie(ctx, token)

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"token":   token,
		"ngo":     ngoResponse(ngo),
	})
}

func NgoMe(ctx *gin.Context) {
	account, err := utils.GetCurrentAccount(ctx)

	if err != nil || account.Role != types.RoleNgo {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Not authenticated"})
		return
	}

	var ngo models.Ngo

	if err := db.DB.First(&ngo, account.ID).Error; err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"success": false, "message": "NGO not found"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success": true,
		"ngo":     ngoResponse(ngo),
	})
}

func ListNgos(ctx *gin.Context) {
	var ngos []models.Ngo

	if err := db.DB.Order("name ASC").Find(&ngos).Error; err != nil {
		log.Printf("Failed to list NGOs: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Internal server error"})
		return
	}

	items := make([]NgoListItem, 0, len(ngos))

	for _, ngo := range ngos {
		items = append(items, NgoListItem{
			ID:          ngo.ID,
			Name:        ngo.Name,
			Description: ngo.Description,
		})
	}

	ctx.JSON(http.StatusOK, gin.H{"success": true, "ngos": items})
}

// NgoStats recomputes the dashboard counters on every call with three
// conditional counts against the donation and volunteer tables.
func NgoStats(ctx *gin.Context) {
	ngoID, err := utils.GetIDParam(ctx, "id")

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Invalid NGO ID"})
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

	var approvedDonations, pendingDonations, approvedVolunteers int64

	if err := db.DB.Model(&models.Donation{}).
		Where("ngo_id = ? AND status = ?", ngoID, types.StatusApproved).
		Count(&approvedDonations).Error; err != nil {
		log.Printf("Failed to count approved donations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching stats"})
		return
	}

	if err := db.DB.Model(&models.Donation{}).
		Where("ngo_id = ? AND status = ?", ngoID, types.StatusPending).
		Count(&pendingDonations).Error; err != nil {
		log.Printf("Failed to count pending donations: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching stats"})
		return
	}

	if err := db.DB.Model(&models.VolunteerRequest{}).
		Where("ngo_id = ? AND status = ?", ngoID, types.StatusApproved).
		Count(&approvedVolunteers).Error; err != nil {
		log.Printf("Failed to count approved volunteers: %v", err)
		ctx.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Server error fetching stats"})
		return
	}

	ctx.JSON(http.StatusOK, gin.H{
		"success":        true,
		"totalDonations": approvedDonations,
		"pending":        pendingDonations,
		"volunteers":     approvedVolunteers,
	})
}

func ngoResponse(ngo models.Ngo) types.NgoResponse {
	return types.NgoResponse{
		ID:          ngo.ID,
		Name:        ngo.Name,
		Email:       ngo.Email,
		Phone:       ngo.Phone,
		Address:     ngo.Address,
		Description: ngo.Description,
	}
}
