package router

import (
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/givebridge/givebridge/internal/handlers"
	"github.com/givebridge/givebridge/internal/middleware"
	"github.com/givebridge/givebridge/internal/types"
)

func NewRouter(uploadsDir string) *gin.Engine {
	r := gin.Default()

	r.Use(cors.New(cors.Config{
		AllowOrigins:     types.AllowedOrigins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "HEAD", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	if uploadsDir != "" {
		r.Static("/uploads", uploadsDir)
	}

	r.GET("/api/health", handlers.HealthCheck)

	// User accounts
	r.POST("/register", handlers.RegisterUser)
	r.POST("/login", handlers.LoginUser)
	r.GET("/me", middleware.AuthMiddleware(), handlers.Me)
	r.PUT("/edit-profile", handlers.UpdateProfile)

	// NGO accounts
	r.POST("/ngo/register", handlers.RegisterNgo)
	r.POST("/ngo/login", handlers.LoginNgo)
	r.GET("/ngo/me", middleware.AuthMiddleware(), handlers.NgoMe)
	r.GET("/ngos", handlers.ListNgos)

	// Donations
	r.POST("/donate", handlers.CreateDonation)
	r.GET("/donations", handlers.ListUserDonations)
	r.GET("/donation/:id", handlers.GetDonation)
	r.PUT("/donations/:id/status", handlers.UpdateDonationStatus)
	r.GET("/ngo/:id/donations", handlers.ListNgoDonations)

	// Volunteering
	r.POST("/volunteer/join", handlers.JoinNgo)
	r.GET("/volunteer/my-requests/:userId", handlers.MyVolunteerRequests)
	r.PUT("/volunteer/:id/status", handlers.UpdateVolunteerStatus)
	r.DELETE("/volunteer/:id/cancel", handlers.CancelVolunteerRequest)
	r.GET("/ngo/:id/volunteer-requests", handlers.ListNgoVolunteerRequests)
	r.GET("/ngo/:id/volunteers", handlers.ListNgoVolunteers)

	// NGO dashboard
	r.GET("/ngo/:id/stats", handlers.NgoStats)

	return r
}
