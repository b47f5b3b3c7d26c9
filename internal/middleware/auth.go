package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/givebridge/givebridge/db"
	"github.com/givebridge/givebridge/internal/auth"
	"github.com/givebridge/givebridge/internal/models"
	"github.com/givebridge/givebridge/internal/types"
	"github.com/golang-jwt/jwt/v5"
)

// AuthenticatedAccount is the identity resolved from a verified token,
// either a user or an NGO depending on Role.
type AuthenticatedAccount struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
	Role  string `json:"role"`
}

func AuthMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		tokenString := extractToken(ctx)

		if tokenString == "" {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Authorization token is required"})
			return
		}

		token, err := auth.VerifyJWT(tokenString)

		if err != nil || !token.Valid {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid or expired token"})
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid token claims"})
			return
		}

		idFloat, ok := claims["id"].(float64)

		if !ok {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Invalid account ID in token claims"})
			return
		}

		role, _ := claims["role"].(string)
		id := uint(idFloat)

		account, err := resolveAccount(id, role)

		if err != nil {
			ctx.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"success": false, "message": "Account not found"})
			return
		}

		ctx.Set(types.ContextUserKey, account)
		ctx.Next()
	}
}

func resolveAccount(id uint, role string) (AuthenticatedAccount, error) {
	switch role {
	case types.RoleNgo:
		var ngo models.Ngo
		if err := db.DB.Where("id = ?", id).First(&ngo).Error; err != nil {
			return AuthenticatedAccount{}, err
		}
		return AuthenticatedAccount{ID: ngo.ID, Name: ngo.Name, Email: ngo.Email, Role: types.RoleNgo}, nil
	default:
		var user models.User
		if err := db.DB.Where("id = ?", id).First(&user).Error; err != nil {
			return AuthenticatedAccount{}, err
		}
		return AuthenticatedAccount{ID: user.ID, Name: user.Name, Email: user.Email, Role: types.RoleUser}, nil
	}
}

func extractToken(ctx *gin.Context) string {
	authHeader := ctx.GetHeader("Authorization")

	if authHeader != "" {
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && parts[0] == "Bearer" {
			return parts[1]
		}
		return ""
	}

	if cookie, err := ctx.Cookie("token"); err == nil {
		return cookie
	}

	return ""
}
