package api

import (
	"net/http" // HTTP status codes

	"artisan_market/internal/apperr"     // Error classification
	"artisan_market/internal/middleware" // Session extraction
	"artisan_market/internal/service"    // Profile use cases

	"github.com/gin-gonic/gin" // Gin web framework
)

// UpdateProfileRequest represents a partial profile update
type UpdateProfileRequest struct {
	Name   *string `json:"name" binding:"omitempty,max=191"`
	Bio    *string `json:"bio"`
	Avatar *string `json:"avatar" binding:"omitempty,url"`
	Role   *string `json:"role"`
}

// AuthStatusHandler reports whether the request carries a valid session. It never fails.
func AuthStatusHandler(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		_, err := middleware.ReadSession(c, secret)
		c.JSON(http.StatusOK, gin.H{"isAuthenticated": err == nil})
	}
}

// GetProfileHandler returns the signed-in user
func GetProfileHandler(profile *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		user, err := profile.Me(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"user": user})
	}
}

// UpdateProfileHandler edits name, bio, avatar and role
func UpdateProfileHandler(profile *service.ProfileService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		var req UpdateProfileRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("Invalid request"))
			return
		}
		user, err := profile.Update(c.Request.Context(), userID, service.ProfileUpdate{
			Name:   req.Name,
			Bio:    req.Bio,
			Avatar: req.Avatar,
			Role:   req.Role,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
	}
}
