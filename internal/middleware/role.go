package middleware

import (
	"errors"   // Error inspection
	"net/http" // HTTP status codes

	"artisan_market/internal/repository" // User lookups

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// RequireRole checks the user's role from the database on each request,
// so a role switched through the profile takes effect immediately
func RequireRole(users repository.UserRepository, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, exists := c.Get("userID") // Get userID from context
		// Check if userID exists in context
		if !exists {
			// If not, abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		user, err := users.FindByID(c.Request.Context(), userID.(uint)) // Fetch user from database
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				// Token outlived its user
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
				return
			}
			logrus.WithFields(logrus.Fields{
				"user_id": userID,      // Requesting user
				"error":   err.Error(), // Error message
			}).Error("Role lookup failed")
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"message": "Internal server error"})
			return
		}
		// Check if user holds the required role
		if user.Role != role {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"message": "Access denied. " + capitalize(role) + "s only."})
			return
		}
		c.Set("role", user.Role) // Stored role wins over the token claim
		c.Next()
	}
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return string(s[0]-'a'+'A') + s[1:]
}
