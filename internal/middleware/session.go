package middleware

import (
	"net/http" // HTTP status codes
	"strings"  // String manipulation

	"artisan_market/internal/utils" // JWT utility functions

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// SessionCookie is the HTTP-only cookie the login service sets
const SessionCookie = "token"

// ReadSession extracts the session token from the cookie, falling back to a Bearer header,
// and validates it. The error is one of utils.ErrSessionAbsent, ErrSessionExpired or ErrSessionInvalid.
func ReadSession(c *gin.Context, secret string) (*utils.Claims, error) {
	tokenStr, err := c.Cookie(SessionCookie) // Prefer the cookie
	if err != nil || tokenStr == "" {
		authHeader := c.GetHeader("Authorization") // Fall back to Authorization header
		if strings.HasPrefix(authHeader, "Bearer ") {
			tokenStr = strings.TrimPrefix(authHeader, "Bearer ")
		}
	}
	return utils.ParseJWT(tokenStr, secret)
}

// SessionMiddleware validates the session token and extracts user information.
// Every failure state produces the same 401 body.
func SessionMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := ReadSession(c, secret)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"path":  c.FullPath(), // Route pattern
				"state": err.Error(),  // absent, expired or invalid
			}).Debug("Session rejected")
			// Abort with unauthorized status
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Not authenticated"})
			return
		}
		c.Set("userID", claims.UserID) // Store userID in context
		c.Set("role", claims.Role)     // Store role claim in context
		c.Next()                       // Proceed to the next handler
	}
}
