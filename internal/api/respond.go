package api

import (
	"sync" // One-time validator registration

	"artisan_market/internal/apperr" // Error classification
	"artisan_market/internal/utils"  // Custom validators

	"github.com/gin-gonic/gin"               // Gin web framework
	"github.com/gin-gonic/gin/binding"       // Gin binding engine
	"github.com/go-playground/validator/v10" // Struct validation
	"github.com/sirupsen/logrus"             // Logging library
)

var registerOnce sync.Once

// RegisterValidators installs the custom binding tags (pincode, phone, category) on gin's validator
func RegisterValidators() {
	registerOnce.Do(func() {
		if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
			if err := utils.RegisterValidators(v); err != nil {
				logrus.Fatalf("failed to register validators: %v", err)
			}
		}
	})
}

// respondError writes the error's status and client-safe message
func respondError(c *gin.Context, err error) {
	e := apperr.As(err) // Classify the error
	// Internal errors carry a cause the client must not see
	if e.Kind == apperr.KindInternal {
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,   // HTTP method
			"path":   c.Request.URL.Path, // Request path
			"error":  err.Error(),        // Wrapped cause
		}).Error(e.Message)
	}
	c.JSON(e.Status(), gin.H{"message": e.Message})
}

// currentUserID returns the user id stored by the session middleware
func currentUserID(c *gin.Context) (uint, bool) {
	v, exists := c.Get("userID") // Get userID from context
	if !exists {
		return 0, false
	}
	id, ok := v.(uint)
	return id, ok && id != 0
}

// abortUnauthenticated writes the uniform 401
func abortUnauthenticated(c *gin.Context) {
	respondError(c, apperr.Unauthorized("Not authenticated"))
}
