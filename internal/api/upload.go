package api

import (
	"errors"   // Sentinel comparison
	"net/http" // HTTP status codes

	"artisan_market/internal/apperr"  // Error classification
	"artisan_market/internal/storage" // Pluggable object storage

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// maxImageSize caps a single uploaded image
const maxImageSize = 10 << 20

// UploadImageHandler stores the multipart "file" field and returns its public URL
func UploadImageHandler(uploader storage.Uploader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		file, err := c.FormFile("file") // Read multipart field
		if err != nil {
			respondError(c, apperr.Validation("No file uploaded"))
			return
		}
		if file.Size > maxImageSize {
			respondError(c, apperr.Validation("Image must be 10MB or smaller"))
			return
		}
		ext, err := storage.DetectImage(file) // Sniff the bytes, never trust the client's type or name
		if errors.Is(err, storage.ErrNotImage) {
			respondError(c, apperr.Validation("Only image uploads are allowed"))
			return
		} else if err != nil {
			respondError(c, apperr.Internal("Failed to read image", err))
			return
		}
		url, err := uploader.UploadFile(c.Request.Context(), file, storage.ObjectPath("art", ext))
		if err != nil {
			respondError(c, apperr.Internal("Failed to upload image", err))
			return
		}
		logrus.WithFields(logrus.Fields{
			"user_id": userID,    // Uploader
			"url":     url,       // Stored location
			"size":    file.Size, // Bytes
		}).Info("Image uploaded")
		c.JSON(http.StatusOK, gin.H{"message": "Image uploaded successfully", "secure_url": url})
	}
}
