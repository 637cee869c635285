package api

import (
	"net/http" // HTTP status codes

	"artisan_market/internal/apperr"  // Error classification
	"artisan_market/internal/service" // Listing use cases
	"artisan_market/internal/utils"   // ID parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// CreateArtRequest represents a new listing
type CreateArtRequest struct {
	Title       string  `json:"title" binding:"required,max=255"`
	Description string  `json:"description"`
	Price       float64 `json:"price" binding:"required,gt=0"`
	Category    string  `json:"category" binding:"required,category"`
	ImageURL    string  `json:"imageUrl" binding:"required,url"`
}

// UpdateArtRequest represents a partial listing update
type UpdateArtRequest struct {
	Title       *string  `json:"title" binding:"omitempty,max=255"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" binding:"omitempty,gt=0"`
	Category    *string  `json:"category" binding:"omitempty,category"`
	ImageURL    *string  `json:"imageUrl" binding:"omitempty,url"`
}

// ListArtHandler returns every listing, newest first
func ListArtHandler(arts *service.ArtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		rows, err := arts.List(c.Request.Context())
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, rows)
	}
}

// GetArtHandler returns one listing with its artist and related listings
func GetArtHandler(arts *service.ArtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := utils.ParseID(c.Param("id")) // Parse listing id
		if !ok {
			respondError(c, apperr.NotFound("Artwork not found"))
			return
		}
		page, err := arts.Page(c.Request.Context(), id)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// CreateArtHandler lists a new artwork for the signed-in artist
func CreateArtHandler(arts *service.ArtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		var req CreateArtRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("Missing required fields"))
			return
		}
		art, err := arts.Create(c.Request.Context(), artistID, service.ArtInput{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusCreated, gin.H{"message": "Artwork created successfully", "art": art})
	}
}

// UpdateArtHandler edits a listing owned by the signed-in artist
func UpdateArtHandler(arts *service.ArtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		id, ok := utils.ParseID(c.Param("id")) // Parse listing id
		if !ok {
			respondError(c, apperr.NotFound("Artwork not found"))
			return
		}
		var req UpdateArtRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("Invalid request"))
			return
		}
		art, err := arts.Update(c.Request.Context(), artistID, id, service.ArtUpdate{
			Title:       req.Title,
			Description: req.Description,
			Price:       req.Price,
			Category:    req.Category,
			ImageURL:    req.ImageURL,
		})
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Artwork updated successfully", "art": art})
	}
}

// DeleteArtHandler removes a listing owned by the signed-in artist
func DeleteArtHandler(arts *service.ArtService) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		id, ok := utils.ParseID(c.Param("id")) // Parse listing id
		if !ok {
			respondError(c, apperr.NotFound("Artwork not found"))
			return
		}
		if err := arts.Delete(c.Request.Context(), artistID, id); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Artwork deleted successfully"})
	}
}
