package api

import (
	"net/http" // HTTP status codes

	"artisan_market/internal/apperr"  // Error classification
	"artisan_market/internal/service" // Wishlist mutator
	"artisan_market/internal/utils"   // ID parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// GetWishlistHandler returns the user's wishlist
func GetWishlistHandler(wishlist *service.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		view, err := wishlist.Get(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"wishlist": view})
	}
}

// AddToWishlistHandler saves a listing
func AddToWishlistHandler(wishlist *service.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		var req ArtRefRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("Art ID is required"))
			return
		}
		view, err := wishlist.Add(c.Request.Context(), userID, req.ArtID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item added to wishlist", "wishlist": view})
	}
}

// RemoveWishlistItemHandler forgets a saved listing
func RemoveWishlistItemHandler(wishlist *service.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		artID, ok := utils.ParseID(c.Param("artId")) // Parse listing id
		if !ok {
			respondError(c, apperr.Validation("Invalid art ID"))
			return
		}
		view, err := wishlist.Remove(c.Request.Context(), userID, artID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from wishlist", "wishlist": view})
	}
}

// ClearWishlistHandler empties the wishlist
func ClearWishlistHandler(wishlist *service.WishlistService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		if err := wishlist.Clear(c.Request.Context(), userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Wishlist cleared"})
	}
}
