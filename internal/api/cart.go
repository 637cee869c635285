package api

import (
	"net/http" // HTTP status codes

	"artisan_market/internal/apperr"  // Error classification
	"artisan_market/internal/service" // Cart and wishlist mutators
	"artisan_market/internal/utils"   // ID parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// ArtRefRequest names a listing to add to the cart or wishlist
type ArtRefRequest struct {
	ArtID uint `json:"artId" binding:"required"` // Listing id
}

// UpdateQuantityRequest represents a cart quantity change
type UpdateQuantityRequest struct {
	Quantity int `json:"quantity"` // New quantity, at least 1
}

// GetCartHandler returns the user's cart
func GetCartHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		view, err := cart.Get(c.Request.Context(), userID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"cart": view})
	}
}

// AddToCartHandler adds one unit of a listing
func AddToCartHandler(cart *service.CartService) gin.HandlerFunc {
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
		view, err := cart.Add(c.Request.Context(), userID, req.ArtID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item added to cart", "cart": view})
	}
}

// UpdateCartItemHandler sets the quantity of a cart line
func UpdateCartItemHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		artID, ok := utils.ParseID(c.Param("artId")) // Parse listing id
		if !ok {
			respondError(c, apperr.NotFound("Item not found in cart"))
			return
		}
		var req UpdateQuantityRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("Quantity must be at least 1"))
			return
		}
		view, err := cart.UpdateQuantity(c.Request.Context(), userID, artID, req.Quantity)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Quantity updated", "cart": view})
	}
}

// RemoveCartItemHandler drops a cart line
func RemoveCartItemHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		artID, ok := utils.ParseID(c.Param("artId")) // Parse listing id
		if !ok {
			respondError(c, apperr.NotFound("Item not found in cart"))
			return
		}
		view, err := cart.Remove(c.Request.Context(), userID, artID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart", "cart": view})
	}
}

// ClearCartHandler empties the cart
func ClearCartHandler(cart *service.CartService) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		if err := cart.Clear(c.Request.Context(), userID); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
	}
}
