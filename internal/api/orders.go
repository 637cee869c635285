package api

import (
	"net/http" // HTTP status codes

	"artisan_market/internal/apperr"  // Error classification
	"artisan_market/internal/service" // Order reader
	"artisan_market/internal/utils"   // ID parsing

	"github.com/gin-gonic/gin" // Gin web framework
)

// UpdateShippingRequest represents a shipping status change
type UpdateShippingRequest struct {
	ShippingStatus string `json:"shippingStatus" binding:"required"`
}

// GetOrdersHandler returns the buyer's active and past orders
func GetOrdersHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		out, err := orders.BuyerOrders(c.Request.Context(), buyerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, out)
	}
}

// UpdateShippingHandler lets the selling artist advance a unit's shipping status
func UpdateShippingHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		id, ok := utils.ParseID(c.Param("id")) // Parse purchase id
		if !ok {
			respondError(c, apperr.NotFound("Order not found"))
			return
		}
		var req UpdateShippingRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("Invalid shipping status"))
			return
		}
		p, err := orders.UpdateShipping(c.Request.Context(), artistID, id, req.ShippingStatus)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"message":        "Shipping status updated",
			"id":             p.ID,
			"shippingStatus": p.ShippingStatus,
			"deliveredAt":    p.DeliveredAt,
		})
	}
}

// ArtistStatsHandler returns the artist dashboard
func ArtistStatsHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		artistID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		stats, err := orders.ArtistStats(c.Request.Context(), artistID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// BuyerStatsHandler returns the buyer dashboard
func BuyerStatsHandler(orders *service.OrderService) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		stats, err := orders.BuyerStats(c.Request.Context(), buyerID)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}
