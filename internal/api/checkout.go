package api

import (
	"net/http" // HTTP status codes

	"artisan_market/internal/apperr"  // Error classification
	"artisan_market/internal/domain"  // Domain models
	"artisan_market/internal/service" // Checkout pipeline

	"github.com/gin-gonic/gin" // Gin web framework
)

// CheckoutItemRequest is one cart line as the client shows it
type CheckoutItemRequest struct {
	ID         uint    `json:"id"`                         // Listing id
	Quantity   int     `json:"quantity" binding:"lte=100"` // Units ordered, at most domain.MaxLineQuantity
	Price      float64 `json:"price"`                      // Unit price displayed to the buyer
	Title      string  `json:"title"`                      // Display only
	ArtistName string  `json:"artistName"`                 // Display only
	Image      string  `json:"image"`                      // Display only
}

// ShippingAddressRequest is the delivery address entered at checkout
type ShippingAddressRequest struct {
	FullName     string `json:"fullName"`
	Phone        string `json:"phone" binding:"omitempty,phone"`
	AddressLine1 string `json:"addressLine1"`
	AddressLine2 string `json:"addressLine2"`
	City         string `json:"city"`
	State        string `json:"state"`
	Pincode      string `json:"pincode" binding:"omitempty,pincode"`
}

// CheckoutRequest represents a checkout request
type CheckoutRequest struct {
	Items           []CheckoutItemRequest  `json:"items" binding:"dive"`
	ShippingAddress ShippingAddressRequest `json:"shippingAddress"`
	PaymentMethod   string                 `json:"paymentMethod"` // cod (default) or online
}

// CreatePaymentOrderRequest represents a payment intent request
type CreatePaymentOrderRequest struct {
	Amount float64 `json:"amount"` // Major currency units
}

// VerifyPaymentRequest accepts both plain and gateway-prefixed field names
type VerifyPaymentRequest struct {
	OrderID           string                 `json:"order_id"`
	PaymentID         string                 `json:"payment_id"`
	Signature         string                 `json:"signature"`
	RazorpayOrderID   string                 `json:"razorpay_order_id"`
	RazorpayPaymentID string                 `json:"razorpay_payment_id"`
	RazorpaySignature string                 `json:"razorpay_signature"`
	Items             []CheckoutItemRequest  `json:"items" binding:"dive"`
	ShippingAddress   ShippingAddressRequest `json:"shippingAddress"`
}

func (r ShippingAddressRequest) toDomain() domain.ShippingAddress {
	return domain.ShippingAddress{
		FullName:     r.FullName,
		Phone:        r.Phone,
		AddressLine1: r.AddressLine1,
		AddressLine2: r.AddressLine2,
		City:         r.City,
		State:        r.State,
		Pincode:      r.Pincode,
	}
}

func toCheckoutRequest(buyerID uint, items []CheckoutItemRequest, addr ShippingAddressRequest) service.CheckoutRequest {
	lines := make([]service.CheckoutLine, len(items))
	for i, it := range items {
		lines[i] = service.CheckoutLine{ArtID: it.ID, Quantity: it.Quantity, Price: it.Price}
	}
	return service.CheckoutRequest{BuyerID: buyerID, Lines: lines, ShippingAddress: addr.toDomain()}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// CheckoutHandler places a cash-on-delivery order
func CheckoutHandler(checkout *service.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		var req CheckoutRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			// If invalid, return bad request
			respondError(c, apperr.Validation("Invalid request"))
			return
		}
		// Online orders only exist after the gateway signature is verified
		switch req.PaymentMethod {
		case "", domain.PaymentCOD:
		case domain.PaymentOnline:
			respondError(c, apperr.Validation("Online payments must be completed through /api/payment/verify-payment"))
			return
		default:
			respondError(c, apperr.Validation("Invalid payment method"))
			return
		}
		// Resolve lines and write one purchase per unit
		if _, err := checkout.PlaceCOD(c.Request.Context(), toCheckoutRequest(buyerID, req.Items, req.ShippingAddress)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Order placed successfully", "success": true})
	}
}

// CreatePaymentOrderHandler opens a gateway order the client pays against
func CreatePaymentOrderHandler(checkout *service.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		var req CreatePaymentOrderRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("Invalid amount"))
			return
		}
		intent, err := checkout.CreatePaymentIntent(c.Request.Context(), buyerID, req.Amount)
		if err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{
			"success":  true,            // Intent created
			"orderId":  intent.OrderID,  // Gateway order id
			"amount":   intent.Amount,   // Minor units
			"currency": intent.Currency, // Always INR
			"key":      intent.Key,      // Publishable key id
		})
	}
}

// VerifyPaymentHandler verifies the gateway signature and places the order
func VerifyPaymentHandler(checkout *service.CheckoutService) gin.HandlerFunc {
	return func(c *gin.Context) {
		buyerID, ok := currentUserID(c) // Get userID from context
		if !ok {
			abortUnauthenticated(c)
			return
		}
		var req VerifyPaymentRequest // Bind JSON request to struct
		if err := c.ShouldBindJSON(&req); err != nil {
			respondError(c, apperr.Validation("Invalid request"))
			return
		}
		proof := service.PaymentProof{
			IntentID:      firstNonEmpty(req.OrderID, req.RazorpayOrderID),
			TransactionID: firstNonEmpty(req.PaymentID, req.RazorpayPaymentID),
			Signature:     firstNonEmpty(req.Signature, req.RazorpaySignature),
		}
		// Nothing is written unless the signature matches
		if _, err := checkout.VerifyAndPlace(c.Request.Context(), proof, toCheckoutRequest(buyerID, req.Items, req.ShippingAddress)); err != nil {
			respondError(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": "Payment verified and order placed successfully", "success": true})
	}
}
