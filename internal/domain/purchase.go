package domain

import "time"

// Purchase lifecycle statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
)

// Shipping statuses, in the only order they may advance
const (
	ShippingProcessing = "processing"
	ShippingShipped    = "shipped"
	ShippingDelivered  = "delivered"
)

// Payment methods
const (
	PaymentCOD    = "cod"
	PaymentOnline = "online"
)

// DeliveryWindow is added to the creation time to estimate delivery
const DeliveryWindow = 7 * 24 * time.Hour

// ShippingRank orders shipping statuses; unknown statuses rank -1
func ShippingRank(status string) int {
	switch status {
	case ShippingProcessing:
		return 0
	case ShippingShipped:
		return 1
	case ShippingDelivered:
		return 2
	}
	return -1
}

// ShippingAddress is embedded verbatim into each purchase
type ShippingAddress struct {
	FullName     string `gorm:"size:191" json:"fullName"`
	Phone        string `gorm:"size:32" json:"phone"`
	AddressLine1 string `gorm:"size:255" json:"addressLine1"`
	AddressLine2 string `gorm:"size:255" json:"addressLine2"`
	City         string `gorm:"size:128" json:"city"`
	State        string `gorm:"size:128" json:"state"`
	Pincode      string `gorm:"size:16" json:"pincode"`
}

// Purchase Model, one row per unit of quantity sold
type Purchase struct {
	ID                uint            `gorm:"primaryKey" json:"id"`                  // Primary key
	BatchID           string          `gorm:"size:36;index;not null" json:"batchId"` // Shared by all units of one checkout
	ArtID             uint            `gorm:"index;not null" json:"artId"`           // Listing sold
	BuyerID           uint            `gorm:"index;not null" json:"buyerId"`         // Buyer
	ArtistID          uint            `gorm:"index;not null" json:"artistId"`        // Seller
	Price             float64         `gorm:"not null" json:"price"`                 // Frozen at checkout
	ArtTitle          string          `gorm:"size:255" json:"artTitle"`              // Listing snapshot
	ArtImage          string          `gorm:"size:512" json:"artImage"`              // Listing snapshot
	ArtCategory       string          `gorm:"size:32" json:"artCategory"`            // Listing snapshot
	Status            string          `gorm:"size:16;index;default:completed" json:"status"`
	ShippingStatus    string          `gorm:"size:16;default:processing" json:"shippingStatus"`
	EstimatedDelivery time.Time       `json:"estimatedDelivery"`
	DeliveredAt       *time.Time      `json:"deliveredAt"`
	ShippingAddress   ShippingAddress `gorm:"embedded;embeddedPrefix:ship_" json:"shippingAddress"`
	PaymentMethod     string          `gorm:"size:8;default:cod" json:"paymentMethod"`
	CreatedAt         time.Time       `json:"createdAt"`
	UpdatedAt         time.Time       `json:"updatedAt"`
}
