package domain

import "time"

// MaxLineQuantity caps the units of one art in a single checkout
const MaxLineQuantity = 100

// Cart Model, one per user
type Cart struct {
	ID        uint       `gorm:"primaryKey" json:"id"`                                       // Primary key
	UserID    uint       `gorm:"uniqueIndex;not null" json:"userId"`                         // Owner, one cart per user
	Items     []CartItem `gorm:"foreignKey:CartID;constraint:OnDelete:CASCADE" json:"items"` // Lines
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// CartItem is one (art, quantity) line of a cart. A cart holds at most one line per art.
type CartItem struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	CartID   uint `gorm:"uniqueIndex:idx_cart_items_cart_art;not null" json:"cartId"`
	ArtID    uint `gorm:"uniqueIndex:idx_cart_items_cart_art;not null" json:"artId"`
	Quantity int  `gorm:"not null;default:1" json:"quantity"` // Always >= 1
}

// Find returns the line holding artID, or nil
func (c *Cart) Find(artID uint) *CartItem {
	for i := range c.Items {
		if c.Items[i].ArtID == artID {
			return &c.Items[i]
		}
	}
	return nil
}
