package domain

import "time"

// Wishlist Model, one per user
type Wishlist struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	UserID    uint           `gorm:"uniqueIndex;not null" json:"userId"`
	Items     []WishlistItem `gorm:"foreignKey:WishlistID;constraint:OnDelete:CASCADE" json:"items"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// WishlistItem references one listing. Uniqueness per wishlist is enforced by the service.
type WishlistItem struct {
	ID         uint `gorm:"primaryKey" json:"id"`
	WishlistID uint `gorm:"index;not null" json:"wishlistId"`
	ArtID      uint `gorm:"index;not null" json:"artId"`
}

// Contains reports whether artID is already saved
func (w *Wishlist) Contains(artID uint) bool {
	for _, it := range w.Items {
		if it.ArtID == artID {
			return true
		}
	}
	return false
}
