package domain

import "time"

// Categories accepted for a listing
var Categories = []string{"Painting", "Pottery", "Sculpture", "Textile", "Jewelry", "Other"}

// IsValidCategory reports whether category belongs to the closed set
func IsValidCategory(category string) bool {
	for _, c := range Categories {
		if c == category {
			return true
		}
	}
	return false
}

// Art Model, a sellable listing owned by an artist
type Art struct {
	ID          uint      `gorm:"primaryKey" json:"id"`                   // Primary key
	Title       string    `gorm:"size:255;not null" json:"title"`         // Listing title
	Description string    `gorm:"type:text" json:"description"`           // Optional description
	Price       float64   `gorm:"not null" json:"price"`                  // Current asking price
	Category    string    `gorm:"size:32;index;not null" json:"category"` // One of Categories
	ImageURL    string    `gorm:"size:512;not null" json:"imageUrl"`      // Image reference
	ArtistID    uint      `gorm:"index;not null" json:"artistId"`         // Owning artist
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
