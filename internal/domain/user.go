package domain

import "time"

// Roles a user can hold
const (
	RoleArtist = "artist"
	RoleBuyer  = "buyer"
)

// DefaultAvatar is shown until a user uploads their own
const DefaultAvatar = "https://images.unsplash.com/photo-1511367461989-f85a21fda167?q=80&w=800&auto=format&fit=crop"

// User Model
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`                       // Primary key
	Name      string    `gorm:"size:191;not null" json:"name"`              // Full name
	Email     string    `gorm:"size:191;uniqueIndex;not null" json:"email"` // Unique lowercase email
	Password  string    `gorm:"not null" json:"-"`                          // Hashed password, never serialized
	Role      string    `gorm:"size:16;default:buyer" json:"role"`          // Role: artist or buyer
	Bio       string    `gorm:"type:text" json:"bio"`                       // Optional biography
	Avatar    string    `gorm:"size:512" json:"avatar"`                     // Avatar URL
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// IsValidRole reports whether role is one of the known roles
func IsValidRole(role string) bool {
	return role == RoleArtist || role == RoleBuyer
}
