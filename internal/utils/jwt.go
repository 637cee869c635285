package utils

import (
	"errors" // Error values for session states
	"time"   // Time for token expiration

	"github.com/golang-jwt/jwt/v5" // JWT library
)

// SessionTTL matches the lifetime of the session cookie issued at login
const SessionTTL = 7 * 24 * time.Hour

// Session token failure states. Callers surface all of them as the same 401.
var (
	ErrSessionAbsent  = errors.New("session token absent")
	ErrSessionExpired = errors.New("session token expired")
	ErrSessionInvalid = errors.New("session token invalid")
)

// JWT Claims
type Claims struct {
	UserID               uint   `json:"id"`   // User ID
	Role                 string `json:"role"` // Role at the time the token was minted
	jwt.RegisteredClaims                      // Standard JWT claims
}

// GenerateJWT creates a session token for a given user
func GenerateJWT(userID uint, role, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	// Set token claims
	claims := Claims{
		UserID: userID, // Custom claim for user ID
		Role:   role,   // Custom claim for role
		// Standard claims
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)), // Token expiry
			IssuedAt:  jwt.NewNumericDate(now),          // Issued at current time
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims) // Create token with claims
	return token.SignedString([]byte(secret))                  // Sign the token with the secret
}

// ParseJWT parses and validates a session token string.
// The returned error is always one of ErrSessionAbsent, ErrSessionExpired or ErrSessionInvalid.
func ParseJWT(tokenStr, secret string) (*Claims, error) {
	if tokenStr == "" {
		return nil, ErrSessionAbsent
	}
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(token *jwt.Token) (any, error) {
		return []byte(secret), nil // Return the secret key for validation
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	// Check for parsing errors
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrSessionExpired
		}
		return nil, ErrSessionInvalid
	}
	// Validate token and extract claims
	if claims, ok := token.Claims.(*Claims); ok && token.Valid && claims.UserID != 0 {
		return claims, nil // Return claims if valid
	}
	// Return error if token is invalid
	return nil, ErrSessionInvalid
}
