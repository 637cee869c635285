package utils

import (
	"regexp" // Pattern matching for Indian postal data

	"artisan_market/internal/domain" // Listing categories

	"github.com/go-playground/validator/v10" // Struct validation
)

var (
	pincodePattern = regexp.MustCompile(`^[1-9][0-9]{5}$`)   // Six-digit PIN, no leading zero
	phonePattern   = regexp.MustCompile(`^\+?[0-9]{10,15}$`) // Digits with optional country prefix
)

// ValidatePincode checks an Indian postal PIN code
func ValidatePincode(fl validator.FieldLevel) bool {
	return pincodePattern.MatchString(fl.Field().String())
}

// ValidatePhone checks a phone number of 10 to 15 digits
func ValidatePhone(fl validator.FieldLevel) bool {
	return phonePattern.MatchString(fl.Field().String())
}

// ValidateCategory checks a listing category against the closed set
func ValidateCategory(fl validator.FieldLevel) bool {
	return domain.IsValidCategory(fl.Field().String())
}

// RegisterValidators installs the custom tags on v
func RegisterValidators(v *validator.Validate) error {
	for tag, fn := range map[string]validator.Func{
		"pincode":  ValidatePincode,
		"phone":    ValidatePhone,
		"category": ValidateCategory,
	} {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
