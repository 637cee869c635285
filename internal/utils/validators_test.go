package utils

import (
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type addressForm struct {
	Phone    string `validate:"omitempty,phone"`
	Pincode  string `validate:"omitempty,pincode"`
	Category string `validate:"omitempty,category"`
}

func TestCustomValidators(t *testing.T) {
	v := validator.New()
	require.NoError(t, RegisterValidators(v))

	assert.NoError(t, v.Struct(addressForm{Phone: "+919876543210", Pincode: "560001", Category: "Pottery"}))
	assert.NoError(t, v.Struct(addressForm{}))

	assert.Error(t, v.Struct(addressForm{Pincode: "056001"}))
	assert.Error(t, v.Struct(addressForm{Pincode: "5600"}))
	assert.Error(t, v.Struct(addressForm{Phone: "12-34"}))
	assert.Error(t, v.Struct(addressForm{Category: "Furniture"}))
}
