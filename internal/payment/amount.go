package payment

import "github.com/shopspring/decimal"

// ToMinorUnits converts a major-unit amount to minor units, rounding half away from zero
func ToMinorUnits(amount float64) int64 {
	return decimal.NewFromFloat(amount).Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
