// Package pricing holds the percentage and discount arithmetic used for
// product prices. Rounding is half away from zero on the shortest decimal
// representation of the float, so 17.995 rounds to 18.00 and not to 17.99.
package pricing

import (
	"math"

	"github.com/shopspring/decimal"
)

// DefaultPercentageDecimals is the precision Percentage callers use by default.
const DefaultPercentageDecimals = 2

// Round rounds v to places decimals, half away from zero.
// NaN and infinities are returned unchanged.
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}

	return decimal.NewFromFloat(v).Round(int32(places)).InexactFloat64() //nolint:gosec
}

// Percentage returns value as a percentage of total rounded to decimals.
// A zero total yields 0.
func Percentage(value, total float64, decimals int) float64 {
	if total == 0 {
		return 0
	}

	return Round(value/total*100, decimals) //nolint:mnd
}

// Discount returns the discount amount for percent off price, rounded to cents.
func Discount(price, percent float64) float64 {
	return Round(price*(percent/100), 2) //nolint:mnd
}

// FinalPrice returns price minus its rounded Discount, rounded to cents.
func FinalPrice(price, percent float64) float64 {
	return Round(price-Discount(price, percent), 2) //nolint:mnd
}
