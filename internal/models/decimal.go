package models

import (
	"math"
	"strconv"
)

// Decimal is a ratio, percentage or average kept numeric and rounded to two places.
// It always renders with exactly two decimals, both as text and as JSON.
type Decimal float64

// NewDecimal rounds v half away from zero to two decimals.
func NewDecimal(v float64) Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return Decimal(math.Round(v*100) / 100)
}

func (d Decimal) String() string {
	return strconv.FormatFloat(float64(d), 'f', 2, 64)
}

// Float64 returns the underlying value.
func (d Decimal) Float64() float64 {
	return float64(d)
}

// MarshalJSON encodes d as a JSON number with two decimals.
func (d Decimal) MarshalJSON() ([]byte, error) {
	return []byte(d.String()), nil
}
