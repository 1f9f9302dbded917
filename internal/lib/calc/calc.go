// Package calc holds the arithmetic shared by the dashboard reports: ratios, averages
// and growth rates, all returned as two-decimal models.Decimal values.
package calc

import "github.com/magabrotheeeer/fashion-admin/internal/models"

// Ratio returns part/whole as a percentage, or 0 when whole is 0.
func Ratio(part, whole float64) models.Decimal {
	if whole == 0 {
		return 0
	}
	return models.NewDecimal(part / whole * 100)
}

// Average returns sum/count, or 0 when count is 0.
func Average(sum float64, count int) models.Decimal {
	if count == 0 {
		return 0
	}
	return models.NewDecimal(sum / float64(count))
}

// GrowthRate is the percentage change between the last two values.
// It is 0 when there are fewer than two values or the previous value is 0.
func GrowthRate(values []float64) models.Decimal {
	if len(values) < 2 {
		return 0
	}
	latest, previous := values[len(values)-1], values[len(values)-2]
	if previous == 0 {
		return 0
	}
	return models.NewDecimal((latest - previous) / previous * 100)
}

// GrowthRateOf applies GrowthRate to the field value selects from each item.
func GrowthRateOf[T any](items []T, value func(T) float64) models.Decimal {
	values := make([]float64, len(items))
	for i, item := range items {
		values[i] = value(item)
	}
	return GrowthRate(values)
}

// Sum adds value over items.
func Sum[T any](items []T, value func(T) float64) float64 {
	var total float64
	for _, item := range items {
		total += value(item)
	}
	return total
}

// Count returns how many items satisfy match.
func Count[T any](items []T, match func(T) bool) int {
	n := 0
	for _, item := range items {
		if match(item) {
			n++
		}
	}
	return n
}

// Round2 rounds a money amount to cents.
func Round2(v float64) float64 {
	return models.NewDecimal(v).Float64()
}
