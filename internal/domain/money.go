package domain

import "math"

// Round2 rounds a dollar amount to whole cents. All derived amounts
// (line totals, subtotals, tax, totals) pass through it so sums land on
// exact cent values.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
