// Package service contains the business logic layer between the HTTP handlers
// and the repositories.
package service

import "math"

// RoundingPrecision is the multiplier for two-decimal monetary rounding.
const RoundingPrecision = 100

// round rounds a monetary value to two decimal places. Rounding happens only
// at the service boundary; the valuation engine works on unrounded values.
func round(value float64) float64 {
	return math.Round(value*RoundingPrecision) / RoundingPrecision
}
