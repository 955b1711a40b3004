package dose

import "math"

// RateFrom derives the ideal intake rate in units per hour from the two
// persisted configuration inputs: how many pills are allowed per interval
// and how long the interval is in hours.
//
// The rate is zero whenever either input is absent, non-finite, or
// non-positive; in particular a zero interval never reaches the division.
func RateFrom(pillsPerInterval, hoursPerInterval float64) float64 {
	if math.IsNaN(pillsPerInterval) || math.IsInf(pillsPerInterval, 0) {
		return 0
	}
	if math.IsNaN(hoursPerInterval) || math.IsInf(hoursPerInterval, 0) {
		return 0
	}
	if pillsPerInterval <= 0 || hoursPerInterval <= 0 {
		return 0
	}
	return pillsPerInterval / hoursPerInterval
}
