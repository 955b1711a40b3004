package util

import (
	"fmt"
	"math"
	"strconv"
	"time"
)

// FormatAmount renders a dose amount without trailing zero noise, e.g.
// 1 -> "1", 0.5 -> "0.5", 1.25 -> "1.25".
func FormatAmount(amount float64) string {
	return strconv.FormatFloat(amount, 'f', -1, 64)
}

// FormatHours renders a fractional hour count as "3h 24m".
func FormatHours(hours float64) string {
	d := time.Duration(math.Abs(hours) * float64(time.Hour))
	h := int(d.Hours())
	m := int(d.Minutes()) % 60

	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatHoursOffset renders a signed hour offset relative to now: positive
// offsets as "in 3h 24m", negative ones as "3h 24m ago". Thresholds crossed
// in the past are legitimate output, not an error.
func FormatHoursOffset(hours float64) string {
	if hours < 0 {
		return FormatHours(hours) + " ago"
	}
	return "in " + FormatHours(hours)
}
