package projection

import (
	"time"
)

// Point is one vertex of the deficit curve. Deficit is positive when doses
// are owed and negative when the user is ahead of the ideal line; the curve
// is never clamped, only the scalar "owed now" statistic is.
type Point struct {
	At      time.Time `json:"at"`
	Deficit float64   `json:"deficit"`
}

// Optional is a statistic that may be unavailable. Zero is a legitimate
// deficit, so absence has to be a tag rather than a numeric placeholder.
type Optional struct {
	Value float64 `json:"value"`
	Valid bool    `json:"valid"`
}

// Available wraps a computed value.
func Available(v float64) Optional {
	return Optional{Value: v, Valid: true}
}

// Unavailable is the sentinel for a statistic that cannot be computed,
// either because the timeline is empty or because the rate is zero.
func Unavailable() Optional {
	return Optional{}
}

// Statistics is the scalar snapshot derived from one projection run. It is
// recomputed on every invocation and never persisted on its own.
type Statistics struct {
	// TotalGiven is the sum of all parseable dose amounts.
	TotalGiven Optional `json:"totalGiven"`
	// IdealByNow is the amount the uniform-rate model says should have been
	// administered between the first dose and now.
	IdealByNow Optional `json:"totalIdeallyNeededByNow"`
	// CurrentDeficit is the live "owed now" readout, floor-clamped at zero;
	// a surplus has no actionable meaning for this number.
	CurrentDeficit Optional `json:"currentDeficit"`
	// HoursUntilHalfOwed and HoursUntilFullOwed project when accumulated
	// need crosses 0.5 and 1.0 units. Negative values mean the threshold
	// was crossed in the past. Both are unavailable when the rate is zero.
	HoursUntilHalfOwed Optional `json:"hoursUntilHalfUnitOwed"`
	HoursUntilFullOwed Optional `json:"hoursUntilFullUnitOwed"`
}

// Result bundles the plotting curve with the derived statistics.
type Result struct {
	Curve []Point    `json:"curve"`
	Stats Statistics `json:"stats"`
}
