// Package projection turns a configured intake rate and a series of dosing
// events into a stair-step deficit curve and scalar statistics. Project is a
// pure function of its arguments: no clock reads, no I/O, no shared state,
// safe to call concurrently.
package projection

import (
	"time"

	"github.com/ChaseCares/pill-doser/internal/core/dose"
	"github.com/ChaseCares/pill-doser/internal/core/timeline"
	"github.com/ChaseCares/pill-doser/internal/util"
)

// Anchor selects where the ideal intake line starts.
type Anchor int

const (
	// AnchorFirstEvent anchors the ideal line at the first dose: nothing was
	// owed before it. This is the canonical model.
	AnchorFirstEvent Anchor = iota
	// AnchorBackProjected treats the first dose as paying down need that
	// accumulated before it, shifting the ideal line up by the first
	// amount. Offered as an explicit variant, never as a silent default.
	AnchorBackProjected
)

// Thresholds for the "time until owed" statistics, in units.
const (
	halfUnit = 0.5
	fullUnit = 1.0
)

// Engine computes dosage projections.
type Engine struct {
	anchor Anchor
}

// New creates an engine with the canonical first-event anchoring.
func New() *Engine {
	return &Engine{anchor: AnchorFirstEvent}
}

// NewWithAnchor creates an engine with an explicit anchor mode.
func NewWithAnchor(anchor Anchor) *Engine {
	return &Engine{anchor: anchor}
}

// Project computes the deficit curve and statistics for the given rate and
// events at the instant now. Events may arrive in any order and are sorted
// internally. rate must be non-negative; a zero rate still yields a curve
// but marks the threshold-crossing statistics unavailable.
func (e *Engine) Project(rate float64, events []dose.Event, now time.Time) Result {
	sorted := timeline.Sort(events)
	if len(sorted) == 0 {
		return Result{
			Curve: nil,
			Stats: Statistics{
				TotalGiven:         Unavailable(),
				IdealByNow:         Unavailable(),
				CurrentDeficit:     Unavailable(),
				HoursUntilHalfOwed: Unavailable(),
				HoursUntilFullOwed: Unavailable(),
			},
		}
	}

	origin := sorted[0].At
	preOwed := 0.0
	if e.anchor == AnchorBackProjected {
		preOwed = sorted[0].Amount
	}

	ideal := func(t time.Time) float64 {
		hours, ok := util.HoursBetween(origin, t)
		if !ok {
			return preOwed
		}
		return rate*hours + preOwed
	}

	curve := make([]Point, 0, 2*len(sorted)+1)
	appendPoint := func(p Point) {
		// Zero-length segments carry no plotting information
		if n := len(curve); n > 0 {
			last := curve[n-1]
			if last.At.Equal(p.At) && last.Deficit == p.Deficit {
				return
			}
		}
		curve = append(curve, p)
	}

	var given float64
	for _, event := range sorted {
		// Ramp vertex just before the dose, drop vertex just after
		appendPoint(Point{At: event.At, Deficit: ideal(event.At) - given})
		given += event.Amount
		appendPoint(Point{At: event.At, Deficit: ideal(event.At) - given})
	}

	// The live vertex at now is always present, even under clock skew, so
	// consumers can rely on the curve ending at the query instant.
	curve = append(curve, Point{At: now, Deficit: ideal(now) - given})

	deficit := ideal(now) - given
	if deficit < 0 {
		deficit = 0
	}

	stats := Statistics{
		TotalGiven:         Available(given),
		IdealByNow:         Available(ideal(now)),
		CurrentDeficit:     Available(deficit),
		HoursUntilHalfOwed: Unavailable(),
		HoursUntilFullOwed: Unavailable(),
	}
	if rate > 0 {
		stats.HoursUntilHalfOwed = Available((halfUnit - deficit) / rate)
		stats.HoursUntilFullOwed = Available((fullUnit - deficit) / rate)
	}

	return Result{Curve: curve, Stats: stats}
}
