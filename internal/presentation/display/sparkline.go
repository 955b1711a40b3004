package display

import (
	"strings"
	"time"

	"github.com/ChaseCares/pill-doser/internal/core/projection"
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Sparkline compresses the deficit curve into a fixed-width block-rune strip.
// The curve is sampled at evenly spaced instants between its first and last
// vertex, interpolating linearly inside each segment; the stair-step drops
// survive as sharp level changes.
func Sparkline(curve []projection.Point, width int) string {
	if width <= 0 || len(curve) == 0 {
		return ""
	}
	if len(curve) == 1 {
		return string(sparkLevels[0])
	}

	start := curve[0].At
	end := curve[len(curve)-1].At
	span := end.Sub(start)
	if span <= 0 {
		// All vertices share one instant; render a flat strip
		return strings.Repeat(string(sparkLevels[0]), width)
	}

	samples := make([]float64, width)
	min, max := curve[0].Deficit, curve[0].Deficit
	for i := 0; i < width; i++ {
		at := start.Add(span * time.Duration(i) / time.Duration(width-1))
		v := valueAt(curve, at)
		samples[i] = v
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}

	var b strings.Builder
	for _, v := range samples {
		level := 0
		if max > min {
			level = int((v - min) / (max - min) * float64(len(sparkLevels)-1))
		}
		if level < 0 {
			level = 0
		}
		if level >= len(sparkLevels) {
			level = len(sparkLevels) - 1
		}
		b.WriteRune(sparkLevels[level])
	}
	return b.String()
}

// valueAt evaluates the piecewise-linear curve at an instant. For instants
// carrying several vertices (the dose drop) the last one wins, matching the
// deficit immediately after the dose.
func valueAt(curve []projection.Point, at time.Time) float64 {
	if at.Before(curve[0].At) {
		return curve[0].Deficit
	}
	for i := 1; i < len(curve); i++ {
		p, q := curve[i-1], curve[i]
		if at.Before(q.At) {
			seg := q.At.Sub(p.At)
			if seg <= 0 {
				continue
			}
			frac := float64(at.Sub(p.At)) / float64(seg)
			return p.Deficit + frac*(q.Deficit-p.Deficit)
		}
	}
	return curve[len(curve)-1].Deficit
}
