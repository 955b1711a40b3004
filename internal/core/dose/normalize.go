package dose

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// WarningKind classifies a data-quality problem found while normalizing.
type WarningKind int

const (
	// WarnMalformedTimestamp marks a record whose timestamp could not be
	// parsed. The record is dropped from the timeline.
	WarnMalformedTimestamp WarningKind = iota
	// WarnMalformedAmount marks a record whose amount could not be parsed.
	// The record stays on the timeline with a zero amount.
	WarnMalformedAmount
)

// Warning describes a single degraded record. Normalization never fails:
// one corrupt record must not blank the whole dashboard.
type Warning struct {
	Kind   WarningKind
	Record Raw
	Detail string
}

func (w Warning) String() string {
	switch w.Kind {
	case WarnMalformedTimestamp:
		return fmt.Sprintf("dropped record with unparseable timestamp %q: %s", w.Record.Timestamp, w.Detail)
	case WarnMalformedAmount:
		return fmt.Sprintf("record at %q has unparseable amount %v, counted as zero", w.Record.Timestamp, w.Record.Amount)
	default:
		return w.Detail
	}
}

// Accepted timestamp layouts, tried in order. RFC3339 covers the canonical
// wire format; the bare layouts cover sheet cells that lost their zone and
// are read as UTC.
var timestampLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// ParseTimestamp parses a record timestamp into an absolute instant.
func ParseTimestamp(value string) (time.Time, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return time.Time{}, fmt.Errorf("empty timestamp")
	}
	var lastErr error
	for _, layout := range timestampLayouts {
		t, err := time.Parse(layout, value)
		if err == nil {
			return t.UTC(), nil
		}
		lastErr = err
	}
	return time.Time{}, lastErr
}

// ParseAmount coerces a number-like amount into a float64. The second return
// reports whether the value was usable; zero with false means the caller
// should count the dose as contributing nothing.
func ParseAmount(value any) (float64, bool) {
	var amount float64
	switch v := value.(type) {
	case float64:
		amount = v
	case float32:
		amount = float64(v)
	case int:
		amount = float64(v)
	case int64:
		amount = float64(v)
	case json.Number:
		f, err := v.Float64()
		if err != nil {
			return 0, false
		}
		amount = f
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0, false
		}
		amount = f
	default:
		return 0, false
	}

	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount < 0 {
		return 0, false
	}
	return amount, true
}

// Normalize converts raw store records into timeline events, degrading
// per-record: a malformed timestamp drops the record, a malformed amount
// keeps it with zero contribution. Warnings describe every degradation so
// the caller can log them.
func Normalize(records []Raw) ([]Event, []Warning) {
	events := make([]Event, 0, len(records))
	var warnings []Warning

	for _, record := range records {
		at, err := ParseTimestamp(record.Timestamp)
		if err != nil {
			warnings = append(warnings, Warning{
				Kind:   WarnMalformedTimestamp,
				Record: record,
				Detail: err.Error(),
			})
			continue
		}

		amount, ok := ParseAmount(record.Amount)
		if !ok {
			warnings = append(warnings, Warning{
				Kind:   WarnMalformedAmount,
				Record: record,
			})
		}

		events = append(events, Event{Amount: amount, At: at})
	}

	return events, warnings
}
