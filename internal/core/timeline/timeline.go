// Package timeline orders dosage events for projection. The projection
// engine never trusts caller order, so every entry point into the core runs
// through Sort first.
package timeline

import (
	"sort"

	"github.com/ChaseCares/pill-doser/internal/core/dose"
)

// Sort returns the events ordered ascending by timestamp. Ties keep their
// input order: timestamps are not unique, and removal semantics depend on
// insertion order being preserved among equal instants. The input slice is
// left untouched.
func Sort(events []dose.Event) []dose.Event {
	sorted := make([]dose.Event, len(events))
	copy(sorted, events)

	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].At.Before(sorted[j].At)
	})

	return sorted
}

// TotalAmount sums the amounts of all events. Order-independent by
// construction; used for the conservation statistic.
func TotalAmount(events []dose.Event) float64 {
	var total float64
	for _, e := range events {
		total += e.Amount
	}
	return total
}
