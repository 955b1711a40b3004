package tracker

import "time"

// Clock supplies the current instant. The projection engine never reads a
// global clock; the tracker resolves "now" once per report and passes it in,
// which keeps every computation reproducible in tests.
type Clock interface {
	Now() time.Time
}

// RealClock returns the actual system time.
type RealClock struct{}

// Now returns the current system time.
func (RealClock) Now() time.Time { return time.Now() }

// FixedClock always returns the same instant. For tests.
type FixedClock struct {
	T time.Time
}

// Now returns the fixed instant.
func (c FixedClock) Now() time.Time { return c.T }
