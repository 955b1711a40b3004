package config

import (
	"github.com/ChaseCares/pill-doser/internal/core/dose"
)

// Rate derives the ideal intake rate in units per hour from the persisted
// interval inputs. Zero whenever the inputs cannot form a valid ratio.
func (c *Config) Rate() float64 {
	return dose.RateFrom(c.PillsPerInterval, c.HoursPerInterval)
}
