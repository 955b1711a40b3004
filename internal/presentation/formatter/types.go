package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/ChaseCares/pill-doser/internal/core/projection"
)

// Report is the renderable bundle every formatter consumes.
type Report struct {
	GeneratedAt time.Time
	Rate        float64
	Result      projection.Result
}

// Formatter renders one report.
type Formatter interface {
	Format(report Report) error
}

// New selects a formatter by name.
func New(format string, w io.Writer) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(w), nil
	case "json":
		return NewJSONFormatter(w), nil
	case "csv":
		return NewCSVFormatter(w), nil
	case "summary":
		return NewSummaryFormatter(w), nil
	default:
		return nil, fmt.Errorf("unknown output format %q (table, json, csv, summary)", format)
	}
}
