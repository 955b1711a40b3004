package formatter

import (
	"encoding/csv"
	"fmt"
	"io"
	"time"
)

// CSVFormatter renders the curve as timestamp/deficit rows, the shape a
// charting tool ingests directly.
type CSVFormatter struct {
	w io.Writer
}

// NewCSVFormatter creates a CSV formatter writing to w.
func NewCSVFormatter(w io.Writer) *CSVFormatter {
	return &CSVFormatter{w: w}
}

// Format renders the report.
func (f *CSVFormatter) Format(report Report) error {
	w := csv.NewWriter(f.w)
	defer w.Flush()

	if err := w.Write([]string{"timestamp", "deficit"}); err != nil {
		return err
	}

	for _, p := range report.Result.Curve {
		record := []string{
			p.At.UTC().Format(time.RFC3339),
			fmt.Sprintf("%.6f", p.Deficit),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}
