package formatter

import (
	"fmt"
	"io"

	"github.com/ChaseCares/pill-doser/internal/util"
)

// SummaryFormatter renders the statistics as short human sentences, the
// readout the dashboard header shows.
type SummaryFormatter struct {
	w io.Writer
}

// NewSummaryFormatter creates a summary formatter writing to w.
func NewSummaryFormatter(w io.Writer) *SummaryFormatter {
	return &SummaryFormatter{w: w}
}

// Format renders the report.
func (f *SummaryFormatter) Format(report Report) error {
	stats := report.Result.Stats

	if !stats.TotalGiven.Valid {
		_, err := fmt.Fprintln(f.w, "No doses recorded yet.")
		return err
	}

	lines := []string{
		fmt.Sprintf("Taken so far: %s units", util.FormatAmount(stats.TotalGiven.Value)),
		fmt.Sprintf("Ideal by now: %.2f units", stats.IdealByNow.Value),
		fmt.Sprintf("Owed now: %.2f units", stats.CurrentDeficit.Value),
	}

	if stats.HoursUntilHalfOwed.Valid {
		lines = append(lines,
			fmt.Sprintf("Half unit owed %s", util.FormatHoursOffset(stats.HoursUntilHalfOwed.Value)),
			fmt.Sprintf("Full unit owed %s", util.FormatHoursOffset(stats.HoursUntilFullOwed.Value)))
	} else {
		lines = append(lines, "No dosing rate configured; projections unavailable.")
	}

	for _, line := range lines {
		if _, err := fmt.Fprintln(f.w, line); err != nil {
			return err
		}
	}
	return nil
}
