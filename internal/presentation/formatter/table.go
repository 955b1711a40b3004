package formatter

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/mattn/go-runewidth"

	"github.com/ChaseCares/pill-doser/internal/core/projection"
	"github.com/ChaseCares/pill-doser/internal/util"
)

// TableFormatter renders the statistics block and the deficit curve as
// aligned text tables.
type TableFormatter struct {
	w io.Writer
}

// NewTableFormatter creates a table formatter writing to w.
func NewTableFormatter(w io.Writer) *TableFormatter {
	return &TableFormatter{w: w}
}

// Format renders the report.
func (f *TableFormatter) Format(report Report) error {
	if err := f.printStats(report); err != nil {
		return err
	}
	return f.printCurve(report.Result.Curve)
}

func (f *TableFormatter) printStats(report Report) error {
	stats := report.Result.Stats
	rows := [][2]string{
		{"Rate", fmt.Sprintf("%s units/hour", util.FormatAmount(report.Rate))},
		{"Total given", statAmount(stats.TotalGiven)},
		{"Ideal by now", statAmount(stats.IdealByNow)},
		{"Owed now", statAmount(stats.CurrentDeficit)},
		{"Half unit owed", statOffset(stats.HoursUntilHalfOwed)},
		{"Full unit owed", statOffset(stats.HoursUntilFullOwed)},
	}

	labelWidth := 0
	for _, row := range rows {
		if w := runewidth.StringWidth(row[0]); w > labelWidth {
			labelWidth = w
		}
	}

	for _, row := range rows {
		padding := strings.Repeat(" ", labelWidth-runewidth.StringWidth(row[0]))
		if _, err := fmt.Fprintf(f.w, "%s%s  %s\n", row[0], padding, row[1]); err != nil {
			return err
		}
	}
	return nil
}

func (f *TableFormatter) printCurve(curve []projection.Point) error {
	if len(curve) == 0 {
		_, err := fmt.Fprintln(f.w, "\nNo doses recorded.")
		return err
	}

	tp := util.GetTimeProvider()

	headers := []string{"Time", "Deficit"}
	widths := []int{runewidth.StringWidth(headers[0]), runewidth.StringWidth(headers[1])}

	cells := make([][2]string, 0, len(curve))
	for _, p := range curve {
		row := [2]string{
			tp.Format(p.At, time.RFC3339),
			fmt.Sprintf("%+.3f", p.Deficit),
		}
		cells = append(cells, row)
		for i := range widths {
			if w := runewidth.StringWidth(row[i]); w > widths[i] {
				widths[i] = w
			}
		}
	}

	if _, err := fmt.Fprintln(f.w); err != nil {
		return err
	}
	printRow := func(a, b string) error {
		_, err := fmt.Fprintf(f.w, "%s  %s\n",
			pad(a, widths[0]), pad(b, widths[1]))
		return err
	}
	if err := printRow(headers[0], headers[1]); err != nil {
		return err
	}
	if err := printRow(strings.Repeat("-", widths[0]), strings.Repeat("-", widths[1])); err != nil {
		return err
	}
	for _, row := range cells {
		if err := printRow(row[0], row[1]); err != nil {
			return err
		}
	}
	return nil
}

func pad(s string, width int) string {
	return s + strings.Repeat(" ", width-runewidth.StringWidth(s))
}

func statAmount(v projection.Optional) string {
	if !v.Valid {
		return "n/a"
	}
	return fmt.Sprintf("%.3f", v.Value)
}

func statOffset(v projection.Optional) string {
	if !v.Valid {
		return "n/a"
	}
	return util.FormatHoursOffset(v.Value)
}
