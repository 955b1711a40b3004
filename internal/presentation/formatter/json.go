package formatter

import (
	"io"
	"time"

	"github.com/bytedance/sonic"

	"github.com/ChaseCares/pill-doser/internal/core/projection"
)

// JSONFormatter renders the report as indented JSON.
type JSONFormatter struct {
	w io.Writer
}

// NewJSONFormatter creates a JSON formatter writing to w.
func NewJSONFormatter(w io.Writer) *JSONFormatter {
	return &JSONFormatter{w: w}
}

type jsonReport struct {
	GeneratedAt string                `json:"generatedAt"`
	Rate        float64               `json:"rate"`
	Curve       []projection.Point    `json:"curve"`
	Stats       projection.Statistics `json:"stats"`
}

// Format renders the report.
func (f *JSONFormatter) Format(report Report) error {
	curve := report.Result.Curve
	if curve == nil {
		curve = []projection.Point{}
	}

	data, err := sonic.MarshalIndent(jsonReport{
		GeneratedAt: report.GeneratedAt.UTC().Format(time.RFC3339),
		Rate:        report.Rate,
		Curve:       curve,
		Stats:       report.Result.Stats,
	}, "", "  ")
	if err != nil {
		return err
	}
	data = append(data, '\n')
	_, err = f.w.Write(data)
	return err
}
