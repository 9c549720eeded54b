package formatter

import (
	"io"
	"time"

	"github.com/bytedance/sonic"
)

type JSONFormatter struct{}

func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

type jsonInterval struct {
	Start           time.Time `json:"start"`
	End             time.Time `json:"end"`
	Status          string    `json:"status"`
	DurationSeconds float64   `json:"duration_seconds"`
}

type jsonReport struct {
	*Report
	Timeline []jsonInterval `json:"timeline"`
}

func (f *JSONFormatter) Format(w io.Writer, report *Report) error {
	out := jsonReport{Report: report, Timeline: make([]jsonInterval, 0, len(report.Timeline))}
	for _, iv := range report.Timeline {
		out.Timeline = append(out.Timeline, jsonInterval{
			Start:           iv.Start,
			End:             iv.End,
			Status:          iv.Status.String(),
			DurationSeconds: iv.Duration().Seconds(),
		})
	}

	encoder := sonic.ConfigStd.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(out)
}
