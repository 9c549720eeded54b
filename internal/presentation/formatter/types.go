package formatter

import (
	"fmt"
	"io"
	"time"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/core/timeline"
)

// NoEventsText is the single row shown when there are no events
const NoEventsText = "No recent activity events."

// Report is one snapshot of the dashboard datasets
type Report struct {
	DailySummary   []model.DailySummaryPoint `json:"daily_summary"`
	AppUsage       []model.AppUsagePoint     `json:"app_usage"`
	ActivityEvents []model.ActivityEvent     `json:"activity_events"`
	Timeline       []timeline.Interval       `json:"-"`
	GeneratedAt    time.Time                 `json:"generated_at"`
}

// Formatter writes a report in one output format
type Formatter interface {
	Format(w io.Writer, report *Report) error
}

// New returns the formatter for format: table, json, csv or summary
func New(format string) (Formatter, error) {
	switch format {
	case "table", "":
		return NewTableFormatter(), nil
	case "json":
		return NewJSONFormatter(), nil
	case "csv":
		return NewCSVFormatter(), nil
	case "summary":
		return NewSummaryFormatter(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}
