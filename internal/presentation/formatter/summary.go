package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/penwyp/go-activity-monitor/internal/core/timeline"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

// SummaryFormatter is responsible for formatting and outputting summary reports.
type SummaryFormatter struct {
	timeProvider *util.TimeProvider
	heading      *color.Color
}

// NewSummaryFormatter creates a new instance of SummaryFormatter.
func NewSummaryFormatter() *SummaryFormatter {
	return &SummaryFormatter{
		timeProvider: util.GetTimeProvider(),
		heading:      color.New(color.FgCyan, color.Bold),
	}
}

// Format writes totals for each dataset of the report.
func (f *SummaryFormatter) Format(w io.Writer, report *Report) error {
	var sb strings.Builder
	rule := strings.Repeat("=", 60)

	fmt.Fprintln(&sb, rule)
	fmt.Fprintln(&sb, "Activity Summary Report")
	fmt.Fprintln(&sb, rule)
	fmt.Fprintln(&sb)

	if len(report.DailySummary) == 0 && len(report.AppUsage) == 0 && len(report.ActivityEvents) == 0 {
		fmt.Fprintln(&sb, "No data to summarize")
		fmt.Fprintln(&sb)
		fmt.Fprintln(&sb, rule)
		_, err := io.WriteString(w, sb.String())
		return err
	}

	// Daily section, oldest to newest
	if n := len(report.DailySummary); n > 0 {
		first := report.DailySummary[n-1].DayLabel()
		last := report.DailySummary[0].DayLabel()
		if first == last {
			fmt.Fprintf(&sb, "Date Range: %s\n", first)
		} else {
			fmt.Fprintf(&sb, "Date Range: %s to %s\n", first, last)
		}
		fmt.Fprintln(&sb)

		var total float64
		for _, p := range report.DailySummary {
			total += p.TotalActiveSeconds.Float()
		}
		fmt.Fprintln(&sb, f.heading.Sprint("Active Time:"))
		fmt.Fprintf(&sb, "  Total: %s\n", util.FormatHours(util.SecondsToHours(total)))
		fmt.Fprintf(&sb, "  Daily Average: %s\n", util.FormatHours(util.SecondsToHours(total/float64(n))))

		newest := report.DailySummary[0]
		if newest.FirstLogin != nil && !newest.FirstLogin.IsZero() {
			fmt.Fprintf(&sb, "  First Login (%s): %s\n", last, f.timeProvider.FormatClock(newest.FirstLogin.Time))
		}
		if newest.LastLogout != nil && !newest.LastLogout.IsZero() {
			fmt.Fprintf(&sb, "  Last Logout (%s): %s\n", last, f.timeProvider.FormatClock(newest.LastLogout.Time))
		}
		fmt.Fprintln(&sb)
	}

	if len(report.AppUsage) > 0 {
		top := report.AppUsage[0]
		for _, p := range report.AppUsage[1:] {
			if p.DurationSeconds > top.DurationSeconds {
				top = p
			}
		}
		fmt.Fprintln(&sb, f.heading.Sprint("Application Usage:"))
		fmt.Fprintf(&sb, "  Applications: %d\n", len(report.AppUsage))
		fmt.Fprintf(&sb, "  Most Used: %s\n", top.AppName)
		fmt.Fprintln(&sb)
	}

	if len(report.Timeline) > 0 {
		totals := timeline.Summarize(report.Timeline)
		fmt.Fprintln(&sb, f.heading.Sprint("Timeline:"))
		fmt.Fprintf(&sb, "  Events: %d\n", len(report.ActivityEvents))
		fmt.Fprintf(&sb, "  Active: %s\n", util.FormatDuration(totals.Active))
		fmt.Fprintf(&sb, "  Inactive: %s\n", util.FormatDuration(totals.Inactive))
		fmt.Fprintf(&sb, "  Active Ratio: %s%%\n", util.FormatPercent(totals.ActiveRatio()*100))
		fmt.Fprintln(&sb)
	}

	fmt.Fprintln(&sb, rule)
	_, err := io.WriteString(w, sb.String())
	return err
}
