package formatter

import (
	"encoding/csv"
	"fmt"
	"io"

	"github.com/penwyp/go-activity-monitor/internal/util"
)

// CSVFormatter writes one record per dataset row, tagged with its dataset name
type CSVFormatter struct {
	timeProvider *util.TimeProvider
}

func NewCSVFormatter() *CSVFormatter {
	return &CSVFormatter{timeProvider: util.GetTimeProvider()}
}

func (f *CSVFormatter) Format(w io.Writer, report *Report) error {
	cw := csv.NewWriter(w)

	headers := []string{"Dataset", "Key", "Value", "Extra", "Detail"}
	if err := cw.Write(headers); err != nil {
		return err
	}

	for i := len(report.DailySummary) - 1; i >= 0; i-- {
		p := report.DailySummary[i]
		record := []string{
			"daily_summary",
			p.DayLabel(),
			fmt.Sprintf("%.2f", util.SecondsToHours(p.TotalActiveSeconds.Float())),
			optionalClock(p.FirstLogin, f.timeProvider),
			optionalClock(p.LastLogout, f.timeProvider),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	for _, p := range report.AppUsage {
		pct := ""
		if p.Percentage != nil {
			pct = util.FormatPercent(p.Percentage.Float())
		}
		record := []string{
			"app_usage",
			p.AppName,
			fmt.Sprintf("%d", p.WholeSeconds()),
			pct,
			p.Day,
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	for _, ev := range report.ActivityEvents {
		record := []string{
			"activity_events",
			f.timeProvider.FormatDateTime(ev.EventTime.Time),
			ev.EventType,
			"",
			ev.DetailText(),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	for _, iv := range report.Timeline {
		record := []string{
			"timeline",
			f.timeProvider.FormatDateTime(iv.Start),
			iv.Status.String(),
			f.timeProvider.FormatDateTime(iv.End),
			fmt.Sprintf("%.0f", iv.Duration().Seconds()),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}
