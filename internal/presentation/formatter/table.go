package formatter

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

// Align is the horizontal alignment of a column
type Align int

const (
	AlignLeft Align = iota
	AlignRight
)

// Table is a box-drawn table whose columns are sized by display width
type Table struct {
	headers []string
	align   []Align
	rows    [][]string
	// spans marks rows rendered as one cell across all columns
	spans    map[int]bool
	maxWidth int
}

func NewTable(headers ...string) *Table {
	return &Table{
		headers: headers,
		align:   make([]Align, len(headers)),
		spans:   make(map[int]bool),
	}
}

// SetAlign sets the alignment of column i
func (t *Table) SetAlign(i int, a Align) *Table {
	if i >= 0 && i < len(t.align) {
		t.align[i] = a
	}
	return t
}

// SetMaxWidth limits the rendered table width; the last column is truncated to fit
func (t *Table) SetMaxWidth(w int) *Table {
	t.maxWidth = w
	return t
}

// AddRow appends a data row
func (t *Table) AddRow(values ...string) {
	row := make([]string, len(t.headers))
	copy(row, values)
	t.rows = append(t.rows, row)
}

// AddSpanRow appends a row rendered as a single cell
func (t *Table) AddSpanRow(text string) {
	t.spans[len(t.rows)] = true
	t.rows = append(t.rows, []string{text})
}

// Lines renders the table
func (t *Table) Lines() []string {
	widths := t.calculateColumnWidths()

	lines := []string{
		t.border(widths, "top"),
		t.row(t.headers, widths),
		t.border(widths, "middle"),
	}
	for i, r := range t.rows {
		if t.spans[i] {
			lines = append(lines, t.spanRow(r[0], widths))
			continue
		}
		lines = append(lines, t.row(r, widths))
	}
	return append(lines, t.border(widths, "bottom"))
}

// Write renders the table to w
func (t *Table) Write(w io.Writer) error {
	for _, line := range t.Lines() {
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

// calculateColumnWidths determines optimal width for each column based on content
func (t *Table) calculateColumnWidths() []int {
	widths := make([]int, len(t.headers))
	for i, h := range t.headers {
		widths[i] = util.GetDisplayWidth(h)
	}
	for i, r := range t.rows {
		if t.spans[i] {
			continue
		}
		for j, v := range r {
			if w := util.GetDisplayWidth(v); w > widths[j] {
				widths[j] = w
			}
		}
	}

	// Span rows widen the last column when nothing else is wide enough
	inner := tableInnerWidth(widths)
	for i, r := range t.rows {
		if !t.spans[i] || len(widths) == 0 {
			continue
		}
		if w := util.GetDisplayWidth(r[0]); w > inner {
			widths[len(widths)-1] += w - inner
			inner = w
		}
	}

	if t.maxWidth > 0 && len(widths) > 0 {
		if over := tableInnerWidth(widths) + 4 - t.maxWidth; over > 0 {
			last := len(widths) - 1
			widths[last] -= over
			if widths[last] < util.GetDisplayWidth(t.headers[last]) {
				widths[last] = util.GetDisplayWidth(t.headers[last])
			}
		}
	}
	return widths
}

// tableInnerWidth is the width between the outer borders, less the edge padding
func tableInnerWidth(widths []int) int {
	total := 0
	for _, w := range widths {
		total += w
	}
	if len(widths) > 1 {
		total += (len(widths) - 1) * 3
	}
	return total
}

// border renders table borders (top, middle, bottom)
func (t *Table) border(widths []int, borderType string) string {
	var left, middle, right string
	switch borderType {
	case "top":
		left, middle, right = "┌", "┬", "┐"
	case "middle":
		left, middle, right = "├", "┼", "┤"
	default:
		left, middle, right = "└", "┴", "┘"
	}

	var sb strings.Builder
	sb.WriteString(left)
	for i, w := range widths {
		sb.WriteString(strings.Repeat("─", w+2))
		if i < len(widths)-1 {
			sb.WriteString(middle)
		}
	}
	sb.WriteString(right)
	return sb.String()
}

func (t *Table) row(values []string, widths []int) string {
	var sb strings.Builder
	sb.WriteString("│")
	for i, v := range values {
		if t.align[i] == AlignRight {
			sb.WriteString(" " + util.PadLeft(v, widths[i]) + " │")
		} else {
			sb.WriteString(" " + util.PadRight(v, widths[i]) + " │")
		}
	}
	return sb.String()
}

func (t *Table) spanRow(text string, widths []int) string {
	return "│ " + util.PadRight(text, tableInnerWidth(widths)) + " │"
}

// EventsTable builds the recent events table: local time, tag verbatim, details
func EventsTable(events []model.ActivityEvent, tp *util.TimeProvider) *Table {
	if tp == nil {
		tp = util.GetTimeProvider()
	}

	t := NewTable("Time", "Event", "Details")
	if len(events) == 0 {
		t.AddSpanRow(NoEventsText)
		return t
	}
	for _, ev := range events {
		ts := ""
		if !ev.EventTime.IsZero() {
			ts = tp.FormatDateTime(ev.EventTime.Time)
		}
		t.AddRow(ts, ev.EventType, ev.DetailText())
	}
	return t
}

// DailyTable lists per-day active hours, oldest first
func DailyTable(points []model.DailySummaryPoint, tp *util.TimeProvider) *Table {
	if tp == nil {
		tp = util.GetTimeProvider()
	}

	t := NewTable("Day", "Active Hours", "First Login", "Last Logout").SetAlign(1, AlignRight)
	for i := len(points) - 1; i >= 0; i-- {
		p := points[i]
		t.AddRow(p.DayLabel(),
			util.FormatHours(util.SecondsToHours(p.TotalActiveSeconds.Float())),
			optionalClock(p.FirstLogin, tp),
			optionalClock(p.LastLogout, tp))
	}
	return t
}

// AppUsageTable lists per-application usage in the order received
func AppUsageTable(points []model.AppUsagePoint) *Table {
	t := NewTable("Application", "Duration", "Share").
		SetAlign(1, AlignRight).
		SetAlign(2, AlignRight)
	for _, p := range points {
		share := ""
		if p.Percentage != nil {
			share = util.FormatPercent(p.Percentage.Float()) + "%"
		}
		t.AddRow(p.AppName, util.FormatMinutesSeconds(p.WholeSeconds()), share)
	}
	return t
}

func optionalClock(ts *model.Timestamp, tp *util.TimeProvider) string {
	if ts == nil || ts.IsZero() {
		return ""
	}
	return tp.FormatClock(ts.Time)
}

// TableFormatter writes every dataset of a report as a table
type TableFormatter struct {
	timeProvider *util.TimeProvider
}

func NewTableFormatter() *TableFormatter {
	return &TableFormatter{timeProvider: util.GetTimeProvider()}
}

func (f *TableFormatter) Format(w io.Writer, report *Report) error {
	sections := []struct {
		title string
		table *Table
		empty string
	}{
		{"Daily Active Hours", DailyTable(report.DailySummary, f.timeProvider), "No daily summary data available."},
		{"Application Usage", AppUsageTable(report.AppUsage), "No app usage data available."},
		{"Recent Activity Events", EventsTable(report.ActivityEvents, f.timeProvider), ""},
	}

	for i, s := range sections {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		if _, err := fmt.Fprintln(w, s.title); err != nil {
			return err
		}
		if s.empty != "" && len(s.table.rows) == 0 {
			if _, err := fmt.Fprintln(w, s.empty); err != nil {
				return err
			}
			continue
		}
		if err := s.table.Write(w); err != nil {
			return err
		}
	}
	return nil
}
