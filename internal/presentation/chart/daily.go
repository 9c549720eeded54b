package chart

import (
	"strings"

	"github.com/fatih/color"
	"github.com/guptarohit/asciigraph"
	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

const (
	dailyHeight   = 8
	dailyAxisPad  = 10 // asciigraph label gutter
	dailySurface  = "dailyActiveHoursChart"
	dailyCaption  = "Active Hours"
	dailyMaxWidth = 120
)

// DailySeries converts newest-first summary points into oldest-first labels
// and active hours rounded to two decimals.
func DailySeries(points []model.DailySummaryPoint) (labels []string, hours []float64) {
	n := len(points)
	labels = make([]string, n)
	hours = make([]float64, n)
	for i, p := range points {
		j := n - 1 - i
		labels[j] = p.DayLabel()
		hours[j] = util.SecondsToHours(p.TotalActiveSeconds.Float())
	}
	return labels, hours
}

// DailyChart draws the daily active-hours line chart
type DailyChart struct {
	controller
	data []model.DailySummaryPoint
}

func NewDailyChart() *DailyChart {
	return &DailyChart{controller: newController(dailySurface, defaultWidth)}
}

// Replace draws a new dataset, releasing the previous chart first
func (c *DailyChart) Replace(points []model.DailySummaryPoint) {
	c.data = points
	c.render()
}

// SetWidth redraws the current dataset when the width changes
func (c *DailyChart) SetWidth(width int) {
	if c.setWidth(width) && c.data != nil {
		c.render()
	}
}

func (c *DailyChart) render() {
	if len(c.data) == 0 {
		c.placeholder(NoDailyData)
		return
	}
	c.draw(c.lines())
}

func (c *DailyChart) lines() []string {
	labels, hours := DailySeries(c.data)

	opts := []asciigraph.Option{
		asciigraph.Height(dailyHeight),
		asciigraph.LowerBound(0),
		asciigraph.Precision(2),
		asciigraph.Caption(dailyCaption),
	}
	if !color.NoColor {
		opts = append(opts, asciigraph.SeriesColors(asciigraph.Blue), asciigraph.CaptionColor(asciigraph.Cyan))
	}
	plotWidth := c.plotWidth()
	if len(hours) > 1 {
		opts = append(opts, asciigraph.Width(plotWidth))
	} else {
		// A single value still needs two samples to draw a line
		hours = []float64{hours[0], hours[0]}
	}

	lines := strings.Split(asciigraph.Plot(hours, opts...), "\n")
	return append(lines, axisLabels(labels, plotWidth))
}

func (c *DailyChart) plotWidth() int {
	w := c.width - dailyAxisPad
	if w > dailyMaxWidth {
		w = dailyMaxWidth
	}
	if w < minWidth-dailyAxisPad {
		w = minWidth - dailyAxisPad
	}
	return w
}

// axisLabels renders the first and last day at the edges of the plot area
func axisLabels(labels []string, width int) string {
	if len(labels) == 0 {
		return ""
	}
	first, last := labels[0], labels[len(labels)-1]
	gutter := strings.Repeat(" ", dailyAxisPad)
	if len(labels) == 1 || first == last {
		return gutter + first
	}
	gap := width - util.GetDisplayWidth(first) - util.GetDisplayWidth(last)
	if gap < 1 {
		gap = 1
	}
	return gutter + axisColor.Sprint(first+strings.Repeat(" ", gap)+last)
}
