package chart

import (
	"fmt"
	"math"
	"strings"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

const appUsageSurface = "appUsageChart"

// Tooltip renders "<name>: <M>m <S>s (<pct>%)". A missing, zero or NaN percentage
// leaves pct empty.
func Tooltip(p model.AppUsagePoint) string {
	pct := ""
	if p.Percentage != nil {
		if v := p.Percentage.Float(); v != 0 && !math.IsNaN(v) {
			pct = util.FormatPercent(v)
		}
	}
	return fmt.Sprintf("%s: %s (%s%%)", p.AppName, util.FormatMinutesSeconds(p.WholeSeconds()), pct)
}

// AppUsageChart draws the per-application share as a segmented ring strip with a legend
type AppUsageChart struct {
	controller
	data []model.AppUsagePoint
}

func NewAppUsageChart() *AppUsageChart {
	return &AppUsageChart{controller: newController(appUsageSurface, defaultWidth)}
}

// Replace draws a new dataset, releasing the previous chart first
func (c *AppUsageChart) Replace(points []model.AppUsagePoint) {
	c.data = points
	c.render()
}

// SetWidth redraws the current dataset when the width changes
func (c *AppUsageChart) SetWidth(width int) {
	if c.setWidth(width) && c.data != nil {
		c.render()
	}
}

func (c *AppUsageChart) render() {
	if len(c.data) == 0 {
		c.placeholder(NoAppUsageData)
		return
	}

	lines := []string{c.strip()}
	for i, p := range c.data {
		lines = append(lines, PaletteColor(i).Sprint("■ ")+Tooltip(p))
	}
	c.draw(lines)
}

// strip splits the width between apps in proportion to their duration
func (c *AppUsageChart) strip() string {
	width := c.width
	cells := Proportions(c.data, width)
	if cells == nil {
		return strings.Repeat(blockEmpty, width)
	}

	var sb strings.Builder
	for i, n := range cells {
		sb.WriteString(blocks(PaletteColor(i), n))
	}
	return sb.String()
}

// Proportions distributes width cells across points by duration using largest
// remainders. It returns nil when the total duration is not positive.
func Proportions(points []model.AppUsagePoint, width int) []int {
	var total float64
	for _, p := range points {
		if v := p.DurationSeconds.Float(); v > 0 {
			total += v
		}
	}
	if total <= 0 || width <= 0 {
		return nil
	}

	cells := make([]int, len(points))
	remainders := make([]float64, len(points))
	assigned := 0
	for i, p := range points {
		v := math.Max(p.DurationSeconds.Float(), 0)
		exact := v / total * float64(width)
		cells[i] = int(exact)
		remainders[i] = exact - float64(cells[i])
		assigned += cells[i]
	}

	for assigned < width {
		best := -1
		for i, r := range remainders {
			if best == -1 || r > remainders[best] {
				best = i
			}
		}
		cells[best]++
		remainders[best] = -1
		assigned++
	}
	return cells
}
