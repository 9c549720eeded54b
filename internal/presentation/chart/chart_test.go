package chart

import (
	"os"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/core/timeline"
	"github.com/penwyp/go-activity-monitor/internal/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func num(v float64) *model.Number {
	n := model.Number(v)
	return &n
}

func daily(day string, secs float64) model.DailySummaryPoint {
	return model.DailySummaryPoint{Day: day, TotalActiveSeconds: model.Number(secs)}
}

func TestDailySeriesReversesAndRounds(t *testing.T) {
	labels, hours := DailySeries([]model.DailySummaryPoint{
		daily("2025-10-15", 3600),
		daily("Tue, 14 Oct 2025 00:00:00 GMT", 5400),
		daily("2025-10-13", 1000),
	})

	assert.Equal(t, []string{"2025-10-13", "2025-10-14", "2025-10-15"}, labels)
	assert.Equal(t, []float64{0.28, 1.5, 1}, hours)
}

func TestTooltip(t *testing.T) {
	p := model.AppUsagePoint{AppName: "firefox", DurationSeconds: 125, Percentage: num(12.345)}
	assert.Equal(t, "firefox: 2m 5s (12.35%)", Tooltip(p))

	p = model.AppUsagePoint{AppName: "term", DurationSeconds: 59.9}
	assert.Equal(t, "term: 0m 59s (%)", Tooltip(p), "missing percentage renders empty")

	p = model.AppUsagePoint{AppName: "idle", DurationSeconds: 3, Percentage: num(0)}
	assert.Equal(t, "idle: 0m 3s (%)", Tooltip(p), "zero percentage renders empty")
}

func TestProportions(t *testing.T) {
	points := []model.AppUsagePoint{
		{AppName: "a", DurationSeconds: 1},
		{AppName: "b", DurationSeconds: 1},
		{AppName: "c", DurationSeconds: 1},
	}
	cells := Proportions(points, 10)
	sum := 0
	for _, c := range cells {
		sum += c
	}
	assert.Equal(t, 10, sum)
	assert.Equal(t, []int{4, 3, 3}, cells)

	assert.Nil(t, Proportions([]model.AppUsagePoint{{AppName: "idle"}}, 10))
}

func TestChartsShowPlaceholderForEmptyData(t *testing.T) {
	d := NewDailyChart()
	d.Replace(nil)
	assert.Equal(t, []string{NoDailyData}, d.View())

	a := NewAppUsageChart()
	a.Replace([]model.AppUsagePoint{})
	assert.Equal(t, []string{NoAppUsageData}, a.View())

	tl := NewTimelineChart(timeline.NewBuilder(), nil)
	tl.Replace(nil)
	assert.Equal(t, []string{NoTimelineData}, tl.View())

	tl.Replace([]model.ActivityEvent{{EventType: "APP_SWITCH"}})
	assert.Equal(t, []string{NoTimelineData}, tl.View(), "no classified events")
}

func TestReplaceKeepsOneLiveResource(t *testing.T) {
	d := NewDailyChart()
	a := NewAppUsageChart()
	for i := 0; i < 5; i++ {
		d.Replace([]model.DailySummaryPoint{daily("2025-10-14", float64(i*3600)), daily("2025-10-13", 1800)})
		a.Replace([]model.AppUsagePoint{{AppName: "vim", DurationSeconds: model.Number(i + 1)}})
		assert.Equal(t, 1, d.Surface().Live())
		assert.Equal(t, 1, a.Surface().Live())
	}

	d.Replace(nil)
	assert.Equal(t, 0, d.Surface().Live(), "placeholder releases the chart")

	a.Close()
	assert.Equal(t, 0, a.Surface().Live())
	assert.Empty(t, a.View())
}

func TestResourceDestroyIsIdempotent(t *testing.T) {
	s := NewSurface("x")
	r := s.Bind([]string{"line"})
	assert.Equal(t, 1, s.Live())
	r.Destroy()
	r.Destroy()
	assert.Equal(t, 0, s.Live())
	assert.Equal(t, "x", s.ID())
}

func TestDailyChartRenders(t *testing.T) {
	d := NewDailyChart()
	d.SetWidth(60)
	d.Replace([]model.DailySummaryPoint{daily("2025-10-14", 7200), daily("2025-10-13", 3600)})

	lines := d.View()
	require.NotEmpty(t, lines)
	out := strings.Join(lines, "\n")
	assert.Contains(t, out, dailyCaption)

	axis := lines[len(lines)-1]
	assert.Less(t, strings.Index(axis, "2025-10-13"), strings.Index(axis, "2025-10-14"), "oldest day on the left")

	single := NewDailyChart()
	single.Replace([]model.DailySummaryPoint{daily("2025-10-14", 7200)})
	assert.Contains(t, strings.Join(single.View(), "\n"), "2025-10-14")
}

func TestAppUsageChartLegend(t *testing.T) {
	a := NewAppUsageChart()
	a.SetWidth(40)
	a.Replace([]model.AppUsagePoint{
		{AppName: "firefox", DurationSeconds: 125, Percentage: num(12.345)},
		{AppName: "code", DurationSeconds: 875, Percentage: num(87.655)},
	})

	lines := a.View()
	require.Len(t, lines, 3)
	assert.Equal(t, 40, util.GetDisplayWidth(lines[0]))
	assert.Equal(t, "■ firefox: 2m 5s (12.35%)", lines[1])
	assert.Equal(t, "■ code: 14m 35s (87.66%)", lines[2])
}

func TestTimelineChartRenders(t *testing.T) {
	base := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)
	clock, err := util.NewTimeProvider("UTC", "24h")
	require.NoError(t, err)

	builder := timeline.NewBuilder(timeline.WithClock(func() time.Time { return base.Add(40 * time.Minute) }))
	tl := NewTimelineChart(builder, clock)
	tl.SetWidth(50)

	tl.Replace([]model.ActivityEvent{
		{EventTime: model.Timestamp{Time: base}, EventType: "UNLOCKED"},
		{EventTime: model.Timestamp{Time: base.Add(20 * time.Minute)}, EventType: "LOCKED"},
	})

	lines := tl.View()
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "Active"))
	assert.True(t, strings.HasPrefix(lines[1], "Inactive"))

	activeRow := []rune(lines[0])[timelineLabelW:]
	inactiveRow := []rune(lines[1])[timelineLabelW:]
	require.Len(t, activeRow, 40)
	assert.Equal(t, '█', activeRow[0])
	assert.Equal(t, ' ', activeRow[39])
	assert.Equal(t, ' ', inactiveRow[0])
	assert.Equal(t, '█', inactiveRow[39])

	assert.Contains(t, lines[2], "09:00:00")
	assert.Contains(t, lines[2], "09:40:00")
	assert.Contains(t, lines[3], "Active 20m")
	assert.Contains(t, lines[3], "Now Inactive")

	require.Len(t, tl.Intervals(), 2)
	assert.Equal(t, 1, tl.Surface().Live())

	tl.Redraw()
	assert.Equal(t, 1, tl.Surface().Live())
}

func TestSampleSteps(t *testing.T) {
	base := time.Date(2025, 10, 13, 9, 0, 0, 0, time.UTC)
	points := timeline.StepPoints([]timeline.Interval{
		{Start: base, End: base.Add(time.Minute), Status: timeline.StatusInactive},
		{Start: base.Add(time.Minute), End: base.Add(2 * time.Minute), Status: timeline.StatusActive},
	})

	got := sampleSteps(points, base, base.Add(2*time.Minute), 4)
	assert.Equal(t, []timeline.Status{
		timeline.StatusInactive, timeline.StatusInactive, timeline.StatusActive, timeline.StatusActive,
	}, got)

	zero := sampleSteps(points[:2], base, base, 3)
	assert.Len(t, zero, 3)
}
