package top

import (
	"fmt"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/core/timeline"
	"github.com/penwyp/go-activity-monitor/internal/data/client"
	"github.com/penwyp/go-activity-monitor/internal/data/push"
	"github.com/penwyp/go-activity-monitor/internal/presentation/chart"
	"github.com/penwyp/go-activity-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

// Dispatcher routes datasets to their chart controllers. It is owned by the
// render goroutine and is not safe for concurrent use.
type Dispatcher struct {
	state        *StateManager
	timeProvider *util.TimeProvider

	daily    *chart.DailyChart
	apps     *chart.AppUsageChart
	timeline *chart.TimelineChart
	events   []string

	width  int
	source string
}

// NewDispatcher creates the chart controllers; builder closes the open interval
func NewDispatcher(state *StateManager, builder *timeline.Builder, tp *util.TimeProvider, source string) *Dispatcher {
	if tp == nil {
		tp = util.GetTimeProvider()
	}
	return &Dispatcher{
		state:        state,
		timeProvider: tp,
		daily:        chart.NewDailyChart(),
		apps:         chart.NewAppUsageChart(),
		timeline:     chart.NewTimelineChart(builder, tp),
		width:        80,
		source:       source,
	}
}

// Dispatch applies one push update. A panic while rendering is recovered and
// returned; that render is not retried.
func (d *Dispatcher) Dispatch(update push.Update) error {
	switch u := update.(type) {
	case push.DailySummaryUpdate:
		return d.guard(u.Kind(), func() { d.applyDaily(u.Points) })
	case push.AppUsageUpdate:
		return d.guard(u.Kind(), func() { d.applyAppUsage(u.Points) })
	case push.ActivityEventsUpdate:
		return d.guard(u.Kind(), func() { d.applyEvents(u.Events) })
	default:
		util.LogWarn("Ignoring unsupported update", util.F("type", fmt.Sprintf("%T", update)))
		return nil
	}
}

// ApplySnapshot renders every dataset of a batch fetch
func (d *Dispatcher) ApplySnapshot(snap *client.Snapshot) error {
	if snap == nil {
		return nil
	}
	var firstErr error
	for _, step := range []struct {
		kind push.Kind
		fn   func()
	}{
		{push.KindDailySummary, func() { d.applyDaily(snap.DailySummary) }},
		{push.KindAppUsage, func() { d.applyAppUsage(snap.AppUsage) }},
		{push.KindActivityEvents, func() { d.applyEvents(snap.ActivityEvents) }},
	} {
		if err := d.guard(step.kind, step.fn); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// Tick re-closes the open timeline interval at the current time
func (d *Dispatcher) Tick() {
	if d.state.IsLoading(model.SectionTimeline) {
		return
	}
	_ = d.guard(push.KindActivityEvents, d.timeline.Redraw)
}

// SetWidth redraws every chart for a new content width
func (d *Dispatcher) SetWidth(width int) {
	if width <= 0 || width == d.width {
		return
	}
	d.width = width
	_ = d.guard("resize", func() {
		d.daily.SetWidth(width)
		d.apps.SetWidth(width)
		d.timeline.SetWidth(width)
		if !d.state.IsLoading(model.SectionEvents) {
			d.renderEvents(d.state.Events())
		}
	})
}

// View assembles the latest drawing of every section
func (d *Dispatcher) View() *model.DashboardView {
	view := &model.DashboardView{
		Sections: map[model.Section][]string{
			model.SectionDaily:    d.daily.View(),
			model.SectionAppUsage: d.apps.View(),
			model.SectionTimeline: d.timeline.View(),
			model.SectionEvents:   d.events,
		},
		Loading: d.state.LoadingSections(),
		Source:  d.source,
	}
	if last := d.state.GetLastDataUpdate(); !last.IsZero() {
		view.Updated = d.timeProvider.FormatClock(last)
	}
	return view
}

// Report returns the current datasets for export
func (d *Dispatcher) Report() *formatter.Report {
	return &formatter.Report{
		DailySummary:   d.state.Daily(),
		AppUsage:       d.state.AppUsage(),
		ActivityEvents: d.state.Events(),
		Timeline:       d.timeline.Intervals(),
		GeneratedAt:    d.timeProvider.Now(),
	}
}

// Close releases every chart resource
func (d *Dispatcher) Close() {
	d.daily.Close()
	d.apps.Close()
	d.timeline.Close()
}

func (d *Dispatcher) applyDaily(points []model.DailySummaryPoint) {
	d.state.SetDaily(points)
	d.daily.Replace(points)
	util.LogDebug("Daily chart updated", util.F("points", len(points)))
}

func (d *Dispatcher) applyAppUsage(points []model.AppUsagePoint) {
	d.state.SetAppUsage(points)
	d.apps.Replace(points)
	util.LogDebug("App usage chart updated", util.F("apps", len(points)))
}

// applyEvents feeds one event set to both the table and the timeline
func (d *Dispatcher) applyEvents(events []model.ActivityEvent) {
	d.state.SetEvents(events)
	d.renderEvents(events)
	d.timeline.Replace(events)
	util.LogDebug("Activity events updated", util.F("events", len(events)),
		util.F("intervals", len(d.timeline.Intervals())))
}

func (d *Dispatcher) renderEvents(events []model.ActivityEvent) {
	d.events = formatter.EventsTable(events, d.timeProvider).SetMaxWidth(d.width).Lines()
}

func (d *Dispatcher) guard(kind push.Kind, fn func()) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("render %s: %v", kind, r)
			util.LogError("Render failed", util.F("update", string(kind)), util.F("panic", r))
		}
	}()
	fn()
	return nil
}
