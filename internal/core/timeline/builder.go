package timeline

import (
	"sort"
	"time"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
)

// Builder reconstructs active/inactive intervals from lock/unlock style events
type Builder struct {
	classifier *Classifier
	now        func() time.Time
}

// Option configures a Builder
type Option func(*Builder)

// WithClassifier overrides the tag classifier
func WithClassifier(c *Classifier) Option {
	return func(b *Builder) {
		if c != nil {
			b.classifier = c
		}
	}
}

// WithClock overrides the wall clock used to close the trailing interval
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// NewBuilder creates a Builder with the default tag sets and time.Now
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		classifier: DefaultClassifier(),
		now:        time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// SortEvents returns a copy of events ordered by time. Events with equal
// timestamps keep their arrival order.
func SortEvents(events []model.ActivityEvent) []model.ActivityEvent {
	sorted := make([]model.ActivityEvent, len(events))
	copy(sorted, events)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].EventTime.Before(sorted[j].EventTime.Time)
	})
	return sorted
}

// Build converts events, in any order, into chronologically ordered, contiguous intervals.
// The input slice is not modified.
func (b *Builder) Build(events []model.ActivityEvent) []Interval {
	if len(events) == 0 {
		return nil
	}

	var (
		intervals []Interval
		open      *Interval
	)

	for _, ev := range SortEvents(events) {
		ts := ev.EventTime.Time

		switch b.classifier.Classify(ev.EventType) {
		case TransitionResume:
			if open != nil {
				open.End = ts
				intervals = append(intervals, *open)
			}
			open = &Interval{Start: ts, Status: StatusActive}

		case TransitionSuspend:
			switch {
			case open == nil:
				// Unknown past is treated as inactive
				open = &Interval{Start: ts, Status: StatusInactive}
			case open.Status == StatusActive:
				open.End = ts
				intervals = append(intervals, *open)
				open = &Interval{Start: ts, Status: StatusInactive}
			}
			// already inactive: consecutive suspends coalesce
		}
	}

	if open != nil {
		end := b.now()
		if end.Before(open.Start) {
			end = open.Start
		}
		open.End = end
		intervals = append(intervals, *open)
	}

	return intervals
}

// StepPoints expands intervals into the vertices of a stepped signal: each interval
// contributes its start and its end, both carrying the interval's status.
func StepPoints(intervals []Interval) []Point {
	points := make([]Point, 0, len(intervals)*2)
	for _, iv := range intervals {
		points = append(points,
			Point{Time: iv.Start, Status: iv.Status},
			Point{Time: iv.End, Status: iv.Status},
		)
	}
	return points
}

// StatusAt returns the status of the interval covering t. The final interval's end is
// treated as inclusive. ok is false when t falls outside every interval.
func StatusAt(intervals []Interval, t time.Time) (Status, bool) {
	idx := sort.Search(len(intervals), func(i int) bool {
		return intervals[i].End.After(t)
	})
	if idx < len(intervals) && intervals[idx].Contains(t) {
		return intervals[idx].Status, true
	}
	if n := len(intervals); n > 0 && t.Equal(intervals[n-1].End) {
		return intervals[n-1].Status, true
	}
	return StatusInactive, false
}

// Summarize totals the time spent in each status
func Summarize(intervals []Interval) Totals {
	var totals Totals
	for _, iv := range intervals {
		if iv.Status == StatusActive {
			totals.Active += iv.Duration()
		} else {
			totals.Inactive += iv.Duration()
		}
	}
	return totals
}
