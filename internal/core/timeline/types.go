package timeline

import (
	"time"
)

// Status is the binary state of an interval
type Status int

const (
	StatusInactive Status = 0
	StatusActive   Status = 1
)

func (s Status) String() string {
	if s == StatusActive {
		return "Active"
	}
	return "Inactive"
}

// Interval is a half-open span [Start, End) with a single status
type Interval struct {
	Start  time.Time `json:"start"`
	End    time.Time `json:"end"`
	Status Status    `json:"status"`
}

// Duration returns End - Start
func (iv Interval) Duration() time.Duration {
	return iv.End.Sub(iv.Start)
}

// Contains reports whether t lies in [Start, End)
func (iv Interval) Contains(t time.Time) bool {
	return !t.Before(iv.Start) && t.Before(iv.End)
}

// Point is one vertex of the stepped signal
type Point struct {
	Time   time.Time `json:"time"`
	Status Status    `json:"status"`
}

// Totals sums interval durations by status
type Totals struct {
	Active   time.Duration `json:"active"`
	Inactive time.Duration `json:"inactive"`
}

// Span returns the combined covered time
func (t Totals) Span() time.Duration {
	return t.Active + t.Inactive
}

// ActiveRatio returns the active share of the span in [0, 1]
func (t Totals) ActiveRatio() float64 {
	if t.Span() <= 0 {
		return 0
	}
	return float64(t.Active) / float64(t.Span())
}
