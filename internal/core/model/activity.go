package model

import (
	"math"
	"strings"
	"time"
)

// ActivityEvent is one raw state-change record reported by the tracker
type ActivityEvent struct {
	EventTime Timestamp `json:"event_time"`
	EventType string    `json:"event_type"`
	Details   *string   `json:"details"`
}

// Tag returns the event type normalised for classification
func (e ActivityEvent) Tag() string {
	return strings.ToUpper(strings.TrimSpace(e.EventType))
}

// DetailText returns the details, or an empty string when absent
func (e ActivityEvent) DetailText() string {
	if e.Details == nil {
		return ""
	}
	return *e.Details
}

// DailySummaryPoint is the backend's per-day aggregate. It is consumed as given.
type DailySummaryPoint struct {
	Day                string     `json:"day"`
	TotalActiveSeconds Number     `json:"total_active_seconds"`
	FirstLogin         *Timestamp `json:"first_login,omitempty"`
	LastLogout         *Timestamp `json:"last_logout,omitempty"`
}

// DayLabel shortens a full datetime label to its date part; other labels pass through
func (p DailySummaryPoint) DayLabel() string {
	ts, err := ParseTimestamp(p.Day)
	if err != nil {
		return p.Day
	}
	return ts.Format("2006-01-02")
}

// AppUsagePoint is the backend's per-application aggregate. It is consumed as given.
type AppUsagePoint struct {
	AppName         string  `json:"app_name"`
	DurationSeconds Number  `json:"duration_seconds"`
	Percentage      *Number `json:"percentage,omitempty"`
	Day             string  `json:"day,omitempty"`
}

// WholeSeconds returns the duration truncated to whole seconds
func (p AppUsagePoint) WholeSeconds() int64 {
	return int64(math.Floor(p.DurationSeconds.Float()))
}

// Duration returns the usage as a time.Duration
func (p AppUsagePoint) Duration() time.Duration {
	return time.Duration(p.DurationSeconds.Float() * float64(time.Second))
}
