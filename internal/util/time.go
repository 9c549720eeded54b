package util

import (
	"fmt"
	"sync"
	"time"
)

// Layouts used when rendering timestamps for display
const (
	DateLayout       = "2006-01-02"
	ClockLayout24h   = "15:04:05"
	ClockLayout12h   = "03:04:05 PM"
	DateTime24Layout = DateLayout + " " + ClockLayout24h
	DateTime12Layout = DateLayout + " " + ClockLayout12h
)

// TimeProvider formats times in the configured timezone and clock style
type TimeProvider struct {
	location *time.Location
	use12h   bool
	now      func() time.Time
	mu       sync.RWMutex
}

var (
	globalTimeProvider *TimeProvider
	mu                 sync.Mutex
)

// NewTimeProvider builds a provider for timezone ("Local" or an IANA name) and timeFormat ("12h" or "24h")
func NewTimeProvider(timezone, timeFormat string) (*TimeProvider, error) {
	provider := &TimeProvider{now: time.Now}
	if err := provider.SetTimezone(timezone); err != nil {
		return nil, err
	}
	if err := provider.SetTimeFormat(timeFormat); err != nil {
		return nil, err
	}
	return provider, nil
}

// InitializeTimeProvider installs the process-wide provider
func InitializeTimeProvider(timezone, timeFormat string) error {
	provider, err := NewTimeProvider(timezone, timeFormat)
	if err != nil {
		return err
	}

	mu.Lock()
	defer mu.Unlock()
	globalTimeProvider = provider
	return nil
}

// GetTimeProvider returns the process-wide provider, defaulting to Local/24h
func GetTimeProvider() *TimeProvider {
	mu.Lock()
	defer mu.Unlock()
	if globalTimeProvider == nil {
		globalTimeProvider, _ = NewTimeProvider("Local", "24h")
	}
	return globalTimeProvider
}

// SetTimezone updates the display timezone
func (tp *TimeProvider) SetTimezone(timezone string) error {
	loc := time.Local
	if timezone != "" && timezone != "Local" && timezone != "auto" {
		l, err := time.LoadLocation(timezone)
		if err != nil {
			return fmt.Errorf("invalid timezone '%s': %w\nValid examples: Local, UTC, America/New_York, Asia/Shanghai, Europe/London", timezone, err)
		}
		loc = l
	}

	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.location = loc
	return nil
}

// SetTimeFormat switches between 12h and 24h clocks
func (tp *TimeProvider) SetTimeFormat(timeFormat string) error {
	var use12h bool
	switch timeFormat {
	case "", "24h":
	case "12h":
		use12h = true
	default:
		return fmt.Errorf("invalid time format '%s': must be either '12h' or '24h'", timeFormat)
	}

	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.use12h = use12h
	return nil
}

// SetClock overrides the wall clock
func (tp *TimeProvider) SetClock(now func() time.Time) {
	tp.mu.Lock()
	defer tp.mu.Unlock()
	tp.now = now
}

// Now returns the current time in the configured timezone
func (tp *TimeProvider) Now() time.Time {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.now().In(tp.location)
}

// Location returns the configured timezone
func (tp *TimeProvider) Location() *time.Location {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return tp.location
}

// Format formats t with layout in the configured timezone
func (tp *TimeProvider) Format(t time.Time, layout string) string {
	tp.mu.RLock()
	defer tp.mu.RUnlock()
	return t.In(tp.location).Format(layout)
}

// FormatDateTime renders a full local date and time, honouring the clock style
func (tp *TimeProvider) FormatDateTime(t time.Time) string {
	tp.mu.RLock()
	layout := DateTime24Layout
	if tp.use12h {
		layout = DateTime12Layout
	}
	tp.mu.RUnlock()
	return tp.Format(t, layout)
}

// FormatClock renders the time of day, honouring the clock style
func (tp *TimeProvider) FormatClock(t time.Time) string {
	tp.mu.RLock()
	layout := ClockLayout24h
	if tp.use12h {
		layout = ClockLayout12h
	}
	tp.mu.RUnlock()
	return tp.Format(t, layout)
}
