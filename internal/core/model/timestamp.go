package model

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

// Accepted wire layouts for event times. The tracker backend serialises datetimes the
// RFC1123 way ("Mon, 13 Oct 2025 10:00:00 GMT"); other producers send RFC3339.
var timestampLayouts = []string{
	time.RFC3339Nano,
	time.RFC1123,
	time.RFC1123Z,
	"2006-01-02 15:04:05",
	"2006-01-02T15:04:05",
	"2006-01-02",
}

// Timestamp is a time.Time that tolerates the layouts seen on the wire
type Timestamp struct {
	time.Time
}

// ParseTimestamp parses s with the first matching wire layout
func ParseTimestamp(s string) (Timestamp, error) {
	s = strings.TrimSpace(s)
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return Timestamp{Time: t}, nil
		}
	}
	return Timestamp{}, fmt.Errorf("unrecognised timestamp %q", s)
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))
	if raw == "null" || raw == `""` {
		*ts = Timestamp{}
		return nil
	}

	// Epoch seconds
	if n, err := strconv.ParseFloat(raw, 64); err == nil {
		sec := int64(n)
		*ts = Timestamp{Time: time.Unix(sec, int64((n-float64(sec))*1e9))}
		return nil
	}

	var s string
	if err := sonic.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("timestamp must be a string or epoch number: %w", err)
	}
	parsed, err := ParseTimestamp(s)
	if err != nil {
		return err
	}
	*ts = parsed
	return nil
}

func (ts Timestamp) MarshalJSON() ([]byte, error) {
	if ts.IsZero() {
		return []byte("null"), nil
	}
	return []byte(strconv.Quote(ts.Format(time.RFC3339))), nil
}
