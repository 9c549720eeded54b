package model

import (
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivityEventDecoding(t *testing.T) {
	payload := `[
		{"event_time": "Mon, 13 Oct 2025 10:00:00 GMT", "event_type": "unlocked", "details": "session 2"},
		{"event_time": "2025-10-13T11:30:00Z", "event_type": "LOCKED", "details": null},
		{"event_time": "2025-10-13 12:00:00", "event_type": "SUSPEND"}
	]`

	var events []ActivityEvent
	require.NoError(t, sonic.Unmarshal([]byte(payload), &events))
	require.Len(t, events, 3)

	assert.True(t, events[0].EventTime.Equal(time.Date(2025, 10, 13, 10, 0, 0, 0, time.UTC)))
	assert.Equal(t, "UNLOCKED", events[0].Tag())
	assert.Equal(t, "unlocked", events[0].EventType, "event type is kept verbatim")
	assert.Equal(t, "session 2", events[0].DetailText())

	assert.True(t, events[1].EventTime.Equal(time.Date(2025, 10, 13, 11, 30, 0, 0, time.UTC)))
	assert.Nil(t, events[1].Details)
	assert.Equal(t, "", events[1].DetailText())

	assert.Equal(t, 12, events[2].EventTime.UTC().Hour())
}

func TestTimestampRejectsGarbage(t *testing.T) {
	var ev ActivityEvent
	err := sonic.Unmarshal([]byte(`{"event_time": "yesterday", "event_type": "LOCKED"}`), &ev)
	assert.Error(t, err)
}

func TestTimestampEpochAndNull(t *testing.T) {
	var ts Timestamp
	require.NoError(t, ts.UnmarshalJSON([]byte("1760349600")))
	assert.Equal(t, int64(1760349600), ts.Unix())

	require.NoError(t, ts.UnmarshalJSON([]byte("null")))
	assert.True(t, ts.IsZero())

	out, err := Timestamp{Time: time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)}.MarshalJSON()
	require.NoError(t, err)
	assert.Equal(t, `"2025-01-01T00:00:00Z"`, string(out))
}

func TestDailySummaryDecoding(t *testing.T) {
	payload := `[
		{"day": "Tue, 14 Oct 2025 00:00:00 GMT", "total_active_seconds": 30600, "first_login": "Tue, 14 Oct 2025 08:01:00 GMT", "last_logout": null},
		{"day": "2025-10-13", "total_active_seconds": "7200"}
	]`

	var points []DailySummaryPoint
	require.NoError(t, sonic.Unmarshal([]byte(payload), &points))
	require.Len(t, points, 2)

	assert.Equal(t, "2025-10-14", points[0].DayLabel())
	assert.Equal(t, 30600.0, points[0].TotalActiveSeconds.Float())
	require.NotNil(t, points[0].FirstLogin)
	assert.Equal(t, 8, points[0].FirstLogin.UTC().Hour())
	assert.Nil(t, points[0].LastLogout)

	assert.Equal(t, "2025-10-13", points[1].DayLabel())
	assert.Equal(t, 7200.0, points[1].TotalActiveSeconds.Float(), "numeric strings are accepted")
}

func TestDayLabelPassthrough(t *testing.T) {
	p := DailySummaryPoint{Day: "week 42"}
	assert.Equal(t, "week 42", p.DayLabel())
}

func TestAppUsageDecoding(t *testing.T) {
	payload := `[
		{"app_name": "firefox", "duration_seconds": "125", "percentage": 12.345},
		{"app_name": "code", "duration_seconds": 3600.7}
	]`

	var points []AppUsagePoint
	require.NoError(t, sonic.Unmarshal([]byte(payload), &points))
	require.Len(t, points, 2)

	assert.Equal(t, int64(125), points[0].WholeSeconds())
	require.NotNil(t, points[0].Percentage)
	assert.Equal(t, 12.345, points[0].Percentage.Float())
	assert.Equal(t, 125*time.Second, points[0].Duration())

	assert.Equal(t, int64(3600), points[1].WholeSeconds())
	assert.Nil(t, points[1].Percentage)
}

func TestNumberRejectsText(t *testing.T) {
	var n Number
	assert.Error(t, n.UnmarshalJSON([]byte(`"lots"`)))
}

func TestSectionLabels(t *testing.T) {
	for _, s := range AllSections {
		assert.NotEmpty(t, s.Title())
		assert.NotEqual(t, "unknown", s.String())
	}
	assert.Equal(t, "Loading activity timeline...", SectionTimeline.LoadingText())
}
