package client

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	dailyJSON  = `[{"day":"2025-10-14","total_active_seconds":30600},{"day":"2025-10-13","total_active_seconds":7200}]`
	appsJSON   = `[{"app_name":"firefox","duration_seconds":125,"percentage":12.345}]`
	eventsJSON = `[{"event_time":"2025-10-13T10:00:00Z","event_type":"UNLOCKED","details":null}]`
)

func newBackend(t *testing.T, handlers map[string]http.HandlerFunc) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	for path, h := range handlers {
		mux.HandleFunc(path, h)
	}
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func jsonHandler(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

func TestNewNormalisesURL(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{input: "", expected: "http://localhost:5000"},
		{input: "tracker.local:5000", expected: "http://tracker.local:5000"},
		{input: "https://tracker.example.com/", expected: "https://tracker.example.com"},
	}
	for _, tt := range tests {
		c, err := New(tt.input)
		require.NoError(t, err)
		assert.Equal(t, tt.expected, c.BaseURL())
	}
}

func TestFetchAll(t *testing.T) {
	srv := newBackend(t, map[string]http.HandlerFunc{
		PathDailySummary:   jsonHandler(dailyJSON),
		PathAppUsage:       jsonHandler(appsJSON),
		PathActivityEvents: jsonHandler(eventsJSON),
	})

	c, err := New(srv.URL)
	require.NoError(t, err)

	snap, err := c.FetchAll(context.Background())
	require.NoError(t, err)

	require.Len(t, snap.DailySummary, 2)
	assert.Equal(t, "2025-10-14", snap.DailySummary[0].Day)
	require.Len(t, snap.AppUsage, 1)
	assert.Equal(t, "firefox", snap.AppUsage[0].AppName)
	require.Len(t, snap.ActivityEvents, 1)
	assert.Equal(t, "UNLOCKED", snap.ActivityEvents[0].EventType)
	assert.False(t, snap.FetchedAt.IsZero())
}

func TestFetchAllIssuesRequestsConcurrently(t *testing.T) {
	var (
		inFlight atomic.Int32
		release  = make(chan struct{})
		once     sync.Once
	)
	blocking := func(body string) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			if inFlight.Add(1) == 3 {
				once.Do(func() { close(release) })
			}
			select {
			case <-release:
			case <-time.After(2 * time.Second):
			}
			jsonHandler(body)(w, r)
		}
	}

	srv := newBackend(t, map[string]http.HandlerFunc{
		PathDailySummary:   blocking(dailyJSON),
		PathAppUsage:       blocking(appsJSON),
		PathActivityEvents: blocking(eventsJSON),
	})
	c, err := New(srv.URL)
	require.NoError(t, err)

	start := time.Now()
	_, err = c.FetchAll(context.Background())
	require.NoError(t, err)
	assert.Less(t, time.Since(start), 2*time.Second, "all three requests must be in flight together")
}

func TestFetchAllFailsOnHTTPError(t *testing.T) {
	srv := newBackend(t, map[string]http.HandlerFunc{
		PathDailySummary: jsonHandler(dailyJSON),
		PathAppUsage: func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "database unavailable", http.StatusBadGateway)
		},
		PathActivityEvents: jsonHandler(eventsJSON),
	})
	c, err := New(srv.URL)
	require.NoError(t, err)

	snap, err := c.FetchAll(context.Background())
	require.Error(t, err)
	assert.Nil(t, snap)

	var apiErr APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.Status)
	assert.Equal(t, PathAppUsage, apiErr.Path)
	assert.Contains(t, apiErr.Error(), "database unavailable")
}

func TestFetchAllFailsOnNonJSON(t *testing.T) {
	srv := newBackend(t, map[string]http.HandlerFunc{
		PathDailySummary:   jsonHandler("<html>oops</html>"),
		PathAppUsage:       jsonHandler(appsJSON),
		PathActivityEvents: jsonHandler(eventsJSON),
	})
	c, err := New(srv.URL)
	require.NoError(t, err)

	_, err = c.FetchAll(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decode "+PathDailySummary)
}

func TestFetchAllNetworkError(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	c, err := New(url, WithTimeout(time.Second))
	require.NoError(t, err)

	_, err = c.FetchAll(context.Background())
	assert.Error(t, err)
}

func TestSingleEndpoints(t *testing.T) {
	srv := newBackend(t, map[string]http.HandlerFunc{
		PathActivityEvents: jsonHandler(`[]`),
		PathDailySummary:   jsonHandler(`null`),
	})
	c, err := New(srv.URL, WithHTTPClient(srv.Client()))
	require.NoError(t, err)

	events, err := c.ActivityEvents(context.Background())
	require.NoError(t, err)
	assert.Empty(t, events)

	daily, err := c.DailySummary(context.Background())
	require.NoError(t, err)
	assert.Nil(t, daily)

	_, err = c.AppUsage(context.Background())
	var apiErr APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.Status)
}
