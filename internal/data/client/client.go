package client

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

// Pull endpoints served by the tracker backend
const (
	PathDailySummary   = "/api/daily_summary"
	PathAppUsage       = "/api/app_usage"
	PathActivityEvents = "/api/activity_events"
)

const maxErrorBody = 4 << 10

// Client performs read-only requests against the tracker backend
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option customises client instantiation
type Option func(*Client)

// WithHTTPClient overrides the default HTTP client
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout sets the per-request timeout of the default HTTP client
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.httpClient.Timeout = d
		}
	}
}

// New constructs a Client pointing at the backend base URL
func New(base string, opts ...Option) (*Client, error) {
	trimmed := strings.TrimSpace(base)
	if trimmed == "" {
		trimmed = "http://localhost:5000"
	}
	if !strings.HasPrefix(trimmed, "http://") && !strings.HasPrefix(trimmed, "https://") {
		trimmed = "http://" + trimmed
	}
	if _, err := url.Parse(trimmed); err != nil {
		return nil, fmt.Errorf("invalid server url: %w", err)
	}

	c := &Client{
		baseURL:    strings.TrimRight(trimmed, "/"),
		httpClient: &http.Client{Timeout: 15 * time.Second},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// BaseURL returns the normalised backend URL
func (c *Client) BaseURL() string {
	return c.baseURL
}

// APIError is returned for HTTP error statuses
type APIError struct {
	Path    string
	Status  int
	Message string
}

func (e APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("GET %s failed with status %d", e.Path, e.Status)
	}
	return fmt.Sprintf("GET %s failed (%d): %s", e.Path, e.Status, e.Message)
}

// DailySummary fetches the per-day aggregates, newest first
func (c *Client) DailySummary(ctx context.Context) ([]model.DailySummaryPoint, error) {
	var out []model.DailySummaryPoint
	if err := c.get(ctx, PathDailySummary, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// AppUsage fetches the per-application aggregates
func (c *Client) AppUsage(ctx context.Context) ([]model.AppUsagePoint, error) {
	var out []model.AppUsagePoint
	if err := c.get(ctx, PathAppUsage, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// ActivityEvents fetches the most recent raw activity events
func (c *Client) ActivityEvents(ctx context.Context) ([]model.ActivityEvent, error) {
	var out []model.ActivityEvent
	if err := c.get(ctx, PathActivityEvents, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Snapshot is the result of one batch fetch
type Snapshot struct {
	DailySummary   []model.DailySummaryPoint `json:"daily_summary"`
	AppUsage       []model.AppUsagePoint     `json:"app_usage"`
	ActivityEvents []model.ActivityEvent     `json:"activity_events"`
	FetchedAt      time.Time                 `json:"fetched_at"`
}

// FetchAll issues the three pull requests together and waits for all of them.
// Any failure fails the batch; the errors of every failed request are joined.
func (c *Client) FetchAll(ctx context.Context) (*Snapshot, error) {
	start := time.Now()
	snap := &Snapshot{}

	var (
		wg       sync.WaitGroup
		errMu    sync.Mutex
		failures []error
	)
	run := func(fn func() error) {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := fn(); err != nil {
				errMu.Lock()
				failures = append(failures, err)
				errMu.Unlock()
			}
		}()
	}

	run(func() (err error) {
		snap.DailySummary, err = c.DailySummary(ctx)
		return err
	})
	run(func() (err error) {
		snap.AppUsage, err = c.AppUsage(ctx)
		return err
	})
	run(func() (err error) {
		snap.ActivityEvents, err = c.ActivityEvents(ctx)
		return err
	})
	wg.Wait()

	if len(failures) > 0 {
		return nil, fmt.Errorf("initial fetch: %w", errors.Join(failures...))
	}

	snap.FetchedAt = time.Now()
	util.LogDebug("Batch fetch completed",
		util.F("duration", time.Since(start)),
		util.F("daily", len(snap.DailySummary)),
		util.F("apps", len(snap.AppUsage)),
		util.F("events", len(snap.ActivityEvents)))
	return snap, nil
}

func (c *Client) get(ctx context.Context, path string, v any) error {
	if ctx == nil {
		ctx = context.Background()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("create request %s: %w", path, err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= http.StatusBadRequest {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return APIError{Path: path, Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := sonic.Unmarshal(body, v); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
