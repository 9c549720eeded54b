package top

import (
	"context"
	"sync"
	"time"

	"github.com/penwyp/go-activity-monitor/internal/data/client"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

// FetchResult is the outcome of one batch fetch
type FetchResult struct {
	Snapshot *client.Snapshot
	Err      error
	Duration time.Duration
}

// RefreshController runs batch fetches off the render goroutine
type RefreshController struct {
	fetcher DataFetcher

	mu       sync.Mutex
	inFlight bool
}

// NewRefreshController creates a new RefreshController instance
func NewRefreshController(fetcher DataFetcher) *RefreshController {
	return &RefreshController{fetcher: fetcher}
}

// Start launches a fetch and returns the channel its result arrives on.
// It returns nil when a fetch is already running.
func (rc *RefreshController) Start(ctx context.Context) <-chan FetchResult {
	rc.mu.Lock()
	if rc.inFlight {
		rc.mu.Unlock()
		util.LogDebug("Fetch already in flight, skipping")
		return nil
	}
	rc.inFlight = true
	rc.mu.Unlock()

	results := make(chan FetchResult, 1)
	go func() {
		start := time.Now()
		snap, err := rc.fetcher.FetchAll(ctx)

		rc.mu.Lock()
		rc.inFlight = false
		rc.mu.Unlock()

		results <- FetchResult{Snapshot: snap, Err: err, Duration: time.Since(start)}
		close(results)
	}()
	return results
}

// InFlight reports whether a fetch is running
func (rc *RefreshController) InFlight() bool {
	rc.mu.Lock()
	defer rc.mu.Unlock()
	return rc.inFlight
}
