package top

import (
	"context"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/data/client"
	"github.com/penwyp/go-activity-monitor/internal/presentation/interaction"
)

// DataFetcher performs the batch pull of all datasets
type DataFetcher interface {
	// FetchAll issues the pull requests together and waits for all of them
	FetchAll(ctx context.Context) (*client.Snapshot, error)
}

// DisplayController handles terminal display operations
type DisplayController interface {
	// EnterAlternateScreen switches to alternate terminal screen
	EnterAlternateScreen()
	// ExitAlternateScreen returns to normal terminal screen
	ExitAlternateScreen()
	// SetWidth fixes the frame width
	SetWidth(width int)
	// RenderWithState renders the dashboard with the given interaction state
	RenderWithState(view *model.DashboardView, state model.InteractionState)
}

// InputHandler processes keyboard and other input events
type InputHandler interface {
	// Events returns a channel of keyboard events
	Events() <-chan interaction.KeyEvent
	// Close cleans up input handler resources
	Close() error
}
