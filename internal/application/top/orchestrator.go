package top

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/core/timeline"
	"github.com/penwyp/go-activity-monitor/internal/data/client"
	"github.com/penwyp/go-activity-monitor/internal/data/push"
	"github.com/penwyp/go-activity-monitor/internal/presentation/display"
	"github.com/penwyp/go-activity-monitor/internal/presentation/formatter"
	"github.com/penwyp/go-activity-monitor/internal/presentation/interaction"
	"github.com/penwyp/go-activity-monitor/internal/presentation/layout"
	"github.com/penwyp/go-activity-monitor/internal/util"
	"golang.org/x/sys/unix"
)

// sectionIndent is the horizontal space a layout spends around section content
const sectionIndent = 4

// Status messages owned by the batch pull
const (
	statusRefreshing  = "refreshing..."
	statusFetchFailed = "fetch failed, press r to retry"
)

// Orchestrator coordinates all components for the top command
type Orchestrator struct {
	config *TopConfig

	// Core components
	refreshCtrl  *RefreshController
	stateManager *StateManager
	dispatcher   *Dispatcher

	// UI components
	display DisplayController
	input   InputHandler
	width   int

	// Push intake
	subscription push.Subscription
	openPush     func(ctx context.Context, cfg push.Config) (push.Subscription, error)
}

// Option customizes an Orchestrator
type Option func(*Orchestrator)

// WithFetcher replaces the HTTP client used for the batch pull
func WithFetcher(f DataFetcher) Option {
	return func(o *Orchestrator) {
		o.refreshCtrl = NewRefreshController(f)
	}
}

// WithDisplay replaces the terminal display
func WithDisplay(d DisplayController) Option {
	return func(o *Orchestrator) {
		o.display = d
	}
}

// WithInput replaces the keyboard reader
func WithInput(in InputHandler) Option {
	return func(o *Orchestrator) {
		o.input = in
	}
}

// WithSubscription uses an already opened push subscription
func WithSubscription(sub push.Subscription) Option {
	return func(o *Orchestrator) {
		o.openPush = func(context.Context, push.Config) (push.Subscription, error) {
			return sub, nil
		}
	}
}

// WithWidth fixes the frame width instead of following the terminal
func WithWidth(width int) Option {
	return func(o *Orchestrator) {
		o.width = width
	}
}

// NewOrchestrator creates a new Orchestrator instance
func NewOrchestrator(config *TopConfig, opts ...Option) (*Orchestrator, error) {
	// Validate config
	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	tp, err := util.NewTimeProvider(config.Timezone, config.TimeFormat)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize timezone: %w", err)
	}

	stateManager := NewStateManager()
	builder := timeline.NewBuilder(timeline.WithClock(tp.Now))

	source := config.ServerURL
	if config.PushTransport != push.TransportNone {
		source += " + " + config.PushTransport
	}

	o := &Orchestrator{
		config:       config,
		stateManager: stateManager,
		dispatcher:   NewDispatcher(stateManager, builder, tp, source),
		openPush:     push.Open,
	}
	for _, opt := range opts {
		opt(o)
	}

	if o.refreshCtrl == nil {
		c, err := client.New(config.ServerURL, client.WithTimeout(config.RequestTimeout))
		if err != nil {
			return nil, fmt.Errorf("failed to create client: %w", err)
		}
		o.refreshCtrl = NewRefreshController(c)
	}
	if o.display == nil {
		o.display = display.NewTerminalDisplay(display.DisplayConfig{TimeFormat: config.TimeFormat})
	}

	return o, nil
}

// Run starts the orchestrator main loop
func (o *Orchestrator) Run(ctx context.Context) error {
	util.LogInfo("Starting Activity Monitor Top...", util.F("server", o.config.ServerURL),
		util.F("push", o.config.PushTransport))

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	defer o.Close()

	// Phase 1: Initialize keyboard
	if o.input == nil {
		keyboard, err := interaction.NewKeyboardReader()
		if err != nil {
			return fmt.Errorf("failed to initialize keyboard: %w", err)
		}
		o.input = keyboard
	}

	// Enter alternate screen mode
	o.display.EnterAlternateScreen()
	defer o.display.ExitAlternateScreen()

	o.resize()
	o.updateDisplay()

	// Phase 2: Subscribe to pushes before pulling so nothing is missed in between
	var updates <-chan push.Update
	sub, err := o.openPush(ctx, o.config.PushConfig())
	if err != nil {
		util.LogError("Push subscription failed", util.F("transport", o.config.PushTransport), util.F("error", err))
		o.stateManager.SetStatusMessage("push unavailable")
	} else if sub != nil {
		o.subscription = sub
		updates = sub.Updates()
	}

	// Phase 3: Initial batch pull
	fetches := o.refreshCtrl.Start(ctx)

	// Phase 4: Main event loop
	uiTicker := time.NewTicker(time.Duration(1000/o.config.UIRefreshRate) * time.Millisecond)
	defer uiTicker.Stop()

	resized := make(chan os.Signal, 1)
	signal.Notify(resized, unix.SIGWINCH)
	defer signal.Stop(resized)

	for {
		select {
		case <-ctx.Done():
			util.LogInfo("Shutting down Activity Monitor Top...")
			return nil

		case update, ok := <-updates:
			if !ok {
				util.LogWarn("Push subscription ended", util.F("transport", o.config.PushTransport))
				o.stateManager.SetStatusMessage("push disconnected")
				updates = nil
				o.updateDisplay()
				continue
			}
			o.handleUpdate(update)

		case result, ok := <-fetches:
			fetches = nil
			if ok {
				o.handleFetch(result)
			}

		case <-uiTicker.C:
			// UI refresh
			if !o.stateManager.GetInteractionState().IsPaused {
				o.dispatcher.Tick()
				o.updateDisplay()
			}

		case <-resized:
			o.resize()
			o.updateDisplay()

		case keyEvent, ok := <-o.input.Events():
			if !ok {
				return nil
			}
			quit, refetch := o.handleKeyboard(keyEvent)
			if quit {
				return nil // Exit requested
			}
			if refetch && fetches == nil {
				fetches = o.refreshCtrl.Start(ctx)
			}
			o.updateDisplay() // Update display after keyboard action
		}
	}
}

// Report returns the datasets currently on screen
func (o *Orchestrator) Report() *formatter.Report {
	return o.dispatcher.Report()
}

// handleUpdate renders one pushed dataset
func (o *Orchestrator) handleUpdate(update push.Update) {
	util.LogDebug("Push update received", util.F("kind", string(update.Kind())))
	if err := o.dispatcher.Dispatch(update); err != nil {
		o.stateManager.SetStatusMessage(err.Error())
	}
	if !o.stateManager.GetInteractionState().IsPaused {
		o.updateDisplay()
	}
}

// handleFetch renders a batch pull. A failed pull leaves every placeholder in place.
func (o *Orchestrator) handleFetch(result FetchResult) {
	if result.Err != nil {
		util.LogError("Failed to fetch initial data", util.F("error", result.Err),
			util.F("duration", result.Duration.String()))
		o.stateManager.SetStatusMessage(statusFetchFailed)
		o.updateDisplay()
		return
	}

	util.LogInfo("Initial data loaded",
		util.F("daily", len(result.Snapshot.DailySummary)),
		util.F("apps", len(result.Snapshot.AppUsage)),
		util.F("events", len(result.Snapshot.ActivityEvents)),
		util.F("duration", result.Duration.String()))

	if err := o.dispatcher.ApplySnapshot(result.Snapshot); err != nil {
		o.stateManager.SetStatusMessage(err.Error())
	} else if msg := o.stateManager.GetInteractionState().StatusMessage; msg == statusRefreshing || msg == statusFetchFailed {
		o.stateManager.SetStatusMessage("")
	}
	o.updateDisplay()
}

// handleKeyboard handles keyboard events, reporting whether to quit or pull again
func (o *Orchestrator) handleKeyboard(event interaction.KeyEvent) (quit, refetch bool) {
	switch event.Type {
	case interaction.KeyCtrlC:
		return true, false
	case interaction.KeyEscape:
		// If help is shown, close it; otherwise quit
		if o.stateManager.GetInteractionState().ShowHelp {
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.ShowHelp = false
			})
			return false, false
		}
		return true, false
	case interaction.KeyChar:
		switch event.Key {
		case 'q', 'Q':
			return true, false
		case 'r', 'R':
			o.stateManager.SetStatusMessage(statusRefreshing)
			return false, true
		case 'p', 'P':
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.IsPaused = !s.IsPaused
			})
		case 'h', 'H', '?':
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.ShowHelp = !s.ShowHelp
			})
		case 't', 'T':
			// Cycle through layout styles
			o.stateManager.UpdateInteractionState(func(s *model.InteractionState) {
				s.LayoutStyle = (s.LayoutStyle + 1) % layout.LayoutCount
			})
		}
	}
	return false, false
}

// resize applies the terminal width to the frame and the charts
func (o *Orchestrator) resize() {
	width := o.width
	if width <= 0 {
		width = layout.NewSizer(0).GetMaxWidth()
	}
	o.display.SetWidth(width)
	o.dispatcher.SetWidth(width - sectionIndent)
}

// updateDisplay updates the terminal display
func (o *Orchestrator) updateDisplay() {
	o.display.RenderWithState(o.dispatcher.View(), o.stateManager.GetInteractionState())
}

// Close cleans up all resources
func (o *Orchestrator) Close() error {
	var firstErr error
	if o.subscription != nil {
		if err := o.subscription.Close(); err != nil {
			util.LogError("Failed to close push subscription", util.F("error", err))
			firstErr = err
		}
	}
	if o.input != nil {
		if err := o.input.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	o.dispatcher.Close()
	return firstErr
}
