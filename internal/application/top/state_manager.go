package top

import (
	"sync"
	"time"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
)

// StateManager manages application state in a thread-safe manner
type StateManager struct {
	mu sync.RWMutex

	// Latest dataset per section
	daily  []model.DailySummaryPoint
	apps   []model.AppUsagePoint
	events []model.ActivityEvent

	// Sections still showing their loading placeholder
	loading map[model.Section]bool

	// Interaction state
	interactionState model.InteractionState

	// Metadata
	lastDataUpdate time.Time
}

// NewStateManager creates a StateManager with every section loading
func NewStateManager() *StateManager {
	loading := make(map[model.Section]bool, len(model.AllSections))
	for _, s := range model.AllSections {
		loading[s] = true
	}
	return &StateManager{
		loading:          loading,
		interactionState: model.InteractionState{},
	}
}

// SetDaily stores the latest daily summary
func (sm *StateManager) SetDaily(points []model.DailySummaryPoint) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.daily = points
	sm.markLoaded(model.SectionDaily)
}

// SetAppUsage stores the latest app usage
func (sm *StateManager) SetAppUsage(points []model.AppUsagePoint) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.apps = points
	sm.markLoaded(model.SectionAppUsage)
}

// SetEvents stores the latest events, which feed both the timeline and the table
func (sm *StateManager) SetEvents(events []model.ActivityEvent) {
	sm.mu.Lock()
	defer sm.mu.Unlock()
	sm.events = events
	sm.markLoaded(model.SectionTimeline)
	sm.markLoaded(model.SectionEvents)
}

func (sm *StateManager) markLoaded(section model.Section) {
	sm.loading[section] = false
	sm.lastDataUpdate = time.Now()
}

// Daily returns the latest daily summary
func (sm *StateManager) Daily() []model.DailySummaryPoint {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.daily
}

// AppUsage returns the latest app usage
func (sm *StateManager) AppUsage() []model.AppUsagePoint {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.apps
}

// Events returns the latest activity events
func (sm *StateManager) Events() []model.ActivityEvent {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.events
}

// IsLoading reports whether section has not received data yet
func (sm *StateManager) IsLoading(section model.Section) bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	return sm.loading[section]
}

// LoadingSections returns a copy of the loading flags
func (sm *StateManager) LoadingSections() map[model.Section]bool {
	sm.mu.RLock()
	defer sm.mu.RUnlock()
	out := make(map[model.Section]bool, len(sm.loading))
	for k, v := range sm.loading {
		out[k] = v
	}
	return out
}

// GetInteractionState returns current interaction state
func (sm *StateManager) GetInteractionState() model.InteractionState {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	// Return a copy of the state
	return sm.interactionState
}

// UpdateInteractionState updates specific fields of interaction state
func (sm *StateManager) UpdateInteractionState(updateFunc func(*model.InteractionState)) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	updateFunc(&sm.interactionState)
}

// SetStatusMessage replaces the transient status line
func (sm *StateManager) SetStatusMessage(msg string) {
	sm.UpdateInteractionState(func(s *model.InteractionState) {
		s.StatusMessage = msg
	})
}

// GetLastDataUpdate returns the time of the last dataset received
func (sm *StateManager) GetLastDataUpdate() time.Time {
	sm.mu.RLock()
	defer sm.mu.RUnlock()

	return sm.lastDataUpdate
}
