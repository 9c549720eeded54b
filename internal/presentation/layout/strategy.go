package layout

import (
	"io"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
)

// Param carries the per-frame rendering inputs
type Param struct {
	Width      int
	TimeFormat string
	Paused     bool
	Status     string
}

// LayoutStrategy defines the interface for different layout rendering strategies
type LayoutStrategy interface {
	Render(w io.Writer, view *model.DashboardView, param Param)
	GetName() string
}

// GetLayoutStrategy returns the appropriate layout strategy based on the style
func GetLayoutStrategy(layoutStyle int) LayoutStrategy {
	strategies := map[int]LayoutStrategy{
		0: &FullLayoutStrategy{},
		1: &CompactLayoutStrategy{},
	}

	if strategy, exists := strategies[layoutStyle]; exists {
		return strategy
	}

	// Default to full dashboard if invalid style
	return &FullLayoutStrategy{}
}

// LayoutCount is the number of selectable layout styles
const LayoutCount = 2
