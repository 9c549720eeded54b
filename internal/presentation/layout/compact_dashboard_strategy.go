package layout

import (
	"io"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
)

// compactEventRows caps the events table at header plus a few rows
const compactEventRows = 10

// CompactLayoutStrategy shows the timeline and the latest events only
type CompactLayoutStrategy struct {
	BaseStrategy
}

func (s *CompactLayoutStrategy) GetName() string {
	return "Compact Dashboard"
}

func (s *CompactLayoutStrategy) Render(w io.Writer, view *model.DashboardView, param Param) {
	width := s.width(param)

	s.TopBorder(w, width)
	s.StatusLine(w, view, param, width)
	s.Section(w, view, model.SectionTimeline, 0)
	s.Section(w, view, model.SectionEvents, compactEventRows)
	s.BottomBorder(w, width)
}
