package layout

import (
	"fmt"
	"io"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

// FullLayoutStrategy implements the full dashboard layout
type FullLayoutStrategy struct {
	BaseStrategy
}

func (s *FullLayoutStrategy) GetName() string {
	return "Full Dashboard"
}

func (s *FullLayoutStrategy) Render(w io.Writer, view *model.DashboardView, param Param) {
	width := s.width(param)

	s.TopBorder(w, width)
	s.StatusLine(w, view, param, width)
	fmt.Fprintln(w, util.SeparatorLine(width))

	for i, section := range model.AllSections {
		if i > 0 {
			fmt.Fprintln(w)
		}
		s.Section(w, view, section, 0)
	}

	s.BottomBorder(w, width)
	s.FooterHint(w)
}
