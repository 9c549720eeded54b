package layout

import (
	"fmt"
	"io"
	"strings"

	"github.com/penwyp/go-activity-monitor/internal/core/model"
	"github.com/penwyp/go-activity-monitor/internal/util"
)

const appTitle = "Activity Monitor"

// BaseStrategy provides common functionality for all layout strategies
type BaseStrategy struct {
}

// GetSizer returns the shared sizer instance
func (b *BaseStrategy) GetSizer() *Sizer {
	return sharedSizer
}

// width resolves the frame width, asking the terminal when the caller left it unset
func (b *BaseStrategy) width(param Param) int {
	if param.Width > 0 {
		return param.Width
	}
	return b.GetSizer().GetMaxWidth()
}

// TopBorder draws the rounded top border with the title centred in it
func (b *BaseStrategy) TopBorder(w io.Writer, width int) {
	title := " " + appTitle + " "
	rule := width - 2 - util.GetDisplayWidth(title)
	if rule < 2 {
		fmt.Fprintln(w, util.FormatHeaderTitle(appTitle))
		return
	}
	left := rule / 2
	fmt.Fprintln(w, "╭"+strings.Repeat("─", left)+util.FormatHeaderTitle(title)+strings.Repeat("─", rule-left)+"╮")
}

// BottomBorder draws the rounded bottom border
func (b *BaseStrategy) BottomBorder(w io.Writer, width int) {
	fmt.Fprintln(w, "╰"+strings.Repeat("─", max(width-2, 0))+"╯")
}

// StatusLine shows the data source, last update and transient status
func (b *BaseStrategy) StatusLine(w io.Writer, view *model.DashboardView, param Param, width int) {
	left := "Source: " + view.Source
	if view.Updated != "" {
		left += "  Updated: " + view.Updated
	}

	right := param.Status
	if param.Paused {
		right = strings.TrimSpace("PAUSED " + right)
	}

	gap := width - util.GetDisplayWidth(left) - util.GetDisplayWidth(right)
	if gap < 1 {
		fmt.Fprintln(w, left)
		if right != "" {
			fmt.Fprintln(w, util.FormatPlaceholder(right))
		}
		return
	}
	if right != "" {
		right = util.FormatPlaceholder(right)
	}
	fmt.Fprintln(w, left+strings.Repeat(" ", gap)+right)
}

// Section draws a titled block. A section still loading shows its loading text.
func (b *BaseStrategy) Section(w io.Writer, view *model.DashboardView, section model.Section, limit int) {
	fmt.Fprintln(w, util.FormatSectionTitle(section.Title()))

	if view.Loading[section] {
		fmt.Fprintln(w, "  "+util.FormatPlaceholder(section.LoadingText()))
		return
	}

	lines := view.Sections[section]
	if limit > 0 && len(lines) > limit {
		hidden := len(lines) - limit
		lines = append(lines[:limit:limit], fmt.Sprintf("… %d more", hidden))
	}
	for _, line := range lines {
		fmt.Fprintln(w, "  "+line)
	}
}

// FooterHint lists the key bindings
func (b *BaseStrategy) FooterHint(w io.Writer) {
	fmt.Fprintln(w, util.FormatPlaceholder("q quit · r refresh · p pause · t layout · h help"))
}
