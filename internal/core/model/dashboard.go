package model

// Section identifies one of the dashboard's views
type Section int

const (
	SectionDaily Section = iota
	SectionAppUsage
	SectionTimeline
	SectionEvents
)

// AllSections lists the views in display order
var AllSections = []Section{SectionDaily, SectionAppUsage, SectionTimeline, SectionEvents}

func (s Section) String() string {
	switch s {
	case SectionDaily:
		return "daily"
	case SectionAppUsage:
		return "app_usage"
	case SectionTimeline:
		return "timeline"
	case SectionEvents:
		return "events"
	default:
		return "unknown"
	}
}

// Title is the heading shown above the section
func (s Section) Title() string {
	switch s {
	case SectionDaily:
		return "Daily Active Hours"
	case SectionAppUsage:
		return "Application Usage"
	case SectionTimeline:
		return "Activity Timeline"
	case SectionEvents:
		return "Recent Activity Events"
	default:
		return ""
	}
}

// LoadingText is shown until the first dataset for the section arrives
func (s Section) LoadingText() string {
	switch s {
	case SectionDaily:
		return "Loading daily summary..."
	case SectionAppUsage:
		return "Loading app usage..."
	case SectionTimeline:
		return "Loading activity timeline..."
	case SectionEvents:
		return "Loading activity events..."
	default:
		return "Loading..."
	}
}

// InteractionState is the keyboard-driven UI state
type InteractionState struct {
	IsPaused      bool
	ShowHelp      bool
	LayoutStyle   int // 0: full, 1: compact
	StatusMessage string
}

// DashboardView is what the display draws: one block of lines per section
type DashboardView struct {
	Sections map[Section][]string
	Loading  map[Section]bool
	Source   string
	Updated  string
}
