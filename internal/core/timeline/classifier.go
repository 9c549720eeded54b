package timeline

import (
	"strings"
)

// Transition is the effect an event tag has on the active/inactive signal
type Transition int

const (
	TransitionNone Transition = iota
	TransitionResume
	TransitionSuspend
)

// Default tag sets. BOOT/RESUME is logged before the session's lock state is
// known, so it is left unclassified and only shows in the event table.
var (
	DefaultResumeTags  = []string{"UNLOCKED", "LOGIN"}
	DefaultSuspendTags = []string{"LOCKED", "SHUTDOWN", "SUSPEND"}
)

// Classifier maps event tags to transitions, case-insensitively
type Classifier struct {
	tags map[string]Transition
}

// NewClassifier builds a classifier from resume and suspend tag lists.
// A tag listed in both keeps its suspend meaning.
func NewClassifier(resume, suspend []string) *Classifier {
	c := &Classifier{tags: make(map[string]Transition, len(resume)+len(suspend))}
	for _, tag := range resume {
		c.tags[normalizeTag(tag)] = TransitionResume
	}
	for _, tag := range suspend {
		c.tags[normalizeTag(tag)] = TransitionSuspend
	}
	return c
}

// DefaultClassifier uses DefaultResumeTags and DefaultSuspendTags
func DefaultClassifier() *Classifier {
	return NewClassifier(DefaultResumeTags, DefaultSuspendTags)
}

// Classify returns the transition for tag, TransitionNone when unknown
func (c *Classifier) Classify(tag string) Transition {
	return c.tags[normalizeTag(tag)]
}

func normalizeTag(tag string) string {
	return strings.ToUpper(strings.TrimSpace(tag))
}
