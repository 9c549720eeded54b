package chart

import (
	"sync"
)

// Surface is a named drawing area. It tracks how many chart resources are
// bound to it and holds the lines last drawn there.
type Surface struct {
	id string

	mu      sync.Mutex
	live    int
	content []string
}

// NewSurface creates an empty surface
func NewSurface(id string) *Surface {
	return &Surface{id: id}
}

// ID returns the surface name
func (s *Surface) ID() string {
	return s.id
}

// Live returns the number of chart resources currently bound
func (s *Surface) Live() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.live
}

// Lines returns a copy of the current content
func (s *Surface) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.content))
	copy(out, s.content)
	return out
}

// SetText draws plain text, such as a placeholder, without binding a resource
func (s *Surface) SetText(lines ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.content = append([]string(nil), lines...)
}

// Bind draws lines as a new chart resource
func (s *Surface) Bind(lines []string) *Resource {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live++
	s.content = append([]string(nil), lines...)
	return &Resource{surface: s}
}

// Resource is one drawn chart. It must be destroyed before the surface is reused.
type Resource struct {
	surface   *Surface
	destroyed bool
}

// Destroy releases the resource and clears its surface. Repeated calls are no-ops.
func (r *Resource) Destroy() {
	if r == nil || r.destroyed {
		return
	}
	r.destroyed = true

	s := r.surface
	s.mu.Lock()
	defer s.mu.Unlock()
	s.live--
	s.content = nil
}

// controller owns the single resource of one surface
type controller struct {
	surface *Surface
	current *Resource
	width   int
}

func newController(id string, width int) controller {
	return controller{surface: NewSurface(id), width: width}
}

// draw releases the previous resource, then binds lines
func (c *controller) draw(lines []string) {
	c.release()
	c.current = c.surface.Bind(lines)
}

// placeholder releases the previous resource and shows text instead of a chart
func (c *controller) placeholder(text string) {
	c.release()
	c.surface.SetText(text)
}

func (c *controller) release() {
	if c.current != nil {
		c.current.Destroy()
		c.current = nil
	}
}

// Surface returns the controller's drawing area
func (c *controller) Surface() *Surface {
	return c.surface
}

// View returns the lines currently drawn
func (c *controller) View() []string {
	return c.surface.Lines()
}

// Close releases the bound resource
func (c *controller) Close() {
	c.release()
	c.surface.SetText()
}

func (c *controller) setWidth(width int) bool {
	if width < minWidth {
		width = minWidth
	}
	if width == c.width {
		return false
	}
	c.width = width
	return true
}
