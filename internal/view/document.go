// Package view is the in-memory page the renderer writes into. A Document
// holds named containers; each container holds one Fragment per rendered
// entity and a single delegated handler that receives every event raised
// inside it. The terminal UI draws fragments but never owns them.
package view

import "github.com/dtg01100/video-browser/internal/models"

// Container ids used by the browser.
const (
	ContainerVideos   = "videos"
	ContainerSources  = "sources"
	ContainerSettings = "settings"
)

// Kind is the class of a fragment.
type Kind int

const (
	KindVideoCard Kind = iota
	KindSourceCard
	KindSetting
)

// String returns the class token of the kind.
func (k Kind) String() string {
	switch k {
	case KindVideoCard:
		return "video-card"
	case KindSourceCard:
		return "list-card"
	case KindSetting:
		return "setting-item"
	default:
		return "unknown"
	}
}

// Target names the element inside a fragment an event came from.
type Target string

const (
	TargetCard   Target = ""
	TargetEdit   Target = "edit"
	TargetDelete Target = "delete"
)

// Button is an inline affordance on a fragment.
type Button struct {
	Target Target
	Label  string
}

// Option is one entry of a drop-down control.
type Option struct {
	Value    string
	Selected bool
}

// Control is the editing widget of a setting fragment. Which fields matter
// depends on Type: Checked for boolean, Options for select, Value for text
// and number.
type Control struct {
	Type    models.SettingType
	Checked bool
	Options []Option
	Value   string
}

// Selected returns the value of the selected option.
func (c *Control) Selected() (string, bool) {
	for _, o := range c.Options {
		if o.Selected {
			return o.Value, true
		}
	}
	return "", false
}

func (c *Control) clone() *Control {
	if c == nil {
		return nil
	}
	out := *c
	out.Options = append([]Option(nil), c.Options...)
	return &out
}

// Fragment is the view of one entity.
type Fragment struct {
	Kind Kind
	// EntityID is the identifier bound to the fragment: the video or source
	// id, or the setting key.
	EntityID  string
	Title     string
	Meta      string
	Detail    string
	Thumbnail string
	Badge     string
	Buttons   []Button
	Control   *Control
	// FadeIn is set on freshly rendered fragments until the host draws them.
	FadeIn bool
}

// EventType is the kind of user event.
type EventType int

const (
	EventClick EventType = iota
	EventChange
)

// Event is raised on a fragment inside a container.
type Event struct {
	Type   EventType
	Index  int
	Target Target
	Value  string
}

// Handler receives every event of a container.
type Handler func(f *Fragment, ev Event)

// Container is a render target.
type Container struct {
	id        string
	fragments []Fragment
	handler   Handler
	renders   int
}

// ID returns the container id.
func (c *Container) ID() string {
	return c.id
}

// Len returns the number of fragments.
func (c *Container) Len() int {
	return len(c.fragments)
}

// Renders returns how many times the container has been rendered.
func (c *Container) Renders() int {
	return c.renders
}

// Fragments returns a copy of the fragments in render order.
func (c *Container) Fragments() []Fragment {
	out := make([]Fragment, len(c.fragments))
	for i, f := range c.fragments {
		f.Buttons = append([]Button(nil), f.Buttons...)
		f.Control = f.Control.clone()
		out[i] = f
	}
	return out
}

// Fragment returns a copy of the fragment at i.
func (c *Container) Fragment(i int) (Fragment, bool) {
	if i < 0 || i >= len(c.fragments) {
		return Fragment{}, false
	}
	f := c.fragments[i]
	f.Buttons = append([]Button(nil), f.Buttons...)
	f.Control = f.Control.clone()
	return f, true
}

// Dispatch delivers ev to the container's handler. It reports false when the
// index is out of range or nothing is bound.
func (c *Container) Dispatch(ev Event) bool {
	if c.handler == nil || ev.Index < 0 || ev.Index >= len(c.fragments) {
		return false
	}
	c.handler(&c.fragments[ev.Index], ev)
	return true
}

// MarkShown clears the fade-in flag on every fragment.
func (c *Container) MarkShown() {
	for i := range c.fragments {
		c.fragments[i].FadeIn = false
	}
}

// replace swaps in a new fragment list and binds handler.
func (c *Container) replace(fragments []Fragment, handler Handler) {
	c.fragments = fragments
	c.handler = handler
	c.renders++
}

// Document is a set of containers addressed by id.
type Document struct {
	containers map[string]*Container
}

// NewDocument creates a document with the given containers.
func NewDocument(ids ...string) *Document {
	d := &Document{containers: make(map[string]*Container)}
	for _, id := range ids {
		d.Add(id)
	}
	return d
}

// Add creates the container if missing and returns it.
func (d *Document) Add(id string) *Container {
	if c, ok := d.containers[id]; ok {
		return c
	}
	c := &Container{id: id}
	d.containers[id] = c
	return c
}

// Remove deletes a container.
func (d *Document) Remove(id string) {
	delete(d.containers, id)
}

// Container looks up a container by id.
func (d *Document) Container(id string) (*Container, bool) {
	c, ok := d.containers[id]
	return c, ok
}
