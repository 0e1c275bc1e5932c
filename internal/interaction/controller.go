// Package interaction holds the UI state that user input changes: hover
// lifts, exclusive selection groups, switch colours and the action
// dispatcher every rendered fragment forwards to.
package interaction

// ElementKind distinguishes the hoverable element classes.
type ElementKind int

const (
	ElementButton ElementKind = iota
	ElementCard
)

// Hover lift, in rows, applied while the pointer is over an element.
const (
	ButtonLift = -1
	CardLift   = -2
)

// ColorToken names a theme colour.
type ColorToken string

const (
	TokenPrimary ColorToken = "--primary-color"
	TokenBorder  ColorToken = "--border-color"
)

// Group names.
const (
	GroupSidebar = "sidebar"
	GroupTopNav  = "topnav"
)

// Controller owns interaction state for one page.
type Controller struct {
	sidebar    *SelectionGroup
	topnav     *SelectionGroup
	hovered    map[string]ElementKind
	switches   map[string]bool
	dispatcher *Dispatcher
}

// NewController creates a controller with the first sidebar item and the
// first tab active.
func NewController(d *Dispatcher, sidebarItems, topnavTabs []string) *Controller {
	c := &Controller{
		sidebar:    NewSelectionGroup(GroupSidebar, sidebarItems...),
		topnav:     NewSelectionGroup(GroupTopNav, topnavTabs...),
		hovered:    make(map[string]ElementKind),
		switches:   make(map[string]bool),
		dispatcher: d,
	}
	if len(sidebarItems) > 0 {
		c.sidebar.Activate(sidebarItems[0])
	}
	if len(topnavTabs) > 0 {
		c.topnav.Activate(topnavTabs[0])
	}
	return c
}

// Sidebar returns the sidebar selection group.
func (c *Controller) Sidebar() *SelectionGroup { return c.sidebar }

// TopNav returns the top navigation selection group.
func (c *Controller) TopNav() *SelectionGroup { return c.topnav }

// Dispatcher returns the action dispatcher.
func (c *Controller) Dispatcher() *Dispatcher { return c.dispatcher }

// ClickSidebar makes item the only active sidebar item.
func (c *Controller) ClickSidebar(item string) bool {
	return c.sidebar.Activate(item)
}

// ClickTopNav makes tab the only active tab.
func (c *Controller) ClickTopNav(tab string) bool {
	return c.topnav.Activate(tab)
}

// PointerEnter lifts the element.
func (c *Controller) PointerEnter(id string, kind ElementKind) {
	c.hovered[id] = kind
}

// PointerLeave drops the lift.
func (c *Controller) PointerLeave(id string) {
	delete(c.hovered, id)
}

// Hovered reports whether the pointer is over id.
func (c *Controller) Hovered(id string) bool {
	_, ok := c.hovered[id]
	return ok
}

// Offset returns the vertical lift of id: zero when not hovered.
func (c *Controller) Offset(id string) int {
	kind, ok := c.hovered[id]
	if !ok {
		return 0
	}
	if kind == ElementCard {
		return CardLift
	}
	return ButtonLift
}

// SwitchChanged records the new state of a switch and returns its colour.
// The setting itself is only persisted through the dispatcher.
func (c *Controller) SwitchChanged(key string, checked bool) ColorToken {
	c.switches[key] = checked
	return switchColor(checked)
}

// SwitchColor returns the colour recorded for key by the last change.
func (c *Controller) SwitchColor(key string) (ColorToken, bool) {
	checked, ok := c.switches[key]
	if !ok {
		return "", false
	}
	return switchColor(checked), true
}

// ResetSwitches forgets switch colours; called when settings are re-rendered.
func (c *Controller) ResetSwitches() {
	c.switches = make(map[string]bool)
}

// Dispatch forwards an action to the dispatcher.
func (c *Controller) Dispatch(action Action, target, value string) {
	c.dispatcher.Dispatch(action, target, value)
}

func switchColor(checked bool) ColorToken {
	if checked {
		return TokenPrimary
	}
	return TokenBorder
}
