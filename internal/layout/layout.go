// Package layout maps a viewport width onto the structural layout of the
// browser: whether the sidebar is shown and how far the top navigation and
// main content are pushed to the right.
package layout

// Mode is the structural layout state.
type Mode int

const (
	// Compact hides the sidebar; used for viewports at or below the breakpoint.
	Compact Mode = iota
	// Expanded reserves the sidebar width on the left.
	Expanded
)

// DefaultBreakpoint is the widest viewport, in logical pixels, still laid out
// as Compact.
const DefaultBreakpoint = 768

// String returns a human-readable name for the mode.
func (m Mode) String() string {
	switch m {
	case Compact:
		return "Compact"
	case Expanded:
		return "Expanded"
	default:
		return "Unknown"
	}
}

// Panels holds the three derived panel offsets. All three are either zero or
// the configured sidebar width.
type Panels struct {
	SidebarWidth int
	TopNavOffset int
	MainMargin   int
}

// Collapsed reports whether the sidebar currently takes no space.
func (p Panels) Collapsed() bool {
	return p.SidebarWidth == 0
}

// Config holds the resolver constants.
type Config struct {
	Breakpoint   int
	SidebarWidth int
}

// Resolve returns the mode for a viewport width under the given breakpoint.
// The breakpoint itself belongs to Compact.
func Resolve(width, breakpoint int) Mode {
	if width <= breakpoint {
		return Compact
	}
	return Expanded
}

// PanelsFor returns the panel offsets of a mode.
func PanelsFor(mode Mode, sidebarWidth int) Panels {
	if mode == Compact {
		return Panels{}
	}
	return Panels{
		SidebarWidth: sidebarWidth,
		TopNavOffset: sidebarWidth,
		MainMargin:   sidebarWidth,
	}
}

// Resolver tracks the viewport-derived mode and the panel offsets currently
// applied. The panels can diverge from the mode after ToggleSidebar until
// the next Apply.
type Resolver struct {
	cfg     Config
	mode    Mode
	panels  Panels
	applied bool
}

// NewResolver creates a resolver. A non-positive breakpoint falls back to
// DefaultBreakpoint.
func NewResolver(cfg Config) *Resolver {
	if cfg.Breakpoint <= 0 {
		cfg.Breakpoint = DefaultBreakpoint
	}
	if cfg.SidebarWidth < 0 {
		cfg.SidebarWidth = 0
	}
	return &Resolver{cfg: cfg}
}

// Apply re-evaluates the layout for a viewport width and resets the panels to
// that mode, discarding any manual toggle. It reports whether the panels
// changed; applying the same width twice reports false the second time.
func (r *Resolver) Apply(width int) (Panels, bool) {
	r.mode = Resolve(width, r.cfg.Breakpoint)
	next := PanelsFor(r.mode, r.cfg.SidebarWidth)

	changed := !r.applied || next != r.panels
	r.panels = next
	r.applied = true
	return r.panels, changed
}

// ToggleSidebar flips the panels between collapsed and expanded based on the
// current sidebar width. The viewport-derived mode is left untouched.
func (r *Resolver) ToggleSidebar() Panels {
	if r.panels.Collapsed() {
		r.panels = PanelsFor(Expanded, r.cfg.SidebarWidth)
	} else {
		r.panels = Panels{}
	}
	return r.panels
}

// Mode returns the mode derived from the last applied width.
func (r *Resolver) Mode() Mode {
	return r.mode
}

// Panels returns the offsets currently in effect.
func (r *Resolver) Panels() Panels {
	return r.panels
}

// Config returns the resolver constants.
func (r *Resolver) Config() Config {
	return r.cfg
}
