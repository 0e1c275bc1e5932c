package interaction

// SelectionGroup is a set of mutually exclusive members with at most one
// active. The group is the source of truth; views only draw it.
type SelectionGroup struct {
	name    string
	members []string
	active  int
}

// NewSelectionGroup creates a group with no active member.
func NewSelectionGroup(name string, members ...string) *SelectionGroup {
	m := make([]string, len(members))
	copy(m, members)
	return &SelectionGroup{name: name, members: m, active: -1}
}

// Name returns the group name.
func (g *SelectionGroup) Name() string {
	return g.name
}

// Members returns the members in order.
func (g *SelectionGroup) Members() []string {
	out := make([]string, len(g.members))
	copy(out, g.members)
	return out
}

// Activate clears the group and marks member active. Unknown members leave the
// group unchanged and report false.
func (g *SelectionGroup) Activate(member string) bool {
	idx := g.indexOf(member)
	if idx < 0 {
		return false
	}
	g.active = idx
	return true
}

// Step activates the member delta positions away from the active one,
// wrapping around. With nothing active it starts from the first member.
func (g *SelectionGroup) Step(delta int) string {
	if len(g.members) == 0 {
		return ""
	}
	idx := 0
	if g.active >= 0 {
		idx = ((g.active+delta)%len(g.members) + len(g.members)) % len(g.members)
	}
	g.active = idx
	return g.members[idx]
}

// Active returns the active member.
func (g *SelectionGroup) Active() (string, bool) {
	if g.active < 0 {
		return "", false
	}
	return g.members[g.active], true
}

// IsActive reports whether member is the active one.
func (g *SelectionGroup) IsActive(member string) bool {
	active, ok := g.Active()
	return ok && active == member
}

// Clear deactivates every member.
func (g *SelectionGroup) Clear() {
	g.active = -1
}

func (g *SelectionGroup) indexOf(member string) int {
	for i, m := range g.members {
		if m == member {
			return i
		}
	}
	return -1
}
