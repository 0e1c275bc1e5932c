package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap holds the browser's key bindings.
type KeyMap struct {
	Videos        key.Binding
	Sources       key.Binding
	Settings      key.Binding
	PrevTab       key.Binding
	NextTab       key.Binding
	Up            key.Binding
	Down          key.Binding
	Enter         key.Binding
	Edit          key.Binding
	Delete        key.Binding
	Add           key.Binding
	Favorite      key.Binding
	Unfavorite    key.Binding
	History       key.Binding
	Search        key.Binding
	ToggleSidebar key.Binding
	Help          key.Binding
	Quit          key.Binding
}

// DefaultKeyMap returns the standard bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Videos: key.NewBinding(
			key.WithKeys("1"),
			key.WithHelp("1", "videos"),
		),
		Sources: key.NewBinding(
			key.WithKeys("2"),
			key.WithHelp("2", "sources"),
		),
		Settings: key.NewBinding(
			key.WithKeys("3"),
			key.WithHelp("3", "settings"),
		),
		PrevTab: key.NewBinding(
			key.WithKeys("left", "h"),
			key.WithHelp("←/h", "prev tab"),
		),
		NextTab: key.NewBinding(
			key.WithKeys("right", "l"),
			key.WithHelp("→/l", "next tab"),
		),
		Up: key.NewBinding(
			key.WithKeys("up", "k"),
			key.WithHelp("↑/k", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "j"),
			key.WithHelp("↓/j", "down"),
		),
		Enter: key.NewBinding(
			key.WithKeys("enter", " "),
			key.WithHelp("enter", "open"),
		),
		Edit: key.NewBinding(
			key.WithKeys("e"),
			key.WithHelp("e", "edit source"),
		),
		Delete: key.NewBinding(
			key.WithKeys("d"),
			key.WithHelp("d", "delete source"),
		),
		Add: key.NewBinding(
			key.WithKeys("a"),
			key.WithHelp("a", "add source"),
		),
		Favorite: key.NewBinding(
			key.WithKeys("f"),
			key.WithHelp("f", "favorite"),
		),
		Unfavorite: key.NewBinding(
			key.WithKeys("F"),
			key.WithHelp("F", "unfavorite"),
		),
		History: key.NewBinding(
			key.WithKeys("H"),
			key.WithHelp("H", "add to history"),
		),
		Search: key.NewBinding(
			key.WithKeys("/"),
			key.WithHelp("/", "search"),
		),
		ToggleSidebar: key.NewBinding(
			key.WithKeys("ctrl+b"),
			key.WithHelp("ctrl+b", "toggle sidebar"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "toggle help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.Down, k.Enter, k.Search, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Videos, k.Sources, k.Settings, k.PrevTab, k.NextTab},
		{k.Up, k.Down, k.Enter, k.Search, k.ToggleSidebar},
		{k.Favorite, k.Unfavorite, k.History},
		{k.Add, k.Edit, k.Delete},
		{k.Help, k.Quit},
	}
}
