package screens

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/video-browser/internal/tui/components"
)

// SourceSubmittedMsg carries the source entered in the add form.
type SourceSubmittedMsg struct {
	Name string
	URL  string
}

// SourceForm collects a name and URL for a new source using huh.
type SourceForm struct {
	form      *huh.Form
	done      bool
	cancelled bool
	width     int
	height    int

	name string
	url  string
}

// NewSourceForm creates a new source form.
func NewSourceForm() *SourceForm {
	f := &SourceForm{url: "https://"}
	f.buildForm()
	return f
}

// buildForm builds the huh form.
func (f *SourceForm) buildForm() {
	f.form = huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Source Name").
				Description("A display name for this source").
				Placeholder("e.g., Home Server").
				Value(&f.name).
				Validate(components.ValidateSourceName),

			huh.NewInput().
				Title("Source URL").
				Description("Address the source is served from").
				Placeholder("https://example.com/source").
				Value(&f.url).
				Validate(components.ValidateSourceURL),
		).Title("Add Source"),
	)
	f.form.WithTheme(huh.ThemeBase16())
	f.form.WithShowHelp(false)
}

// SetSize sets the form size.
func (f *SourceForm) SetSize(width, height int) {
	f.width = width
	f.height = height
	f.form.WithWidth(max(20, width-4))
}

// Init initializes the form.
func (f *SourceForm) Init() tea.Cmd {
	return f.form.Init()
}

// Update handles form updates.
func (f *SourceForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		f.cancelled = true
		f.done = true
		return f, func() tea.Msg { return FormCancelMsg{} }
	}

	form, cmd := f.form.Update(msg)
	if m, ok := form.(*huh.Form); ok {
		f.form = m
	}

	if f.form.State == huh.StateCompleted && !f.done {
		f.done = true
		return f, tea.Batch(cmd, f.submit)
	}

	return f, cmd
}

func (f *SourceForm) submit() tea.Msg {
	return SourceSubmittedMsg{Name: strings.TrimSpace(f.name), URL: f.url}
}

// IsDone returns true if the form is done.
func (f *SourceForm) IsDone() bool {
	return f.done
}

// IsCancelled returns true if the form was dismissed.
func (f *SourceForm) IsCancelled() bool {
	return f.cancelled
}

// View renders the form.
func (f *SourceForm) View() string {
	if f.done {
		return ""
	}

	header := components.Center(components.Styles.Title.Render("Add Source"), f.width)
	help := components.Center(components.Styles.HelpText.Render("Tab: next field  Shift+Tab: previous field  Enter: confirm  Esc: cancel"), f.width)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		components.Styles.Border.Render(f.form.View()),
		"",
		help,
	)
}
