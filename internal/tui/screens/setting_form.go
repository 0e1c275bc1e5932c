// Package screens provides the modal forms the browser opens over the page.
package screens

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/video-browser/internal/models"
	"github.com/dtg01100/video-browser/internal/tui/components"
	"github.com/dtg01100/video-browser/internal/view"
)

// SettingSubmittedMsg carries a value confirmed in the setting form.
type SettingSubmittedMsg struct {
	Index int
	Key   string
	Value string
}

// FormCancelMsg is sent when a form is dismissed with Esc.
type FormCancelMsg struct{}

// downloadPathFallbacks are offered as completions for path-like text settings.
var downloadPathFallbacks = []string{"/Downloads/Videos", "~/Videos", "~/Downloads"}

// SettingForm edits one select, text or number setting with huh.
type SettingForm struct {
	form      *huh.Form
	done      bool
	cancelled bool
	width     int
	height    int

	index   int
	key     string
	label   string
	control view.Control

	value string
}

// NewSettingForm creates a form for the setting fragment at index. Boolean
// settings are toggled in place and never get a form.
func NewSettingForm(index int, f view.Fragment) *SettingForm {
	s := &SettingForm{
		index: index,
		key:   f.EntityID,
		label: f.Title,
	}
	if f.Control != nil {
		s.control = *f.Control
	}

	switch s.control.Type {
	case models.SettingSelect:
		s.value, _ = s.control.Selected()
	default:
		s.value = s.control.Value
	}

	s.buildForm()
	return s
}

// buildForm builds the huh form.
func (s *SettingForm) buildForm() {
	var field huh.Field

	switch s.control.Type {
	case models.SettingSelect:
		options := make([]huh.Option[string], 0, len(s.control.Options))
		for _, o := range s.control.Options {
			options = append(options, huh.NewOption(o.Value, o.Value))
		}
		field = huh.NewSelect[string]().
			Title(s.label).
			Description("Choose a value").
			Options(options...).
			Value(&s.value)
	case models.SettingNumber:
		field = huh.NewInput().
			Title(s.label).
			Description("Enter a number").
			Value(&s.value).
			Validate(func(v string) error {
				return components.ValidateSettingValue(models.SettingNumber, v)
			})
	default:
		field = huh.NewInput().
			Title(s.label).
			Description("Enter a value").
			Suggestions(components.GetPathSuggestions(s.value, downloadPathFallbacks)).
			Value(&s.value)
	}

	s.form = huh.NewForm(huh.NewGroup(field))
	s.form.WithTheme(huh.ThemeBase16())
	s.form.WithShowHelp(false)
}

// Key returns the setting key being edited.
func (s *SettingForm) Key() string {
	return s.key
}

// Value returns the value currently entered.
func (s *SettingForm) Value() string {
	return s.value
}

// SetSize sets the form size.
func (s *SettingForm) SetSize(width, height int) {
	s.width = width
	s.height = height
	s.form.WithWidth(max(20, width-4))
}

// Init initializes the form.
func (s *SettingForm) Init() tea.Cmd {
	return s.form.Init()
}

// Update handles form updates.
func (s *SettingForm) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if msg, ok := msg.(tea.KeyMsg); ok && msg.String() == "esc" {
		s.cancelled = true
		s.done = true
		return s, func() tea.Msg { return FormCancelMsg{} }
	}

	form, cmd := s.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		s.form = f
	}

	if s.form.State == huh.StateCompleted && !s.done {
		s.done = true
		return s, tea.Batch(cmd, s.submit)
	}

	return s, cmd
}

func (s *SettingForm) submit() tea.Msg {
	return SettingSubmittedMsg{Index: s.index, Key: s.key, Value: s.value}
}

// IsDone returns true if the form is done.
func (s *SettingForm) IsDone() bool {
	return s.done
}

// IsCancelled returns true if the form was dismissed.
func (s *SettingForm) IsCancelled() bool {
	return s.cancelled
}

// View renders the form.
func (s *SettingForm) View() string {
	if s.done {
		return ""
	}

	header := components.Center(components.Styles.Title.Render("Edit Setting: "+s.label), s.width)
	help := components.Center(components.Styles.HelpText.Render("Enter: confirm  Esc: cancel"), s.width)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		"",
		components.Styles.Border.Render(s.form.View()),
		"",
		help,
	)
}
