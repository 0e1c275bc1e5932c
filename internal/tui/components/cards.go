package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/video-browser/internal/interaction"
	"github.com/dtg01100/video-browser/internal/models"
	"github.com/dtg01100/video-browser/internal/view"
)

// VideoCardWidth is the outer width of one card in the video grid.
const VideoCardWidth = 30

// liftBase is the spare row every card reserves so a lift can move it up
// without shifting its neighbours.
const liftBase = 1

// CardState is the interaction state a fragment is drawn with.
type CardState struct {
	Focused bool
	// Lift is the hover offset from the interaction controller, zero or negative.
	Lift int
}

func liftMargins(lift int) (top, bottom int) {
	top = max(0, liftBase+lift)
	return top, liftBase - top
}

func cardStyle(f view.Fragment, st CardState) lipgloss.Style {
	style := Styles.Card
	if st.Focused {
		style = Styles.CardFocus
	}
	if f.FadeIn {
		style = style.Faint(true)
	}
	top, bottom := liftMargins(st.Lift)
	return style.MarginTop(top).MarginBottom(bottom)
}

// VideoCard renders a video fragment as a grid card.
func VideoCard(f view.Fragment, st CardState) string {
	inner := VideoCardWidth - 4
	lines := []string{
		Styles.Subtitle.Render(Truncate("▶ "+f.Detail, inner)),
		Styles.Normal.Bold(true).Render(Truncate(f.Title, inner)),
		Styles.HelpText.Render(Truncate(f.Meta, inner)),
	}
	return cardStyle(f, st).Width(VideoCardWidth - 2).Render(strings.Join(lines, "\n"))
}

// VideoGrid lays cards out in rows that fit width.
func VideoGrid(cards []string, width int) string {
	perRow := GridColumns(width)
	var rows []string
	for i := 0; i < len(cards); i += perRow {
		end := min(i+perRow, len(cards))
		rows = append(rows, lipgloss.JoinHorizontal(lipgloss.Top, cards[i:end]...))
	}
	return lipgloss.JoinVertical(lipgloss.Left, rows...)
}

// GridColumns returns how many video cards fit side by side.
func GridColumns(width int) int {
	return max(1, width/VideoCardWidth)
}

// SourceRow renders a source fragment as a list card with its buttons.
func SourceRow(f view.Fragment, width int, st CardState) string {
	title := Styles.Normal.Bold(true).Render(f.Title)
	if f.Badge != "" {
		title += " " + Styles.Badge.Render(f.Badge)
	}

	buttons := make([]string, 0, len(f.Buttons))
	for _, b := range f.Buttons {
		label := "[" + strings.ToLower(b.Label[:1]) + "] " + b.Label
		if st.Focused {
			buttons = append(buttons, Styles.ButtonFocus.Render(label))
		} else {
			buttons = append(buttons, Styles.Button.Render(label))
		}
	}

	left := lipgloss.JoinVertical(lipgloss.Left, title, Styles.HelpText.Render(f.Detail))
	right := lipgloss.JoinHorizontal(lipgloss.Center, buttons...)

	inner := max(0, width-4)
	gap := inner - lipgloss.Width(left) - lipgloss.Width(right)
	row := lipgloss.JoinHorizontal(lipgloss.Center, left, strings.Repeat(" ", max(1, gap)), right)
	return cardStyle(f, st).Width(max(1, width-2)).Render(row)
}

// SettingRow renders a setting fragment with its control. token is the
// switch colour recorded by the controller, if any.
func SettingRow(f view.Fragment, width int, focused bool, token interaction.ColorToken) string {
	label := Styles.Normal.Render(f.Title)
	if focused {
		label = Styles.Selected.Render("▸ " + f.Title)
	} else {
		label = "  " + label
	}

	control := ControlView(f.Control, token)
	gap := width - lipgloss.Width(label) - lipgloss.Width(control) - 2
	row := label + strings.Repeat(" ", max(1, gap)) + control
	if f.FadeIn {
		return Styles.Faint.Render(row)
	}
	return row
}

// ControlView renders the editing widget of a setting. A nil control
// renders as nothing.
func ControlView(c *view.Control, token interaction.ColorToken) string {
	if c == nil {
		return ""
	}
	switch c.Type {
	case models.SettingBoolean:
		if token == "" {
			token = interaction.TokenBorder
			if c.Checked {
				token = interaction.TokenPrimary
			}
		}
		knob := "○━━"
		if c.Checked {
			knob = "━━●"
		}
		return lipgloss.NewStyle().Foreground(TokenColor(token)).Bold(true).Render(knob)
	case models.SettingSelect:
		selected, _ := c.Selected()
		return Styles.Info.Render("‹ " + selected + " ›")
	case models.SettingText, models.SettingNumber:
		return Styles.Button.Render(c.Value)
	default:
		return ""
	}
}

// Sidebar renders the vertical navigation. The active item is the one the
// selection group marks; the leading digit is its shortcut.
func Sidebar(group *interaction.SelectionGroup, width, height int) string {
	var b strings.Builder
	for i, item := range group.Members() {
		label := Truncate(string(rune('1'+i))+"  "+item, max(1, width-2))
		if group.IsActive(item) {
			b.WriteString(Styles.SidebarActive.Width(width).Render(label))
		} else {
			b.WriteString(Styles.SidebarItem.Width(width).Render(label))
		}
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().
		Width(width).
		Height(max(1, height)).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		BorderForeground(ColorBorder).
		Render(strings.TrimSuffix(b.String(), "\n"))
}

// TopNav renders the tab strip shifted right by offset, with trailing
// content such as the search box.
func TopNav(group *interaction.SelectionGroup, width, offset int, trailing string) string {
	tabs := make([]string, 0, len(group.Members()))
	for _, tab := range group.Members() {
		if group.IsActive(tab) {
			tabs = append(tabs, Styles.TabActive.Render(tab))
		} else {
			tabs = append(tabs, Styles.Tab.Render(tab))
		}
	}
	left := strings.Repeat(" ", offset) + lipgloss.JoinHorizontal(lipgloss.Top, tabs...)
	gap := width - lipgloss.Width(left) - lipgloss.Width(trailing)
	if gap < 1 {
		return lipgloss.JoinVertical(lipgloss.Left, left, strings.Repeat(" ", offset)+trailing)
	}
	return left + strings.Repeat(" ", gap) + trailing
}
