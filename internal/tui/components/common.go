// Package components provides shared UI components for the TUI.
package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/dtg01100/video-browser/internal/interaction"
	"github.com/dtg01100/video-browser/internal/notify"
)

// Color palette - based on a professional dark theme
var (
	// Primary colors
	ColorPrimary       = lipgloss.Color("62") // Muted blue
	ColorPrimaryBright = lipgloss.Color("75") // Brighter blue
	ColorAccent        = lipgloss.Color("86") // Cyan/teal
	ColorBorder        = lipgloss.Color("240")
	ColorSurface       = lipgloss.Color("236") // Slightly lighter surface

	// Text colors
	ColorText       = lipgloss.Color("252") // Light gray text
	ColorTextMuted  = lipgloss.Color("243") // Muted gray
	ColorTextBright = lipgloss.Color("15")  // White

	// Semantic colors
	ColorSuccess = lipgloss.Color("82")  // Green
	ColorWarning = lipgloss.Color("214") // Orange
	ColorError   = lipgloss.Color("196") // Red
	ColorInfo    = lipgloss.Color("117") // Light blue
)

// Tokens maps theme tokens to palette colours.
var Tokens = map[interaction.ColorToken]lipgloss.Color{
	interaction.TokenPrimary: ColorPrimary,
	interaction.TokenBorder:  ColorBorder,
}

// TokenColor resolves a theme token, falling back to the border colour.
func TokenColor(token interaction.ColorToken) lipgloss.Color {
	if c, ok := Tokens[token]; ok {
		return c
	}
	return ColorBorder
}

// Styles contains common styling for the TUI.
var Styles = struct {
	// Base styles
	Title    lipgloss.Style
	Subtitle lipgloss.Style
	Normal   lipgloss.Style
	Selected lipgloss.Style
	Faint    lipgloss.Style

	// Semantic styles
	Error   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	// UI element styles
	Border     lipgloss.Style
	HelpText   lipgloss.Style
	StatusLine lipgloss.Style
	Header     lipgloss.Style

	// Navigation styles
	SidebarItem   lipgloss.Style
	SidebarActive lipgloss.Style
	Tab           lipgloss.Style
	TabActive     lipgloss.Style
	MenuKey       lipgloss.Style

	// Card styles
	Card      lipgloss.Style
	CardFocus lipgloss.Style
	Badge     lipgloss.Style

	// Button styles
	Button      lipgloss.Style
	ButtonFocus lipgloss.Style

	// Toast style
	Toast lipgloss.Style
}{
	Title: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextBright).
		Background(ColorPrimary).
		Padding(0, 2),
	Subtitle: lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorTextMuted),
	Normal: lipgloss.NewStyle().
		Foreground(ColorText),
	Selected: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent),
	Faint: lipgloss.NewStyle().
		Faint(true),

	Error: lipgloss.NewStyle().
		Foreground(ColorError),
	Success: lipgloss.NewStyle().
		Foreground(ColorSuccess),
	Warning: lipgloss.NewStyle().
		Foreground(ColorWarning),
	Info: lipgloss.NewStyle().
		Foreground(ColorInfo),

	Border: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorPrimary).
		Padding(0, 1),
	HelpText: lipgloss.NewStyle().
		Italic(true).
		Foreground(ColorTextMuted),
	StatusLine: lipgloss.NewStyle().
		Foreground(ColorTextBright).
		Background(ColorSurface).
		Padding(0, 1),
	Header: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextBright).
		Background(ColorPrimary).
		Padding(0, 1),

	SidebarItem: lipgloss.NewStyle().
		Foreground(ColorText).
		Padding(0, 1),
	SidebarActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextBright).
		Background(ColorPrimary).
		Padding(0, 1),
	Tab: lipgloss.NewStyle().
		Foreground(ColorTextMuted).
		Padding(0, 1),
	TabActive: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorAccent).
		Underline(true).
		Padding(0, 1),
	MenuKey: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorPrimaryBright),

	Card: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorBorder).
		Padding(0, 1),
	CardFocus: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorAccent).
		Padding(0, 1),
	Badge: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextBright).
		Background(ColorSuccess).
		Padding(0, 1),

	Button: lipgloss.NewStyle().
		Foreground(ColorText).
		Background(ColorSurface).
		Padding(0, 1),
	ButtonFocus: lipgloss.NewStyle().
		Bold(true).
		Foreground(ColorTextBright).
		Background(ColorPrimary).
		Padding(0, 1),

	Toast: lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		Padding(0, 1),
}

// HelpItem represents a help item with key and description.
type HelpItem struct {
	Key  string
	Desc string
}

// TitleBar renders a title bar with the application name and version.
func TitleBar(width int, title, version string) string {
	left := Styles.Header.Render(title)
	right := Styles.Subtitle.Render("v" + version + "  [?] Help  [q] Quit")

	padding := width - lipgloss.Width(left) - lipgloss.Width(right)
	if padding < 0 {
		padding = 0
	}

	return lipgloss.JoinHorizontal(lipgloss.Left,
		left,
		strings.Repeat(" ", padding),
		right,
	)
}

// StatusBar renders a status line at the bottom of the screen.
func StatusBar(width int, text string) string {
	return Styles.StatusLine.Width(width).Render(text)
}

// Center centers text within a given width.
func Center(text string, width int) string {
	return lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Render(text)
}

// Truncate shortens text to maxLen runes, marking the cut with "...".
func Truncate(text string, maxLen int) string {
	runes := []rune(text)
	if len(runes) <= maxLen {
		return text
	}
	if maxLen <= 3 {
		return string(runes[:max(maxLen, 0)])
	}
	return string(runes[:maxLen-3]) + "..."
}

// RenderError renders an error message.
func RenderError(text string) string {
	return Styles.Error.Render("✗ " + text)
}

// RenderSuccess renders a success message.
func RenderSuccess(text string) string {
	return Styles.Success.Render("✓ " + text)
}

// RenderWarning renders a warning message.
func RenderWarning(text string) string {
	return Styles.Warning.Render("⚠ " + text)
}

// RenderInfo renders an info message.
func RenderInfo(text string) string {
	return Styles.Info.Render("ℹ " + text)
}

// SeverityColor returns the accent colour of a notification severity.
func SeverityColor(sev notify.Severity) lipgloss.Color {
	switch sev {
	case notify.SeveritySuccess:
		return ColorSuccess
	case notify.SeverityWarning:
		return ColorWarning
	case notify.SeverityError:
		return ColorError
	default:
		return ColorInfo
	}
}

// Toast renders one notification. Messages outside their visible phase are
// drawn faint to stand in for the slide animation.
func Toast(n notify.Notification, phase notify.Phase, width int) string {
	var text string
	switch n.Severity {
	case notify.SeveritySuccess:
		text = RenderSuccess(n.Text)
	case notify.SeverityWarning:
		text = RenderWarning(n.Text)
	case notify.SeverityError:
		text = RenderError(n.Text)
	default:
		text = RenderInfo(n.Text)
	}

	style := Styles.Toast.BorderForeground(SeverityColor(n.Severity))
	if width > 4 {
		style = style.Width(width - 2)
	}
	if phase != notify.PhaseVisible {
		style = style.Faint(true)
	}
	return style.Render(text)
}
