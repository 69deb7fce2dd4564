package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	ColorPrimary   = lipgloss.Color("#7C3AED") // Purple
	ColorSecondary = lipgloss.Color("#6B7280") // Gray
	ColorSuccess   = lipgloss.Color("#10B981") // Green
	ColorWarning   = lipgloss.Color("#F59E0B") // Amber
	ColorMuted     = lipgloss.Color("#9CA3AF") // Light gray
)

// Text styles
var (
	Bold    = lipgloss.NewStyle().Bold(true)
	Muted   = lipgloss.NewStyle().Foreground(ColorMuted)
	Primary = lipgloss.NewStyle().Foreground(ColorPrimary)
	Success = lipgloss.NewStyle().Foreground(ColorSuccess)
	Warning = lipgloss.NewStyle().Foreground(ColorWarning)
)

// TypeName style for GraphQL type names
var TypeName = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true)

// Header style for section headers
var Header = lipgloss.NewStyle().
	Foreground(ColorPrimary).
	Bold(true).
	MarginBottom(1)

// DefaultBadge marks the default value of an argument.
var DefaultBadge = lipgloss.NewStyle().
	Foreground(lipgloss.Color("#fff")).
	Background(ColorSuccess).
	Padding(0, 1).
	Bold(true)

// Rule returns a muted horizontal divider of the given width.
func Rule(width int) string {
	return Muted.Render(strings.Repeat("─", width))
}

// RenderEnumValue renders an enum value line: the GraphQL name padded to
// nameWidth, followed by its runtime value and an optional default badge.
func RenderEnumValue(name, value string, nameWidth int, isDefault bool) string {
	var b strings.Builder
	b.WriteString(Bold.Render(name))
	if pad := nameWidth - lipgloss.Width(name); pad > 0 {
		b.WriteString(strings.Repeat(" ", pad))
	}
	b.WriteString("  ")
	b.WriteString(Muted.Render(`"` + value + `"`))
	if isDefault {
		b.WriteString(" ")
		b.WriteString(DefaultBadge.Render("default"))
	}
	return b.String()
}
