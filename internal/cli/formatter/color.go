package formatter

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Gruvbox-inspired color palette.
var (
	ColorGreen  = lipgloss.Color("#8ec07c")
	ColorYellow = lipgloss.Color("#fabd2f")
	ColorRed    = lipgloss.Color("#fb4934")
	ColorBlue   = lipgloss.Color("#83a598")
	ColorPurple = lipgloss.Color("#d3869b")
	ColorDim    = lipgloss.Color("#928374")
	ColorFg     = lipgloss.Color("#ebdbb2")
	ColorHeader = lipgloss.Color("#fe8019")
)

// Predefined lipgloss styles.
var (
	StyleGreen  = lipgloss.NewStyle().Foreground(ColorGreen)
	StyleYellow = lipgloss.NewStyle().Foreground(ColorYellow)
	StyleRed    = lipgloss.NewStyle().Foreground(ColorRed)
	StyleBlue   = lipgloss.NewStyle().Foreground(ColorBlue)
	StylePurple = lipgloss.NewStyle().Foreground(ColorPurple)
	StyleDim    = lipgloss.NewStyle().Foreground(ColorDim)
	StyleFg     = lipgloss.NewStyle().Foreground(ColorFg)
	StyleHeader = lipgloss.NewStyle().Foreground(ColorHeader).Bold(true)
	StyleBold   = lipgloss.NewStyle().Foreground(ColorFg).Bold(true)
	// StyleMatch marks search hits.
	StyleMatch = lipgloss.NewStyle().Foreground(ColorYellow).Bold(true).Underline(true)
)

// slotStyles colors schedule slots by class.
var slotStyles = map[string]lipgloss.Style{
	"deep-work":       StyleRed,
	"light-work":      StyleYellow,
	"free-time":       StyleGreen,
	"morning-routine": StyleBlue,
	"evening-routine": StylePurple,
	"sleep":           StyleDim,
}

// SlotStyle returns the style for a schedule slot class. Unknown classes,
// including the off-schedule sentinel, render dim.
func SlotStyle(class string) lipgloss.Style {
	if s, ok := slotStyles[class]; ok {
		return s
	}
	return StyleDim
}

// HexStyle renders text in a dashboard theme color. An empty hex falls back
// to the foreground color.
func HexStyle(hex string) lipgloss.Style {
	if hex == "" {
		return StyleFg
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(hex))
}

// PercentStyle colors a 0-100 share: green from 66, yellow from 33, red below.
func PercentStyle(pct int) lipgloss.Style {
	switch {
	case pct >= 66:
		return StyleGreen
	case pct >= 33:
		return StyleYellow
	default:
		return StyleRed
	}
}

// Header renders a section header with the orange header style and an underline.
func Header(text string) string {
	upper := strings.ToUpper(text)
	line := strings.Repeat("─", lipgloss.Width(upper))
	return fmt.Sprintf("%s\n%s", StyleHeader.Render(upper), StyleDim.Render(line))
}

// Dim renders text in the muted/dim color.
func Dim(text string) string {
	return StyleDim.Render(text)
}

// Bold renders text in bold with the foreground color.
func Bold(text string) string {
	return StyleBold.Render(text)
}
