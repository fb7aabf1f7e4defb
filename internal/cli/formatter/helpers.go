package formatter

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tally/internal/contract"
)

const noValue = "-"

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// stripStyle removes ANSI escape codes.
func stripStyle(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		Padding(0, 2)

	if title != "" {
		return boxStyle.Render(StyleHeader.Render(strings.ToUpper(title)) + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// RenderStats lays out labeled values as an aligned two-column block.
func RenderStats(values []contract.StatValue) string {
	width := 0
	for _, v := range values {
		width = max(width, lipgloss.Width(v.Label))
	}
	lines := make([]string, len(values))
	for i, v := range values {
		pad := strings.Repeat(" ", width-lipgloss.Width(v.Label)+colGap)
		lines[i] = Dim(v.Label) + pad + Bold(v.Value)
	}
	return strings.Join(lines, "\n")
}

func stat(label, value string) contract.StatValue {
	return contract.StatValue{Label: label, Value: value}
}

// formatNumber prints v with as few decimals as needed.
func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func oneDecimal(v float64) string {
	return strconv.FormatFloat(v, 'f', 1, 64)
}

func percent(v int) string {
	return strconv.Itoa(v) + "%"
}

func orNoValue(s string) string {
	if s == "" {
		return noValue
	}
	return s
}
