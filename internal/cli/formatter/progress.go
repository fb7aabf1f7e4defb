package formatter

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderProgress renders a share bar like [████░░░░]  45%. pct is clamped to
// 0-100 and colored by PercentStyle.
func RenderProgress(pct int, width int) string {
	pct = min(max(pct, 0), 100)
	width = max(width, 2)

	filled := pct * width / 100
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3d%%", PercentStyle(pct).Render(bar), pct)
}

// RenderBar renders value as a run of blocks scaled against peak, at least
// one block for any non-zero value. Negative values use their magnitude.
func RenderBar(value, peak float64, width int, style lipgloss.Style) string {
	value, peak = math.Abs(value), math.Abs(peak)
	if value == 0 || peak == 0 || width <= 0 {
		return ""
	}
	n := int(math.Round(value / peak * float64(width)))
	n = min(max(n, 1), width)
	return style.Render(strings.Repeat(filledBlock, n))
}
