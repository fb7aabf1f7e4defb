package formatter

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const colGap = 2

// RenderTable renders an aligned table with a header separator line.
// Columns are as wide as their widest cell, measured without ANSI codes.
// Columns whose cells are all numbers are right-aligned.
func RenderTable(headers []string, rows [][]string) string {
	if len(headers) == 0 {
		return ""
	}
	cols := len(headers)

	widths := make([]int, cols)
	numeric := make([]bool, cols)
	for i, h := range headers {
		widths[i] = lipgloss.Width(h)
		numeric[i] = len(rows) > 0
	}
	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := cellAt(row, i)
			widths[i] = max(widths[i], lipgloss.Width(cell))
			if !isNumber(cell) {
				numeric[i] = false
			}
		}
	}

	var b strings.Builder
	for i, h := range headers {
		writeCell(&b, StyleHeader.Render(h), lipgloss.Width(h), widths[i], numeric[i], i == cols-1)
	}
	b.WriteString("\n")

	for i, w := range widths {
		b.WriteString(StyleDim.Render(strings.Repeat("─", w)))
		if i < cols-1 {
			b.WriteString(strings.Repeat(" ", colGap))
		}
	}
	b.WriteString("\n")

	for _, row := range rows {
		for i := 0; i < cols; i++ {
			cell := cellAt(row, i)
			writeCell(&b, cell, lipgloss.Width(cell), widths[i], numeric[i], i == cols-1)
		}
		b.WriteString("\n")
	}
	return b.String()
}

func writeCell(b *strings.Builder, styled string, visible, width int, right, last bool) {
	pad := max(width-visible, 0)
	if right {
		b.WriteString(strings.Repeat(" ", pad))
		b.WriteString(styled)
		if !last {
			b.WriteString(strings.Repeat(" ", colGap))
		}
		return
	}
	b.WriteString(styled)
	if !last {
		b.WriteString(strings.Repeat(" ", pad+colGap))
	}
}

func cellAt(row []string, i int) string {
	if i < len(row) {
		return row[i]
	}
	return ""
}

// isNumber accepts plain numbers with an optional unit suffix such as
// "12%" or "1.5h".
func isNumber(cell string) bool {
	s := strings.TrimSpace(stripStyle(cell))
	s = strings.TrimRight(s, "%hd")
	if s == "" {
		return false
	}
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
