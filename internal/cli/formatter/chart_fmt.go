package formatter

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tally/internal/contract"
)

const barWidth = 30

// FormatChart draws a chart spec for the terminal. Single-series charts
// become one bar per label; multi-series charts become a table with a column
// per dataset.
func FormatChart(c contract.Chart) string {
	var b strings.Builder
	b.WriteString(Header(c.Title))
	b.WriteString("\n")

	if c.Empty() {
		b.WriteString(Dim("no data"))
		b.WriteString("\n")
		return b.String()
	}
	if len(c.Datasets) == 1 {
		b.WriteString(formatBars(c.Labels, c.Datasets[0]))
		return b.String()
	}

	headers := make([]string, 0, len(c.Datasets)+1)
	headers = append(headers, "")
	for _, ds := range c.Datasets {
		headers = append(headers, HexStyle(firstColor(ds)).Render(ds.Label))
	}
	rows := make([][]string, len(c.Labels))
	for i, label := range c.Labels {
		row := make([]string, 0, len(headers))
		row = append(row, label)
		for _, ds := range c.Datasets {
			row = append(row, formatNumber(valueAt(ds.Data, i)))
		}
		rows[i] = row
	}
	b.WriteString(RenderTable(headers, rows))
	return b.String()
}

// FormatCharts draws every non-empty chart, separated by blank lines.
func FormatCharts(charts []contract.Chart) string {
	parts := make([]string, 0, len(charts))
	for _, c := range charts {
		if c.Empty() {
			continue
		}
		parts = append(parts, FormatChart(c))
	}
	return strings.Join(parts, "\n")
}

func formatBars(labels []string, ds contract.Dataset) string {
	labelWidth, peak := 0, 0.0
	for i, label := range labels {
		labelWidth = max(labelWidth, lipgloss.Width(label))
		peak = max(peak, abs(valueAt(ds.Data, i)))
	}

	var b strings.Builder
	for i, label := range labels {
		v := valueAt(ds.Data, i)
		b.WriteString(label)
		b.WriteString(strings.Repeat(" ", labelWidth-lipgloss.Width(label)+colGap))
		if bar := RenderBar(v, peak, barWidth, HexStyle(colorAt(ds, i))); bar != "" {
			b.WriteString(bar)
			b.WriteString(" ")
		}
		b.WriteString(Dim(formatNumber(v)))
		b.WriteString("\n")
	}
	return b.String()
}

// colorAt picks the per-label color when the dataset has one per label and
// its single color otherwise.
func colorAt(ds contract.Dataset, i int) string {
	if len(ds.Colors) > 1 && i < len(ds.Colors) {
		return ds.Colors[i]
	}
	return firstColor(ds)
}

func firstColor(ds contract.Dataset) string {
	if len(ds.Colors) == 0 {
		return ""
	}
	return ds.Colors[0]
}

func valueAt(data []float64, i int) float64 {
	if i < len(data) {
		return data[i]
	}
	return 0
}

func abs(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}
