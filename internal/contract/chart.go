// Package contract defines the named-slot results handed to rendering
// surfaces: one dashboard type per page, each with a Stats struct, ordered
// chart specs and list sections.
package contract

import "github.com/alexanderramin/tally/internal/aggregate"

// ChartKind is the chart shape a surface should draw.
type ChartKind string

const (
	ChartBar      ChartKind = "bar"
	ChartLine     ChartKind = "line"
	ChartDoughnut ChartKind = "doughnut"
	ChartPie      ChartKind = "pie"
)

// Dataset is one series of values aligned with the chart labels.
type Dataset struct {
	Label  string    `json:"label,omitempty"`
	Data   []float64 `json:"data"`
	Colors []string  `json:"colors,omitempty"`
}

// Chart is a surface-neutral chart spec. Every dataset has one value per
// label.
type Chart struct {
	ID         string    `json:"id"`
	Title      string    `json:"title"`
	Kind       ChartKind `json:"kind"`
	Labels     []string  `json:"labels"`
	Datasets   []Dataset `json:"datasets"`
	Stacked    bool      `json:"stacked,omitempty"`
	Horizontal bool      `json:"horizontal,omitempty"`
}

// NewSeriesDataset takes the values of s.
func NewSeriesDataset(label string, s aggregate.Series, colors ...string) Dataset {
	return Dataset{Label: label, Data: s.Values(), Colors: colors}
}

// SeriesChart builds a single-dataset chart whose labels come from s.
func SeriesChart(id, title string, kind ChartKind, label string, s aggregate.Series, colors ...string) Chart {
	return Chart{
		ID:       id,
		Title:    title,
		Kind:     kind,
		Labels:   s.Labels(),
		Datasets: []Dataset{NewSeriesDataset(label, s, colors...)},
	}
}

// Empty reports whether the chart has nothing to draw.
func (c Chart) Empty() bool {
	if len(c.Labels) == 0 {
		return true
	}
	for _, ds := range c.Datasets {
		for _, v := range ds.Data {
			if v != 0 {
				return false
			}
		}
	}
	return true
}

// FindChart returns the chart with the given id.
func FindChart(charts []Chart, id string) (Chart, bool) {
	for _, c := range charts {
		if c.ID == id {
			return c, true
		}
	}
	return Chart{}, false
}
