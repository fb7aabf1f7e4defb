package contract

import (
	"time"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/stats"
)

// ForecastSummary is the headline block. BrierScore is nil until something
// resolves.
type ForecastSummary struct {
	Total         int      `json:"total"`
	Resolved      int      `json:"resolved"`
	Pending       int      `json:"pending"`
	Correct       int      `json:"correct"`
	Incorrect     int      `json:"incorrect"`
	BrierScore    *float64 `json:"brierScore"`
	AvgConfidence float64  `json:"avgConfidence"`
}

// Accuracy is the share of resolved predictions that were correct.
func (s ForecastSummary) Accuracy() int {
	return stats.RatioPercent(float64(s.Correct), float64(s.Resolved))
}

// MonthActivity counts predictions made and resolved in one month.
type MonthActivity struct {
	Month    string `json:"-"`
	Made     int    `json:"made"`
	Resolved int    `json:"resolved"`
}

// DayActivity counts predictions by weekday. Made uses the forecast date;
// Resolved and Correct use the resolution date.
type DayActivity struct {
	Day      string `json:"-"`
	Made     int    `json:"made"`
	Resolved int    `json:"resolved"`
	Correct  int    `json:"correct"`
}

// CategoryStats summarise predictions sharing a first tag.
type CategoryStats struct {
	Name       string   `json:"-"`
	Count      int      `json:"count"`
	Correct    int      `json:"correct"`
	BrierScore *float64 `json:"brierScore"`
}

// ForecastDashboard is the forecasting page. Monthly is chronological,
// DayOfWeek runs Monday to Sunday and Categories are by descending count.
type ForecastDashboard struct {
	Summary     ForecastSummary        `json:"summary"`
	Accuracy    int                    `json:"accuracy"`
	Calibration []stats.CalibrationRow `json:"calibration"`
	Monthly     []MonthActivity        `json:"monthly"`
	DayOfWeek   []DayActivity          `json:"dayOfWeek"`
	Categories  []CategoryStats        `json:"categories"`
	Confidence  []stats.ConfidenceBin  `json:"confidence"`
	Charts      []Chart                `json:"charts"`
}

// ForecastExport is the published stats document: per-prediction detail is
// dropped and only aggregates remain.
type ForecastExport struct {
	Generated              string                   `json:"generated"`
	Summary                ForecastSummary          `json:"summary"`
	Calibration            []stats.CalibrationRow   `json:"calibration"`
	DayOfWeek              map[string]DayActivity   `json:"dayOfWeek"`
	MonthlyActivity        map[string]MonthActivity `json:"monthlyActivity"`
	Categories             map[string]CategoryStats `json:"categories"`
	ConfidenceDistribution []stats.ConfidenceBin    `json:"confidenceDistribution"`
}

// Export converts the dashboard into the stats document dated generated. An
// empty dashboard exports empty sections.
func (d ForecastDashboard) Export(generated time.Time) ForecastExport {
	out := ForecastExport{
		Generated:              generated.Format(domain.DateLayout),
		Summary:                d.Summary,
		Calibration:            []stats.CalibrationRow{},
		DayOfWeek:              map[string]DayActivity{},
		MonthlyActivity:        map[string]MonthActivity{},
		Categories:             map[string]CategoryStats{},
		ConfidenceDistribution: []stats.ConfidenceBin{},
	}
	if d.Summary.Total == 0 {
		return out
	}
	out.Calibration = d.Calibration
	out.ConfidenceDistribution = d.Confidence
	for _, day := range d.DayOfWeek {
		out.DayOfWeek[day.Day] = day
	}
	for _, m := range d.Monthly {
		out.MonthlyActivity[m.Month] = m
	}
	for _, c := range d.Categories {
		out.Categories[c.Name] = c
	}
	return out
}
