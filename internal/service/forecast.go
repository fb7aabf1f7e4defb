package service

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/calendar"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/source"
	"github.com/alexanderramin/tally/internal/stats"
)

var weekdays = []time.Weekday{
	time.Monday, time.Tuesday, time.Wednesday, time.Thursday, time.Friday, time.Saturday, time.Sunday,
}

type forecastService struct {
	src      source.Source
	theme    contract.Theme
	observer UseCaseObserver
}

func NewForecastService(src source.Source, theme contract.Theme, observers ...UseCaseObserver) ForecastService {
	return &forecastService{src: src, theme: theme, observer: useCaseObserverOrNoop(observers)}
}

func (s *forecastService) GetForecast(ctx context.Context, now time.Time) (dash *contract.ForecastDashboard, err error) {
	uc := startUseCase(s.observer, "forecast")
	defer func() { uc.done(ctx, err) }()

	records, err := fetchDataset(ctx, s.src, "forecast")
	if err != nil {
		return nil, err
	}
	preds := PredictionsFromRecords(records, now.Location())
	uc.set("predictions", len(preds))

	d := BuildForecast(preds, s.theme)
	return &d, nil
}

func (s *forecastService) ExportStats(ctx context.Context, w io.Writer, now time.Time) (err error) {
	uc := startUseCase(s.observer, "forecast_export")
	defer func() { uc.done(ctx, err) }()

	records, err := fetchDataset(ctx, s.src, "forecast")
	if err != nil {
		return err
	}
	preds := PredictionsFromRecords(records, now.Location())
	uc.set("predictions", len(preds))

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(BuildForecast(preds, s.theme).Export(now)); err != nil {
		return fmt.Errorf("writing forecast stats: %w", err)
	}
	return nil
}

// PredictionsFromRecords reads forecast rows. Rows without a probability are
// skipped; the category is the first tag, lowercased.
func PredictionsFromRecords(records []domain.Record, loc *time.Location) []stats.Prediction {
	preds := make([]stats.Prediction, 0, len(records))
	for _, r := range records {
		if strings.TrimSpace(r.String(domain.FieldProbability)) == "" {
			continue
		}
		p := stats.Prediction{
			Question:    r.String(domain.FieldQuestion),
			Probability: r.Float(domain.FieldProbability),
			Resolution:  domain.Resolution(strings.ToUpper(strings.TrimSpace(r.String(domain.FieldResolution)))),
			Category:    domain.Uncategorized,
		}
		p.Created, _ = r.Time(domain.FieldForecastDate, loc)
		p.Resolved, _ = r.Time(domain.FieldResolvedDate, loc)
		if tags := r.Strings(domain.FieldTags); len(tags) > 0 {
			p.Category = strings.ToLower(tags[0])
		}
		preds = append(preds, p)
	}
	return preds
}

// BuildForecast scores a prediction history.
func BuildForecast(preds []stats.Prediction, theme contract.Theme) contract.ForecastDashboard {
	sum := forecastSummary(preds)
	d := contract.ForecastDashboard{
		Summary:     sum,
		Accuracy:    sum.Accuracy(),
		Calibration: stats.Calibration(preds),
		Monthly:     monthlyActivity(preds),
		DayOfWeek:   dayOfWeek(preds),
		Categories:  forecastCategories(preds),
		Confidence:  stats.ConfidenceDistribution(preds),
	}
	d.Charts = forecastCharts(d, theme)
	return d
}

func forecastSummary(preds []stats.Prediction) contract.ForecastSummary {
	sum := contract.ForecastSummary{Total: len(preds)}
	confidence := make([]float64, len(preds))
	for i, p := range preds {
		confidence[i] = p.Probability * 100
		if !p.IsResolved() {
			sum.Pending++
			continue
		}
		sum.Resolved++
		if p.IsCorrect() {
			sum.Correct++
		} else {
			sum.Incorrect++
		}
	}
	sum.AvgConfidence = round1(stats.Mean(confidence))
	if brier, ok := stats.BrierScore(preds); ok {
		b := stats.Round(brier, 3)
		sum.BrierScore = &b
	}
	return sum
}

func monthlyActivity(preds []stats.Prediction) []contract.MonthActivity {
	months := make(map[string]*contract.MonthActivity)
	at := func(key string) *contract.MonthActivity {
		m, ok := months[key]
		if !ok {
			m = &contract.MonthActivity{Month: key}
			months[key] = m
		}
		return m
	}
	for _, p := range preds {
		if !p.Created.IsZero() {
			at(calendar.MonthKey(p.Created)).Made++
		}
		if !p.Resolved.IsZero() {
			at(calendar.MonthKey(p.Resolved)).Resolved++
		}
	}

	out := make([]contract.MonthActivity, 0, len(months))
	for _, m := range months {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}

// dayOfWeek counts made by forecast weekday, and resolved and correct by
// resolution weekday.
func dayOfWeek(preds []stats.Prediction) []contract.DayActivity {
	out := make([]contract.DayActivity, len(weekdays))
	index := make(map[time.Weekday]int, len(weekdays))
	for i, wd := range weekdays {
		out[i].Day = wd.String()
		index[wd] = i
	}
	for _, p := range preds {
		if !p.Created.IsZero() {
			out[index[p.Created.Weekday()]].Made++
		}
		if !p.IsResolved() || p.Resolved.IsZero() {
			continue
		}
		day := &out[index[p.Resolved.Weekday()]]
		day.Resolved++
		if p.IsCorrect() {
			day.Correct++
		}
	}
	return out
}

// forecastCategories orders categories by descending count, then name.
func forecastCategories(preds []stats.Prediction) []contract.CategoryStats {
	byName := make(map[string][]stats.Prediction)
	for _, p := range preds {
		byName[p.Category] = append(byName[p.Category], p)
	}

	out := make([]contract.CategoryStats, 0, len(byName))
	for name, group := range byName {
		c := contract.CategoryStats{Name: name, Count: len(group)}
		for _, p := range group {
			if p.IsCorrect() {
				c.Correct++
			}
		}
		if brier, ok := stats.BrierScore(group); ok {
			b := stats.Round(brier, 3)
			c.BrierScore = &b
		}
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func forecastCharts(d contract.ForecastDashboard, theme contract.Theme) []contract.Chart {
	calibration := contract.Chart{ID: "calibration", Title: "Calibration", Kind: contract.ChartLine}
	var actual, perfect []float64
	for i, row := range d.Calibration {
		if row.Count == 0 || row.ActualRate == nil {
			continue
		}
		calibration.Labels = append(calibration.Labels, row.Bucket+"%")
		actual = append(actual, round1(*row.ActualRate*100))
		perfect = append(perfect, float64(i*10+5))
	}
	calibration.Datasets = []contract.Dataset{
		{Label: "Actual", Data: actual, Colors: []string{theme.Calibration}},
		{Label: "Perfect", Data: perfect, Colors: []string{theme.Perfect}},
	}

	outcomes := aggregate.Aggregate{
		"correct":   float64(d.Summary.Correct),
		"incorrect": float64(d.Summary.Incorrect),
		"pending":   float64(d.Summary.Pending),
	}.Fill([]string{"correct", "incorrect", "pending"}, titleLabel)

	monthly := make(aggregate.Aggregate, len(d.Monthly))
	for _, m := range d.Monthly {
		monthly[m.Month] = float64(m.Made)
	}

	confidence := contract.Chart{ID: "confidence", Title: "Confidence Distribution", Kind: contract.ChartBar}
	counts := make([]float64, len(d.Confidence))
	for i, bin := range d.Confidence {
		confidence.Labels = append(confidence.Labels, bin.Range+"%")
		counts[i] = float64(bin.Count)
	}
	confidence.Datasets = []contract.Dataset{{Label: "Predictions", Data: counts, Colors: []string{theme.Color(1)}}}

	categories := make(aggregate.Aggregate, len(d.Categories))
	briers := make(aggregate.Aggregate)
	for _, c := range d.Categories {
		categories[c.Name] = float64(c.Count)
		if c.BrierScore != nil {
			briers[c.Name] = *c.BrierScore
		}
	}
	categorySeries := categories.ByValueDesc()

	brierSeries := briers.Chronological(nil)
	sort.SliceStable(brierSeries, func(i, j int) bool { return brierSeries[i].Value < brierSeries[j].Value })
	brierChart := contract.SeriesChart("category_brier", "Brier Score by Category", contract.ChartBar, "Brier",
		brierSeries, theme.Color(3))
	brierChart.Horizontal = true

	return []contract.Chart{
		calibration,
		contract.SeriesChart("outcomes", "Outcomes", contract.ChartDoughnut, "", outcomes,
			theme.Correct, theme.Incorrect, theme.Pending),
		contract.SeriesChart("monthly", "Predictions per Month", contract.ChartBar, "Predictions",
			monthly.Chronological(calendar.MonthYearLabel), theme.Color(0)),
		confidence,
		contract.SeriesChart("categories", "Predictions by Category", contract.ChartPie, "",
			categorySeries, theme.Colors(len(categorySeries), 0)...),
		brierChart,
	}
}
