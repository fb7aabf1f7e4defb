package service

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/source"
	"github.com/alexanderramin/tally/internal/testutil"
)

func forecastRecords() []domain.Record {
	return []domain.Record{
		testutil.NewTestForecast("Rain on Wednesday?", 0.8, "2026-01-05",
			testutil.WithResolved(domain.ResolutionYes, "2026-01-07"), testutil.WithTags("Weather")),
		testutil.NewTestForecast("Snow in February?", 0.35, "2026-01-06",
			testutil.WithResolved(domain.ResolutionYes, "2026-02-02"), testutil.WithTags("weather", "winter")),
		testutil.NewTestForecast("Bill passes?", 0.61, "2026-02-03"),
		testutil.NewTestForecast("Snap election?", 0.12, "2026-02-04",
			testutil.WithResolved(domain.ResolutionNo, "2026-02-05"), testutil.WithTags("politics")),
		testutil.NewTestForecast("No probability", 0, "2026-02-04", testutil.With(domain.FieldProbability, "")),
	}
}

func builtForecast() contract.ForecastDashboard {
	return BuildForecast(PredictionsFromRecords(forecastRecords(), time.UTC), contract.DefaultTheme())
}

func TestPredictionsFromRecords(t *testing.T) {
	records := []domain.Record{
		testutil.NewTestForecast("q", 0.7, "2026-01-05",
			testutil.With(domain.FieldResolution, " yes "), testutil.With(domain.FieldTags, "Sports, Misc")),
		testutil.NewTestForecast("skipped", 0, "2026-01-05", testutil.Without(domain.FieldProbability)),
		testutil.NewTestForecast("untagged", 0.4, "bad date"),
	}
	preds := PredictionsFromRecords(records, time.UTC)

	require.Len(t, preds, 2)
	assert.Equal(t, domain.ResolutionYes, preds[0].Resolution)
	assert.Equal(t, "sports", preds[0].Category)
	assert.Equal(t, time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC), preds[0].Created)
	assert.Equal(t, domain.Uncategorized, preds[1].Category)
	assert.True(t, preds[1].Created.IsZero())
}

func TestBuildForecast_Summary(t *testing.T) {
	d := builtForecast()

	assert.Equal(t, 4, d.Summary.Total)
	assert.Equal(t, 3, d.Summary.Resolved)
	assert.Equal(t, 1, d.Summary.Pending)
	assert.Equal(t, 2, d.Summary.Correct)
	assert.Equal(t, 1, d.Summary.Incorrect)
	require.NotNil(t, d.Summary.BrierScore)
	assert.Equal(t, 0.159, *d.Summary.BrierScore)
	assert.Equal(t, 47.0, d.Summary.AvgConfidence)
	assert.Equal(t, 67, d.Accuracy)
}

func TestBuildForecast_Activity(t *testing.T) {
	d := builtForecast()

	assert.Equal(t, []contract.MonthActivity{
		{Month: "2026-01", Made: 2, Resolved: 1},
		{Month: "2026-02", Made: 2, Resolved: 2},
	}, d.Monthly)

	require.Len(t, d.DayOfWeek, 7)
	assert.Equal(t, contract.DayActivity{Day: "Monday", Made: 1, Resolved: 1}, d.DayOfWeek[0])
	assert.Equal(t, contract.DayActivity{Day: "Tuesday", Made: 2}, d.DayOfWeek[1])
	assert.Equal(t, contract.DayActivity{Day: "Wednesday", Made: 1, Resolved: 1, Correct: 1}, d.DayOfWeek[2])
	assert.Equal(t, contract.DayActivity{Day: "Thursday", Resolved: 1, Correct: 1}, d.DayOfWeek[3])
	assert.Equal(t, "Sunday", d.DayOfWeek[6].Day)
}

func TestBuildForecast_Categories(t *testing.T) {
	d := builtForecast()

	require.Len(t, d.Categories, 3)
	assert.Equal(t, "weather", d.Categories[0].Name)
	assert.Equal(t, 2, d.Categories[0].Count)
	assert.Equal(t, 1, d.Categories[0].Correct)
	require.NotNil(t, d.Categories[0].BrierScore)
	assert.Equal(t, 0.231, *d.Categories[0].BrierScore)

	assert.Equal(t, "politics", d.Categories[1].Name)
	assert.Equal(t, domain.Uncategorized, d.Categories[2].Name)
	assert.Nil(t, d.Categories[2].BrierScore, "nothing resolved in the category")
}

func TestBuildForecast_Charts(t *testing.T) {
	d := builtForecast()

	cal := chart(t, d.Charts, "calibration")
	assert.Equal(t, []string{"10-20%", "30-40%", "80-90%"}, cal.Labels)
	assert.Equal(t, []float64{0, 100, 100}, cal.Datasets[0].Data)
	assert.Equal(t, []float64{15, 35, 85}, cal.Datasets[1].Data)

	outcomes := chart(t, d.Charts, "outcomes")
	assert.Equal(t, []string{"Correct", "Incorrect", "Pending"}, outcomes.Labels)
	assert.Equal(t, []float64{2, 1, 1}, outcomes.Datasets[0].Data)

	monthly := chart(t, d.Charts, "monthly")
	assert.Equal(t, []string{"Jan 26", "Feb 26"}, monthly.Labels)

	confidence := chart(t, d.Charts, "confidence")
	assert.Equal(t, []string{"0-25%", "25-50%", "50-75%", "75-100%"}, confidence.Labels)
	assert.Equal(t, []float64{1, 1, 1, 1}, confidence.Datasets[0].Data)

	brier := chart(t, d.Charts, "category_brier")
	assert.Equal(t, []string{"politics", "weather"}, brier.Labels)
}

func TestBuildForecast_PerfectScoreIsReported(t *testing.T) {
	preds := PredictionsFromRecords([]domain.Record{
		testutil.NewTestForecast("sure thing", 1, "2026-01-05", testutil.WithResolved(domain.ResolutionYes, "2026-01-06")),
	}, time.UTC)
	d := BuildForecast(preds, contract.DefaultTheme())

	require.NotNil(t, d.Summary.BrierScore)
	assert.Zero(t, *d.Summary.BrierScore)
}

func TestExportStats(t *testing.T) {
	svc := NewForecastService(source.Static{Records: forecastRecords()}, contract.DefaultTheme())
	var buf bytes.Buffer

	err := svc.ExportStats(context.Background(), &buf, time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "\n  \"summary\"", "indented two spaces")

	var doc map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Equal(t, "2026-03-01", doc["generated"])
	assert.Contains(t, doc["monthlyActivity"], "2026-02")
	assert.Contains(t, doc["dayOfWeek"], "Monday")
	assert.Contains(t, doc["categories"], "weather")
	assert.Len(t, doc["calibration"], 10)
}

func TestExportStats_Empty(t *testing.T) {
	svc := NewForecastService(source.Static{}, contract.DefaultTheme())
	var buf bytes.Buffer

	require.NoError(t, svc.ExportStats(context.Background(), &buf, time.Date(2026, 3, 1, 0, 0, 0, 0, time.UTC)))

	var doc contract.ForecastExport
	require.NoError(t, json.Unmarshal(buf.Bytes(), &doc))
	assert.Nil(t, doc.Summary.BrierScore)
	assert.Empty(t, doc.Calibration)
	assert.Empty(t, doc.DayOfWeek)
}

func TestExportStats_FetchError(t *testing.T) {
	svc := NewForecastService(source.Static{Err: source.ErrDecode}, contract.DefaultTheme())
	var buf bytes.Buffer

	err := svc.ExportStats(context.Background(), &buf, time.Now())
	assert.ErrorIs(t, err, source.ErrDecode)
	assert.Zero(t, buf.Len())
}
