package service

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/source"
	"github.com/alexanderramin/tally/internal/testutil"
)

func statValues(card contract.OverviewCard) map[string]string {
	out := make(map[string]string, len(card.Stats))
	for _, s := range card.Stats {
		out[s.Label] = s.Value
	}
	return out
}

func TestGetOverview_FailureIsPerCard(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/goals.json":
			_, _ = w.Write([]byte(`[{"goal":"Learn Go","category":"coding","status":"done"}]`))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	srcs := OverviewSources{
		Programming: source.Static{Records: codingRecords()},
		Anki:        source.NewHTTPSource(srv.URL+"/anki.json", time.Second, nil),
		Reading:     source.Static{Records: yearOfBooks()},
		Forecast:    source.Static{Records: forecastRecords()},
		Goals:       source.NewHTTPSource(srv.URL+"/goals.json", time.Second, nil),
	}
	obs := &recordingObserver{}
	svc := NewOverviewService(srcs, codingOpts, contract.DefaultTheme(), obs)

	ov, err := svc.GetOverview(context.Background(), time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, ov.Cards, 5)

	var names []string
	for _, c := range ov.Cards {
		names = append(names, c.Name)
	}
	assert.Equal(t, []string{"programming", "anki", "reading", "forecast", "goals"}, names)

	anki := ov.Cards[1]
	assert.True(t, anki.Failed())
	assert.Contains(t, anki.Err, "loading anki data")
	assert.Empty(t, anki.Stats)

	assert.Equal(t, map[string]string{
		"Hours": "3.0", "Avg/Day": "1.5h", "Top Language": "Go", "AI %": "17%",
	}, statValues(ov.Cards[0]))
	assert.Equal(t, "Sci-Fi", statValues(ov.Cards[2])["Top Category"])
	assert.Equal(t, map[string]string{
		"Predictions": "4", "Brier": "0.16", "Accuracy": "67%", "Resolved": "3/4",
	}, statValues(ov.Cards[3]))
	assert.Equal(t, map[string]string{
		"Goals": "1", "Completed": "1", "Completion": "100%", "Top Category": "coding",
	}, statValues(ov.Cards[4]))

	require.Len(t, obs.events, 1)
	assert.True(t, obs.events[0].Success)
	assert.Equal(t, 1, obs.events[0].Fields["failed_cards"])
}

func TestGetOverview_MissingSource(t *testing.T) {
	svc := NewOverviewService(OverviewSources{}, ProgrammingOptions{}, contract.DefaultTheme())

	ov, err := svc.GetOverview(context.Background(), time.Now())
	require.NoError(t, err)
	for _, c := range ov.Cards {
		assert.True(t, c.Failed(), c.Name)
	}
}

func TestOverviewCards_EmptyDatasets(t *testing.T) {
	assert.Equal(t, []contract.StatValue{
		{Label: "Books", Value: "0"},
		{Label: "Avg Rating", Value: "-"},
		{Label: "Top Category", Value: "-"},
		{Label: "Fiction %", Value: "-"},
	}, readingCard(contract.ReadingStats{}))

	forecast := forecastCard(contract.ForecastSummary{})
	assert.Equal(t, "-", forecast[1].Value)
	assert.Equal(t, "-", forecast[2].Value)
	assert.Equal(t, "0/0", forecast[3].Value)
}

func TestAnkiCard(t *testing.T) {
	now := time.Date(2026, 1, 2, 12, 0, 0, 0, time.UTC)
	reviews := append(threeReviews(), testutil.NewTestReview("2026-01-02", domain.ButtonGood, testutil.WithSeconds(3600)))

	card := ankiCard(BuildAnki(reviews, now, contract.DefaultTheme()).Stats)
	assert.Equal(t, []contract.StatValue{
		{Label: "Hours Studied", Value: "1.0"},
		{Label: "Avg/Day", Value: "2"},
		{Label: "Streak", Value: "2d"},
		{Label: "Success Rate", Value: "75%"},
	}, card)
}
