package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/source"
)

// OverviewSources are the datasets previewed on the hub. A nil source yields
// a failed card.
type OverviewSources struct {
	Programming source.Source
	Anki        source.Source
	Reading     source.Source
	Forecast    source.Source
	Goals       source.Source
}

type overviewCard struct {
	name  string
	title string
	src   source.Source
	stats func(records []domain.Record, now time.Time) []contract.StatValue
}

type overviewService struct {
	cards    []overviewCard
	observer UseCaseObserver
}

func NewOverviewService(srcs OverviewSources, opts ProgrammingOptions, theme contract.Theme, observers ...UseCaseObserver) OverviewService {
	return &overviewService{
		cards: []overviewCard{
			{name: "programming", title: "Programming", src: srcs.Programming,
				stats: func(records []domain.Record, now time.Time) []contract.StatValue {
					return programmingCard(BuildProgramming(records, now.Location(), opts, theme).Stats)
				}},
			{name: "anki", title: "Anki", src: srcs.Anki,
				stats: func(records []domain.Record, now time.Time) []contract.StatValue {
					return ankiCard(BuildAnki(records, now, theme).Stats)
				}},
			{name: "reading", title: "Reading", src: srcs.Reading,
				stats: func(records []domain.Record, now time.Time) []contract.StatValue {
					return readingCard(BuildReading(records, now.Location(), theme).Stats)
				}},
			{name: "forecast", title: "Forecasting", src: srcs.Forecast,
				stats: func(records []domain.Record, now time.Time) []contract.StatValue {
					return forecastCard(forecastSummary(PredictionsFromRecords(records, now.Location())))
				}},
			{name: "goals", title: "Goals", src: srcs.Goals,
				stats: func(records []domain.Record, now time.Time) []contract.StatValue {
					return goalsCard(BuildGoals(records, now.Location(), theme).Stats)
				}},
		},
		observer: useCaseObserverOrNoop(observers),
	}
}

// GetOverview fetches every dataset concurrently. A failed fetch marks only
// its own card; the overview itself never fails on a fetch error.
func (s *overviewService) GetOverview(ctx context.Context, now time.Time) (ov *contract.Overview, err error) {
	uc := startUseCase(s.observer, "overview")
	defer func() { uc.done(ctx, err) }()

	cards := make([]contract.OverviewCard, len(s.cards))
	g, gctx := errgroup.WithContext(ctx)
	for i, c := range s.cards {
		cards[i] = contract.OverviewCard{Name: c.name, Title: c.title}
		g.Go(func() error {
			if c.src == nil {
				cards[i].Err = fmt.Sprintf("loading %s data: no source configured", c.name)
				return nil
			}
			records, err := fetchDataset(gctx, c.src, c.name)
			if err != nil {
				cards[i].Err = err.Error()
				return nil
			}
			cards[i].Stats = c.stats(records, now)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	failed := 0
	for _, c := range cards {
		if c.Failed() {
			failed++
		}
	}
	uc.set("failed_cards", failed)
	return &contract.Overview{Cards: cards}, nil
}

func stat(label, value string) contract.StatValue {
	return contract.StatValue{Label: label, Value: value}
}

func formatFloat(v float64, places int) string {
	return strconv.FormatFloat(v, 'f', places, 64)
}

func programmingCard(st contract.ProgrammingStats) []contract.StatValue {
	return []contract.StatValue{
		stat("Hours", formatFloat(st.TotalHours, 1)),
		stat("Avg/Day", formatFloat(st.AvgDailyHours, 1)+"h"),
		stat("Top Language", st.TopLanguage),
		stat("AI %", strconv.Itoa(st.AIPercent)+"%"),
	}
}

func ankiCard(st contract.AnkiStats) []contract.StatValue {
	return []contract.StatValue{
		stat("Hours Studied", formatFloat(st.Hours, 1)),
		stat("Avg/Day", strconv.Itoa(st.AvgPerDay)),
		stat("Streak", strconv.Itoa(st.Streak)+"d"),
		stat("Success Rate", strconv.Itoa(st.SuccessRate)+"%"),
	}
}

func readingCard(st contract.ReadingStats) []contract.StatValue {
	if st.Total == 0 {
		return []contract.StatValue{
			stat("Books", "0"), stat("Avg Rating", noValue), stat("Top Category", noValue), stat("Fiction %", noValue),
		}
	}
	return []contract.StatValue{
		stat("Books", strconv.Itoa(st.Total)),
		stat("Avg Rating", formatFloat(st.AvgRating, 1)),
		stat("Top Category", st.TopCategory),
		stat("Fiction %", strconv.Itoa(st.FictionPercent)+"%"),
	}
}

func forecastCard(sum contract.ForecastSummary) []contract.StatValue {
	brier, accuracy := noValue, noValue
	if sum.BrierScore != nil {
		brier = formatFloat(*sum.BrierScore, 2)
	}
	if sum.Resolved > 0 {
		accuracy = strconv.Itoa(sum.Accuracy()) + "%"
	}
	return []contract.StatValue{
		stat("Predictions", strconv.Itoa(sum.Total)),
		stat("Brier", brier),
		stat("Accuracy", accuracy),
		stat("Resolved", fmt.Sprintf("%d/%d", sum.Resolved, sum.Total)),
	}
}

func goalsCard(st contract.GoalStats) []contract.StatValue {
	return []contract.StatValue{
		stat("Goals", strconv.Itoa(st.Total)),
		stat("Completed", strconv.Itoa(st.Completed)),
		stat("Completion", strconv.Itoa(st.CompletionRate)+"%"),
		stat("Top Category", st.TopCategory),
	}
}
