package service

import (
	"context"
	"math"
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/calendar"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/source"
	"github.com/alexanderramin/tally/internal/stats"
)

type ankiService struct {
	src      source.Source
	theme    contract.Theme
	observer UseCaseObserver
}

func NewAnkiService(src source.Source, theme contract.Theme, observers ...UseCaseObserver) AnkiService {
	return &ankiService{src: src, theme: theme, observer: useCaseObserverOrNoop(observers)}
}

func (s *ankiService) GetAnki(ctx context.Context, now time.Time) (dash *contract.AnkiDashboard, err error) {
	uc := startUseCase(s.observer, "anki")
	defer func() { uc.done(ctx, err) }()

	records, err := fetchDataset(ctx, s.src, "anki")
	if err != nil {
		return nil, err
	}
	uc.set("reviews", len(records))

	d := BuildAnki(records, now, s.theme)
	return &d, nil
}

func successful(r domain.Record) bool {
	return domain.Button(r.String(domain.FieldButton)).Successful()
}

// BuildAnki summarises review records. Days are calendar days in now's
// location; reviews with an unparseable date count toward the totals but not
// toward any day.
func BuildAnki(reviews []domain.Record, now time.Time, theme contract.Theme) contract.AnkiDashboard {
	loc := now.Location()
	day := aggregate.Day(domain.FieldDate, loc)

	perDay := known(aggregate.Count(reviews, day))
	seconds := sumField(reviews, domain.FieldReviewTime)
	total := len(reviews)

	st := contract.AnkiStats{
		TotalReviews: total,
		Hours:        round1(hours(seconds)),
		Days:         len(perDay),
		Streak:       stats.Streak(perDay.Keys(), now),
		SuccessRate:  stats.RatioPercent(float64(len(aggregate.Filter(reviews, successful))), float64(total)),
	}
	if st.Days > 0 {
		st.AvgPerDay = int(math.Round(float64(total) / float64(st.Days)))
	}

	return contract.AnkiDashboard{
		Stats: st,
		Charts: []contract.Chart{
			contract.SeriesChart("reviews", "Reviews per Day", contract.ChartBar, "Reviews",
				perDay.Chronological(calendar.ShortDayLabel), theme.Color(0)),
			ankiTimeChart(reviews, day, theme),
			ankiButtonChart(reviews, theme),
			ankiTypeChart(reviews, theme),
			ankiSuccessChart(reviews, day, theme),
			contract.SeriesChart("hours", "Reviews by Hour", contract.ChartBar, "Reviews",
				aggregate.Count(reviews, aggregate.Hour(domain.FieldDate, loc)).Fill(numberKeys(0, 23), hourLabel),
				theme.Color(3)),
		},
	}
}

func ankiTimeChart(reviews []domain.Record, day aggregate.KeyFunc, theme contract.Theme) contract.Chart {
	minutes := known(aggregate.SumOf(reviews, day, aggregate.Float(domain.FieldReviewTime))).
		Chronological(calendar.ShortDayLabel).
		Map(func(s float64) float64 { return round1(s / 60) })
	return contract.SeriesChart("time", "Minutes per Day", contract.ChartBar, "Minutes", minutes, theme.Color(1))
}

func ankiButtonChart(reviews []domain.Record, theme contract.Theme) contract.Chart {
	keys := make([]string, len(domain.Buttons))
	colors := make([]string, len(domain.Buttons))
	for i, b := range domain.Buttons {
		keys[i] = string(b)
		colors[i] = theme.Buttons[b]
	}
	counts := aggregate.Count(reviews, aggregate.Field(domain.FieldButton)).Fill(keys, titleLabel)
	return contract.SeriesChart("buttons", "Answer Buttons", contract.ChartDoughnut, "", counts, colors...)
}

func ankiTypeChart(reviews []domain.Record, theme contract.Theme) contract.Chart {
	keys := make([]string, len(domain.ReviewTypes))
	colors := make([]string, len(domain.ReviewTypes))
	for i, rt := range domain.ReviewTypes {
		keys[i] = string(rt)
		colors[i] = theme.ReviewTypes[rt]
	}
	counts := aggregate.Count(reviews, aggregate.Field(domain.FieldType)).Fill(keys, titleLabel)
	return contract.SeriesChart("types", "Review Types", contract.ChartDoughnut, "", counts, colors...)
}

func ankiSuccessChart(reviews []domain.Record, day aggregate.KeyFunc, theme contract.Theme) contract.Chart {
	tallies := aggregate.TallyBy(reviews, day, successful)
	rates := make(aggregate.Aggregate, len(tallies))
	for k, t := range tallies {
		if k == aggregate.Unknown {
			continue
		}
		rates[k] = round1(stats.Percent(float64(t.Hits), float64(t.Total)))
	}
	return contract.SeriesChart("success", "Daily Success Rate", contract.ChartLine, "Success %",
		rates.Chronological(calendar.ShortDayLabel), theme.Color(4))
}
