package service

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/calendar"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/source"
	"github.com/alexanderramin/tally/internal/stats"
)

const (
	dailyTopLanguages   = 5
	doughnutTopK        = 8
	doughnutMinSharePct = 5
)

// ProgrammingOptions holds the language names dropped from each view. Names
// match case-insensitively.
type ProgrammingOptions struct {
	StatExclude   []string
	ManualExclude []string
	AIExclude     []string
	DailyExclude  []string
}

type programmingService struct {
	src      source.Source
	theme    contract.Theme
	opts     ProgrammingOptions
	observer UseCaseObserver
}

func NewProgrammingService(src source.Source, theme contract.Theme, opts ProgrammingOptions, observers ...UseCaseObserver) ProgrammingService {
	return &programmingService{src: src, theme: theme, opts: opts, observer: useCaseObserverOrNoop(observers)}
}

func (s *programmingService) GetProgramming(ctx context.Context, now time.Time) (dash *contract.ProgrammingDashboard, err error) {
	uc := startUseCase(s.observer, "programming")
	defer func() { uc.done(ctx, err) }()

	records, err := fetchDataset(ctx, s.src, "programming")
	if err != nil {
		return nil, err
	}
	uc.set("entries", len(records))

	d := BuildProgramming(records, now.Location(), s.opts, s.theme)
	return &d, nil
}

func entriesOf(records []domain.Record, kind domain.EntryType) []domain.Record {
	return aggregate.Filter(records, aggregate.FieldEquals(domain.FieldType, string(kind)))
}

// BuildProgramming summarises time-tracking rows. Totals come from the
// daily_total rows only; the other row kinds feed the charts.
func BuildProgramming(records []domain.Record, loc *time.Location, opts ProgrammingOptions, theme contract.Theme) contract.ProgrammingDashboard {
	daily := entriesOf(records, domain.EntryDailyTotal)
	manual := entriesOf(records, domain.EntryManualLanguage)
	ai := entriesOf(records, domain.EntryAILanguage)
	categories := entriesOf(records, domain.EntryCategory)

	seconds := sumField(daily, domain.FieldTotalSeconds)
	days := len(known(aggregate.Count(daily, aggregate.Day(domain.FieldDate, loc))))

	name := aggregate.Field(domain.FieldName)
	value := aggregate.Float(domain.FieldTotalSeconds)
	manualTime := aggregate.SumOf(manual, name, value)
	aiTime := aggregate.SumOf(ai, name, value)
	categoryTime := aggregate.SumOf(categories, aggregate.LowerField(domain.FieldName), value)

	st := contract.ProgrammingStats{
		TotalHours:    round1(hours(seconds)),
		Days:          days,
		TopLanguage:   topKeyOr(known(stats.Exclude(manualTime, opts.StatExclude)), noValue),
		TopAILanguage: topKeyOr(known(stats.Exclude(aiTime, opts.StatExclude)), noValue),
		AIPercent:     stats.RatioPercent(categoryTime[domain.CategoryAICoding], seconds),
	}
	if days > 0 {
		st.AvgDailyHours = round1(hours(seconds) / float64(days))
	}

	return contract.ProgrammingDashboard{
		Stats: st,
		Charts: []contract.Chart{
			dailyLanguageChart(entriesOf(records, domain.EntryLanguage), loc, opts.DailyExclude, theme),
			languageDoughnut("manual_languages", "Manual Languages", stats.Exclude(manualTime, opts.ManualExclude), theme, 0),
			languageDoughnut("ai_languages", "AI-Assisted Languages", stats.Exclude(aiTime, opts.AIExclude), theme, 2),
			manualVsAIChart(categoryTime, theme),
			weeklyChart(categories, loc, theme),
			hourlyChart(entriesOf(records, domain.EntryHourly), theme),
		},
	}
}

// dailyLanguageChart stacks the five busiest languages per day. Whatever the
// day's total leaves over goes to Other.
func dailyLanguageChart(langs []domain.Record, loc *time.Location, exclude []string, theme contract.Theme) contract.Chart {
	day := aggregate.Day(domain.FieldDate, loc)
	langs = aggregate.Filter(langs, func(r domain.Record) bool { return day(r) != aggregate.Unknown })

	name := aggregate.Field(domain.FieldName)
	value := aggregate.Float(domain.FieldTotalSeconds)
	perDay := aggregate.NestedBy(langs, day, name, value)
	overall := stats.Exclude(aggregate.SumOf(langs, name, value), exclude)
	top := stats.TopKWithOther(overall, dailyTopLanguages, 0).Kept

	days := perDay.Keys()
	c := contract.Chart{ID: "daily", Title: "Daily Coding Time", Kind: contract.ChartBar, Stacked: true}
	for _, d := range days {
		c.Labels = append(c.Labels, calendar.ShortDayLabel(d))
	}

	topSum := make([]float64, len(days))
	for i, lang := range top {
		data := make([]float64, len(days))
		for j, d := range days {
			v := perDay[d][lang.Key]
			topSum[j] += v
			data[j] = round2(hours(v))
		}
		c.Datasets = append(c.Datasets, contract.Dataset{Label: lang.Key, Data: data, Colors: []string{theme.Color(i)}})
	}

	other := make([]float64, len(days))
	var hasOther bool
	for j, d := range days {
		rest := perDay[d].Total() - topSum[j]
		if rest > 0 {
			other[j] = round2(hours(rest))
			hasOther = hasOther || other[j] > 0
		}
	}
	if hasOther {
		c.Datasets = append(c.Datasets, contract.Dataset{Label: stats.OtherLabel, Data: other, Colors: []string{theme.Neutral}})
	}
	return c
}

func languageDoughnut(id, title string, agg aggregate.Aggregate, theme contract.Theme, offset int) contract.Chart {
	kept := stats.TopKWithOther(known(agg), doughnutTopK, doughnutMinSharePct).Kept.Map(func(s float64) float64 {
		return round1(hours(s))
	})
	return contract.SeriesChart(id, title, contract.ChartDoughnut, "Hours", kept, theme.Colors(len(kept), offset)...)
}

func manualVsAIChart(categoryTime aggregate.Aggregate, theme contract.Theme) contract.Chart {
	split := aggregate.Aggregate{
		"manual": categoryTime[domain.CategoryCoding] + categoryTime[domain.CategoryWritingDocs],
		"ai":     categoryTime[domain.CategoryAICoding],
	}
	labels := map[string]string{"manual": "Manual", "ai": "AI-Assisted"}
	s := split.Fill([]string{"manual", "ai"}, func(k string) string { return labels[k] }).Map(func(v float64) float64 {
		return round1(hours(v))
	})
	return contract.SeriesChart("manual_vs_ai", "Manual vs AI-Assisted", contract.ChartDoughnut, "Hours", s, theme.Manual, theme.AI)
}

// weeklyChart compares manual and AI-assisted hours per ISO week.
func weeklyChart(categories []domain.Record, loc *time.Location, theme contract.Theme) contract.Chart {
	week := aggregate.ISOWeek(domain.FieldDate, loc)
	dated := aggregate.Filter(categories, func(r domain.Record) bool { return week(r) != aggregate.Unknown })
	isManual := func(r domain.Record) bool {
		n := strings.ToLower(r.String(domain.FieldName))
		return n == domain.CategoryCoding || n == domain.CategoryWritingDocs
	}
	isAI := func(r domain.Record) bool {
		return strings.ToLower(r.String(domain.FieldName)) == domain.CategoryAICoding
	}

	value := aggregate.Float(domain.FieldTotalSeconds)
	manual := aggregate.SumOf(aggregate.Filter(dated, isManual), week, value)
	ai := aggregate.SumOf(aggregate.Filter(dated, isAI), week, value)

	keys := aggregate.Count(aggregate.Filter(dated, func(r domain.Record) bool {
		return isManual(r) || isAI(r)
	}), week).Keys()
	label := func(k string) string { return "Week " + calendar.WeekNumber(k) }
	toHours := func(v float64) float64 { return round1(hours(v)) }

	manualSeries := manual.Fill(keys, label).Map(toHours)
	return contract.Chart{
		ID:     "weekly",
		Title:  "Weekly Manual vs AI-Assisted",
		Kind:   contract.ChartLine,
		Labels: manualSeries.Labels(),
		Datasets: []contract.Dataset{
			contract.NewSeriesDataset("Manual", manualSeries, theme.Manual),
			contract.NewSeriesDataset("AI-Assisted", ai.Fill(keys, label).Map(toHours), theme.AI),
		},
	}
}

// hourlyChart plots time by hour of day. Hourly rows are cumulative
// snapshots, so a later row for the same hour replaces an earlier one.
func hourlyChart(hourly []domain.Record, theme contract.Theme) contract.Chart {
	hour := func(r domain.Record) string {
		h, err := strconv.Atoi(strings.TrimSpace(r.String(domain.FieldName)))
		if err != nil || h < 0 || h > 23 {
			return aggregate.Unknown
		}
		return strconv.Itoa(h)
	}
	byHour := aggregate.By(hourly, hour, aggregate.Float(domain.FieldTotalSeconds), aggregate.Last)
	s := byHour.Fill(numberKeys(0, 23), hourLabel).Map(func(v float64) float64 { return round2(hours(v)) })
	return contract.SeriesChart("hourly", "Coding by Hour of Day", contract.ChartBar, "Hours", s, theme.Color(3))
}
