package service

import (
	"context"
	"sort"
	"strconv"
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/calendar"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/source"
	"github.com/alexanderramin/tally/internal/stats"
)

// highlightRating is the lowest rating listed under highlights.
const highlightRating = 8

type readingService struct {
	year     source.Source
	all      source.Source
	theme    contract.Theme
	observer UseCaseObserver
}

// NewReadingService builds the reading pages. year serves the single-year log
// and all the multi-year log; either may be nil when its page is unused.
func NewReadingService(year, all source.Source, theme contract.Theme, observers ...UseCaseObserver) ReadingService {
	return &readingService{year: year, all: all, theme: theme, observer: useCaseObserverOrNoop(observers)}
}

func (s *readingService) GetReading(ctx context.Context, now time.Time) (dash *contract.ReadingDashboard, err error) {
	uc := startUseCase(s.observer, "reading")
	defer func() { uc.done(ctx, err) }()

	records, err := fetchDataset(ctx, s.year, "reading")
	if err != nil {
		return nil, err
	}
	uc.set("books", len(records))

	d := BuildReading(records, now.Location(), s.theme)
	return &d, nil
}

func (s *readingService) GetReadingHistory(ctx context.Context, now time.Time) (hist *contract.ReadingHistory, err error) {
	uc := startUseCase(s.observer, "reading_all")
	defer func() { uc.done(ctx, err) }()

	records, err := fetchDataset(ctx, s.all, "reading history")
	if err != nil {
		return nil, err
	}
	uc.set("books", len(records))

	h := BuildReadingHistory(records, s.theme)
	return &h, nil
}

// BuildReading summarises one year of the reading log. The projection
// extrapolates from the latest finish date; a log without dates has none.
func BuildReading(books []domain.Record, loc *time.Location, theme contract.Theme) contract.ReadingDashboard {
	total := len(books)
	st := contract.ReadingStats{
		Total:       total,
		AvgRating:   averageRating(books),
		TopCategory: topKeyOr(known(aggregate.Count(books, aggregate.Field(domain.FieldCategory))), noValue),
		TopFormat:   topKeyOr(known(aggregate.Count(books, aggregate.Field(domain.FieldFormat))), noValue),
		FictionPercent: stats.RatioPercent(
			float64(len(aggregate.Filter(books, aggregate.FieldEquals(domain.FieldType, domain.BookTypeFiction)))),
			float64(total)),
	}

	last, hasLast := latest(books, domain.FieldDate, loc)
	if hasLast {
		if p, ok := stats.ProjectAnnual(total, last); ok {
			st.Projected = &p
		}
	}

	charts := []contract.Chart{contract.SeriesChart("category", "Books by Category", contract.ChartPie, "",
		aggregate.Count(books, aggregate.Field(domain.FieldCategory)).ByValueDesc(),
		theme.Colors(len(aggregate.Distinct(books, aggregate.Field(domain.FieldCategory))), 0)...)}

	monthly := known(aggregate.Count(books, aggregate.Month(domain.FieldDate, loc)))
	var months []string
	if hasLast {
		months = calendar.MonthsThrough(calendar.MonthKey(last))
	}
	charts = append(charts, contract.SeriesChart("timeline", "Books per Month", contract.ChartBar, "Books",
		monthly.Fill(months, calendar.ShortMonthLabel), theme.Color(0)))
	charts = append(charts, bookMixCharts(books, theme)...)

	return contract.ReadingDashboard{
		Stats:      st,
		Charts:     charts,
		Highlights: highlights(books),
		Books:      newestBooks(books, loc),
	}
}

// BuildReadingHistory summarises every year in the log. Books are grouped by
// their year field rather than by date.
func BuildReadingHistory(books []domain.Record, theme contract.Theme) contract.ReadingHistory {
	total := len(books)
	year := aggregate.Field(domain.FieldYear)
	years := len(known(aggregate.Count(books, year)))

	st := contract.ReadingHistoryStats{
		Total:       total,
		AvgRating:   averageRating(books),
		TopCategory: topKeyOr(known(aggregate.Count(books, aggregate.Field(domain.FieldCategory))), noValue),
		TopFormat:   topKeyOr(known(aggregate.Count(books, aggregate.Field(domain.FieldFormat))), noValue),
		Years:       years,
	}
	if years > 0 {
		st.AvgPerYear = round1(float64(total) / float64(years))
	}

	perYear := known(aggregate.Count(books, year))
	charts := []contract.Chart{
		contract.SeriesChart("yearly", "Books per Year", contract.ChartBar, "Books",
			perYear.Chronological(nil), theme.Color(0)),
		contract.SeriesChart("yearly_rating", "Average Rating per Year", contract.ChartLine, "Avg Rating",
			known(aggregate.MeanBy(books, year, aggregate.Int(domain.FieldRating))).Chronological(nil).Map(round1),
			theme.Color(1)),
		yearMonthChart(books, year, theme),
		contract.SeriesChart("category", "Books by Category", contract.ChartPie, "",
			aggregate.Count(books, aggregate.Field(domain.FieldCategory)).ByValueDesc(),
			theme.Colors(len(aggregate.Distinct(books, aggregate.Field(domain.FieldCategory))), 0)...),
	}
	charts = append(charts, bookMixCharts(books, theme)...)

	return contract.ReadingHistory{
		Stats:      st,
		Charts:     charts,
		Highlights: highlights(books),
		Books:      newestBooks(books, time.UTC),
	}
}

// yearMonthChart draws one zero-filled Jan..Dec line per year.
func yearMonthChart(books []domain.Record, year aggregate.KeyFunc, theme contract.Theme) contract.Chart {
	month := func(r domain.Record) string {
		t, ok := r.Time(domain.FieldDate, time.UTC)
		if !ok {
			return aggregate.Unknown
		}
		return strconv.Itoa(int(t.Month()))
	}
	nested := aggregate.NestedBy(books, year, month, nil)
	monthKeys := numberKeys(1, 12)

	c := contract.Chart{ID: "year_month", Title: "Books per Month by Year", Kind: contract.ChartLine}
	for _, k := range monthKeys {
		m, _ := strconv.Atoi(k)
		c.Labels = append(c.Labels, time.Month(m).String()[:3])
	}
	for i, y := range nested.Keys() {
		if y == aggregate.Unknown {
			continue
		}
		c.Datasets = append(c.Datasets, contract.NewSeriesDataset(y, nested[y].Fill(monthKeys, nil), theme.Color(i)))
	}
	return c
}

// bookMixCharts are the breakdowns shared by both reading pages.
func bookMixCharts(books []domain.Record, theme contract.Theme) []contract.Chart {
	formats := aggregate.Count(books, aggregate.Field(domain.FieldFormat)).ByValueDesc()
	types := aggregate.Count(books, aggregate.Field(domain.FieldType)).ByValueDesc()
	ratings := aggregate.Count(books, func(r domain.Record) string {
		return strconv.Itoa(r.Int(domain.FieldRating))
	}).Fill(numberKeys(1, 10), nil)
	avgByCategory := known(aggregate.MeanBy(books, aggregate.Field(domain.FieldCategory), aggregate.Int(domain.FieldRating))).
		ByValueDesc().Map(round1)

	avg := contract.SeriesChart("category_rating", "Average Rating by Category", contract.ChartBar, "Avg Rating",
		avgByCategory, theme.Color(2))
	avg.Horizontal = true

	charts := []contract.Chart{
		contract.SeriesChart("format", "Books by Format", contract.ChartDoughnut, "",
			formats, theme.Colors(len(formats), 4)...),
		contract.SeriesChart("rating", "Rating Distribution", contract.ChartBar, "Books", ratings, theme.Color(3)),
		contract.SeriesChart("type", "Fiction vs Non-Fiction", contract.ChartDoughnut, "",
			types, theme.Colors(len(types), 0)...),
		avg,
	}
	return append(charts, subcategoryCharts(books, theme)...)
}

// subcategoryCharts draws one pie per category, counting only books that name
// a subcategory.
func subcategoryCharts(books []domain.Record, theme contract.Theme) []contract.Chart {
	withSub := aggregate.Filter(books, func(r domain.Record) bool {
		return r.String(domain.FieldSubcategory) != ""
	})
	nested := aggregate.NestedBy(withSub, aggregate.Field(domain.FieldCategory), aggregate.Field(domain.FieldSubcategory), nil)

	var charts []contract.Chart
	for i, category := range nested.Keys() {
		subs := nested[category].ByValueDesc()
		charts = append(charts, contract.SeriesChart("subcategory_"+category, category+" Subcategories",
			contract.ChartPie, "", subs, theme.Colors(len(subs), i*2)...))
	}
	return charts
}

func averageRating(books []domain.Record) float64 {
	if len(books) == 0 {
		return 0
	}
	var sum int
	for _, b := range books {
		sum += b.Int(domain.FieldRating)
	}
	return round1(float64(sum) / float64(len(books)))
}

func toBook(r domain.Record) contract.Book {
	return contract.Book{
		Title:       r.String(domain.FieldTitle),
		Date:        r.String(domain.FieldDate),
		Year:        r.String(domain.FieldYear),
		Category:    r.String(domain.FieldCategory),
		Subcategory: r.String(domain.FieldSubcategory),
		Format:      r.String(domain.FieldFormat),
		Type:        r.String(domain.FieldType),
		Rating:      r.Int(domain.FieldRating),
		Review:      r.String(domain.FieldReview),
	}
}

// highlights lists books rated highlightRating or better, best first. Equal
// ratings keep log order.
func highlights(books []domain.Record) []contract.Book {
	out := []contract.Book{}
	for _, r := range books {
		if r.Int(domain.FieldRating) >= highlightRating {
			out = append(out, toBook(r))
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Rating > out[j].Rating })
	return out
}

// newestBooks lists every book by finish date, newest first. Undated books
// go last in log order.
func newestBooks(books []domain.Record, loc *time.Location) []contract.Book {
	type dated struct {
		book contract.Book
		at   time.Time
		ok   bool
	}
	rows := make([]dated, len(books))
	for i, r := range books {
		at, ok := r.Time(domain.FieldDate, loc)
		rows[i] = dated{book: toBook(r), at: at, ok: ok}
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].ok != rows[j].ok {
			return rows[i].ok
		}
		return rows[i].at.After(rows[j].at)
	})
	out := make([]contract.Book, len(rows))
	for i, row := range rows {
		out[i] = row.book
	}
	return out
}
