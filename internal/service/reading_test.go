package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/source"
	"github.com/alexanderramin/tally/internal/testutil"
)

func yearOfBooks() []domain.Record {
	return []domain.Record{
		testutil.NewTestBook("Dune", "2026-01-10", "Sci-Fi", 9, testutil.WithSubcategory("Space Opera")),
		testutil.NewTestBook("Sapiens", "2026-02-05", "History", 7,
			testutil.WithFormat("Hardcover"), testutil.WithBookType("Non-Fiction")),
		testutil.NewTestBook("Foundation", "2026-02-20", "Sci-Fi", 8, testutil.WithSubcategory("Classic")),
		testutil.NewTestBook("Hyperion", "2026-03-01", "Sci-Fi", 9),
	}
}

func titlesOf(books []contract.Book) []string {
	out := make([]string, len(books))
	for i, b := range books {
		out[i] = b.Title
	}
	return out
}

func TestBuildReading_Stats(t *testing.T) {
	d := BuildReading(yearOfBooks(), time.UTC, contract.DefaultTheme())

	assert.Equal(t, 4, d.Stats.Total)
	assert.Equal(t, 8.3, d.Stats.AvgRating)
	assert.Equal(t, "Sci-Fi", d.Stats.TopCategory)
	assert.Equal(t, "Kindle", d.Stats.TopFormat)
	assert.Equal(t, 75, d.Stats.FictionPercent)
	require.NotNil(t, d.Stats.Projected)
	assert.Equal(t, 25, *d.Stats.Projected)
}

func TestBuildReading_NoProjectionOnNewYearsDay(t *testing.T) {
	books := []domain.Record{testutil.NewTestBook("Dune", "2026-01-01", "Sci-Fi", 9)}
	d := BuildReading(books, time.UTC, contract.DefaultTheme())

	assert.Nil(t, d.Stats.Projected)
}

func TestBuildReading_Charts(t *testing.T) {
	d := BuildReading(yearOfBooks(), time.UTC, contract.DefaultTheme())

	timeline := chart(t, d.Charts, "timeline")
	assert.Equal(t, []string{"Jan", "Feb", "Mar"}, timeline.Labels)
	assert.Equal(t, []float64{1, 2, 1}, timeline.Datasets[0].Data)

	rating := chart(t, d.Charts, "rating")
	assert.Equal(t, []float64{0, 0, 0, 0, 0, 0, 1, 1, 2, 0}, rating.Datasets[0].Data)

	avg := chart(t, d.Charts, "category_rating")
	assert.True(t, avg.Horizontal)
	assert.Equal(t, []string{"Sci-Fi", "History"}, avg.Labels)
	assert.Equal(t, []float64{8.7, 7}, avg.Datasets[0].Data)

	sub := chart(t, d.Charts, "subcategory_Sci-Fi")
	assert.Equal(t, []string{"Classic", "Space Opera"}, sub.Labels)
	_, ok := contract.FindChart(d.Charts, "subcategory_History")
	assert.False(t, ok, "categories without subcategories get no chart")
}

func TestBuildReading_Lists(t *testing.T) {
	d := BuildReading(yearOfBooks(), time.UTC, contract.DefaultTheme())

	assert.Equal(t, []string{"Dune", "Hyperion", "Foundation"}, titlesOf(d.Highlights))
	assert.Equal(t, []string{"Hyperion", "Foundation", "Sapiens", "Dune"}, titlesOf(d.Books))
	assert.Equal(t, 9, d.Books[0].Rating)
}

func TestBuildReading_Empty(t *testing.T) {
	d := BuildReading(nil, time.UTC, contract.DefaultTheme())

	assert.Equal(t, 0, d.Stats.Total)
	assert.Equal(t, noValue, d.Stats.TopCategory)
	assert.Nil(t, d.Stats.Projected)
	assert.Empty(t, d.Highlights)
	assert.Empty(t, d.Books)
}

func TestBuildReadingHistory(t *testing.T) {
	books := []domain.Record{
		testutil.NewTestBook("A", "2024-03-01", "Sci-Fi", 8, testutil.With(domain.FieldYear, "2024")),
		testutil.NewTestBook("B", "2024-07-01", "History", 6, testutil.With(domain.FieldYear, 2024.0)),
		testutil.NewTestBook("C", "2025-03-15", "Sci-Fi", 9, testutil.With(domain.FieldYear, "2025")),
	}
	h := BuildReadingHistory(books, contract.DefaultTheme())

	assert.Equal(t, 3, h.Stats.Total)
	assert.Equal(t, 2, h.Stats.Years)
	assert.Equal(t, 1.5, h.Stats.AvgPerYear)

	yearly := chart(t, h.Charts, "yearly")
	assert.Equal(t, []string{"2024", "2025"}, yearly.Labels)
	assert.Equal(t, []float64{2, 1}, yearly.Datasets[0].Data)
	assert.Equal(t, []float64{7, 9}, chart(t, h.Charts, "yearly_rating").Datasets[0].Data)

	ym := chart(t, h.Charts, "year_month")
	require.Len(t, ym.Labels, 12)
	assert.Equal(t, "Jan", ym.Labels[0])
	require.Len(t, ym.Datasets, 2)
	assert.Equal(t, "2024", ym.Datasets[0].Label)
	assert.Equal(t, []float64{0, 0, 1, 0, 0, 0, 1, 0, 0, 0, 0, 0}, ym.Datasets[0].Data)
	assert.Equal(t, float64(1), ym.Datasets[1].Data[2])

	assert.Equal(t, []string{"C", "B", "A"}, titlesOf(h.Books))
}

func TestGetReadingHistory_UsesAllYearsSource(t *testing.T) {
	svc := NewReadingService(
		source.Static{Err: source.ErrUnavailable},
		source.Static{Records: yearOfBooks()},
		contract.DefaultTheme(),
	)

	_, err := svc.GetReading(context.Background(), time.Now())
	assert.ErrorIs(t, err, source.ErrUnavailable)

	h, err := svc.GetReadingHistory(context.Background(), time.Now())
	require.NoError(t, err)
	assert.Equal(t, 4, h.Stats.Total)
}
