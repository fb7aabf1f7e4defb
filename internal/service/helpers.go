package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/source"
	"github.com/alexanderramin/tally/internal/stats"
)

// noValue is shown for a stat that has nothing to summarise.
const noValue = "-"

const secondsPerHour = 3600

// fetchDataset loads a dataset, naming it in any error.
func fetchDataset(ctx context.Context, src source.Source, dataset string) ([]domain.Record, error) {
	records, err := src.Fetch(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading %s data: %w", dataset, err)
	}
	return records, nil
}

// titleLabel turns a lowercase key such as "again" into "Again". Casers keep
// state, so each call gets its own.
func titleLabel(key string) string {
	return cases.Title(language.English).String(key)
}

func topKeyOr(agg aggregate.Aggregate, fallback string) string {
	if k, ok := stats.TopKey(agg); ok {
		return k
	}
	return fallback
}

// known drops the Unknown bucket left by unparseable dates.
func known(agg aggregate.Aggregate) aggregate.Aggregate {
	return agg.Without(aggregate.Unknown)
}

// numberKeys returns "lo".."hi" as keys.
func numberKeys(lo, hi int) []string {
	keys := make([]string, 0, hi-lo+1)
	for i := lo; i <= hi; i++ {
		keys = append(keys, strconv.Itoa(i))
	}
	return keys
}

func hourLabel(key string) string {
	return key + ":00"
}

// sumField adds field over records; malformed values count as zero.
func sumField(records []domain.Record, field string) float64 {
	var sum float64
	for _, r := range records {
		sum += r.Float(field)
	}
	return sum
}

func round1(v float64) float64 { return stats.Round(v, 1) }

func round2(v float64) float64 { return stats.Round(v, 2) }

func hours(seconds float64) float64 { return seconds / secondsPerHour }

// latest returns the newest parseable time in field.
func latest(records []domain.Record, field string, loc *time.Location) (time.Time, bool) {
	var last time.Time
	found := false
	for _, r := range records {
		t, ok := r.Time(field, loc)
		if !ok {
			continue
		}
		if !found || t.After(last) {
			last, found = t, true
		}
	}
	return last, found
}
