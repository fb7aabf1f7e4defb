package stats

import (
	"math"
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/calendar"
)

// RatioPercent returns round(100*num/den), or 0 when den is 0.
func RatioPercent(num, den float64) int {
	if den == 0 {
		return 0
	}
	return int(math.Round(100 * num / den))
}

// Percent returns 100*num/den unrounded, or 0 when den is 0.
func Percent(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return 100 * num / den
}

// Round rounds v to the given number of decimal places.
func Round(v float64, places int) float64 {
	scale := math.Pow(10, float64(places))
	return math.Round(v*scale) / scale
}

// Mean returns the arithmetic mean, or 0 for no values.
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// CumulativeSeries returns running totals of agg over keys. Keys absent from
// agg contribute zero, so a gap-filled key list yields a flat segment.
func CumulativeSeries(agg aggregate.Aggregate, keys []string, label aggregate.LabelFunc) aggregate.Series {
	out := agg.Fill(keys, label)
	var running float64
	for i := range out {
		running += out[i].Value
		out[i].Value = running
	}
	return out
}

// ProjectAnnual extrapolates count, observed up to last, over last's whole
// year. It reports false on January 1st, where no days have elapsed.
func ProjectAnnual(count int, last time.Time) (int, bool) {
	start := time.Date(last.Year(), time.January, 1, 0, 0, 0, 0, last.Location())
	end := time.Date(last.Year(), time.December, 31, 0, 0, 0, 0, last.Location())
	elapsed := calendar.DaysBetween(start, last)
	if elapsed <= 0 {
		return 0, false
	}
	yearDays := calendar.DaysBetween(start, end)
	return int(math.Round(float64(count) * float64(yearDays) / float64(elapsed))), true
}

// SpanRates spreads total over the inclusive day span of times and returns
// the rounded per-day and per-week rates. The span is at least one day and
// one week.
func SpanRates(times []time.Time, total int) (perDay, perWeek int) {
	if len(times) == 0 || total == 0 {
		return 0, 0
	}
	earliest, latest := times[0], times[0]
	for _, t := range times[1:] {
		if t.Before(earliest) {
			earliest = t
		}
		if t.After(latest) {
			latest = t
		}
	}
	spanDays := math.Max(1, float64(calendar.DaysBetween(earliest, latest)+1))
	spanWeeks := math.Max(1, spanDays/7)
	return int(math.Round(float64(total) / spanDays)), int(math.Round(float64(total) / spanWeeks))
}
