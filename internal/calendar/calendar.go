// Package calendar derives group keys from timestamps: calendar days,
// months, years, hours and ISO-8601 weeks, plus gap-filled month ranges.
package calendar

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	dayLayout   = "2006-01-02"
	monthLayout = "2006-01"
)

// DayKey returns the YYYY-MM-DD key of t in its own location.
func DayKey(t time.Time) string {
	return t.Format(dayLayout)
}

// MonthKey returns the YYYY-MM key of t.
func MonthKey(t time.Time) string {
	return t.Format(monthLayout)
}

// YearKey returns the four-digit year of t.
func YearKey(t time.Time) string {
	return strconv.Itoa(t.Year())
}

// HourKey returns the hour of day of t, 0-23, without padding.
func HourKey(t time.Time) string {
	return strconv.Itoa(t.Hour())
}

// ISOWeekKey maps a date to YYYY-Www. Weeks start on Monday and week 1 is the
// week containing the year's first Thursday, so early-January days can belong
// to the previous ISO year.
func ISOWeekKey(t time.Time) string {
	year, week := t.ISOWeek()
	return fmt.Sprintf("%d-W%02d", year, week)
}

// WeekNumber returns the week part of an ISO week key ("2026-W07" -> "07").
func WeekNumber(key string) string {
	if _, week, ok := strings.Cut(key, "-W"); ok {
		return week
	}
	return key
}

// ParseDay parses a YYYY-MM-DD key as midnight in loc.
func ParseDay(key string, loc *time.Location) (time.Time, bool) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(dayLayout, key, loc)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// ParseMonth parses a YYYY-MM key as the first of the month in UTC.
func ParseMonth(key string) (time.Time, bool) {
	t, err := time.Parse(monthLayout, key)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// StartOfDay truncates t to local midnight in its own location.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the number of calendar days from a to b, counted on
// civil dates so DST transitions never produce fractional days.
func DaysBetween(a, b time.Time) int {
	ay, am, ad := a.Date()
	by, bm, bd := b.In(a.Location()).Date()
	from := time.Date(ay, am, ad, 0, 0, 0, 0, time.UTC)
	to := time.Date(by, bm, bd, 0, 0, 0, 0, time.UTC)
	return int(to.Sub(from).Hours() / 24)
}

// MonthSpan returns every month key from first to last inclusive. It returns
// nil when either key is malformed or last precedes first.
func MonthSpan(first, last string) []string {
	start, ok := ParseMonth(first)
	if !ok {
		return nil
	}
	end, ok := ParseMonth(last)
	if !ok || end.Before(start) {
		return nil
	}
	var keys []string
	for m := start; !m.After(end); m = m.AddDate(0, 1, 0) {
		keys = append(keys, MonthKey(m))
	}
	return keys
}

// MonthsThrough returns January through the month of last, within last's year.
func MonthsThrough(last string) []string {
	end, ok := ParseMonth(last)
	if !ok {
		return nil
	}
	return MonthSpan(fmt.Sprintf("%d-01", end.Year()), last)
}

// ShortDayLabel formats a day key as "Jan 5".
func ShortDayLabel(key string) string {
	t, ok := ParseDay(key, time.UTC)
	if !ok {
		return key
	}
	return t.Format("Jan 2")
}

// ShortMonthLabel formats a month key as "Jan".
func ShortMonthLabel(key string) string {
	t, ok := ParseMonth(key)
	if !ok {
		return key
	}
	return t.Format("Jan")
}

// MonthYearLabel formats a month key as "Jan 26".
func MonthYearLabel(key string) string {
	t, ok := ParseMonth(key)
	if !ok {
		return key
	}
	return t.Format("Jan 06")
}
