// Package stats derives summary statistics from aggregated records: streaks,
// top-k rankings with an "Other" remainder, percentages, running totals and
// forecast calibration. Functions are pure and never fail; empty input and
// zero denominators produce zeros.
package stats

import (
	"sort"
	"time"

	"github.com/alexanderramin/tally/internal/calendar"
)

// ISOWeekKey maps a date to its ISO-8601 week key (YYYY-Www).
func ISOWeekKey(t time.Time) string {
	return calendar.ISOWeekKey(t)
}

// Streak counts consecutive active days ending today. Days are YYYY-MM-DD keys
// read in now's location; duplicates and unparseable keys are ignored.
//
// The walk starts at today's midnight and moves back one day per match. When
// the newest day is yesterday and nothing has been counted, it is accepted
// once as a grace day and the walk continues from there. Any other gap ends
// the streak.
func Streak(days []string, now time.Time) int {
	loc := now.Location()
	seen := make(map[string]bool, len(days))
	var unique []string
	for _, d := range days {
		if seen[d] {
			continue
		}
		if _, ok := calendar.ParseDay(d, loc); !ok {
			continue
		}
		seen[d] = true
		unique = append(unique, d)
	}
	sort.Sort(sort.Reverse(sort.StringSlice(unique)))

	streak := 0
	check := calendar.StartOfDay(now)
	for _, d := range unique {
		day, _ := calendar.ParseDay(d, loc)
		diff := calendar.DaysBetween(day, check)

		switch {
		case diff == 0:
			streak++
			check = check.AddDate(0, 0, -1)
		case diff == 1 && streak == 0:
			streak++
			check = day.AddDate(0, 0, -1)
		default:
			return streak
		}
	}
	return streak
}
