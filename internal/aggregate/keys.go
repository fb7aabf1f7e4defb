package aggregate

import (
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/calendar"
	"github.com/alexanderramin/tally/internal/domain"
)

// Field keys by the raw field value, or Unknown when it is blank.
func Field(name string) KeyFunc {
	return func(r domain.Record) string {
		return domain.CoalesceStr(strings.TrimSpace(r.String(name)), Unknown)
	}
}

// LowerField keys by the lowercased field value.
func LowerField(name string) KeyFunc {
	return func(r domain.Record) string {
		v := strings.ToLower(strings.TrimSpace(r.String(name)))
		return domain.CoalesceStr(v, strings.ToLower(Unknown))
	}
}

// timeKey adapts a calendar formatter to a field key.
func timeKey(field string, loc *time.Location, format func(time.Time) string) KeyFunc {
	return func(r domain.Record) string {
		t, ok := r.Time(field, loc)
		if !ok {
			return Unknown
		}
		return format(t)
	}
}

// Day keys by calendar day (YYYY-MM-DD) in loc.
func Day(field string, loc *time.Location) KeyFunc {
	return timeKey(field, loc, calendar.DayKey)
}

// Month keys by calendar month (YYYY-MM) in loc.
func Month(field string, loc *time.Location) KeyFunc {
	return timeKey(field, loc, calendar.MonthKey)
}

// Year keys by calendar year in loc.
func Year(field string, loc *time.Location) KeyFunc {
	return timeKey(field, loc, calendar.YearKey)
}

// Hour keys by hour of day in loc.
func Hour(field string, loc *time.Location) KeyFunc {
	return timeKey(field, loc, calendar.HourKey)
}

// ISOWeek keys by ISO-8601 week (YYYY-Www) in loc.
func ISOWeek(field string, loc *time.Location) KeyFunc {
	return timeKey(field, loc, calendar.ISOWeekKey)
}

// Float reads a numeric field; unparseable values count as 0.
func Float(field string) ValueFunc {
	return func(r domain.Record) float64 { return r.Float(field) }
}

// Int reads a numeric field truncated toward zero.
func Int(field string) ValueFunc {
	return func(r domain.Record) float64 { return float64(r.Int(field)) }
}
