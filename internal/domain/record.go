package domain

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
	"time"
)

// Record is one flat unit of dataset input: a review, a book, a time-tracking
// entry, a prediction. Values are strings, numbers (float64 or json.Number),
// bools, or string arrays. Accessors never fail; malformed or missing fields
// read as the neutral value for their type.
type Record map[string]any

// timeLayouts are tried in order by Time.
var timeLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02 15:04:05 -0700",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	DateLayout,
	"01/02/2006",
}

// DateLayout is the calendar-day layout used for day keys.
const DateLayout = "2006-01-02"

// Has reports whether the field is present and non-nil.
func (r Record) Has(field string) bool {
	v, ok := r[field]
	return ok && v != nil
}

// String returns the field as a string. Numbers are formatted without
// trailing zeros; missing fields return "".
func (r Record) String(field string) string {
	switch v := r[field].(type) {
	case nil:
		return ""
	case string:
		return v
	case json.Number:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}

// Float returns the field as a float64. Numeric strings are parsed; anything
// else, including NaN and infinities, reads as 0.
func (r Record) Float(field string) float64 {
	var f float64
	switch v := r[field].(type) {
	case float64:
		f = v
	case int:
		f = float64(v)
	case int64:
		f = float64(v)
	case json.Number:
		parsed, err := v.Float64()
		if err != nil {
			return 0
		}
		f = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v), 64)
		if err != nil {
			return 0
		}
		f = parsed
	default:
		return 0
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0
	}
	return f
}

// Int returns Float truncated toward zero.
func (r Record) Int(field string) int {
	return int(r.Float(field))
}

// Time parses the field as a timestamp. Values without a zone are read in
// loc. The second result is false when the field is missing or unparseable.
func (r Record) Time(field string, loc *time.Location) (time.Time, bool) {
	return ParseTime(r.String(field), loc)
}

// ParseTime parses s with the first matching record layout. RFC3339 values
// are converted to loc; zone-less values are read in loc. A nil loc means
// time.Local.
func ParseTime(s string, loc *time.Location) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	if loc == nil {
		loc = time.Local
	}
	for _, layout := range timeLayouts {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return t.In(loc), true
		}
	}
	return time.Time{}, false
}

// Strings returns the field as a string slice. JSON arrays keep their string
// members; a plain string is split on commas. Blank members are dropped.
func (r Record) Strings(field string) []string {
	var out []string
	switch v := r[field].(type) {
	case []string:
		for _, s := range v {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case []any:
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				continue
			}
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	case string:
		for _, s := range strings.Split(v, ",") {
			if s = strings.TrimSpace(s); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}
