// Package schedule evaluates the current slot of a fixed weekly timetable.
//
// Slot times are minutes from the start of a weekday's cycle. A cycle runs
// past midnight into the next morning, so slots may end after minute 1440.
// The evaluator holds no state; callers re-evaluate on a timer.
package schedule

import (
	"fmt"
	"time"
)

// Cycle boundaries in minutes.
const (
	MinutesPerDay = 1440
	// TailEnd is when the previous day's cycle stops owning the early morning.
	TailEnd = 120
	// MondayStart is when Monday's cycle begins; Sunday night has no tail.
	MondayStart = 600
	// MaxMinute bounds slot ends: one day plus the following day.
	MaxMinute = 2 * MinutesPerDay
)

// PollInterval is how often a live display should re-evaluate.
const PollInterval = time.Minute

// OffSchedule is the sentinel status name outside any active slot.
const (
	OffSchedule      = "Off Schedule"
	OffScheduleClass = "off-schedule"
)

// Slot is a named span of the cycle. StartMin is inclusive, EndMin exclusive.
type Slot struct {
	Name     string `yaml:"name" json:"name"`
	Class    string `yaml:"class" json:"class"`
	StartMin int    `yaml:"start" json:"start"`
	EndMin   int    `yaml:"end" json:"end"`
}

// Table is a weekday cycle anchored in a time zone.
type Table struct {
	Zone  string `yaml:"zone" json:"zone"`
	Slots []Slot `yaml:"slots" json:"slots"`
}

// DefaultTable is the Europe/London weekday cycle: 02:00 sleep through to the
// 01:30-02:00 evening routine of the following night.
func DefaultTable() Table {
	return Table{
		Zone: "Europe/London",
		Slots: []Slot{
			{Name: "Sleep", Class: "sleep", StartMin: 120, EndMin: 600},
			{Name: "Morning Routine", Class: "morning-routine", StartMin: 600, EndMin: 660},
			{Name: "Free Time", Class: "free-time", StartMin: 660, EndMin: 780},
			{Name: "Light Work", Class: "light-work", StartMin: 780, EndMin: 1020},
			{Name: "Free Time", Class: "free-time", StartMin: 1020, EndMin: 1380},
			{Name: "Deep Work", Class: "deep-work", StartMin: 1380, EndMin: 1530},
			{Name: "Evening Routine", Class: "evening-routine", StartMin: 1530, EndMin: 1560},
		},
	}
}

// Location resolves the table's zone. An empty zone is UTC.
func (t Table) Location() (*time.Location, error) {
	loc, err := time.LoadLocation(t.Zone)
	if err != nil {
		return nil, fmt.Errorf("%w: zone %q: %v", ErrInvalidTable, t.Zone, err)
	}
	return loc, nil
}

// Validate checks that the table has slots and every slot is a non-empty
// span inside [0, MaxMinute].
func (t Table) Validate() error {
	if len(t.Slots) == 0 {
		return fmt.Errorf("%w: no slots", ErrInvalidTable)
	}
	for i, s := range t.Slots {
		if s.Name == "" {
			return fmt.Errorf("%w: slot %d has no name", ErrInvalidTable, i)
		}
		if s.StartMin < 0 || s.StartMin >= s.EndMin || s.EndMin > MaxMinute {
			return fmt.Errorf("%w: slot %q spans %d-%d", ErrInvalidTable, s.Name, s.StartMin, s.EndMin)
		}
	}
	if _, err := t.Location(); err != nil {
		return err
	}
	return nil
}

// Status is the evaluated slot. Remaining is in whole minutes, -1 when off.
type Status struct {
	Name      string `json:"name"`
	Class     string `json:"class"`
	Remaining int    `json:"remaining"`
	Active    bool   `json:"active"`
}

// Off is the sentinel status.
func Off() Status {
	return Status{Name: OffSchedule, Class: OffScheduleClass, Remaining: -1}
}

// Label renders the status line, e.g. "Deep Work - 1h 5m remaining".
func (s Status) Label() string {
	if rem := FormatRemaining(s.Remaining); rem != "" {
		return s.Name + " - " + rem
	}
	return s.Name
}

// CycleMinute maps a wall-clock weekday and minute onto the weekday cycle.
// It reports false when no cycle owns that moment: Sunday, Monday before
// MondayStart, and Saturday after Friday's tail.
func CycleMinute(day time.Weekday, nowMin int) (int, bool) {
	switch day {
	case time.Monday:
		if nowMin >= MondayStart {
			return nowMin, true
		}
		return 0, false
	case time.Tuesday, time.Wednesday, time.Thursday, time.Friday:
		if nowMin < TailEnd {
			return nowMin + MinutesPerDay, true
		}
		return nowMin, true
	case time.Saturday:
		if nowMin < TailEnd {
			return nowMin + MinutesPerDay, true
		}
		return 0, false
	default:
		return 0, false
	}
}

// Evaluate returns the slot of table active at now, read in the table's
// zone. Slots are checked in order and the first match wins. A table with an
// unloadable zone evaluates in UTC.
func Evaluate(table Table, now time.Time) Status {
	loc, err := table.Location()
	if err != nil {
		loc = time.UTC
	}
	local := now.In(loc)
	nowMin := local.Hour()*60 + local.Minute()

	cycle, ok := CycleMinute(local.Weekday(), nowMin)
	if !ok {
		return Off()
	}
	for _, s := range table.Slots {
		if cycle >= s.StartMin && cycle < s.EndMin {
			return Status{Name: s.Name, Class: s.Class, Remaining: s.EndMin - cycle, Active: true}
		}
	}
	return Off()
}

// FormatRemaining renders minutes as "2h 5m remaining", "2h remaining" or
// "5m remaining". Non-positive values render empty.
func FormatRemaining(minutes int) string {
	if minutes <= 0 {
		return ""
	}
	h, m := minutes/60, minutes%60
	switch {
	case h > 0 && m > 0:
		return fmt.Sprintf("%dh %dm remaining", h, m)
	case h > 0:
		return fmt.Sprintf("%dh remaining", h)
	default:
		return fmt.Sprintf("%dm remaining", m)
	}
}
