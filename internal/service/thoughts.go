package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/alexanderramin/tally/internal/calendar"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/source"
	"github.com/alexanderramin/tally/internal/stats"
)

const (
	clockLayout    = "3:04 PM"
	dayLabelLayout = "Mon, Jan 2, 2006"
)

type thoughtsService struct {
	src      source.Source
	observer UseCaseObserver
}

func NewThoughtsService(src source.Source, observers ...UseCaseObserver) ThoughtsService {
	return &thoughtsService{src: src, observer: useCaseObserverOrNoop(observers)}
}

func (s *thoughtsService) GetThoughts(ctx context.Context, now time.Time) (feed *contract.ThoughtsFeed, err error) {
	uc := startUseCase(s.observer, "thoughts")
	defer func() { uc.done(ctx, err) }()

	records, err := fetchDataset(ctx, s.src, "thoughts")
	if err != nil {
		return nil, err
	}
	uc.set("thoughts", len(records))

	f := BuildThoughts(records, now)
	return &f, nil
}

// BuildThoughts lays out the post timeline as of now. Posts with an
// unparseable date count toward the total but are not listed.
func BuildThoughts(records []domain.Record, now time.Time) contract.ThoughtsFeed {
	loc := now.Location()
	thoughts := make([]contract.Thought, 0, len(records))
	times := make([]time.Time, 0, len(records))
	st := contract.ThoughtStats{Total: len(records)}

	for _, r := range records {
		at, ok := r.Time(domain.FieldDate, loc)
		if !ok {
			continue
		}
		times = append(times, at)
		if at.Year() == now.Year() && at.Month() == now.Month() {
			st.ThisMonth++
		}
		thoughts = append(thoughts, contract.Thought{
			Content:  r.String(domain.FieldContent),
			At:       at,
			Clock:    at.Format(clockLayout),
			Relative: RelativeTime(at, now),
		})
	}
	st.PerDay, st.PerWeek = stats.SpanRates(times, st.Total)

	sort.SliceStable(thoughts, func(i, j int) bool { return thoughts[i].At.After(thoughts[j].At) })

	days := []contract.ThoughtDay{}
	for _, t := range thoughts {
		key := calendar.DayKey(t.At)
		if n := len(days); n > 0 && days[n-1].Key == key {
			days[n-1].Thoughts = append(days[n-1].Thoughts, t)
			continue
		}
		days = append(days, contract.ThoughtDay{Key: key, Label: DayLabel(t.At, now), Thoughts: []contract.Thought{t}})
	}

	return contract.ThoughtsFeed{Stats: st, Days: days}
}

// DayLabel names the calendar day of t relative to now.
func DayLabel(t, now time.Time) string {
	switch calendar.DaysBetween(t, now) {
	case 0:
		return "Today"
	case 1:
		return "Yesterday"
	default:
		return t.Format(dayLabelLayout)
	}
}

// RelativeTime formats the age of t, e.g. "5m ago". Future times read as
// "just now".
func RelativeTime(t, now time.Time) string {
	d := now.Sub(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d/time.Minute))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d/time.Hour))
	}
	days := int(d / (24 * time.Hour))
	switch {
	case days < 7:
		return fmt.Sprintf("%dd ago", days)
	case days < 30:
		return fmt.Sprintf("%dw ago", days/7)
	default:
		return fmt.Sprintf("%dmo ago", days/30)
	}
}
