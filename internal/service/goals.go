package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/calendar"
	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/source"
	"github.com/alexanderramin/tally/internal/stats"
)

// groupOrder lists goal groups as the page shows them: open work first.
var groupOrder = []domain.GoalStatus{domain.GoalInProgress, domain.GoalNotStarted, domain.GoalDone}

type goalsService struct {
	src      source.Source
	theme    contract.Theme
	observer UseCaseObserver
}

func NewGoalsService(src source.Source, theme contract.Theme, observers ...UseCaseObserver) GoalsService {
	return &goalsService{src: src, theme: theme, observer: useCaseObserverOrNoop(observers)}
}

func (s *goalsService) GetGoals(ctx context.Context, now time.Time) (dash *contract.GoalsDashboard, err error) {
	uc := startUseCase(s.observer, "goals")
	defer func() { uc.done(ctx, err) }()

	records, err := fetchDataset(ctx, s.src, "goals")
	if err != nil {
		return nil, err
	}
	uc.set("goals", len(records))

	d := BuildGoals(records, now.Location(), s.theme)
	return &d, nil
}

func goalDone(r domain.Record) bool {
	return domain.GoalStatus(r.String(domain.FieldStatus)) == domain.GoalDone
}

// BuildGoals summarises the goal list.
func BuildGoals(goals []domain.Record, loc *time.Location, theme contract.Theme) contract.GoalsDashboard {
	total := len(goals)
	completed := len(aggregate.Filter(goals, goalDone))
	category := aggregate.Field(domain.FieldCategory)

	st := contract.GoalStats{
		Total:          total,
		Completed:      completed,
		InProgress:     len(aggregate.Filter(goals, aggregate.FieldEquals(domain.FieldStatus, string(domain.GoalInProgress)))),
		CompletionRate: stats.RatioPercent(float64(completed), float64(total)),
		TopCategory:    topKeyOr(known(aggregate.Count(goals, category)), noValue),
	}

	byCategory := aggregate.Count(goals, category).ByValueDesc()
	charts := []contract.Chart{
		contract.SeriesChart("category", "Goals by Category", contract.ChartDoughnut, "",
			byCategory, theme.Colors(len(byCategory), 0)...),
		goalStatusChart(goals, theme),
	}
	if c, ok := goalTimelineChart(goals, loc, theme); ok {
		charts = append(charts, c)
	}
	charts = append(charts, goalProgressChart(goals, theme))

	return contract.GoalsDashboard{
		Stats:  st,
		Charts: charts,
		Groups: goalGroups(goals),
	}
}

func goalStatusChart(goals []domain.Record, theme contract.Theme) contract.Chart {
	keys := make([]string, len(domain.GoalStatuses))
	colors := make([]string, len(domain.GoalStatuses))
	for i, st := range domain.GoalStatuses {
		keys[i] = string(st)
		colors[i] = theme.GoalStatuses[st]
	}
	s := aggregate.Count(goals, aggregate.Field(domain.FieldStatus)).Fill(keys, func(k string) string {
		return domain.GoalStatus(k).Label()
	})
	return contract.SeriesChart("status", "Goals by Status", contract.ChartDoughnut, "", s, colors...)
}

// goalTimelineChart accumulates completions from January through the month
// of the last completion. It reports false when nothing has a completion date.
func goalTimelineChart(goals []domain.Record, loc *time.Location, theme contract.Theme) (contract.Chart, bool) {
	done := aggregate.Filter(goals, goalDone)
	last, ok := latest(done, domain.FieldDateCompleted, loc)
	if !ok {
		return contract.Chart{}, false
	}
	perMonth := aggregate.Count(done, aggregate.Month(domain.FieldDateCompleted, loc))
	s := stats.CumulativeSeries(perMonth, calendar.MonthsThrough(calendar.MonthKey(last)), calendar.ShortMonthLabel)
	return contract.SeriesChart("timeline", "Goals Completed Over Time", contract.ChartLine, "Goals Completed",
		s, theme.Accent), true
}

func goalProgressChart(goals []domain.Record, theme contract.Theme) contract.Chart {
	tallies := aggregate.TallyBy(goals, aggregate.Field(domain.FieldCategory), goalDone)
	rates := make(aggregate.Aggregate, len(tallies))
	for k, t := range tallies {
		rates[k] = float64(stats.RatioPercent(float64(t.Hits), float64(t.Total)))
	}
	s := rates.Chronological(nil)
	c := contract.SeriesChart("category_progress", "Completion by Category", contract.ChartBar, "Completion %",
		s, theme.Colors(len(s), 0)...)
	c.Horizontal = true
	return c
}

// goalGroups lists goals by status in groupOrder, skipping empty groups.
// Goals in other states are not listed.
func goalGroups(goals []domain.Record) []contract.GoalGroup {
	byStatus := make(map[domain.GoalStatus][]contract.GoalItem)
	for _, r := range goals {
		status := domain.GoalStatus(r.String(domain.FieldStatus))
		byStatus[status] = append(byStatus[status], contract.GoalItem{
			Goal:     r.String(domain.FieldGoal),
			Category: r.String(domain.FieldCategory),
			Progress: goalProgress(r, status),
		})
	}

	groups := []contract.GoalGroup{}
	for _, status := range groupOrder {
		items := byStatus[status]
		if len(items) == 0 {
			continue
		}
		groups = append(groups, contract.GoalGroup{Status: status, Label: status.Label(), Goals: items})
	}
	return groups
}

// goalProgress formats "current/target unit (pct%)" for open goals with a
// measurable unit.
func goalProgress(r domain.Record, status domain.GoalStatus) string {
	unit := r.String(domain.FieldUnit)
	if unit == domain.GoalUnitBinary || unit == "" || status == domain.GoalDone {
		return ""
	}
	current, target := r.Float(domain.FieldCurrent), r.Float(domain.FieldTarget)
	pct := stats.RatioPercent(current, target)
	return fmt.Sprintf("%s/%s %s (%d%%)", formatNumber(current), formatNumber(target), unit, pct)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
