package formatter

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/schedule"
	"github.com/alexanderramin/tally/internal/search"
)

func lines(s string) []string {
	return strings.Split(strings.TrimRight(stripStyle(s), "\n"), "\n")
}

func TestRenderTable_RightAlignsNumbers(t *testing.T) {
	out := lines(RenderTable([]string{"LANG", "HOURS"}, [][]string{{"Go", "1.5h"}, {"Rust", "12"}}))

	require.Len(t, out, 4)
	assert.Equal(t, "LANG  HOURS", out[0])
	assert.Equal(t, "Go     1.5h", out[2])
	assert.Equal(t, "Rust     12", out[3])
}

func TestRenderTable_Empty(t *testing.T) {
	assert.Empty(t, RenderTable(nil, nil))
}

func TestRenderProgress(t *testing.T) {
	tests := []struct {
		pct  int
		want string
	}{
		{0, "[░░░░░░░░░░]   0%"},
		{45, "[████░░░░░░]  45%"},
		{100, "[██████████] 100%"},
		{150, "[██████████] 100%"},
		{-5, "[░░░░░░░░░░]   0%"},
	}
	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			assert.Equal(t, tt.want, stripStyle(RenderProgress(tt.pct, 10)))
		})
	}
}

func TestRenderBar(t *testing.T) {
	assert.Equal(t, strings.Repeat(filledBlock, 10), stripStyle(RenderBar(5, 10, 20, StyleFg)))
	assert.Equal(t, filledBlock, stripStyle(RenderBar(0.01, 100, 20, StyleFg)), "non-zero values get a block")
	assert.Empty(t, RenderBar(0, 10, 20, StyleFg))
	assert.Empty(t, RenderBar(3, 0, 20, StyleFg))
}

func TestFormatChart_SingleSeries(t *testing.T) {
	c := contract.Chart{
		ID: "buttons", Title: "Answer Buttons", Kind: contract.ChartPie,
		Labels:   []string{"Again", "Good"},
		Datasets: []contract.Dataset{{Data: []float64{1, 3}, Colors: []string{"#e15759", "#59a14f"}}},
	}
	out := stripStyle(FormatChart(c))

	assert.Contains(t, out, "ANSWER BUTTONS")
	assert.Contains(t, out, "Again  "+strings.Repeat(filledBlock, 10)+" 1")
	assert.Contains(t, out, "Good   "+strings.Repeat(filledBlock, 30)+" 3")
}

func TestFormatChart_MultiSeries(t *testing.T) {
	c := contract.Chart{
		Title:  "Weekly",
		Labels: []string{"Week 01", "Week 02"},
		Datasets: []contract.Dataset{
			{Label: "Manual", Data: []float64{1.5, 2}},
			{Label: "AI-Assisted", Data: []float64{0.25, 0}},
		},
	}
	out := lines(FormatChart(c))

	require.Len(t, out, 6)
	assert.Contains(t, out[2], "Manual")
	assert.Contains(t, out[2], "AI-Assisted")
	assert.True(t, strings.HasPrefix(out[4], "Week 01"))
	assert.True(t, strings.HasSuffix(out[4], "0.25"))
}

func TestFormatCharts_SkipsEmpty(t *testing.T) {
	out := stripStyle(FormatCharts([]contract.Chart{
		{Title: "Empty", Labels: []string{"a"}, Datasets: []contract.Dataset{{Data: []float64{0}}}},
		{Title: "Full", Labels: []string{"a"}, Datasets: []contract.Dataset{{Data: []float64{2}}}},
	}))

	assert.NotContains(t, out, "EMPTY")
	assert.Contains(t, out, "FULL")
}

func TestFormatChart_Empty(t *testing.T) {
	assert.Contains(t, stripStyle(FormatChart(contract.Chart{Title: "Hours"})), "no data")
}

func TestFormatForecast_NothingResolved(t *testing.T) {
	out := stripStyle(FormatForecast(&contract.ForecastDashboard{
		Summary: contract.ForecastSummary{Total: 2, Pending: 2},
	}))

	assert.Contains(t, out, "FORECASTING")
	assert.Regexp(t, `Brier Score\s+-`, out)
	assert.Regexp(t, `Accuracy\s+-`, out)
	assert.Regexp(t, `Resolved\s+0/2`, out)
}

func TestFormatForecast_Categories(t *testing.T) {
	score := 0.2
	out := stripStyle(FormatForecast(&contract.ForecastDashboard{
		Summary:    contract.ForecastSummary{Total: 1, Resolved: 1, Correct: 1, BrierScore: &score},
		Accuracy:   100,
		Categories: []contract.CategoryStats{{Name: "weather", Count: 1, Correct: 1, BrierScore: &score}},
	}))

	assert.Regexp(t, `Brier Score\s+0\.200`, out)
	assert.Regexp(t, `weather\s+1\s+1\s+0\.200`, out)
}

func TestFormatReading_ProjectionAndBooks(t *testing.T) {
	out := stripStyle(FormatReading(&contract.ReadingDashboard{
		Stats:      contract.ReadingStats{Total: 1, AvgRating: 9},
		Highlights: []contract.Book{{Title: "Dune", Rating: 9, Review: "Spice."}},
		Books:      []contract.Book{{Title: "Dune", Date: "2026-01-04", Category: "Sci-Fi", Format: "Kindle", Rating: 9}},
	}))

	assert.Regexp(t, `Projected\s+-`, out)
	assert.Contains(t, out, "★ Dune (9/10)")
	assert.Contains(t, out, "Spice.")
	assert.Regexp(t, `2026-01-04\s+Dune\s+Sci-Fi\s+Kindle\s+9`, out)
}

func TestFormatGoals_Groups(t *testing.T) {
	out := stripStyle(FormatGoals(&contract.GoalsDashboard{
		Stats: contract.GoalStats{Total: 1, InProgress: 1},
		Groups: []contract.GoalGroup{{
			Label: "In Progress",
			Goals: []contract.GoalItem{{Goal: "Read 12 books", Category: "reading", Progress: "3/12 books (25%)"}},
		}},
	}))

	assert.Contains(t, out, "IN PROGRESS (1)")
	assert.Contains(t, out, "• Read 12 books [reading]  3/12 books (25%)")
}

func TestFormatThoughts(t *testing.T) {
	out := stripStyle(FormatThoughts(&contract.ThoughtsFeed{
		Stats: contract.ThoughtStats{Total: 1, ThisMonth: 1},
		Days: []contract.ThoughtDay{{
			Key: "2026-03-10", Label: "Today",
			Thoughts: []contract.Thought{{Content: "morning", Clock: "9:00 AM", Relative: "2h ago"}},
		}},
	}))

	assert.Contains(t, out, "1 thoughts  1 this month")
	assert.Contains(t, out, "TODAY")
	assert.Contains(t, out, " 9:00 AM  morning · 2h ago")

	assert.Contains(t, stripStyle(FormatThoughts(&contract.ThoughtsFeed{})), "No thoughts yet.")
}

func TestFormatSearch_Results(t *testing.T) {
	out := stripStyle(FormatSearch(&contract.SearchResponse{
		Terms:      []string{"go"},
		CountLabel: "1 post found",
		Results: []contract.SearchHit{{
			Title: "Learning Go", Date: "2026-01-10", URL: "/posts/go",
			Excerpt: "goroutines", Tags: []contract.TagView{{Name: "go", Hit: true}, {Name: "misc"}},
		}},
	}))

	assert.Contains(t, out, "1 post found")
	assert.Contains(t, out, "Learning Go  2026-01-10")
	assert.Contains(t, out, "#go #misc")
}

func TestFormatSearch_Listing(t *testing.T) {
	out := stripStyle(FormatSearch(&contract.SearchResponse{
		Featured: &search.Entry{Title: "Newest", Date: "2026-02-01", URL: "/posts/new"},
		Archive:  []search.Entry{{Title: "Older", Date: "2026-01-01", Tags: []string{"go", "cli"}}},
	}))

	assert.Contains(t, out, "LATEST")
	assert.Contains(t, out, "Newest")
	assert.Regexp(t, `2026-01-01\s+Older\s+go, cli`, out)

	assert.Contains(t, stripStyle(FormatSearch(&contract.SearchResponse{})), "No posts.")
}

func TestTerminalHighlighter(t *testing.T) {
	h := TerminalHighlighter()
	got := h.Highlight("Go <b>rocks</b>", []string{"go"})

	assert.Equal(t, "Go <b>rocks</b>", stripStyle(got), "terminal output keeps the text as is")
}

func TestFormatOverview_FailedCard(t *testing.T) {
	out := stripStyle(FormatOverview(&contract.Overview{Cards: []contract.OverviewCard{
		{Name: "anki", Title: "Anki", Err: "loading anki data: boom"},
		{Name: "goals", Title: "Goals", Stats: []contract.StatValue{{Label: "Goals", Value: "3"}}},
	}}))

	assert.Contains(t, out, "ANKI")
	assert.Contains(t, out, "unavailable")
	assert.Contains(t, out, "loading anki data: boom")
	assert.Regexp(t, `Goals\s+3`, out)
}

func TestFormatScheduleStatus(t *testing.T) {
	active := schedule.Status{Name: "Deep Work", Class: "deep-work", Remaining: 65, Active: true}
	assert.Equal(t, "● Deep Work - 1h 5m remaining\n", stripStyle(FormatScheduleStatus(active)))
	assert.Equal(t, "○ Off Schedule\n", stripStyle(FormatScheduleStatus(schedule.Off())))
}

func TestSlotStyle_UnknownIsDim(t *testing.T) {
	assert.Equal(t, StyleDim, SlotStyle(schedule.OffScheduleClass))
	assert.Equal(t, StyleRed, SlotStyle("deep-work"))
}

func TestSpinner_ClearsLineOnStop(t *testing.T) {
	var buf bytes.Buffer
	stop := StartSpinner(&buf, "loading")
	stop()
	stop()

	assert.True(t, strings.HasSuffix(buf.String(), "\r\033[K"))
}
