package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tally/internal/contract"
)

const progressWidth = 20

// FormatAnki renders the flashcard page.
func FormatAnki(d *contract.AnkiDashboard) string {
	st := d.Stats
	return page("Anki", []contract.StatValue{
		stat("Reviews", strconv.Itoa(st.TotalReviews)),
		stat("Hours", oneDecimal(st.Hours)),
		stat("Days", strconv.Itoa(st.Days)),
		stat("Avg/Day", strconv.Itoa(st.AvgPerDay)),
		stat("Streak", fmt.Sprintf("%dd", st.Streak)),
		stat("Success Rate", RenderProgress(st.SuccessRate, progressWidth)),
	}, d.Charts)
}

// FormatProgramming renders the coding time page.
func FormatProgramming(d *contract.ProgrammingDashboard) string {
	st := d.Stats
	return page("Programming", []contract.StatValue{
		stat("Hours", oneDecimal(st.TotalHours)),
		stat("Avg/Day", oneDecimal(st.AvgDailyHours)+"h"),
		stat("Days", strconv.Itoa(st.Days)),
		stat("Top Language", st.TopLanguage),
		stat("Top AI Language", st.TopAILanguage),
		stat("AI Share", RenderProgress(st.AIPercent, progressWidth)),
	}, d.Charts)
}

// FormatReading renders the single-year reading page.
func FormatReading(d *contract.ReadingDashboard) string {
	st := d.Stats
	projected := noValue
	if st.Projected != nil {
		projected = strconv.Itoa(*st.Projected)
	}
	var b strings.Builder
	b.WriteString(page("Reading", []contract.StatValue{
		stat("Books", strconv.Itoa(st.Total)),
		stat("Avg Rating", oneDecimal(st.AvgRating)),
		stat("Top Category", st.TopCategory),
		stat("Top Format", st.TopFormat),
		stat("Fiction", percent(st.FictionPercent)),
		stat("Projected", projected),
	}, d.Charts))
	b.WriteString(formatBooks(d.Highlights, d.Books))
	return b.String()
}

// FormatReadingHistory renders the all-years reading page.
func FormatReadingHistory(h *contract.ReadingHistory) string {
	st := h.Stats
	var b strings.Builder
	b.WriteString(page("Reading History", []contract.StatValue{
		stat("Books", strconv.Itoa(st.Total)),
		stat("Years", strconv.Itoa(st.Years)),
		stat("Avg/Year", oneDecimal(st.AvgPerYear)),
		stat("Avg Rating", oneDecimal(st.AvgRating)),
		stat("Top Category", st.TopCategory),
		stat("Top Format", st.TopFormat),
	}, h.Charts))
	b.WriteString(formatBooks(h.Highlights, h.Books))
	return b.String()
}

func formatBooks(highlights, books []contract.Book) string {
	var b strings.Builder
	if len(highlights) > 0 {
		b.WriteString("\n")
		b.WriteString(Header("Highlights"))
		b.WriteString("\n")
		for _, book := range highlights {
			fmt.Fprintf(&b, "%s %s %s\n", StyleYellow.Render("★"), Bold(book.Title), Dim(fmt.Sprintf("(%d/10)", book.Rating)))
			if book.Review != "" {
				fmt.Fprintf(&b, "  %s\n", Dim(book.Review))
			}
		}
	}
	if len(books) > 0 {
		rows := make([][]string, len(books))
		for i, book := range books {
			rows[i] = []string{orNoValue(book.Date), book.Title, book.Category, book.Format, strconv.Itoa(book.Rating)}
		}
		b.WriteString("\n")
		b.WriteString(Header("Books"))
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{"DATE", "TITLE", "CATEGORY", "FORMAT", "RATING"}, rows))
	}
	return b.String()
}

// FormatGoals renders the goals page with its status groups.
func FormatGoals(d *contract.GoalsDashboard) string {
	st := d.Stats
	var b strings.Builder
	b.WriteString(page("Goals", []contract.StatValue{
		stat("Goals", strconv.Itoa(st.Total)),
		stat("Completed", strconv.Itoa(st.Completed)),
		stat("In Progress", strconv.Itoa(st.InProgress)),
		stat("Completion", RenderProgress(st.CompletionRate, progressWidth)),
		stat("Top Category", st.TopCategory),
	}, d.Charts))

	for _, g := range d.Groups {
		b.WriteString("\n")
		b.WriteString(Header(fmt.Sprintf("%s (%d)", g.Label, len(g.Goals))))
		b.WriteString("\n")
		for _, goal := range g.Goals {
			line := fmt.Sprintf("• %s %s", goal.Goal, Dim("["+goal.Category+"]"))
			if goal.Progress != "" {
				line += "  " + StyleBlue.Render(goal.Progress)
			}
			b.WriteString(line)
			b.WriteString("\n")
		}
	}
	return b.String()
}

// page renders the stats box followed by the charts.
func page(title string, stats []contract.StatValue, charts []contract.Chart) string {
	var b strings.Builder
	b.WriteString(RenderBox(title, RenderStats(stats)))
	b.WriteString("\n")
	if drawn := FormatCharts(charts); drawn != "" {
		b.WriteString("\n")
		b.WriteString(drawn)
	}
	return b.String()
}
