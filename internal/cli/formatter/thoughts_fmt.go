package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/contract"
)

// FormatThoughts renders the feed newest day first.
func FormatThoughts(feed *contract.ThoughtsFeed) string {
	st := feed.Stats
	var b strings.Builder
	fmt.Fprintf(&b, "%s %s  %s %s  %s %s  %s %s\n",
		Bold(fmt.Sprint(st.Total)), Dim("thoughts"),
		Bold(fmt.Sprint(st.ThisMonth)), Dim("this month"),
		Bold(fmt.Sprint(st.PerDay)), Dim("per day"),
		Bold(fmt.Sprint(st.PerWeek)), Dim("per week"))

	if len(feed.Days) == 0 {
		b.WriteString(Dim("No thoughts yet."))
		b.WriteString("\n")
		return b.String()
	}
	for _, day := range feed.Days {
		b.WriteString("\n")
		b.WriteString(Header(day.Label))
		b.WriteString("\n")
		for _, t := range day.Thoughts {
			fmt.Fprintf(&b, "%s  %s %s\n", StyleBlue.Render(fmt.Sprintf("%8s", t.Clock)), t.Content, Dim("· "+t.Relative))
		}
	}
	return b.String()
}
