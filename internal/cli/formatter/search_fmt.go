package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/search"
)

// TerminalHighlighter marks search hits with StyleMatch. Terminal output is
// not HTML, so nothing is sanitized.
func TerminalHighlighter() search.Highlighter {
	return search.Highlighter{Mark: func(s string) string { return StyleMatch.Render(s) }}
}

// FormatSearch renders either the ranked results or, for an empty query, the
// featured post and archive.
func FormatSearch(resp *contract.SearchResponse) string {
	var b strings.Builder
	if resp.Listing() {
		if resp.Featured != nil {
			body := Bold(resp.Featured.Title) + "\n" + Dim(resp.Featured.Date+"  "+resp.Featured.URL)
			if resp.Featured.Excerpt != "" {
				body += "\n\n" + resp.Featured.Excerpt
			}
			b.WriteString(RenderBox("Latest", body))
			b.WriteString("\n")
		}
		if len(resp.Archive) > 0 {
			rows := make([][]string, len(resp.Archive))
			for i, e := range resp.Archive {
				rows[i] = []string{e.Date, e.Title, strings.Join(e.Tags, ", ")}
			}
			b.WriteString("\n")
			b.WriteString(Header("Archive"))
			b.WriteString("\n")
			b.WriteString(RenderTable([]string{"DATE", "TITLE", "TAGS"}, rows))
		}
		if resp.Featured == nil && len(resp.Archive) == 0 {
			b.WriteString(Dim("No posts."))
			b.WriteString("\n")
		}
		return b.String()
	}

	b.WriteString(Bold(resp.CountLabel))
	b.WriteString("\n")
	for _, hit := range resp.Results {
		b.WriteString("\n")
		fmt.Fprintf(&b, "%s  %s\n", hit.Title, Dim(hit.Date))
		b.WriteString(Dim(hit.URL))
		b.WriteString("\n")
		if hit.Excerpt != "" {
			b.WriteString(hit.Excerpt)
			b.WriteString("\n")
		}
		if len(hit.Tags) > 0 {
			b.WriteString(formatTags(hit.Tags))
			b.WriteString("\n")
		}
	}
	return b.String()
}

func formatTags(tags []contract.TagView) string {
	out := make([]string, len(tags))
	for i, t := range tags {
		if t.Hit {
			out[i] = StyleMatch.Render("#" + t.Name)
		} else {
			out[i] = Dim("#" + t.Name)
		}
	}
	return strings.Join(out, " ")
}
