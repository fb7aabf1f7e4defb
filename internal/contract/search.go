package contract

import "github.com/alexanderramin/tally/internal/search"

// TagView is a result tag, flagged when a query term matched it.
type TagView struct {
	Name string `json:"name"`
	Hit  bool   `json:"hit"`
}

// SearchHit is a ranked result with highlighted title and excerpt.
type SearchHit struct {
	Title   string    `json:"title"`
	URL     string    `json:"url"`
	Date    string    `json:"date"`
	Excerpt string    `json:"excerpt"`
	Tags    []TagView `json:"tags"`
	Score   int       `json:"score"`
}

// SearchResponse answers one query. When neither terms nor a tag were given,
// Results is empty and Featured/Archive hold the default listing.
type SearchResponse struct {
	Query      string         `json:"query"`
	Tag        string         `json:"tag,omitempty"`
	Terms      []string       `json:"terms"`
	CountLabel string         `json:"countLabel,omitempty"`
	Results    []SearchHit    `json:"results"`
	Featured   *search.Entry  `json:"featured,omitempty"`
	Archive    []search.Entry `json:"archive,omitempty"`
	Tags       []string       `json:"tags"`
}

// Listing reports whether the response is the default listing.
func (r SearchResponse) Listing() bool {
	return len(r.Terms) == 0 && r.Tag == ""
}
