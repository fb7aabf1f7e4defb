// Package search filters and ranks the blog post index. Queries are split
// into terms that must all appear somewhere in a post; matches are scored by
// where the terms appear.
package search

import (
	"sort"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"

	"github.com/alexanderramin/tally/internal/domain"
)

// Field weights for scoring.
const (
	TitleWeight = 10
	TagWeight   = 5
)

// Entry is one post in the search index. Entries are read-only; scores live
// on Result.
type Entry struct {
	Title   string   `json:"title"`
	Content string   `json:"content"`
	Tags    []string `json:"tags"`
	Date    string   `json:"date"`
	URL     string   `json:"url"`
	Excerpt string   `json:"excerpt"`
}

// Published parses Date in the local zone.
func (e Entry) Published() (time.Time, bool) {
	return domain.ParseTime(e.Date, time.Local)
}

// HasTag reports an exact tag match.
func (e Entry) HasTag(tag string) bool {
	for _, t := range e.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

// EntryFromRecord reads an index entry from a decoded record.
func EntryFromRecord(r domain.Record) Entry {
	return Entry{
		Title:   r.String(domain.FieldTitle),
		Content: r.String(domain.FieldContent),
		Tags:    r.Strings(domain.FieldTags),
		Date:    r.String(domain.FieldDate),
		URL:     r.String(domain.FieldURL),
		Excerpt: r.String(domain.FieldExcerpt),
	}
}

// EntriesFromRecords converts a whole index.
func EntriesFromRecords(records []domain.Record) []Entry {
	out := make([]Entry, len(records))
	for i, r := range records {
		out[i] = EntryFromRecord(r)
	}
	return out
}

// Result is a matching entry with its relevance score.
type Result struct {
	Entry Entry `json:"entry"`
	Score int   `json:"score"`
}

// fold normalizes text for matching: NFC, then lowercase.
func fold(s string) string {
	return strings.ToLower(nfc(s))
}

func nfc(s string) string {
	out, _, err := transform.String(norm.NFC, s)
	if err != nil {
		return s
	}
	return out
}

// Tokenize splits a query into lowercase NFC terms on whitespace.
func Tokenize(q string) []string {
	return strings.Fields(fold(q))
}

type folded struct {
	title   string
	content string
	tags    []string
}

func foldEntry(e Entry) folded {
	f := folded{title: fold(e.Title), content: fold(e.Content)}
	for _, t := range e.Tags {
		f.tags = append(f.tags, fold(t))
	}
	return f
}

func (f folded) tagContains(term string) bool {
	for _, t := range f.tags {
		if strings.Contains(t, term) {
			return true
		}
	}
	return false
}

func (f folded) matchesAll(terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(f.title, term) && !strings.Contains(f.content, term) && !f.tagContains(term) {
			return false
		}
	}
	return true
}

func (f folded) score(terms []string) int {
	score := 0
	for _, term := range terms {
		if strings.Contains(f.title, term) {
			score += TitleWeight
		}
		if f.tagContains(term) {
			score += TagWeight
		}
		score += strings.Count(f.content, term)
	}
	return score
}

// Search returns the entries of index that carry tag (when set) and contain
// every term of q in their title, content or tags. With terms, results are
// ordered by descending score; without, by descending date. Both sorts are
// stable over index order. The index is not modified.
func Search(index []Entry, q, tag string) []Result {
	terms := Tokenize(q)
	results := make([]Result, 0, len(index))
	for _, e := range index {
		if tag != "" && !e.HasTag(tag) {
			continue
		}
		if len(terms) == 0 {
			results = append(results, Result{Entry: e})
			continue
		}
		f := foldEntry(e)
		if !f.matchesAll(terms) {
			continue
		}
		results = append(results, Result{Entry: e, Score: f.score(terms)})
	}

	if len(terms) > 0 {
		sort.SliceStable(results, func(i, j int) bool {
			return results[i].Score > results[j].Score
		})
	} else {
		sort.SliceStable(results, func(i, j int) bool {
			return newer(results[i].Entry, results[j].Entry)
		})
	}
	return results
}

// newer orders entries newest first; undated entries sort last.
func newer(a, b Entry) bool {
	ta, okA := a.Published()
	tb, okB := b.Published()
	switch {
	case okA && okB:
		return ta.After(tb)
	default:
		return okA && !okB
	}
}

// Tags returns every distinct tag in the index, sorted.
func Tags(index []Entry) []string {
	seen := make(map[string]struct{})
	for _, e := range index {
		for _, t := range e.Tags {
			seen[t] = struct{}{}
		}
	}
	out := make([]string, 0, len(seen))
	for t := range seen {
		out = append(out, t)
	}
	sort.Strings(out)
	return out
}

// Layout splits the unfiltered index into the newest post and the archive
// of everything else, newest first. featured is nil for an empty index.
func Layout(index []Entry) (featured *Entry, archive []Entry) {
	sorted := make([]Entry, len(index))
	copy(sorted, index)
	sort.SliceStable(sorted, func(i, j int) bool {
		return newer(sorted[i], sorted[j])
	})
	if len(sorted) == 0 {
		return nil, nil
	}
	head := sorted[0]
	return &head, sorted[1:]
}

// CountLabel describes a result count: "1 post found", "3 posts found".
func CountLabel(n int) string {
	if n == 1 {
		return "1 post found"
	}
	return strconv.Itoa(n) + " posts found"
}
