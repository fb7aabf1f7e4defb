package search

import (
	"html"
	"regexp"
	"sort"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// Highlighter wraps every case-insensitive occurrence of a term with Mark.
// When Sanitize is set markup is stripped from the text and the output is
// HTML-escaped, with matching done on the unescaped text.
type Highlighter struct {
	Mark     func(string) string
	Sanitize bool

	policy *bluemonday.Policy
}

// HTMLHighlighter wraps matches in highlight spans for web output.
func HTMLHighlighter() Highlighter {
	return Highlighter{
		Mark:     func(s string) string { return `<span class="highlight">` + s + `</span>` },
		Sanitize: true,
		policy:   bluemonday.StrictPolicy(),
	}
}

// Highlight marks every occurrence of terms in text. All terms are matched in
// one pass, longest first, so a term never matches inside an earlier marker.
// Text is NFC-normalized first so it matches the same way Search does.
func (h Highlighter) Highlight(text string, terms []string) string {
	text = nfc(text)
	escape := func(s string) string { return s }
	if h.Sanitize {
		text = h.plainText(text)
		escape = html.EscapeString
	}

	re := termPattern(terms)
	if re == nil || h.Mark == nil {
		return escape(text)
	}

	var b strings.Builder
	last := 0
	for _, loc := range re.FindAllStringIndex(text, -1) {
		b.WriteString(escape(text[last:loc[0]]))
		b.WriteString(h.Mark(escape(text[loc[0]:loc[1]])))
		last = loc[1]
	}
	b.WriteString(escape(text[last:]))
	return b.String()
}

// plainText strips markup and undoes the policy's escaping.
func (h Highlighter) plainText(text string) string {
	policy := h.policy
	if policy == nil {
		policy = bluemonday.StrictPolicy()
	}
	return html.UnescapeString(policy.Sanitize(text))
}

// termPattern builds a case-insensitive alternation of the quoted terms.
func termPattern(terms []string) *regexp.Regexp {
	var quoted []string
	seen := make(map[string]bool)
	for _, t := range terms {
		t = nfc(t)
		if t == "" || seen[t] {
			continue
		}
		seen[t] = true
		quoted = append(quoted, regexp.QuoteMeta(t))
	}
	if len(quoted) == 0 {
		return nil
	}
	sort.SliceStable(quoted, func(i, j int) bool { return len(quoted[i]) > len(quoted[j]) })
	return regexp.MustCompile("(?i)(?:" + strings.Join(quoted, "|") + ")")
}

// TagHit reports whether any term occurs in tag, case-insensitively.
func TagHit(tag string, terms []string) bool {
	folded := fold(tag)
	for _, t := range terms {
		if t != "" && strings.Contains(folded, t) {
			return true
		}
	}
	return false
}
