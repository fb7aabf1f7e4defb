package search

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tally/internal/domain"
)

func index() []Entry {
	return []Entry{
		{Title: "Learning Go", Content: "go go go channels", Tags: []string{"golang"}, Date: "2026-01-10"},
		{Title: "Rust ownership", Content: "borrow checker notes", Tags: []string{"systems", "rust"}, Date: "2026-02-01"},
		{Title: "Weekend notes", Content: "some rust and some go", Tags: []string{"systems"}, Date: "2026-03-05"},
		{Title: "Untitled draft", Content: "nothing here", Tags: nil, Date: "someday"},
	}
}

func titles(results []Result) []string {
	out := make([]string, len(results))
	for i, r := range results {
		out[i] = r.Entry.Title
	}
	return out
}

func TestTokenize(t *testing.T) {
	assert.Equal(t, []string{"rust", "go"}, Tokenize("  Rust\tGO \n"))
	assert.Empty(t, Tokenize("   "))
	// decomposed E plus combining acute composes to a single rune
	assert.Equal(t, []string{"caf\u00e9"}, Tokenize("CAFE\u0301"))
}

func TestSearch_TagAndTerm(t *testing.T) {
	got := Search(index(), "rust", "systems")
	require.Len(t, got, 2)
	for _, r := range got {
		assert.True(t, r.Entry.HasTag("systems"))
	}
	assert.Equal(t, []string{"Rust ownership", "Weekend notes"}, titles(got))
}

func TestSearch_TitleOutranksContent(t *testing.T) {
	idx := []Entry{
		{Title: "Notes", Content: "rust"},
		{Title: "Rust", Content: "rust"},
	}
	got := Search(idx, "rust", "")
	require.Len(t, got, 2)
	assert.Equal(t, "Rust", got[0].Entry.Title)
	assert.GreaterOrEqual(t, got[0].Score, got[1].Score)
}

func TestSearch_Scoring(t *testing.T) {
	got := Search(index(), "go", "")
	require.Len(t, got, 2)
	// title (+10) + tag "golang" (+5) + three content hits
	assert.Equal(t, "Learning Go", got[0].Entry.Title)
	assert.Equal(t, 18, got[0].Score)
	assert.Equal(t, 1, got[1].Score)
}

func TestSearch_AllTermsRequired(t *testing.T) {
	assert.Equal(t, []string{"Weekend notes"}, titles(Search(index(), "rust go", "")))
	assert.Empty(t, Search(index(), "rust python", ""))
}

func TestSearch_StableTies(t *testing.T) {
	idx := []Entry{{Title: "a", Content: "x"}, {Title: "b", Content: "x"}, {Title: "c", Content: "x"}}
	assert.Equal(t, []string{"a", "b", "c"}, titles(Search(idx, "x", "")))
}

func TestSearch_NoQueryByDate(t *testing.T) {
	got := Search(index(), "", "")
	assert.Equal(t, []string{"Weekend notes", "Rust ownership", "Learning Go", "Untitled draft"}, titles(got))
	for _, r := range got {
		assert.Zero(t, r.Score)
	}
}

func TestSearch_DoesNotMutateIndex(t *testing.T) {
	idx := index()
	_ = Search(idx, "", "")
	assert.Equal(t, index(), idx)
}

func TestTags(t *testing.T) {
	assert.Equal(t, []string{"golang", "rust", "systems"}, Tags(index()))
}

func TestLayout(t *testing.T) {
	featured, archive := Layout(index())
	require.NotNil(t, featured)
	assert.Equal(t, "Weekend notes", featured.Title)
	require.Len(t, archive, 3)
	assert.Equal(t, "Untitled draft", archive[2].Title)

	featured, archive = Layout(nil)
	assert.Nil(t, featured)
	assert.Empty(t, archive)
}

func TestCountLabel(t *testing.T) {
	assert.Equal(t, "1 post found", CountLabel(1))
	assert.Equal(t, "0 posts found", CountLabel(0))
	assert.Equal(t, "4 posts found", CountLabel(4))
}

func TestEntryFromRecord(t *testing.T) {
	e := EntryFromRecord(domain.Record{
		"title": "T", "content": "C", "tags": []any{"a", "b"},
		"date": "2026-01-01", "url": "/t", "excerpt": "E",
	})
	assert.Equal(t, Entry{Title: "T", Content: "C", Tags: []string{"a", "b"}, Date: "2026-01-01", URL: "/t", Excerpt: "E"}, e)
}

func TestHighlight(t *testing.T) {
	h := HTMLHighlighter()

	t.Run("case insensitive", func(t *testing.T) {
		assert.Equal(t, `Learning <span class="highlight">Go</span>`, h.Highlight("Learning Go", []string{"go"}))
	})

	t.Run("regex characters escaped", func(t *testing.T) {
		assert.Equal(t, `<span class="highlight">c++</span> tips`, h.Highlight("c++ tips", []string{"c++"}))
	})

	t.Run("markup stripped", func(t *testing.T) {
		assert.Equal(t, `<span class="highlight">go</span>`, h.Highlight("<script>x</script><b>go</b>", []string{"go"}))
	})

	t.Run("marker text not rematched", func(t *testing.T) {
		got := h.Highlight("span of time", []string{"span", "class"})
		assert.Equal(t, `<span class="highlight">span</span> of time`, got)
	})

	t.Run("term never lands inside an entity", func(t *testing.T) {
		assert.Equal(t, "Tom &amp; Jerry", h.Highlight("Tom & Jerry", Tokenize("amp")))
	})

	t.Run("term with markup characters", func(t *testing.T) {
		assert.Equal(t, `<span class="highlight">R&amp;D</span> notes`, h.Highlight("R&D notes", Tokenize("r&d")))
		assert.Equal(t, `<span class="highlight">&lt;3</span> go`, h.Highlight("&lt;3 go", Tokenize("<3")))
	})

	t.Run("decomposed text", func(t *testing.T) {
		got := h.Highlight("Cafe\u0301 notes", Tokenize("caf\u00e9"))
		assert.Equal(t, `<span class="highlight">Caf`+"\u00e9"+`</span> notes`, got)
	})

	t.Run("no terms", func(t *testing.T) {
		assert.Equal(t, "plain", h.Highlight("plain", nil))
		assert.Equal(t, "a &amp; b", h.Highlight("a & b", nil))
	})

	t.Run("custom marker", func(t *testing.T) {
		plain := Highlighter{Mark: func(s string) string { return "[" + s + "]" }}
		assert.Equal(t, "[Rust] and [rust]", plain.Highlight("Rust and rust", []string{"rust"}))
	})
}

func TestTagHit(t *testing.T) {
	assert.True(t, TagHit("Systems", []string{"sys"}))
	assert.False(t, TagHit("golang", []string{"rust"}))
	assert.False(t, TagHit("golang", nil))
}
