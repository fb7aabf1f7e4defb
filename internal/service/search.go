package service

import (
	"context"

	"github.com/alexanderramin/tally/internal/contract"
	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/search"
	"github.com/alexanderramin/tally/internal/source"
)

type searchService struct {
	src         source.Source
	highlighter search.Highlighter
	observer    UseCaseObserver
}

// NewSearchService answers queries over the post index. The highlighter
// decides how matches are marked: HTML spans for the site, terminal styling
// for the CLI.
func NewSearchService(src source.Source, highlighter search.Highlighter, observers ...UseCaseObserver) SearchService {
	return &searchService{src: src, highlighter: highlighter, observer: useCaseObserverOrNoop(observers)}
}

func (s *searchService) Query(ctx context.Context, q, tag string) (resp *contract.SearchResponse, err error) {
	uc := startUseCase(s.observer, "search")
	defer func() { uc.done(ctx, err) }()

	records, err := fetchDataset(ctx, s.src, "search")
	if err != nil {
		return nil, err
	}

	r := BuildSearch(records, q, tag, s.highlighter)
	uc.set("posts", len(records))
	uc.set("results", len(r.Results))
	return &r, nil
}

// BuildSearch runs one query against the index. With neither terms nor a
// tag it returns the featured and archive listing instead of results.
func BuildSearch(records []domain.Record, q, tag string, h search.Highlighter) contract.SearchResponse {
	index := search.EntriesFromRecords(records)
	resp := contract.SearchResponse{
		Query:   q,
		Tag:     tag,
		Terms:   search.Tokenize(q),
		Results: []contract.SearchHit{},
		Tags:    search.Tags(index),
	}
	if resp.Listing() {
		resp.Featured, resp.Archive = search.Layout(index)
		return resp
	}

	results := search.Search(index, q, tag)
	for _, res := range results {
		tags := make([]contract.TagView, len(res.Entry.Tags))
		for i, t := range res.Entry.Tags {
			tags[i] = contract.TagView{Name: t, Hit: search.TagHit(t, resp.Terms)}
		}
		resp.Results = append(resp.Results, contract.SearchHit{
			Title:   h.Highlight(res.Entry.Title, resp.Terms),
			URL:     res.Entry.URL,
			Date:    res.Entry.Date,
			Excerpt: h.Highlight(res.Entry.Excerpt, resp.Terms),
			Tags:    tags,
			Score:   res.Score,
		})
	}
	resp.CountLabel = search.CountLabel(len(results))
	return resp
}
