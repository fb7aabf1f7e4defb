// Package source fetches dataset records. Every source returns the same
// shape, a slice of flat records, whether the data came from the site over
// HTTP, a local JSON file, an Anki collection or a Fatebook CSV export.
package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// Source fetches a dataset once. Implementations never retry and never
// write back.
type Source interface {
	Fetch(ctx context.Context) ([]domain.Record, error)
	Name() string
}

// SQLitePrefix marks a location served by SQLiteSource.
const SQLitePrefix = "sqlite:"

// Options configures the sources built by Open.
type Options struct {
	Timeout    time.Duration
	HTTPClient *http.Client
	Observer   Observer
	// Forecaster filters CSV exports to one author.
	Forecaster string
	// Query overrides AnkiRevlogQuery for SQLite locations.
	Query string
}

// Open picks a source for location: http(s) URLs are fetched over HTTP,
// "sqlite:" paths are queried, ".csv" files are read as Fatebook exports and
// anything else is a local JSON file. The returned source reports to
// opts.Observer.
func Open(location string, opts Options) (Source, error) {
	location = strings.TrimSpace(location)
	if location == "" {
		return nil, fmt.Errorf("%w: empty location", ErrUnsupported)
	}

	var src Source
	lower := strings.ToLower(location)
	switch {
	case strings.HasPrefix(lower, "http://"), strings.HasPrefix(lower, "https://"):
		src = NewHTTPSource(location, opts.Timeout, opts.HTTPClient)
	case strings.HasPrefix(lower, SQLitePrefix):
		path := strings.TrimPrefix(location[len(SQLitePrefix):], "//")
		if path == "" {
			return nil, fmt.Errorf("%w: %q has no path", ErrUnsupported, location)
		}
		src = NewSQLiteSource(path, opts.Query)
	case strings.HasSuffix(lower, ".csv"):
		src = NewCSVSource(location, opts.Forecaster)
	case strings.Contains(lower, "://"):
		return nil, fmt.Errorf("%w: %q", ErrUnsupported, location)
	default:
		src = NewFileSource(location)
	}
	return Observed(src, opts.Observer), nil
}

// DecodeRecords reads a JSON array of objects. Numbers are kept as
// json.Number so integer fields survive unchanged. Null elements are skipped.
func DecodeRecords(r io.Reader) ([]domain.Record, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var raw []map[string]any
	if err := dec.Decode(&raw); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty payload", ErrDecode)
		}
		return nil, fmt.Errorf("%w: %v", ErrDecode, err)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: payload is not an array", ErrDecode)
	}

	records := make([]domain.Record, 0, len(raw))
	for _, m := range raw {
		if m == nil {
			continue
		}
		records = append(records, domain.Record(m))
	}
	return records, nil
}

// Static serves a fixed record slice. It backs tests and pre-built data.
type Static struct {
	Label   string
	Records []domain.Record
	Err     error
}

func (s Static) Fetch(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if s.Err != nil {
		return nil, s.Err
	}
	out := make([]domain.Record, len(s.Records))
	copy(out, s.Records)
	return out, nil
}

func (s Static) Name() string {
	if s.Label == "" {
		return "static"
	}
	return s.Label
}
