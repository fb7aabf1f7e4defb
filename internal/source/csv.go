package source

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// Fatebook export column headers.
const (
	ColQuestion     = "Question title"
	ColForecastBy   = "Forecast created by"
	ColProbability  = "Forecast (scale = 0-1)"
	ColForecastDate = "Forecast created at"
	ColResolution   = "Resolution"
	ColResolvedAt   = "Resolved at"
	ColTags         = "Question tags"
)

// DefaultForecaster is the export author kept when none is configured.
const DefaultForecaster = "ash"

// CSVSource reads a Fatebook forecast export and keeps one author's rows.
type CSVSource struct {
	path       string
	forecaster string
}

func NewCSVSource(path, forecaster string) *CSVSource {
	if forecaster == "" {
		forecaster = DefaultForecaster
	}
	return &CSVSource{path: path, forecaster: forecaster}
}

func (s *CSVSource) Name() string { return s.path }

func (s *CSVSource) Fetch(ctx context.Context) ([]domain.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer f.Close()
	return DecodeFatebookCSV(f, s.forecaster)
}

// DecodeFatebookCSV maps export rows by forecaster (case-insensitive) to
// prediction records. Rows without a parseable probability are skipped.
// Dates keep only their calendar day.
func DecodeFatebookCSV(r io.Reader, forecaster string) ([]domain.Record, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: empty export", ErrDecode)
		}
		return nil, fmt.Errorf("%w: reading header: %v", ErrDecode, err)
	}
	idx := make(map[string]int, len(header))
	for i, h := range header {
		idx[strings.TrimSpace(strings.TrimPrefix(h, "\ufeff"))] = i
	}
	if _, ok := idx[ColProbability]; !ok {
		return nil, fmt.Errorf("%w: missing column %q", ErrDecode, ColProbability)
	}

	get := func(row []string, col string) string {
		i, ok := idx[col]
		if !ok || i >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[i])
	}

	var records []domain.Record
	for {
		row, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}

		if !strings.EqualFold(get(row, ColForecastBy), forecaster) {
			continue
		}
		p, err := strconv.ParseFloat(get(row, ColProbability), 64)
		if err != nil {
			continue
		}

		rec := domain.Record{
			domain.FieldQuestion:    get(row, ColQuestion),
			domain.FieldProbability: p,
			domain.FieldResolution:  strings.ToUpper(get(row, ColResolution)),
			domain.FieldTags:        splitTags(get(row, ColTags)),
		}
		if d, ok := exportDate(get(row, ColForecastDate)); ok {
			rec[domain.FieldForecastDate] = d
		}
		if d, ok := exportDate(get(row, ColResolvedAt)); ok {
			rec[domain.FieldResolvedDate] = d
		}
		records = append(records, rec)
	}
	return records, nil
}

// exportDate keeps the day of an export timestamp as YYYY-MM-DD. Both ISO
// and US month-first dates appear in exports.
func exportDate(s string) (string, bool) {
	if s == "" {
		return "", false
	}
	day, _, _ := strings.Cut(s, " ")
	day, _, _ = strings.Cut(day, "T")
	for _, layout := range []string{domain.DateLayout, "01/02/2006", "1/2/2006"} {
		if t, err := time.Parse(layout, day); err == nil {
			return t.Format(domain.DateLayout), true
		}
	}
	return "", false
}

func splitTags(s string) []string {
	var out []string
	for _, t := range strings.Split(s, ",") {
		if t = strings.TrimSpace(t); t != "" {
			out = append(out, t)
		}
	}
	return out
}
