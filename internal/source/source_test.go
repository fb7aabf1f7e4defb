package source

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tally/internal/domain"
	"github.com/alexanderramin/tally/internal/testutil"
)

func TestDecodeRecords(t *testing.T) {
	records, err := DecodeRecords(strings.NewReader(`[{"date":"2026-01-01","totalSeconds":3600},null,{"rating":"7"}]`))
	require.NoError(t, err)
	require.Len(t, records, 2)
	assert.Equal(t, json.Number("3600"), records[0]["totalSeconds"])
	assert.Equal(t, 3600.0, records[0].Float("totalSeconds"))
	assert.Equal(t, 7, records[1].Int("rating"))
}

func TestDecodeRecords_Malformed(t *testing.T) {
	for name, body := range map[string]string{
		"object":    `{"a":1}`,
		"truncated": `[{"a":1}`,
		"scalars":   `[1,2]`,
		"empty":     ``,
		"null":      `null`,
	} {
		t.Run(name, func(t *testing.T) {
			_, err := DecodeRecords(strings.NewReader(body))
			assert.ErrorIs(t, err, ErrDecode)
		})
	}
}

func TestHTTPSource_Fetch_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/anki-2026-data.json", r.URL.Path)
		assert.Equal(t, http.MethodGet, r.Method)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"date":"2026-01-01","button":"good"}]`))
	}))
	defer srv.Close()

	src := NewHTTPSource(srv.URL+"/anki-2026-data.json", time.Second, nil)
	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "good", records[0].String(domain.FieldButton))
}

func TestHTTPSource_Fetch_BadStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrBadStatus)
	assert.Contains(t, err.Error(), "404")
}

func TestHTTPSource_Fetch_Decode(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html>not json</html>`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, time.Second, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrDecode)
}

func TestHTTPSource_Fetch_Timeout(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-time.After(500 * time.Millisecond):
		case <-r.Context().Done():
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	_, err := NewHTTPSource(srv.URL, 50*time.Millisecond, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrTimeout)
}

func TestHTTPSource_Fetch_Unavailable(t *testing.T) {
	_, err := NewHTTPSource("http://127.0.0.1:1/data.json", time.Second, nil).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "thoughts.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"date":"2026-01-01 09:00","content":"hi"}]`), 0o644))

	records, err := NewFileSource(path).Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "hi", records[0].String(domain.FieldContent))

	_, err = NewFileSource(filepath.Join(dir, "missing.json")).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)

	bad := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(bad, []byte(`{`), 0o644))
	_, err = NewFileSource(bad).Fetch(context.Background())
	assert.ErrorIs(t, err, ErrDecode)
}

func TestSQLiteSource_AnkiRevlog(t *testing.T) {
	at := time.Date(2026, 1, 5, 14, 30, 0, 0, time.UTC)
	database := testutil.NewRevlogDB(t,
		testutil.Revlog{At: at, Ease: 3, Type: 1, TimeMs: 4500},
		testutil.Revlog{At: at.Add(time.Minute), Ease: 1, Type: 0, TimeMs: 12000},
		testutil.Revlog{At: at.Add(2 * time.Minute), Ease: 4, Type: 2, TimeMs: 800},
	)

	records, err := NewSQLiteSourceFromDB(database, "").Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 3)

	assert.Equal(t, "2026-01-05T14:30:00Z", records[0].String(domain.FieldDate))
	assert.Equal(t, "good", records[0].String(domain.FieldButton))
	assert.Equal(t, "review", records[0].String(domain.FieldType))
	assert.InDelta(t, 4.5, records[0].Float(domain.FieldReviewTime), 1e-9)

	assert.Equal(t, "again", records[1].String(domain.FieldButton))
	assert.Equal(t, "learning", records[1].String(domain.FieldType))
	assert.Equal(t, "easy", records[2].String(domain.FieldButton))
	assert.Equal(t, "relearn", records[2].String(domain.FieldType))

	ts, ok := records[0].Time(domain.FieldDate, time.UTC)
	require.True(t, ok)
	assert.True(t, at.Equal(ts))
}

func TestSQLiteSource_MissingFile(t *testing.T) {
	_, err := NewSQLiteSource(filepath.Join(t.TempDir(), "collection.anki2"), "").Fetch(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestQueryRecords_NullsOmitted(t *testing.T) {
	database := testutil.NewTestDB(t)
	records, err := QueryRecords(context.Background(), database, "SELECT 'x' AS name, NULL AS missing, 2 AS n")
	require.NoError(t, err)
	require.Len(t, records, 1)
	assert.Equal(t, "x", records[0].String("name"))
	assert.False(t, records[0].Has("missing"))
	assert.Equal(t, 2, records[0].Int("n"))
}

const fatebookCSV = `Question title,Forecast created by,Forecast (scale = 0-1),Forecast created at,Resolution,Resolved at,Your Brier score for this question,Question tags
Will it rain?,Ash,0.7,2026-01-05 10:00:00,yes,2026-01-06T08:00:00Z,0.09,"Weather, daily"
Other person,bob,0.4,2026-01-05,NO,2026-01-06,,
No probability,ash,,2026-01-05,,,,
Ship v2?,ash,0.25,01/07/2026,,,,work
`

func TestDecodeFatebookCSV(t *testing.T) {
	records, err := DecodeFatebookCSV(strings.NewReader(fatebookCSV), "ash")
	require.NoError(t, err)
	require.Len(t, records, 2)

	rain := records[0]
	assert.Equal(t, "Will it rain?", rain.String(domain.FieldQuestion))
	assert.Equal(t, 0.7, rain.Float(domain.FieldProbability))
	assert.Equal(t, "YES", rain.String(domain.FieldResolution))
	assert.Equal(t, "2026-01-05", rain.String(domain.FieldForecastDate))
	assert.Equal(t, "2026-01-06", rain.String(domain.FieldResolvedDate))
	assert.Equal(t, []string{"Weather", "daily"}, rain.Strings(domain.FieldTags))

	ship := records[1]
	assert.Equal(t, "2026-01-07", ship.String(domain.FieldForecastDate))
	assert.False(t, ship.Has(domain.FieldResolvedDate))
	assert.Equal(t, "", ship.String(domain.FieldResolution))
}

func TestDecodeFatebookCSV_MissingColumn(t *testing.T) {
	_, err := DecodeFatebookCSV(strings.NewReader("a,b\n1,2\n"), "ash")
	assert.ErrorIs(t, err, ErrDecode)

	_, err = DecodeFatebookCSV(strings.NewReader(""), "ash")
	assert.ErrorIs(t, err, ErrDecode)
}

func TestOpen(t *testing.T) {
	tests := []struct {
		location string
		want     any
	}{
		{"https://example.com/search.json", &HTTPSource{}},
		{"sqlite:/tmp/collection.anki2", &SQLiteSource{}},
		{"sqlite:///tmp/collection.anki2", &SQLiteSource{}},
		{"/data/fatebook.CSV", &CSVSource{}},
		{"fatebook-forecasts.csv", &CSVSource{}},
		{"./thoughts.json", &FileSource{}},
	}
	for _, tt := range tests {
		t.Run(tt.location, func(t *testing.T) {
			src, err := Open(tt.location, Options{})
			require.NoError(t, err)
			assert.IsType(t, tt.want, src)
		})
	}

	src, err := Open("sqlite:///tmp/collection.anki2", Options{})
	require.NoError(t, err)
	assert.Equal(t, "sqlite:/tmp/collection.anki2", src.Name())

	for _, bad := range []string{"", "ftp://host/x.json", "sqlite:"} {
		_, err := Open(bad, Options{})
		assert.ErrorIs(t, err, ErrUnsupported, bad)
	}
}

type recordingObserver struct {
	mu     sync.Mutex
	events []FetchEvent
}

func (o *recordingObserver) OnFetch(_ context.Context, e FetchEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func TestObserved_ReportsFetch(t *testing.T) {
	var gotHeader string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("X-Request-ID")
		w.Write([]byte(`[{},{}]`))
	}))
	defer srv.Close()

	obs := &recordingObserver{}
	src, err := Open(srv.URL, Options{Observer: obs, Timeout: time.Second})
	require.NoError(t, err)

	records, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, records, 2)

	require.Len(t, obs.events, 1)
	e := obs.events[0]
	assert.Equal(t, srv.URL, e.Source)
	assert.Equal(t, 2, e.Records)
	assert.NoError(t, e.Err)
	assert.Len(t, e.ID, 36)
	assert.Equal(t, e.ID, gotHeader)
}

func TestObserved_ReportsError(t *testing.T) {
	obs := &recordingObserver{}
	boom := errors.New("boom")
	src := Observed(Static{Label: "fixture", Err: boom}, obs)

	_, err := src.Fetch(context.Background())
	assert.ErrorIs(t, err, boom)
	require.Len(t, obs.events, 1)
	assert.Equal(t, "fixture", obs.events[0].Source)
	assert.ErrorIs(t, obs.events[0].Err, boom)
}

func TestStatic_CopiesRecords(t *testing.T) {
	src := Static{Records: []domain.Record{{"a": 1}}}
	got, err := src.Fetch(context.Background())
	require.NoError(t, err)
	got[0] = domain.Record{"b": 2}
	assert.Equal(t, domain.Record{"a": 1}, src.Records[0])
	assert.Equal(t, "static", src.Name())
}
