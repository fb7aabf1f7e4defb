package source

import (
	"context"
	"fmt"

	"github.com/alexanderramin/tally/internal/db"
	"github.com/alexanderramin/tally/internal/domain"
)

// AnkiRevlogQuery turns Anki's revlog table into review records shaped like
// the published Anki dataset: the epoch-millisecond id becomes a UTC
// timestamp, ease and type become names, and time becomes seconds.
const AnkiRevlogQuery = `
SELECT
	strftime('%Y-%m-%dT%H:%M:%SZ', id / 1000, 'unixepoch') AS date,
	CASE ease
		WHEN 1 THEN 'again'
		WHEN 2 THEN 'hard'
		WHEN 3 THEN 'good'
		WHEN 4 THEN 'easy'
		ELSE 'unknown'
	END AS button,
	CASE type
		WHEN 0 THEN 'learning'
		WHEN 1 THEN 'review'
		WHEN 2 THEN 'relearn'
		WHEN 3 THEN 'filtered'
		ELSE 'unknown'
	END AS type,
	time / 1000.0 AS time
FROM revlog
ORDER BY id`

// SQLiteSource runs one read-only query and maps each row to a record keyed
// by column name.
type SQLiteSource struct {
	path  string
	query string
	conn  db.DBTX
}

// NewSQLiteSource queries the database file at path. An empty query uses
// AnkiRevlogQuery.
func NewSQLiteSource(path, query string) *SQLiteSource {
	if query == "" {
		query = AnkiRevlogQuery
	}
	return &SQLiteSource{path: path, query: query}
}

// NewSQLiteSourceFromDB queries an already open handle, which the caller owns.
func NewSQLiteSourceFromDB(conn db.DBTX, query string) *SQLiteSource {
	if query == "" {
		query = AnkiRevlogQuery
	}
	return &SQLiteSource{path: "sqlite", query: query, conn: conn}
}

func (s *SQLiteSource) Name() string { return SQLitePrefix + s.path }

func (s *SQLiteSource) Fetch(ctx context.Context) ([]domain.Record, error) {
	conn := s.conn
	if conn == nil {
		database, err := db.OpenDB(s.path)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
		}
		defer database.Close()
		conn = database
	}
	return QueryRecords(ctx, conn, s.query)
}

// QueryRecords runs query and returns one record per row. Byte columns are
// read as strings; NULL columns are omitted.
func QueryRecords(ctx context.Context, conn db.DBTX, query string, args ...any) ([]domain.Record, error) {
	rows, err := conn.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: querying: %v", ErrUnavailable, err)
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return nil, fmt.Errorf("%w: reading columns: %v", ErrDecode, err)
	}

	var records []domain.Record
	for rows.Next() {
		values := make([]any, len(cols))
		ptrs := make([]any, len(cols))
		for i := range values {
			ptrs[i] = &values[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", ErrDecode, err)
		}

		r := make(domain.Record, len(cols))
		for i, col := range cols {
			switch v := values[i].(type) {
			case nil:
			case []byte:
				r[col] = string(v)
			default:
				r[col] = v
			}
		}
		records = append(records, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating rows: %v", ErrDecode, err)
	}
	return records, nil
}
