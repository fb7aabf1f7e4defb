package testutil

import (
	"database/sql"
	"testing"
	"time"

	"github.com/alexanderramin/tally/internal/db"
)

// revlogSchema mirrors the columns of Anki's revlog table.
const revlogSchema = `
CREATE TABLE revlog (
	id      INTEGER PRIMARY KEY,
	cid     INTEGER NOT NULL,
	usn     INTEGER NOT NULL,
	ease    INTEGER NOT NULL,
	ivl     INTEGER NOT NULL,
	lastIvl INTEGER NOT NULL,
	factor  INTEGER NOT NULL,
	time    INTEGER NOT NULL,
	type    INTEGER NOT NULL
)`

// Revlog is one row of the Anki review log.
type Revlog struct {
	At     time.Time
	Ease   int
	Type   int
	TimeMs int
}

// NewTestDB creates an in-memory SQLite database.
// The database is closed when the test completes.
func NewTestDB(t *testing.T) *sql.DB {
	t.Helper()
	database, err := db.OpenDB(db.MemoryPath)
	if err != nil {
		t.Fatalf("failed to create test database: %v", err)
	}
	t.Cleanup(func() {
		database.Close()
	})
	return database
}

// NewRevlogDB creates an in-memory Anki collection holding rows.
func NewRevlogDB(t *testing.T, rows ...Revlog) *sql.DB {
	t.Helper()
	database := NewTestDB(t)
	if _, err := database.Exec(revlogSchema); err != nil {
		t.Fatalf("creating revlog: %v", err)
	}
	for i, r := range rows {
		_, err := database.Exec(
			`INSERT INTO revlog (id, cid, usn, ease, ivl, lastIvl, factor, time, type)
			 VALUES (?, ?, 0, ?, 1, 0, 2500, ?, ?)`,
			r.At.UnixMilli(), i+1, r.Ease, r.TimeMs, r.Type,
		)
		if err != nil {
			t.Fatalf("inserting revlog row %d: %v", i, err)
		}
	}
	return database
}
