package service

import (
	"context"
	"io"
	"time"

	"github.com/alexanderramin/tally/internal/contract"
)

// Every Get fetches its dataset once and builds the page as of now, in now's
// location.

type AnkiService interface {
	GetAnki(ctx context.Context, now time.Time) (*contract.AnkiDashboard, error)
}

type ReadingService interface {
	GetReading(ctx context.Context, now time.Time) (*contract.ReadingDashboard, error)
	GetReadingHistory(ctx context.Context, now time.Time) (*contract.ReadingHistory, error)
}

type ProgrammingService interface {
	GetProgramming(ctx context.Context, now time.Time) (*contract.ProgrammingDashboard, error)
}

type GoalsService interface {
	GetGoals(ctx context.Context, now time.Time) (*contract.GoalsDashboard, error)
}

type ForecastService interface {
	GetForecast(ctx context.Context, now time.Time) (*contract.ForecastDashboard, error)
	// ExportStats writes the aggregate stats document as indented JSON.
	ExportStats(ctx context.Context, w io.Writer, now time.Time) error
}

type ThoughtsService interface {
	GetThoughts(ctx context.Context, now time.Time) (*contract.ThoughtsFeed, error)
}

type SearchService interface {
	Query(ctx context.Context, q, tag string) (*contract.SearchResponse, error)
}

type OverviewService interface {
	GetOverview(ctx context.Context, now time.Time) (*contract.Overview, error)
}
