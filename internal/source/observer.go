package source

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/alexanderramin/tally/internal/domain"
)

// FetchEvent records one fetch. ID correlates the log line with the
// X-Request-ID header sent by HTTP sources.
type FetchEvent struct {
	ID       string
	Source   string
	Records  int
	Duration time.Duration
	Err      error
}

// Observer receives fetch events for logging.
type Observer interface {
	OnFetch(ctx context.Context, event FetchEvent)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnFetch(context.Context, FetchEvent) {}

// LogObserver writes fetch events through slog.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs to logger, or the default
// logger when nil.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnFetch(ctx context.Context, event FetchEvent) {
	attrs := []any{
		"fetch_id", event.ID,
		"source", event.Source,
		"records", event.Records,
		"duration_ms", event.Duration.Milliseconds(),
	}
	if event.Err != nil {
		attrs = append(attrs, "error", event.Err.Error())
		o.logger.ErrorContext(ctx, "record_fetch", attrs...)
		return
	}
	o.logger.DebugContext(ctx, "record_fetch", attrs...)
}

type fetchIDKey struct{}

// WithFetchID attaches a fetch correlation id to ctx.
func WithFetchID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, fetchIDKey{}, id)
}

// FetchID returns the correlation id on ctx, or "".
func FetchID(ctx context.Context) string {
	id, _ := ctx.Value(fetchIDKey{}).(string)
	return id
}

type observed struct {
	Source
	observer Observer
}

// Observed wraps src so every Fetch gets a fresh id and is reported to obs.
// A nil observer returns src unchanged.
func Observed(src Source, obs Observer) Source {
	if obs == nil {
		return src
	}
	return &observed{Source: src, observer: obs}
}

func (o *observed) Fetch(ctx context.Context) ([]domain.Record, error) {
	id := uuid.New().String()
	ctx = WithFetchID(ctx, id)

	start := time.Now()
	records, err := o.Source.Fetch(ctx)
	o.observer.OnFetch(ctx, FetchEvent{
		ID:       id,
		Source:   o.Source.Name(),
		Records:  len(records),
		Duration: time.Since(start),
		Err:      err,
	})
	return records, err
}
