package service

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alexanderramin/tally/internal/aggregate"
	"github.com/alexanderramin/tally/internal/domain"
)

func TestTopKeyOr(t *testing.T) {
	assert.Equal(t, "b", topKeyOr(aggregate.Aggregate{"a": 1, "b": 2}, noValue))
	assert.Equal(t, noValue, topKeyOr(aggregate.Aggregate{}, noValue))
}

func TestNumberKeys(t *testing.T) {
	assert.Equal(t, []string{"0", "1", "2"}, numberKeys(0, 2))
	assert.Len(t, numberKeys(0, 23), 24)
}

func TestTitleLabel(t *testing.T) {
	assert.Equal(t, "Again", titleLabel("again"))
	assert.Equal(t, "Pending", titleLabel("pending"))
}

func TestLatest(t *testing.T) {
	records := []domain.Record{
		{domain.FieldDate: "2026-02-01"},
		{domain.FieldDate: "garbage"},
		{domain.FieldDate: "2026-03-05"},
		{},
	}
	last, ok := latest(records, domain.FieldDate, time.UTC)
	require.True(t, ok)
	assert.Equal(t, "2026-03-05", last.Format(domain.DateLayout))

	_, ok = latest([]domain.Record{{}}, domain.FieldDate, time.UTC)
	assert.False(t, ok)
}

func TestLogUseCaseObserver(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelInfo}))
	obs := NewLogUseCaseObserver(logger)

	uc := startUseCase(obs, "anki")
	uc.set("reviews", 3)
	uc.done(context.Background(), nil)
	assert.Empty(t, buf.String(), "successful builds log at debug")

	uc = startUseCase(obs, "anki")
	uc.done(context.Background(), errors.New("boom"))
	out := buf.String()
	assert.Contains(t, out, "msg=service_use_case")
	assert.Contains(t, out, "use_case=anki")
	assert.Contains(t, out, "success=false")
	assert.Contains(t, out, "error=boom")
}

func TestNewLogUseCaseObserver_NilLogger(t *testing.T) {
	assert.Equal(t, NoopUseCaseObserver{}, NewLogUseCaseObserver(nil))
}
