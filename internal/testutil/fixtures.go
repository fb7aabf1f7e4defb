package testutil

import (
	"strconv"

	"github.com/alexanderramin/tally/internal/domain"
)

// RecordOption mutates a fixture record.
type RecordOption func(domain.Record)

// With sets an arbitrary field.
func With(field string, value any) RecordOption {
	return func(r domain.Record) {
		r[field] = value
	}
}

// Without removes a field.
func Without(field string) RecordOption {
	return func(r domain.Record) {
		delete(r, field)
	}
}

func apply(r domain.Record, opts []RecordOption) domain.Record {
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Review options

func WithReviewType(t domain.ReviewType) RecordOption {
	return With(domain.FieldType, string(t))
}

func WithSeconds(s float64) RecordOption {
	return With(domain.FieldReviewTime, s)
}

// NewTestReview builds an Anki review: a review-type answer taking ten seconds.
func NewTestReview(date string, button domain.Button, opts ...RecordOption) domain.Record {
	return apply(domain.Record{
		domain.FieldDate:       date,
		domain.FieldButton:     string(button),
		domain.FieldType:       string(domain.ReviewReview),
		domain.FieldReviewTime: 10.0,
	}, opts)
}

// Book options

func WithFormat(f string) RecordOption {
	return With(domain.FieldFormat, f)
}

func WithSubcategory(s string) RecordOption {
	return With(domain.FieldSubcategory, s)
}

func WithBookType(t string) RecordOption {
	return With(domain.FieldType, t)
}

// NewTestBook builds a reading-log entry. Ratings are strings, as published.
func NewTestBook(title, date, category string, rating int, opts ...RecordOption) domain.Record {
	return apply(domain.Record{
		domain.FieldTitle:    title,
		domain.FieldDate:     date,
		domain.FieldCategory: category,
		domain.FieldRating:   strconv.Itoa(rating),
		domain.FieldFormat:   "Kindle",
		domain.FieldType:     domain.BookTypeFiction,
	}, opts)
}

// NewTestCoding builds a programming time-tracking row.
func NewTestCoding(date string, kind domain.EntryType, name string, seconds float64, opts ...RecordOption) domain.Record {
	r := domain.Record{
		domain.FieldType:         string(kind),
		domain.FieldTotalSeconds: seconds,
	}
	if date != "" {
		r[domain.FieldDate] = date
	}
	if name != "" {
		r[domain.FieldName] = name
	}
	return apply(r, opts)
}

// Goal options

func WithCompleted(date string) RecordOption {
	return With(domain.FieldDateCompleted, date)
}

func WithProgress(current, target float64, unit string) RecordOption {
	return func(r domain.Record) {
		r[domain.FieldCurrent] = current
		r[domain.FieldTarget] = target
		r[domain.FieldUnit] = unit
	}
}

// NewTestGoal builds a goal in the given status.
func NewTestGoal(goal, category string, status domain.GoalStatus, opts ...RecordOption) domain.Record {
	return apply(domain.Record{
		domain.FieldGoal:     goal,
		domain.FieldCategory: category,
		domain.FieldStatus:   string(status),
		domain.FieldUnit:     domain.GoalUnitBinary,
	}, opts)
}

// Forecast options

func WithResolved(resolution domain.Resolution, date string) RecordOption {
	return func(r domain.Record) {
		r[domain.FieldResolution] = string(resolution)
		r[domain.FieldResolvedDate] = date
	}
}

func WithTags(tags ...string) RecordOption {
	return With(domain.FieldTags, tags)
}

// NewTestForecast builds an unresolved prediction made on date.
func NewTestForecast(question string, probability float64, date string, opts ...RecordOption) domain.Record {
	return apply(domain.Record{
		domain.FieldQuestion:     question,
		domain.FieldProbability:  probability,
		domain.FieldForecastDate: date,
		domain.FieldResolution:   "",
	}, opts)
}

// NewTestThought builds a short post.
func NewTestThought(date, content string, opts ...RecordOption) domain.Record {
	return apply(domain.Record{
		domain.FieldDate:    date,
		domain.FieldContent: content,
	}, opts)
}

// NewTestPost builds a search index entry.
func NewTestPost(title, date, content string, tags ...string) domain.Record {
	return domain.Record{
		domain.FieldTitle:   title,
		domain.FieldDate:    date,
		domain.FieldContent: content,
		domain.FieldTags:    tags,
		domain.FieldURL:     "/posts/" + date,
		domain.FieldExcerpt: content,
	}
}
