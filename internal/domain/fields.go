package domain

// Field names shared by the published datasets.
const (
	FieldDate     = "date"
	FieldType     = "type"
	FieldName     = "name"
	FieldCategory = "category"
	FieldStatus   = "status"
	FieldTitle    = "title"
	FieldContent  = "content"
	FieldTags     = "tags"
)

// Anki review fields.
const (
	FieldButton = "button"
	// FieldReviewTime is the time spent on one review, in seconds.
	FieldReviewTime = "time"
)

// Reading log fields.
const (
	FieldRating      = "rating"
	FieldFormat      = "format"
	FieldSubcategory = "subcategory"
	FieldYear        = "year"
	FieldReview      = "review"
)

// Programming time-tracking fields.
const (
	FieldTotalSeconds = "totalSeconds"
)

// Goal fields.
const (
	FieldGoal          = "goal"
	FieldDateCompleted = "dateCompleted"
	FieldCurrent       = "current"
	FieldTarget        = "target"
	FieldUnit          = "unit"
)

// Forecast fields, as produced by the Fatebook CSV source.
const (
	FieldProbability  = "probability"
	FieldResolution   = "resolution"
	FieldForecastDate = "forecastDate"
	FieldResolvedDate = "resolvedDate"
	FieldQuestion     = "question"
)

// Search index fields.
const (
	FieldURL     = "url"
	FieldExcerpt = "excerpt"
)
