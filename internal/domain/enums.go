package domain

// Button is the Anki answer button recorded on a review.
type Button string

const (
	ButtonAgain Button = "again"
	ButtonHard  Button = "hard"
	ButtonGood  Button = "good"
	ButtonEasy  Button = "easy"
)

// Buttons lists answer buttons in display order.
var Buttons = []Button{ButtonAgain, ButtonHard, ButtonGood, ButtonEasy}

// Successful reports whether the button counts toward the success rate.
func (b Button) Successful() bool {
	return b == ButtonGood || b == ButtonEasy
}

// ReviewType is the Anki review kind.
type ReviewType string

const (
	ReviewLearning ReviewType = "learning"
	ReviewReview   ReviewType = "review"
	ReviewRelearn  ReviewType = "relearn"
	ReviewFiltered ReviewType = "filtered"
)

// ReviewTypes lists the review kinds shown on the type chart.
var ReviewTypes = []ReviewType{ReviewLearning, ReviewReview, ReviewRelearn}

// GoalStatus is the lifecycle state of a goal.
type GoalStatus string

const (
	GoalDone       GoalStatus = "done"
	GoalInProgress GoalStatus = "in_progress"
	GoalNotStarted GoalStatus = "not_started"
)

// GoalStatuses lists goal states in chart order.
var GoalStatuses = []GoalStatus{GoalDone, GoalInProgress, GoalNotStarted}

// Label returns the human label for a goal status.
func (s GoalStatus) Label() string {
	switch s {
	case GoalDone:
		return "Done"
	case GoalInProgress:
		return "In Progress"
	case GoalNotStarted:
		return "Not Started"
	default:
		return string(s)
	}
}

// EntryType is the row kind in the programming time-tracking export.
type EntryType string

const (
	EntryDailyTotal     EntryType = "daily_total"
	EntryLanguage       EntryType = "language"
	EntryManualLanguage EntryType = "manual_language"
	EntryAILanguage     EntryType = "ai_language"
	EntryCategory       EntryType = "category"
	EntryHourly         EntryType = "hourly"
)

// Programming categories used to split manual and AI-assisted time.
const (
	CategoryCoding      = "coding"
	CategoryWritingDocs = "writing docs"
	CategoryAICoding    = "ai coding"
)

const (
	// BookTypeFiction is the reading log type value for fiction.
	BookTypeFiction = "Fiction"
	// GoalUnitBinary marks goals that are either done or not, with no progress.
	GoalUnitBinary = "binary"
	// Uncategorized is the forecast category for untagged questions.
	Uncategorized = "uncategorized"
)

// Resolution is a forecast outcome as exported by Fatebook.
type Resolution string

const (
	ResolutionYes Resolution = "YES"
	ResolutionNo  Resolution = "NO"
)
