package contract

import "github.com/alexanderramin/tally/internal/domain"

// GoalStats summarise the year's goals.
type GoalStats struct {
	Total          int    `json:"total"`
	Completed      int    `json:"completed"`
	InProgress     int    `json:"inProgress"`
	CompletionRate int    `json:"completionRate"`
	TopCategory    string `json:"topCategory"`
}

// GoalItem is one listed goal. Progress is set for open goals measured in a
// unit, e.g. "3/12 books (25%)".
type GoalItem struct {
	Goal     string `json:"goal"`
	Category string `json:"category"`
	Progress string `json:"progress,omitempty"`
}

// GoalGroup lists the goals in one status.
type GoalGroup struct {
	Status domain.GoalStatus `json:"status"`
	Label  string            `json:"label"`
	Goals  []GoalItem        `json:"goals"`
}

// GoalsDashboard is the goals page. Groups with no goals are omitted.
type GoalsDashboard struct {
	Stats  GoalStats   `json:"stats"`
	Charts []Chart     `json:"charts"`
	Groups []GoalGroup `json:"groups"`
}
