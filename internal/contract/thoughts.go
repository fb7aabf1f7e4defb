package contract

import "time"

// ThoughtStats summarise the short-post feed.
type ThoughtStats struct {
	Total     int `json:"total"`
	ThisMonth int `json:"thisMonth"`
	PerDay    int `json:"perDay"`
	PerWeek   int `json:"perWeek"`
}

// Thought is one post with its display times.
type Thought struct {
	Content  string    `json:"content"`
	At       time.Time `json:"at"`
	Clock    string    `json:"clock"`
	Relative string    `json:"relative"`
}

// ThoughtDay groups the posts of one calendar day, newest first.
type ThoughtDay struct {
	Key      string    `json:"key"`
	Label    string    `json:"label"`
	Thoughts []Thought `json:"thoughts"`
}

// ThoughtsFeed is the timeline page, newest day first.
type ThoughtsFeed struct {
	Stats ThoughtStats `json:"stats"`
	Days  []ThoughtDay `json:"days"`
}
