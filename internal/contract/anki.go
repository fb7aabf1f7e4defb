package contract

// AnkiStats are the headline numbers of the flashcard page.
type AnkiStats struct {
	TotalReviews int     `json:"totalReviews"`
	Hours        float64 `json:"hours"`
	Days         int     `json:"days"`
	AvgPerDay    int     `json:"avgPerDay"`
	Streak       int     `json:"streak"`
	SuccessRate  int     `json:"successRate"`
}

// AnkiDashboard is the flashcard review page.
type AnkiDashboard struct {
	Stats  AnkiStats `json:"stats"`
	Charts []Chart   `json:"charts"`
}
