package contract

// ProgrammingStats summarise tracked coding time.
type ProgrammingStats struct {
	TotalHours    float64 `json:"totalHours"`
	AvgDailyHours float64 `json:"avgDailyHours"`
	Days          int     `json:"days"`
	TopLanguage   string  `json:"topLanguage"`
	TopAILanguage string  `json:"topAiLanguage"`
	AIPercent     int     `json:"aiPercent"`
}

// ProgrammingDashboard is the coding time page.
type ProgrammingDashboard struct {
	Stats  ProgrammingStats `json:"stats"`
	Charts []Chart          `json:"charts"`
}
