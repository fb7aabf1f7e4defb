package contract

// Book is one reading-log entry as listed on the reading pages.
type Book struct {
	Title       string `json:"title"`
	Date        string `json:"date"`
	Year        string `json:"year,omitempty"`
	Category    string `json:"category"`
	Subcategory string `json:"subcategory,omitempty"`
	Format      string `json:"format"`
	Type        string `json:"type"`
	Rating      int    `json:"rating"`
	Review      string `json:"review,omitempty"`
}

// ReadingStats summarise one year of reading. Projected is nil when the year
// has no elapsed days to extrapolate from.
type ReadingStats struct {
	Total          int     `json:"total"`
	AvgRating      float64 `json:"avgRating"`
	TopCategory    string  `json:"topCategory"`
	TopFormat      string  `json:"topFormat"`
	Projected      *int    `json:"projected"`
	FictionPercent int     `json:"fictionPercent"`
}

// ReadingDashboard is the single-year reading page. Highlights are books
// rated 8 or more, best first; Books are newest first.
type ReadingDashboard struct {
	Stats      ReadingStats `json:"stats"`
	Charts     []Chart      `json:"charts"`
	Highlights []Book       `json:"highlights"`
	Books      []Book       `json:"books"`
}

// ReadingHistoryStats summarise every year in the log.
type ReadingHistoryStats struct {
	Total       int     `json:"total"`
	AvgRating   float64 `json:"avgRating"`
	TopCategory string  `json:"topCategory"`
	TopFormat   string  `json:"topFormat"`
	Years       int     `json:"years"`
	AvgPerYear  float64 `json:"avgPerYear"`
}

// ReadingHistory is the all-years reading page.
type ReadingHistory struct {
	Stats      ReadingHistoryStats `json:"stats"`
	Charts     []Chart             `json:"charts"`
	Highlights []Book              `json:"highlights"`
	Books      []Book              `json:"books"`
}
