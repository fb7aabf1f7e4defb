package contract

// StatValue is one labeled, preformatted number on an overview card.
type StatValue struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// OverviewCard previews one dataset. A card whose fetch failed carries the
// error and no stats.
type OverviewCard struct {
	Name  string      `json:"name"`
	Title string      `json:"title"`
	Stats []StatValue `json:"stats,omitempty"`
	Err   string      `json:"error,omitempty"`
}

// Failed reports whether the card could not be built.
func (c OverviewCard) Failed() bool { return c.Err != "" }

// Overview is the hub page, one card per dataset in a fixed order.
type Overview struct {
	Cards []OverviewCard `json:"cards"`
}
