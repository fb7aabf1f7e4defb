package formatter

import (
	"github.com/alexanderramin/tally/internal/schedule"
)

// FormatScheduleStatus renders the status line in the slot's color.
func FormatScheduleStatus(st schedule.Status) string {
	marker := "●"
	if !st.Active {
		marker = "○"
	}
	return SlotStyle(st.Class).Render(marker+" "+st.Label()) + "\n"
}
