package formatter

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/alexanderramin/tally/internal/contract"
)

// FormatOverview renders one box per card. A failed card shows its error in
// place of the stats.
func FormatOverview(ov *contract.Overview) string {
	boxes := make([]string, len(ov.Cards))
	for i, card := range ov.Cards {
		content := RenderStats(card.Stats)
		if card.Failed() {
			content = StyleRed.Render("unavailable") + "\n" + Dim(card.Err)
		}
		boxes[i] = RenderBox(card.Title, content)
	}
	return lipgloss.JoinVertical(lipgloss.Left, boxes...) + "\n"
}
