package formatter

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/tally/internal/contract"
)

// FormatForecast renders the forecasting page.
func FormatForecast(d *contract.ForecastDashboard) string {
	sum := d.Summary
	var b strings.Builder
	b.WriteString(page("Forecasting", []contract.StatValue{
		stat("Predictions", strconv.Itoa(sum.Total)),
		stat("Resolved", fmt.Sprintf("%d/%d", sum.Resolved, sum.Total)),
		stat("Pending", strconv.Itoa(sum.Pending)),
		stat("Brier Score", brier(sum.BrierScore)),
		stat("Accuracy", accuracy(sum, d.Accuracy)),
		stat("Avg Confidence", oneDecimal(sum.AvgConfidence)+"%"),
	}, d.Charts))

	if len(d.Categories) > 0 {
		rows := make([][]string, len(d.Categories))
		for i, c := range d.Categories {
			rows[i] = []string{c.Name, strconv.Itoa(c.Count), strconv.Itoa(c.Correct), brier(c.BrierScore)}
		}
		b.WriteString("\n")
		b.WriteString(Header("Categories"))
		b.WriteString("\n")
		b.WriteString(RenderTable([]string{"CATEGORY", "COUNT", "CORRECT", "BRIER"}, rows))
	}
	return b.String()
}

// brier prints a score to three places; lower is better.
func brier(score *float64) string {
	if score == nil {
		return noValue
	}
	s := strconv.FormatFloat(*score, 'f', 3, 64)
	switch {
	case *score <= 0.1:
		return StyleGreen.Render(s)
	case *score <= 0.25:
		return StyleYellow.Render(s)
	default:
		return StyleRed.Render(s)
	}
}

func accuracy(sum contract.ForecastSummary, pct int) string {
	if sum.Resolved == 0 {
		return noValue
	}
	return PercentStyle(pct).Render(percent(pct))
}
