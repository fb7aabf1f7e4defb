package contract

import "github.com/alexanderramin/tally/internal/domain"

// Theme carries every color a dashboard assigns. Services receive it at
// construction, so no page reads colors from globals.
type Theme struct {
	Palette      []string
	Neutral      string
	Accent       string
	Buttons      map[domain.Button]string
	ReviewTypes  map[domain.ReviewType]string
	GoalStatuses map[domain.GoalStatus]string
	Manual       string
	AI           string
	Calibration  string
	Perfect      string
	Correct      string
	Incorrect    string
	Pending      string
}

// DefaultTheme returns the site palette.
func DefaultTheme() Theme {
	return Theme{
		Palette: []string{"#4e79a7", "#f28e2c", "#e15759", "#76b7b2", "#59a14f", "#edc949", "#af7aa1", "#ff9da7"},
		Neutral: "#999999",
		Accent:  "#c8a44e",
		Buttons: map[domain.Button]string{
			domain.ButtonAgain: "#e15759",
			domain.ButtonHard:  "#f28e2c",
			domain.ButtonGood:  "#59a14f",
			domain.ButtonEasy:  "#4e79a7",
		},
		ReviewTypes: map[domain.ReviewType]string{
			domain.ReviewLearning: "#4e79a7",
			domain.ReviewReview:   "#59a14f",
			domain.ReviewRelearn:  "#f28e2c",
		},
		GoalStatuses: map[domain.GoalStatus]string{
			domain.GoalDone:       "#59a14f",
			domain.GoalInProgress: "#f28e2c",
			domain.GoalNotStarted: "#6b5d45",
		},
		Manual:      "#59a14f",
		AI:          "#4e79a7",
		Calibration: "#4e79a7",
		Perfect:     "#76b7b2",
		Correct:     "#59a14f",
		Incorrect:   "#e15759",
		Pending:     "#edc949",
	}
}

// Color returns palette entry i, cycling. An empty palette yields Neutral.
func (t Theme) Color(i int) string {
	if len(t.Palette) == 0 {
		return t.Neutral
	}
	return t.Palette[i%len(t.Palette)]
}

// Colors returns n palette colors starting at offset.
func (t Theme) Colors(n, offset int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = t.Color(offset + i)
	}
	return out
}
