package stats

import (
	"fmt"
	"math"
	"time"

	"github.com/alexanderramin/tally/internal/domain"
)

// Prediction is one forecast. Probability is in [0,1].
type Prediction struct {
	Question    string
	Probability float64
	Resolution  domain.Resolution
	Created     time.Time
	Resolved    time.Time
	Category    string
}

// IsResolved reports whether the prediction resolved YES or NO.
func (p Prediction) IsResolved() bool {
	return p.Resolution == domain.ResolutionYes || p.Resolution == domain.ResolutionNo
}

// Outcome is 1 for YES and 0 otherwise.
func (p Prediction) Outcome() float64 {
	if p.Resolution == domain.ResolutionYes {
		return 1
	}
	return 0
}

// IsCorrect reports a resolved prediction on the right side of 50%.
func (p Prediction) IsCorrect() bool {
	switch p.Resolution {
	case domain.ResolutionYes:
		return p.Probability >= 0.5
	case domain.ResolutionNo:
		return p.Probability < 0.5
	default:
		return false
	}
}

// SquaredError is (p - outcome)^2.
func (p Prediction) SquaredError() float64 {
	d := p.Probability - p.Outcome()
	return d * d
}

// BrierScore is the mean squared error of resolved predictions. It reports
// false when nothing has resolved.
func BrierScore(preds []Prediction) (float64, bool) {
	var sum float64
	n := 0
	for _, p := range preds {
		if !p.IsResolved() {
			continue
		}
		sum += p.SquaredError()
		n++
	}
	if n == 0 {
		return 0, false
	}
	return sum / float64(n), true
}

const calibrationBuckets = 10

// CalibrationBucket maps a percentage to a 10-wide label such as "40-50".
// Values are clamped to [0,100]; 100 lands in "90-100".
func CalibrationBucket(pct float64) string {
	idx := bucketIndex(pct)
	return fmt.Sprintf("%d-%d", idx*10, idx*10+10)
}

func bucketIndex(pct float64) int {
	if math.IsNaN(pct) || pct < 0 {
		pct = 0
	}
	idx := int(math.Floor(pct / 10))
	if idx >= calibrationBuckets {
		idx = calibrationBuckets - 1
	}
	return idx
}

// CalibrationRow is one bucket. Correct counts YES outcomes; ActualRate is
// Correct/Count rounded to three places, nil for an empty bucket.
type CalibrationRow struct {
	Bucket     string   `json:"bucket"`
	Count      int      `json:"count"`
	Correct    int      `json:"correct"`
	ActualRate *float64 `json:"actualRate"`
}

// Calibration buckets resolved predictions by stated probability. It always
// returns ten rows.
func Calibration(preds []Prediction) []CalibrationRow {
	rows := make([]CalibrationRow, calibrationBuckets)
	for i := range rows {
		rows[i].Bucket = fmt.Sprintf("%d-%d", i*10, i*10+10)
	}
	for _, p := range preds {
		if !p.IsResolved() {
			continue
		}
		row := &rows[bucketIndex(p.Probability*100)]
		row.Count++
		if p.Resolution == domain.ResolutionYes {
			row.Correct++
		}
	}
	for i := range rows {
		if rows[i].Count > 0 {
			rate := Round(float64(rows[i].Correct)/float64(rows[i].Count), 3)
			rows[i].ActualRate = &rate
		}
	}
	return rows
}

// ConfidenceBin counts predictions by stated probability quartile.
type ConfidenceBin struct {
	Range string `json:"range"`
	Count int    `json:"count"`
}

// ConfidenceDistribution counts all predictions into 0-25, 25-50, 50-75 and
// 75-100. Bins are half-open except the last, which includes 100.
func ConfidenceDistribution(preds []Prediction) []ConfidenceBin {
	bins := []ConfidenceBin{{Range: "0-25"}, {Range: "25-50"}, {Range: "50-75"}, {Range: "75-100"}}
	for _, p := range preds {
		pct := p.Probability * 100
		switch {
		case pct < 0 || pct > 100:
		case pct < 25:
			bins[0].Count++
		case pct < 50:
			bins[1].Count++
		case pct < 75:
			bins[2].Count++
		default:
			bins[3].Count++
		}
	}
	return bins
}
