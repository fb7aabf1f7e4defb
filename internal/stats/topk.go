package stats

import (
	"math"
	"strings"

	"github.com/alexanderramin/tally/internal/aggregate"
)

// OtherLabel names the remainder bucket.
const OtherLabel = "Other"

// TopK is the result of TopKWithOther: the kept entries in descending order,
// plus the remainder of everything dropped.
type TopK struct {
	Kept     aggregate.Series
	Other    float64
	HasOther bool
}

// Series returns the kept entries followed by the Other bucket when present.
func (t TopK) Series() aggregate.Series {
	out := make(aggregate.Series, 0, len(t.Kept)+1)
	out = append(out, t.Kept...)
	if t.HasOther {
		out = append(out, aggregate.Point{Key: OtherLabel, Label: OtherLabel, Value: t.Other})
	}
	return out
}

// TopKWithOther keeps at most k entries of agg by descending value (k <= 0
// keeps all). Of those, an entry survives only when its share of the top-k sum
// is at least thresholdPct. Everything dropped is folded into Other, so
// sum(Kept) + Other equals agg's total and Other is never negative.
func TopKWithOther(agg aggregate.Aggregate, k int, thresholdPct float64) TopK {
	ranked := agg.ByValueDesc()
	top := ranked
	if k > 0 && len(ranked) > k {
		top = ranked[:k]
	}

	topSum := top.Total()
	var kept aggregate.Series
	for _, p := range top {
		if thresholdPct > 0 && (topSum <= 0 || 100*p.Value/topSum < thresholdPct) {
			continue
		}
		kept = append(kept, p)
	}

	out := TopK{Kept: kept}
	if len(kept) < len(ranked) {
		out.HasOther = true
		out.Other = math.Max(0, agg.Total()-kept.Total())
	}
	return out
}

// TopKey returns the key with the highest value, ties broken by ascending key.
func TopKey(agg aggregate.Aggregate) (string, bool) {
	ranked := agg.ByValueDesc()
	if len(ranked) == 0 {
		return "", false
	}
	return ranked[0].Key, true
}

// Exclude drops keys matching any name case-insensitively.
func Exclude(agg aggregate.Aggregate, names []string) aggregate.Aggregate {
	drop := make(map[string]bool, len(names))
	for _, n := range names {
		drop[strings.ToLower(n)] = true
	}
	out := make(aggregate.Aggregate, len(agg))
	for k, v := range agg {
		if !drop[strings.ToLower(k)] {
			out[k] = v
		}
	}
	return out
}
