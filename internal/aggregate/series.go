package aggregate

import "sort"

// Point is one labeled value of a series. Key is the group key the value came
// from; Label is its display form.
type Point struct {
	Key   string  `json:"key"`
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// Series is an ordered list of points ready for a chart.
type Series []Point

// LabelFunc turns a group key into a display label.
type LabelFunc func(key string) string

func labelOrKey(label LabelFunc, key string) string {
	if label == nil {
		return key
	}
	return label(key)
}

// Chronological orders points by ascending key. Date keys (YYYY-MM-DD,
// YYYY-MM, YYYY-Www) sort lexically in time order.
func (a Aggregate) Chronological(label LabelFunc) Series {
	keys := a.Keys()
	out := make(Series, 0, len(keys))
	for _, k := range keys {
		out = append(out, Point{Key: k, Label: labelOrKey(label, k), Value: a[k]})
	}
	return out
}

// ByValueDesc orders points by descending value, ties by ascending key.
func (a Aggregate) ByValueDesc() Series {
	out := a.Chronological(nil)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Value > out[j].Value
	})
	return out
}

// Fill orders points by keys, inserting zero for keys absent from a. Keys in a
// but not in keys are dropped.
func (a Aggregate) Fill(keys []string, label LabelFunc) Series {
	out := make(Series, 0, len(keys))
	for _, k := range keys {
		out = append(out, Point{Key: k, Label: labelOrKey(label, k), Value: a[k]})
	}
	return out
}

// Labels returns the point labels in order.
func (s Series) Labels() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Label
	}
	return out
}

// Keys returns the point keys in order.
func (s Series) Keys() []string {
	out := make([]string, len(s))
	for i, p := range s {
		out[i] = p.Key
	}
	return out
}

// Values returns the point values in order.
func (s Series) Values() []float64 {
	out := make([]float64, len(s))
	for i, p := range s {
		out[i] = p.Value
	}
	return out
}

// Total sums the series.
func (s Series) Total() float64 {
	var total float64
	for _, p := range s {
		total += p.Value
	}
	return total
}

// Map returns a copy with fn applied to every value.
func (s Series) Map(fn func(float64) float64) Series {
	out := make(Series, len(s))
	for i, p := range s {
		p.Value = fn(p.Value)
		out[i] = p
	}
	return out
}
