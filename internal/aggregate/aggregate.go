// Package aggregate groups flat records by a derived key and reduces each
// group to a number. Every function makes a single pass over its input and
// treats malformed fields as neutral values rather than failing.
package aggregate

import (
	"sort"

	"github.com/alexanderramin/tally/internal/domain"
)

// Unknown is the sentinel key for records whose key field is missing or malformed.
const Unknown = "Unknown"

// KeyFunc derives a group key from a record. It must be total.
type KeyFunc func(domain.Record) string

// ValueFunc extracts the numeric measure of a record.
type ValueFunc func(domain.Record) float64

// ReduceFunc folds one value into a group accumulator.
type ReduceFunc func(acc, v float64) float64

// Aggregate maps a group key to its reduced value.
type Aggregate map[string]float64

// Sum is the default reducer.
func Sum(acc, v float64) float64 { return acc + v }

// Last keeps the most recent value. Hourly programming rows use it so a
// repeated hour replaces the earlier value.
func Last(_, v float64) float64 { return v }

// One counts records.
func One(domain.Record) float64 { return 1 }

// By groups records with key and folds valueFn through reduce. A nil reduce
// sums. Empty input yields an empty, non-nil Aggregate.
func By(records []domain.Record, key KeyFunc, value ValueFunc, reduce ReduceFunc) Aggregate {
	if reduce == nil {
		reduce = Sum
	}
	if value == nil {
		value = One
	}
	out := make(Aggregate)
	for _, r := range records {
		k := key(r)
		out[k] = reduce(out[k], value(r))
	}
	return out
}

// Count counts records per key.
func Count(records []domain.Record, key KeyFunc) Aggregate {
	return By(records, key, One, Sum)
}

// SumOf sums value per key.
func SumOf(records []domain.Record, key KeyFunc, value ValueFunc) Aggregate {
	return By(records, key, value, Sum)
}

// Total returns the sum of all values.
func (a Aggregate) Total() float64 {
	var total float64
	for _, v := range a {
		total += v
	}
	return total
}

// Keys returns the keys in ascending order.
func (a Aggregate) Keys() []string {
	keys := make([]string, 0, len(a))
	for k := range a {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Without returns a copy of a with the given keys removed.
func (a Aggregate) Without(keys ...string) Aggregate {
	drop := make(map[string]bool, len(keys))
	for _, k := range keys {
		drop[k] = true
	}
	out := make(Aggregate, len(a))
	for k, v := range a {
		if !drop[k] {
			out[k] = v
		}
	}
	return out
}

// Tally counts a total and a qualifying subset within one group.
type Tally struct {
	Total int
	Hits  int
}

// Tallies maps a group key to its tally.
type Tallies map[string]Tally

// TallyBy counts records per key, and those matching hit.
func TallyBy(records []domain.Record, key KeyFunc, hit func(domain.Record) bool) Tallies {
	out := make(Tallies)
	for _, r := range records {
		k := key(r)
		t := out[k]
		t.Total++
		if hit != nil && hit(r) {
			t.Hits++
		}
		out[k] = t
	}
	return out
}

// Keys returns the tally keys in ascending order.
func (t Tallies) Keys() []string {
	keys := make([]string, 0, len(t))
	for k := range t {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Nested is a two-level aggregate, such as date by language.
type Nested map[string]Aggregate

// NestedBy groups records by outer then inner key, summing value.
func NestedBy(records []domain.Record, outer, inner KeyFunc, value ValueFunc) Nested {
	if value == nil {
		value = One
	}
	out := make(Nested)
	for _, r := range records {
		o := outer(r)
		group, ok := out[o]
		if !ok {
			group = make(Aggregate)
			out[o] = group
		}
		group[inner(r)] += value(r)
	}
	return out
}

// Keys returns the outer keys in ascending order.
func (n Nested) Keys() []string {
	keys := make([]string, 0, len(n))
	for k := range n {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// MeanBy averages value per key.
func MeanBy(records []domain.Record, key KeyFunc, value ValueFunc) Aggregate {
	sums := SumOf(records, key, value)
	counts := Count(records, key)
	out := make(Aggregate, len(sums))
	for k, s := range sums {
		if n := counts[k]; n > 0 {
			out[k] = s / n
		}
	}
	return out
}

// Filter returns the records matching keep, preserving order.
func Filter(records []domain.Record, keep func(domain.Record) bool) []domain.Record {
	var out []domain.Record
	for _, r := range records {
		if keep(r) {
			out = append(out, r)
		}
	}
	return out
}

// FieldEquals matches records whose field equals value exactly.
func FieldEquals(field, value string) func(domain.Record) bool {
	return func(r domain.Record) bool {
		return r.String(field) == value
	}
}

// Distinct returns the set of keys produced by key over records.
func Distinct(records []domain.Record, key KeyFunc) map[string]struct{} {
	out := make(map[string]struct{})
	for _, r := range records {
		out[key(r)] = struct{}{}
	}
	return out
}
