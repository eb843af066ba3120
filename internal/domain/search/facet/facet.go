// Package facet holds derived value->count tables and numeric summaries
// computed over an unfiltered record set.
package facet

import (
	"cmp"
	"slices"
)

// Bucket is one facet value with the number of records carrying it.
type Bucket struct {
	Value string `json:"value"`
	Count int    `json:"count"`
}

// Counter accumulates value->count in a single pass.
type Counter struct {
	counts map[string]int
}

// NewCounter creates an empty counter.
func NewCounter() *Counter {
	return &Counter{counts: make(map[string]int)}
}

// Add counts one occurrence of v.
func (c *Counter) Add(v string) {
	c.counts[v]++
}

// Buckets returns the table ordered by count desc, then value asc.
// The result is never nil.
func (c *Counter) Buckets() []Bucket {
	out := make([]Bucket, 0, len(c.counts))
	for v, n := range c.counts {
		out = append(out, Bucket{Value: v, Count: n})
	}
	slices.SortFunc(out, func(a, b Bucket) int {
		if n := cmp.Compare(b.Count, a.Count); n != 0 {
			return n
		}
		return cmp.Compare(a.Value, b.Value)
	})
	return out
}

// Total returns the sum of all bucket counts.
func Total(buckets []Bucket) int {
	n := 0
	for _, b := range buckets {
		n += b.Count
	}
	return n
}

// NumericRange is min/max/avg of a numeric field. All zero for an empty set.
type NumericRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
	Avg float64 `json:"avg"`
}

// Accumulator tracks running min/max/sum in one pass.
type Accumulator struct {
	n   int
	min float64
	max float64
	sum float64
}

// Add folds v into the running summary.
func (a *Accumulator) Add(v float64) {
	if a.n == 0 || v < a.min {
		a.min = v
	}
	if a.n == 0 || v > a.max {
		a.max = v
	}
	a.sum += v
	a.n++
}

// Count returns the number of folded values.
func (a *Accumulator) Count() int { return a.n }

// Sum returns the sum of folded values.
func (a *Accumulator) Sum() float64 { return a.sum }

// Range returns the summary; an empty accumulator yields {0, 0, 0}.
func (a *Accumulator) Range() NumericRange {
	if a.n == 0 {
		return NumericRange{}
	}
	return NumericRange{Min: a.min, Max: a.max, Avg: a.sum / float64(a.n)}
}

// Percent returns part/whole*100, or 0 when whole is zero.
func Percent(part, whole float64) float64 {
	if whole == 0 {
		return 0
	}
	return part / whole * 100
}
