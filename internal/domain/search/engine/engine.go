// Package engine filters, sorts and summarizes in-memory HR record sets.
//
// Every entry point is a pure function: it never mutates its input, keeps no
// state between calls, performs no I/O and is safe for concurrent use.
// A search runs a fixed pipeline of independent predicate stages combined with
// logical AND, followed by a stable sort chosen from a closed field table.
package engine

import (
	"slices"
	"strings"
	"time"

	"github.com/kailas-cloud/roster/internal/domain/search/order"
	"github.com/kailas-cloud/roster/internal/domain/search/result"
)

// Stage is one predicate of the filter pipeline.
type Stage[T any] struct {
	Name string
	Keep func(r *T) bool
}

// Comparator orders two records ascending.
type Comparator[T any] func(a, b *T) int

// Fields is the closed mapping from sortable field name to comparator.
// Lookup is case-insensitive.
type Fields[T any] struct {
	byName   map[string]Comparator[T]
	names    []string
	fallback order.Descriptor
}

// NewFields builds a field table. fallback must name one of the fields.
func NewFields[T any](fallback order.Descriptor, fields map[string]Comparator[T]) Fields[T] {
	byName := make(map[string]Comparator[T], len(fields))
	names := make([]string, 0, len(fields))
	for name, c := range fields {
		byName[strings.ToLower(name)] = c
		names = append(names, name)
	}
	slices.Sort(names)
	return Fields[T]{byName: byName, names: names, fallback: fallback}
}

// Names returns the sortable field names in lexical order.
func (f Fields[T]) Names() []string { return slices.Clone(f.names) }

// Default returns the fallback sort.
func (f Fields[T]) Default() order.Descriptor { return f.fallback }

// Resolve maps a requested sort to a known one. An empty field yields the
// default with ok=true; an unknown field yields the default with ok=false.
func (f Fields[T]) Resolve(d order.Descriptor) (order.Descriptor, bool) {
	if d.Field == "" {
		return f.fallback, true
	}
	if _, ok := f.byName[strings.ToLower(d.Field)]; !ok {
		return f.fallback, false
	}
	if d.Direction == "" {
		d.Direction = order.Asc
	}
	return d, true
}

func (f Fields[T]) comparator(d order.Descriptor) Comparator[T] {
	return f.byName[strings.ToLower(d.Field)]
}

// Run applies the stages and the sort to records and returns a fresh result.
// records is never modified; survivors are copied into a new slice.
func Run[T any](records []T, stages []Stage[T], fields Fields[T], sort order.Descriptor) result.Result[T] {
	start := time.Now()

	out := make([]T, 0, len(records))
	for i := range records {
		if keep(&records[i], stages) {
			out = append(out, records[i])
		}
	}

	resolved, _ := fields.Resolve(sort)
	if c := fields.comparator(resolved); c != nil {
		desc := resolved.IsDesc()
		slices.SortStableFunc(out, func(a, b T) int {
			n := c(&a, &b)
			if desc {
				return -n
			}
			return n
		})
	}

	return result.New(out, len(records), time.Since(start))
}

func keep[T any](r *T, stages []Stage[T]) bool {
	for _, s := range stages {
		if !s.Keep(r) {
			return false
		}
	}
	return true
}

// setStage appends a membership stage when the set is non-empty.
func setStage[T any](stages []Stage[T], name string, allowed []string, value func(*T) string) []Stage[T] {
	if len(allowed) == 0 {
		return stages
	}
	return append(stages, Stage[T]{
		Name: name,
		Keep: func(r *T) bool { return slices.Contains(allowed, value(r)) },
	})
}

// exactStage appends an equality stage when want is non-empty.
func exactStage[T any](stages []Stage[T], name, want string, value func(*T) string) []Stage[T] {
	if want == "" {
		return stages
	}
	return append(stages, Stage[T]{
		Name: name,
		Keep: func(r *T) bool { return value(r) == want },
	})
}

// StageNames lists the names of the given stages, in pipeline order.
func StageNames[T any](stages []Stage[T]) []string {
	names := make([]string, len(stages))
	for i, s := range stages {
		names[i] = s.Name
	}
	return names
}
