package result

import (
	"encoding/json"
	"time"
)

// Result is the outcome of one filter/sort invocation.
// It is wholly derived from its inputs and holds no independent lifecycle.
type Result[T any] struct {
	Records       []T
	TotalCount    int
	FilteredCount int
	Elapsed       time.Duration
}

// New creates a result; a nil records slice is normalized to empty.
func New[T any](records []T, total int, elapsed time.Duration) Result[T] {
	if records == nil {
		records = []T{}
	}
	return Result[T]{
		Records:       records,
		TotalCount:    total,
		FilteredCount: len(records),
		Elapsed:       elapsed,
	}
}

// Empty creates a well-formed result for an empty input.
func Empty[T any]() Result[T] {
	return New[T](nil, 0, 0)
}

// IsFiltered reports whether any record was excluded.
func (r Result[T]) IsFiltered() bool { return r.FilteredCount < r.TotalCount }

// ElapsedMillis returns the elapsed wall time in fractional milliseconds.
func (r Result[T]) ElapsedMillis() float64 {
	return float64(r.Elapsed) / float64(time.Millisecond)
}

type wire[T any] struct {
	Records       []T     `json:"records"`
	TotalCount    int     `json:"totalCount"`
	FilteredCount int     `json:"filteredCount"`
	ElapsedMs     float64 `json:"elapsedMs"`
}

// MarshalJSON renders the result with elapsed time in milliseconds.
func (r Result[T]) MarshalJSON() ([]byte, error) {
	records := r.Records
	if records == nil {
		records = []T{}
	}
	return json.Marshal(wire[T]{
		Records:       records,
		TotalCount:    r.TotalCount,
		FilteredCount: r.FilteredCount,
		ElapsedMs:     r.ElapsedMillis(),
	})
}

// UnmarshalJSON restores a result rendered by MarshalJSON.
func (r *Result[T]) UnmarshalJSON(data []byte) error {
	var w wire[T]
	if err := json.Unmarshal(data, &w); err != nil {
		return err //nolint:wrapcheck // plain decode error
	}
	r.Records = w.Records
	r.TotalCount = w.TotalCount
	r.FilteredCount = w.FilteredCount
	r.Elapsed = time.Duration(w.ElapsedMs * float64(time.Millisecond))
	return nil
}
