// Package batch holds per-item outcomes of bulk record imports.
package batch

// ItemStatus is the processing outcome of a single batch item.
type ItemStatus string

// Batch item status values.
const (
	StatusOK    ItemStatus = "ok"
	StatusError ItemStatus = "error"
)

// Result is the outcome of processing one item in a batch operation.
// Index is the item's position in the submitted batch.
type Result struct {
	index  int
	id     string
	status ItemStatus
	err    error
}

// NewOK creates a successful batch result.
func NewOK(index int, id string) Result {
	return Result{index: index, id: id, status: StatusOK}
}

// NewError creates a failed batch result. id may be empty when the item never got one.
func NewError(index int, id string, err error) Result {
	return Result{index: index, id: id, status: StatusError, err: err}
}

// Index returns the item's position in the batch.
func (r Result) Index() int { return r.index }

// ID returns the item identifier.
func (r Result) ID() string { return r.id }

// Status returns the processing outcome.
func (r Result) Status() ItemStatus { return r.status }

// Err returns the error, if any.
func (r Result) Err() error { return r.err }

// Summary counts successes and failures.
type Summary struct {
	Succeeded int `json:"succeeded"`
	Failed    int `json:"failed"`
}

// Summarize counts the outcomes of a batch.
func Summarize(results []Result) Summary {
	var s Summary
	for _, r := range results {
		if r.status == StatusOK {
			s.Succeeded++
		} else {
			s.Failed++
		}
	}
	return s
}
