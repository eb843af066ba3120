package record

import (
	"github.com/kailas-cloud/roster/internal/domain/employee"
	"github.com/kailas-cloud/roster/internal/domain/hrdoc"
	"github.com/kailas-cloud/roster/internal/domain/review"
)

// Kind names a stored record type and tells the repository how to read its id.
type Kind[T any] struct {
	Name  string
	ID    func(*T) string
	SetID func(*T, string)
}

// Record kinds served by the service.
var (
	Employees = Kind[employee.Employee]{
		Name:  "employee",
		ID:    func(e *employee.Employee) string { return e.ID },
		SetID: func(e *employee.Employee, id string) { e.ID = id },
	}
	Documents = Kind[hrdoc.Document]{
		Name:  "document",
		ID:    func(d *hrdoc.Document) string { return d.ID },
		SetID: func(d *hrdoc.Document, id string) { d.ID = id },
	}
	Reviews = Kind[review.Review]{
		Name:  "review",
		ID:    func(r *review.Review) string { return r.ID },
		SetID: func(r *review.Review, id string) { r.ID = id },
	}
)
