package search

import (
	"context"

	"github.com/kailas-cloud/roster/internal/domain/employee"
	"github.com/kailas-cloud/roster/internal/domain/hrdoc"
	"github.com/kailas-cloud/roster/internal/domain/review"
)

// EmployeeReader loads the full employee set.
type EmployeeReader interface {
	ListAll(ctx context.Context) ([]employee.Employee, error)
}

// DocumentReader loads the full document set.
type DocumentReader interface {
	ListAll(ctx context.Context) ([]hrdoc.Document, error)
}

// ReviewReader loads the full review set.
type ReviewReader interface {
	ListAll(ctx context.Context) ([]review.Review, error)
}
