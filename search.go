package roster

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/roster/internal/domain/search/request"
	searchuc "github.com/kailas-cloud/roster/internal/usecase/search"
)

// SearchService runs searches over the stored record snapshot.
type SearchService struct {
	svc *searchuc.Service
}

// Employees filters and sorts the stored employees. Facets cover every stored employee.
func (s *SearchService) Employees(ctx context.Context, f EmployeeFilter, sort Sort) (EmployeeSearch, error) {
	out, err := s.svc.SearchEmployees(ctx, request.Employee{Filter: f, Sort: sort})
	if err != nil {
		return EmployeeSearch{}, fmt.Errorf("search employees: %w", err)
	}
	return out, nil
}

// Facets summarizes every stored employee.
func (s *SearchService) Facets(ctx context.Context) (EmployeeStatistics, error) {
	stats, err := s.svc.EmployeeFacets(ctx)
	if err != nil {
		return EmployeeStatistics{}, fmt.Errorf("employee facets: %w", err)
	}
	return stats, nil
}

// Documents filters and sorts the stored HR documents.
func (s *SearchService) Documents(ctx context.Context, f DocumentFilter, sort Sort) (DocumentSearch, error) {
	out, err := s.svc.SearchDocuments(ctx, request.Document{Filter: f, Sort: sort})
	if err != nil {
		return DocumentSearch{}, fmt.Errorf("search documents: %w", err)
	}
	return out, nil
}

// Reviews filters and sorts the stored performance reviews.
func (s *SearchService) Reviews(ctx context.Context, f ReviewFilter, sort Sort) (ReviewSearch, error) {
	out, err := s.svc.SearchReviews(ctx, request.Review{Filter: f, Sort: sort})
	if err != nil {
		return ReviewSearch{}, fmt.Errorf("search reviews: %w", err)
	}
	return out, nil
}

// Query returns a fluent employee query bound to this service.
func (s *SearchService) Query() *EmployeeQuery {
	q := NewEmployeeQuery()
	q.svc = s
	return q
}
