// Package search loads stored record sets and runs them through the filter engine.
package search

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"cloud.google.com/go/civil"
	"go.uber.org/zap"

	"github.com/kailas-cloud/roster/internal/domain"
	"github.com/kailas-cloud/roster/internal/domain/employee"
	"github.com/kailas-cloud/roster/internal/domain/hrdoc"
	"github.com/kailas-cloud/roster/internal/domain/review"
	"github.com/kailas-cloud/roster/internal/domain/search/engine"
	"github.com/kailas-cloud/roster/internal/domain/search/facet"
	"github.com/kailas-cloud/roster/internal/domain/search/order"
	"github.com/kailas-cloud/roster/internal/domain/search/request"
	"github.com/kailas-cloud/roster/internal/domain/search/result"
	"github.com/kailas-cloud/roster/internal/logger"
	"github.com/kailas-cloud/roster/internal/metrics"
)

// Record kinds used as metric and log labels.
const (
	KindEmployee = "employee"
	KindDocument = "document"
	KindReview   = "review"
)

// EmployeeSearch is a filtered employee page plus the facets of the whole set.
type EmployeeSearch struct {
	Result result.Result[employee.Employee]
	Facets facet.EmployeeStatistics
}

// DocumentSearch is a filtered document page plus the facets of the whole set.
type DocumentSearch struct {
	Result result.Result[hrdoc.Document]
	Facets facet.DocumentStatistics
}

// ReviewSearch is a filtered review page plus the facets of the whole set.
type ReviewSearch struct {
	Result result.Result[review.Review]
	Facets facet.ReviewStatistics
}

// Service runs searches over the stored record sets.
type Service struct {
	employees  EmployeeReader
	documents  DocumentReader
	reviews    ReviewReader
	strictSort bool
	now        func() time.Time
}

// New creates a search service.
func New(employees EmployeeReader, documents DocumentReader, reviews ReviewReader) *Service {
	return &Service{employees: employees, documents: documents, reviews: reviews, now: time.Now}
}

// WithStrictSort rejects unknown sort fields instead of falling back to the default.
func (s *Service) WithStrictSort(strict bool) *Service {
	s.strictSort = strict
	return s
}

// WithClock replaces the clock used to decide document expiry.
func (s *Service) WithClock(now func() time.Time) *Service {
	if now != nil {
		s.now = now
	}
	return s
}

// SearchEmployees filters and sorts the stored employees.
func (s *Service) SearchEmployees(ctx context.Context, req request.Employee) (EmployeeSearch, error) {
	var out EmployeeSearch
	err := s.observe(ctx, KindEmployee, func() (int, error) {
		if err := s.check(req.Validate(), req.Sort, engine.EmployeeFields.Resolve, engine.EmployeeFields.Names); err != nil {
			return 0, err
		}
		recs, err := s.employees.ListAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("load employees: %w", err)
		}
		res, err := engine.FilterEmployees(recs, req.Filter, req.Sort)
		if err != nil {
			return 0, err
		}
		out = EmployeeSearch{
			Result: res,
			Facets: engine.ComputeFacetStatistics(recs).WithFiltered(res.FilteredCount),
		}
		return res.FilteredCount, nil
	})
	return out, err
}

// EmployeeFacets summarizes every stored employee.
func (s *Service) EmployeeFacets(ctx context.Context) (facet.EmployeeStatistics, error) {
	recs, err := s.employees.ListAll(ctx)
	if err != nil {
		return facet.EmployeeStatistics{}, fmt.Errorf("load employees: %w", err)
	}
	return engine.ComputeFacetStatistics(recs), nil
}

// SearchDocuments filters and sorts the stored documents.
func (s *Service) SearchDocuments(ctx context.Context, req request.Document) (DocumentSearch, error) {
	var out DocumentSearch
	err := s.observe(ctx, KindDocument, func() (int, error) {
		if err := s.check(req.Validate(), req.Sort, engine.DocumentFields.Resolve, engine.DocumentFields.Names); err != nil {
			return 0, err
		}
		recs, err := s.documents.ListAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("load documents: %w", err)
		}
		res, err := engine.FilterDocuments(recs, req.Filter, req.Sort)
		if err != nil {
			return 0, err
		}
		out = DocumentSearch{
			Result: res,
			Facets: engine.ComputeDocumentStatistics(recs, civil.DateOf(s.now())).WithFiltered(res.FilteredCount),
		}
		return res.FilteredCount, nil
	})
	return out, err
}

// SearchReviews filters and sorts the stored reviews.
func (s *Service) SearchReviews(ctx context.Context, req request.Review) (ReviewSearch, error) {
	var out ReviewSearch
	err := s.observe(ctx, KindReview, func() (int, error) {
		if err := s.check(req.Validate(), req.Sort, engine.ReviewFields.Resolve, engine.ReviewFields.Names); err != nil {
			return 0, err
		}
		recs, err := s.reviews.ListAll(ctx)
		if err != nil {
			return 0, fmt.Errorf("load reviews: %w", err)
		}
		res, err := engine.FilterReviews(recs, req.Filter, req.Sort)
		if err != nil {
			return 0, err
		}
		out = ReviewSearch{
			Result: res,
			Facets: engine.ComputeReviewStatistics(recs).WithFiltered(res.FilteredCount),
		}
		return res.FilteredCount, nil
	})
	return out, err
}

// check folds request validation and the strict sort policy into one error.
func (s *Service) check(
	validateErr error, sort order.Descriptor,
	resolve func(order.Descriptor) (order.Descriptor, bool), names func() []string,
) error {
	if validateErr != nil {
		return validateErr
	}
	if !s.strictSort {
		return nil
	}
	if _, ok := resolve(sort); !ok {
		return fmt.Errorf("%w: unknown sort field %q (known: %s)",
			domain.ErrInvalidDescriptor, sort.Field, strings.Join(names(), ", "))
	}
	return nil
}

func (s *Service) observe(ctx context.Context, kind string, run func() (int, error)) error {
	start := time.Now()
	matched, err := run()
	elapsed := time.Since(start)

	status := metrics.StatusOK
	switch {
	case errors.Is(err, domain.ErrInvalidDescriptor):
		status = metrics.StatusInvalid
	case err != nil:
		status = metrics.StatusError
	}
	metrics.ObserveSearch(kind, status, elapsed, matched)

	log := logger.FromContext(ctx).With(zap.String("kind", kind), zap.Duration("elapsed", elapsed))
	if err != nil {
		log.Debug("search rejected", zap.Error(err))
		return err
	}
	log.Debug("search completed", zap.Int("matched", matched))
	return nil
}
