package roster

import (
	"time"

	"cloud.google.com/go/civil"

	"github.com/kailas-cloud/roster/internal/domain"
	dombatch "github.com/kailas-cloud/roster/internal/domain/batch"
	"github.com/kailas-cloud/roster/internal/domain/employee"
	"github.com/kailas-cloud/roster/internal/domain/hrdoc"
	"github.com/kailas-cloud/roster/internal/domain/review"
	"github.com/kailas-cloud/roster/internal/domain/search/engine"
	"github.com/kailas-cloud/roster/internal/domain/search/facet"
	"github.com/kailas-cloud/roster/internal/domain/search/filter"
	"github.com/kailas-cloud/roster/internal/domain/search/order"
	"github.com/kailas-cloud/roster/internal/domain/search/result"
	searchuc "github.com/kailas-cloud/roster/internal/usecase/search"
)

// Records.
type (
	Employee   = employee.Employee
	Address    = employee.Address
	Employment = employee.Employment
	Salary     = employee.Salary
	Attendance = employee.Attendance
	Document   = hrdoc.Document
	Review     = review.Review
	Criterion  = review.Criterion
)

// Employee enumerations.
type (
	EmployeeStatus = employee.Status
	EmploymentType = employee.EmploymentType
	WorkLocation   = employee.WorkLocation
)

// Descriptors.
type (
	EmployeeFilter = filter.Employee
	DocumentFilter = filter.Document
	ReviewFilter   = filter.Review
	Set            = filter.Set
	NumberRange    = filter.NumberRange
	DateRange      = filter.DateRange
	Sort           = order.Descriptor
	Direction      = order.Direction
)

// Results.
type (
	Result[T any]      = result.Result[T]
	Bucket             = facet.Bucket
	NumericRange       = facet.NumericRange
	EmployeeStatistics = facet.EmployeeStatistics
	DocumentStatistics = facet.DocumentStatistics
	ReviewStatistics   = facet.ReviewStatistics
	EmployeeSearch     = searchuc.EmployeeSearch
	DocumentSearch     = searchuc.DocumentSearch
	ReviewSearch       = searchuc.ReviewSearch
	BatchResult        = dombatch.Result
	FieldError         = domain.FieldError
	ValidationError    = domain.ValidationError
)

// Sort directions.
const (
	Asc  = order.Asc
	Desc = order.Desc
)

// Sentinel errors. Match with errors.Is.
var (
	ErrNotFound          = domain.ErrNotFound
	ErrAlreadyExists     = domain.ErrAlreadyExists
	ErrInvalidDescriptor = domain.ErrInvalidDescriptor
	ErrValidation        = domain.ErrValidation
	ErrBatchTooLarge     = domain.ErrBatchTooLarge
)

// FilterEmployees keeps the employees matching f and orders them by sort.
// An unknown sort field falls back to name ascending.
func FilterEmployees(records []Employee, f EmployeeFilter, sort Sort) (Result[Employee], error) {
	return engine.FilterEmployees(records, f, sort)
}

// ComputeFacetStatistics summarizes the full employee set.
func ComputeFacetStatistics(records []Employee) EmployeeStatistics {
	return engine.ComputeFacetStatistics(records)
}

// FilterDocuments keeps the documents matching f and orders them by sort.
func FilterDocuments(records []Document, f DocumentFilter, sort Sort) (Result[Document], error) {
	return engine.FilterDocuments(records, f, sort)
}

// ComputeDocumentStatistics summarizes the full document set. Expiry is judged against today.
func ComputeDocumentStatistics(records []Document, today time.Time) DocumentStatistics {
	return engine.ComputeDocumentStatistics(records, civil.DateOf(today))
}

// FilterReviews keeps the reviews matching f and orders them by sort.
func FilterReviews(records []Review, f ReviewFilter, sort Sort) (Result[Review], error) {
	return engine.FilterReviews(records, f, sort)
}

// ComputeReviewStatistics summarizes the full review set.
func ComputeReviewStatistics(records []Review) ReviewStatistics {
	return engine.ComputeReviewStatistics(records)
}

// EmployeeSortFields lists the sortable employee fields.
func EmployeeSortFields() []string { return engine.EmployeeFields.Names() }

// DocumentSortFields lists the sortable document fields.
func DocumentSortFields() []string { return engine.DocumentFields.Names() }

// ReviewSortFields lists the sortable review fields.
func ReviewSortFields() []string { return engine.ReviewFields.Names() }
