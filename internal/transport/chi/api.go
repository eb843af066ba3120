package chi

import (
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/kailas-cloud/roster/internal/domain"
	"github.com/kailas-cloud/roster/internal/domain/search/result"
)

// ErrorCode is the machine-readable error code of an ErrorResponse.
type ErrorCode string

// Error codes.
const (
	ErrorCodeBadRequest        ErrorCode = "bad_request"
	ErrorCodeUnauthorized      ErrorCode = "unauthorized"
	ErrorCodeNotFound          ErrorCode = "not_found"
	ErrorCodeAlreadyExists     ErrorCode = "already_exists"
	ErrorCodeInvalidDescriptor ErrorCode = "invalid_descriptor"
	ErrorCodeValidationFailed  ErrorCode = "validation_failed"
	ErrorCodeBatchTooLarge     ErrorCode = "batch_too_large"
	ErrorCodeInternalError     ErrorCode = "internal_error"
)

// ErrorResponse is the JSON body of every failed request.
type ErrorResponse struct {
	Code    ErrorCode           `json:"code"`
	Message string              `json:"message"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// SearchResponse pairs a filtered result with the facets of the full set.
type SearchResponse[T, F any] struct {
	Result result.Result[T] `json:"result"`
	Facets F                `json:"facets"`
}

// ListResponse wraps a plain record listing.
type ListResponse[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// BatchUpsertRequest is the body of POST /{kind}/batch.
type BatchUpsertRequest[T any] struct {
	Items []T `json:"items"`
}

// BatchDeleteRequest is the body of DELETE /{kind}/batch.
type BatchDeleteRequest struct {
	Ids []string `json:"ids"`
}

// BatchResultItem is the outcome of one batch item.
type BatchResultItem struct {
	Index  int            `json:"index"`
	Id     string         `json:"id,omitempty"`
	Status string         `json:"status"`
	Error  *ErrorResponse `json:"error,omitempty"`
}

// BatchResponse reports per-item outcomes and their totals.
type BatchResponse struct {
	Items     []BatchResultItem `json:"items"`
	Succeeded int               `json:"succeeded"`
	Failed    int               `json:"failed"`
}

// ListEmployeesParams are the query parameters of GET /employees.
// Repeated parameters (department=a&department=b) select several values.
type ListEmployeesParams struct {
	Search         *string
	Status         *[]string
	Department     *[]string
	Position       *[]string
	EmploymentType *[]string
	Country        *[]string
	City           *[]string
	Gender         *[]string
	MaritalStatus  *[]string
	WorkLocation   *[]string
	HireDateFrom   *openapi_types.Date
	HireDateTo     *openapi_types.Date
	SalaryMin      *float64
	SalaryMax      *float64
	ManagerId      *string
	Sort           *string
	Direction      *string
}
