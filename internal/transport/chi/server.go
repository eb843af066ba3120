// Package chi serves the roster HTTP API on a chi router.
package chi

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/roster/internal/domain"
	dombatch "github.com/kailas-cloud/roster/internal/domain/batch"
	"github.com/kailas-cloud/roster/internal/domain/employee"
	"github.com/kailas-cloud/roster/internal/domain/hrdoc"
	"github.com/kailas-cloud/roster/internal/domain/review"
	"github.com/kailas-cloud/roster/internal/domain/search/facet"
	"github.com/kailas-cloud/roster/internal/domain/search/request"
	"github.com/kailas-cloud/roster/internal/export"
	"github.com/kailas-cloud/roster/internal/metrics"
	batchuc "github.com/kailas-cloud/roster/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/roster/internal/usecase/health"
	recorduc "github.com/kailas-cloud/roster/internal/usecase/record"
	searchuc "github.com/kailas-cloud/roster/internal/usecase/search"
)

// errorHandler tries to handle a domain error. Returns true if handled.
type errorHandler func(w http.ResponseWriter, err error, msg string) bool

// Services are the usecases exposed over HTTP.
type Services struct {
	Employees     *recorduc.Service[employee.Employee]
	Documents     *recorduc.Service[hrdoc.Document]
	Reviews       *recorduc.Service[review.Review]
	EmployeeBatch *batchuc.Service[employee.Employee]
	DocumentBatch *batchuc.Service[hrdoc.Document]
	ReviewBatch   *batchuc.Service[review.Review]
	Search        *searchuc.Service
	Health        *healthuc.Service
}

// Server is the roster HTTP API.
type Server struct {
	svc           Services
	logger        *zap.Logger
	errorHandlers []errorHandler
}

// NewServer creates an HTTP API server.
func NewServer(svc Services, logger *zap.Logger) *Server {
	s := &Server{svc: svc, logger: logger}
	s.errorHandlers = []errorHandler{
		validationHandler,
		sentinelHandler(domain.ErrInvalidDescriptor, http.StatusBadRequest, ErrorCodeInvalidDescriptor),
		sentinelHandler(domain.ErrNotFound, http.StatusNotFound, ErrorCodeNotFound),
		sentinelHandler(domain.ErrAlreadyExists, http.StatusConflict, ErrorCodeAlreadyExists),
		sentinelHandler(domain.ErrBatchTooLarge, http.StatusRequestEntityTooLarge, ErrorCodeBatchTooLarge),
	}
	return s
}

// Routes registers every endpoint on r.
func (s *Server) Routes(r chi.Router) {
	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/employees", func(r chi.Router) {
			r.Get("/", s.ListEmployees)
			r.Post("/search", s.SearchEmployees)
			r.Get("/facets", s.EmployeeFacets)
			r.Post("/export", s.ExportEmployees)
			mountRecords(r, s, s.svc.Employees, s.svc.EmployeeBatch)
		})
		r.Route("/documents", func(r chi.Router) {
			r.Get("/", listRecords(s, s.svc.Documents))
			r.Post("/search", s.SearchDocuments)
			mountRecords(r, s, s.svc.Documents, s.svc.DocumentBatch)
		})
		r.Route("/reviews", func(r chi.Router) {
			r.Get("/", listRecords(s, s.svc.Reviews))
			r.Post("/search", s.SearchReviews)
			mountRecords(r, s, s.svc.Reviews, s.svc.ReviewBatch)
		})
	})
}

// SearchEmployees handles POST /api/v1/employees/search.
func (s *Server) SearchEmployees(w http.ResponseWriter, r *http.Request) {
	var req request.Employee
	if !decodeBody(w, r, &req) {
		return
	}
	s.searchEmployees(w, r, req)
}

// ListEmployees handles GET /api/v1/employees with query-string filters.
func (s *Server) ListEmployees(w http.ResponseWriter, r *http.Request) {
	params, err := bindListEmployeesParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, err.Error())
		return
	}
	req, err := params.toRequest()
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	s.searchEmployees(w, r, req)
}

func (s *Server) searchEmployees(w http.ResponseWriter, r *http.Request, req request.Employee) {
	out, err := s.svc.Search.SearchEmployees(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse[employee.Employee, facet.EmployeeStatistics]{
		Result: out.Result,
		Facets: out.Facets,
	})
}

// EmployeeFacets handles GET /api/v1/employees/facets.
func (s *Server) EmployeeFacets(w http.ResponseWriter, r *http.Request) {
	stats, err := s.svc.Search.EmployeeFacets(r.Context())
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}

// ExportEmployees handles POST /api/v1/employees/export?format=csv|xlsx|parquet.
// The body is an employee search request; matching rows are exported in result order.
func (s *Server) ExportEmployees(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var req request.Employee
	if r.ContentLength != 0 && !decodeBody(w, r, &req) {
		return
	}

	out, err := s.svc.Search.SearchEmployees(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}

	var buf bytes.Buffer
	if err := export.Employees(&buf, format, out.Result.Records); err != nil {
		s.handleDomainError(w, err)
		return
	}

	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", `attachment; filename="`+format.Filename("employees")+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

// SearchDocuments handles POST /api/v1/documents/search.
func (s *Server) SearchDocuments(w http.ResponseWriter, r *http.Request) {
	var req request.Document
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Search.SearchDocuments(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse[hrdoc.Document, facet.DocumentStatistics]{
		Result: out.Result,
		Facets: out.Facets,
	})
}

// SearchReviews handles POST /api/v1/reviews/search.
func (s *Server) SearchReviews(w http.ResponseWriter, r *http.Request) {
	var req request.Review
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Search.SearchReviews(r.Context(), req)
	if err != nil {
		s.handleDomainError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, SearchResponse[review.Review, facet.ReviewStatistics]{
		Result: out.Result,
		Facets: out.Facets,
	})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.svc.Health.Check(r.Context())

	httpStatus := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		httpStatus = http.StatusServiceUnavailable
	}
	writeJSON(w, httpStatus, report)
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	metrics.Handler().ServeHTTP(w, r)
}

func decodeBody(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeError(w, http.StatusBadRequest, ErrorCodeBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code ErrorCode, message string) {
	writeJSON(w, status, ErrorResponse{
		Code:    code,
		Message: message,
	})
}

// clientErrors are the sentinels whose wrapped messages describe caller input and are safe to return.
var clientErrors = []error{
	domain.ErrNotFound,
	domain.ErrAlreadyExists,
	domain.ErrInvalidDescriptor,
	domain.ErrValidation,
	domain.ErrBatchTooLarge,
}

// safeDomainMessage returns the error text for caller mistakes and hides everything else.
func safeDomainMessage(err error) string {
	for _, s := range clientErrors {
		if errors.Is(err, s) {
			return err.Error()
		}
	}
	return "internal error"
}

// sentinelHandler returns an errorHandler that matches a single sentinel error.
func sentinelHandler(sentinel error, status int, code ErrorCode) errorHandler {
	return func(w http.ResponseWriter, err error, msg string) bool {
		if !errors.Is(err, sentinel) {
			return false
		}
		writeError(w, status, code, msg)
		return true
	}
}

// validationHandler handles ErrValidation, listing the failing fields.
func validationHandler(w http.ResponseWriter, err error, msg string) bool {
	if !errors.Is(err, domain.ErrValidation) {
		return false
	}
	resp := ErrorResponse{Code: ErrorCodeValidationFailed, Message: msg}
	var ve *domain.ValidationError
	if errors.As(err, &ve) {
		resp.Fields = ve.Fields
	}
	writeJSON(w, http.StatusBadRequest, resp)
	return true
}

func (s *Server) handleDomainError(w http.ResponseWriter, err error) {
	s.logger.Warn("domain error", zap.Error(err))
	msg := safeDomainMessage(err)
	for _, h := range s.errorHandlers {
		if h(w, err, msg) {
			return
		}
	}
	s.logger.Error("internal error", zap.Error(err))
	writeError(w, http.StatusInternalServerError, ErrorCodeInternalError, "internal error")
}

func batchResultToAPI(r dombatch.Result) BatchResultItem {
	item := BatchResultItem{
		Index:  r.Index(),
		Id:     r.ID(),
		Status: string(r.Status()),
	}
	if r.Err() != nil {
		resp := ErrorResponse{
			Code:    batchErrorCode(r.Err()),
			Message: safeDomainMessage(r.Err()),
		}
		var ve *domain.ValidationError
		if errors.As(r.Err(), &ve) {
			resp.Fields = ve.Fields
		}
		item.Error = &resp
	}
	return item
}

func batchErrorCode(err error) ErrorCode {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return ErrorCodeNotFound
	case errors.Is(err, domain.ErrValidation):
		return ErrorCodeValidationFailed
	case errors.Is(err, domain.ErrAlreadyExists):
		return ErrorCodeAlreadyExists
	default:
		return ErrorCodeInternalError
	}
}

func batchResponse(results []dombatch.Result) BatchResponse {
	items := make([]BatchResultItem, len(results))
	for i, res := range results {
		items[i] = batchResultToAPI(res)
	}
	sum := dombatch.Summarize(results)
	return BatchResponse{Items: items, Succeeded: sum.Succeeded, Failed: sum.Failed}
}
