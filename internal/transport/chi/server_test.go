package chi

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/kailas-cloud/roster/internal/db/memory"
	"github.com/kailas-cloud/roster/internal/domain/employee"
	"github.com/kailas-cloud/roster/internal/domain/hrdoc"
	"github.com/kailas-cloud/roster/internal/domain/review"
	"github.com/kailas-cloud/roster/internal/domain/search/facet"
	reporecord "github.com/kailas-cloud/roster/internal/repository/record"
	batchuc "github.com/kailas-cloud/roster/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/roster/internal/usecase/health"
	recorduc "github.com/kailas-cloud/roster/internal/usecase/record"
	searchuc "github.com/kailas-cloud/roster/internal/usecase/search"
)

// --- Fixtures ---

type failingPinger struct{}

func (failingPinger) Ping(_ context.Context) error { return errors.New("down") }

type testEnv struct {
	router http.Handler
	store  *memory.Store
}

func seedEmployees() []employee.Employee {
	return []employee.Employee{
		{
			ID: "e-1", FirstName: "Alice", LastName: "Moss", Email: "alice@example.com",
			Employment: employee.Employment{
				Department: "Engineering", Status: employee.StatusActive,
				HireDate: civil.Date{Year: 2021, Month: time.March, Day: 1},
			},
			Salary: employee.Salary{Amount: 90000, Currency: "EUR"},
		},
		{
			ID: "e-2", FirstName: "Bob", LastName: "Lane",
			Employment: employee.Employment{
				Department: "Sales", Status: employee.StatusOnLeave,
				HireDate: civil.Date{Year: 2019, Month: time.June, Day: 10},
			},
			Salary: employee.Salary{Amount: 50000, Currency: "EUR"},
		},
		{
			ID: "e-3", FirstName: "Carol", LastName: "Park",
			Employment: employee.Employment{Department: "Engineering", Status: employee.StatusActive},
			Salary:     employee.Salary{Amount: 70000, Currency: "EUR"},
		},
	}
}

func newTestEnv(t *testing.T, strict bool, pinger healthuc.DBPinger) *testEnv {
	t.Helper()
	store := memory.NewStore()
	if pinger == nil {
		pinger = store
	}

	empRepo := reporecord.New(store, "roster:", reporecord.Employees)
	docRepo := reporecord.New(store, "roster:", reporecord.Documents)
	revRepo := reporecord.New(store, "roster:", reporecord.Reviews)
	if err := empRepo.UpsertMany(context.Background(), seedEmployees()); err != nil {
		t.Fatalf("seed: %v", err)
	}

	check := recorduc.NewValidator()
	employees := recorduc.New(empRepo, recorduc.Identity[employee.Employee](reporecord.Employees), check)
	documents := recorduc.New(docRepo, recorduc.Identity[hrdoc.Document](reporecord.Documents), check)
	reviews := recorduc.New(revRepo, recorduc.Identity[review.Review](reporecord.Reviews), check)

	svc := Services{
		Employees:     employees,
		Documents:     documents,
		Reviews:       reviews,
		EmployeeBatch: batchuc.New("employee", reporecord.Employees.ID, employees, empRepo, empRepo).WithMaxBatchSize(3),
		DocumentBatch: batchuc.New("document", reporecord.Documents.ID, documents, docRepo, docRepo),
		ReviewBatch:   batchuc.New("review", reporecord.Reviews.ID, reviews, revRepo, revRepo),
		Search:        searchuc.New(empRepo, docRepo, revRepo).WithStrictSort(strict),
		Health:        healthuc.New(pinger),
	}

	r := chi.NewRouter()
	NewServer(svc, zap.NewNop()).Routes(r)
	return &testEnv{router: r, store: store}
}

func (e *testEnv) do(t *testing.T, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	e.router.ServeHTTP(rr, req)
	return rr
}

type employeeSearchBody struct {
	Result struct {
		Records       []employee.Employee `json:"records"`
		TotalCount    int                 `json:"totalCount"`
		FilteredCount int                 `json:"filteredCount"`
	} `json:"result"`
	Facets facet.EmployeeStatistics `json:"facets"`
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rr.Body).Decode(&v); err != nil {
		t.Fatalf("decode response: %v (body %q)", err, rr.Body.String())
	}
	return v
}

func ids(recs []employee.Employee) string {
	out := make([]string, len(recs))
	for i, e := range recs {
		out[i] = e.ID
	}
	return strings.Join(out, ",")
}

// --- Search tests ---

func TestSearchEmployees_POST(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPost, "/api/v1/employees/search",
		`{"filter":{"department":["Engineering"]},"sort":{"field":"salary","direction":"desc"}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}

	body := decode[employeeSearchBody](t, rr)
	if got := ids(body.Result.Records); got != "e-1,e-3" {
		t.Errorf("records = %s", got)
	}
	if body.Result.TotalCount != 3 || body.Result.FilteredCount != 2 {
		t.Errorf("counts = %d/%d", body.Result.FilteredCount, body.Result.TotalCount)
	}
	if body.Facets.TotalEmployees != 3 || body.Facets.FilteredEmployees != 2 {
		t.Errorf("facets = %+v", body.Facets)
	}
}

func TestSearchEmployees_InvalidRange(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPost, "/api/v1/employees/search",
		`{"filter":{"salaryRange":{"min":100,"max":1}}}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	resp := decode[ErrorResponse](t, rr)
	if resp.Code != ErrorCodeInvalidDescriptor || !strings.Contains(resp.Message, "salaryRange") {
		t.Errorf("error = %+v", resp)
	}
}

func TestSearchEmployees_BadJSON(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPost, "/api/v1/employees/search", `{"filter":`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != ErrorCodeBadRequest {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestSearchEmployees_DirectionSpellings(t *testing.T) {
	env := newTestEnv(t, false, nil)

	for _, dir := range []string{"descending", "DESC"} {
		rr := env.do(t, http.MethodPost, "/api/v1/employees/search",
			`{"sort":{"field":"salary","direction":"`+dir+`"}}`)
		if rr.Code != http.StatusOK {
			t.Fatalf("%s: status = %d, body %s", dir, rr.Code, rr.Body)
		}
		if got := ids(decode[employeeSearchBody](t, rr).Result.Records); got != "e-1,e-3,e-2" {
			t.Errorf("%s: records = %s", dir, got)
		}
	}

	rr := env.do(t, http.MethodPost, "/api/v1/employees/search", `{"sort":{"field":"salary","direction":"bogus"}}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("bogus: status = %d, want 400", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != ErrorCodeInvalidDescriptor {
		t.Errorf("bogus: code = %s", resp.Code)
	}
}

func TestSearchEmployees_StrictUnknownSort(t *testing.T) {
	env := newTestEnv(t, true, nil)

	rr := env.do(t, http.MethodPost, "/api/v1/employees/search", `{"sort":{"field":"shoeSize"}}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestListEmployees_QueryBinding(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodGet,
		"/api/v1/employees?department=Engineering&department=Sales&salaryMin=60000&hireDateFrom=2020-01-01&sort=name", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	body := decode[employeeSearchBody](t, rr)
	if got := ids(body.Result.Records); got != "e-1" {
		t.Errorf("records = %s, want e-1 (e-3 has no hire date, e-2 earns too little)", got)
	}
}

func TestListEmployees_DescendingDirection(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodGet, "/api/v1/employees?sort=salary&direction=desc", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if got := ids(decode[employeeSearchBody](t, rr).Result.Records); got != "e-1,e-3,e-2" {
		t.Errorf("records = %s", got)
	}
}

func TestListEmployees_BadParameter(t *testing.T) {
	env := newTestEnv(t, false, nil)

	tests := []struct {
		name  string
		query string
		code  ErrorCode
	}{
		{"non-numeric salary", "salaryMin=lots", ErrorCodeBadRequest},
		{"bad date", "hireDateFrom=yesterday", ErrorCodeBadRequest},
		{"bad direction", "direction=sideways", ErrorCodeInvalidDescriptor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rr := env.do(t, http.MethodGet, "/api/v1/employees?"+tt.query, "")
			if rr.Code != http.StatusBadRequest {
				t.Fatalf("status = %d, want 400", rr.Code)
			}
			if resp := decode[ErrorResponse](t, rr); resp.Code != tt.code {
				t.Errorf("code = %s, want %s", resp.Code, tt.code)
			}
		})
	}
}

func TestEmployeeFacets(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodGet, "/api/v1/employees/facets", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	stats := decode[facet.EmployeeStatistics](t, rr)
	if stats.TotalEmployees != 3 || stats.SalaryRange.Min != 50000 || stats.SalaryRange.Max != 90000 {
		t.Errorf("stats = %+v", stats)
	}
	if len(stats.Departments) != 2 || stats.Departments[0].Value != "Engineering" {
		t.Errorf("departments = %+v", stats.Departments)
	}
}

// --- Export tests ---

func TestExportEmployees_CSV(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPost, "/api/v1/employees/export?format=csv",
		`{"filter":{"status":["active"]},"sort":{"field":"name","direction":"desc"}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	if ct := rr.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/csv") {
		t.Errorf("Content-Type = %q", ct)
	}
	if cd := rr.Header().Get("Content-Disposition"); !strings.Contains(cd, "employees.csv") {
		t.Errorf("Content-Disposition = %q", cd)
	}
	rows, err := csv.NewReader(bytes.NewReader(rr.Body.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 3 || rows[1][0] != "e-3" || rows[2][0] != "e-1" {
		t.Errorf("rows = %v", rows)
	}
}

func TestExportEmployees_NoBodyExportsAll(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPost, "/api/v1/employees/export", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	rows, err := csv.NewReader(bytes.NewReader(rr.Body.Bytes())).ReadAll()
	if err != nil {
		t.Fatalf("read csv: %v", err)
	}
	if len(rows) != 4 {
		t.Errorf("rows = %d, want header + 3", len(rows))
	}
}

func TestExportEmployees_UnknownFormat(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPost, "/api/v1/employees/export?format=pdf", "{}")
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

// --- Record tests ---

func TestEmployeeCRUD(t *testing.T) {
	env := newTestEnv(t, false, nil)

	body := `{"firstName":"Dana","lastName":"Reyes","email":"dana@example.com",
		"employment":{"department":"People","hireDate":"2023-02-01"}}`
	rr := env.do(t, http.MethodPut, "/api/v1/employees/e-9", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create status = %d, body %s", rr.Code, rr.Body)
	}

	rr = env.do(t, http.MethodPut, "/api/v1/employees/e-9", body)
	if rr.Code != http.StatusOK {
		t.Fatalf("update status = %d", rr.Code)
	}

	rr = env.do(t, http.MethodGet, "/api/v1/employees/e-9", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("get status = %d", rr.Code)
	}
	got := decode[employee.Employee](t, rr)
	if got.ID != "e-9" || got.Employment.HireDate.String() != "2023-02-01" {
		t.Errorf("employee = %+v", got)
	}

	rr = env.do(t, http.MethodDelete, "/api/v1/employees/e-9", "")
	if rr.Code != http.StatusNoContent {
		t.Fatalf("delete status = %d", rr.Code)
	}
	rr = env.do(t, http.MethodGet, "/api/v1/employees/e-9", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("get after delete status = %d", rr.Code)
	}
	if resp := decode[ErrorResponse](t, rr); resp.Code != ErrorCodeNotFound {
		t.Errorf("code = %s", resp.Code)
	}
}

func TestPutEmployee_ValidationFields(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPut, "/api/v1/employees/e-9", `{"firstName":"","lastName":"X","email":"nope"}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
	resp := decode[ErrorResponse](t, rr)
	if resp.Code != ErrorCodeValidationFailed || len(resp.Fields) != 2 {
		t.Errorf("error = %+v", resp)
	}
}

func TestDeleteEmployee_NotFound(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodDelete, "/api/v1/employees/missing", "")
	if rr.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rr.Code)
	}
}

func TestDocuments_PutListSearch(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPut, "/api/v1/documents/d-1",
		`{"title":"Work Permit","category":"certificate","uploadedAt":"2024-01-10T09:00:00Z","expiresOn":"2025-01-10"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("put status = %d, body %s", rr.Code, rr.Body)
	}

	rr = env.do(t, http.MethodGet, "/api/v1/documents", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("list status = %d", rr.Code)
	}
	if list := decode[ListResponse[hrdoc.Document]](t, rr); list.Total != 1 || list.Items[0].ID != "d-1" {
		t.Errorf("list = %+v", list)
	}

	rr = env.do(t, http.MethodPost, "/api/v1/documents/search", `{"filter":{"category":["certificate"]}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("search status = %d", rr.Code)
	}
}

func TestReviews_Search(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPut, "/api/v1/reviews/r-1",
		`{"employeeId":"e-1","status":"completed","criteria":[{"name":"delivery","weight":1,"score":4}]}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("put status = %d, body %s", rr.Code, rr.Body)
	}

	rr = env.do(t, http.MethodPost, "/api/v1/reviews/search", `{"filter":{"scoreRange":{"min":3}}}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("search status = %d", rr.Code)
	}
	var body struct {
		Result struct {
			FilteredCount int `json:"filteredCount"`
		} `json:"result"`
		Facets facet.ReviewStatistics `json:"facets"`
	}
	if err := json.NewDecoder(rr.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Result.FilteredCount != 1 || body.Facets.CompletionRate != 100 {
		t.Errorf("body = %+v", body)
	}
}

// --- Batch tests ---

func TestBatchUpsert_PartialFailure(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPost, "/api/v1/employees/batch", `{"items":[
		{"id":"e-10","firstName":"Eve","lastName":"Hall"},
		{"id":"e-11","firstName":"","lastName":"Nobody"},
		{"firstName":"Finn","lastName":"Cole"}
	]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rr.Code, rr.Body)
	}
	resp := decode[BatchResponse](t, rr)
	if resp.Succeeded != 2 || resp.Failed != 1 {
		t.Errorf("summary = %d/%d", resp.Succeeded, resp.Failed)
	}
	if resp.Items[1].Error == nil || resp.Items[1].Error.Code != ErrorCodeValidationFailed {
		t.Errorf("item[1] = %+v", resp.Items[1])
	}
	if resp.Items[2].Id == "" {
		t.Error("item without id should get a generated one")
	}
	if env.store.Len() != 5 {
		t.Errorf("stored keys = %d, want 5", env.store.Len())
	}
}

func TestBatchUpsert_TooLarge(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPost, "/api/v1/employees/batch",
		`{"items":[{"firstName":"a","lastName":"a"},{"firstName":"b","lastName":"b"},
		{"firstName":"c","lastName":"c"},{"firstName":"d","lastName":"d"}]}`)
	if rr.Code != http.StatusRequestEntityTooLarge {
		t.Fatalf("status = %d, want 413", rr.Code)
	}
}

func TestBatchUpsert_Empty(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodPost, "/api/v1/employees/batch", `{"items":[]}`)
	if rr.Code != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", rr.Code)
	}
}

func TestBatchDelete(t *testing.T) {
	env := newTestEnv(t, false, nil)

	rr := env.do(t, http.MethodDelete, "/api/v1/employees/batch", `{"ids":["e-1","missing"]}`)
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	resp := decode[BatchResponse](t, rr)
	if resp.Succeeded != 1 || resp.Failed != 1 || resp.Items[1].Error.Code != ErrorCodeNotFound {
		t.Errorf("resp = %+v", resp)
	}
}

// --- Health tests ---

func TestHealthCheck(t *testing.T) {
	env := newTestEnv(t, false, nil)
	rr := env.do(t, http.MethodGet, "/health", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
	if report := decode[healthuc.Report](t, rr); report.Status != healthuc.Healthy {
		t.Errorf("report = %+v", report)
	}

	down := newTestEnv(t, false, failingPinger{})
	rr = down.do(t, http.MethodGet, "/health", "")
	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("status = %d, want 503", rr.Code)
	}
}

func TestMetricsEndpoint(t *testing.T) {
	env := newTestEnv(t, false, nil)
	rr := env.do(t, http.MethodGet, "/metrics", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("status = %d", rr.Code)
	}
}
