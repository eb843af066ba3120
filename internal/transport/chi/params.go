package chi

import (
	"fmt"
	"net/http"

	"cloud.google.com/go/civil"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/kailas-cloud/roster/internal/domain/search/filter"
	"github.com/kailas-cloud/roster/internal/domain/search/order"
	"github.com/kailas-cloud/roster/internal/domain/search/request"
)

// bindListEmployeesParams binds the GET /employees query the way generated
// oapi handlers do: form style, exploded arrays, every parameter optional.
func bindListEmployeesParams(r *http.Request) (ListEmployeesParams, error) {
	var params ListEmployeesParams
	q := r.URL.Query()

	bindings := []struct {
		name string
		dest any
	}{
		{"search", &params.Search},
		{"status", &params.Status},
		{"department", &params.Department},
		{"position", &params.Position},
		{"employmentType", &params.EmploymentType},
		{"country", &params.Country},
		{"city", &params.City},
		{"gender", &params.Gender},
		{"maritalStatus", &params.MaritalStatus},
		{"workLocation", &params.WorkLocation},
		{"hireDateFrom", &params.HireDateFrom},
		{"hireDateTo", &params.HireDateTo},
		{"salaryMin", &params.SalaryMin},
		{"salaryMax", &params.SalaryMax},
		{"managerId", &params.ManagerId},
		{"sort", &params.Sort},
		{"direction", &params.Direction},
	}
	for _, b := range bindings {
		if err := runtime.BindQueryParameter("form", true, false, b.name, q, b.dest); err != nil {
			return ListEmployeesParams{}, fmt.Errorf("invalid format for parameter %s: %w", b.name, err)
		}
	}
	return params, nil
}

// toRequest converts bound parameters into an employee search request.
func (p *ListEmployeesParams) toRequest() (request.Employee, error) {
	sort, err := order.New(deref(p.Sort), deref(p.Direction))
	if err != nil {
		return request.Employee{}, err
	}
	return request.Employee{
		Filter: filter.Employee{
			Search:         deref(p.Search),
			Status:         set(p.Status),
			Department:     set(p.Department),
			Position:       set(p.Position),
			EmploymentType: set(p.EmploymentType),
			Country:        set(p.Country),
			City:           set(p.City),
			Gender:         set(p.Gender),
			MaritalStatus:  set(p.MaritalStatus),
			WorkLocation:   set(p.WorkLocation),
			HireDateRange:  filter.DateRange{From: civilDate(p.HireDateFrom), To: civilDate(p.HireDateTo)},
			SalaryRange:    filter.NumberRange{Min: p.SalaryMin, Max: p.SalaryMax},
			ManagerID:      deref(p.ManagerId),
		},
		Sort: sort,
	}, nil
}

func deref(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func set(p *[]string) filter.Set {
	if p == nil || len(*p) == 0 {
		return nil
	}
	return filter.Set(*p)
}

func civilDate(d *openapi_types.Date) *civil.Date {
	if d == nil {
		return nil
	}
	cd := civil.DateOf(d.Time)
	return &cd
}
