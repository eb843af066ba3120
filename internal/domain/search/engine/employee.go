package engine

import (
	"strings"

	"github.com/kailas-cloud/roster/internal/domain/employee"
	"github.com/kailas-cloud/roster/internal/domain/search/facet"
	"github.com/kailas-cloud/roster/internal/domain/search/filter"
	"github.com/kailas-cloud/roster/internal/domain/search/order"
	"github.com/kailas-cloud/roster/internal/domain/search/result"
)

type emp = employee.Employee

// DefaultEmployeeSort orders employees by display name.
var DefaultEmployeeSort = order.Descriptor{Field: "name", Direction: order.Asc}

// EmployeeFields is the closed set of sortable employee fields.
var EmployeeFields = NewFields(DefaultEmployeeSort, map[string]Comparator[emp]{
	"name":           func(a, b *emp) int { return compareFold(a.FullName(), b.FullName()) },
	"firstName":      func(a, b *emp) int { return compareFold(a.FirstName, b.FirstName) },
	"lastName":       func(a, b *emp) int { return compareFold(a.LastName, b.LastName) },
	"email":          func(a, b *emp) int { return compareFold(a.Email, b.Email) },
	"employeeNumber": func(a, b *emp) int { return compareFold(a.EmployeeNumber, b.EmployeeNumber) },
	"position":       func(a, b *emp) int { return compareFold(a.Employment.Position, b.Employment.Position) },
	"department":     func(a, b *emp) int { return compareFold(a.Employment.Department, b.Employment.Department) },
	"status": func(a, b *emp) int {
		return compareFold(string(a.Employment.Status), string(b.Employment.Status))
	},
	"employmentType": func(a, b *emp) int {
		return compareFold(string(a.Employment.EmploymentType), string(b.Employment.EmploymentType))
	},
	"workLocation": func(a, b *emp) int {
		return compareFold(string(a.Employment.WorkLocation), string(b.Employment.WorkLocation))
	},
	"country":        func(a, b *emp) int { return compareFold(a.Address.Country, b.Address.Country) },
	"city":           func(a, b *emp) int { return compareFold(a.Address.City, b.Address.City) },
	"hireDate":       func(a, b *emp) int { return compareDate(a.Employment.HireDate, b.Employment.HireDate) },
	"salary":         func(a, b *emp) int { return compareNumber(a.Salary.Amount, b.Salary.Amount) },
	"attendanceRate": func(a, b *emp) int { return compareNumber(a.AttendanceRate(), b.AttendanceRate()) },
	"overtimeHours": func(a, b *emp) int {
		return compareNumber(a.Attendance.OvertimeHours, b.Attendance.OvertimeHours)
	},
})

// FilterEmployees runs the employee pipeline: text search, multi-select
// dimensions, hire-date and salary ranges, then the manager match, followed by
// a stable sort. An unknown sort field falls back to DefaultEmployeeSort.
// A malformed descriptor or sort direction is rejected before any filtering work.
func FilterEmployees(
	records []employee.Employee, f filter.Employee, sort order.Descriptor,
) (result.Result[employee.Employee], error) {
	if err := f.Validate(); err != nil {
		return result.Result[employee.Employee]{}, err
	}
	sort, err := sort.Normalize()
	if err != nil {
		return result.Result[employee.Employee]{}, err
	}
	return Run(records, EmployeeStages(f), EmployeeFields, sort), nil
}

// EmployeeStages builds the active predicate stages for f, in pipeline order.
// Dimensions left at their zero value contribute no stage.
func EmployeeStages(f filter.Employee) []Stage[emp] {
	var stages []Stage[emp]

	if term := filter.Term(f.Search); term != "" {
		stages = append(stages, Stage[emp]{Name: "search", Keep: employeeSearch(term)})
	}

	stages = setStage(stages, "status", f.Status, func(e *emp) string { return string(e.Employment.Status) })
	stages = setStage(stages, "department", f.Department, func(e *emp) string { return e.Employment.Department })
	stages = setStage(stages, "position", f.Position, func(e *emp) string { return e.Employment.Position })
	stages = setStage(stages, "employmentType", f.EmploymentType,
		func(e *emp) string { return string(e.Employment.EmploymentType) })
	stages = setStage(stages, "country", f.Country, func(e *emp) string { return e.Address.Country })
	stages = setStage(stages, "city", f.City, func(e *emp) string { return e.Address.City })
	stages = setStage(stages, "gender", f.Gender, func(e *emp) string { return e.Gender })
	stages = setStage(stages, "maritalStatus", f.MaritalStatus, func(e *emp) string { return e.MaritalStatus })
	stages = setStage(stages, "workLocation", f.WorkLocation,
		func(e *emp) string { return string(e.Employment.WorkLocation) })

	if !f.HireDateRange.IsEmpty() {
		r := f.HireDateRange
		stages = append(stages, Stage[emp]{
			Name: "hireDate",
			Keep: func(e *emp) bool { return r.Contains(e.Employment.HireDate) },
		})
	}
	if !f.SalaryRange.IsEmpty() {
		r := f.SalaryRange
		stages = append(stages, Stage[emp]{
			Name: "salary",
			Keep: func(e *emp) bool { return r.Contains(e.Salary.Amount) },
		})
	}

	return exactStage(stages, "manager", f.ManagerID, func(e *emp) string { return e.Employment.ManagerID })
}

func employeeSearch(term string) func(*emp) bool {
	phone, isPhone := phoneQuery(term)
	return func(e *emp) bool {
		if containsAny(term,
			e.FullName(),
			e.Email,
			e.Employment.Position,
			e.Employment.Department,
			e.EmployeeNumber,
			e.ID,
			e.Address.City,
			e.Address.Country,
		) {
			return true
		}
		return isPhone && strings.Contains(e.PhoneDigits(), phone)
	}
}

// ComputeFacetStatistics summarizes the full, unfiltered employee set in one pass.
// FilteredEmployees equals TotalEmployees; callers holding a search result
// override it with WithFiltered. An empty set yields zero ranges and empty tables.
func ComputeFacetStatistics(records []employee.Employee) facet.EmployeeStatistics {
	departments := facet.NewCounter()
	positions := facet.NewCounter()
	countries := facet.NewCounter()
	statuses := facet.NewCounter()
	types := facet.NewCounter()
	locations := facet.NewCounter()

	var salary facet.Accumulator
	var present, scheduled int
	var overtime float64

	for i := range records {
		e := &records[i]
		departments.Add(e.Employment.Department)
		positions.Add(e.Employment.Position)
		countries.Add(e.Address.Country)
		statuses.Add(string(e.Employment.Status))
		types.Add(string(e.Employment.EmploymentType))
		locations.Add(string(e.Employment.WorkLocation))

		salary.Add(e.Salary.Amount)
		present += e.Attendance.PresentDays
		scheduled += e.Attendance.ScheduledDays
		overtime += e.Attendance.OvertimeHours
	}

	return facet.EmployeeStatistics{
		TotalEmployees:    len(records),
		FilteredEmployees: len(records),
		Departments:       departments.Buckets(),
		Positions:         positions.Buckets(),
		Countries:         countries.Buckets(),
		Statuses:          statuses.Buckets(),
		EmploymentTypes:   types.Buckets(),
		WorkLocations:     locations.Buckets(),
		SalaryRange:       salary.Range(),
		AttendanceRate:    facet.Percent(float64(present), float64(scheduled)),
		OvertimeHours:     overtime,
	}
}
