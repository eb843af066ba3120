package roster

import (
	"context"
	"errors"

	"cloud.google.com/go/civil"
)

// EmployeeQuery is a fluent builder for employee searches.
// Dimension setters append, so Department("A").Department("B") selects both.
type EmployeeQuery struct {
	svc *SearchService

	f    EmployeeFilter
	sort Sort
}

// NewEmployeeQuery returns an empty query. An empty query matches everyone.
func NewEmployeeQuery() *EmployeeQuery {
	return &EmployeeQuery{}
}

// Search sets the free-text term (name, email, position, department, phone digits).
func (q *EmployeeQuery) Search(term string) *EmployeeQuery {
	q.f.Search = term
	return q
}

// Status adds allowed employment statuses.
func (q *EmployeeQuery) Status(values ...string) *EmployeeQuery {
	q.f.Status = append(q.f.Status, values...)
	return q
}

// Department adds allowed departments.
func (q *EmployeeQuery) Department(values ...string) *EmployeeQuery {
	q.f.Department = append(q.f.Department, values...)
	return q
}

// Position adds allowed positions.
func (q *EmployeeQuery) Position(values ...string) *EmployeeQuery {
	q.f.Position = append(q.f.Position, values...)
	return q
}

// EmploymentType adds allowed employment types.
func (q *EmployeeQuery) EmploymentType(values ...string) *EmployeeQuery {
	q.f.EmploymentType = append(q.f.EmploymentType, values...)
	return q
}

// Country adds allowed countries.
func (q *EmployeeQuery) Country(values ...string) *EmployeeQuery {
	q.f.Country = append(q.f.Country, values...)
	return q
}

// City adds allowed cities.
func (q *EmployeeQuery) City(values ...string) *EmployeeQuery {
	q.f.City = append(q.f.City, values...)
	return q
}

// Gender adds allowed genders.
func (q *EmployeeQuery) Gender(values ...string) *EmployeeQuery {
	q.f.Gender = append(q.f.Gender, values...)
	return q
}

// MaritalStatus adds allowed marital statuses.
func (q *EmployeeQuery) MaritalStatus(values ...string) *EmployeeQuery {
	q.f.MaritalStatus = append(q.f.MaritalStatus, values...)
	return q
}

// WorkLocation adds allowed work locations.
func (q *EmployeeQuery) WorkLocation(values ...string) *EmployeeQuery {
	q.f.WorkLocation = append(q.f.WorkLocation, values...)
	return q
}

// SalaryAtLeast sets the inclusive lower salary bound.
func (q *EmployeeQuery) SalaryAtLeast(amount float64) *EmployeeQuery {
	q.f.SalaryRange.Min = &amount
	return q
}

// SalaryAtMost sets the inclusive upper salary bound.
func (q *EmployeeQuery) SalaryAtMost(amount float64) *EmployeeQuery {
	q.f.SalaryRange.Max = &amount
	return q
}

// HiredFrom sets the earliest hire date, inclusive.
func (q *EmployeeQuery) HiredFrom(d civil.Date) *EmployeeQuery {
	q.f.HireDateRange.From = &d
	return q
}

// HiredTo sets the latest hire date, inclusive.
func (q *EmployeeQuery) HiredTo(d civil.Date) *EmployeeQuery {
	q.f.HireDateRange.To = &d
	return q
}

// ManagedBy keeps direct reports of the given manager.
func (q *EmployeeQuery) ManagedBy(managerID string) *EmployeeQuery {
	q.f.ManagerID = managerID
	return q
}

// SortBy sets the sort field and direction.
func (q *EmployeeQuery) SortBy(field string, dir Direction) *EmployeeQuery {
	q.sort = Sort{Field: field, Direction: dir}
	return q
}

// Filter returns a copy of the descriptor built so far.
func (q *EmployeeQuery) Filter() EmployeeFilter {
	f := q.f
	f.Status = cloneSet(f.Status)
	f.Department = cloneSet(f.Department)
	f.Position = cloneSet(f.Position)
	f.EmploymentType = cloneSet(f.EmploymentType)
	f.Country = cloneSet(f.Country)
	f.City = cloneSet(f.City)
	f.Gender = cloneSet(f.Gender)
	f.MaritalStatus = cloneSet(f.MaritalStatus)
	f.WorkLocation = cloneSet(f.WorkLocation)
	return f
}

// Sort returns the sort descriptor built so far.
func (q *EmployeeQuery) Sort() Sort { return q.sort }

// Run filters and sorts records in memory.
func (q *EmployeeQuery) Run(records []Employee) (Result[Employee], error) {
	return FilterEmployees(records, q.Filter(), q.sort)
}

// Do runs the query against the stored employees of the Client that created it.
func (q *EmployeeQuery) Do(ctx context.Context) (EmployeeSearch, error) {
	if q.svc == nil {
		return EmployeeSearch{}, errors.New("roster: query is not bound to a client (use Client.Search().Query())")
	}
	return q.svc.Employees(ctx, q.Filter(), q.sort)
}

func cloneSet(s Set) Set {
	if s == nil {
		return nil
	}
	return append(Set(nil), s...)
}
