// Package roster filters, sorts and summarizes HR records.
//
// The pure entry points (FilterEmployees, ComputeFacetStatistics and their
// document and review counterparts) work on caller-owned slices and never
// mutate them. EmployeeQuery builds an employee search fluently:
//
//	res, err := roster.NewEmployeeQuery().
//		Department("Engineering").
//		SalaryAtLeast(60000).
//		SortBy("salary", roster.Desc).
//		Run(employees)
//
// Client adds storage: records live in Redis, Valkey or process memory and
// every search runs over the stored snapshot.
package roster
