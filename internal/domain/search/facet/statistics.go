package facet

// EmployeeStatistics summarizes an unfiltered employee set for filter affordances.
type EmployeeStatistics struct {
	TotalEmployees    int          `json:"totalEmployees"`
	FilteredEmployees int          `json:"filteredEmployees"`
	Departments       []Bucket     `json:"departments"`
	Positions         []Bucket     `json:"positions"`
	Countries         []Bucket     `json:"countries"`
	Statuses          []Bucket     `json:"statuses"`
	EmploymentTypes   []Bucket     `json:"employmentTypes"`
	WorkLocations     []Bucket     `json:"workLocations"`
	SalaryRange       NumericRange `json:"salaryRange"`
	AttendanceRate    float64      `json:"attendanceRate"`
	OvertimeHours     float64      `json:"overtimeHours"`
}

// WithFiltered returns a copy reporting filtered as the matching count.
func (s EmployeeStatistics) WithFiltered(filtered int) EmployeeStatistics {
	s.FilteredEmployees = filtered
	return s
}

// DocumentStatistics summarizes an unfiltered document set.
type DocumentStatistics struct {
	TotalDocuments    int          `json:"totalDocuments"`
	FilteredDocuments int          `json:"filteredDocuments"`
	Categories        []Bucket     `json:"categories"`
	Statuses          []Bucket     `json:"statuses"`
	SizeBytes         NumericRange `json:"sizeBytes"`
	Expired           int          `json:"expired"`
}

// WithFiltered returns a copy reporting filtered as the matching count.
func (s DocumentStatistics) WithFiltered(filtered int) DocumentStatistics {
	s.FilteredDocuments = filtered
	return s
}

// ReviewStatistics summarizes an unfiltered review set.
type ReviewStatistics struct {
	TotalReviews    int          `json:"totalReviews"`
	FilteredReviews int          `json:"filteredReviews"`
	Statuses        []Bucket     `json:"statuses"`
	Types           []Bucket     `json:"types"`
	Score           NumericRange `json:"score"`
	CompletionRate  float64      `json:"completionRate"`
}

// WithFiltered returns a copy reporting filtered as the matching count.
func (s ReviewStatistics) WithFiltered(filtered int) ReviewStatistics {
	s.FilteredReviews = filtered
	return s
}
