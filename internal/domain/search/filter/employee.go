package filter

// Employee describes which employees survive a search.
// The zero value matches every employee.
type Employee struct {
	Search         string      `json:"search,omitempty"`
	Status         Set         `json:"status,omitempty"`
	Department     Set         `json:"department,omitempty"`
	Position       Set         `json:"position,omitempty"`
	EmploymentType Set         `json:"employmentType,omitempty"`
	Country        Set         `json:"country,omitempty"`
	City           Set         `json:"city,omitempty"`
	Gender         Set         `json:"gender,omitempty"`
	MaritalStatus  Set         `json:"maritalStatus,omitempty"`
	WorkLocation   Set         `json:"workLocation,omitempty"`
	HireDateRange  DateRange   `json:"hireDateRange,omitzero"`
	SalaryRange    NumberRange `json:"salaryRange,omitzero"`
	ManagerID      string      `json:"managerId,omitempty"`
}

func (f *Employee) sets() []namedSet {
	return []namedSet{
		{"status", f.Status},
		{"department", f.Department},
		{"position", f.Position},
		{"employmentType", f.EmploymentType},
		{"country", f.Country},
		{"city", f.City},
		{"gender", f.Gender},
		{"maritalStatus", f.MaritalStatus},
		{"workLocation", f.WorkLocation},
	}
}

// IsEmpty reports whether the descriptor is the identity filter.
func (f *Employee) IsEmpty() bool {
	return Term(f.Search) == "" &&
		allEmpty(f.sets()) &&
		f.HireDateRange.IsEmpty() &&
		f.SalaryRange.IsEmpty() &&
		f.ManagerID == ""
}

// Validate checks ranges and dimension sizes.
func (f *Employee) Validate() error {
	if err := validateSearch(f.Search); err != nil {
		return err
	}
	if err := validateSets(f.sets()); err != nil {
		return err
	}
	if err := f.HireDateRange.validate("hireDateRange"); err != nil {
		return err
	}
	return f.SalaryRange.validate("salaryRange")
}
