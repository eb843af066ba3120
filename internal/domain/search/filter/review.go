package filter

// Review describes which performance reviews survive a search.
// ScoreRange applies to the weighted score.
type Review struct {
	Search       string      `json:"search,omitempty"`
	Status       Set         `json:"status,omitempty"`
	Type         Set         `json:"type,omitempty"`
	Period       Set         `json:"period,omitempty"`
	DueDateRange DateRange   `json:"dueDateRange,omitzero"`
	ScoreRange   NumberRange `json:"scoreRange,omitzero"`
	EmployeeID   string      `json:"employeeId,omitempty"`
	ReviewerID   string      `json:"reviewerId,omitempty"`
}

func (f *Review) sets() []namedSet {
	return []namedSet{
		{"status", f.Status},
		{"type", f.Type},
		{"period", f.Period},
	}
}

// IsEmpty reports whether the descriptor is the identity filter.
func (f *Review) IsEmpty() bool {
	return Term(f.Search) == "" &&
		allEmpty(f.sets()) &&
		f.DueDateRange.IsEmpty() &&
		f.ScoreRange.IsEmpty() &&
		f.EmployeeID == "" &&
		f.ReviewerID == ""
}

// Validate checks ranges and dimension sizes.
func (f *Review) Validate() error {
	if err := validateSearch(f.Search); err != nil {
		return err
	}
	if err := validateSets(f.sets()); err != nil {
		return err
	}
	if err := f.DueDateRange.validate("dueDateRange"); err != nil {
		return err
	}
	return f.ScoreRange.validate("scoreRange")
}
