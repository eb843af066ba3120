package filter

// Document describes which HR documents survive a search.
// UploadedRange compares the calendar date of the upload timestamp.
type Document struct {
	Search        string      `json:"search,omitempty"`
	Category      Set         `json:"category,omitempty"`
	Status        Set         `json:"status,omitempty"`
	MimeType      Set         `json:"mimeType,omitempty"`
	UploadedRange DateRange   `json:"uploadedRange,omitzero"`
	SizeRange     NumberRange `json:"sizeRange,omitzero"`
	OwnerID       string      `json:"ownerId,omitempty"`
}

func (f *Document) sets() []namedSet {
	return []namedSet{
		{"category", f.Category},
		{"status", f.Status},
		{"mimeType", f.MimeType},
	}
}

// IsEmpty reports whether the descriptor is the identity filter.
func (f *Document) IsEmpty() bool {
	return Term(f.Search) == "" &&
		allEmpty(f.sets()) &&
		f.UploadedRange.IsEmpty() &&
		f.SizeRange.IsEmpty() &&
		f.OwnerID == ""
}

// Validate checks ranges and dimension sizes.
func (f *Document) Validate() error {
	if err := validateSearch(f.Search); err != nil {
		return err
	}
	if err := validateSets(f.sets()); err != nil {
		return err
	}
	if err := f.UploadedRange.validate("uploadedRange"); err != nil {
		return err
	}
	return f.SizeRange.validate("sizeRange")
}
