package filter

import (
	"fmt"
	"slices"
	"strings"

	"cloud.google.com/go/civil"

	"github.com/kailas-cloud/roster/internal/domain"
)

// MaxValuesPerSet is the maximum number of allowed values in one multi-select dimension.
const MaxValuesPerSet = 64

// MaxSearchLength is the maximum accepted free-text search length.
const MaxSearchLength = 256

// Set is a multi-select dimension. Empty means no constraint;
// otherwise a record's value must be one of the members.
type Set []string

// IsEmpty reports whether the set imposes no constraint.
func (s Set) IsEmpty() bool { return len(s) == 0 }

// Allows reports whether v passes the dimension.
func (s Set) Allows(v string) bool {
	return s.IsEmpty() || slices.Contains(s, v)
}

func (s Set) validate(name string) error {
	if len(s) > MaxValuesPerSet {
		return fmt.Errorf("%w: too many %s values (max %d)", domain.ErrInvalidDescriptor, name, MaxValuesPerSet)
	}
	return nil
}

// NumberRange is an inclusive numeric range. A nil bound is unbounded.
type NumberRange struct {
	Min *float64 `json:"min,omitempty"`
	Max *float64 `json:"max,omitempty"`
}

// NewNumberRange validates and creates a NumberRange.
func NewNumberRange(minV, maxV *float64) (NumberRange, error) {
	r := NumberRange{Min: minV, Max: maxV}
	if err := r.validate("range"); err != nil {
		return NumberRange{}, err
	}
	return r, nil
}

// IsEmpty reports whether neither bound is set.
func (r NumberRange) IsEmpty() bool { return r.Min == nil && r.Max == nil }

// Contains reports whether v lies within the range.
func (r NumberRange) Contains(v float64) bool {
	if r.Min != nil && v < *r.Min {
		return false
	}
	if r.Max != nil && v > *r.Max {
		return false
	}
	return true
}

func (r NumberRange) validate(name string) error {
	if r.Min != nil && r.Max != nil && *r.Min > *r.Max {
		return fmt.Errorf("%w: %s min %g is greater than max %g",
			domain.ErrInvalidDescriptor, name, *r.Min, *r.Max)
	}
	return nil
}

// DateRange is an inclusive calendar-date range. A nil bound is unbounded.
type DateRange struct {
	From *civil.Date `json:"from,omitempty"`
	To   *civil.Date `json:"to,omitempty"`
}

// NewDateRange validates and creates a DateRange.
func NewDateRange(from, to *civil.Date) (DateRange, error) {
	r := DateRange{From: from, To: to}
	if err := r.validate("range"); err != nil {
		return DateRange{}, err
	}
	return r, nil
}

// IsEmpty reports whether neither bound is set.
func (r DateRange) IsEmpty() bool { return r.From == nil && r.To == nil }

// Contains reports whether d lies within the range.
// A zero date never satisfies a non-empty range.
func (r DateRange) Contains(d civil.Date) bool {
	if r.IsEmpty() {
		return true
	}
	if d.IsZero() {
		return false
	}
	if r.From != nil && d.Before(*r.From) {
		return false
	}
	if r.To != nil && d.After(*r.To) {
		return false
	}
	return true
}

func (r DateRange) validate(name string) error {
	if r.From != nil && !r.From.IsValid() {
		return fmt.Errorf("%w: %s from %s is not a valid date", domain.ErrInvalidDescriptor, name, r.From)
	}
	if r.To != nil && !r.To.IsValid() {
		return fmt.Errorf("%w: %s to %s is not a valid date", domain.ErrInvalidDescriptor, name, r.To)
	}
	if r.From != nil && r.To != nil && r.From.After(*r.To) {
		return fmt.Errorf("%w: %s from %s is after to %s",
			domain.ErrInvalidDescriptor, name, r.From, r.To)
	}
	return nil
}

// Term normalizes a free-text search: trimmed and lower-cased. Blank means no search.
func Term(search string) string {
	return strings.ToLower(strings.TrimSpace(search))
}

func validateSearch(search string) error {
	if len(search) > MaxSearchLength {
		return fmt.Errorf("%w: search too long (max %d chars)", domain.ErrInvalidDescriptor, MaxSearchLength)
	}
	return nil
}

type namedSet struct {
	name string
	set  Set
}

func validateSets(sets []namedSet) error {
	for _, ns := range sets {
		if err := ns.set.validate(ns.name); err != nil {
			return err
		}
	}
	return nil
}

func allEmpty(sets []namedSet) bool {
	for _, ns := range sets {
		if !ns.set.IsEmpty() {
			return false
		}
	}
	return true
}
