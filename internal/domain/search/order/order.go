// Package order holds the sort descriptor applied after filtering.
package order

import (
	"fmt"
	"strings"

	"github.com/kailas-cloud/roster/internal/domain"
)

// Direction is the sort direction.
type Direction string

// Sort directions.
const (
	Asc  Direction = "asc"
	Desc Direction = "desc"
)

// IsValid checks if the direction is one of the supported values.
func (d Direction) IsValid() bool {
	return d == Asc || d == Desc
}

// ParseDirection accepts asc/desc (and ascending/descending) case-insensitively.
// Empty input yields Asc.
func ParseDirection(s string) (Direction, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "asc", "ascending":
		return Asc, nil
	case "desc", "descending":
		return Desc, nil
	default:
		return "", fmt.Errorf("%w: invalid sort direction %q", domain.ErrInvalidDescriptor, s)
	}
}

// Descriptor names one sort field and a direction.
type Descriptor struct {
	Field     string    `json:"field,omitempty"`
	Direction Direction `json:"direction,omitempty"`
}

// New normalizes and validates a sort descriptor. The field is not checked here;
// each record kind owns its closed set of sortable fields.
func New(field, direction string) (Descriptor, error) {
	dir, err := ParseDirection(direction)
	if err != nil {
		return Descriptor{}, err
	}
	return Descriptor{Field: strings.TrimSpace(field), Direction: dir}, nil
}

// Normalize returns d with its direction in canonical form, so "DESC" and
// "descending" both become Desc. An unknown direction yields ErrInvalidDescriptor.
func (d Descriptor) Normalize() (Descriptor, error) {
	return New(d.Field, string(d.Direction))
}

// IsDesc reports whether the descriptor sorts descending.
func (d Descriptor) IsDesc() bool { return d.Direction == Desc }

// IsZero reports whether no field was requested.
func (d Descriptor) IsZero() bool { return d.Field == "" }

func (d Descriptor) String() string {
	dir := d.Direction
	if dir == "" {
		dir = Asc
	}
	return d.Field + " " + string(dir)
}
