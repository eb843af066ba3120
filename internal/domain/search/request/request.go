// Package request holds the filter+sort pairs a caller submits per search.
package request

import (
	"fmt"

	"github.com/kailas-cloud/roster/internal/domain/search/filter"
	"github.com/kailas-cloud/roster/internal/domain/search/order"
)

// Employee is a search over employees.
type Employee struct {
	Filter filter.Employee  `json:"filter"`
	Sort   order.Descriptor `json:"sort"`
}

// Validate checks the filter ranges and normalizes the sort direction.
func (r *Employee) Validate() error {
	if err := r.Filter.Validate(); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	return normalizeSort(&r.Sort)
}

// Document is a search over HR documents.
type Document struct {
	Filter filter.Document  `json:"filter"`
	Sort   order.Descriptor `json:"sort"`
}

// Validate checks the filter ranges and normalizes the sort direction.
func (r *Document) Validate() error {
	if err := r.Filter.Validate(); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	return normalizeSort(&r.Sort)
}

// Review is a search over performance reviews.
type Review struct {
	Filter filter.Review    `json:"filter"`
	Sort   order.Descriptor `json:"sort"`
}

// Validate checks the filter ranges and normalizes the sort direction.
func (r *Review) Validate() error {
	if err := r.Filter.Validate(); err != nil {
		return fmt.Errorf("filter: %w", err)
	}
	return normalizeSort(&r.Sort)
}

func normalizeSort(s *order.Descriptor) error {
	n, err := s.Normalize()
	if err != nil {
		return fmt.Errorf("sort: %w", err)
	}
	*s = n
	return nil
}
