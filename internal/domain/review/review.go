// Package review holds performance review records.
package review

import "cloud.google.com/go/civil"

// Type is the review cycle kind.
type Type string

// Review types.
const (
	TypeAnnual    Type = "annual"
	TypeQuarterly Type = "quarterly"
	TypeProbation Type = "probation"
	TypeProject   Type = "project"
)

// Status is the workflow state of a review.
type Status string

// Review statuses.
const (
	StatusDraft      Status = "draft"
	StatusInProgress Status = "in_progress"
	StatusSubmitted  Status = "submitted"
	StatusCompleted  Status = "completed"
)

// Score bounds for a single criterion.
const (
	MinScore = 1
	MaxScore = 5
)

// Review is one performance review of an employee.
type Review struct {
	ID           string      `json:"id" yaml:"id" validate:"required,max=64"`
	EmployeeID   string      `json:"employeeId" yaml:"employeeId" validate:"required"`
	EmployeeName string      `json:"employeeName" yaml:"employeeName"`
	ReviewerID   string      `json:"reviewerId,omitempty" yaml:"reviewerId"`
	ReviewerName string      `json:"reviewerName,omitempty" yaml:"reviewerName"`
	Type         Type        `json:"type,omitempty" yaml:"type" validate:"omitempty,oneof=annual quarterly probation project"`
	Status       Status      `json:"status,omitempty" yaml:"status" validate:"omitempty,oneof=draft in_progress submitted completed"`
	Period       string      `json:"period,omitempty" yaml:"period"`
	DueDate      civil.Date  `json:"dueDate,omitzero" yaml:"dueDate"`
	Criteria     []Criterion `json:"criteria,omitempty" yaml:"criteria" validate:"dive"`
}

// Criterion is a weighted rating on one competency.
type Criterion struct {
	Name   string  `json:"name" yaml:"name" validate:"required"`
	Weight float64 `json:"weight" yaml:"weight" validate:"gte=0"`
	Score  float64 `json:"score" yaml:"score" validate:"gte=0,lte=5"`
}

// WeightedScore returns Σ(weight·score)/Σweight, or 0 when no weight is assigned.
func (r *Review) WeightedScore() float64 {
	var sum, weights float64
	for _, c := range r.Criteria {
		sum += c.Weight * c.Score
		weights += c.Weight
	}
	if weights <= 0 {
		return 0
	}
	return sum / weights
}
