// Package employee holds the employee record filtered by the search engine.
package employee

import (
	"strings"
	"unicode"

	"cloud.google.com/go/civil"
)

// Status is the employment status of an employee.
type Status string

// Employee status values.
const (
	StatusActive     Status = "active"
	StatusInactive   Status = "inactive"
	StatusOnLeave    Status = "on_leave"
	StatusTerminated Status = "terminated"
)

// EmploymentType is the contract kind of an employee.
type EmploymentType string

// Employment type values.
const (
	FullTime EmploymentType = "full_time"
	PartTime EmploymentType = "part_time"
	Contract EmploymentType = "contract"
	Intern   EmploymentType = "intern"
)

// WorkLocation is where an employee primarily works.
type WorkLocation string

// Work location values.
const (
	Office WorkLocation = "office"
	Remote WorkLocation = "remote"
	Hybrid WorkLocation = "hybrid"
)

// Employee is a flat employee profile with a few nested groups.
// The engine treats it as immutable.
type Employee struct {
	ID             string     `json:"id" yaml:"id" validate:"required,max=64"`
	EmployeeNumber string     `json:"employeeNumber,omitempty" yaml:"employeeNumber" validate:"max=32"`
	FirstName      string     `json:"firstName" yaml:"firstName" validate:"required,max=100"`
	LastName       string     `json:"lastName" yaml:"lastName" validate:"required,max=100"`
	Email          string     `json:"email,omitempty" yaml:"email" validate:"omitempty,email"`
	Phone          string     `json:"phone,omitempty" yaml:"phone" validate:"max=32"`
	Gender         string     `json:"gender,omitempty" yaml:"gender"`
	MaritalStatus  string     `json:"maritalStatus,omitempty" yaml:"maritalStatus"`
	AvatarURL      string     `json:"avatarUrl,omitempty" yaml:"avatarUrl" validate:"omitempty,url"`
	Address        Address    `json:"address" yaml:"address"`
	Employment     Employment `json:"employment" yaml:"employment"`
	Salary         Salary     `json:"salary" yaml:"salary"`
	Attendance     Attendance `json:"attendance" yaml:"attendance"`
}

// Address is the postal address of an employee.
type Address struct {
	Street     string `json:"street,omitempty" yaml:"street"`
	City       string `json:"city,omitempty" yaml:"city"`
	State      string `json:"state,omitempty" yaml:"state"`
	Country    string `json:"country,omitempty" yaml:"country"`
	PostalCode string `json:"postalCode,omitempty" yaml:"postalCode"`
}

// Employment holds position and reporting details.
type Employment struct {
	Position       string         `json:"position,omitempty" yaml:"position"`
	Department     string         `json:"department,omitempty" yaml:"department"`
	EmploymentType EmploymentType `json:"employmentType,omitempty" yaml:"employmentType" validate:"omitempty,oneof=full_time part_time contract intern"`
	WorkLocation   WorkLocation   `json:"workLocation,omitempty" yaml:"workLocation" validate:"omitempty,oneof=office remote hybrid"`
	Status         Status         `json:"status,omitempty" yaml:"status" validate:"omitempty,oneof=active inactive on_leave terminated"`
	HireDate       civil.Date     `json:"hireDate,omitzero" yaml:"hireDate"`
	ManagerID      string         `json:"managerId,omitempty" yaml:"managerId"`
}

// Salary is the base compensation of an employee.
type Salary struct {
	Amount       float64 `json:"amount" yaml:"amount" validate:"gte=0"`
	Currency     string  `json:"currency,omitempty" yaml:"currency" validate:"omitempty,len=3"`
	PayFrequency string  `json:"payFrequency,omitempty" yaml:"payFrequency"`
}

// Attendance summarizes time tracking over the current period.
type Attendance struct {
	ScheduledDays int     `json:"scheduledDays" yaml:"scheduledDays" validate:"gte=0"`
	PresentDays   int     `json:"presentDays" yaml:"presentDays" validate:"gte=0,ltefield=ScheduledDays"`
	LateDays      int     `json:"lateDays" yaml:"lateDays" validate:"gte=0"`
	OvertimeHours float64 `json:"overtimeHours" yaml:"overtimeHours" validate:"gte=0"`
}

// FullName returns "first last", trimmed when either part is empty.
func (e *Employee) FullName() string {
	return strings.TrimSpace(e.FirstName + " " + e.LastName)
}

// PhoneDigits returns only the digits of the phone number.
func (e *Employee) PhoneDigits() string {
	return digits(e.Phone)
}

// AttendanceRate returns present/scheduled days as a percentage (0 when nothing was scheduled).
func (e *Employee) AttendanceRate() float64 {
	return e.Attendance.Rate()
}

// Rate returns present/scheduled days as a percentage (0 when nothing was scheduled).
func (a Attendance) Rate() float64 {
	if a.ScheduledDays <= 0 {
		return 0
	}
	return float64(a.PresentDays) / float64(a.ScheduledDays) * 100
}

func digits(s string) string {
	var b strings.Builder
	for _, r := range s {
		if unicode.IsDigit(r) {
			b.WriteRune(r)
		}
	}
	return b.String()
}
