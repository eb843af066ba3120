// Package export renders employee search results as downloadable files.
package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/parquet-go/parquet-go"
	"github.com/xuri/excelize/v2"

	"github.com/kailas-cloud/roster/internal/domain"
	"github.com/kailas-cloud/roster/internal/domain/employee"
	"github.com/kailas-cloud/roster/internal/metrics"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	CSV     Format = "csv"
	XLSX    Format = "xlsx"
	Parquet Format = "parquet"
)

// SheetName is the worksheet that holds XLSX rows.
const SheetName = "Employees"

// ParseFormat accepts a format name case-insensitively. Empty input yields CSV.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return CSV, nil
	case CSV, XLSX, Parquet:
		return f, nil
	default:
		return "", fmt.Errorf("%w: unsupported export format %q", domain.ErrInvalidDescriptor, s)
	}
}

// ContentType returns the MIME type served for the format.
func (f Format) ContentType() string {
	switch f {
	case XLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	case Parquet:
		return "application/vnd.apache.parquet"
	default:
		return "text/csv; charset=utf-8"
	}
}

// Filename returns a download name with the format's extension.
func (f Format) Filename(base string) string {
	return base + "." + string(f)
}

// Row is the flat, columnar shape of one exported employee.
type Row struct {
	ID             string  `parquet:"id"`
	EmployeeNumber string  `parquet:"employee_number"`
	FirstName      string  `parquet:"first_name"`
	LastName       string  `parquet:"last_name"`
	Email          string  `parquet:"email"`
	Phone          string  `parquet:"phone"`
	Department     string  `parquet:"department"`
	Position       string  `parquet:"position"`
	Status         string  `parquet:"status"`
	EmploymentType string  `parquet:"employment_type"`
	WorkLocation   string  `parquet:"work_location"`
	City           string  `parquet:"city"`
	Country        string  `parquet:"country"`
	HireDate       string  `parquet:"hire_date"`
	Salary         float64 `parquet:"salary"`
	Currency       string  `parquet:"currency"`
	AttendanceRate float64 `parquet:"attendance_rate"`
	OvertimeHours  float64 `parquet:"overtime_hours"`
	ManagerID      string  `parquet:"manager_id"`
}

// Header lists the CSV and XLSX column titles in Row field order.
var Header = []string{
	"id", "employee_number", "first_name", "last_name", "email", "phone",
	"department", "position", "status", "employment_type", "work_location",
	"city", "country", "hire_date", "salary", "currency",
	"attendance_rate", "overtime_hours", "manager_id",
}

// RowOf flattens an employee. A missing hire date exports as an empty string.
func RowOf(e *employee.Employee) Row {
	hire := ""
	if !e.Employment.HireDate.IsZero() {
		hire = e.Employment.HireDate.String()
	}
	return Row{
		ID:             e.ID,
		EmployeeNumber: e.EmployeeNumber,
		FirstName:      e.FirstName,
		LastName:       e.LastName,
		Email:          e.Email,
		Phone:          e.Phone,
		Department:     e.Employment.Department,
		Position:       e.Employment.Position,
		Status:         string(e.Employment.Status),
		EmploymentType: string(e.Employment.EmploymentType),
		WorkLocation:   string(e.Employment.WorkLocation),
		City:           e.Address.City,
		Country:        e.Address.Country,
		HireDate:       hire,
		Salary:         e.Salary.Amount,
		Currency:       e.Salary.Currency,
		AttendanceRate: e.AttendanceRate(),
		OvertimeHours:  e.Attendance.OvertimeHours,
		ManagerID:      e.Employment.ManagerID,
	}
}

func (r *Row) cells() []any {
	return []any{
		r.ID, r.EmployeeNumber, r.FirstName, r.LastName, r.Email, r.Phone,
		r.Department, r.Position, r.Status, r.EmploymentType, r.WorkLocation,
		r.City, r.Country, r.HireDate, r.Salary, r.Currency,
		r.AttendanceRate, r.OvertimeHours, r.ManagerID,
	}
}

func (r *Row) strings() []string {
	cells := r.cells()
	out := make([]string, len(cells))
	for i, c := range cells {
		switch v := c.(type) {
		case string:
			out[i] = v
		case float64:
			out[i] = strconv.FormatFloat(v, 'f', -1, 64)
		}
	}
	return out
}

// Employees writes recs to w in the given format, preserving their order.
func Employees(w io.Writer, f Format, recs []employee.Employee) error {
	rows := make([]Row, len(recs))
	for i := range recs {
		rows[i] = RowOf(&recs[i])
	}

	var err error
	switch f {
	case CSV:
		err = writeCSV(w, rows)
	case XLSX:
		err = writeXLSX(w, rows)
	case Parquet:
		err = parquet.Write(w, rows)
	default:
		return fmt.Errorf("%w: unsupported export format %q", domain.ErrInvalidDescriptor, f)
	}
	if err != nil {
		return fmt.Errorf("export %s: %w", f, err)
	}

	metrics.ExportRowsTotal.WithLabelValues(string(f)).Add(float64(len(rows)))
	return nil
}

func writeCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for i := range rows {
		if err := cw.Write(rows[i].strings()); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func writeXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	sw, err := f.NewStreamWriter(SheetName)
	if err != nil {
		return fmt.Errorf("stream writer: %w", err)
	}

	head := make([]any, len(Header))
	for i, h := range Header {
		head[i] = h
	}
	if err := sw.SetRow("A1", head); err != nil {
		return err
	}
	for i := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := sw.SetRow(cell, rows[i].cells()); err != nil {
			return err
		}
	}
	if err := sw.Flush(); err != nil {
		return fmt.Errorf("flush sheet: %w", err)
	}
	_, err = f.WriteTo(w)
	return err
}
