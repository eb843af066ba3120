package record

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"cloud.google.com/go/civil"
	"github.com/go-playground/validator/v10"

	"github.com/kailas-cloud/roster/internal/domain"
	"github.com/kailas-cloud/roster/internal/domain/employee"
	"github.com/kailas-cloud/roster/internal/domain/hrdoc"
)

// Validator checks records against their struct tags and cross-field rules.
// Field names in errors are JSON paths, e.g. "employment.status".
type Validator struct {
	v *validator.Validate
}

// NewValidator creates a Validator with the record rules registered.
func NewValidator() *Validator {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	v.RegisterStructValidation(employeeRules, employee.Employee{})
	v.RegisterStructValidation(documentRules, hrdoc.Document{})
	return &Validator{v: v}
}

// Check validates rec. Field failures come back as *domain.ValidationError.
func (v *Validator) Check(rec any) error {
	err := v.v.Struct(rec)
	if err == nil {
		return nil
	}
	var ves validator.ValidationErrors
	if !errors.As(err, &ves) {
		return fmt.Errorf("validate: %w", err)
	}
	fields := make([]domain.FieldError, 0, len(ves))
	for _, fe := range ves {
		fields = append(fields, domain.FieldError{Field: fieldPath(fe), Message: message(fe)})
	}
	return domain.NewValidationError(fields...)
}

func employeeRules(sl validator.StructLevel) {
	e, ok := sl.Current().Interface().(employee.Employee)
	if !ok {
		return
	}
	if e.Employment.ManagerID != "" && e.Employment.ManagerID == e.ID {
		sl.ReportError(e.Employment.ManagerID, "employment.managerId", "ManagerID", "notself", "")
	}
	if !e.Employment.HireDate.IsZero() && !e.Employment.HireDate.IsValid() {
		sl.ReportError(e.Employment.HireDate, "employment.hireDate", "HireDate", "date", "")
	}
}

func documentRules(sl validator.StructLevel) {
	d, ok := sl.Current().Interface().(hrdoc.Document)
	if !ok || d.ExpiresOn.IsZero() || d.UploadedAt.IsZero() {
		return
	}
	if !d.ExpiresOn.IsValid() {
		sl.ReportError(d.ExpiresOn, "expiresOn", "ExpiresOn", "date", "")
		return
	}
	if d.ExpiresOn.Before(civil.DateOf(d.UploadedAt)) {
		sl.ReportError(d.ExpiresOn, "expiresOn", "ExpiresOn", "afterupload", "")
	}
}

// fieldPath drops the Go type name from the namespace: "Employee.employment.status" -> "employment.status".
func fieldPath(fe validator.FieldError) string {
	_, path, found := strings.Cut(fe.Namespace(), ".")
	if !found {
		return fe.Field()
	}
	return path
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "url":
		return "must be a valid URL"
	case "oneof":
		return "must be one of: " + strings.ReplaceAll(fe.Param(), " ", ", ")
	case "max":
		return "must be at most " + fe.Param() + lengthUnit(fe)
	case "len":
		return "must be exactly " + fe.Param() + lengthUnit(fe)
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "must be at most " + fe.Param()
	case "ltefield":
		return "must not exceed " + fe.Param()
	case "notself":
		return "must not reference the record itself"
	case "date":
		return "must be a valid calendar date"
	case "afterupload":
		return "must not precede the upload date"
	default:
		return "failed " + fe.Tag() + " check"
	}
}

func lengthUnit(fe validator.FieldError) string {
	switch fe.Kind() {
	case reflect.String:
		return " characters"
	case reflect.Slice, reflect.Map:
		return " items"
	default:
		return ""
	}
}
