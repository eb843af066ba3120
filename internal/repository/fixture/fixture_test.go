package fixture

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"cloud.google.com/go/civil"
)

const sample = `
employees:
  - id: e-1
    employeeNumber: EMP-0001
    firstName: Alice
    lastName: Moss
    email: alice@example.com
    address:
      city: Berlin
      country: DE
    employment:
      position: Engineer
      department: Engineering
      employmentType: full_time
      workLocation: remote
      status: active
      hireDate: 2019-04-01
    salary:
      amount: 100000
      currency: EUR
    attendance:
      scheduledDays: 20
      presentDays: 10
documents:
  - id: d-1
    title: Employment Contract
    category: contract
    status: approved
    ownerId: e-1
    sizeBytes: 120000
    uploadedAt: 2024-03-01T09:00:00Z
    expiresOn: 2026-03-01
    tags: [legal]
reviews:
  - id: r-1
    employeeId: e-1
    type: annual
    status: draft
    dueDate: 2024-12-15
    criteria:
      - name: delivery
        weight: 2
        score: 4
`

func TestParse(t *testing.T) {
	set, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", set.Len())
	}

	e := set.Employees[0]
	if e.FullName() != "Alice Moss" || e.Employment.Department != "Engineering" {
		t.Errorf("unexpected employee: %+v", e)
	}
	if want := (civil.Date{Year: 2019, Month: time.April, Day: 1}); e.Employment.HireDate != want {
		t.Errorf("HireDate = %v, want %v", e.Employment.HireDate, want)
	}
	if e.AttendanceRate() != 50 {
		t.Errorf("AttendanceRate() = %v", e.AttendanceRate())
	}

	d := set.Documents[0]
	if !d.UploadedAt.Equal(time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)) {
		t.Errorf("UploadedAt = %v", d.UploadedAt)
	}
	if d.ExpiresOn.String() != "2026-03-01" || len(d.Tags) != 1 {
		t.Errorf("unexpected document: %+v", d)
	}

	r := set.Reviews[0]
	if r.WeightedScore() != 4 || r.DueDate.String() != "2024-12-15" {
		t.Errorf("unexpected review: %+v", r)
	}
}

func TestParse_Empty(t *testing.T) {
	set, err := Parse(nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if set.Employees == nil || set.Documents == nil || set.Reviews == nil {
		t.Error("lists should be empty, not nil")
	}
}

func TestParse_UnknownField(t *testing.T) {
	_, err := Parse([]byte("employees:\n  - id: e-1\n    salry: 5\n"))
	if err == nil {
		t.Fatal("expected error for unknown field")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "seed.yaml")
	if err := os.WriteFile(path, []byte(sample), 0o600); err != nil {
		t.Fatal(err)
	}
	set, err := Load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(set.Employees) != 1 {
		t.Errorf("employees = %d", len(set.Employees))
	}

	_, err = Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err == nil || !strings.Contains(err.Error(), "missing.yaml") {
		t.Errorf("expected read error naming the file, got %v", err)
	}
}
