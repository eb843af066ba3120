// Package fixture reads YAML seed files holding employees, documents and reviews.
package fixture

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/kailas-cloud/roster/internal/domain/employee"
	"github.com/kailas-cloud/roster/internal/domain/hrdoc"
	"github.com/kailas-cloud/roster/internal/domain/review"
)

// Set is the content of one seed file.
type Set struct {
	Employees []employee.Employee `yaml:"employees"`
	Documents []hrdoc.Document    `yaml:"documents"`
	Reviews   []review.Review     `yaml:"reviews"`
}

// Len returns the total number of records in the set.
func (s *Set) Len() int {
	return len(s.Employees) + len(s.Documents) + len(s.Reviews)
}

// Load reads and parses a seed file.
func Load(path string) (Set, error) {
	data, err := os.ReadFile(filepath.Clean(path))
	if err != nil {
		return Set{}, fmt.Errorf("failed to read fixture %s: %w", path, err)
	}
	set, err := Parse(data)
	if err != nil {
		return Set{}, fmt.Errorf("fixture %s: %w", path, err)
	}
	return set, nil
}

// Parse decodes seed YAML. Unknown keys are rejected so typos surface early.
func Parse(data []byte) (Set, error) {
	var set Set
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&set); err != nil && !errors.Is(err, io.EOF) {
		return Set{}, fmt.Errorf("failed to parse fixture: %w", err)
	}
	if set.Employees == nil {
		set.Employees = []employee.Employee{}
	}
	if set.Documents == nil {
		set.Documents = []hrdoc.Document{}
	}
	if set.Reviews == nil {
		set.Reviews = []review.Review{}
	}
	return set, nil
}
