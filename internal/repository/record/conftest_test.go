package record

import (
	"context"
	"testing"

	"github.com/kailas-cloud/roster/internal/db"
	"github.com/kailas-cloud/roster/internal/domain/employee"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	getFn      func(ctx context.Context, key string) ([]byte, error)
	getMultiFn func(ctx context.Context, keys []string) ([][]byte, error)
	setFn      func(ctx context.Context, key string, value []byte) error
	setMultiFn func(ctx context.Context, items []db.SetItem) error
	delFn      func(ctx context.Context, key string) error
	existsFn   func(ctx context.Context, key string) (bool, error)
	scanFn     func(ctx context.Context, pattern string) ([]string, error)
}

func (m *mockStore) Get(ctx context.Context, key string) ([]byte, error) {
	if m.getFn != nil {
		return m.getFn(ctx, key)
	}
	return nil, db.ErrKeyNotFound
}

func (m *mockStore) GetMulti(ctx context.Context, keys []string) ([][]byte, error) {
	if m.getMultiFn != nil {
		return m.getMultiFn(ctx, keys)
	}
	return make([][]byte, len(keys)), nil
}

func (m *mockStore) Set(ctx context.Context, key string, value []byte) error {
	if m.setFn != nil {
		return m.setFn(ctx, key, value)
	}
	return nil
}

func (m *mockStore) SetMulti(ctx context.Context, items []db.SetItem) error {
	if m.setMultiFn != nil {
		return m.setMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) Del(ctx context.Context, key string) error {
	if m.delFn != nil {
		return m.delFn(ctx, key)
	}
	return nil
}

func (m *mockStore) Exists(ctx context.Context, key string) (bool, error) {
	if m.existsFn != nil {
		return m.existsFn(ctx, key)
	}
	return false, nil
}

func (m *mockStore) Scan(ctx context.Context, pattern string) ([]string, error) {
	if m.scanFn != nil {
		return m.scanFn(ctx, pattern)
	}
	return nil, nil
}

func newTestRepo(t *testing.T) (*Repo[employee.Employee], *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, "roster:", Employees), ms
}

func testEmployee(t *testing.T) employee.Employee {
	t.Helper()
	return employee.Employee{
		ID:        "e-1",
		FirstName: "Alice",
		LastName:  "Moss",
		Employment: employee.Employment{
			Department: "Engineering",
			Status:     employee.StatusActive,
		},
		Salary: employee.Salary{Amount: 100000, Currency: "EUR"},
	}
}
