// Package memory is an in-process db.Store for the query command, local runs and tests.
package memory

import (
	"context"
	"path"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/kailas-cloud/roster/internal/db"
)

// Compile-time check: Store implements db.Store.
var _ db.Store = (*Store)(nil)

// Store keeps values in a map guarded by a RWMutex. Values are copied on the way in and out.
type Store struct {
	mu   sync.RWMutex
	data map[string][]byte
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{data: make(map[string][]byte)}
}

// Ping always succeeds.
func (s *Store) Ping(_ context.Context) error { return nil }

// Close is a no-op.
func (s *Store) Close() {}

// WaitForReady returns immediately.
func (s *Store) WaitForReady(_ context.Context, _ time.Duration) error { return nil }

// Get retrieves a value by key.
func (s *Store) Get(_ context.Context, key string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return slices.Clone(v), nil
}

// GetMulti returns one entry per key; missing keys yield nil.
func (s *Store) GetMulti(_ context.Context, keys []string) ([][]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([][]byte, len(keys))
	for i, k := range keys {
		if v, ok := s.data[k]; ok {
			out[i] = slices.Clone(v)
		}
	}
	return out, nil
}

// Set stores a value at the given key.
func (s *Store) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = slices.Clone(value)
	return nil
}

// SetMulti stores every item under one lock.
func (s *Store) SetMulti(_ context.Context, items []db.SetItem) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, it := range items {
		s.data[it.Key] = slices.Clone(it.Value)
	}
	return nil
}

// Del deletes a key. Deleting a missing key is not an error.
func (s *Store) Del(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
	return nil
}

// Exists checks if a key exists.
func (s *Store) Exists(_ context.Context, key string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.data[key]
	return ok, nil
}

// Scan returns the keys matching a glob pattern in lexical order.
// A trailing "*" with no other wildcard is a plain prefix match, so ids may contain "/".
func (s *Store) Scan(_ context.Context, pattern string) ([]string, error) {
	match, err := matcher(pattern)
	if err != nil {
		return nil, &db.Error{Op: db.OpScan, Err: err}
	}

	s.mu.RLock()
	defer s.mu.RUnlock()
	keys := make([]string, 0, len(s.data))
	for k := range s.data {
		if match(k) {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys, nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

func matcher(pattern string) (func(string) bool, error) {
	prefix, isPrefix := strings.CutSuffix(pattern, "*")
	if isPrefix && !strings.ContainsAny(prefix, `*?[\`) {
		return func(k string) bool { return strings.HasPrefix(k, prefix) }, nil
	}
	if _, err := path.Match(pattern, ""); err != nil {
		return nil, err
	}
	return func(k string) bool {
		ok, _ := path.Match(pattern, k)
		return ok
	}, nil
}
