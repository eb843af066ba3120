package db

import (
	"context"
	"time"
)

// Store is the database facade used by the service.
type Store interface {
	Pinger
	KVStore
	Close()
	WaitForReady(ctx context.Context, timeout time.Duration) error
}

// Pinger checks database connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

// SetItem holds a single key+value pair for pipelined SET.
type SetItem struct {
	Key   string
	Value []byte
}

// KVStore provides plain string key-value operations.
type KVStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	// GetMulti returns one entry per key; missing keys yield nil.
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMulti(ctx context.Context, items []SetItem) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}
