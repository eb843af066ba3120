package record

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"slices"

	"github.com/kailas-cloud/roster/internal/db"
	"github.com/kailas-cloud/roster/internal/domain"
)

// store is the consumer interface for record storage (ISP).
type store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	GetMulti(ctx context.Context, keys []string) ([][]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	SetMulti(ctx context.Context, items []db.SetItem) error
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
	Scan(ctx context.Context, pattern string) ([]string, error)
}

// Repo stores records of one kind as JSON strings at <prefix><kind>:<id>.
type Repo[T any] struct {
	store  store
	prefix string
	kind   Kind[T]
}

// New creates a repository for kind under the given key prefix.
func New[T any](s store, prefix string, kind Kind[T]) *Repo[T] {
	return &Repo[T]{store: s, prefix: prefix, kind: kind}
}

// Kind returns the record kind served by the repository.
func (r *Repo[T]) Kind() Kind[T] { return r.kind }

// Upsert creates or updates a record. Returns true if created.
func (r *Repo[T]) Upsert(ctx context.Context, rec *T) (bool, error) {
	key := r.key(r.kind.ID(rec))
	data, err := json.Marshal(rec)
	if err != nil {
		return false, fmt.Errorf("marshal %s: %w", r.kind.Name, err)
	}

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return false, fmt.Errorf("check exists %s: %w", key, err)
	}

	if err := r.store.Set(ctx, key, data); err != nil {
		return false, fmt.Errorf("set %s: %w", key, err)
	}

	return !exists, nil
}

// UpsertMany stores records in one pipelined round-trip.
func (r *Repo[T]) UpsertMany(ctx context.Context, recs []T) error {
	items := make([]db.SetItem, 0, len(recs))
	for i := range recs {
		data, err := json.Marshal(&recs[i])
		if err != nil {
			return fmt.Errorf("marshal %s %s: %w", r.kind.Name, r.kind.ID(&recs[i]), err)
		}
		items = append(items, db.SetItem{Key: r.key(r.kind.ID(&recs[i])), Value: data})
	}
	if err := r.store.SetMulti(ctx, items); err != nil {
		return fmt.Errorf("set %d %s records: %w", len(items), r.kind.Name, err)
	}
	return nil
}

// Get returns a record by id.
func (r *Repo[T]) Get(ctx context.Context, id string) (T, error) {
	var rec T
	key := r.key(id)
	data, err := r.store.Get(ctx, key)
	if err != nil {
		if errors.Is(err, db.ErrKeyNotFound) {
			return rec, fmt.Errorf("%s %q: %w", r.kind.Name, id, domain.ErrNotFound)
		}
		return rec, fmt.Errorf("get %s: %w", key, err)
	}
	if err := json.Unmarshal(data, &rec); err != nil {
		return rec, fmt.Errorf("unmarshal %s: %w", key, err)
	}
	return rec, nil
}

// Delete removes a record.
func (r *Repo[T]) Delete(ctx context.Context, id string) error {
	key := r.key(id)

	exists, err := r.store.Exists(ctx, key)
	if err != nil {
		return fmt.Errorf("check exists %s: %w", key, err)
	}
	if !exists {
		return fmt.Errorf("%s %q: %w", r.kind.Name, id, domain.ErrNotFound)
	}

	if err := r.store.Del(ctx, key); err != nil {
		return fmt.Errorf("del %s: %w", key, err)
	}
	return nil
}

// ListAll returns every stored record of the kind, ordered by key.
// Records removed between SCAN and GET are skipped.
func (r *Repo[T]) ListAll(ctx context.Context) ([]T, error) {
	keys, err := r.store.Scan(ctx, r.prefix+r.kind.Name+":*")
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", r.kind.Name, err)
	}
	if len(keys) == 0 {
		return []T{}, nil
	}
	slices.Sort(keys)

	values, err := r.store.GetMulti(ctx, keys)
	if err != nil {
		return nil, fmt.Errorf("load %s records: %w", r.kind.Name, err)
	}

	out := make([]T, 0, len(values))
	for i, data := range values {
		if data == nil {
			continue
		}
		var rec T
		if err := json.Unmarshal(data, &rec); err != nil {
			return nil, fmt.Errorf("unmarshal %s: %w", keys[i], err)
		}
		out = append(out, rec)
	}
	return out, nil
}

func (r *Repo[T]) key(id string) string {
	return r.prefix + r.kind.Name + ":" + id
}
