package roster

import (
	"context"
	"fmt"

	batchuc "github.com/kailas-cloud/roster/internal/usecase/batch"
	recorduc "github.com/kailas-cloud/roster/internal/usecase/record"
)

// Records manages stored records of one kind.
type Records[T any] struct {
	svc   *recorduc.Service[T]
	batch *batchuc.Service[T]
}

// Upsert validates and stores rec, assigning an id when it has none.
// Returns true if the record was created.
func (r *Records[T]) Upsert(ctx context.Context, rec *T) (bool, error) {
	created, err := r.svc.Upsert(ctx, rec)
	if err != nil {
		return false, fmt.Errorf("upsert: %w", err)
	}
	return created, nil
}

// Put stores rec under id, overriding any id it carries.
func (r *Records[T]) Put(ctx context.Context, id string, rec *T) (bool, error) {
	created, err := r.svc.Put(ctx, id, rec)
	if err != nil {
		return false, fmt.Errorf("put: %w", err)
	}
	return created, nil
}

// Get retrieves a record by id.
func (r *Records[T]) Get(ctx context.Context, id string) (T, error) {
	rec, err := r.svc.Get(ctx, id)
	if err != nil {
		return rec, fmt.Errorf("get: %w", err)
	}
	return rec, nil
}

// Delete removes a record by id.
func (r *Records[T]) Delete(ctx context.Context, id string) error {
	if err := r.svc.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}

// List returns every stored record ordered by id.
func (r *Records[T]) List(ctx context.Context) ([]T, error) {
	recs, err := r.svc.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list: %w", err)
	}
	return recs, nil
}

// UpsertBatch stores items, reporting each outcome. Invalid items do not block the rest.
func (r *Records[T]) UpsertBatch(ctx context.Context, items []T) ([]BatchResult, error) {
	res, err := r.batch.Upsert(ctx, items)
	if err != nil {
		return nil, fmt.Errorf("batch upsert: %w", err)
	}
	return res, nil
}

// DeleteBatch removes records by id, reporting each outcome.
func (r *Records[T]) DeleteBatch(ctx context.Context, ids []string) ([]BatchResult, error) {
	res, err := r.batch.Delete(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("batch delete: %w", err)
	}
	return res, nil
}
