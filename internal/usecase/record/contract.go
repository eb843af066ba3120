package record

import "context"

// Repository defines the storage contract for one record kind.
type Repository[T any] interface {
	Upsert(ctx context.Context, rec *T) (created bool, err error)
	Get(ctx context.Context, id string) (T, error)
	Delete(ctx context.Context, id string) error
	ListAll(ctx context.Context) ([]T, error)
}
