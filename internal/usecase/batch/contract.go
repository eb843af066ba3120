package batch

import "context"

// BulkUpserter stores many records in one round-trip.
type BulkUpserter[T any] interface {
	UpsertMany(ctx context.Context, recs []T) error
}

// Deleter deletes a record by id.
type Deleter interface {
	Delete(ctx context.Context, id string) error
}

// Preparer assigns a missing id and validates a record before it is stored.
type Preparer[T any] interface {
	Prepare(rec *T) error
}
