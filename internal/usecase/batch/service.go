// Package batch imports and deletes records in bulk with per-item error reporting.
package batch

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/kailas-cloud/roster/internal/domain"
	dombatch "github.com/kailas-cloud/roster/internal/domain/batch"
	"github.com/kailas-cloud/roster/internal/logger"
)

// MaxBatchSize is the default maximum number of items per batch request.
const MaxBatchSize = 500

// Service handles batch operations for one record kind.
type Service[T any] struct {
	kind         string
	id           func(*T) string
	prep         Preparer[T]
	bulk         BulkUpserter[T]
	del          Deleter
	maxBatchSize int
}

// New creates a batch service. id reads a record's identifier after preparation.
func New[T any](kind string, id func(*T) string, prep Preparer[T], bulk BulkUpserter[T], del Deleter) *Service[T] {
	return &Service[T]{
		kind: kind, id: id,
		prep: prep, bulk: bulk, del: del,
		maxBatchSize: MaxBatchSize,
	}
}

// WithMaxBatchSize configures the maximum batch size.
func (s *Service[T]) WithMaxBatchSize(size int) *Service[T] {
	if size > 0 {
		s.maxBatchSize = size
	}
	return s
}

// MaxBatchSize returns the configured limit.
func (s *Service[T]) MaxBatchSize() int { return s.maxBatchSize }

// Upsert validates every item and stores the valid ones in a single bulk write.
// Invalid items are reported individually and do not block the rest.
// A store failure marks every valid item as failed.
func (s *Service[T]) Upsert(ctx context.Context, items []T) ([]dombatch.Result, error) {
	if err := s.checkSize(len(items)); err != nil {
		return nil, err
	}

	results := make([]dombatch.Result, len(items))
	valid := make([]T, 0, len(items))
	validIdx := make([]int, 0, len(items))

	for i := range items {
		if err := s.prep.Prepare(&items[i]); err != nil {
			results[i] = dombatch.NewError(i, s.id(&items[i]), err)
			continue
		}
		valid = append(valid, items[i])
		validIdx = append(validIdx, i)
	}

	if len(valid) > 0 {
		if err := s.bulk.UpsertMany(ctx, valid); err != nil {
			for _, i := range validIdx {
				results[i] = dombatch.NewError(i, s.id(&items[i]), fmt.Errorf("bulk upsert: %w", err))
			}
		} else {
			for _, i := range validIdx {
				results[i] = dombatch.NewOK(i, s.id(&items[i]))
			}
		}
	}

	s.log(ctx, "batch upsert", results)
	return results, nil
}

// Delete removes records by id, reporting each outcome.
func (s *Service[T]) Delete(ctx context.Context, ids []string) ([]dombatch.Result, error) {
	if err := s.checkSize(len(ids)); err != nil {
		return nil, err
	}

	results := make([]dombatch.Result, len(ids))
	for i, id := range ids {
		if err := s.del.Delete(ctx, id); err != nil {
			results[i] = dombatch.NewError(i, id, fmt.Errorf("delete: %w", err))
			continue
		}
		results[i] = dombatch.NewOK(i, id)
	}

	s.log(ctx, "batch delete", results)
	return results, nil
}

func (s *Service[T]) checkSize(n int) error {
	if n > s.maxBatchSize {
		return fmt.Errorf("%d %s items exceed limit %d: %w", n, s.kind, s.maxBatchSize, domain.ErrBatchTooLarge)
	}
	return nil
}

func (s *Service[T]) log(ctx context.Context, msg string, results []dombatch.Result) {
	sum := dombatch.Summarize(results)
	logger.FromContext(ctx).Info(msg,
		zap.String("kind", s.kind),
		zap.Int("succeeded", sum.Succeeded),
		zap.Int("failed", sum.Failed),
	)
}
