// Package record implements create, read, update and delete for stored HR records.
package record

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/kailas-cloud/roster/internal/domain"
	"github.com/kailas-cloud/roster/internal/logger"
)

// Identity tells the service how to name a record kind and reach its id.
type Identity[T any] struct {
	Name  string
	ID    func(*T) string
	SetID func(*T, string)
}

// Service handles CRUD for one record kind with validation and id assignment.
type Service[T any] struct {
	repo  Repository[T]
	ident Identity[T]
	check *Validator
	newID func() string
}

// New creates a record service.
func New[T any](repo Repository[T], ident Identity[T], check *Validator) *Service[T] {
	return &Service[T]{repo: repo, ident: ident, check: check, newID: uuid.NewString}
}

// WithIDGenerator replaces the UUID generator used for records submitted without an id.
func (s *Service[T]) WithIDGenerator(f func() string) *Service[T] {
	if f != nil {
		s.newID = f
	}
	return s
}

// Kind returns the record kind name.
func (s *Service[T]) Kind() string { return s.ident.Name }

// Prepare assigns an id when missing and validates the record.
func (s *Service[T]) Prepare(rec *T) error {
	if s.ident.ID(rec) == "" {
		s.ident.SetID(rec, s.newID())
	}
	if err := s.check.Check(rec); err != nil {
		return fmt.Errorf("%s %s: %w", s.ident.Name, s.ident.ID(rec), err)
	}
	return nil
}

// Upsert validates and stores a record. Returns true if the record was created.
func (s *Service[T]) Upsert(ctx context.Context, rec *T) (bool, error) {
	if err := s.Prepare(rec); err != nil {
		return false, err
	}

	created, err := s.repo.Upsert(ctx, rec)
	if err != nil {
		return false, fmt.Errorf("upsert %s: %w", s.ident.Name, err)
	}

	logger.FromContext(ctx).Debug("record stored",
		zap.String("kind", s.ident.Name),
		zap.String("id", s.ident.ID(rec)),
		zap.Bool("created", created),
	)
	return created, nil
}

// Put stores rec under id. The path id overrides any id in the body.
func (s *Service[T]) Put(ctx context.Context, id string, rec *T) (bool, error) {
	if id == "" {
		return false, fmt.Errorf("%s: %w", s.ident.Name, domain.NewValidationError(
			domain.FieldError{Field: "id", Message: "is required"}))
	}
	s.ident.SetID(rec, id)
	return s.Upsert(ctx, rec)
}

// Get returns a record by id.
func (s *Service[T]) Get(ctx context.Context, id string) (T, error) {
	rec, err := s.repo.Get(ctx, id)
	if err != nil {
		return rec, fmt.Errorf("get %s: %w", s.ident.Name, err)
	}
	return rec, nil
}

// Delete removes a record by id.
func (s *Service[T]) Delete(ctx context.Context, id string) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete %s: %w", s.ident.Name, err)
	}
	return nil
}

// List returns every stored record of the kind in id order.
func (s *Service[T]) List(ctx context.Context) ([]T, error) {
	recs, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list %s: %w", s.ident.Name, err)
	}
	return recs, nil
}
