package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/roster/internal/config"
	"github.com/kailas-cloud/roster/internal/db"
	"github.com/kailas-cloud/roster/internal/db/memory"
	dbRedis "github.com/kailas-cloud/roster/internal/db/redis"
	dombatch "github.com/kailas-cloud/roster/internal/domain/batch"
	"github.com/kailas-cloud/roster/internal/domain/employee"
	"github.com/kailas-cloud/roster/internal/domain/hrdoc"
	"github.com/kailas-cloud/roster/internal/domain/review"
	"github.com/kailas-cloud/roster/internal/logger"
	"github.com/kailas-cloud/roster/internal/repository/fixture"
	reporecord "github.com/kailas-cloud/roster/internal/repository/record"
	chiTransport "github.com/kailas-cloud/roster/internal/transport/chi"
	batchuc "github.com/kailas-cloud/roster/internal/usecase/batch"
	healthuc "github.com/kailas-cloud/roster/internal/usecase/health"
	recorduc "github.com/kailas-cloud/roster/internal/usecase/record"
	searchuc "github.com/kailas-cloud/roster/internal/usecase/search"
)

// openStore creates the database store for the configured driver and waits for it.
func openStore(ctx context.Context, cfg config.DatabaseConfig) (db.Store, error) {
	var (
		store db.Store
		err   error
	)
	switch cfg.Driver {
	case config.DriverRedis, config.DriverValkey:
		store, err = dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.Addrs,
			Username: cfg.Username,
			Password: cfg.Password,
			DB:       cfg.DB,
		})
	case config.DriverMemory:
		store = memory.NewStore()
	default:
		return nil, fmt.Errorf("unknown database driver %q", cfg.Driver)
	}
	if err != nil {
		return nil, fmt.Errorf("create %s store: %w", cfg.Driver, err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	return store, nil
}

// newServices wires repositories and usecases over store.
func newServices(store db.Store, cfg config.Config, extras ...healthuc.Checker) chiTransport.Services {
	empRepo := reporecord.New(store, cfg.Storage.KeyPrefix, reporecord.Employees)
	docRepo := reporecord.New(store, cfg.Storage.KeyPrefix, reporecord.Documents)
	revRepo := reporecord.New(store, cfg.Storage.KeyPrefix, reporecord.Reviews)

	check := recorduc.NewValidator()
	employees := recorduc.New(empRepo, recorduc.Identity[employee.Employee](reporecord.Employees), check)
	documents := recorduc.New(docRepo, recorduc.Identity[hrdoc.Document](reporecord.Documents), check)
	reviews := recorduc.New(revRepo, recorduc.Identity[review.Review](reporecord.Reviews), check)

	maxBatch := cfg.Search.MaxBatchSize
	return chiTransport.Services{
		Employees: employees,
		Documents: documents,
		Reviews:   reviews,
		EmployeeBatch: batchuc.New(reporecord.Employees.Name, reporecord.Employees.ID, employees, empRepo, empRepo).
			WithMaxBatchSize(maxBatch),
		DocumentBatch: batchuc.New(reporecord.Documents.Name, reporecord.Documents.ID, documents, docRepo, docRepo).
			WithMaxBatchSize(maxBatch),
		ReviewBatch: batchuc.New(reporecord.Reviews.Name, reporecord.Reviews.ID, reviews, revRepo, revRepo).
			WithMaxBatchSize(maxBatch),
		Search: searchuc.New(empRepo, docRepo, revRepo).WithStrictSort(cfg.Search.Strict),
		Health: healthuc.New(store, extras...),
	}
}

// seedSummary counts seeded records per kind.
type seedSummary struct {
	Employees dombatch.Summary `json:"employees"`
	Documents dombatch.Summary `json:"documents"`
	Reviews   dombatch.Summary `json:"reviews"`
}

// Failed returns the number of records rejected across all kinds.
func (s seedSummary) Failed() int {
	return s.Employees.Failed + s.Documents.Failed + s.Reviews.Failed
}

// seed validates and stores every record of set through the batch usecases.
func seed(ctx context.Context, svc chiTransport.Services, set fixture.Set) (seedSummary, error) {
	var (
		sum seedSummary
		err error
	)
	if sum.Employees, err = importAll(ctx, svc.EmployeeBatch, set.Employees); err != nil {
		return sum, fmt.Errorf("seed employees: %w", err)
	}
	if sum.Documents, err = importAll(ctx, svc.DocumentBatch, set.Documents); err != nil {
		return sum, fmt.Errorf("seed documents: %w", err)
	}
	if sum.Reviews, err = importAll(ctx, svc.ReviewBatch, set.Reviews); err != nil {
		return sum, fmt.Errorf("seed reviews: %w", err)
	}
	return sum, nil
}

// importAll upserts items in chunks of the batch limit. Per-item failures are
// logged and counted, not returned.
func importAll[T any](ctx context.Context, svc *batchuc.Service[T], items []T) (dombatch.Summary, error) {
	var all []dombatch.Result
	for chunk := range slices.Chunk(items, svc.MaxBatchSize()) {
		res, err := svc.Upsert(ctx, chunk)
		if err != nil {
			return dombatch.Summary{}, err
		}
		offset := len(all)
		for _, r := range res {
			if r.Err() != nil {
				logger.FromContext(ctx).Warn("Seed record rejected",
					zap.Int("index", offset+r.Index()),
					zap.String("id", r.ID()),
					zap.Error(r.Err()),
				)
			}
		}
		all = append(all, res...)
	}
	return dombatch.Summarize(all), nil
}

// seedIfEmpty seeds from path when no employees are stored yet.
func seedIfEmpty(ctx context.Context, svc chiTransport.Services, path string) error {
	log := logger.FromContext(ctx)
	existing, err := svc.Employees.List(ctx)
	if err != nil {
		return fmt.Errorf("check existing employees: %w", err)
	}
	if len(existing) > 0 {
		log.Info("Seed skipped, store not empty", zap.Int("employees", len(existing)))
		return nil
	}

	set, err := fixture.Load(path)
	if err != nil {
		return err
	}
	sum, err := seed(ctx, svc, set)
	if err != nil {
		return err
	}
	log.Info("Seeded store",
		zap.String("file", path),
		zap.Int("employees", sum.Employees.Succeeded),
		zap.Int("documents", sum.Documents.Succeeded),
		zap.Int("reviews", sum.Reviews.Succeeded),
		zap.Int("rejected", sum.Failed()),
	)
	return nil
}

// seedChecker reports whether the seed file is still readable.
type seedChecker struct {
	path string
}

func (c seedChecker) Name() string { return "seed" }

func (c seedChecker) HealthCheck(_ context.Context) error {
	if _, err := fixture.Load(c.path); err != nil {
		return fmt.Errorf("seed health check: %w", err)
	}
	return nil
}
