package roster

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/kailas-cloud/roster/internal/db"
	"github.com/kailas-cloud/roster/internal/db/memory"
	dbRedis "github.com/kailas-cloud/roster/internal/db/redis"
	reporecord "github.com/kailas-cloud/roster/internal/repository/record"
	batchuc "github.com/kailas-cloud/roster/internal/usecase/batch"
	recorduc "github.com/kailas-cloud/roster/internal/usecase/record"
	searchuc "github.com/kailas-cloud/roster/internal/usecase/search"
)

const (
	defaultReadinessTimeout = 10 * time.Second
	defaultKeyPrefix        = "roster:"
)

// Client is the storage-backed roster entry point.
type Client struct {
	store     db.Store
	employees *Records[Employee]
	documents *Records[Document]
	reviews   *Records[Review]
	searchSvc *searchuc.Service
}

// New creates a Client and connects to the database.
func New(opts ...Option) (*Client, error) {
	cfg := &clientConfig{keyPrefix: defaultKeyPrefix}
	for _, o := range opts {
		o.apply(cfg)
	}

	if cfg.driver != "memory" && len(cfg.addrs) == 0 {
		return nil, errors.New("roster: database address required (use WithValkey, WithRedis or WithMemory)")
	}

	store, err := createStore(cfg)
	if err != nil {
		return nil, err
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("roster: database not ready: %w", err)
	}

	return wireClient(store, cfg), nil
}

func createStore(cfg *clientConfig) (db.Store, error) {
	switch cfg.driver {
	case "memory":
		return memory.NewStore(), nil
	case "valkey", "redis":
		s, err := dbRedis.NewStore(dbRedis.Config{
			Addrs:    cfg.addrs,
			Password: cfg.password,
			DB:       cfg.db,
		})
		if err != nil {
			return nil, fmt.Errorf("roster: create %s store: %w", cfg.driver, err)
		}
		return s, nil
	default:
		return nil, fmt.Errorf("roster: unknown driver %q", cfg.driver)
	}
}

func wireClient(store db.Store, cfg *clientConfig) *Client {
	empRepo := reporecord.New(store, cfg.keyPrefix, reporecord.Employees)
	docRepo := reporecord.New(store, cfg.keyPrefix, reporecord.Documents)
	revRepo := reporecord.New(store, cfg.keyPrefix, reporecord.Reviews)

	check := recorduc.NewValidator()
	return &Client{
		store:     store,
		employees: newRecords(empRepo, reporecord.Employees, check, cfg.maxBatchSize),
		documents: newRecords(docRepo, reporecord.Documents, check, cfg.maxBatchSize),
		reviews:   newRecords(revRepo, reporecord.Reviews, check, cfg.maxBatchSize),
		searchSvc: searchuc.New(empRepo, docRepo, revRepo).WithStrictSort(cfg.strictSort),
	}
}

func newRecords[T any](
	repo *reporecord.Repo[T], kind reporecord.Kind[T], check *recorduc.Validator, maxBatch int,
) *Records[T] {
	svc := recorduc.New(repo, recorduc.Identity[T](kind), check)
	return &Records[T]{
		svc:   svc,
		batch: batchuc.New(kind.Name, kind.ID, svc, repo, repo).WithMaxBatchSize(maxBatch),
	}
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) error {
	if err := c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Employees returns the employee record service.
func (c *Client) Employees() *Records[Employee] { return c.employees }

// Documents returns the HR document record service.
func (c *Client) Documents() *Records[Document] { return c.documents }

// Reviews returns the performance review record service.
func (c *Client) Reviews() *Records[Review] { return c.reviews }

// Search returns the search service over the stored records.
func (c *Client) Search() *SearchService {
	return &SearchService{svc: c.searchSvc}
}
