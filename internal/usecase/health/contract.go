package health

import "context"

// DBPinger checks database availability.
type DBPinger interface {
	Ping(ctx context.Context) error
}

// Checker is an optional dependency probe, e.g. the seed data source.
type Checker interface {
	Name() string
	HealthCheck(ctx context.Context) error
}
