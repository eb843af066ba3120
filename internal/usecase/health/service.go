package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates an optional component is failing.
	Degraded Status = "degraded"
	// Unhealthy indicates the database is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

const databaseCheck = "database"

// Report aggregates health check results.
type Report struct {
	Status Status                 `json:"status"`
	Checks map[string]CheckResult `json:"checks"`
}

// Service coordinates health checks.
type Service struct {
	db     DBPinger
	extras []Checker
}

// New creates a Service. extras are reported but only degrade the status.
func New(db DBPinger, extras ...Checker) *Service {
	return &Service{db: db, extras: extras}
}

// Check runs health checks against all components.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, 1+len(s.extras))

	status := Healthy
	checks[databaseCheck] = CheckOK
	if err := s.db.Ping(ctx); err != nil {
		checks[databaseCheck] = CheckError
		status = Unhealthy
	}

	for _, c := range s.extras {
		if err := c.HealthCheck(ctx); err != nil {
			checks[c.Name()] = CheckError
			if status == Healthy {
				status = Degraded
			}
			continue
		}
		checks[c.Name()] = CheckOK
	}

	return Report{Status: status, Checks: checks}
}
