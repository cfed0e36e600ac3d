package health

import "context"

// Status represents the aggregated health status.
type Status string

const (
	// Healthy indicates all components are operational.
	Healthy Status = "ok"
	// Degraded indicates the store is up but some collection index is missing.
	Degraded Status = "degraded"
	// Unhealthy indicates the store is unreachable.
	Unhealthy Status = "error"
)

// CheckResult represents an individual component health check outcome.
type CheckResult string

const (
	// CheckOK indicates a passing health check.
	CheckOK CheckResult = "ok"
	// CheckMissing indicates an absent collection index.
	CheckMissing CheckResult = "missing"
	// CheckError indicates a failing health check.
	CheckError CheckResult = "error"
)

// Report aggregates health check results.
type Report struct {
	Status Status
	Checks map[string]CheckResult
}

// Service coordinates health checks.
type Service struct {
	db      DBPinger
	indexes IndexProber
	names   map[string]string // check name -> index name
}

// New creates a Service. indexes can be nil, in which case only the store is pinged.
// names maps a collection to its FT index name.
func New(db DBPinger, indexes IndexProber, names map[string]string) *Service {
	return &Service{db: db, indexes: indexes, names: names}
}

// Check pings the store, then probes every configured collection index.
func (s *Service) Check(ctx context.Context) Report {
	checks := make(map[string]CheckResult, len(s.names)+1)

	if err := s.db.Ping(ctx); err != nil {
		checks["database"] = CheckError
		return Report{Status: Unhealthy, Checks: checks}
	}
	checks["database"] = CheckOK

	status := Healthy
	if s.indexes == nil {
		return Report{Status: status, Checks: checks}
	}
	for collection, index := range s.names {
		key := "collection:" + collection
		ok, err := s.indexes.IndexExists(ctx, index)
		switch {
		case err != nil:
			checks[key] = CheckError
			status = Degraded
		case !ok:
			checks[key] = CheckMissing
			status = Degraded
		default:
			checks[key] = CheckOK
		}
	}

	return Report{Status: status, Checks: checks}
}
