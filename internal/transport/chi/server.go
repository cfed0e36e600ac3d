// Package chi exposes query pipelines over HTTP with the chi router.
package chi

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"github.com/kailas-cloud/docq"
	healthuc "github.com/kailas-cloud/docq/internal/usecase/health"
	queryuc "github.com/kailas-cloud/docq/internal/usecase/query"
)

// QueryRunner runs fetches and single-record reads for a collection.
type QueryRunner interface {
	Run(ctx context.Context, collection string, req *queryuc.Request) ([]docq.Record, error)
	Get(ctx context.Context, collection, slug string) (docq.Record, error)
}

// HealthChecker reports store health.
type HealthChecker interface {
	Check(ctx context.Context) healthuc.Report
}

// RecordListResponse is the body of record routes. Window gaps are null items.
type RecordListResponse struct {
	Items []docq.Record `json:"items"`
	Count int           `json:"count"`
}

// HealthResponse is the body of GET /health.
type HealthResponse struct {
	Status healthuc.Status                 `json:"status"`
	Checks map[string]healthuc.CheckResult `json:"checks"`
}

// Server serves the record API.
type Server struct {
	query  QueryRunner
	health HealthChecker
}

// NewServer creates an HTTP API server.
func NewServer(query QueryRunner, health HealthChecker) *Server {
	return &Server{query: query, health: health}
}

// RouterOptions configure NewRouter.
type RouterOptions struct {
	APIKeys []string
	Logger  *zap.Logger
	// Middlewares run innermost, after auth.
	Middlewares []func(http.Handler) http.Handler
}

// NewRouter mounts the server routes behind the standard middleware chain.
func NewRouter(s *Server, opts RouterOptions) http.Handler {
	logger := opts.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	r := chi.NewRouter()
	r.Use(JSONRecoverer(logger))
	r.Use(chiMiddleware.RequestID)
	r.Use(WideEventMiddleware(logger))
	r.Use(BearerAuthMiddleware(opts.APIKeys))
	for _, mw := range opts.Middlewares {
		r.Use(mw)
	}

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusNotFound, CodeNotFound, "route not found")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, _ *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, CodeBadRequest, "method not allowed")
	})

	r.Get("/health", s.HealthCheck)
	r.Get("/metrics", s.Metrics)
	r.Route("/collections/{collection}/records", func(r chi.Router) {
		r.Get("/", s.ListRecords)
		r.Get("/{slug}", s.GetRecord)
		r.Get("/{slug}/surround", s.SurroundRecord)
	})
	return r
}

// ListRecords handles GET /collections/{collection}/records.
func (s *Server) ListRecords(w http.ResponseWriter, r *http.Request) {
	s.fetch(w, r, "")
}

// SurroundRecord handles GET /collections/{collection}/records/{slug}/surround.
func (s *Server) SurroundRecord(w http.ResponseWriter, r *http.Request) {
	s.fetch(w, r, chi.URLParam(r, "slug"))
}

// GetRecord handles GET /collections/{collection}/records/{slug}.
func (s *Server) GetRecord(w http.ResponseWriter, r *http.Request) {
	rec, err := s.query.Get(r.Context(), chi.URLParam(r, "collection"), chi.URLParam(r, "slug"))
	if err != nil {
		handleDomainError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) fetch(w http.ResponseWriter, r *http.Request, slug string) {
	params, err := bindRecordParams(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, CodeBadRequest, err.Error())
		return
	}
	req, err := params.request(slug)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	records, err := s.query.Run(r.Context(), chi.URLParam(r, "collection"), req)
	if err != nil {
		handleDomainError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, RecordListResponse{Items: records, Count: len(records)})
}

// HealthCheck handles GET /health.
func (s *Server) HealthCheck(w http.ResponseWriter, r *http.Request) {
	report := s.health.Check(r.Context())

	status := http.StatusOK
	if report.Status == healthuc.Unhealthy {
		status = http.StatusServiceUnavailable
	}
	writeJSON(w, status, HealthResponse{Status: report.Status, Checks: report.Checks})
}

// Metrics handles GET /metrics.
func (s *Server) Metrics(w http.ResponseWriter, r *http.Request) {
	promhttp.Handler().ServeHTTP(w, r)
}
