// Package query runs builder pipelines for transport-level requests.
package query

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docq"
	"github.com/kailas-cloud/docq/internal/domain"
	"github.com/kailas-cloud/docq/internal/domain/record"
	"github.com/kailas-cloud/docq/internal/domain/search/expr"
	logpkg "github.com/kailas-cloud/docq/internal/logger"
	"github.com/kailas-cloud/docq/internal/metrics"
)

// Request is a transport-agnostic fetch description.
// Limit and Skip stay strings so the builder owns number parsing.
type Request struct {
	Fields      []string
	SortField   string
	SortOrder   string
	Where       []expr.Condition
	Search      string
	SearchField string
	Surround    string
	Before      int
	After       int
	Limit       string
	Skip        string
}

// SearchFields resolves the full-text fields of unscoped searches.
type SearchFields struct {
	Default       []string
	PerCollection map[string][]string
}

// For returns the collection's fields, falling back to the defaults.
func (f SearchFields) For(collection string) []string {
	if fields, ok := f.PerCollection[collection]; ok {
		return fields
	}
	return f.Default
}

// Service builds and fetches one pipeline per request.
type Service struct {
	handles HandleFactory
	reader  RecordReader
	fields  SearchFields
}

// New creates a query service.
func New(handles HandleFactory, fields SearchFields) *Service {
	s := &Service{handles: handles, fields: fields}
	if r, ok := handles.(RecordReader); ok {
		s.reader = r
	}
	return s
}

// Get reads one record by slug with store bookkeeping fields removed.
func (s *Service) Get(ctx context.Context, collection, slug string) (docq.Record, error) {
	if collection == "" || slug == "" {
		return nil, fmt.Errorf("collection and slug are required: %w", domain.ErrInvalidQuery)
	}
	if s.reader == nil {
		return nil, errors.New("record lookup is not available")
	}

	rec, err := s.reader.Get(ctx, collection, slug)
	if err != nil {
		logpkg.FromContext(ctx).Info("get rejected",
			zap.String("collection", collection),
			zap.String("slug", slug),
			zap.String("status", classify(err)),
			zap.Error(err),
		)
		return nil, err
	}
	return record.StripMeta(rec), nil
}

// Run fetches records from collection as described by req.
func (s *Service) Run(ctx context.Context, collection string, req *Request) ([]docq.Record, error) {
	start := time.Now()
	records, err := s.run(ctx, collection, req)
	status := classify(err)
	metrics.ObserveFetch(collection, status, time.Since(start), len(records))

	log := logpkg.FromContext(ctx).With(
		zap.String("collection", collection),
		zap.String("status", status),
		zap.Duration("latency", time.Since(start)),
	)
	switch status {
	case metrics.StatusOK:
		log.Info("fetch", zap.Int("records", len(records)))
	case metrics.StatusError:
		log.Error("fetch failed", zap.Error(err))
	default:
		log.Info("fetch rejected", zap.Error(err))
	}

	return records, err
}

func (s *Service) run(ctx context.Context, collection string, req *Request) ([]docq.Record, error) {
	if collection == "" {
		return nil, fmt.Errorf("collection is required: %w", domain.ErrInvalidQuery)
	}

	b := docq.New(
		docq.Config{Query: s.handles.Handle(collection)},
		docq.Options{FullTextSearchFields: s.fields.For(collection)},
	)

	if len(req.Where) > 0 {
		w, err := expr.All(req.Where...)
		if err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrInvalidQuery, err)
		}
		b.Where(w)
	}

	switch {
	case req.Search != "" && req.SearchField != "":
		b.SearchField(req.SearchField, req.Search)
	case req.Search != "":
		b.SearchTerm(req.Search)
	}

	if req.SortField != "" {
		b.SortBy(req.SortField, req.SortOrder)
	}
	if req.Skip != "" {
		b.SkipString(req.Skip)
	}
	if req.Limit != "" {
		b.LimitString(req.Limit)
	}
	if req.Surround != "" {
		b.Surround(req.Surround, docq.Window{Before: req.Before, After: req.After})
	}
	if len(req.Fields) > 0 {
		b.Fields(req.Fields...)
	}

	return b.Fetch(ctx)
}

func classify(err error) string {
	switch {
	case err == nil:
		return metrics.StatusOK
	case errors.Is(err, domain.ErrNotFound):
		return metrics.StatusNotFound
	case errors.Is(err, domain.ErrInvalidNumber),
		errors.Is(err, domain.ErrInvalidQuery),
		errors.Is(err, domain.ErrMisconfiguredSearch),
		errors.Is(err, domain.ErrUnsupportedPredicate):
		return metrics.StatusInvalid
	default:
		return metrics.StatusError
	}
}
