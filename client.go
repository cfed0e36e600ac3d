package docq

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docq/internal/db"
	dbRedis "github.com/kailas-cloud/docq/internal/db/redis"
	"github.com/kailas-cloud/docq/internal/domain"
	"github.com/kailas-cloud/docq/internal/domain/record"
	recordrepo "github.com/kailas-cloud/docq/internal/repository/record"
)

const defaultReadinessTimeout = 10 * time.Second

// Field and schema types accepted by EnsureCollection.
type (
	Field     = domain.Field
	FieldType = domain.FieldType
	Schema    = domain.Schema
)

// Field types.
const (
	FieldText    = domain.FieldText
	FieldTag     = domain.FieldTag
	FieldNumeric = domain.FieldNumeric
)

// Client is the docq entry point over a Redis store.
type Client struct {
	store  db.Store
	repo   *recordrepo.Repo
	fields []string
	obs    *observer
}

// Connect creates a Client and connects to the database.
func Connect(opts ...Option) (*Client, error) {
	cfg := &clientConfig{query: domain.DefaultQueryConfig()}
	for _, o := range opts {
		o.apply(cfg)
	}

	if len(cfg.addrs) == 0 {
		return nil, errors.New("docq: database address required (use WithRedis)")
	}

	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.addrs,
		Password:   cfg.password,
		DB:         cfg.db,
		ClientName: "docq-client",
	})
	if err != nil {
		return nil, fmt.Errorf("docq: create redis store: %w", err)
	}

	ctx := context.Background()
	if err := store.WaitForReady(ctx, defaultReadinessTimeout); err != nil {
		store.Close()
		return nil, fmt.Errorf("docq: database not ready: %w", err)
	}

	c, err := newClient(store, cfg)
	if err != nil {
		store.Close()
		return nil, err
	}
	return c, nil
}

func newClient(store db.Store, cfg *clientConfig) (*Client, error) {
	obs, err := newObserver(cfg.logger, cfg.metricsReg)
	if err != nil {
		return nil, err
	}
	def := domain.DefaultQueryConfig()
	if cfg.query.KeyPrefix == "" {
		cfg.query.KeyPrefix = def.KeyPrefix
	}
	if cfg.query.MaxResults <= 0 {
		cfg.query.MaxResults = def.MaxResults
	}
	return &Client{
		store:  store,
		repo:   recordrepo.New(store, cfg.query),
		fields: cfg.query.FullTextSearchFields,
		obs:    obs,
	}, nil
}

// Close releases all resources.
func (c *Client) Close() {
	if c.store != nil {
		c.store.Close()
	}
}

// Ping checks database connectivity.
func (c *Client) Ping(ctx context.Context) (err error) {
	defer func(start time.Time) { c.obs.observe(opPing, start, err) }(time.Now())

	if err = c.store.Ping(ctx); err != nil {
		return fmt.Errorf("ping: %w", err)
	}
	return nil
}

// Query starts a pipeline over a collection. Postprocess stages run
// in the transform phase, before windowing and projection.
func (c *Client) Query(collection string, postprocess ...ResultStage) *Builder {
	return New(
		Config{Query: c.repo.Handle(collection), Postprocess: postprocess},
		Options{FullTextSearchFields: c.fields},
	)
}

// EnsureCollection creates the collection index if it does not exist yet.
func (c *Client) EnsureCollection(ctx context.Context, collection string, fields ...Field) (err error) {
	defer func(start time.Time) {
		c.obs.observe(opEnsureCollection, start, err, zap.String("collection", collection))
	}(time.Now())

	if err = c.repo.EnsureIndex(ctx, collection, Schema{Fields: fields}); err != nil {
		return fmt.Errorf("ensure collection: %w", err)
	}
	return nil
}

// Put stores records in a collection. Every record needs a slug.
func (c *Client) Put(ctx context.Context, collection string, records ...Record) (err error) {
	defer func(start time.Time) {
		c.obs.observe(opPut, start, err, zap.String("collection", collection), zap.Int("records", len(records)))
	}(time.Now())

	switch len(records) {
	case 0:
		return nil
	case 1:
		err = c.repo.Put(ctx, collection, records[0])
	default:
		err = c.repo.PutMany(ctx, collection, records)
	}
	if err != nil {
		return fmt.Errorf("put: %w", err)
	}
	return nil
}

// Get reads one record by slug without its store bookkeeping fields.
// A missing record yields ErrNotFound.
func (c *Client) Get(ctx context.Context, collection, slug string) (rec Record, err error) {
	defer func(start time.Time) {
		c.obs.observe(opGet, start, err, zap.String("collection", collection), zap.String("slug", slug))
	}(time.Now())

	rec, err = c.repo.Get(ctx, collection, slug)
	if err != nil {
		return nil, fmt.Errorf("get: %w", err)
	}
	return record.StripMeta(rec), nil
}

// Delete removes one record by slug. A missing record yields ErrNotFound.
func (c *Client) Delete(ctx context.Context, collection, slug string) (err error) {
	defer func(start time.Time) {
		c.obs.observe(opDelete, start, err, zap.String("collection", collection), zap.String("slug", slug))
	}(time.Now())

	if err = c.repo.Delete(ctx, collection, slug); err != nil {
		return fmt.Errorf("delete: %w", err)
	}
	return nil
}
