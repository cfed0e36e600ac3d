package main

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.uber.org/zap"

	"github.com/kailas-cloud/docq/internal/config"
	dbRedis "github.com/kailas-cloud/docq/internal/db/redis"
	"github.com/kailas-cloud/docq/internal/domain"
	recordrepo "github.com/kailas-cloud/docq/internal/repository/record"
	healthuc "github.com/kailas-cloud/docq/internal/usecase/health"
	queryuc "github.com/kailas-cloud/docq/internal/usecase/query"
)

// app is the composition root shared by every command.
type app struct {
	store   *dbRedis.Store
	repo    *recordrepo.Repo
	query   *queryuc.Service
	health  *healthuc.Service
	schemas map[string]domain.Schema
}

func newApp(ctx context.Context, cfg config.Config, logger *zap.Logger) (*app, error) {
	store, err := dbRedis.NewStore(dbRedis.Config{
		Addrs:      cfg.Database.Addrs,
		Username:   cfg.Database.Username,
		Password:   cfg.Database.Password,
		DB:         cfg.Database.DB,
		ClientName: "docq",
	})
	if err != nil {
		return nil, fmt.Errorf("create redis store: %w", err)
	}

	if err := store.WaitForReady(ctx, time.Duration(cfg.Database.ReadinessTimeout)*time.Second); err != nil {
		store.Close()
		return nil, fmt.Errorf("database not ready: %w", err)
	}
	logger.Info("Connected to database", zap.Strings("db_addrs", cfg.Database.Addrs))

	qc := cfg.Domain()
	repo := recordrepo.New(store, qc)

	indexes := make(map[string]string, len(cfg.Collections))
	for name := range cfg.Collections {
		indexes[name] = qc.IndexName(name)
	}

	return &app{
		store:   store,
		repo:    repo,
		schemas: cfg.Schemas(),
		query: queryuc.New(repo, queryuc.SearchFields{
			Default:       qc.FullTextSearchFields,
			PerCollection: cfg.SearchOverrides(),
		}),
		health: healthuc.New(store, store, indexes),
	}, nil
}

// indexEnsurer creates a collection index unless it already exists.
type indexEnsurer interface {
	EnsureIndex(ctx context.Context, collection string, schema domain.Schema) error
}

// ensureIndexes creates the index of every collection declared with a schema.
func ensureIndexes(ctx context.Context, e indexEnsurer, schemas map[string]domain.Schema, logger *zap.Logger) error {
	names := make([]string, 0, len(schemas))
	for name := range schemas {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		if err := e.EnsureIndex(ctx, name, schemas[name]); err != nil {
			return fmt.Errorf("ensure collection %s: %w", name, err)
		}
		logger.Info("Collection index ready", zap.String("collection", name))
	}
	return nil
}

func (a *app) Close() {
	a.store.Close()
}
