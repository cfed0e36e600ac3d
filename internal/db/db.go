// Package db defines the storage contract behind record collections:
// records live in hashes and are queried through one FT index per collection.
package db

import (
	"context"
	"time"
)

// Store is everything a driver provides. Consumers declare the narrow
// subset they use.
//
//nolint:interfacebloat // facade; consumers depend on the narrow sub-interfaces
type Store interface {
	Lifecycle
	HashStore
	IndexManager
	Searcher
}

// Lifecycle covers connectivity of a driver.
type Lifecycle interface {
	Ping(ctx context.Context) error
	WaitForReady(ctx context.Context, timeout time.Duration) error
	Close()
}

// HashSetItem is one record hash of a pipelined write.
type HashSetItem struct {
	Key    string
	Fields map[string]string
}

// HashStore reads and writes record hashes. HGetAll reports a missing key
// as ErrKeyNotFound.
type HashStore interface {
	HSet(ctx context.Context, key string, fields map[string]string) error
	HSetMulti(ctx context.Context, items []HashSetItem) error
	HGetAll(ctx context.Context, key string) (map[string]string, error)
	Del(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

// IndexManager creates and drops collection indexes.
type IndexManager interface {
	CreateIndex(ctx context.Context, def *IndexDefinition) error
	DropIndex(ctx context.Context, name string) error
	IndexExists(ctx context.Context, name string) (bool, error)
}

// Searcher runs a compiled query against one index.
type Searcher interface {
	Search(ctx context.Context, q *SearchQuery) (*SearchResult, error)
}
