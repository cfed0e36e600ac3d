package record

import (
	"context"
	"testing"

	"github.com/kailas-cloud/docq/internal/db"
	"github.com/kailas-cloud/docq/internal/domain"
)

// mockStore implements the consumer interface for tests.
type mockStore struct {
	searchFn      func(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
	hsetFn        func(ctx context.Context, key string, fields map[string]string) error
	hsetMultiFn   func(ctx context.Context, items []db.HashSetItem) error
	createIndexFn func(ctx context.Context, def *db.IndexDefinition) error

	hashes  map[string]map[string]string
	deleted []string

	searches []*db.SearchQuery
}

func (m *mockStore) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	m.searches = append(m.searches, q)
	if m.searchFn != nil {
		return m.searchFn(ctx, q)
	}
	return &db.SearchResult{}, nil
}

func (m *mockStore) HSet(ctx context.Context, key string, fields map[string]string) error {
	if m.hsetFn != nil {
		return m.hsetFn(ctx, key, fields)
	}
	return nil
}

func (m *mockStore) HSetMulti(ctx context.Context, items []db.HashSetItem) error {
	if m.hsetMultiFn != nil {
		return m.hsetMultiFn(ctx, items)
	}
	return nil
}

func (m *mockStore) HGetAll(_ context.Context, key string) (map[string]string, error) {
	h, ok := m.hashes[key]
	if !ok {
		return nil, db.ErrKeyNotFound
	}
	return h, nil
}

func (m *mockStore) Exists(_ context.Context, key string) (bool, error) {
	_, ok := m.hashes[key]
	return ok, nil
}

func (m *mockStore) Del(_ context.Context, key string) error {
	delete(m.hashes, key)
	m.deleted = append(m.deleted, key)
	return nil
}

func (m *mockStore) CreateIndex(ctx context.Context, def *db.IndexDefinition) error {
	if m.createIndexFn != nil {
		return m.createIndexFn(ctx, def)
	}
	return nil
}

func newTestRepo(t *testing.T) (*Repo, *mockStore) {
	t.Helper()
	ms := &mockStore{}
	return New(ms, domain.DefaultQueryConfig()), ms
}

func entries(slugs ...string) *db.SearchResult {
	res := &db.SearchResult{Total: len(slugs)}
	for _, s := range slugs {
		res.Entries = append(res.Entries, db.SearchEntry{
			Key:    "docq:notes:" + s,
			Fields: map[string]string{"slug": s, "text": "body of " + s},
		})
	}
	return res
}
