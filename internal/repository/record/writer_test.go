package record

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/docq/internal/db"
	"github.com/kailas-cloud/docq/internal/domain"
	domrec "github.com/kailas-cloud/docq/internal/domain/record"
)

func TestRepo_Put(t *testing.T) {
	repo, ms := newTestRepo(t)

	var gotKey string
	var gotFields map[string]string
	ms.hsetFn = func(_ context.Context, key string, fields map[string]string) error {
		gotKey, gotFields = key, fields
		return nil
	}

	err := repo.Put(context.Background(), "notes", domrec.Record{
		"slug":          "intro",
		"title":         "Intro",
		"year":          2024,
		"score":         1.5,
		"draft":         false,
		"tags":          []string{"a", "b"},
		"empty":         nil,
		domrec.FieldKey: "ignored",
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotKey != "docq:notes:intro" {
		t.Errorf("key = %q, want docq:notes:intro", gotKey)
	}
	want := map[string]string{
		"slug":  "intro",
		"title": "Intro",
		"year":  "2024",
		"score": "1.5",
		"draft": "false",
		"tags":  `["a","b"]`,
	}
	if diff := cmp.Diff(want, gotFields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
}

func TestRepo_PutWithoutSlug(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hsetFn = func(_ context.Context, _ string, _ map[string]string) error {
		t.Fatal("HSet must not be called")
		return nil
	}

	err := repo.Put(context.Background(), "notes", domrec.Record{"title": "x"})
	if !errors.Is(err, domain.ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestRepo_PutStoreError(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hsetFn = func(_ context.Context, _ string, _ map[string]string) error {
		return errors.New("OOM")
	}
	if err := repo.Put(context.Background(), "notes", domrec.Record{"slug": "a"}); err == nil {
		t.Fatal("expected error")
	}
}

func TestRepo_PutMany(t *testing.T) {
	repo, ms := newTestRepo(t)

	var got []db.HashSetItem
	ms.hsetMultiFn = func(_ context.Context, items []db.HashSetItem) error {
		got = items
		return nil
	}

	err := repo.PutMany(context.Background(), "notes", []domrec.Record{
		{"slug": "a", "text": "x"},
		{"slug": "b", "text": "y"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []db.HashSetItem{
		{Key: "docq:notes:a", Fields: map[string]string{"slug": "a", "text": "x"}},
		{Key: "docq:notes:b", Fields: map[string]string{"slug": "b", "text": "y"}},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("items mismatch (-want +got):\n%s", diff)
	}
}

func TestRepo_PutManyRejectsWholeBatch(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hsetMultiFn = func(_ context.Context, _ []db.HashSetItem) error {
		t.Fatal("HSetMulti must not be called")
		return nil
	}
	err := repo.PutMany(context.Background(), "notes", []domrec.Record{{"slug": "a"}, {"text": "no slug"}})
	if !errors.Is(err, domain.ErrInvalidRecord) {
		t.Fatalf("expected ErrInvalidRecord, got %v", err)
	}
}

func TestRepo_EnsureIndex(t *testing.T) {
	repo, ms := newTestRepo(t)

	var got *db.IndexDefinition
	ms.createIndexFn = func(_ context.Context, def *db.IndexDefinition) error {
		got = def
		return nil
	}

	schema := domain.Schema{Fields: []domain.Field{{Name: "text", Type: domain.FieldText}}}
	if err := repo.EnsureIndex(context.Background(), "notes", schema); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.Name != "docq:notes:idx" {
		t.Errorf("index name = %q", got.Name)
	}
	if diff := cmp.Diff([]string{"docq:notes:"}, got.Prefixes); diff != "" {
		t.Errorf("prefixes mismatch (-want +got):\n%s", diff)
	}
}

func TestRepo_EnsureIndexExisting(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.createIndexFn = func(_ context.Context, _ *db.IndexDefinition) error {
		return db.ErrIndexExists
	}
	schema := domain.Schema{Fields: []domain.Field{{Name: "text", Type: domain.FieldText}}}
	if err := repo.EnsureIndex(context.Background(), "notes", schema); err != nil {
		t.Fatalf("existing index should not fail: %v", err)
	}
}

func TestRepo_EnsureIndexInvalidSchema(t *testing.T) {
	repo, _ := newTestRepo(t)
	if err := repo.EnsureIndex(context.Background(), "notes", domain.Schema{}); err == nil {
		t.Fatal("expected error for empty schema")
	}
}

func TestRepo_Handle(t *testing.T) {
	repo, ms := newTestRepo(t)
	h := repo.Handle("notes")
	if _, err := h.Materialize(context.Background(), true); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	q := ms.searches[0]
	if q.IndexName != "docq:notes:idx" || q.Limit != 10000 {
		t.Errorf("unexpected query: %+v", q)
	}
}

func TestRepo_Get(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hashes = map[string]map[string]string{
		"docq:notes:jan": {"slug": "jan", "title": "January"},
	}

	got, err := repo.Get(context.Background(), "notes", "jan")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domrec.Record{"slug": "jan", "title": "January", domrec.FieldKey: "docq:notes:jan"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record (-want +got):\n%s", diff)
	}

	if _, err := repo.Get(context.Background(), "notes", "feb"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRepo_Delete(t *testing.T) {
	repo, ms := newTestRepo(t)
	ms.hashes = map[string]map[string]string{
		"docq:notes:jan": {"slug": "jan"},
	}

	if err := repo.Delete(context.Background(), "notes", "jan"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff([]string{"docq:notes:jan"}, ms.deleted); diff != "" {
		t.Errorf("deleted (-want +got):\n%s", diff)
	}
	if err := repo.Delete(context.Background(), "notes", "jan"); !errors.Is(err, domain.ErrNotFound) {
		t.Fatalf("expected ErrNotFound on second delete, got %v", err)
	}
}
