package redis

import (
	"context"
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/redis/rueidis/mock"
	"go.uber.org/mock/gomock"

	"github.com/kailas-cloud/docq/internal/db"
	"github.com/kailas-cloud/docq/internal/domain/search/expr"
)

func TestBuildSearchArgs(t *testing.T) {
	args, ok, err := buildSearchArgs(&db.SearchQuery{
		IndexName:    "idx",
		SortBy:       "year",
		SortDesc:     true,
		Offset:       5,
		Limit:        10,
		ReturnFields: []string{"title"},
	})
	if err != nil || !ok {
		t.Fatalf("buildSearchArgs: ok=%v err=%v", ok, err)
	}
	want := []string{
		"idx", "*",
		"RETURN", "1", "title",
		"SORTBY", "year", "DESC",
		"LIMIT", "5", "10",
		"DIALECT", "2",
	}
	if diff := cmp.Diff(want, args); diff != "" {
		t.Errorf("args mismatch (-want +got):\n%s", diff)
	}
}

func TestBuildSearchArgs_Validation(t *testing.T) {
	for _, q := range []*db.SearchQuery{
		{},
		{IndexName: "idx", Offset: -1},
		{IndexName: "idx", Limit: -1},
		{IndexName: "idx", Limit: 1, SortBy: "bad field"},
	} {
		if _, _, err := buildSearchArgs(q); err == nil {
			t.Errorf("expected error for %+v", q)
		}
	}
}

func TestSearch_Success(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.Match(
			"FT.SEARCH", "idx", "@lang:{en}",
			"SORTBY", "slug", "ASC",
			"LIMIT", "0", "10",
			"DIALECT", "2",
		)).
		Return(mock.Result(mock.RedisArray(
			mock.RedisInt64(2),
			mock.RedisString("doc:1"),
			mock.RedisArray(mock.RedisString("slug"), mock.RedisString("a")),
			mock.RedisString("doc:2"),
			mock.RedisArray(mock.RedisString("slug"), mock.RedisString("b")),
		)))

	cond, err := expr.Eq("lang", "en")
	if err != nil {
		t.Fatal(err)
	}
	w, err := expr.All(cond)
	if err != nil {
		t.Fatal(err)
	}

	s := NewStoreForTest(c)
	result, err := s.Search(context.Background(), &db.SearchQuery{
		IndexName:  "idx",
		Predicates: []expr.Predicate{w},
		SortBy:     "slug",
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := &db.SearchResult{
		Total: 2,
		Entries: []db.SearchEntry{
			{Key: "doc:1", Fields: map[string]string{"slug": "a"}},
			{Key: "doc:2", Fields: map[string]string{"slug": "b"}},
		},
	}
	if diff := cmp.Diff(want, result); diff != "" {
		t.Errorf("result mismatch (-want +got):\n%s", diff)
	}
}

func TestSearch_Empty(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH"
		})).
		Return(mock.Result(mock.RedisArray(mock.RedisInt64(0))))

	s := NewStoreForTest(c)
	result, err := s.Search(context.Background(), &db.SearchQuery{IndexName: "idx", Limit: 10})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Total != 0 || len(result.Entries) != 0 {
		t.Errorf("expected empty result, got %+v", result)
	}
}

func TestSearch_UnsatisfiableSkipsServer(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	s := NewStoreForTest(c)
	result, err := s.Search(context.Background(), &db.SearchQuery{
		IndexName:  "idx",
		Predicates: []expr.Predicate{expr.FullText{Query: expr.FieldMatch("title", "")}},
		Limit:      10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(result.Entries) != 0 {
		t.Errorf("expected no entries, got %d", len(result.Entries))
	}
}

func TestSearch_UnknownIndex(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH"
		})).
		Return(mock.Result(mock.RedisError("idx: no such index")))

	s := NewStoreForTest(c)
	_, err := s.Search(context.Background(), &db.SearchQuery{IndexName: "idx", Limit: 1})
	if !errors.Is(err, db.ErrIndexNotFound) {
		t.Fatalf("expected ErrIndexNotFound, got %v", err)
	}
}

func TestSearch_Error(t *testing.T) {
	ctrl := gomock.NewController(t)
	c := mock.NewClient(ctrl)

	c.EXPECT().
		Do(gomock.Any(), mock.MatchFn(func(cmd []string) bool {
			return cmd[0] == "FT.SEARCH"
		})).
		Return(mock.ErrorResult(context.DeadlineExceeded))

	s := NewStoreForTest(c)
	_, err := s.Search(context.Background(), &db.SearchQuery{IndexName: "idx", Limit: 1})
	if !isDBError(err) {
		t.Fatalf("expected db.Error, got %v", err)
	}
}
