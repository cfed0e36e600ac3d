package redis

import (
	"context"
	"fmt"
	"strconv"

	"github.com/redis/rueidis"

	"github.com/kailas-cloud/docq/internal/db"
)

// Search runs a paginated, optionally sorted FT.SEARCH.
func (s *Store) Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error) {
	args, ok, err := buildSearchArgs(q)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &db.SearchResult{}, nil
	}

	cmd := s.b().Arbitrary("FT.SEARCH").Args(args...).Build()
	raw, err := s.do(ctx, cmd).ToArray()
	if err != nil {
		if isUnknownIndex(err) {
			return nil, db.ErrIndexNotFound
		}
		return nil, db.NewError(db.OpSearch, q.IndexName, err)
	}

	return parseListResult(raw)
}

func buildSearchArgs(q *db.SearchQuery) ([]string, bool, error) {
	if q.IndexName == "" {
		return nil, false, fmt.Errorf("index name is required")
	}
	if q.Offset < 0 || q.Limit < 0 {
		return nil, false, fmt.Errorf("offset and limit must be non-negative")
	}

	query, ok, err := compileQuery(q.Predicates)
	if err != nil || !ok {
		return nil, ok, err
	}

	args := []string{q.IndexName, query}

	if len(q.ReturnFields) > 0 {
		args = append(args, "RETURN", strconv.Itoa(len(q.ReturnFields)))
		args = append(args, q.ReturnFields...)
	}

	if q.SortBy != "" {
		if err := checkField(q.SortBy); err != nil {
			return nil, false, err
		}
		order := "ASC"
		if q.SortDesc {
			order = "DESC"
		}
		args = append(args, "SORTBY", q.SortBy, order)
	}

	args = append(args,
		"LIMIT", strconv.Itoa(q.Offset), strconv.Itoa(q.Limit),
		"DIALECT", "2",
	)
	return args, true, nil
}

func parseListResult(raw []rueidis.RedisMessage) (*db.SearchResult, error) {
	if len(raw) == 0 {
		return &db.SearchResult{}, nil
	}

	total, err := raw[0].AsInt64()
	if err != nil {
		return nil, fmt.Errorf("parse total: %w", err)
	}
	if total == 0 {
		return &db.SearchResult{}, nil
	}

	entries := make([]db.SearchEntry, 0, (len(raw)-1)/2)
	// 2-stride: [total, key1, fields1, key2, fields2, ...]
	for i := 1; i+1 < len(raw); i += 2 {
		key, err := raw[i].ToString()
		if err != nil {
			continue
		}

		fields, err := raw[i+1].ToArray()
		if err != nil {
			continue
		}

		entries = append(entries, db.SearchEntry{
			Key:    key,
			Fields: parseFieldPairs(fields),
		})
	}

	return &db.SearchResult{Total: int(total), Entries: entries}, nil
}

func parseFieldPairs(fields []rueidis.RedisMessage) map[string]string {
	m := make(map[string]string, len(fields)/2)
	for j := 0; j+1 < len(fields); j += 2 {
		name, err := fields[j].ToString()
		if err != nil {
			continue
		}
		value, err := fields[j+1].ToString()
		if err != nil {
			continue
		}
		m[name] = value
	}
	return m
}
