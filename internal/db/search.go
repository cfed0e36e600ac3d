package db

import "github.com/kailas-cloud/docq/internal/domain/search/expr"

// SearchQuery is the input of a single FT.SEARCH call.
// Predicates are AND-ed; an empty list matches every document.
type SearchQuery struct {
	IndexName    string
	Predicates   []expr.Predicate
	SortBy       string
	SortDesc     bool
	Offset       int
	Limit        int
	ReturnFields []string
}

// SearchResult is the output of a search operation.
type SearchResult struct {
	Total   int
	Entries []SearchEntry
}

// SearchEntry is a single document hit.
type SearchEntry struct {
	Key    string
	Fields map[string]string
}
