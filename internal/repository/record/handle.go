// Package record adapts the Redis FT store to the query builder's handle contract.
package record

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docq/internal/db"
	"github.com/kailas-cloud/docq/internal/db/memory"
	"github.com/kailas-cloud/docq/internal/domain/cursor"
	domrec "github.com/kailas-cloud/docq/internal/domain/record"
	"github.com/kailas-cloud/docq/internal/domain/search/expr"
)

var _ cursor.Handle = (*Handle)(nil)

// searcher is the consumer interface for handles (ISP).
type searcher interface {
	Search(ctx context.Context, q *db.SearchQuery) (*db.SearchResult, error)
}

// Handle is an immutable FT.SEARCH plan. FT.SEARCH always filters, then
// sorts, then paginates, so a Filter or Sort issued after Limit or Skip cannot
// be pushed into the store query. From that point on every call is kept in
// tail and replayed in memory over the page the store returns.
type Handle struct {
	store      searcher
	index      string
	maxResults int

	preds    []expr.Predicate
	sortBy   string
	sortDesc bool
	offset   int
	limit    int // -1 means unset
	paged    bool

	tail []func(cursor.Handle) cursor.Handle
}

// NewHandle creates a handle over index. maxResults caps every fetch.
func NewHandle(s searcher, index string, maxResults int) *Handle {
	return &Handle{store: s, index: index, maxResults: maxResults, limit: -1}
}

func (h *Handle) clone() *Handle {
	c := *h
	c.preds = append([]expr.Predicate(nil), h.preds...)
	c.tail = append([]func(cursor.Handle) cursor.Handle(nil), h.tail...)
	return &c
}

func (h *Handle) deferred(fn func(cursor.Handle) cursor.Handle) *Handle {
	c := h.clone()
	c.tail = append(c.tail, fn)
	return c
}

// Filter AND-s p into the query, or into the in-memory tail once paginated.
func (h *Handle) Filter(p expr.Predicate) cursor.Handle {
	if h.paged {
		return h.deferred(func(c cursor.Handle) cursor.Handle { return c.Filter(p) })
	}
	c := h.clone()
	c.preds = append(c.preds, p)
	return c
}

// Sort replaces any previous ordering, or re-sorts the page once paginated.
func (h *Handle) Sort(field string, desc bool) cursor.Handle {
	if h.paged {
		return h.deferred(func(c cursor.Handle) cursor.Handle { return c.Sort(field, desc) })
	}
	c := h.clone()
	c.sortBy, c.sortDesc = field, desc
	return c
}

// Limit caps the remaining window at n records.
func (h *Handle) Limit(n int) cursor.Handle {
	if len(h.tail) > 0 {
		return h.deferred(func(c cursor.Handle) cursor.Handle { return c.Limit(max(n, 0)) })
	}
	c := h.clone()
	c.paged = true
	n = max(n, 0)
	if c.limit < 0 || n < c.limit {
		c.limit = n
	}
	return c
}

// Skip advances the window start by n records, shrinking any limit already set.
func (h *Handle) Skip(n int) cursor.Handle {
	if len(h.tail) > 0 {
		return h.deferred(func(c cursor.Handle) cursor.Handle { return c.Skip(max(n, 0)) })
	}
	c := h.clone()
	c.paged = true
	n = max(n, 0)
	c.offset += n
	if c.limit >= 0 {
		c.limit = max(c.limit-n, 0)
	}
	return c
}

// Query returns the FT.SEARCH input this handle materializes with. Calls
// replayed in memory are not part of it.
func (h *Handle) Query() *db.SearchQuery {
	limit := h.maxResults
	if h.limit >= 0 && (limit <= 0 || h.limit < limit) {
		limit = h.limit
	}
	return &db.SearchQuery{
		IndexName:  h.index,
		Predicates: h.preds,
		SortBy:     h.sortBy,
		SortDesc:   h.sortDesc,
		Offset:     h.offset,
		Limit:      limit,
	}
}

// Materialize runs one FT.SEARCH and converts hits to records, then replays
// any tail calls over them in memory. Every record carries its Redis key
// under FieldKey unless stripMeta is set.
func (h *Handle) Materialize(ctx context.Context, stripMeta bool) ([]domrec.Record, error) {
	if len(h.tail) == 0 {
		return h.search(ctx, stripMeta)
	}

	page, err := h.search(ctx, false)
	if err != nil {
		return nil, err
	}
	var c cursor.Handle = memory.New(page)
	for _, fn := range h.tail {
		c = fn(c)
	}
	return c.Materialize(ctx, stripMeta)
}

func (h *Handle) search(ctx context.Context, stripMeta bool) ([]domrec.Record, error) {
	q := h.Query()
	if q.Limit == 0 {
		return []domrec.Record{}, nil
	}

	res, err := h.store.Search(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("search %s: %w", h.index, err)
	}

	out := make([]domrec.Record, 0, len(res.Entries))
	for _, e := range res.Entries {
		out = append(out, toRecord(e, stripMeta))
	}
	return out, nil
}

func toRecord(e db.SearchEntry, stripMeta bool) domrec.Record {
	r := make(domrec.Record, len(e.Fields)+1)
	for k, v := range e.Fields {
		r[k] = v
	}
	if stripMeta {
		return domrec.StripMeta(r)
	}
	r[domrec.FieldKey] = e.Key
	return r
}
