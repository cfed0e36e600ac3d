// Package cursor defines the store handle a query builder composes.
package cursor

import (
	"context"

	"github.com/kailas-cloud/docq/internal/domain/record"
	"github.com/kailas-cloud/docq/internal/domain/search/expr"
)

// Handle is an immutable cursor over a store's query state.
// Every narrowing call returns a new handle and leaves the receiver untouched.
type Handle interface {
	Filter(p expr.Predicate) Handle
	Sort(field string, desc bool) Handle
	Limit(n int) Handle
	Skip(n int) Handle
	// Materialize runs the query. With stripMeta, store bookkeeping fields are removed.
	Materialize(ctx context.Context, stripMeta bool) ([]record.Record, error)
}
