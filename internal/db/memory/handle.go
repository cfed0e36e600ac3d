// Package memory implements a store handle over an in-memory record snapshot.
package memory

import (
	"context"
	"fmt"

	"github.com/kailas-cloud/docq/internal/domain"
	"github.com/kailas-cloud/docq/internal/domain/cursor"
	"github.com/kailas-cloud/docq/internal/domain/record"
	"github.com/kailas-cloud/docq/internal/domain/search/expr"
)

// Compile-time check: Handle implements cursor.Handle.
var _ cursor.Handle = (*Handle)(nil)

type opKind int

const (
	opFilter opKind = iota
	opSort
	opLimit
	opSkip
)

type op struct {
	kind  opKind
	pred  expr.Predicate
	field string
	desc  bool
	n     int
}

// Handle is an immutable query plan over a record snapshot.
type Handle struct {
	records []record.Record
	plan    []op
}

// New snapshots records into a handle.
func New(records []record.Record) *Handle {
	snap := make([]record.Record, len(records))
	for i, r := range records {
		snap[i] = record.Clone(r)
	}
	return &Handle{records: snap}
}

func (h *Handle) with(o op) *Handle {
	plan := make([]op, len(h.plan), len(h.plan)+1)
	copy(plan, h.plan)
	return &Handle{records: h.records, plan: append(plan, o)}
}

// Filter narrows to records matching p.
func (h *Handle) Filter(p expr.Predicate) cursor.Handle {
	return h.with(op{kind: opFilter, pred: p})
}

// Sort orders by field; the sort is stable.
func (h *Handle) Sort(field string, desc bool) cursor.Handle {
	return h.with(op{kind: opSort, field: field, desc: desc})
}

// Limit keeps at most n records.
func (h *Handle) Limit(n int) cursor.Handle {
	return h.with(op{kind: opLimit, n: n})
}

// Skip drops the first n records.
func (h *Handle) Skip(n int) cursor.Handle {
	return h.with(op{kind: opSkip, n: n})
}

// Materialize replays the plan over a copy of the snapshot.
func (h *Handle) Materialize(ctx context.Context, stripMeta bool) ([]record.Record, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("materialize: %w", err)
	}

	rs := append([]record.Record(nil), h.records...)
	for _, o := range h.plan {
		switch o.kind {
		case opFilter:
			m, err := compile(o.pred)
			if err != nil {
				return nil, err
			}
			kept := rs[:0:0]
			for _, r := range rs {
				if m(r) {
					kept = append(kept, r)
				}
			}
			rs = kept
		case opSort:
			sortRecords(rs, o.field, o.desc)
		case opLimit:
			rs = rs[:min(o.n, len(rs))]
		case opSkip:
			rs = rs[min(o.n, len(rs)):]
		}
	}

	out := make([]record.Record, len(rs))
	for i, r := range rs {
		if stripMeta {
			out[i] = record.StripMeta(r)
		} else {
			out[i] = record.Clone(r)
		}
	}
	return out, nil
}

func unsupported(p expr.Predicate) error {
	return fmt.Errorf("memory handle: %T: %w", p, domain.ErrUnsupportedPredicate)
}
