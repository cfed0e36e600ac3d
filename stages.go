package docq

import (
	"errors"
	"strconv"
	"strings"

	"github.com/kailas-cloud/docq/internal/domain"
	"github.com/kailas-cloud/docq/internal/domain/record"
	"github.com/kailas-cloud/docq/internal/domain/search/expr"
)

// Window is the neighbor count on each side of a surround target.
type Window struct {
	Before int
	After  int
}

// DefaultWindow is one neighbor on each side.
func DefaultWindow() Window {
	return Window{Before: 1, After: 1}
}

// Fields keeps only the listed fields in each record. Unknown fields are skipped.
func (b *Builder) Fields(keys ...string) *Builder {
	keys = append([]string(nil), keys...)
	return b.Stage(PhaseProject, func(rs []Record) []Record {
		return record.Map(rs, func(r Record) Record {
			return record.Pick(r, keys)
		})
	})
}

// SortBy orders by a single field; direction "desc" sorts descending, anything else ascending.
func (b *Builder) SortBy(field, direction string) *Builder {
	desc := direction == "desc"
	return b.then(func(h Handle) Handle {
		return h.Sort(field, desc)
	})
}

// Where narrows the handle with p, forwarded as is.
func (b *Builder) Where(p expr.Predicate) *Builder {
	if p == nil {
		b.fail(errors.New("where: predicate is required"))
		return b
	}
	return b.then(func(h Handle) Handle {
		return h.Filter(p)
	})
}

// Search filters with a prebuilt full-text query.
func (b *Builder) Search(q expr.Query) *Builder {
	if q == nil {
		b.fail(errors.New("search: query is required"))
		return b
	}
	return b.Where(expr.FullText{Query: q})
}

// SearchField matches value within a single field. An empty value searches
// field as a term across the configured fields, like SearchTerm.
func (b *Builder) SearchField(field, value string) *Builder {
	if value == "" {
		return b.SearchTerm(field)
	}
	return b.Search(expr.FieldMatch(field, value))
}

// SearchTerm matches term within any of the configured full-text fields.
func (b *Builder) SearchTerm(term string) *Builder {
	q, err := expr.AnyField(b.opts.FullTextSearchFields, term)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.Search(q)
}

// Surround replaces the records with the window of neighbors around slug.
func (b *Builder) Surround(slug string, w Window) *Builder {
	if w.Before < 0 {
		b.fail(domain.NewInvalidNumber("before", strconv.Itoa(w.Before)))
		return b
	}
	if w.After < 0 {
		b.fail(domain.NewInvalidNumber("after", strconv.Itoa(w.After)))
		return b
	}
	return b.Stage(PhaseWindow, func(rs []Record) []Record {
		return record.Surround(rs, slug, w.Before, w.After)
	})
}

// Limit caps the number of records.
func (b *Builder) Limit(n int) *Builder {
	if n < 0 {
		b.fail(domain.NewInvalidNumber("limit", strconv.Itoa(n)))
		return b
	}
	return b.then(func(h Handle) Handle {
		return h.Limit(n)
	})
}

// LimitString is Limit with a decimal string argument.
func (b *Builder) LimitString(s string) *Builder {
	n, err := parseCount("limit", s)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.Limit(n)
}

// Skip drops the first n records.
func (b *Builder) Skip(n int) *Builder {
	if n < 0 {
		b.fail(domain.NewInvalidNumber("skip", strconv.Itoa(n)))
		return b
	}
	return b.then(func(h Handle) Handle {
		return h.Skip(n)
	})
}

// SkipString is Skip with a decimal string argument.
func (b *Builder) SkipString(s string) *Builder {
	n, err := parseCount("skip", s)
	if err != nil {
		b.fail(err)
		return b
	}
	return b.Skip(n)
}

func parseCount(arg, s string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, domain.NewInvalidNumber(arg, s)
	}
	return n, nil
}
