package memory

import (
	"fmt"
	"slices"
	"strings"

	"github.com/kailas-cloud/docq/internal/domain"
	"github.com/kailas-cloud/docq/internal/domain/record"
	"github.com/kailas-cloud/docq/internal/domain/search/expr"
)

type matcher func(record.Record) bool

func compile(p expr.Predicate) (matcher, error) {
	switch p := p.(type) {
	case expr.Where:
		return whereMatcher(p), nil
	case expr.FullText:
		return queryMatcher(p.Query)
	default:
		return nil, unsupported(p)
	}
}

func whereMatcher(w expr.Where) matcher {
	return func(r record.Record) bool {
		for _, c := range w.Must() {
			if !holds(c, r) {
				return false
			}
		}
		if should := w.Should(); len(should) > 0 && !slices.ContainsFunc(should, func(c expr.Condition) bool {
			return holds(c, r)
		}) {
			return false
		}
		for _, c := range w.MustNot() {
			if holds(c, r) {
				return false
			}
		}
		return true
	}
}

func holds(c expr.Condition, r record.Record) bool {
	v, ok := r[c.Field()]
	if !ok || v == nil {
		return false
	}
	if c.IsRange() {
		f, ok := expr.ToFloat(v)
		return ok && c.Range().Contains(f)
	}
	if want, ok := c.Number(); ok {
		if got, ok := expr.ToFloat(v); ok {
			return got == want
		}
	}
	return fmt.Sprint(v) == fmt.Sprint(c.Value())
}

func queryMatcher(q expr.Query) (matcher, error) {
	switch q := q.(type) {
	case expr.Match:
		return func(r record.Record) bool { return matches(q, r) }, nil
	case expr.Bool:
		return func(r record.Record) bool {
			return slices.ContainsFunc(q.Should, func(m expr.Match) bool { return matches(m, r) })
		}, nil
	default:
		return nil, fmt.Errorf("memory handle: full-text %T: %w", q, domain.ErrUnsupportedPredicate)
	}
}

// matches does case-insensitive token containment; fuzziness is not scored here.
func matches(m expr.Match, r record.Record) bool {
	v, ok := r[m.Field]
	if !ok || v == nil {
		return false
	}
	text := strings.ToLower(fmt.Sprint(v))
	terms := m.Terms()
	if len(terms) == 0 {
		return false
	}
	hit := func(t string) bool {
		t = strings.ToLower(t)
		if m.Extended {
			t = strings.TrimSuffix(t, "*")
		}
		return strings.Contains(text, t)
	}
	if m.RequiresAll() {
		for _, t := range terms {
			if !hit(t) {
				return false
			}
		}
		return true
	}
	return slices.ContainsFunc(terms, hit)
}
