package expr

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/kailas-cloud/docq/internal/domain"
)

// ParseCondition parses "field:value" into a condition. Values that parse as
// numbers compare numerically; a double-quoted value is always a string.
// A leading >, >=, < or <= turns the value into an open numeric range.
func ParseCondition(s string) (Condition, error) {
	field, value, ok := strings.Cut(s, ":")
	if !ok || field == "" || value == "" {
		return Condition{}, fmt.Errorf("where %q: expected field:value: %w", s, domain.ErrInvalidQuery)
	}

	if unq, err := strconv.Unquote(value); err == nil && strings.HasPrefix(value, `"`) {
		return wrapParsed(s)(Eq(field, unq))
	}

	for _, op := range []string{">=", "<=", ">", "<"} {
		rest, found := strings.CutPrefix(value, op)
		if !found {
			continue
		}
		f, err := strconv.ParseFloat(rest, 64)
		if err != nil {
			return Condition{}, fmt.Errorf("where %q: bound is not a number: %w", s, domain.ErrInvalidQuery)
		}
		var r Range
		switch op {
		case ">=":
			r, err = NewRange(nil, &f, nil, nil)
		case "<=":
			r, err = NewRange(nil, nil, nil, &f)
		case ">":
			r, err = NewRange(&f, nil, nil, nil)
		default:
			r, err = NewRange(nil, nil, &f, nil)
		}
		if err != nil {
			return Condition{}, fmt.Errorf("where %q: %w: %w", s, domain.ErrInvalidQuery, err)
		}
		return wrapParsed(s)(InRange(field, r))
	}

	if f, err := strconv.ParseFloat(value, 64); err == nil {
		return wrapParsed(s)(Eq(field, f))
	}
	if value == "true" || value == "false" {
		return wrapParsed(s)(Eq(field, value == "true"))
	}
	return wrapParsed(s)(Eq(field, value))
}

func wrapParsed(s string) func(Condition, error) (Condition, error) {
	return func(c Condition, err error) (Condition, error) {
		if err != nil {
			return Condition{}, fmt.Errorf("where %q: %w: %w", s, domain.ErrInvalidQuery, err)
		}
		return c, nil
	}
}
