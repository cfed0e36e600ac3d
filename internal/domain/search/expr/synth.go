package expr

import (
	"fmt"

	"github.com/kailas-cloud/docq/internal/domain"
)

// Tolerances applied to synthesized match clauses.
const (
	DefaultPrefixLength       = 1
	DefaultFuzziness          = 1
	DefaultMinimumShouldMatch = 1
)

// FieldMatch builds a match clause for value scoped to a single field.
func FieldMatch(field, value string) Match {
	return Match{
		Field:              field,
		Value:              value,
		PrefixLength:       DefaultPrefixLength,
		Fuzziness:          DefaultFuzziness,
		Extended:           true,
		MinimumShouldMatch: DefaultMinimumShouldMatch,
	}
}

// AnyField builds a query matching term in at least one of fields.
// Every clause requires all terms of term to match within its field.
func AnyField(fields []string, term string) (Bool, error) {
	if len(fields) == 0 {
		return Bool{}, fmt.Errorf("search %q: %w", term, domain.ErrMisconfiguredSearch)
	}
	should := make([]Match, len(fields))
	for i, f := range fields {
		m := FieldMatch(f, term)
		m.Operator = OperatorAnd
		should[i] = m
	}
	return Bool{Should: should}, nil
}
