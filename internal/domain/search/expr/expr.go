// Package expr defines the predicates a query builder hands to a store handle.
//
// Predicates are data: the store adapter decides how to evaluate or compile them.
// A Predicate is one of FullText, Where or Raw; a full-text Query is one of Match
// or Bool.
package expr

import "strings"

// Predicate narrows a handle. Implemented by FullText, Where and Raw.
type Predicate interface {
	isPredicate()
}

// Query is a full-text search expression. Implemented by Match and Bool.
type Query interface {
	isQuery()
}

// Operator combines the terms of a single match clause.
type Operator string

const (
	// OperatorAnd requires every term to match.
	OperatorAnd Operator = "and"
	// OperatorOr requires any term to match.
	OperatorOr Operator = "or"
)

// Match is a single-field full-text clause.
type Match struct {
	Field              string   `json:"field"`
	Value              string   `json:"value"`
	PrefixLength       int      `json:"prefix_length"`
	Fuzziness          int      `json:"fuzziness"`
	MinimumShouldMatch int      `json:"minimum_should_match"`
	Extended           bool     `json:"extended"`
	Operator           Operator `json:"operator,omitempty"`
}

func (Match) isQuery() {}

// Terms splits the match value on whitespace.
func (m Match) Terms() []string {
	return strings.Fields(m.Value)
}

// RequiresAll reports whether every term has to match.
func (m Match) RequiresAll() bool {
	return m.Operator == OperatorAnd
}

// Bool matches when any of its clauses matches.
type Bool struct {
	Should []Match `json:"should"`
}

func (Bool) isQuery() {}

// FullText filters by a full-text query.
type FullText struct {
	Query Query
}

func (FullText) isPredicate() {}

// Raw is a store-native query forwarded without interpretation.
type Raw string

func (Raw) isPredicate() {}
