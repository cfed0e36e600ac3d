package docq

import (
	"github.com/kailas-cloud/docq/internal/db/memory"
	"github.com/kailas-cloud/docq/internal/domain/search/expr"
)

// Predicate, query and condition types accepted by Where and Search.
type (
	Predicate = expr.Predicate
	Query     = expr.Query
	Match     = expr.Match
	Bool      = expr.Bool
	FullText  = expr.FullText
	Raw       = expr.Raw
	Where     = expr.Where
	Condition = expr.Condition
	Range     = expr.Range
	Operator  = expr.Operator
)

// Match operators.
const (
	OperatorAnd = expr.OperatorAnd
	OperatorOr  = expr.OperatorOr
)

// Predicate constructors.
var (
	Eq         = expr.Eq
	InRange    = expr.InRange
	NewRange   = expr.NewRange
	NewWhere   = expr.NewWhere
	All        = expr.All
	FieldMatch = expr.FieldMatch
	AnyField   = expr.AnyField
)

// NewMemoryHandle returns a handle over an in-memory snapshot of records.
func NewMemoryHandle(records []Record) Handle {
	return memory.New(records)
}
