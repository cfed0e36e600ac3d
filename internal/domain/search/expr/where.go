package expr

import (
	"fmt"
	"strconv"
)

// MaxConditionsPerGroup caps each of the must, should and must-not groups.
const MaxConditionsPerGroup = 32

// Where is a structured filter with must/should/must-not semantics.
type Where struct {
	must    []Condition
	should  []Condition
	mustNot []Condition
}

func (Where) isPredicate() {}

// NewWhere validates and creates a Where predicate.
func NewWhere(must, should, mustNot []Condition) (Where, error) {
	groups := []struct {
		name  string
		conds []Condition
	}{{"must", must}, {"should", should}, {"must_not", mustNot}}
	for _, g := range groups {
		if len(g.conds) > MaxConditionsPerGroup {
			return Where{}, fmt.Errorf("too many %s conditions (max %d)", g.name, MaxConditionsPerGroup)
		}
	}
	return Where{must: must, should: should, mustNot: mustNot}, nil
}

// All is shorthand for a Where whose conditions must all hold.
func All(conds ...Condition) (Where, error) {
	return NewWhere(conds, nil, nil)
}

// Must returns the conditions that all have to hold.
func (w Where) Must() []Condition { return w.must }

// Should returns the conditions of which at least one has to hold.
func (w Where) Should() []Condition { return w.should }

// MustNot returns the conditions that must not hold.
func (w Where) MustNot() []Condition { return w.mustNot }

// IsEmpty reports whether the predicate has no conditions.
func (w Where) IsEmpty() bool {
	return len(w.must) == 0 && len(w.should) == 0 && len(w.mustNot) == 0
}

// Condition is either an equality on a field or a numeric range.
type Condition struct {
	field string
	value any
	rng   *Range
}

// Eq creates an equality condition. The value must be a string, bool or number.
func Eq(field string, value any) (Condition, error) {
	if field == "" {
		return Condition{}, fmt.Errorf("condition field is required")
	}
	switch v := value.(type) {
	case string:
		if v == "" {
			return Condition{}, fmt.Errorf("value is required for field %q", field)
		}
	case bool, int, int32, int64, float32, float64:
	default:
		return Condition{}, fmt.Errorf("field %q: unsupported value type %T", field, value)
	}
	return Condition{field: field, value: value}, nil
}

// InRange creates a numeric range condition.
func InRange(field string, r Range) (Condition, error) {
	if field == "" {
		return Condition{}, fmt.Errorf("condition field is required")
	}
	return Condition{field: field, rng: &r}, nil
}

// Field returns the field name.
func (c Condition) Field() string { return c.field }

// Value returns the equality operand.
func (c Condition) Value() any { return c.value }

// Range returns the range operand, nil for equality conditions.
func (c Condition) Range() *Range { return c.rng }

// IsRange reports whether this is a range condition.
func (c Condition) IsRange() bool { return c.rng != nil }

// Number returns the equality operand as a float when it is numeric.
func (c Condition) Number() (float64, bool) {
	return ToFloat(c.value)
}

// Range is a numeric interval with optional exclusive and inclusive bounds.
type Range struct {
	gt  *float64
	gte *float64
	lt  *float64
	lte *float64
}

// NewRange validates and creates a Range. At least one bound is required;
// gt/gte and lt/lte are mutually exclusive.
func NewRange(gt, gte, lt, lte *float64) (Range, error) {
	if gt == nil && gte == nil && lt == nil && lte == nil {
		return Range{}, fmt.Errorf("at least one range bound is required")
	}
	if gt != nil && gte != nil {
		return Range{}, fmt.Errorf("cannot combine gt and gte")
	}
	if lt != nil && lte != nil {
		return Range{}, fmt.Errorf("cannot combine lt and lte")
	}
	return Range{gt: gt, gte: gte, lt: lt, lte: lte}, nil
}

// GT returns the exclusive lower bound.
func (r Range) GT() *float64 { return r.gt }

// GTE returns the inclusive lower bound.
func (r Range) GTE() *float64 { return r.gte }

// LT returns the exclusive upper bound.
func (r Range) LT() *float64 { return r.lt }

// LTE returns the inclusive upper bound.
func (r Range) LTE() *float64 { return r.lte }

// Contains reports whether v lies within the range.
func (r Range) Contains(v float64) bool {
	switch {
	case r.gt != nil && v <= *r.gt:
		return false
	case r.gte != nil && v < *r.gte:
		return false
	case r.lt != nil && v >= *r.lt:
		return false
	case r.lte != nil && v > *r.lte:
		return false
	}
	return true
}

// ToFloat converts numbers and numeric strings to float64.
func ToFloat(v any) (float64, bool) {
	switch n := v.(type) {
	case float64:
		return n, true
	case float32:
		return float64(n), true
	case int:
		return float64(n), true
	case int32:
		return float64(n), true
	case int64:
		return float64(n), true
	case string:
		f, err := strconv.ParseFloat(n, 64)
		return f, err == nil
	}
	return 0, false
}
