package memory

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/kailas-cloud/docq/internal/domain/record"
	"github.com/kailas-cloud/docq/internal/domain/search/expr"
)

func sortRecords(rs []record.Record, field string, desc bool) {
	slices.SortStableFunc(rs, func(a, b record.Record) int {
		c := compareValues(a[field], b[field])
		if desc {
			return -c
		}
		return c
	})
}

// compareValues orders missing values first, then numbers numerically, then by string form.
func compareValues(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}
	fa, okA := expr.ToFloat(a)
	fb, okB := expr.ToFloat(b)
	if okA && okB {
		return cmp.Compare(fa, fb)
	}
	return cmp.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
