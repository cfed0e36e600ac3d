package expr

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/kailas-cloud/docq/internal/domain"
)

func TestFieldMatch(t *testing.T) {
	got := FieldMatch("title", "x")
	want := Match{
		Field:              "title",
		Value:              "x",
		PrefixLength:       1,
		Fuzziness:          1,
		MinimumShouldMatch: 1,
		Extended:           true,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("FieldMatch() mismatch (-want +got):\n%s", diff)
	}
	if got.RequiresAll() {
		t.Error("field match must not force the and operator")
	}
}

func TestAnyField(t *testing.T) {
	got, err := AnyField([]string{"title", "body"}, "term")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got.Should) != 2 {
		t.Fatalf("clauses = %d, want 2", len(got.Should))
	}
	for i, field := range []string{"title", "body"} {
		c := got.Should[i]
		if c.Field != field {
			t.Errorf("clause %d field = %q, want %q", i, c.Field, field)
		}
		if c.Value != "term" {
			t.Errorf("clause %d value = %q, want term", i, c.Value)
		}
		if c.Fuzziness != 1 || c.PrefixLength != 1 || c.MinimumShouldMatch != 1 || !c.Extended {
			t.Errorf("clause %d tolerances = %+v", i, c)
		}
		if c.Operator != OperatorAnd {
			t.Errorf("clause %d operator = %q, want and", i, c.Operator)
		}
	}
}

func TestAnyField_NoFields(t *testing.T) {
	for _, fields := range [][]string{nil, {}} {
		_, err := AnyField(fields, "term")
		if !errors.Is(err, domain.ErrMisconfiguredSearch) {
			t.Errorf("AnyField(%v) error = %v, want ErrMisconfiguredSearch", fields, err)
		}
	}
}

func TestMatchTerms(t *testing.T) {
	m := FieldMatch("title", "  go   query\tbuilder ")
	if diff := cmp.Diff([]string{"go", "query", "builder"}, m.Terms()); diff != "" {
		t.Errorf("Terms() mismatch (-want +got):\n%s", diff)
	}
}
