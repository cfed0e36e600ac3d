package record

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestPick(t *testing.T) {
	r := Record{"slug": "a", "title": "A", "text": "body"}

	got := Pick(r, []string{"slug", "title", "missing"})
	want := Record{"slug": "a", "title": "A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Pick() mismatch (-want +got):\n%s", diff)
	}
	if _, ok := r["text"]; !ok {
		t.Error("Pick mutated the source record")
	}
}

func TestPick_Nil(t *testing.T) {
	if got := Pick(nil, []string{"slug"}); got != nil {
		t.Errorf("Pick(nil) = %v, want nil", got)
	}
}

func TestOmit(t *testing.T) {
	r := Record{"slug": "a", "text": "body"}

	got := Omit(r, FieldText)
	if diff := cmp.Diff(Record{"slug": "a"}, got); diff != "" {
		t.Errorf("Omit() mismatch (-want +got):\n%s", diff)
	}
	if r["text"] != "body" {
		t.Error("Omit mutated the source record")
	}
	if Omit(nil, FieldText) != nil {
		t.Error("Omit(nil) should stay nil")
	}
}

func TestStripMeta(t *testing.T) {
	r := Record{"slug": "a", "__key": "docq:notes:a", "__score": 1.0, "title": "A"}

	got := StripMeta(r)
	want := Record{"slug": "a", "title": "A"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("StripMeta() mismatch (-want +got):\n%s", diff)
	}
}

func TestSlug(t *testing.T) {
	tests := []struct {
		name string
		r    Record
		want string
	}{
		{"string", Record{"slug": "intro"}, "intro"},
		{"number", Record{"slug": 42}, "42"},
		{"missing", Record{"title": "x"}, ""},
		{"nil value", Record{"slug": nil}, ""},
		{"nil record", nil, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Slug(tt.r); got != tt.want {
				t.Errorf("Slug() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestMap_PreservesNil(t *testing.T) {
	if Map(nil, Clone) != nil {
		t.Error("Map(nil) should stay nil")
	}
	got := Map([]Record{nil, {"slug": "a"}}, func(r Record) Record { return Pick(r, []string{"slug"}) })
	if got[0] != nil {
		t.Errorf("placeholder = %v, want nil", got[0])
	}
}
