package domain

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestSchema_Validate(t *testing.T) {
	tests := []struct {
		name    string
		schema  Schema
		wantErr string
	}{
		{
			name: "valid",
			schema: Schema{Fields: []Field{
				{Name: "title", Type: FieldText, Weight: 2},
				{Name: "lang", Type: FieldTag},
				{Name: "year", Type: FieldNumeric, Sortable: true},
			}},
		},
		{name: "empty", schema: Schema{}, wantErr: "at least one field"},
		{name: "unnamed", schema: Schema{Fields: []Field{{Type: FieldTag}}}, wantErr: "name is required"},
		{
			name:    "duplicate",
			schema:  Schema{Fields: []Field{{Name: "a", Type: FieldTag}, {Name: "a", Type: FieldText}}},
			wantErr: `duplicate field "a"`,
		},
		{name: "unknown type", schema: Schema{Fields: []Field{{Name: "loc", Type: "geo"}}}, wantErr: `unknown type "geo"`},
		{name: "negative weight", schema: Schema{Fields: []Field{{Name: "t", Type: FieldText, Weight: -1}}}, wantErr: "weight"},
		{name: "weight on tag", schema: Schema{Fields: []Field{{Name: "lang", Type: FieldTag, Weight: 1}}}, wantErr: "weight"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.schema.Validate()
			if tc.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tc.wantErr) {
				t.Fatalf("error = %v, want containing %q", err, tc.wantErr)
			}
		})
	}
}

func TestSchema_TextFields(t *testing.T) {
	s := Schema{Fields: []Field{
		{Name: "body", Type: FieldText},
		{Name: "lang", Type: FieldTag},
		{Name: "title", Type: FieldText},
	}}
	if diff := cmp.Diff([]string{"body", "title"}, s.TextFields()); diff != "" {
		t.Errorf("text fields (-want +got):\n%s", diff)
	}
}

func TestQueryConfig_Keys(t *testing.T) {
	c := DefaultQueryConfig()
	if got := c.IndexName("notes"); got != "docq:notes:idx" {
		t.Errorf("IndexName = %q", got)
	}
	if got := c.RecordPrefix("notes"); got != "docq:notes:" {
		t.Errorf("RecordPrefix = %q", got)
	}
	if c.MaxResults != 10000 {
		t.Errorf("MaxResults = %d, want 10000", c.MaxResults)
	}
}
