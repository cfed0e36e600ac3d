package db

import (
	"strings"
	"testing"

	"github.com/kailas-cloud/docq/internal/domain"
)

func TestIndexBuilder_Simple(t *testing.T) {
	idx := NewIndex("test-idx").
		Prefix("doc:").
		Tag("category").
		Numeric("price").
		MustBuild()

	if err := idx.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if idx.Name != "test-idx" {
		t.Errorf("name = %q, want test-idx", idx.Name)
	}
	if len(idx.Fields) != 2 {
		t.Fatalf("fields count = %d, want 2", len(idx.Fields))
	}
	if idx.Fields[0].Name != "category" || idx.Fields[0].Type != IndexFieldTag {
		t.Errorf("field[0] = %+v, want category TAG", idx.Fields[0])
	}
	if idx.Fields[1].Name != "price" || idx.Fields[1].Type != IndexFieldNumeric {
		t.Errorf("field[1] = %+v, want price NUMERIC", idx.Fields[1])
	}
}

func TestIndexBuilder_SortableAndWeight(t *testing.T) {
	idx := NewIndex("txt-idx").
		Prefix("doc:").
		Text("title").Weight(2).
		Numeric("order").Sortable().
		MustBuild()

	if idx.Fields[0].Weight != 2 {
		t.Errorf("weight = %v, want 2", idx.Fields[0].Weight)
	}
	if idx.Fields[0].Sortable {
		t.Error("title should not be sortable")
	}
	if !idx.Fields[1].Sortable {
		t.Error("order should be sortable")
	}
}

func TestIndexBuilder_SortableWithoutFields(t *testing.T) {
	b := NewIndex("empty").Sortable().Weight(3)
	if len(b.def.Fields) != 0 {
		t.Fatalf("modifiers must not add fields, got %d", len(b.def.Fields))
	}
}

func TestIndexBuilder_MultiplePrefixes(t *testing.T) {
	idx := NewIndex("multi-idx").
		Prefix("a:", "b:", "c:").
		Tag("x").
		MustBuild()

	if len(idx.Prefixes) != 3 {
		t.Errorf("prefix count = %d, want 3", len(idx.Prefixes))
	}
}

func TestSchemaIndex(t *testing.T) {
	schema := domain.Schema{Fields: []domain.Field{
		{Name: "title", Type: domain.FieldText, Weight: 2},
		{Name: "text", Type: domain.FieldText},
		{Name: "year", Type: domain.FieldNumeric, Sortable: true},
	}}
	idx := SchemaIndex("docq:articles:idx", "docq:articles:", schema).MustBuild()

	got := idx.String()
	want := "FT.CREATE docq:articles:idx ON HASH PREFIX 1 docq:articles: SCHEMA " +
		"title TEXT WEIGHT 2 text TEXT year NUMERIC SORTABLE slug TAG SORTABLE"
	if got != want {
		t.Errorf("String() =\n  %q\nwant\n  %q", got, want)
	}
}

func TestSchemaIndex_ExplicitSlug(t *testing.T) {
	schema := domain.Schema{Fields: []domain.Field{
		{Name: "slug", Type: domain.FieldTag},
		{Name: "text", Type: domain.FieldText},
	}}
	idx := SchemaIndex("idx", "p:", schema).MustBuild()

	if len(idx.Fields) != 2 {
		t.Fatalf("fields = %d, want 2", len(idx.Fields))
	}
	if !idx.Fields[0].Sortable {
		t.Error("slug should be sortable")
	}
}

func TestIndexBuilder_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		builder func() (*IndexDefinition, error)
		wantErr string
	}{
		{
			name: "empty name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("").Tag("x").Build()
			},
			wantErr: "index name is required",
		},
		{
			name: "no fields",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Build()
			},
			wantErr: "at least one field",
		},
		{
			name: "weight on tag",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Tag("x").Weight(2).Build()
			},
			wantErr: "only valid on TEXT",
		},
		{
			name: "negative weight",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Text("x").Weight(-1).Build()
			},
			wantErr: "negative weight",
		},
		{
			name: "invalid field name",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx").Tag("$.x").Build()
			},
			wantErr: "invalid characters",
		},
		{
			name: "invalid characters",
			builder: func() (*IndexDefinition, error) {
				return NewIndex("idx with spaces").Tag("x").Build()
			},
			wantErr: "invalid characters",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := tt.builder()
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("got error %q, want containing %q", err.Error(), tt.wantErr)
			}
		})
	}
}

func TestIndexDefinition_String(t *testing.T) {
	idx := NewIndex("my-idx").
		Prefix("doc:").
		Tag("cat").
		Text("body").Weight(1.5).
		MustBuild()

	s := idx.String()
	want := "FT.CREATE my-idx ON HASH PREFIX 1 doc: SCHEMA cat TAG body TEXT WEIGHT 1.5"
	if s != want {
		t.Errorf("String() = %q, want %q", s, want)
	}
}

func TestIndexBuilder_DuplicateFields(t *testing.T) {
	idx := &IndexDefinition{
		Name: "dup-idx",
		Fields: []IndexField{
			{Name: "field1", Type: IndexFieldTag},
			{Name: "field1", Type: IndexFieldNumeric},
		},
	}

	if err := idx.Validate(); err == nil {
		t.Fatal("expected error for duplicate fields")
	}
}

func TestIndexDefinition_CreateArgs(t *testing.T) {
	idx := NewIndex("idx").Prefix("a:", "b:").Numeric("n").Sortable().MustBuild()

	args, err := idx.CreateArgs()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := []string{"idx", "ON", "HASH", "PREFIX", "2", "a:", "b:", "SCHEMA", "n", "NUMERIC", "SORTABLE"}
	if strings.Join(args, " ") != strings.Join(want, " ") {
		t.Errorf("args = %v, want %v", args, want)
	}
}

func TestIndexDefinition_InvalidString(t *testing.T) {
	idx := &IndexDefinition{Name: "idx"}
	if _, err := idx.CreateArgs(); err == nil {
		t.Fatal("expected error for empty schema")
	}
	if s := idx.String(); !strings.Contains(s, "invalid") {
		t.Errorf("String() = %q, want invalid marker", s)
	}
}

func TestIndexDefinition_UnknownFieldType(t *testing.T) {
	idx := &IndexDefinition{Name: "idx", Fields: []IndexField{{Name: "f", Type: IndexFieldType(99)}}}
	err := idx.Validate()
	if err == nil || !strings.Contains(err.Error(), "type(99)") {
		t.Fatalf("expected unknown type error, got %v", err)
	}
}
