package db

import "github.com/kailas-cloud/docq/internal/domain"

// IndexBuilder is a fluent builder for FT index definitions.
type IndexBuilder struct {
	def IndexDefinition
}

// NewIndex starts building an FT index definition.
func NewIndex(name string) *IndexBuilder {
	return &IndexBuilder{
		def: IndexDefinition{Name: name},
	}
}

// SchemaIndex builds the index for a collection schema. The slug is always
// indexed as a sortable tag so records can be addressed and windowed.
// Equality filters on strings compile to tag queries, so fields used in
// where conditions must be tag fields; text fields are for search only.
func SchemaIndex(name, prefix string, schema domain.Schema) *IndexBuilder {
	b := NewIndex(name).Prefix(prefix)
	hasSlug := false
	for _, f := range schema.Fields {
		switch f.Type {
		case domain.FieldText:
			b.Text(f.Name).Weight(f.Weight)
		case domain.FieldTag:
			b.Tag(f.Name)
		case domain.FieldNumeric:
			b.Numeric(f.Name)
		}
		if f.Sortable || f.Name == "slug" {
			b.Sortable()
		}
		hasSlug = hasSlug || f.Name == "slug"
	}
	if !hasSlug {
		b.Tag("slug").Sortable()
	}
	return b
}

// Prefix adds key prefixes to the index.
func (b *IndexBuilder) Prefix(prefixes ...string) *IndexBuilder {
	b.def.Prefixes = append(b.def.Prefixes, prefixes...)
	return b
}

// Numeric adds a NUMERIC field to the index.
func (b *IndexBuilder) Numeric(name string) *IndexBuilder {
	return b.field(IndexField{Name: name, Type: IndexFieldNumeric})
}

// Tag adds a TAG field to the index.
func (b *IndexBuilder) Tag(name string) *IndexBuilder {
	return b.field(IndexField{Name: name, Type: IndexFieldTag})
}

// Text adds a TEXT field to the index.
func (b *IndexBuilder) Text(name string) *IndexBuilder {
	return b.field(IndexField{Name: name, Type: IndexFieldText})
}

// Sortable marks the most recently added field SORTABLE.
func (b *IndexBuilder) Sortable() *IndexBuilder {
	if n := len(b.def.Fields); n > 0 {
		b.def.Fields[n-1].Sortable = true
	}
	return b
}

// Weight sets the relevance weight of the most recently added TEXT field.
func (b *IndexBuilder) Weight(w float64) *IndexBuilder {
	if n := len(b.def.Fields); n > 0 {
		b.def.Fields[n-1].Weight = w
	}
	return b
}

func (b *IndexBuilder) field(f IndexField) *IndexBuilder {
	b.def.Fields = append(b.def.Fields, f)
	return b
}

// Build validates and returns the index definition.
func (b *IndexBuilder) Build() (*IndexDefinition, error) {
	if err := b.def.Validate(); err != nil {
		return nil, err
	}
	return &b.def, nil
}

// MustBuild calls Build and panics on error.
func (b *IndexBuilder) MustBuild() *IndexDefinition {
	def, err := b.Build()
	if err != nil {
		panic(err)
	}
	return def
}
