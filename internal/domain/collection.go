package domain

import "fmt"

// FieldType is the indexing type of a record field.
type FieldType string

const (
	// FieldText is a full-text searchable field.
	FieldText FieldType = "text"
	// FieldTag is an exact-match field. String where-equality needs this type.
	FieldTag FieldType = "tag"
	// FieldNumeric is a numeric field usable in ranges.
	FieldNumeric FieldType = "numeric"
)

// Field describes an indexed record field.
type Field struct {
	Name     string    `json:"name" yaml:"name"`
	Type     FieldType `json:"type" yaml:"type"`
	Sortable bool      `json:"sortable,omitempty" yaml:"sortable"`
	// Weight scales the relevance of a text field; 0 keeps the default.
	Weight float64 `json:"weight,omitempty" yaml:"weight"`
}

// Schema is the indexed field set of a collection.
type Schema struct {
	Fields []Field `json:"fields" yaml:"fields"`
}

// Validate checks field names and types.
func (s Schema) Validate() error {
	if len(s.Fields) == 0 {
		return fmt.Errorf("schema needs at least one field")
	}
	seen := make(map[string]bool, len(s.Fields))
	for _, f := range s.Fields {
		if f.Name == "" {
			return fmt.Errorf("field name is required")
		}
		if seen[f.Name] {
			return fmt.Errorf("duplicate field %q", f.Name)
		}
		seen[f.Name] = true
		switch f.Type {
		case FieldText, FieldTag, FieldNumeric:
		default:
			return fmt.Errorf("field %q: unknown type %q", f.Name, f.Type)
		}
		if f.Weight < 0 || (f.Weight > 0 && f.Type != FieldText) {
			return fmt.Errorf("field %q: weight applies to text fields only and must be positive", f.Name)
		}
	}
	return nil
}

// TextFields returns the names of full-text fields, in schema order.
func (s Schema) TextFields() []string {
	var out []string
	for _, f := range s.Fields {
		if f.Type == FieldText {
			out = append(out, f.Name)
		}
	}
	return out
}
