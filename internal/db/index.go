package db

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// IndexFieldType enumerates supported FT index field types.
type IndexFieldType int

const (
	// IndexFieldNumeric is a numeric field.
	IndexFieldNumeric IndexFieldType = iota
	// IndexFieldTag is a tag field.
	IndexFieldTag
	// IndexFieldText is a full-text field.
	IndexFieldText
)

func (t IndexFieldType) String() string {
	switch t {
	case IndexFieldNumeric:
		return "NUMERIC"
	case IndexFieldTag:
		return "TAG"
	case IndexFieldText:
		return "TEXT"
	default:
		return "type(" + strconv.Itoa(int(t)) + ")"
	}
}

// IndexField describes a single hash field in an FT index schema.
type IndexField struct {
	Name     string
	Type     IndexFieldType
	Sortable bool
	Weight   float64 // TEXT only; 0 means the server default of 1
}

// IndexDefinition is an FT index over record hashes.
type IndexDefinition struct {
	Name     string
	Prefixes []string
	Fields   []IndexField
}

// Validate checks that the index definition is well-formed.
func (idx *IndexDefinition) Validate() error {
	if idx.Name == "" {
		return errors.New("index name is required")
	}
	if !IsValidIdentifier(idx.Name) {
		return errors.New("index name contains invalid characters")
	}
	if len(idx.Fields) == 0 {
		return errors.New("at least one field is required")
	}

	seen := make(map[string]bool, len(idx.Fields))
	for i := range idx.Fields {
		f := &idx.Fields[i]
		if f.Name == "" {
			return errors.New("field name is required at index " + strconv.Itoa(i))
		}
		if !IsValidIdentifier(f.Name) {
			return fmt.Errorf("field %q contains invalid characters", f.Name)
		}
		if seen[f.Name] {
			return errors.New("duplicate field name: " + f.Name)
		}
		seen[f.Name] = true

		switch f.Type {
		case IndexFieldNumeric, IndexFieldTag, IndexFieldText:
		default:
			return fmt.Errorf("field %s: unknown %s", f.Name, f.Type)
		}
		if f.Weight < 0 {
			return errors.New("negative weight on field " + f.Name)
		}
		if f.Weight > 0 && f.Type != IndexFieldText {
			return errors.New("weight is only valid on TEXT field " + f.Name)
		}
	}

	return nil
}

// CreateArgs renders the FT.CREATE arguments that follow the command name.
func (idx *IndexDefinition) CreateArgs() ([]string, error) {
	if err := idx.Validate(); err != nil {
		return nil, err
	}

	args := []string{idx.Name, "ON", "HASH"}
	if len(idx.Prefixes) > 0 {
		args = append(args, "PREFIX", strconv.Itoa(len(idx.Prefixes)))
		args = append(args, idx.Prefixes...)
	}

	args = append(args, "SCHEMA")
	for i := range idx.Fields {
		f := &idx.Fields[i]
		args = append(args, f.Name, f.Type.String())
		if f.Weight > 0 {
			args = append(args, "WEIGHT", strconv.FormatFloat(f.Weight, 'g', -1, 64))
		}
		if f.Sortable {
			args = append(args, "SORTABLE")
		}
	}
	return args, nil
}

// String returns the FT.CREATE command for debugging.
func (idx *IndexDefinition) String() string {
	args, err := idx.CreateArgs()
	if err != nil {
		return "FT.CREATE " + idx.Name + " (invalid: " + err.Error() + ")"
	}
	return "FT.CREATE " + strings.Join(args, " ")
}

// IsValidIdentifier returns true if s matches [a-zA-Z0-9_:-]+.
func IsValidIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		isAlpha := (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z')
		isDigit := r >= '0' && r <= '9'
		isSpecial := r == '_' || r == ':' || r == '-'
		if !isAlpha && !isDigit && !isSpecial {
			return false
		}
	}
	return true
}
