// Package record holds the schema-free record type shared by the builder and store adapters.
package record

import (
	"fmt"
	"strings"
)

const (
	// FieldSlug identifies a record within its collection.
	FieldSlug = "slug"
	// FieldText holds the record body; it is stripped from fetch results.
	FieldText = "text"
	// MetaPrefix marks store bookkeeping fields.
	MetaPrefix = "__"
	// FieldKey carries the store key of a materialized record.
	FieldKey = MetaPrefix + "key"
)

// Record is one stored document. A nil Record is the null placeholder of a window.
type Record map[string]any

// Slug returns the record identifier, or "" for nil records and records without one.
func Slug(r Record) string {
	v, ok := r[FieldSlug]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}

// Pick returns a new record holding only the keys of r listed in keys.
func Pick(r Record, keys []string) Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(keys))
	for _, k := range keys {
		if v, ok := r[k]; ok {
			out[k] = v
		}
	}
	return out
}

// Omit returns a copy of r without the listed keys.
func Omit(r Record, keys ...string) Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	for _, k := range keys {
		delete(out, k)
	}
	return out
}

// StripMeta returns a copy of r without store bookkeeping fields.
func StripMeta(r Record) Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		if strings.HasPrefix(k, MetaPrefix) {
			continue
		}
		out[k] = v
	}
	return out
}

// Clone returns a shallow copy of r.
func Clone(r Record) Record {
	return Omit(r)
}

// Map applies fn to every record of rs and returns the new sequence.
func Map(rs []Record, fn func(Record) Record) []Record {
	if rs == nil {
		return nil
	}
	out := make([]Record, len(rs))
	for i, r := range rs {
		out[i] = fn(r)
	}
	return out
}
