package store

import (
	"fmt"
	"strings"
)

// IsPrimaryKey reports whether a field identifier names a business key:
// codigo_* prefixes, bare id/pk, or any *_id foreign-key style name.
// Multiple fields of one record may qualify.
func IsPrimaryKey(field string) bool {
	if strings.HasPrefix(field, "codigo_") {
		return true
	}
	if field == "id" || field == "pk" {
		return true
	}
	return strings.Contains(field, "_id")
}

// PrimaryKeyFields returns the record's primary-key fields in field order.
func PrimaryKeyFields(r *Record) []string {
	var out []string
	for _, k := range r.Keys() {
		if IsPrimaryKey(k) {
			out = append(out, k)
		}
	}
	return out
}

// RecordID returns the stringified value of the record's first primary-key
// field. ok is false when the record has no primary-key field or its value
// is nil.
func RecordID(r *Record) (string, bool) {
	for _, k := range r.Keys() {
		if !IsPrimaryKey(k) {
			continue
		}
		v, _ := r.Get(k)
		if v == nil {
			return "", false
		}
		return FormatID(v), true
	}
	return "", false
}

// FormatID renders an id value the way it appears in URLs: integral floats
// without the trailing ".0" JSON decoding would otherwise produce.
func FormatID(v any) string {
	if f, ok := v.(float64); ok && f == float64(int64(f)) {
		return fmt.Sprintf("%d", int64(f))
	}
	return fmt.Sprintf("%v", v)
}
