// Package casing normalises JSON payload keys from the wire convention
// (snake_case) to the display convention (lowerCamelCase).
package casing

import "github.com/iancoleman/strcase"

// Camelize returns a copy of v with every object key converted to
// lowerCamelCase, descending into nested objects and arrays. Values are never
// altered. v is expected to be the output of json.Unmarshal into an `any`
// (map[string]any, []any and scalars); other types are returned as is.
//
// Camelize is idempotent: Camelize(Camelize(v)) equals Camelize(v).
func Camelize(v any) any {
	switch t := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(t))
		for k, val := range t {
			out[Key(k)] = Camelize(val)
		}
		return out
	case []any:
		out := make([]any, len(t))
		for i, val := range t {
			out[i] = Camelize(val)
		}
		return out
	default:
		return v
	}
}

// Key converts a single key. Keys without separators that already start
// lower-case are returned untouched.
func Key(k string) string {
	if k == "" || isLowerCamel(k) {
		return k
	}
	return strcase.ToLowerCamel(k)
}

func isLowerCamel(k string) bool {
	if k[0] < 'a' || k[0] > 'z' {
		return false
	}
	for i := 0; i < len(k); i++ {
		switch k[i] {
		case '_', '-', ' ', '.':
			return false
		}
	}
	return true
}
