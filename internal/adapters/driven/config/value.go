// Package config holds the value coercions shared by the ConfigStore
// adapters. TOML decodes integers as int64 and JSON as float64, so typed
// getters accept every numeric form.
package config

import "sort"

// AsString returns v as a string, or "" when it is not one.
func AsString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// AsInt returns v as an int, or 0 when it is not numeric.
func AsInt(v any) int {
	switch n := v.(type) {
	case int:
		return n
	case int64:
		return int(n)
	case float64:
		return int(n)
	default:
		return 0
	}
}

// AsBool returns v as a bool, or false when it is not one.
func AsBool(v any) bool {
	b, _ := v.(bool)
	return b
}

// SortedKeys returns the keys of m in lexical order.
func SortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
