package model

// Coercion helpers for values decoded from generic JSON, where numbers
// arrive as float64 and every field is optional.

// ToInt64 converts a generic JSON value to int64, defaulting to 0.
func ToInt64(v any) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int:
		return int64(n)
	case float64:
		return int64(n)
	default:
		return 0
	}
}

// ToString converts a generic JSON value to string, defaulting to "".
func ToString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

// AsMap returns v as a map if it is one, nil otherwise.
func AsMap(v any) map[string]any {
	if m, ok := v.(map[string]any); ok {
		return m
	}
	return nil
}
