// Package redact bounds field values before transmission. Strings are
// truncated, non-scalar values are serialized then truncated, and
// media-like values are stripped down to their file identifier pair.
package redact

import "encoding/json"

// Truncate cuts s to at most max characters. A non-positive max
// disables truncation.
func Truncate(s string, max int) string {
	if max <= 0 {
		return s
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max])
}

// Value returns a bounded, safe representation of a scalar leaf.
// Strings are truncated; numbers and bools pass through; maps and
// slices are compact-serialized then truncated; nil stays nil, which
// tells the caller to omit the field.
func Value(v any, max int) any {
	switch x := v.(type) {
	case nil:
		return nil
	case string:
		return Truncate(x, max)
	case bool, float64, int, int64:
		return v
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return nil
		}
		return Truncate(string(b), max)
	}
}

// FileRefs maps a media value to its identifier pair. A single media
// object becomes {file_id, file_unique_id}; an ordered sequence of
// media items maps element-wise, preserving order. Every other
// sub-field of the source value is dropped. Returns nil when the value
// carries no identifiers at all.
func FileRefs(v any) any {
	switch x := v.(type) {
	case map[string]any:
		return refFrom(x)
	case []any:
		out := make([]any, 0, len(x))
		for _, item := range x {
			m, ok := item.(map[string]any)
			if !ok {
				continue
			}
			if ref := refFrom(m); ref != nil {
				out = append(out, ref)
			}
		}
		if len(out) == 0 {
			return nil
		}
		return out
	default:
		return nil
	}
}

func refFrom(m map[string]any) map[string]any {
	id, _ := m["file_id"].(string)
	uid, _ := m["file_unique_id"].(string)
	if id == "" && uid == "" {
		return nil
	}
	ref := make(map[string]any, 2)
	if id != "" {
		ref["file_id"] = id
	}
	if uid != "" {
		ref["file_unique_id"] = uid
	}
	return ref
}
