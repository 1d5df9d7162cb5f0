// Package jsonx reads values out of decoded JSON without panicking on
// unexpected shapes. Absent or mistyped values degrade to zero values.
package jsonx

// AsRecord returns v as a JSON object, or nil for anything else. Reading
// keys from the nil result is safe.
func AsRecord(v any) map[string]any {
	m, _ := v.(map[string]any)
	return m
}

// AsArray returns v as a JSON array, or nil.
func AsArray(v any) []any {
	a, _ := v.([]any)
	return a
}

// AsString returns v as a string, or "".
func AsString(v any) string {
	s, _ := v.(string)
	return s
}

// AsStringRecord returns the object's entries whose values are non-empty
// strings. Non-object input yields nil.
func AsStringRecord(v any) map[string]string {
	m := AsRecord(v)
	if m == nil {
		return nil
	}
	out := make(map[string]string, len(m))
	for k, val := range m {
		if s := AsString(val); s != "" {
			out[k] = s
		}
	}
	return out
}
