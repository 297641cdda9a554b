// Package jsonvalue wraps the JSON decode/encode primitives used by the rest
// of the module and provides the small value-walking helpers they share.
// Decoded values use the usual Go mapping: map[string]any, []any, string,
// float64, bool and nil.
package jsonvalue

import (
	"bytes"
	"encoding/json"
	"strconv"
)

// Decode parses one self-contained JSON text into a semantic value.
func Decode(data []byte) (any, error) {
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return nil, err
	}
	return v, nil
}

// Encode serializes a semantic value back to JSON text, without a trailing
// newline and without HTML escaping.
func Encode(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Revive applies fn bottom-up over v, like the reviver argument of a JSON
// parse primitive: children first, each identified by its object key or
// decimal array index, then the root with key "".
func Revive(v any, fn func(key string, value any) any) any {
	return fn("", revive(v, fn))
}

func revive(v any, fn func(key string, value any) any) any {
	switch x := v.(type) {
	case map[string]any:
		for k, e := range x {
			x[k] = fn(k, revive(e, fn))
		}
	case []any:
		for i, e := range x {
			x[i] = fn(strconv.Itoa(i), revive(e, fn))
		}
	}
	return v
}

// String renders a decoded value as a plain string, for use as a field or
// object key: strings are used verbatim, everything else is encoded as
// compact JSON.
func String(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	data, err := Encode(v)
	if err != nil {
		return ""
	}
	return string(data)
}

// IsEmpty reports whether a leaf value counts as empty: nil or "".
func IsEmpty(v any) bool {
	if v == nil {
		return true
	}
	s, ok := v.(string)
	return ok && s == ""
}

// AllLeavesEmpty reports whether every leaf value reachable from v is empty.
// Containers with no elements count as all-empty.
func AllLeavesEmpty(v any) bool {
	switch x := v.(type) {
	case map[string]any:
		for _, e := range x {
			if !AllLeavesEmpty(e) {
				return false
			}
		}
		return true
	case []any:
		for _, e := range x {
			if !AllLeavesEmpty(e) {
				return false
			}
		}
		return true
	default:
		return IsEmpty(v)
	}
}

// IsTruthy reports whether v would be considered truthy when deciding if a
// field value can key an output: nil, false, 0 and "" are falsy.
func IsTruthy(v any) bool {
	switch x := v.(type) {
	case nil:
		return false
	case bool:
		return x
	case string:
		return x != ""
	case float64:
		return x != 0
	default:
		return true
	}
}
