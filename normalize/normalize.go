// Package normalize coerces loosely typed values read from the store into the
// shapes the rest of the application relies on. Every function here is pure
// and idempotent: applying it to its own output returns the same value.
package normalize

import (
	"reflect"
	"strings"
)

// linkSentinel is written by older clients in place of a missing URL.
const linkSentinel = "null"

// ToSequence returns the items of v when v is a slice or array, and an empty
// slice for anything else (nil, scalars, maps, text). Byte slices are treated
// as scalars.
func ToSequence(v any) []any {
	switch s := v.(type) {
	case nil:
		return []any{}
	case []any:
		if s == nil {
			return []any{}
		}
		return s
	case []string:
		out := make([]any, len(s))
		for i, item := range s {
			out[i] = item
		}
		return out
	case []byte, string:
		return []any{}
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Slice, reflect.Array:
		if rv.Kind() == reflect.Slice && rv.IsNil() {
			return []any{}
		}
		out := make([]any, rv.Len())
		for i := 0; i < rv.Len(); i++ {
			out[i] = rv.Index(i).Interface()
		}
		return out
	case reflect.Pointer:
		if rv.IsNil() {
			return []any{}
		}
		return ToSequence(rv.Elem().Interface())
	}
	return []any{}
}

// ToStrings returns the text items of v in order. Non-text items are dropped.
func ToStrings(v any) []string {
	items := ToSequence(v)
	out := make([]string, 0, len(items))
	for _, item := range items {
		switch s := item.(type) {
		case string:
			out = append(out, s)
		case *string:
			if s != nil {
				out = append(out, *s)
			}
		}
	}
	return out
}

// ToText returns v when it is text and "" otherwise.
func ToText(v any) string {
	switch s := v.(type) {
	case string:
		return s
	case *string:
		if s != nil {
			return *s
		}
	}
	return ""
}

// ToFlag reports the truthiness of v: nil, false, numeric zero and empty
// text are false, everything else is true.
func ToFlag(v any) bool {
	switch b := v.(type) {
	case nil:
		return false
	case bool:
		return b
	case *bool:
		return b != nil && *b
	case string:
		return b != ""
	case *string:
		return b != nil && *b != ""
	}

	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return rv.Int() != 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return rv.Uint() != 0
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		return f != 0 && f == f // NaN is falsy
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return !rv.IsNil()
	}
	return true
}

// ToCategory trims v and matches it case-insensitively against valid,
// returning the matching member as spelled in valid. When nothing matches
// def is returned.
func ToCategory(v any, valid []string, def string) string {
	c := strings.TrimSpace(ToText(v))
	for _, member := range valid {
		if strings.EqualFold(c, member) {
			return member
		}
	}
	return def
}

// SplitList splits comma separated text into trimmed, non-empty parts.
func SplitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// ToLink returns the trimmed URL held in v, or "" when v is not text or
// holds the "null" sentinel.
func ToLink(v any) string {
	link := strings.TrimSpace(ToText(v))
	if strings.EqualFold(link, linkSentinel) {
		return ""
	}
	return link
}
