package gml

import (
	"encoding/json"
	"maps"
	"slices"
	"strconv"
)

// Kind identifies the type held by a [Value].
type Kind uint8

const (
	// KindInvalid is the zero Kind, held only by the zero Value.
	KindInvalid Kind = iota
	// KindInt marks a base-10 integer attribute value.
	KindInt
	// KindString marks a quoted string attribute value.
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindInt:
		return "int"
	case KindString:
		return "string"
	default:
		return "invalid"
	}
}

// Value is a scalar GML attribute value: either an integer or a string.
// The zero Value is invalid and is never stored by the parser.
type Value struct {
	kind Kind
	i    int
	s    string
}

// IntValue returns a Value holding n.
func IntValue(n int) Value { return Value{kind: KindInt, i: n} }

// StringValue returns a Value holding s.
func StringValue(s string) Value { return Value{kind: KindString, s: s} }

// Kind reports the type of the value.
func (v Value) Kind() Kind { return v.kind }

// IsInt reports whether v holds an integer.
func (v Value) IsInt() bool { return v.kind == KindInt }

// IsString reports whether v holds a string.
func (v Value) IsString() bool { return v.kind == KindString }

// Int returns the integer held by v and true, or 0 and false if v is not
// an integer.
func (v Value) Int() (int, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Str returns the string held by v and true, or "" and false if v is not
// a string.
func (v Value) Str() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.s, true
}

// Interface returns the value as an int or a string, or nil for the zero Value.
func (v Value) Interface() any {
	switch v.kind {
	case KindInt:
		return v.i
	case KindString:
		return v.s
	default:
		return nil
	}
}

// String renders the value the way it would appear in GML: integers bare,
// strings wrapped in double quotes. No escaping is applied.
func (v Value) String() string {
	switch v.kind {
	case KindInt:
		return strconv.Itoa(v.i)
	case KindString:
		return `"` + v.s + `"`
	default:
		return "<invalid>"
	}
}

// MarshalJSON encodes integers as JSON numbers and strings as JSON strings.
func (v Value) MarshalJSON() ([]byte, error) {
	return json.Marshal(v.Interface())
}

// Attrs maps attribute names to their values. Names are unique per object;
// a re-declared name keeps the last value seen.
type Attrs map[string]Value

// Get returns the value stored under key.
func (a Attrs) Get(key string) (Value, bool) {
	v, ok := a[key]
	return v, ok
}

// Int returns the integer stored under key. It reports false when the key
// is absent or holds a string.
func (a Attrs) Int(key string) (int, bool) {
	v, ok := a[key]
	if !ok {
		return 0, false
	}
	return v.Int()
}

// Str returns the string stored under key. It reports false when the key
// is absent or holds an integer.
func (a Attrs) Str(key string) (string, bool) {
	v, ok := a[key]
	if !ok {
		return "", false
	}
	return v.Str()
}

// Keys returns the attribute names in sorted order.
func (a Attrs) Keys() []string {
	return slices.Sorted(maps.Keys(a))
}
