package frontmatter

import (
	"bytes"
	"slices"
	"strings"
)

// Value is a header value: either a raw string or a list of strings.
// Values are never coerced; "42" and "true" stay strings.
type Value struct {
	Scalar string
	List   []string
	IsList bool
}

// StringValue returns a scalar Value.
func StringValue(s string) Value { return Value{Scalar: s} }

// ListValue returns a list Value.
func ListValue(items ...string) Value {
	if items == nil {
		items = []string{}
	}
	return Value{List: items, IsList: true}
}

// Fields maps header keys to values.
type Fields map[string]Value

// Parse reads `key: value` lines.
//
// Keys and values are split on the first colon and trimmed. A value wrapped in
// double quotes has the quotes removed; a value then shaped like `[a, b]`
// becomes a list, whether or not it was quoted. Lines without a colon or with an empty
// key are skipped, and later duplicates win.
func Parse(raw []byte) Fields {
	fields := Fields{}
	for _, line := range bytes.Split(raw, []byte("\n")) {
		text := strings.TrimRight(string(line), "\r")
		key, value, ok := strings.Cut(text, ":")
		if !ok {
			continue
		}
		key = strings.TrimSpace(key)
		if key == "" {
			continue
		}
		fields[key] = parseValue(strings.TrimSpace(value))
	}
	return fields
}

func parseValue(v string) Value {
	if unquoted, ok := unquote(v); ok {
		v = unquoted
	}
	if len(v) >= 2 && v[0] == '[' && v[len(v)-1] == ']' {
		inner := strings.TrimSpace(v[1 : len(v)-1])
		if inner == "" {
			return ListValue()
		}
		parts := strings.Split(inner, ",")
		items := make([]string, 0, len(parts))
		for _, p := range parts {
			item := strings.TrimSpace(p)
			if unquoted, ok := unquote(item); ok {
				item = unquoted
			}
			items = append(items, item)
		}
		return ListValue(items...)
	}
	return StringValue(v)
}

func unquote(v string) (string, bool) {
	if len(v) >= 2 && v[0] == '"' && v[len(v)-1] == '"' {
		return v[1 : len(v)-1], true
	}
	return "", false
}

// Has reports whether key is present.
func (f Fields) Has(key string) bool {
	_, ok := f[key]
	return ok
}

// String returns the scalar for key. Lists are joined with ", ".
func (f Fields) String(key string) string {
	v, ok := f[key]
	if !ok {
		return ""
	}
	if v.IsList {
		return strings.Join(v.List, ", ")
	}
	return v.Scalar
}

// Strings returns the list for key. A non-empty scalar becomes a single item list.
func (f Fields) Strings(key string) []string {
	v, ok := f[key]
	switch {
	case !ok:
		return nil
	case v.IsList:
		return slices.Clone(v.List)
	case v.Scalar == "":
		return nil
	default:
		return []string{v.Scalar}
	}
}

// Keys returns the keys in sorted order.
func (f Fields) Keys() []string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
