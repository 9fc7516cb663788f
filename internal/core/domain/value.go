package domain

import "strings"

// Value is the closed set of TOML value shapes the emitter knows how to
// render: strings, booleans, arrays and inline tables. The regenerated
// manifests are reviewed as diffs, so the renderer favors a fixed,
// low-noise layout over general-purpose serialization.
type Value interface {
	isValue()
}

// String is a quoted TOML string value.
type String string

// Bool is a TOML boolean value, rendered lower-case.
type Bool bool

// Array is a TOML array value. At the top level of an entry it renders one
// item per line; nested inside an inline table it renders as a one-line
// bracket literal.
type Array []Value

// Table is an insertion-ordered inline table value.
type Table struct {
	keys  []string
	items map[string]Value
}

func (String) isValue() {}
func (Bool) isValue()   {}
func (Array) isValue()  {}
func (*Table) isValue() {}

// NewTable creates an empty inline table.
func NewTable() *Table {
	return &Table{items: make(map[string]Value)}
}

// Set stores a value, appending the key to the order if it is new.
func (t *Table) Set(key string, v Value) *Table {
	if _, ok := t.items[key]; !ok {
		t.keys = append(t.keys, key)
	}
	t.items[key] = v
	return t
}

// Keys returns the table keys in insertion order.
func (t *Table) Keys() []string {
	return append([]string(nil), t.keys...)
}

// Get returns the value stored under key.
func (t *Table) Get(key string) (Value, bool) {
	v, ok := t.items[key]
	return v, ok
}

// Len returns the number of entries.
func (t *Table) Len() int {
	return len(t.keys)
}

// EncodeEntry renders one `key = value` manifest entry. Strings are quoted,
// booleans lower-cased, arrays rendered one item per line and tables as a
// single-line inline table.
func EncodeEntry(key string, v Value) string {
	switch val := v.(type) {
	case String:
		return key + ` = "` + string(val) + `"`
	case Bool:
		return key + " = " + renderBool(bool(val))
	case Array:
		return key + " = " + renderArrayBlock(val)
	case *Table:
		return key + " = " + renderInline(val)
	default:
		return key + " ="
	}
}

// EncodeInlineEntry renders one `key = value` entry with the value kept on a
// single line regardless of shape. Used for pass-through blocks like features.
func EncodeInlineEntry(key string, v Value) string {
	return key + " = " + renderInline(v)
}

// renderArrayBlock renders a top-level array with one item per line.
func renderArrayBlock(a Array) string {
	if len(a) == 0 {
		return "[]"
	}
	var b strings.Builder
	b.WriteString("[\n")
	for i, item := range a {
		if i > 0 {
			b.WriteString(",\n")
		}
		b.WriteString(" " + renderInline(item))
	}
	b.WriteString("\n]")
	return b.String()
}

// renderInline renders a value on a single line, for use inside inline tables
// and nested arrays.
func renderInline(v Value) string {
	switch val := v.(type) {
	case String:
		return `"` + string(val) + `"`
	case Bool:
		return renderBool(bool(val))
	case Array:
		parts := make([]string, len(val))
		for i, item := range val {
			parts[i] = renderInline(item)
		}
		return "[" + strings.Join(parts, ", ") + "]"
	case *Table:
		if len(val.keys) == 0 {
			return "{ }"
		}
		parts := make([]string, len(val.keys))
		for i, k := range val.keys {
			parts[i] = k + " = " + renderInline(val.items[k])
		}
		return "{ " + strings.Join(parts, ", ") + " }"
	default:
		return ""
	}
}

func renderBool(b bool) string {
	if b {
		return "true"
	}
	return "false"
}

// Strings converts a string slice into an Array value.
func Strings(items []string) Array {
	a := make(Array, len(items))
	for i, s := range items {
		a[i] = String(s)
	}
	return a
}
