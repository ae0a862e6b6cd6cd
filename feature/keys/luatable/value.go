package luatable

import (
	"sort"
	"strconv"
	"strings"

	"keys-monitor/core/utils"
)

// Kind is the dynamic type of a decoded value.
type Kind int

const (
	KindNil Kind = iota
	KindString
	KindNumber
	KindBool
	KindTable
)

func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "boolean"
	case KindTable:
		return "table"
	default:
		return "nil"
	}
}

// Value is a decoded Lua value. The zero Value is nil.
// Fields are never read directly; use the As* conversions, which report
// whether the value has a usable shape.
type Value struct {
	kind  Kind
	str   string
	num   float64
	b     bool
	table *Table
}

// String wraps s as a string value.
func String(s string) Value { return Value{kind: KindString, str: s} }

// Number wraps f as a number value.
func Number(f float64) Value { return Value{kind: KindNumber, num: f} }

// Bool wraps b as a boolean value.
func Bool(b bool) Value { return Value{kind: KindBool, b: b} }

// TableValue wraps t as a table value.
func TableValue(t *Table) Value { return Value{kind: KindTable, table: t} }

// Kind returns the dynamic type.
func (v Value) Kind() Kind { return v.kind }

// IsNil reports whether the value is nil.
func (v Value) IsNil() bool { return v.kind == KindNil }

// AsString returns the value if it is a string.
func (v Value) AsString() (string, bool) {
	if v.kind != KindString {
		return "", false
	}
	return v.str, true
}

// AsInt returns an integral number, or a string holding one.
func (v Value) AsInt() (int, bool) {
	switch v.kind {
	case KindNumber:
		if v.num != float64(int(v.num)) {
			return 0, false
		}
		return int(v.num), true
	case KindString:
		return utils.ParseInt(v.str)
	default:
		return 0, false
	}
}

// AsDecimal renders numbers in decimal notation and passes strings through.
func (v Value) AsDecimal() (string, bool) {
	switch v.kind {
	case KindNumber:
		return utils.FormatNumber(v.num), true
	case KindString:
		return strings.TrimSpace(v.str), true
	default:
		return "", false
	}
}

// AsBool returns the value if it is a boolean.
func (v Value) AsBool() (bool, bool) {
	if v.kind != KindBool {
		return false, false
	}
	return v.b, true
}

// AsTable returns the value if it is a table.
func (v Value) AsTable() (*Table, bool) {
	if v.kind != KindTable || v.table == nil {
		return nil, false
	}
	return v.table, true
}

// String formats the value for logs.
func (v Value) String() string {
	switch v.kind {
	case KindString:
		return strconv.Quote(v.str)
	case KindNumber:
		return utils.FormatNumber(v.num)
	case KindBool:
		return strconv.FormatBool(v.b)
	case KindTable:
		return "table(" + strconv.Itoa(v.table.Len()) + ")"
	default:
		return "nil"
	}
}

// Table is a decoded table constructor: positional items plus named fields.
type Table struct {
	array   []Value
	indexed map[int]Value
	fields  map[string]Value
	keys    []string
}

// NewTable returns an empty table.
func NewTable() *Table {
	return &Table{fields: make(map[string]Value)}
}

// Append adds a positional item.
func (t *Table) Append(v Value) {
	t.array = append(t.array, v)
}

// SetIndex stores v under an explicit integer key such as [3] = v.
func (t *Table) SetIndex(i int, v Value) {
	if i >= 1 && i <= len(t.array) {
		t.array[i-1] = v
		return
	}
	if t.indexed == nil {
		t.indexed = make(map[int]Value)
	}
	t.indexed[i] = v
}

// Set stores v under name. A repeated name keeps its first position in Keys.
func (t *Table) Set(name string, v Value) {
	if _, ok := t.fields[name]; !ok {
		t.keys = append(t.keys, name)
	}
	t.fields[name] = v
}

// Field returns the value stored under name. Nil values count as absent.
func (t *Table) Field(name string) (Value, bool) {
	v, ok := t.fields[name]
	if !ok || v.IsNil() {
		return Value{}, false
	}
	return v, true
}

// Keys returns field names in source order.
func (t *Table) Keys() []string {
	out := make([]string, len(t.keys))
	copy(out, t.keys)
	return out
}

// Entries returns positional items in order, followed by items stored under
// explicit integer keys in ascending key order.
func (t *Table) Entries() []Value {
	out := make([]Value, 0, t.Len())
	out = append(out, t.array...)
	if len(t.indexed) == 0 {
		return out
	}
	idx := make([]int, 0, len(t.indexed))
	for i := range t.indexed {
		idx = append(idx, i)
	}
	sort.Ints(idx)
	for _, i := range idx {
		out = append(out, t.indexed[i])
	}
	return out
}

// Len returns the number of positional and integer-keyed items.
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.array) + len(t.indexed)
}
