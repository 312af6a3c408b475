// Package models defines the Structured Value shared by every converter: a
// tagged union over null, booleans, numbers, strings, sequences and
// insertion-ordered mappings.
package models

import (
	"encoding/json"
	"math"
	"slices"
	"strconv"
)

// Kind identifies which variant a Value holds.
type Kind int

const (
	NullKind Kind = iota
	BoolKind
	NumberKind
	StringKind
	SequenceKind
	MappingKind
)

// String returns the lowercase name of the kind
func (k Kind) String() string {
	switch k {
	case NullKind:
		return "null"
	case BoolKind:
		return "bool"
	case NumberKind:
		return "number"
	case StringKind:
		return "string"
	case SequenceKind:
		return "sequence"
	case MappingKind:
		return "mapping"
	default:
		return "unknown"
	}
}

// Value is an immutable Structured Value. Constructors copy their inputs and
// container accessors return copies. The zero Value is Null.
type Value struct {
	kind    Kind
	boolean bool
	text    string // string contents, or the JSON text of a number
	items   []Value
	mapping *Mapping
}

// Member is a single key/value pair of a Mapping.
type Member struct {
	Key   string
	Value Value
}

// Null returns the null value
func Null() Value {
	return Value{}
}

// Bool wraps a boolean
func Bool(b bool) Value {
	return Value{kind: BoolKind, boolean: b}
}

// String wraps a string
func String(s string) Value {
	return Value{kind: StringKind, text: s}
}

// Number wraps a JSON number literal. The literal is kept verbatim and is
// trusted: callers holding unchecked text use ValidNumber or FromGo.
func Number(n json.Number) Value {
	return Value{kind: NumberKind, text: string(n)}
}

// Int wraps an integer
func Int(i int64) Value {
	return Value{kind: NumberKind, text: strconv.FormatInt(i, 10)}
}

// Uint wraps an unsigned integer
func Uint(u uint64) Value {
	return Value{kind: NumberKind, text: strconv.FormatUint(u, 10)}
}

// Float wraps a float. NaN and infinities have no JSON form and become Null.
func Float(f float64) Value {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return Null()
	}
	return Value{kind: NumberKind, text: formatFloat(f)}
}

// Sequence builds a sequence from a copy of items
func Sequence(items ...Value) Value {
	if items == nil {
		return Value{kind: SequenceKind, items: []Value{}}
	}
	return Value{kind: SequenceKind, items: slices.Clone(items)}
}

// ValidNumber reports whether lit is a number in JSON syntax
func ValidNumber(lit string) bool {
	if lit == "" {
		return false
	}
	// json.Valid allows surrounding whitespace and other value types
	first, last := lit[0], lit[len(lit)-1]
	if (first != '-' && (first < '0' || first > '9')) || last < '0' || last > '9' {
		return false
	}
	return json.Valid([]byte(lit))
}

// Object builds a mapping from members in order. Repeated keys keep the
// position of the first occurrence and the value of the last.
func Object(members ...Member) Value {
	m := NewMapping()
	for _, member := range members {
		m.Set(member.Key, member.Value)
	}
	return m.Value()
}

// Field is shorthand for a Member literal
func Field(key string, value Value) Member {
	return Member{Key: key, Value: value}
}

// Kind reports the variant held by v
func (v Value) Kind() Kind {
	return v.kind
}

// IsNull reports whether v is null
func (v Value) IsNull() bool {
	return v.kind == NullKind
}

// IsContainer reports whether v is a sequence or a mapping
func (v Value) IsContainer() bool {
	return v.kind == SequenceKind || v.kind == MappingKind
}

// IsEmpty reports whether v is a container with no elements
func (v Value) IsEmpty() bool {
	switch v.kind {
	case SequenceKind:
		return len(v.items) == 0
	case MappingKind:
		return v.mapping.Len() == 0
	default:
		return false
	}
}

// BoolValue returns the boolean held by v, false for other kinds
func (v Value) BoolValue() bool {
	return v.boolean
}

// StringValue returns the string held by v, empty for other kinds
func (v Value) StringValue() string {
	if v.kind != StringKind {
		return ""
	}
	return v.text
}

// NumberValue returns the number literal held by v, empty for other kinds
func (v Value) NumberValue() json.Number {
	if v.kind != NumberKind {
		return ""
	}
	return json.Number(v.text)
}

// Items returns a copy of the elements of a sequence
func (v Value) Items() []Value {
	if v.kind != SequenceKind {
		return nil
	}
	return slices.Clone(v.items)
}

// Len returns the number of elements of a sequence or mapping
func (v Value) Len() int {
	switch v.kind {
	case SequenceKind:
		return len(v.items)
	case MappingKind:
		return v.mapping.Len()
	default:
		return 0
	}
}

// Members returns a copy of the key/value pairs of a mapping in order, nil
// for other kinds
func (v Value) Members() []Member {
	if v.kind != MappingKind {
		return nil
	}
	return v.mapping.Members()
}

// Mapping returns a copy of the mapping held by v, nil for other kinds.
// Setting keys on the copy leaves v unchanged.
func (v Value) Mapping() *Mapping {
	if v.kind != MappingKind {
		return nil
	}
	return v.mapping.clone()
}

// Text is the plain string coercion of a scalar: strings as-is, numbers in
// their JSON form, booleans as true/false and null as "null". Containers
// render as compact JSON.
func (v Value) Text() string {
	switch v.kind {
	case NullKind:
		return "null"
	case BoolKind:
		return strconv.FormatBool(v.boolean)
	case NumberKind, StringKind:
		return v.text
	default:
		data, err := v.MarshalJSON()
		if err != nil {
			return ""
		}
		return string(data)
	}
}

// Equal reports deep equality. Numbers compare by numeric value when both
// literals parse as floats, so 1 and 1.0 are equal.
func (v Value) Equal(other Value) bool {
	if v.kind != other.kind {
		return false
	}
	switch v.kind {
	case NullKind:
		return true
	case BoolKind:
		return v.boolean == other.boolean
	case StringKind:
		return v.text == other.text
	case NumberKind:
		if v.text == other.text {
			return true
		}
		a, errA := strconv.ParseFloat(v.text, 64)
		b, errB := strconv.ParseFloat(other.text, 64)
		return errA == nil && errB == nil && a == b
	case SequenceKind:
		if len(v.items) != len(other.items) {
			return false
		}
		for i := range v.items {
			if !v.items[i].Equal(other.items[i]) {
				return false
			}
		}
		return true
	case MappingKind:
		return v.mapping.equal(other.mapping)
	}
	return false
}

// formatFloat renders f the way JavaScript's Number#toString does for the
// common range, falling back to exponent form for very large or small values.
func formatFloat(f float64) string {
	abs := math.Abs(f)
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		return strconv.FormatFloat(f, 'g', -1, 64)
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
