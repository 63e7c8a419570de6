// Package value models an arbitrary JSON document as a closed tagged union.
//
// Templates and formatted records flow through promptforge as value.Value
// trees rather than map[string]interface{} because object key order is
// observable in every output format the tool produces (pretty-printed JSON,
// JSONL line content) and Go maps do not preserve insertion order.
package value

import (
	"encoding/json"

	"github.com/teranos/promptforge/errors"
)

// Kind identifies which variant of the JSON data model a Value holds.
type Kind uint8

const (
	Invalid Kind = iota
	Null
	Bool
	Number
	String
	Array
	Object
)

// String returns a human-readable name for the kind.
func (k Kind) String() string {
	switch k {
	case Null:
		return "null"
	case Bool:
		return "bool"
	case Number:
		return "number"
	case String:
		return "string"
	case Array:
		return "array"
	case Object:
		return "object"
	default:
		return "invalid"
	}
}

// Member is one key/value pair of an Object. Objects are stored as ordered
// member slices, not maps, so document order survives decode/encode.
type Member struct {
	Key   string
	Value Value
}

// Value is a single JSON value of any kind. The zero Value has Kind Invalid;
// use the constructors or DecodeJSON to obtain well-formed values.
type Value struct {
	kind Kind
	str  string // String content, or the Number lexeme
	b    bool
	arr  []Value
	obj  []Member
}

// NewNull returns the JSON null value.
func NewNull() Value {
	return Value{kind: Null}
}

// NewBool returns a JSON boolean.
func NewBool(b bool) Value {
	return Value{kind: Bool, b: b}
}

// NewNumber returns a JSON number. The lexeme is kept verbatim so re-encoding
// a decoded document is byte-faithful (1.50 stays 1.50, not 1.5).
func NewNumber(n json.Number) Value {
	return Value{kind: Number, str: string(n)}
}

// NewString returns a JSON string.
func NewString(s string) Value {
	return Value{kind: String, str: s}
}

// NewArray returns a JSON array of the given items, in order.
func NewArray(items ...Value) Value {
	return Value{kind: Array, arr: items}
}

// NewObject returns a JSON object with the given members, in order.
// Keys are expected to be unique; a duplicate key overwrites the earlier
// member's value while keeping its original position, matching decode
// semantics.
func NewObject(members ...Member) Value {
	v := Value{kind: Object, obj: make([]Member, 0, len(members))}
	for _, m := range members {
		v.setMember(m.Key, m.Value)
	}
	return v
}

// setMember appends a member, or replaces the value of an existing key
// in place.
func (v *Value) setMember(key string, val Value) {
	for i := range v.obj {
		if v.obj[i].Key == key {
			v.obj[i].Value = val
			return
		}
	}
	v.obj = append(v.obj, Member{Key: key, Value: val})
}

// Kind reports which variant this value holds.
func (v Value) Kind() Kind {
	return v.kind
}

// Text returns the content of a String value.
func (v Value) Text() string {
	return v.str
}

// Num returns the lexeme of a Number value.
func (v Value) Num() json.Number {
	return json.Number(v.str)
}

// BoolVal returns the content of a Bool value.
func (v Value) BoolVal() bool {
	return v.b
}

// Items returns the elements of an Array value. The returned slice is the
// value's backing storage; callers that need isolation should Clone first.
func (v Value) Items() []Value {
	return v.arr
}

// Members returns the members of an Object value, in document order.
// Same aliasing caveat as Items.
func (v Value) Members() []Member {
	return v.obj
}

// Len returns the element count of an Array or member count of an Object,
// and 0 for scalars.
func (v Value) Len() int {
	switch v.kind {
	case Array:
		return len(v.arr)
	case Object:
		return len(v.obj)
	default:
		return 0
	}
}

// Get returns the value for key in an Object and whether it was present.
func (v Value) Get(key string) (Value, bool) {
	for _, m := range v.obj {
		if m.Key == key {
			return m.Value, true
		}
	}
	return Value{}, false
}

// Clone returns a deep copy sharing no mutable node with v.
func (v Value) Clone() Value {
	switch v.kind {
	case Array:
		arr := make([]Value, len(v.arr))
		for i, item := range v.arr {
			arr[i] = item.Clone()
		}
		return Value{kind: Array, arr: arr}
	case Object:
		obj := make([]Member, len(v.obj))
		for i, m := range v.obj {
			obj[i] = Member{Key: m.Key, Value: m.Value.Clone()}
		}
		return Value{kind: Object, obj: obj}
	default:
		// Scalars carry no shared storage.
		return v
	}
}

// Equal reports structural equality: same kinds, same scalar content, same
// member/element order at every level. Number comparison is by lexeme.
func Equal(a, b Value) bool {
	if a.kind != b.kind {
		return false
	}
	switch a.kind {
	case Null:
		return true
	case Bool:
		return a.b == b.b
	case Number, String:
		return a.str == b.str
	case Array:
		if len(a.arr) != len(b.arr) {
			return false
		}
		for i := range a.arr {
			if !Equal(a.arr[i], b.arr[i]) {
				return false
			}
		}
		return true
	case Object:
		if len(a.obj) != len(b.obj) {
			return false
		}
		for i := range a.obj {
			if a.obj[i].Key != b.obj[i].Key || !Equal(a.obj[i].Value, b.obj[i].Value) {
				return false
			}
		}
		return true
	default:
		return false
	}
}

// assertValid panics on the zero Value. Encoding and substitution are total
// over the six JSON kinds; an Invalid kind means a caller bypassed the
// constructors.
func (v Value) assertValid() {
	if v.kind == Invalid || v.kind > Object {
		panic(errors.AssertionFailedf("value: unhandled kind %d", v.kind))
	}
}
