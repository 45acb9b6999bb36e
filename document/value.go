// Package document materializes a stream of sax events into an in-memory
// tree and provides navigation over it.  The Builder sits at the end of a
// pipeline (parser, possibly with filters in between) and trusts the member
// and element counts reported by EndObject and EndArray, so any filter
// upstream must report counts consistent with the events it forwards.
package document

import (
	"math"

	"github.com/jsonsift/jsonsift/sax"
)

// Kind is the JSON type of a Value.
type Kind int

const (
	Null Kind = iota
	Bool
	Number
	String
	Object
	Array
)

func (k Kind) String() string {
	switch k {
	case Null:
		return "Null"
	case Bool:
		return "Bool"
	case Number:
		return "Number"
	case String:
		return "String"
	case Object:
		return "Object"
	case Array:
		return "Array"
	default:
		return "<invalid kind>"
	}
}

// numKind records which event produced a Number value, so Accept can replay
// it unchanged.
type numKind uint8

const (
	numInt numKind = iota
	numUint
	numDouble
	numRaw
)

// A Member is one key/value pair of an object, in document order.
type Member struct {
	Key   string
	Value *Value
}

// A Value is a node of the materialized tree.  The zero value is null.
//
// Accessors return zero values when called on a nil receiver or on the wrong
// kind, so navigation chains like v.Member("a").Index(0).Str() don't need a
// check at every step; use Kind to discriminate when it matters.
type Value struct {
	kind    Kind
	b       bool
	nk      numKind
	i       int64
	u       uint64
	f       float64
	s       string // String contents, or the literal of a raw number
	members []Member
	elems   []*Value
}

func (v *Value) Kind() Kind {
	if v == nil {
		return Null
	}
	return v.kind
}

func (v *Value) IsNull() bool {
	return v == nil || v.kind == Null
}

func (v *Value) Bool() bool {
	return v != nil && v.kind == Bool && v.b
}

// Str returns the contents of a String value, or "" for any other kind.
func (v *Value) Str() string {
	if v == nil || v.kind != String {
		return ""
	}
	return v.s
}

// Float64 returns the numeric value of a Number, converting from the integer
// representations.  Raw numbers (literals outside float64 range) come back
// as ±Inf.
func (v *Value) Float64() float64 {
	if v == nil || v.kind != Number {
		return 0
	}
	switch v.nk {
	case numInt:
		return float64(v.i)
	case numUint:
		return float64(v.u)
	case numRaw:
		if len(v.s) > 0 && v.s[0] == '-' {
			return math.Inf(-1)
		}
		return math.Inf(1)
	default:
		return v.f
	}
}

func (v *Value) Int64() int64 {
	if v == nil || v.kind != Number {
		return 0
	}
	switch v.nk {
	case numInt:
		return v.i
	case numUint:
		return int64(v.u)
	default:
		return int64(v.f)
	}
}

func (v *Value) Uint64() uint64 {
	if v == nil || v.kind != Number {
		return 0
	}
	switch v.nk {
	case numInt:
		return uint64(v.i)
	case numUint:
		return v.u
	default:
		return uint64(v.f)
	}
}

// NumberLiteral returns the literal bytes of a raw number, or "" if the
// value is not a raw number.
func (v *Value) NumberLiteral() string {
	if v == nil || v.kind != Number || v.nk != numRaw {
		return ""
	}
	return v.s
}

// Member returns the value of the first member with the given key, or nil if
// there is none or the value is not an object.
func (v *Value) Member(key string) *Value {
	if v == nil || v.kind != Object {
		return nil
	}
	for _, m := range v.members {
		if m.Key == key {
			return m.Value
		}
	}
	return nil
}

func (v *Value) HasMember(key string) bool {
	return v.Member(key) != nil
}

// Members returns the members of an object in document order, nil otherwise.
func (v *Value) Members() []Member {
	if v == nil || v.kind != Object {
		return nil
	}
	return v.members
}

// Index returns the i-th element of an array, or nil if out of range or the
// value is not an array.
func (v *Value) Index(i int) *Value {
	if v == nil || v.kind != Array || i < 0 || i >= len(v.elems) {
		return nil
	}
	return v.elems[i]
}

// Elems returns the elements of an array in order, nil otherwise.
func (v *Value) Elems() []*Value {
	if v == nil || v.kind != Array {
		return nil
	}
	return v.elems
}

// Len returns the number of members of an object or elements of an array,
// and 0 for scalars.
func (v *Value) Len() int {
	if v == nil {
		return 0
	}
	switch v.kind {
	case Object:
		return len(v.members)
	case Array:
		return len(v.elems)
	default:
		return 0
	}
}

// Accept replays the tree rooted at v as events on h, with member and
// element counts matching the tree.  It stops at the first error and returns
// it.
func (v *Value) Accept(h sax.Handler) error {
	switch v.kind {
	case Null:
		return h.Null()
	case Bool:
		return h.Bool(v.b)
	case String:
		return h.String([]byte(v.s))
	case Number:
		switch v.nk {
		case numInt:
			if v.i >= math.MinInt32 && v.i <= math.MaxInt32 {
				return h.Int(int32(v.i))
			}
			return h.Int64(v.i)
		case numUint:
			if v.u <= math.MaxUint32 {
				return h.Uint(uint32(v.u))
			}
			return h.Uint64(v.u)
		case numRaw:
			return h.RawNumber([]byte(v.s))
		default:
			return h.Double(v.f)
		}
	case Object:
		if err := h.StartObject(); err != nil {
			return err
		}
		for _, m := range v.members {
			if err := h.Key([]byte(m.Key)); err != nil {
				return err
			}
			if err := m.Value.Accept(h); err != nil {
				return err
			}
		}
		return h.EndObject(len(v.members))
	case Array:
		if err := h.StartArray(); err != nil {
			return err
		}
		for _, e := range v.elems {
			if err := e.Accept(h); err != nil {
				return err
			}
		}
		return h.EndArray(len(v.elems))
	default:
		return nil
	}
}
