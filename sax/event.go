package sax

import "fmt"

// EventKind identifies which Handler method an Event stands for.
type EventKind uint8

const (
	KindNull EventKind = iota
	KindBool
	KindInt
	KindUint
	KindInt64
	KindUint64
	KindDouble
	KindRawNumber
	KindString
	KindStartObject
	KindKey
	KindEndObject
	KindStartArray
	KindEndArray
)

func (k EventKind) String() string {
	switch k {
	case KindNull:
		return "Null"
	case KindBool:
		return "Bool"
	case KindInt:
		return "Int"
	case KindUint:
		return "Uint"
	case KindInt64:
		return "Int64"
	case KindUint64:
		return "Uint64"
	case KindDouble:
		return "Double"
	case KindRawNumber:
		return "RawNumber"
	case KindString:
		return "String"
	case KindStartObject:
		return "StartObject"
	case KindKey:
		return "Key"
	case KindEndObject:
		return "EndObject"
	case KindStartArray:
		return "StartArray"
	case KindEndArray:
		return "EndArray"
	default:
		return "<invalid event kind>"
	}
}

// An Event is a reified Handler call.  It is what a Recorder stores and what
// tests compare; only the fields relevant to Kind are meaningful.
//
// Text holds the (copied) bytes of a Key, String or RawNumber event.  Count
// holds the member or element count of an EndObject or EndArray event.
type Event struct {
	Kind  EventKind
	Text  string
	Bool  bool
	Int   int64
	Uint  uint64
	Float float64
	Count int
}

func (e Event) String() string {
	switch e.Kind {
	case KindBool:
		return fmt.Sprintf("Bool(%t)", e.Bool)
	case KindInt, KindInt64:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Int)
	case KindUint, KindUint64:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Uint)
	case KindDouble:
		return fmt.Sprintf("Double(%g)", e.Float)
	case KindRawNumber, KindString, KindKey:
		return fmt.Sprintf("%s(%q)", e.Kind, e.Text)
	case KindEndObject, KindEndArray:
		return fmt.Sprintf("%s(%d)", e.Kind, e.Count)
	default:
		return e.Kind.String()
	}
}

// Constructors for the event kinds that carry data.  The zero-argument kinds
// can be written as Event{Kind: KindNull} etc, but these read better in
// expected-event tables.

func NullEvent() Event              { return Event{Kind: KindNull} }
func BoolEvent(b bool) Event        { return Event{Kind: KindBool, Bool: b} }
func IntEvent(i int32) Event        { return Event{Kind: KindInt, Int: int64(i)} }
func UintEvent(u uint32) Event      { return Event{Kind: KindUint, Uint: uint64(u)} }
func Int64Event(i int64) Event      { return Event{Kind: KindInt64, Int: i} }
func Uint64Event(u uint64) Event    { return Event{Kind: KindUint64, Uint: u} }
func DoubleEvent(d float64) Event   { return Event{Kind: KindDouble, Float: d} }
func RawNumberEvent(s string) Event { return Event{Kind: KindRawNumber, Text: s} }
func StringEvent(s string) Event    { return Event{Kind: KindString, Text: s} }
func StartObjectEvent() Event       { return Event{Kind: KindStartObject} }
func KeyEvent(s string) Event       { return Event{Kind: KindKey, Text: s} }
func EndObjectEvent(n int) Event    { return Event{Kind: KindEndObject, Count: n} }
func StartArrayEvent() Event        { return Event{Kind: KindStartArray} }
func EndArrayEvent(n int) Event     { return Event{Kind: KindEndArray, Count: n} }
