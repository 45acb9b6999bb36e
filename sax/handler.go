// Package sax defines the push-based event contract used to stream JSON
// values through a processing pipeline, and the filters that operate on it.
//
// A producer (typically the parser) calls one Handler method per structural
// event, in document order.  For example, the JSON value
//
//	{"id": 123, "tags": ["important", "new"]}
//
// is delivered as (in pseudocode for clarity):
//
//	{            -> StartObject
//	"id":        -> Key("id")
//	123,         -> Int(123)
//	"tags":      -> Key("tags")
//	[            -> StartArray
//	"important", -> String("important")
//	"new"        -> String("new")
//	]            -> EndArray(2)
//	}            -> EndObject(2)
//
// Every call is synchronous and runs to completion before the next event is
// delivered.  A handler accepts an event by returning nil and rejects it by
// returning an error; producers must stop delivering events as soon as a
// handler returns a non-nil error.
package sax

// A Handler receives the events encoding a JSON value.
//
// EndObject and EndArray carry the number of members (resp. elements) of the
// container they close.  Handlers are allowed to rely on these counts, so a
// producer or filter that changes the shape of a stream must report counts
// consistent with the events it actually delivered.
//
// The byte slices passed to RawNumber, String and Key are only valid for the
// duration of the call; a handler that needs to keep them must copy them.
// String and Key bytes are decoded text (escape sequences resolved), not the
// raw JSON literal.  They are not NUL-terminated and may contain any byte.
type Handler interface {
	Null() error
	Bool(b bool) error
	Int(i int32) error
	Uint(u uint32) error
	Int64(i int64) error
	Uint64(u uint64) error
	Double(d float64) error
	RawNumber(b []byte) error
	String(b []byte) error
	StartObject() error
	Key(b []byte) error
	EndObject(memberCount int) error
	StartArray() error
	EndArray(elementCount int) error
}

// A Source can deliver a stream of events to a Handler.  Produce returns the
// first error reported by the handler, or an error of its own (e.g. a syntax
// error from a parser), or nil when the whole stream was delivered.
type Source interface {
	Produce(h Handler) error
}

// Discard is a Handler that accepts and ignores every event.
var Discard Handler = discard{}

type discard struct{}

func (discard) Null() error            { return nil }
func (discard) Bool(bool) error        { return nil }
func (discard) Int(int32) error        { return nil }
func (discard) Uint(uint32) error      { return nil }
func (discard) Int64(int64) error      { return nil }
func (discard) Uint64(uint64) error    { return nil }
func (discard) Double(float64) error   { return nil }
func (discard) RawNumber([]byte) error { return nil }
func (discard) String([]byte) error    { return nil }
func (discard) StartObject() error     { return nil }
func (discard) Key([]byte) error       { return nil }
func (discard) EndObject(int) error    { return nil }
func (discard) StartArray() error      { return nil }
func (discard) EndArray(int) error     { return nil }
