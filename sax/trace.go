package sax

import "github.com/sirupsen/logrus"

// A TraceHandler logs every event at debug level before forwarding it to the
// next handler.  It is meant for debugging pipelines, typically inserted
// between a filter and its consumer.
type TraceHandler struct {
	Next Handler
	Log  logrus.FieldLogger
}

var _ Handler = &TraceHandler{}

func (t *TraceHandler) trace(e Event) {
	t.Log.Debug(e.String())
}

func (t *TraceHandler) Null() error {
	t.trace(NullEvent())
	return t.Next.Null()
}

func (t *TraceHandler) Bool(b bool) error {
	t.trace(BoolEvent(b))
	return t.Next.Bool(b)
}

func (t *TraceHandler) Int(i int32) error {
	t.trace(IntEvent(i))
	return t.Next.Int(i)
}

func (t *TraceHandler) Uint(u uint32) error {
	t.trace(UintEvent(u))
	return t.Next.Uint(u)
}

func (t *TraceHandler) Int64(i int64) error {
	t.trace(Int64Event(i))
	return t.Next.Int64(i)
}

func (t *TraceHandler) Uint64(u uint64) error {
	t.trace(Uint64Event(u))
	return t.Next.Uint64(u)
}

func (t *TraceHandler) Double(d float64) error {
	t.trace(DoubleEvent(d))
	return t.Next.Double(d)
}

func (t *TraceHandler) RawNumber(b []byte) error {
	t.trace(RawNumberEvent(string(b)))
	return t.Next.RawNumber(b)
}

func (t *TraceHandler) String(b []byte) error {
	t.trace(StringEvent(string(b)))
	return t.Next.String(b)
}

func (t *TraceHandler) StartObject() error {
	t.trace(StartObjectEvent())
	return t.Next.StartObject()
}

func (t *TraceHandler) Key(b []byte) error {
	t.trace(KeyEvent(string(b)))
	return t.Next.Key(b)
}

func (t *TraceHandler) EndObject(n int) error {
	t.trace(EndObjectEvent(n))
	return t.Next.EndObject(n)
}

func (t *TraceHandler) StartArray() error {
	t.trace(StartArrayEvent())
	return t.Next.StartArray()
}

func (t *TraceHandler) EndArray(n int) error {
	t.trace(EndArrayEvent(n))
	return t.Next.EndArray(n)
}
