package sax

// A Recorder is a Handler that accumulates the events it receives, copying
// any byte slices so the recording stays valid after the producer has moved
// on.  Replay can then deliver the recording to another handler.
type Recorder struct {
	Events []Event
}

var _ Handler = &Recorder{}

func (r *Recorder) record(e Event) error {
	r.Events = append(r.Events, e)
	return nil
}

func (r *Recorder) Null() error            { return r.record(NullEvent()) }
func (r *Recorder) Bool(b bool) error      { return r.record(BoolEvent(b)) }
func (r *Recorder) Int(i int32) error      { return r.record(IntEvent(i)) }
func (r *Recorder) Uint(u uint32) error    { return r.record(UintEvent(u)) }
func (r *Recorder) Int64(i int64) error    { return r.record(Int64Event(i)) }
func (r *Recorder) Uint64(u uint64) error  { return r.record(Uint64Event(u)) }
func (r *Recorder) Double(d float64) error { return r.record(DoubleEvent(d)) }

func (r *Recorder) RawNumber(b []byte) error { return r.record(RawNumberEvent(string(b))) }
func (r *Recorder) String(b []byte) error    { return r.record(StringEvent(string(b))) }
func (r *Recorder) Key(b []byte) error       { return r.record(KeyEvent(string(b))) }

func (r *Recorder) StartObject() error     { return r.record(StartObjectEvent()) }
func (r *Recorder) EndObject(n int) error  { return r.record(EndObjectEvent(n)) }
func (r *Recorder) StartArray() error      { return r.record(StartArrayEvent()) }
func (r *Recorder) EndArray(n int) error   { return r.record(EndArrayEvent(n)) }

// Replay delivers the recorded events to h in order, stopping at the first
// error and returning it.
func (r *Recorder) Replay(h Handler) error {
	for _, e := range r.Events {
		var err error
		switch e.Kind {
		case KindNull:
			err = h.Null()
		case KindBool:
			err = h.Bool(e.Bool)
		case KindInt:
			err = h.Int(int32(e.Int))
		case KindUint:
			err = h.Uint(uint32(e.Uint))
		case KindInt64:
			err = h.Int64(e.Int)
		case KindUint64:
			err = h.Uint64(e.Uint)
		case KindDouble:
			err = h.Double(e.Float)
		case KindRawNumber:
			err = h.RawNumber([]byte(e.Text))
		case KindString:
			err = h.String([]byte(e.Text))
		case KindStartObject:
			err = h.StartObject()
		case KindKey:
			err = h.Key([]byte(e.Text))
		case KindEndObject:
			err = h.EndObject(e.Count)
		case KindStartArray:
			err = h.StartArray()
		case KindEndArray:
			err = h.EndArray(e.Count)
		}
		if err != nil {
			return err
		}
	}
	return nil
}
