package sax

import "bytes"

// A KeyFilter forwards the events it receives to the next handler, dropping
// every object member whose key matches the target key, wherever it occurs.
// The whole value following a matching key is suppressed, however deeply
// nested, and the member counts reported by EndObject are corrected to the
// number of members actually forwarded.
//
// Array element counts are forwarded unchanged: arrays have no keys, so a
// match can only remove object members, never array elements.
//
// A KeyFilter is itself a Handler, so filters can be chained and anything
// that consumes events can sit downstream unmodified.  It fails exactly when
// the next handler fails and holds no state across parses; use a fresh
// instance per input.
type KeyFilter struct {
	next Handler
	key  []byte

	// Number of open containers inside the value currently being dropped.
	// Zero means events pass through.
	skipDepth int

	// One kept-member count per open, forwarded object.
	kept []int
}

var _ Handler = &KeyFilter{}

// NewKeyFilter returns a KeyFilter dropping members named key from the
// events it forwards to next.  The key bytes are not copied; the caller must
// keep them unchanged for the lifetime of the filter.
func NewKeyFilter(next Handler, key []byte) *KeyFilter {
	return &KeyFilter{next: next, key: key}
}

// endValue closes suppression when the value following the matched key has
// just ended.  It must run after every event that can terminate a value,
// including bare scalars.
func (f *KeyFilter) endValue() {
	if f.skipDepth == 1 {
		f.skipDepth = 0
	}
}

func (f *KeyFilter) Null() error {
	if f.skipDepth > 0 {
		f.endValue()
		return nil
	}
	if err := f.next.Null(); err != nil {
		return err
	}
	f.endValue()
	return nil
}

func (f *KeyFilter) Bool(b bool) error {
	if f.skipDepth > 0 {
		f.endValue()
		return nil
	}
	if err := f.next.Bool(b); err != nil {
		return err
	}
	f.endValue()
	return nil
}

func (f *KeyFilter) Int(i int32) error {
	if f.skipDepth > 0 {
		f.endValue()
		return nil
	}
	if err := f.next.Int(i); err != nil {
		return err
	}
	f.endValue()
	return nil
}

func (f *KeyFilter) Uint(u uint32) error {
	if f.skipDepth > 0 {
		f.endValue()
		return nil
	}
	if err := f.next.Uint(u); err != nil {
		return err
	}
	f.endValue()
	return nil
}

func (f *KeyFilter) Int64(i int64) error {
	if f.skipDepth > 0 {
		f.endValue()
		return nil
	}
	if err := f.next.Int64(i); err != nil {
		return err
	}
	f.endValue()
	return nil
}

func (f *KeyFilter) Uint64(u uint64) error {
	if f.skipDepth > 0 {
		f.endValue()
		return nil
	}
	if err := f.next.Uint64(u); err != nil {
		return err
	}
	f.endValue()
	return nil
}

func (f *KeyFilter) Double(d float64) error {
	if f.skipDepth > 0 {
		f.endValue()
		return nil
	}
	if err := f.next.Double(d); err != nil {
		return err
	}
	f.endValue()
	return nil
}

func (f *KeyFilter) RawNumber(b []byte) error {
	if f.skipDepth > 0 {
		f.endValue()
		return nil
	}
	if err := f.next.RawNumber(b); err != nil {
		return err
	}
	f.endValue()
	return nil
}

func (f *KeyFilter) String(b []byte) error {
	if f.skipDepth > 0 {
		f.endValue()
		return nil
	}
	if err := f.next.String(b); err != nil {
		return err
	}
	f.endValue()
	return nil
}

func (f *KeyFilter) StartObject() error {
	if f.skipDepth > 0 {
		f.skipDepth++
		return nil
	}
	f.kept = append(f.kept, 0)
	return f.next.StartObject()
}

func (f *KeyFilter) Key(b []byte) error {
	if f.skipDepth > 0 {
		// Keys inside a dropped value are part of it; discard them without
		// looking at the name.
		return nil
	}
	if bytes.Equal(b, f.key) {
		f.skipDepth = 1
		return nil
	}
	f.kept[len(f.kept)-1]++
	return f.next.Key(b)
}

func (f *KeyFilter) EndObject(int) error {
	if f.skipDepth > 0 {
		f.skipDepth--
		f.endValue()
		return nil
	}
	// Report the number of members that were forwarded, not the count the
	// producer saw.  Downstream consumers size storage from this.
	n := f.kept[len(f.kept)-1]
	f.kept = f.kept[:len(f.kept)-1]
	if err := f.next.EndObject(n); err != nil {
		return err
	}
	f.endValue()
	return nil
}

func (f *KeyFilter) StartArray() error {
	if f.skipDepth > 0 {
		f.skipDepth++
		return nil
	}
	return f.next.StartArray()
}

func (f *KeyFilter) EndArray(n int) error {
	if f.skipDepth > 0 {
		f.skipDepth--
		f.endValue()
		return nil
	}
	if err := f.next.EndArray(n); err != nil {
		return err
	}
	f.endValue()
	return nil
}
