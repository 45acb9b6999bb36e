package document

import (
	"github.com/pkg/errors"

	"github.com/jsonsift/jsonsift/sax"
)

// A Builder is a sax.Handler that materializes the events it receives into a
// Value tree.
//
// It keeps a stack of completed values and a stack of pending keys; closing
// an object pops as many key/value pairs as the reported member count,
// closing an array pops as many values as the reported element count.  The
// counts are trusted, which is exactly why filters that drop members must
// correct them.
type Builder struct {
	vals []*Value
	keys []string
}

var _ sax.Handler = &Builder{}

func NewBuilder() *Builder {
	return &Builder{}
}

// Build runs the source with a fresh Builder as its handler and returns the
// resulting tree.
func Build(src sax.Source) (*Value, error) {
	b := NewBuilder()
	if err := src.Produce(b); err != nil {
		return nil, err
	}
	return b.Root()
}

// Root returns the single completed value, or an error if the event stream
// did not encode exactly one value.
func (b *Builder) Root() (*Value, error) {
	if len(b.vals) != 1 || len(b.keys) != 0 {
		return nil, errors.New("event stream did not encode a single complete value")
	}
	return b.vals[0], nil
}

func (b *Builder) push(v *Value) error {
	b.vals = append(b.vals, v)
	return nil
}

func (b *Builder) Null() error {
	return b.push(&Value{kind: Null})
}

func (b *Builder) Bool(v bool) error {
	return b.push(&Value{kind: Bool, b: v})
}

func (b *Builder) Int(i int32) error {
	return b.push(&Value{kind: Number, nk: numInt, i: int64(i)})
}

func (b *Builder) Uint(u uint32) error {
	return b.push(&Value{kind: Number, nk: numUint, u: uint64(u)})
}

func (b *Builder) Int64(i int64) error {
	return b.push(&Value{kind: Number, nk: numInt, i: i})
}

func (b *Builder) Uint64(u uint64) error {
	return b.push(&Value{kind: Number, nk: numUint, u: u})
}

func (b *Builder) Double(d float64) error {
	return b.push(&Value{kind: Number, nk: numDouble, f: d})
}

func (b *Builder) RawNumber(raw []byte) error {
	return b.push(&Value{kind: Number, nk: numRaw, s: string(raw)})
}

func (b *Builder) String(s []byte) error {
	return b.push(&Value{kind: String, s: string(s)})
}

func (b *Builder) StartObject() error {
	return nil
}

func (b *Builder) Key(k []byte) error {
	b.keys = append(b.keys, string(k))
	return nil
}

func (b *Builder) EndObject(memberCount int) error {
	if memberCount > len(b.vals) || memberCount > len(b.keys) {
		return errors.Errorf("EndObject reported %d members, only %d values and %d keys available",
			memberCount, len(b.vals), len(b.keys))
	}
	members := make([]Member, memberCount)
	vals := b.vals[len(b.vals)-memberCount:]
	keys := b.keys[len(b.keys)-memberCount:]
	for i := range members {
		members[i] = Member{Key: keys[i], Value: vals[i]}
	}
	b.vals = b.vals[:len(b.vals)-memberCount]
	b.keys = b.keys[:len(b.keys)-memberCount]
	return b.push(&Value{kind: Object, members: members})
}

func (b *Builder) StartArray() error {
	return nil
}

func (b *Builder) EndArray(elementCount int) error {
	if elementCount > len(b.vals) {
		return errors.Errorf("EndArray reported %d elements, only %d values available",
			elementCount, len(b.vals))
	}
	elems := make([]*Value, elementCount)
	copy(elems, b.vals[len(b.vals)-elementCount:])
	b.vals = b.vals[:len(b.vals)-elementCount]
	return b.push(&Value{kind: Array, elems: elems})
}
