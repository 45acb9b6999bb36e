package jsonsift

import (
	"io"

	"github.com/pkg/errors"

	"github.com/jsonsift/jsonsift/parser"
	"github.com/jsonsift/jsonsift/sax"
)

// A KeyFilterSource produces the events of a JSON document read from an input
// stream, with every member named key (and its value) removed at any depth.
// It bundles a parser and a sax.KeyFilter behind the sax.Source interface so
// consumers don't need to assemble the pipeline themselves.
//
// A KeyFilterSource is good for one Produce call only, because the underlying
// input stream has been consumed after that.
type KeyFilterSource struct {
	in   io.Reader
	key  []byte
	done bool

	result *parser.Error
}

var _ sax.Source = &KeyFilterSource{}

func NewKeyFilterSource(in io.Reader, key string) *KeyFilterSource {
	return &KeyFilterSource{in: in, key: []byte(key)}
}

// Produce parses the input and delivers the filtered events to h.  The
// returned error is the parse or handler error, if any; Result gives access
// to its parser details afterwards.
func (s *KeyFilterSource) Produce(h sax.Handler) error {
	if s.done {
		return errors.New("filter source already consumed")
	}
	s.done = true
	err := parser.New(s.in).Parse(sax.NewKeyFilter(h, s.key))
	if err != nil {
		// Parse errors are always a *parser.Error.
		errors.As(err, &s.result)
	}
	return err
}

// Result returns the error of the completed Produce call as a *parser.Error,
// or nil if it succeeded or has not run.
func (s *KeyFilterSource) Result() *parser.Error {
	return s.result
}
