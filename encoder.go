package jsonsift

import (
	"math"
	"strconv"

	"github.com/pkg/errors"

	"github.com/jsonsift/jsonsift/sax"
)

// An Encoder is a sax.Handler that writes the events it receives back out as
// JSON text, using the given Printer instance for formatting and the given
// Colorizer (which may be nil) for terminal colors.
//
// It assumes the event stream is well-formed, i.e. a valid encoding of a
// single JSON value, and may panic if that is not the case.  Write failures
// surface as a *PrinterError returned from the event method during which the
// write happened.
type Encoder struct {
	Printer
	*Colorizer

	frames  []encoderFrame
	scratch []byte
}

var _ sax.Handler = &Encoder{}

// An encoderFrame tracks one open container: whether it is an object and how
// many items have been printed in it so far.
type encoderFrame struct {
	inObject bool
	n        int
}

// beginValue positions the printer for the next value.  Inside an object the
// preceding Key event has already done it.
func (e *Encoder) beginValue() {
	if len(e.frames) == 0 {
		return
	}
	f := &e.frames[len(e.frames)-1]
	if f.inObject {
		return
	}
	e.beginItem(f)
}

func (e *Encoder) beginItem(f *encoderFrame) {
	if f.n == 0 {
		e.Indent()
	} else {
		e.PrintBytes(itemSeparatorBytes)
		e.NewLine()
	}
	f.n++
}

func (e *Encoder) Null() (err error) {
	defer CatchPrinterError(&err)
	e.beginValue()
	e.Colorizer.PrintLiteral(e.Printer, nullBytes)
	return nil
}

func (e *Encoder) Bool(b bool) (err error) {
	defer CatchPrinterError(&err)
	e.beginValue()
	if b {
		e.Colorizer.PrintLiteral(e.Printer, trueBytes)
	} else {
		e.Colorizer.PrintLiteral(e.Printer, falseBytes)
	}
	return nil
}

func (e *Encoder) Int(i int32) (err error) {
	defer CatchPrinterError(&err)
	e.beginValue()
	e.Colorizer.PrintNumber(e.Printer, strconv.AppendInt(e.scratch[:0], int64(i), 10))
	return nil
}

func (e *Encoder) Uint(u uint32) (err error) {
	defer CatchPrinterError(&err)
	e.beginValue()
	e.Colorizer.PrintNumber(e.Printer, strconv.AppendUint(e.scratch[:0], uint64(u), 10))
	return nil
}

func (e *Encoder) Int64(i int64) (err error) {
	defer CatchPrinterError(&err)
	e.beginValue()
	e.Colorizer.PrintNumber(e.Printer, strconv.AppendInt(e.scratch[:0], i, 10))
	return nil
}

func (e *Encoder) Uint64(u uint64) (err error) {
	defer CatchPrinterError(&err)
	e.beginValue()
	e.Colorizer.PrintNumber(e.Printer, strconv.AppendUint(e.scratch[:0], u, 10))
	return nil
}

func (e *Encoder) Double(d float64) (err error) {
	if math.IsNaN(d) || math.IsInf(d, 0) {
		return errors.Errorf("cannot encode %v as JSON", d)
	}
	defer CatchPrinterError(&err)
	e.beginValue()
	e.Colorizer.PrintNumber(e.Printer, strconv.AppendFloat(e.scratch[:0], d, 'g', -1, 64))
	return nil
}

// RawNumber prints the literal verbatim, so numbers beyond float64 range
// round-trip exactly.
func (e *Encoder) RawNumber(b []byte) (err error) {
	defer CatchPrinterError(&err)
	e.beginValue()
	e.Colorizer.PrintNumber(e.Printer, b)
	return nil
}

func (e *Encoder) String(b []byte) (err error) {
	defer CatchPrinterError(&err)
	e.beginValue()
	e.scratch = appendQuoted(e.scratch[:0], b)
	e.Colorizer.PrintString(e.Printer, e.scratch)
	return nil
}

func (e *Encoder) StartObject() (err error) {
	defer CatchPrinterError(&err)
	e.beginValue()
	e.PrintBytes(openObjectBytes)
	e.frames = append(e.frames, encoderFrame{inObject: true})
	return nil
}

func (e *Encoder) Key(b []byte) (err error) {
	defer CatchPrinterError(&err)
	e.beginItem(&e.frames[len(e.frames)-1])
	e.scratch = appendQuoted(e.scratch[:0], b)
	e.Colorizer.PrintKey(e.Printer, e.scratch)
	e.PrintBytes(keyValueSeparatorBytes)
	return nil
}

func (e *Encoder) EndObject(memberCount int) (err error) {
	defer CatchPrinterError(&err)
	e.closeFrame(closeObjectBytes)
	return nil
}

func (e *Encoder) StartArray() (err error) {
	defer CatchPrinterError(&err)
	e.beginValue()
	e.PrintBytes(openArrayBytes)
	e.frames = append(e.frames, encoderFrame{})
	return nil
}

func (e *Encoder) EndArray(elementCount int) (err error) {
	defer CatchPrinterError(&err)
	e.closeFrame(closeArrayBytes)
	return nil
}

func (e *Encoder) closeFrame(closing []byte) {
	f := e.frames[len(e.frames)-1]
	e.frames = e.frames[:len(e.frames)-1]
	if f.n > 0 {
		e.Dedent()
	}
	e.PrintBytes(closing)
}

// appendQuoted appends s as a JSON string literal.  Non-ASCII bytes pass
// through verbatim, so decoded text stays UTF-8 rather than reverting to
// \u escapes.
func appendQuoted(dst []byte, s []byte) []byte {
	dst = append(dst, '"')
	for _, c := range s {
		switch {
		case c == '"':
			dst = append(dst, '\\', '"')
		case c == '\\':
			dst = append(dst, '\\', '\\')
		case c >= 0x20:
			dst = append(dst, c)
		case c == '\b':
			dst = append(dst, '\\', 'b')
		case c == '\f':
			dst = append(dst, '\\', 'f')
		case c == '\n':
			dst = append(dst, '\\', 'n')
		case c == '\r':
			dst = append(dst, '\\', 'r')
		case c == '\t':
			dst = append(dst, '\\', 't')
		default:
			dst = append(dst, '\\', 'u', '0', '0', hexDigits[c>>4], hexDigits[c&0xf])
		}
	}
	return append(dst, '"')
}

const hexDigits = "0123456789abcdef"

var (
	nullBytes              = []byte("null")
	trueBytes              = []byte("true")
	falseBytes             = []byte("false")
	openObjectBytes        = []byte("{")
	closeObjectBytes       = []byte("}")
	openArrayBytes         = []byte("[")
	closeArrayBytes        = []byte("]")
	itemSeparatorBytes     = []byte(",")
	keyValueSeparatorBytes = []byte(": ")
)
