// Package parser implements a SAX-style JSON parser: instead of building a
// tree, it drives a sax.Handler with one callback per structural event, in
// document order.  Consumers that need a tree can put a document.Builder
// downstream; filters can be interposed without the parser knowing.
package parser

import (
	"io"
	"math"
	"strconv"
	"unicode/utf16"
	"unicode/utf8"

	"github.com/jsonsift/jsonsift/internal/scanner"
	"github.com/jsonsift/jsonsift/sax"
)

// A Parser reads JSON text and delivers it as events to a sax.Handler.
type Parser struct {
	scanr *scanner.Scanner

	// Reused buffer for decoded string literals.  The slices handed to
	// String and Key alias it, which is fine because handlers may not keep
	// them beyond the call.
	strbuf []byte
}

// New sets up a Parser reading from the given input.
func New(in io.Reader) *Parser {
	return &Parser{scanr: scanner.NewScanner(in)}
}

// Parse parses a single JSON value from the input, delivering its events to
// h.  Anything but trailing whitespace after the value is an error, as is an
// empty input.  The returned error is always nil or a *Error carrying an
// error code and the byte offset of the failure; when the handler rejects an
// event the code is ErrTermination and the handler's error is the cause.
//
// Parse delivers no further events after the first failure.  A Parser is
// good for one Parse call only.
func (p *Parser) Parse(h sax.Handler) error {
	b, err := p.scanr.SkipSpaceAndPeek()
	if err != nil {
		return p.readError(err)
	}
	if b == scanner.EOF {
		return p.errAt(ErrDocumentEmpty)
	}
	if err := p.parseValue(h); err != nil {
		return err
	}
	b, err = p.scanr.SkipSpaceAndPeek()
	if err != nil {
		return p.readError(err)
	}
	if b != scanner.EOF {
		return p.errAt(ErrRootNotSingular)
	}
	return nil
}

// errAt reports a syntax error at the read position, which callers arrange
// to be the offending byte (using Back after a Read when necessary).
func (p *Parser) errAt(code ErrorCode) *Error {
	pos := p.scanr.CurrentPos()
	return &Error{
		Code:   code,
		Offset: p.scanr.Offset(),
		Line:   pos.Line,
		Col:    pos.Col,
	}
}

func (p *Parser) readError(err error) *Error {
	pos := p.scanr.CurrentPos()
	return &Error{
		Code:   ErrRead,
		Offset: p.scanr.Offset(),
		Line:   pos.Line,
		Col:    pos.Col,
		Cause:  err,
	}
}

// deliver wraps a handler rejection into an ErrTermination parse error.
func (p *Parser) deliver(err error) error {
	if err == nil {
		return nil
	}
	pos := p.scanr.CurrentPos()
	return &Error{
		Code:   ErrTermination,
		Offset: p.scanr.Offset(),
		Line:   pos.Line,
		Col:    pos.Col,
		Cause:  err,
	}
}

func (p *Parser) parseValue(h sax.Handler) error {
	b, err := p.scanr.SkipSpaceAndPeek()
	if err != nil {
		return p.readError(err)
	}
	switch {
	case b == '"':
		s, err := p.parseStringLiteral()
		if err != nil {
			return err
		}
		return p.deliver(h.String(s))
	case b == '{':
		return p.parseObject(h)
	case b == '[':
		return p.parseArray(h)
	case b == 't':
		if err := p.expectBytes(trueBytes); err != nil {
			return err
		}
		return p.deliver(h.Bool(true))
	case b == 'f':
		if err := p.expectBytes(falseBytes); err != nil {
			return err
		}
		return p.deliver(h.Bool(false))
	case b == 'n':
		if err := p.expectBytes(nullBytes); err != nil {
			return err
		}
		return p.deliver(h.Null())
	case b == '-' || scanner.IsDigit(b):
		return p.parseNumber(h)
	default:
		return p.errAt(ErrValueInvalid)
	}
}

func (p *Parser) parseObject(h sax.Handler) error {
	p.scanr.Read() // consume '{'
	if err := p.deliver(h.StartObject()); err != nil {
		return err
	}
	b, err := p.scanr.SkipSpaceAndPeek()
	if err != nil {
		return p.readError(err)
	}
	if b == '}' {
		p.scanr.Read()
		return p.deliver(h.EndObject(0))
	}
	count := 0
	for {
		if b != '"' {
			return p.errAt(ErrObjectMissKey)
		}
		key, err := p.parseStringLiteral()
		if err != nil {
			return err
		}
		if err := p.deliver(h.Key(key)); err != nil {
			return err
		}
		b, err = p.scanr.SkipSpaceAndRead()
		if err != nil {
			return p.readError(err)
		}
		if b != ':' {
			p.scanr.Back()
			return p.errAt(ErrObjectMissColon)
		}
		if err := p.parseValue(h); err != nil {
			return err
		}
		count++
		b, err = p.scanr.SkipSpaceAndRead()
		if err != nil {
			return p.readError(err)
		}
		switch b {
		case '}':
			return p.deliver(h.EndObject(count))
		case ',':
			b, err = p.scanr.SkipSpaceAndPeek()
			if err != nil {
				return p.readError(err)
			}
		default:
			p.scanr.Back()
			return p.errAt(ErrObjectMissCommaOrBrace)
		}
	}
}

func (p *Parser) parseArray(h sax.Handler) error {
	p.scanr.Read() // consume '['
	if err := p.deliver(h.StartArray()); err != nil {
		return err
	}
	b, err := p.scanr.SkipSpaceAndPeek()
	if err != nil {
		return p.readError(err)
	}
	if b == ']' {
		p.scanr.Read()
		return p.deliver(h.EndArray(0))
	}
	count := 0
	for {
		if err := p.parseValue(h); err != nil {
			return err
		}
		count++
		b, err = p.scanr.SkipSpaceAndRead()
		if err != nil {
			return p.readError(err)
		}
		switch b {
		case ']':
			return p.deliver(h.EndArray(count))
		case ',':
		default:
			p.scanr.Back()
			return p.errAt(ErrArrayMissCommaOrBracket)
		}
	}
}

func (p *Parser) expectBytes(expected []byte) error {
	for _, xb := range expected {
		b, err := p.scanr.Read()
		if err != nil {
			return p.readError(err)
		}
		if b != xb {
			p.scanr.Back()
			return p.errAt(ErrValueInvalid)
		}
	}
	return nil
}

// parseStringLiteral consumes a string literal (the caller has peeked the
// opening quote) and returns its decoded contents.  The returned slice is
// reused by the next literal.
func (p *Parser) parseStringLiteral() ([]byte, error) {
	p.scanr.Read() // consume '"'
	buf := p.strbuf[:0]
	for {
		b, err := p.scanr.Read()
		if err != nil {
			return nil, p.readError(err)
		}
		switch {
		case b == '"':
			p.strbuf = buf
			return buf, nil
		case b == '\\':
			buf, err = p.parseEscape(buf)
			if err != nil {
				return nil, err
			}
		case b == scanner.EOF:
			return nil, p.errAt(ErrStringMissQuote)
		case scanner.IsCtrl(b):
			p.scanr.Back()
			return nil, p.errAt(ErrStringInvalidChar)
		default:
			buf = append(buf, b)
		}
	}
}

// parseEscape decodes one escape sequence (the backslash has been consumed)
// and appends the result to buf.
func (p *Parser) parseEscape(buf []byte) ([]byte, error) {
	b, err := p.scanr.Read()
	if err != nil {
		return nil, p.readError(err)
	}
	switch b {
	case '"', '\\', '/':
		return append(buf, b), nil
	case 'b':
		return append(buf, '\b'), nil
	case 'f':
		return append(buf, '\f'), nil
	case 'n':
		return append(buf, '\n'), nil
	case 'r':
		return append(buf, '\r'), nil
	case 't':
		return append(buf, '\t'), nil
	case 'u':
		r, err := p.parseHex4()
		if err != nil {
			return nil, err
		}
		if !utf16.IsSurrogate(r) {
			return utf8.AppendRune(buf, r), nil
		}
		if r >= 0xDC00 {
			// Low surrogate with no preceding high surrogate
			return nil, p.errAt(ErrStringUnicodeSurrogateInvalid)
		}
		for _, xb := range []byte{'\\', 'u'} {
			b, err := p.scanr.Read()
			if err != nil {
				return nil, p.readError(err)
			}
			if b != xb {
				p.scanr.Back()
				return nil, p.errAt(ErrStringUnicodeSurrogateInvalid)
			}
		}
		low, err := p.parseHex4()
		if err != nil {
			return nil, err
		}
		paired := utf16.DecodeRune(r, low)
		if paired == utf8.RuneError {
			return nil, p.errAt(ErrStringUnicodeSurrogateInvalid)
		}
		return utf8.AppendRune(buf, paired), nil
	default:
		p.scanr.Back()
		return nil, p.errAt(ErrStringEscapeInvalid)
	}
}

func (p *Parser) parseHex4() (rune, error) {
	var r rune
	for i := 0; i < 4; i++ {
		b, err := p.scanr.Read()
		if err != nil {
			return 0, p.readError(err)
		}
		if !scanner.IsHexDigit(b) {
			p.scanr.Back()
			return 0, p.errAt(ErrStringUnicodeEscapeInvalid)
		}
		r <<= 4
		switch {
		case b <= '9':
			r |= rune(b - '0')
		case b <= 'F':
			r |= rune(b-'A') + 10
		default:
			r |= rune(b-'a') + 10
		}
	}
	return r, nil
}

// parseNumber scans a number literal, validates it, and delivers it through
// the narrowest applicable event: Int, Uint, Int64 or Uint64 for integer
// literals in range, Double otherwise, falling back to RawNumber for
// literals a float64 cannot hold.
func (p *Parser) parseNumber(h sax.Handler) error {
	s := p.scanr
	s.StartToken()
	isInt := true
	b, err := s.Read()
	if err != nil {
		return p.readError(err)
	}
	neg := b == '-'
	if neg {
		b, err = s.Read()
		if err != nil {
			return p.readError(err)
		}
	}

	// Integer part
	if b == '0' {
		b, err = s.Read()
		if err != nil {
			return p.readError(err)
		}
	} else if scanner.IsDigit(b) {
		b, _, err = p.readDigits()
		if err != nil {
			return err
		}
	} else {
		s.Back()
		return p.errAt(ErrNumberMissDigit)
	}

	// Fraction part
	if b == '.' {
		isInt = false
		var n int
		b, n, err = p.readDigits()
		if err != nil {
			return err
		}
		if n == 0 {
			s.Back()
			return p.errAt(ErrNumberMissDigit)
		}
	}

	// Exponent part
	if b == 'e' || b == 'E' {
		isInt = false
		b, err = s.Read()
		if err != nil {
			return p.readError(err)
		}
		if b != '+' && b != '-' {
			s.Back()
		}
		var n int
		b, n, err = p.readDigits()
		if err != nil {
			return err
		}
		if n == 0 {
			s.Back()
			return p.errAt(ErrNumberMissDigit)
		}
	}

	// b is one byte past the number
	s.Back()
	return p.emitNumber(h, s.EndToken(), neg, isInt)
}

func (p *Parser) readDigits() (byte, int, error) {
	var n int
	for {
		b, err := p.scanr.Read()
		if err != nil {
			return 0, n, p.readError(err)
		}
		if !scanner.IsDigit(b) {
			return b, n, nil
		}
		n++
	}
}

func (p *Parser) emitNumber(h sax.Handler, raw []byte, neg, isInt bool) error {
	if isInt {
		if neg {
			i, err := strconv.ParseInt(string(raw), 10, 64)
			if err == nil {
				if i >= math.MinInt32 {
					return p.deliver(h.Int(int32(i)))
				}
				return p.deliver(h.Int64(i))
			}
		} else {
			u, err := strconv.ParseUint(string(raw), 10, 64)
			if err == nil {
				switch {
				case u <= math.MaxInt32:
					return p.deliver(h.Int(int32(u)))
				case u <= math.MaxUint32:
					return p.deliver(h.Uint(uint32(u)))
				case u <= math.MaxInt64:
					return p.deliver(h.Int64(int64(u)))
				default:
					return p.deliver(h.Uint64(u))
				}
			}
		}
		// Integer out of 64-bit range, try as a double
	}
	f, err := strconv.ParseFloat(string(raw), 64)
	if err != nil || math.IsInf(f, 0) {
		// Not representable as a float64, hand over the literal bytes
		return p.deliver(h.RawNumber(raw))
	}
	return p.deliver(h.Double(f))
}

var (
	trueBytes  = []byte("true")
	falseBytes = []byte("false")
	nullBytes  = []byte("null")
)
