package parser

import "fmt"

// An ErrorCode identifies the reason a parse failed.
type ErrorCode int

const (
	ErrNone ErrorCode = iota

	// Document level
	ErrDocumentEmpty
	ErrRootNotSingular

	// Values
	ErrValueInvalid

	// Objects and arrays
	ErrObjectMissKey
	ErrObjectMissColon
	ErrObjectMissCommaOrBrace
	ErrArrayMissCommaOrBracket

	// Strings
	ErrStringMissQuote
	ErrStringEscapeInvalid
	ErrStringUnicodeEscapeInvalid
	ErrStringUnicodeSurrogateInvalid
	ErrStringInvalidChar

	// Numbers
	ErrNumberMissDigit

	// The handler rejected an event; the original error is in Cause.
	ErrTermination

	// The underlying reader failed; the original error is in Cause.
	ErrRead
)

func (c ErrorCode) String() string {
	switch c {
	case ErrNone:
		return "no error"
	case ErrDocumentEmpty:
		return "document is empty"
	case ErrRootNotSingular:
		return "extra content after top-level value"
	case ErrValueInvalid:
		return "invalid value"
	case ErrObjectMissKey:
		return "expected object key"
	case ErrObjectMissColon:
		return "expected ':' after object key"
	case ErrObjectMissCommaOrBrace:
		return "expected ',' or '}' in object"
	case ErrArrayMissCommaOrBracket:
		return "expected ',' or ']' in array"
	case ErrStringMissQuote:
		return "unterminated string"
	case ErrStringEscapeInvalid:
		return "invalid escape in string"
	case ErrStringUnicodeEscapeInvalid:
		return "invalid unicode escape in string"
	case ErrStringUnicodeSurrogateInvalid:
		return "invalid unicode surrogate in string"
	case ErrStringInvalidChar:
		return "invalid character in string"
	case ErrNumberMissDigit:
		return "expected digit in number"
	case ErrTermination:
		return "parse terminated by handler"
	case ErrRead:
		return "read error"
	default:
		return "<invalid error code>"
	}
}

// An Error reports a parse failure: what went wrong (Code) and where
// (Offset, the absolute byte offset of the offending byte, with Line and Col
// for human consumption).  For ErrTermination and ErrRead, Cause holds the
// underlying error.
type Error struct {
	Code   ErrorCode
	Offset int64
	Line   int
	Col    int
	Cause  error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s at offset %d: %s", e.Code, e.Offset, e.Cause)
	}
	return fmt.Sprintf("syntax error at L%d,C%d (offset %d): %s", e.Line+1, e.Col+1, e.Offset, e.Code)
}

func (e *Error) Unwrap() error {
	return e.Cause
}
