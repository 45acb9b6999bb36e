package parser_test

import (
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonsift/jsonsift/parser"
	"github.com/jsonsift/jsonsift/sax"
)

func parse(t *testing.T, input string) ([]sax.Event, error) {
	t.Helper()
	rec := &sax.Recorder{}
	err := parser.New(strings.NewReader(input)).Parse(rec)
	return rec.Events, err
}

func TestParseScalars(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected []sax.Event
	}{
		{"null", "null", []sax.Event{sax.NullEvent()}},
		{"true", "true", []sax.Event{sax.BoolEvent(true)}},
		{"false", "false", []sax.Event{sax.BoolEvent(false)}},
		{"string", `"hello"`, []sax.Event{sax.StringEvent("hello")}},
		{"empty string", `""`, []sax.Event{sax.StringEvent("")}},
		{"leading space", "  42", []sax.Event{sax.IntEvent(42)}},
		{"trailing space", "42\n", []sax.Event{sax.IntEvent(42)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := parse(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, events)
		})
	}
}

func TestParseNumberTypes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected sax.Event
	}{
		{"zero", "0", sax.IntEvent(0)},
		{"small int", "123", sax.IntEvent(123)},
		{"negative int", "-123", sax.IntEvent(-123)},
		{"max int32", "2147483647", sax.IntEvent(2147483647)},
		{"min int32", "-2147483648", sax.IntEvent(-2147483648)},
		{"above int32", "2147483648", sax.UintEvent(2147483648)},
		{"max uint32", "4294967295", sax.UintEvent(4294967295)},
		{"above uint32", "4294967296", sax.Int64Event(4294967296)},
		{"below int32", "-2147483649", sax.Int64Event(-2147483649)},
		{"max int64", "9223372036854775807", sax.Int64Event(9223372036854775807)},
		{"min int64", "-9223372036854775808", sax.Int64Event(-9223372036854775808)},
		{"above int64", "9223372036854775808", sax.Uint64Event(9223372036854775808)},
		{"max uint64", "18446744073709551615", sax.Uint64Event(18446744073709551615)},
		{"above uint64", "18446744073709551616", sax.DoubleEvent(1.8446744073709552e19)},
		{"below int64", "-9223372036854775809", sax.DoubleEvent(-9.223372036854776e18)},
		{"simple double", "1.5", sax.DoubleEvent(1.5)},
		{"negative double", "-0.25", sax.DoubleEvent(-0.25)},
		{"exponent", "1e3", sax.DoubleEvent(1000)},
		{"signed exponent", "-3e-2", sax.DoubleEvent(-0.03)},
		{"capital exponent", "2E+1", sax.DoubleEvent(20)},
		{"integer-valued double", "1.0", sax.DoubleEvent(1)},
		{"huge literal", "1e400", sax.RawNumberEvent("1e400")},
		{"huge negative literal", "-1e400", sax.RawNumberEvent("-1e400")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := parse(t, tt.input)
			require.NoError(t, err)
			require.Len(t, events, 1)
			assert.Equal(t, tt.expected, events[0])
		})
	}
}

func TestParseStringEscapes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"quote", `"a\"b"`, `a"b`},
		{"backslash", `"a\\b"`, `a\b`},
		{"slash", `"a\/b"`, "a/b"},
		{"controls", `"\b\f\n\r\t"`, "\b\f\n\r\t"},
		{"unicode", `"A"`, "A"},
		{"unicode lowercase hex", `"é"`, "é"},
		{"surrogate pair", `"😀"`, "😀"},
		{"mixed", `"tab\there"`, "tab\there"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, err := parse(t, tt.input)
			require.NoError(t, err)
			assert.Equal(t, []sax.Event{sax.StringEvent(tt.expected)}, events)
		})
	}
}

func TestParseContainers(t *testing.T) {
	events, err := parse(t, `{"id": 123, "tags": ["important", "new"], "extra": null}`)
	require.NoError(t, err)
	assert.Equal(t, []sax.Event{
		sax.StartObjectEvent(),
		sax.KeyEvent("id"),
		sax.IntEvent(123),
		sax.KeyEvent("tags"),
		sax.StartArrayEvent(),
		sax.StringEvent("important"),
		sax.StringEvent("new"),
		sax.EndArrayEvent(2),
		sax.KeyEvent("extra"),
		sax.NullEvent(),
		sax.EndObjectEvent(3),
	}, events)
}

func TestParseEmptyContainers(t *testing.T) {
	events, err := parse(t, `{"a": {}, "b": [[], {}]}`)
	require.NoError(t, err)
	assert.Equal(t, []sax.Event{
		sax.StartObjectEvent(),
		sax.KeyEvent("a"),
		sax.StartObjectEvent(),
		sax.EndObjectEvent(0),
		sax.KeyEvent("b"),
		sax.StartArrayEvent(),
		sax.StartArrayEvent(),
		sax.EndArrayEvent(0),
		sax.StartObjectEvent(),
		sax.EndObjectEvent(0),
		sax.EndArrayEvent(2),
		sax.EndObjectEvent(2),
	}, events)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		code   parser.ErrorCode
		offset int64
	}{
		{"empty document", "", parser.ErrDocumentEmpty, 0},
		{"blank document", "  \n ", parser.ErrDocumentEmpty, 4},
		{"trailing content", "{} x", parser.ErrRootNotSingular, 3},
		{"second value", "1 2", parser.ErrRootNotSingular, 2},
		{"invalid value", "@", parser.ErrValueInvalid, 0},
		{"truncated literal", "tru", parser.ErrValueInvalid, 3},
		{"misspelt literal", "nul!", parser.ErrValueInvalid, 3},
		{"missing colon", `{"a" 1}`, parser.ErrObjectMissColon, 5},
		{"number key", `{1: 2}`, parser.ErrObjectMissKey, 1},
		{"missing comma in object", `{"a": 1 "b": 2}`, parser.ErrObjectMissCommaOrBrace, 8},
		{"missing comma in array", "[1 2]", parser.ErrArrayMissCommaOrBracket, 3},
		{"unterminated array", "[1, 2", parser.ErrArrayMissCommaOrBracket, 5},
		{"unterminated string", `"abc`, parser.ErrStringMissQuote, 4},
		{"bad escape", `"a\x"`, parser.ErrStringEscapeInvalid, 3},
		{"bad unicode escape", `"\u12g4"`, parser.ErrStringUnicodeEscapeInvalid, 5},
		{"lone low surrogate", `"\udc00"`, parser.ErrStringUnicodeSurrogateInvalid, 7},
		{"unpaired high surrogate", `"\ud83d!"`, parser.ErrStringUnicodeSurrogateInvalid, 7},
		{"control char in string", "\"a\x01b\"", parser.ErrStringInvalidChar, 2},
		{"bare minus", "-", parser.ErrNumberMissDigit, 1},
		{"missing fraction", "1.", parser.ErrNumberMissDigit, 2},
		{"missing exponent", "1e", parser.ErrNumberMissDigit, 2},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := parse(t, tt.input)
			require.Error(t, err)
			var perr *parser.Error
			require.ErrorAs(t, err, &perr)
			assert.Equal(t, tt.code, perr.Code, "code in %s", err)
			assert.Equal(t, tt.offset, perr.Offset, "offset in %s", err)
		})
	}
}

// rejectAfter accepts events until n have been seen, then fails every call.
type rejectAfter struct {
	sax.Recorder
	n   int
	err error
}

func (r *rejectAfter) check() error {
	if len(r.Recorder.Events) >= r.n {
		return r.err
	}
	return nil
}

func (r *rejectAfter) Key(b []byte) error {
	if err := r.check(); err != nil {
		return err
	}
	return r.Recorder.Key(b)
}

func (r *rejectAfter) Int(i int32) error {
	if err := r.check(); err != nil {
		return err
	}
	return r.Recorder.Int(i)
}

func TestParseHandlerRejection(t *testing.T) {
	cause := pkgerrors.New("tree full")
	h := &rejectAfter{n: 3, err: cause}
	err := parser.New(strings.NewReader(`{"a": 1, "b": 2, "c": 3}`)).Parse(h)
	require.Error(t, err)
	var perr *parser.Error
	require.ErrorAs(t, err, &perr)
	assert.Equal(t, parser.ErrTermination, perr.Code)
	assert.ErrorIs(t, err, cause)
	// Nothing was delivered after the rejection
	assert.Equal(t, []sax.Event{
		sax.StartObjectEvent(),
		sax.KeyEvent("a"),
		sax.IntEvent(1),
	}, h.Recorder.Events)
}

func TestParseErrorMessage(t *testing.T) {
	_, err := parse(t, "[1,\n 2,,]")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "L2")
	assert.Contains(t, err.Error(), "offset 7")
}
