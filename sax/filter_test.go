package sax_test

import (
	"strings"
	"testing"

	pkgerrors "github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsonsift/jsonsift/parser"
	"github.com/jsonsift/jsonsift/sax"
)

// filterJSON parses input and returns the events coming out of a KeyFilter
// dropping key.
func filterJSON(t *testing.T, input, key string) []sax.Event {
	t.Helper()
	rec := &sax.Recorder{}
	filter := sax.NewKeyFilter(rec, []byte(key))
	require.NoError(t, parser.New(strings.NewReader(input)).Parse(filter))
	return rec.Events
}

// parseJSON returns the events of input with no filter in the way.
func parseJSON(t *testing.T, input string) []sax.Event {
	t.Helper()
	rec := &sax.Recorder{}
	require.NoError(t, parser.New(strings.NewReader(input)).Parse(rec))
	return rec.Events
}

// A stream with no occurrence of the key passes through untouched,
// counts included.
func TestPassThrough(t *testing.T) {
	inputs := []string{
		`null`,
		`true`,
		`"drop me not"`,
		`[1, 2.5, "x", null, false]`,
		`{"keep": 1, "also": {"nested": [1, 2, {"deep": true}]}}`,
		`{"dropper": 1, "dro": 2}`,
		`[{"a": 1}, {"b": 2}]`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			assert.Equal(t, parseJSON(t, input), filterJSON(t, input, "drop"))
		})
	}
}

func TestDropScalarValue(t *testing.T) {
	events := filterJSON(t, `{"drop": 5, "keep": 6}`, "drop")
	assert.Equal(t, []sax.Event{
		sax.StartObjectEvent(),
		sax.KeyEvent("keep"),
		sax.IntEvent(6),
		sax.EndObjectEvent(1),
	}, events)
}

func TestDropNestedValue(t *testing.T) {
	events := filterJSON(t, `{"drop": {"x": 1}}`, "drop")
	assert.Equal(t, []sax.Event{
		sax.StartObjectEvent(),
		sax.EndObjectEvent(0),
	}, events)
}

// An object closing with a member removed reports the number of members that
// were actually forwarded.
func TestMemberCountCorrection(t *testing.T) {
	events := filterJSON(t, `{"a": 1, "drop": 2, "b": 3}`, "drop")
	assert.Equal(t, []sax.Event{
		sax.StartObjectEvent(),
		sax.KeyEvent("a"),
		sax.IntEvent(1),
		sax.KeyEvent("b"),
		sax.IntEvent(3),
		sax.EndObjectEvent(2),
	}, events)
}

func TestDropEveryValueKind(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"null", "null"},
		{"bool", "true"},
		{"int", "5"},
		{"uint", "4000000000"},
		{"int64", "5000000000"},
		{"uint64", "18446744073709551615"},
		{"double", "1.5"},
		{"raw number", "1e999"},
		{"string", `"s"`},
		{"empty object", "{}"},
		{"empty array", "[]"},
		{"deep object", `{"a": {"b": {"c": [1, {"d": 2}]}}}`},
		{"deep array", `[[[{"a": [1]}]], []]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events := filterJSON(t, `{"before": 1, "drop": `+tt.value+`, "after": 2}`, "drop")
			assert.Equal(t, []sax.Event{
				sax.StartObjectEvent(),
				sax.KeyEvent("before"),
				sax.IntEvent(1),
				sax.KeyEvent("after"),
				sax.IntEvent(2),
				sax.EndObjectEvent(2),
			}, events)
		})
	}
}

// The key matches inside nested objects at any depth, and matching inside a
// dropped subtree must not restart suppression.
func TestDropAtAnyDepth(t *testing.T) {
	events := filterJSON(t, `{"a": {"drop": 1, "b": {"drop": [2], "c": 3}}, "drop": 4}`, "drop")
	assert.Equal(t, []sax.Event{
		sax.StartObjectEvent(),
		sax.KeyEvent("a"),
		sax.StartObjectEvent(),
		sax.KeyEvent("b"),
		sax.StartObjectEvent(),
		sax.KeyEvent("c"),
		sax.IntEvent(3),
		sax.EndObjectEvent(1),
		sax.EndObjectEvent(1),
		sax.EndObjectEvent(1),
	}, events)
}

func TestKeyInsideDroppedSubtree(t *testing.T) {
	// "drop" occurs again inside the dropped value, and sibling keys of the
	// inner occurrence must not leak out.
	events := filterJSON(t, `{"drop": {"drop": {"keep": 1}, "keep": 2}, "a": 3}`, "drop")
	assert.Equal(t, []sax.Event{
		sax.StartObjectEvent(),
		sax.KeyEvent("a"),
		sax.IntEvent(3),
		sax.EndObjectEvent(1),
	}, events)
}

// Array element counts are not corrected: a key can only remove object
// members, so element counts always match what is forwarded.
func TestArrayCountsUnchanged(t *testing.T) {
	events := filterJSON(t, `[{"drop": 1}, {"drop": 2, "keep": 3}, 4]`, "drop")
	assert.Equal(t, []sax.Event{
		sax.StartArrayEvent(),
		sax.StartObjectEvent(),
		sax.EndObjectEvent(0),
		sax.StartObjectEvent(),
		sax.KeyEvent("keep"),
		sax.IntEvent(3),
		sax.EndObjectEvent(1),
		sax.IntEvent(4),
		sax.EndArrayEvent(3),
	}, events)
}

// A value whose string content equals the key is not a key and must be kept.
func TestStringValueEqualToKeyIsKept(t *testing.T) {
	events := filterJSON(t, `{"a": "drop", "b": ["drop"]}`, "drop")
	assert.Equal(t, parseJSON(t, `{"a": "drop", "b": ["drop"]}`), events)
}

func TestConcreteScenario(t *testing.T) {
	events := filterJSON(t, `{"keep": 1, "drop": {"a": [1,2,3]}, "also_keep": "x"}`, "drop")
	assert.Equal(t, []sax.Event{
		sax.StartObjectEvent(),
		sax.KeyEvent("keep"),
		sax.IntEvent(1),
		sax.KeyEvent("also_keep"),
		sax.StringEvent("x"),
		sax.EndObjectEvent(2),
	}, events)
}

func TestConcreteScenarioNested(t *testing.T) {
	events := filterJSON(t, `{"items": [{"drop": 1, "keep": 2}]}`, "drop")
	assert.Equal(t, parseJSON(t, `{"items": [{"keep": 2}]}`), events)
}

// Filtering an already filtered stream changes nothing: the first pass left
// no occurrence of the key behind.
func TestRefilterIsIdentity(t *testing.T) {
	inputs := []string{
		`{"drop": 1}`,
		`{"a": 1, "drop": {"drop": 2}, "b": [{"drop": 3}]}`,
		`[{"x": {"drop": [1, 2]}}]`,
	}
	for _, input := range inputs {
		t.Run(input, func(t *testing.T) {
			once := &sax.Recorder{}
			require.NoError(t, parser.New(strings.NewReader(input)).Parse(
				sax.NewKeyFilter(once, []byte("drop"))))

			twice := &sax.Recorder{}
			chain := sax.NewKeyFilter(sax.NewKeyFilter(twice, []byte("drop")), []byte("drop"))
			require.NoError(t, parser.New(strings.NewReader(input)).Parse(chain))

			assert.Equal(t, once.Events, twice.Events)
		})
	}
}

// failAfter forwards to the recorder until n events have been recorded, then
// rejects everything.
type failAfter struct {
	sax.Recorder
	n   int
	err error
}

func (f *failAfter) guard(record func() error) error {
	if len(f.Recorder.Events) >= f.n {
		return f.err
	}
	return record()
}

func (f *failAfter) Key(b []byte) error { return f.guard(func() error { return f.Recorder.Key(b) }) }

func (f *failAfter) Int(i int32) error { return f.guard(func() error { return f.Recorder.Int(i) }) }

func (f *failAfter) String(b []byte) error {
	return f.guard(func() error { return f.Recorder.String(b) })
}

func (f *failAfter) StartObject() error { return f.guard(f.Recorder.StartObject) }

func (f *failAfter) EndObject(n int) error {
	return f.guard(func() error { return f.Recorder.EndObject(n) })
}

func TestDownstreamFailureShortCircuits(t *testing.T) {
	cause := pkgerrors.New("downstream full")
	down := &failAfter{n: 2, err: cause}
	filter := sax.NewKeyFilter(down, []byte("drop"))
	err := parser.New(strings.NewReader(`{"a": 1, "b": 2}`)).Parse(filter)
	require.Error(t, err)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, []sax.Event{
		sax.StartObjectEvent(),
		sax.KeyEvent("a"),
	}, down.Recorder.Events)
}

// Driving the filter directly (no parser) with events that end the stream on
// a suppressed scalar: suppression must close the moment the scalar ends.
func TestSuppressionClosesOnScalar(t *testing.T) {
	rec := &sax.Recorder{}
	f := sax.NewKeyFilter(rec, []byte("drop"))
	require.NoError(t, f.StartObject())
	require.NoError(t, f.Key([]byte("drop")))
	require.NoError(t, f.Int(5))
	// Suppression is over: the next member must be forwarded.
	require.NoError(t, f.Key([]byte("b")))
	require.NoError(t, f.Bool(true))
	require.NoError(t, f.EndObject(2))
	assert.Equal(t, []sax.Event{
		sax.StartObjectEvent(),
		sax.KeyEvent("b"),
		sax.BoolEvent(true),
		sax.EndObjectEvent(1),
	}, rec.Events)
}

func TestTopLevelValueNeverMatches(t *testing.T) {
	// A top-level string equal to the key is a value, not a key.
	events := filterJSON(t, `"drop"`, "drop")
	assert.Equal(t, []sax.Event{sax.StringEvent("drop")}, events)
}
