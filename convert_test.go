package treebind_test

import (
	"strings"
	"testing"
	"time"

	"github.com/reoring/treebind"
)

type celsius float64

type upper string

func (u *upper) UnmarshalText(b []byte) error {
	*u = upper(strings.ToUpper(string(b)))
	return nil
}

func (u upper) MarshalText() ([]byte, error) { return []byte(strings.ToLower(string(u))), nil }

func TestToValue_Scalars(t *testing.T) {
	s := treebind.NewScalar

	if got := treebind.ToValue[int](s(" 123 ")).Get(); got != 123 {
		t.Fatalf("int: got %d", got)
	}
	if got := treebind.ToValue[int64](s("-7")).Get(); got != -7 {
		t.Fatalf("int64: got %d", got)
	}
	if got := treebind.ToValue[uint16](s("65535")).Get(); got != 65535 {
		t.Fatalf("uint16: got %d", got)
	}
	if got := treebind.ToValue[float64](s("1.5")).Get(); got != 1.5 {
		t.Fatalf("float64: got %v", got)
	}
	if got := treebind.ToValue[bool](s("true")).Get(); !got {
		t.Fatalf("bool: got false")
	}
	if got := treebind.ToValue[string](s("  hello world ")).Get(); got != "hello world" {
		t.Fatalf("string: got %q", got)
	}
	if got := treebind.ToValue[celsius](s("21.5")).Get(); got != 21.5 {
		t.Fatalf("named float: got %v", got)
	}
	if got := treebind.ToValue[upper](s("abc")).Get(); got != "ABC" {
		t.Fatalf("TextUnmarshaler: got %q", got)
	}
}

func TestToValue_DecimalSpellings(t *testing.T) {
	s := treebind.NewScalar
	if got := treebind.ToValue[int](s("+42")).Get(); got != 42 {
		t.Fatalf("int: got %d", got)
	}
	if got := treebind.ToValue[uint8](s("+7")).Get(); got != 7 {
		t.Fatalf("uint8: got %d", got)
	}
	if got := treebind.ToValue[int](s("007")).Get(); got != 7 {
		t.Fatalf("leading zeros: got %d", got)
	}
	for text, want := range map[string]float64{".5": 0.5, "5.": 5, "-1.25e+2": -125, "1E3": 1000, "2": 2} {
		if got := treebind.ToValue[float64](s(text)).Get(); got != want {
			t.Fatalf("float %q: want %v, got %v", text, want, got)
		}
	}
	for text, want := range map[string]bool{"true": true, "false": false, "True": true, "FALSE": false, "1": true, "0": false} {
		if got := treebind.ToValue[bool](s(text)).Get(); got != want {
			t.Fatalf("bool %q: want %v, got %v", text, want, got)
		}
	}
}

func TestToValue_StringTakesWholeText(t *testing.T) {
	got := treebind.ToValue[string](treebind.NewScalar("  two words\tand a tab \n")).Get()
	if got != "two words\tand a tab" {
		t.Fatalf("want every word kept, got %q", got)
	}
	items, err := treebind.DecodeSequence[string](nil, treebind.NewSequence(treebind.NewScalar("New York"), treebind.NewScalar("a b c")))
	if err != nil || len(items) != 2 || items[0] != "New York" || items[1] != "a b c" {
		t.Fatalf("unexpected items %q (%v)", items, err)
	}
}

func scalarErr[T any](text string) func() *treebind.Error {
	return func() *treebind.Error { return treebind.ToValue[T](treebind.NewScalar(text)).GetErr() }
}

func TestToValue_ScalarFailures(t *testing.T) {
	cases := []struct {
		name string
		run  func() *treebind.Error
		code string
		msg  string
	}{
		{"fraction as int", func() *treebind.Error { return treebind.ToValue[int](treebind.NewScalar("1.5")).GetErr() },
			treebind.CodeUnusedCharacters, `Value has unused characters: "1.5"`},
		{"trailing letters", func() *treebind.Error { return treebind.ToValue[int](treebind.NewScalar("123et")).GetErr() },
			treebind.CodeUnusedCharacters, `Value has unused characters: "123et"`},
		{"not a number", func() *treebind.Error { return treebind.ToValue[float64](treebind.NewScalar("abc")).GetErr() },
			treebind.CodeParseError, `Unable to parse "abc"`},
		{"overflow", func() *treebind.Error { return treebind.ToValue[int8](treebind.NewScalar("300")).GetErr() },
			treebind.CodeParseError, `Unable to parse "300"`},
		{"empty", func() *treebind.Error { return treebind.ToValue[int](treebind.NewScalar("  ")).GetErr() },
			treebind.CodeParseError, `Unable to parse ""`},
		{"bool single rune", scalarErr[bool]("x"), treebind.CodeParseError, `Unable to parse "x"`},
		{"bool n", scalarErr[bool]("n"), treebind.CodeParseError, `Unable to parse "n"`},
		{"bool punctuation", scalarErr[bool]("?"), treebind.CodeParseError, `Unable to parse "?"`},
		{"bool word", scalarErr[bool]("yes"), treebind.CodeParseError, `Unable to parse "yes"`},
		{"bool with suffix", scalarErr[bool]("true1"), treebind.CodeParseError, `Unable to parse "true1"`},
		{"hex int", scalarErr[int64]("0x10"), treebind.CodeUnusedCharacters, `Value has unused characters: "0x10"`},
		{"binary int", scalarErr[int64]("0b101"), treebind.CodeUnusedCharacters, `Value has unused characters: "0b101"`},
		{"int separators", scalarErr[int64]("1_000"), treebind.CodeUnusedCharacters, `Value has unused characters: "1_000"`},
		{"int inner space", scalarErr[int]("1 2"), treebind.CodeUnusedCharacters, `Value has unused characters: "1 2"`},
		{"int64 overflow", scalarErr[int64]("9223372036854775808"), treebind.CodeParseError, `Unable to parse "9223372036854775808"`},
		{"sign only", scalarErr[int]("-"), treebind.CodeParseError, `Unable to parse "-"`},
		{"negative uint", scalarErr[uint]("-1"), treebind.CodeParseError, `Unable to parse "-1"`},
		{"float separators", scalarErr[float64]("1_0.5"), treebind.CodeUnusedCharacters, `Value has unused characters: "1_0.5"`},
		{"hex float", scalarErr[float64]("0x1p-2"), treebind.CodeUnusedCharacters, `Value has unused characters: "0x1p-2"`},
		{"bare exponent", scalarErr[float64]("1e"), treebind.CodeUnusedCharacters, `Value has unused characters: "1e"`},
		{"nan", scalarErr[float64]("nan"), treebind.CodeParseError, `Unable to parse "nan"`},
		{"inf", scalarErr[float64]("inf"), treebind.CodeParseError, `Unable to parse "inf"`},
		{"float64 overflow", scalarErr[float64]("1e999"), treebind.CodeParseError, `Unable to parse "1e999"`},
		{"float32 overflow", scalarErr[float32]("1e39"), treebind.CodeParseError, `Unable to parse "1e39"`},
		{"mapping as int", func() *treebind.Error { return treebind.ToValue[int](treebind.NewMapping(nil)).GetErr() },
			treebind.CodeNotImplemented, "Parsing not implemented for given type"},
		{"unsupported type", func() *treebind.Error { return treebind.ToValue[[]int](treebind.NewScalar("1")).GetErr() },
			treebind.CodeNotImplemented, "Parsing not implemented for given type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := tc.run()
			if e.Code != tc.code || e.Message != tc.msg {
				t.Fatalf("want %s %q, got %s %q", tc.code, tc.msg, e.Code, e.Message)
			}
		})
	}
}

func TestFromValue_Scalars(t *testing.T) {
	cases := []struct {
		got  treebind.Node
		want string
	}{
		{treebind.FromValue(123), "123"},
		{treebind.FromValue(int8(-4)), "-4"},
		{treebind.FromValue(uint(9)), "9"},
		{treebind.FromValue(1.5), "1.5"},
		{treebind.FromValue(0.1), "0.1"},
		{treebind.FromValue(float32(0.1)), "0.1"},
		{treebind.FromValue(false), "false"},
		{treebind.FromValue(" padded "), "padded"},
		{treebind.FromValue(upper("ABC")), "abc"},
	}
	for _, tc := range cases {
		if !tc.got.Equal(treebind.NewScalar(tc.want)) {
			t.Errorf("want %q, got %v", tc.want, tc.got)
		}
	}
}

func TestScalar_RoundTrip(t *testing.T) {
	for _, f := range []float64{0, -1, 1e21, 3.141592653589793, 1.0 / 3} {
		if got := treebind.ToValue[float64](treebind.FromValue(f)).Get(); got != f {
			t.Fatalf("float %v round-tripped to %v", f, got)
		}
	}
	for _, i := range []int64{0, -9223372036854775808, 9223372036854775807} {
		if got := treebind.ToValue[int64](treebind.FromValue(i)).Get(); got != i {
			t.Fatalf("int %v round-tripped to %v", i, got)
		}
	}
}

func TestToValue_NodePassthrough(t *testing.T) {
	in := treebind.NewSequence(treebind.NewScalar("a"))
	got := treebind.ToValue[treebind.Node](in).Get()
	if !got.Equal(in) {
		t.Fatalf("want %v, got %v", in, got)
	}
	if out := treebind.FromValue[treebind.Node](in); !out.Equal(in) {
		t.Fatalf("FromValue should pass nodes through, got %v", out)
	}
}

func TestRegister_Converter(t *testing.T) {
	treebind.Register(treebind.Converter[time.Duration]{
		Decode: func(_ *treebind.Decoder, n treebind.Node) (time.Duration, error) {
			s, ok := n.(treebind.Scalar)
			if !ok {
				return 0, treebind.NewError(treebind.CodeInvalidKind, "want scalar")
			}
			return time.ParseDuration(s.Text())
		},
		Encode: func(v time.Duration) treebind.Node { return treebind.NewScalar(v.String()) },
	})
	defer treebind.Unregister[time.Duration]()

	if got := treebind.ToValue[time.Duration](treebind.NewScalar("1m30s")).Get(); got != 90*time.Second {
		t.Fatalf("want 1m30s, got %v", got)
	}
	if got := treebind.FromValue(2 * time.Second); !got.Equal(treebind.NewScalar("2s")) {
		t.Fatalf("want 2s, got %v", got)
	}
	e := treebind.ToValue[time.Duration](treebind.NewScalar("soon")).GetErr()
	if e.Code != treebind.CodeParseError || e.Cause == nil {
		t.Fatalf("foreign converter errors should become parse_error with a cause, got %+v", e)
	}
}

// chain decodes a sequence nested to arbitrary depth.
type chain struct{ depth int }

func (c *chain) DecodeNode(d *treebind.Decoder, n treebind.Node) error {
	s, ok := n.(treebind.Sequence)
	if !ok || s.Len() == 0 {
		return nil
	}
	inner, err := treebind.Decode[chain](d, s.At(0))
	if err != nil {
		return treebind.AsError(err).AddIndex(0)
	}
	c.depth = inner.depth + 1
	return nil
}

func nested(depth int) treebind.Node {
	var n treebind.Node = treebind.NewScalar("leaf")
	for i := 0; i < depth; i++ {
		n = treebind.NewSequence(n)
	}
	return n
}

func TestDecoder_MaxDepth(t *testing.T) {
	if got := treebind.ToValue[chain](nested(10)).Get(); got.depth != 10 {
		t.Fatalf("want depth 10, got %d", got.depth)
	}

	e := treebind.ToValue[chain](nested(10), treebind.MaxDepth(5)).GetErr()
	if e.Code != treebind.CodeMaxDepth {
		t.Fatalf("want max_depth, got %s", e.Code)
	}
	if e.Location() != "[0][0][0][0][0]" {
		t.Fatalf("unexpected location %q", e.Location())
	}

	if _, err := treebind.ToValue[chain](nested(treebind.DefaultMaxDepth + 1)).Unpack(); err == nil {
		t.Fatalf("default limit should reject %d levels", treebind.DefaultMaxDepth+1)
	}
	if _, err := treebind.ToValue[chain](nested(treebind.DefaultMaxDepth+1), treebind.MaxDepth(-1)).Unpack(); err != nil {
		t.Fatalf("negative MaxDepth should disable the limit: %v", err)
	}
}
