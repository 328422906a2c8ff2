package jsontree_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/reoring/treebind"
	"github.com/reoring/treebind/jsontree"
)

func TestFromJSONString(t *testing.T) {
	got, err := jsontree.FromJSONString(`{"w": 1.5, "h": "  2 ", "tags": [true, null, "x"], "nested": {"n": -3e2}}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := treebind.NewMapping(map[string]treebind.Node{
		"w":    treebind.NewScalar("1.5"),
		"h":    treebind.NewScalar("2"),
		"tags": treebind.NewSequence(treebind.NewScalar("true"), treebind.NewScalar("null"), treebind.NewScalar("x")),
		"nested": treebind.NewMapping(map[string]treebind.Node{
			"n": treebind.NewScalar("-3e2"),
		}),
	})
	if diff := cmp.Diff(treebind.Node(want), got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	// typed conversion works on the literal text
	w, _ := got.(treebind.Mapping).Get("w")
	if v := treebind.ToValue[float64](w).Get(); v != 1.5 {
		t.Fatalf("want 1.5, got %v", v)
	}
}

func TestRoundTrip(t *testing.T) {
	in := treebind.NewMapping(map[string]treebind.Node{
		"b": treebind.NewSequence(treebind.NewScalar("1"), treebind.NewMapping(nil), treebind.NewSequence()),
		"a": treebind.NewScalar("quote \" and \\ backslash"),
	})
	s, err := jsontree.ToJSONString(in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.HasPrefix(s, "{\n  \"a\"") {
		t.Fatalf("keys should be sorted and indented:\n%s", s)
	}
	back, err := jsontree.FromJSONString(s)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if diff := cmp.Diff(treebind.Node(in), back); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestFromJSONString_Errors(t *testing.T) {
	cases := []struct {
		name string
		in   string
		opt  jsontree.Options
		code string
		loc  string
	}{
		{"empty", "", jsontree.Options{}, treebind.CodeParseError, ""},
		{"truncated", `[1, 2`, jsontree.Options{}, treebind.CodeParseError, ""},
		{"bad literal", `{"a": tru}`, jsontree.Options{}, treebind.CodeParseError, ""},
		{"invalid character", `@`, jsontree.Options{}, treebind.CodeParseError, ""},
		{"trailing value", `1 2`, jsontree.Options{}, treebind.CodeParseError, ""},
		{"duplicate key", `{"a": {"k": 1, "k": 2}}`, jsontree.Options{}, treebind.CodeDuplicateKey, "a.k"},
		{"too deep", `[[[1]]]`, jsontree.Options{MaxDepth: 2}, treebind.CodeMaxDepth, "[0][0]"},
		{"too large", `["` + strings.Repeat("x", 100) + `"]`, jsontree.Options{MaxBytes: 10}, treebind.CodeParseError, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := jsontree.FromJSONString(tc.in, tc.opt)
			e := treebind.AsError(err)
			if e == nil {
				t.Fatalf("expected error")
			}
			if e.Code != tc.code || e.Location() != tc.loc {
				t.Fatalf("want %s at %q, got %s at %q (%v)", tc.code, tc.loc, e.Code, e.Location(), e)
			}
		})
	}
}

func TestFromJSONString_AllowDuplicateKeys(t *testing.T) {
	got, err := jsontree.FromJSONString(`{"k": 1, "k": 2}`, jsontree.Options{AllowDuplicateKeys: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if v, _ := got.(treebind.Mapping).Get("k"); !v.Equal(treebind.NewScalar("2")) {
		t.Fatalf("last value should win, got %v", v)
	}
}

func TestFromJSONString_DefaultDepth(t *testing.T) {
	deep := strings.Repeat("[", treebind.DefaultMaxDepth+1) + strings.Repeat("]", treebind.DefaultMaxDepth+1)
	if _, err := jsontree.FromJSONString(deep); err == nil {
		t.Fatalf("default depth limit should apply")
	}
	if _, err := jsontree.FromJSONString(deep, jsontree.Options{MaxDepth: -1}); err != nil {
		t.Fatalf("negative MaxDepth disables the limit: %v", err)
	}
}

func TestFromJSON_Native(t *testing.T) {
	got, err := jsontree.FromJSON(map[string]any{
		"n":    float64(2),
		"i":    int64(-4),
		"s":    "x",
		"list": []any{true, nil},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := treebind.NewMapping(map[string]treebind.Node{
		"n":    treebind.NewScalar("2"),
		"i":    treebind.NewScalar("-4"),
		"s":    treebind.NewScalar("x"),
		"list": treebind.NewSequence(treebind.NewScalar("true"), treebind.NewScalar("null")),
	})
	if diff := cmp.Diff(treebind.Node(want), got); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}

	_, err = jsontree.FromJSON(map[string]any{"bad": []any{struct{}{}}})
	if e := treebind.AsError(err); e == nil || e.Location() != "bad[0]" {
		t.Fatalf("want failure at bad[0], got %v", err)
	}
}

func TestToJSON(t *testing.T) {
	n := treebind.NewMapping(map[string]treebind.Node{
		"a": treebind.NewSequence(treebind.NewScalar("1")),
	})
	want := map[string]any{"a": []any{"1"}}
	if diff := cmp.Diff(any(want), jsontree.ToJSON(n)); diff != "" {
		t.Fatalf("(-want +got):\n%s", diff)
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "doc.json")
	n := treebind.NewSequence(treebind.NewScalar("a"), treebind.NewScalar("b"))
	if err := jsontree.ToJSONFile(n, path); err != nil {
		t.Fatalf("write: %v", err)
	}
	back, err := jsontree.FromJSONFile(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if !back.Equal(n) {
		t.Fatalf("want %v, got %v", n, back)
	}

	_, err = jsontree.FromJSONFile(filepath.Join(dir, "missing.json"))
	if e := treebind.AsError(err); e == nil || e.Code != treebind.CodeIO {
		t.Fatalf("want io_error, got %v", err)
	}
	_, err = jsontree.FromJSONFile(dir)
	if e := treebind.AsError(err); e == nil || e.Code != treebind.CodeIO {
		t.Fatalf("reading a directory should be an io_error, got %v", err)
	}
	if err := jsontree.ToJSONFile(n, filepath.Join(dir, "no", "such", "dir.json")); treebind.AsError(err).Code != treebind.CodeIO {
		t.Fatalf("want io_error, got %v", err)
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{"), 0o644); err != nil {
		t.Fatal(err)
	}
	_, err = jsontree.FromJSONFile(bad)
	if e := treebind.AsError(err); e == nil || e.Code != treebind.CodeParseError {
		t.Fatalf("want parse_error, got %v", err)
	}
}
