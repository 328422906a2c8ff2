package treebind_test

import (
	"errors"
	"fmt"
	"io"
	"testing"

	"github.com/reoring/treebind"
)

func TestError_LocationComposition(t *testing.T) {
	e := treebind.NewError("x", "bad")
	if e.Error() != "bad" {
		t.Fatalf("root error should print bare message, got %q", e.Error())
	}
	e.AddField("h")
	if e.Location() != "h" {
		t.Fatalf("want h, got %q", e.Location())
	}
	e.AddIndex(1)
	if e.Location() != "[1].h" {
		t.Fatalf("want [1].h, got %q", e.Location())
	}
	e.AddField("sizes")
	if e.Location() != "sizes[1].h" {
		t.Fatalf("want sizes[1].h, got %q", e.Location())
	}
	if e.Error() != "sizes[1].h: bad" {
		t.Fatalf("unexpected rendering %q", e.Error())
	}
}

func TestError_IndexThenIndex(t *testing.T) {
	e := treebind.NewError("x", "bad").AddIndex(2).AddIndex(0).AddField("grid")
	if e.Location() != "grid[0][2]" {
		t.Fatalf("want grid[0][2], got %q", e.Location())
	}
}

func TestAsError(t *testing.T) {
	if treebind.AsError(nil) != nil {
		t.Fatalf("nil must stay nil")
	}
	orig := treebind.NewError(treebind.CodeMissingField, "Missing h")
	wrapped := fmt.Errorf("context: %w", orig)
	if got := treebind.AsError(wrapped); got != orig {
		t.Fatalf("AsError should return the wrapped *Error")
	}

	foreign := treebind.AsError(io.ErrUnexpectedEOF)
	if foreign.Code != treebind.CodeParseError {
		t.Fatalf("want parse_error, got %s", foreign.Code)
	}
	if !errors.Is(foreign, io.ErrUnexpectedEOF) {
		t.Fatalf("foreign error should stay reachable through Unwrap")
	}
}

func TestError_Equal(t *testing.T) {
	a := treebind.NewError("c", "m").AddField("f")
	b := treebind.NewError("c", "m").AddField("f")
	if !a.Equal(b) {
		t.Fatalf("errors should be equal")
	}
	if a.Equal(treebind.NewError("c", "m")) {
		t.Fatalf("different locations must not be equal")
	}
	var nilErr *treebind.Error
	if !nilErr.Equal(nil) || a.Equal(nil) {
		t.Fatalf("nil handling broken")
	}
}
