package treebind_test

import (
	"testing"

	"github.com/reoring/treebind"
)

func mustPanic(t *testing.T, name string, fn func()) {
	t.Helper()
	defer func() {
		if recover() == nil {
			t.Fatalf("%s: expected panic", name)
		}
	}()
	fn()
}

func TestResult_Ok(t *testing.T) {
	r := treebind.Ok(42)
	if !r.IsOk() {
		t.Fatalf("want ok")
	}
	if r.String() != "Ok ( 42 )" {
		t.Fatalf("unexpected String: %q", r.String())
	}
	if got := r.Get(); got != 42 {
		t.Fatalf("want 42, got %d", got)
	}
	mustPanic(t, "second Get", func() { r.Get() })
}

func TestResult_Err(t *testing.T) {
	e := treebind.NewError("c", "boom")
	r := treebind.Err[int](e)
	if r.IsOk() {
		t.Fatalf("want failure")
	}
	if r.String() != "Err ( boom )" {
		t.Fatalf("unexpected String: %q", r.String())
	}
	mustPanic(t, "Get on failure", func() { r.Get() })
	// the failed Get above consumed the result
	mustPanic(t, "GetErr after consumption", func() { r.GetErr() })

	r2 := treebind.Err[int](e)
	if r2.GetErr() != e {
		t.Fatalf("GetErr should return the stored error")
	}
}

func TestResult_Misuse(t *testing.T) {
	mustPanic(t, "GetErr on success", func() { treebind.Ok("x").GetErr() })
	mustPanic(t, "Err with nil", func() { treebind.Err[int](nil) })
	mustPanic(t, "zero result", func() {
		var r treebind.Result[int]
		r.IsOk()
	})
}

func TestResult_Unpack(t *testing.T) {
	v, err := treebind.Ok("x").Unpack()
	if err != nil || v != "x" {
		t.Fatalf("want x, got %q (%v)", v, err)
	}
	_, err = treebind.Err[string](treebind.NewError("c", "m")).Unpack()
	if err == nil || err.Error() != "m" {
		t.Fatalf("want error m, got %v", err)
	}
}
