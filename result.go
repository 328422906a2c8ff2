package treebind

import "fmt"

// Result holds either a converted value or the *Error explaining why the
// conversion failed. Each side can be consumed once; reading the wrong side
// or reading twice is a programming error and panics.
type Result[T any] struct {
	st *resultState[T]
}

type resultState[T any] struct {
	value    T
	err      *Error
	consumed bool
}

// Ok wraps a successful value.
func Ok[T any](v T) Result[T] { return Result[T]{st: &resultState[T]{value: v}} }

// Err wraps a failure. A nil error is a misuse and panics.
func Err[T any](e *Error) Result[T] {
	if e == nil {
		panic("treebind: Err called with nil error")
	}
	return Result[T]{st: &resultState[T]{err: e}}
}

// IsOk reports whether the result holds a value. It does not consume.
func (r Result[T]) IsOk() bool { return r.state().err == nil }

// Get consumes and returns the value.
func (r Result[T]) Get() T {
	st := r.take()
	if st.err != nil {
		panic(fmt.Sprintf("treebind: Get on failed result: %v", st.err))
	}
	return st.value
}

// GetErr consumes and returns the error.
func (r Result[T]) GetErr() *Error {
	st := r.take()
	if st.err == nil {
		panic("treebind: GetErr on successful result")
	}
	return st.err
}

// Unpack consumes the result into Go's usual (value, error) pair.
func (r Result[T]) Unpack() (T, error) {
	st := r.take()
	if st.err != nil {
		var zero T
		return zero, st.err
	}
	return st.value, nil
}

func (r Result[T]) String() string {
	st := r.state()
	if st.err != nil {
		return "Err ( " + st.err.Error() + " )"
	}
	return fmt.Sprintf("Ok ( %v )", st.value)
}

func (r Result[T]) state() *resultState[T] {
	if r.st == nil {
		panic("treebind: use of zero Result")
	}
	return r.st
}

func (r Result[T]) take() *resultState[T] {
	st := r.state()
	if st.consumed {
		panic("treebind: result already consumed")
	}
	st.consumed = true
	return st
}

func fromPair[T any](v T, err error) Result[T] {
	if err != nil {
		return Err[T](AsError(err))
	}
	return Ok(v)
}
