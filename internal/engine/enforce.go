package engine

import (
	"strconv"

	"github.com/reoring/treebind"
)

// Enforcement wrapper for TokenSource to apply duplicate key handling,
// max depth checks, and max bytes limits in a streaming fashion.

// EnforceOptions controls runtime enforcement behavior.
type EnforceOptions struct {
	// AllowDuplicateKeys keeps the last value of a repeated object key
	// instead of failing.
	AllowDuplicateKeys bool
	// MaxDepth limits container nesting; 0 or less disables the check.
	MaxDepth int
	// MaxBytes limits consumed input; 0 or less disables the check.
	MaxBytes int64
}

type containerKind int

const (
	kindObject containerKind = iota
	kindArray
)

type frame struct {
	kind         containerKind
	keys         map[string]struct{}
	expectingKey bool
	key          string
	// number of values started in an array
	count int
}

// WrapWithEnforcement returns a TokenSource that enforces duplicate key policy,
// maximum nesting depth, and maximum consumed bytes. Violations are reported
// as *treebind.Error with the location of the offending value.
func WrapWithEnforcement(inner TokenSource, opt EnforceOptions) TokenSource {
	return &enforcingTokenSource{inner: inner, opt: opt}
}

type enforcingTokenSource struct {
	inner TokenSource
	opt   EnforceOptions
	stack []frame
}

func (e *enforcingTokenSource) NextToken() (Token, error) {
	tok, err := e.inner.NextToken()
	if err != nil {
		return Token{}, err
	}

	if tok.Kind.isValueStart() {
		if n := len(e.stack); n > 0 && e.stack[n-1].kind == kindArray {
			e.stack[n-1].count++
		}
	}

	switch tok.Kind {
	case KindBeginObject, KindBeginArray:
		if e.opt.MaxDepth > 0 && len(e.stack)+1 > e.opt.MaxDepth {
			return Token{}, e.fail(treebind.Errorf(treebind.CodeMaxDepth, map[string]string{"max": strconv.Itoa(e.opt.MaxDepth)}))
		}
		f := frame{kind: kindArray}
		if tok.Kind == KindBeginObject {
			f = frame{kind: kindObject, keys: make(map[string]struct{}), expectingKey: true}
		}
		e.stack = append(e.stack, f)
	case KindEndObject, KindEndArray:
		if n := len(e.stack); n > 0 {
			e.stack = e.stack[:n-1]
		}
		e.valueDone()
	case KindKey:
		if n := len(e.stack); n > 0 {
			top := &e.stack[n-1]
			if top.kind == kindObject && top.expectingKey {
				top.key = tok.Text
				top.expectingKey = false
				if _, dup := top.keys[tok.Text]; dup && !e.opt.AllowDuplicateKeys {
					return Token{}, e.fail(treebind.Errorf(treebind.CodeDuplicateKey, map[string]string{"key": tok.Text}))
				}
				top.keys[tok.Text] = struct{}{}
			}
		}
	case KindString, KindNumber, KindBool, KindNull:
		e.valueDone()
	}

	if e.opt.MaxBytes > 0 {
		if off := e.Location(); off >= 0 && off > e.opt.MaxBytes {
			return Token{}, e.fail(treebind.NewError(treebind.CodeParseError,
				"input exceeds "+strconv.FormatInt(e.opt.MaxBytes, 10)+" bytes"))
		}
	}

	return tok, nil
}

func (e *enforcingTokenSource) valueDone() {
	if n := len(e.stack); n > 0 {
		top := &e.stack[n-1]
		if top.kind == kindObject && !top.expectingKey {
			top.expectingKey = true
		}
	}
}

// fail attaches the current location to err.
func (e *enforcingTokenSource) fail(err *treebind.Error) *treebind.Error {
	for i := len(e.stack) - 1; i >= 0; i-- {
		f := e.stack[i]
		switch {
		case f.kind == kindArray && f.count > 0:
			err.AddIndex(f.count - 1)
		case f.kind == kindObject && !f.expectingKey:
			err.AddField(f.key)
		}
	}
	return err
}

func (e *enforcingTokenSource) Location() int64 { return e.inner.Location() }
