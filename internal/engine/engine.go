package engine

import (
	"errors"
	"io"

	"github.com/reoring/treebind"
)

// Kind represents token kinds from a generic source.
type Kind int

const (
	KindBeginObject Kind = iota
	KindEndObject
	KindBeginArray
	KindEndArray
	KindKey
	KindString
	KindNumber
	KindBool
	KindNull
)

func (k Kind) isValueStart() bool {
	switch k {
	case KindBeginObject, KindBeginArray, KindString, KindNumber, KindBool, KindNull:
		return true
	}
	return false
}

// Token represents a streaming token. Text holds the key, the string value or
// the literal spelling of a number, bool or null.
type Token struct {
	Kind   Kind
	Text   string
	Offset int64
}

// TokenSource is a minimal interface required by the engine. Location
// reports the number of input bytes consumed so far, or -1 when unknown.
type TokenSource interface {
	NextToken() (Token, error)
	Location() int64
}

// Build consumes exactly one value from src and returns it as a tree.
// Primitive tokens become scalars holding their literal text. Anything after
// the first value is rejected.
func Build(src TokenSource) (treebind.Node, error) {
	tok, err := src.NextToken()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, treebind.NewError(treebind.CodeParseError, "empty input")
		}
		return nil, sourceError(err)
	}
	n, err := buildValue(src, tok)
	if err != nil {
		return nil, err
	}
	if _, err := src.NextToken(); !errors.Is(err, io.EOF) {
		if err != nil {
			return nil, sourceError(err)
		}
		return nil, treebind.NewError(treebind.CodeParseError, "unexpected data after top-level value")
	}
	return n, nil
}

func buildValue(src TokenSource, tok Token) (treebind.Node, error) {
	switch tok.Kind {
	case KindBeginObject:
		return buildObject(src)
	case KindBeginArray:
		return buildArray(src)
	case KindString, KindNumber, KindBool, KindNull:
		return treebind.NewScalar(tok.Text), nil
	default:
		return nil, unexpected(tok)
	}
}

func buildObject(src TokenSource) (treebind.Node, error) {
	m := make(map[string]treebind.Node)
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, sourceError(err)
		}
		if tok.Kind == KindEndObject {
			return treebind.NewMapping(m), nil
		}
		if tok.Kind != KindKey {
			return nil, unexpected(tok)
		}
		vt, err := src.NextToken()
		if err != nil {
			return nil, sourceError(err)
		}
		v, err := buildValue(src, vt)
		if err != nil {
			return nil, err
		}
		// last one wins when the source allows duplicates
		m[tok.Text] = v
	}
}

func buildArray(src TokenSource) (treebind.Node, error) {
	var items []treebind.Node
	for {
		tok, err := src.NextToken()
		if err != nil {
			return nil, sourceError(err)
		}
		if tok.Kind == KindEndArray {
			return treebind.NewSequence(items...), nil
		}
		v, err := buildValue(src, tok)
		if err != nil {
			return nil, err
		}
		items = append(items, v)
	}
}

func unexpected(tok Token) *treebind.Error {
	return treebind.NewError(treebind.CodeParseError, "unexpected token "+tok.Kind.String())
}

// sourceError keeps *treebind.Error values from the enforcement layer and
// wraps parser faults.
func sourceError(err error) error {
	var te *treebind.Error
	if errors.As(err, &te) {
		return te
	}
	if errors.Is(err, io.EOF) {
		err = io.ErrUnexpectedEOF
	}
	return &treebind.Error{Code: treebind.CodeParseError, Message: "malformed input: " + err.Error(), Cause: err}
}

func (k Kind) String() string {
	switch k {
	case KindBeginObject:
		return "'{'"
	case KindEndObject:
		return "'}'"
	case KindBeginArray:
		return "'['"
	case KindEndArray:
		return "']'"
	case KindKey:
		return "key"
	case KindString:
		return "string"
	case KindNumber:
		return "number"
	case KindBool:
		return "bool"
	case KindNull:
		return "null"
	}
	return "unknown"
}
