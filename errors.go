package treebind

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/reoring/treebind/i18n"
)

// Error codes (exported consts for IDE completion and type safety by convention)
const (
	// Structural
	CodeNotImplemented       = "not_implemented"
	CodeInvalidKind          = "invalid_kind"
	CodeMissingField         = "missing_field"
	CodeUnknownFields        = "unknown_fields"
	CodeEnumPayloadRequired  = "enum_payload_required"
	CodeEnumPayloadForbidden = "enum_payload_forbidden"
	CodeEnumUnknown          = "enum_unknown"
	CodeEnumArity            = "enum_arity"
	CodeMaxDepth             = "max_depth"
	CodeDuplicateKey         = "duplicate_key"
	// Validation
	CodeConstraint = "constraint"
	// Textual parse
	CodeParseError       = "parse_error"
	CodeUnusedCharacters = "unused_characters"
	// Aggregation
	CodeVariantExhausted = "variant_exhausted"
	// Adapters (file/string wrappers)
	CodeIO = "io_error"
)

// Segment is one structural step of an error location: either a field name
// or a sequence index.
type Segment struct {
	Field   string
	Index   int
	IsIndex bool
}

// Path is an error location, outermost segment first.
type Path []Segment

// String renders the path as dotted fields with bracketed indices, for
// example "sizes[1].h".
func (p Path) String() string {
	if len(p) == 0 {
		return ""
	}
	b := &strings.Builder{}
	for i, s := range p {
		if s.IsIndex {
			b.WriteByte('[')
			b.WriteString(strconv.Itoa(s.Index))
			b.WriteByte(']')
			continue
		}
		if i > 0 {
			b.WriteByte('.')
		}
		b.WriteString(s.Field)
	}
	return b.String()
}

// Error is the single failure type of the conversion protocol: a message
// plus the location in the tree where it happened.
type Error struct {
	Code    string
	Message string
	Path    Path
	// Cause is an optional underlying error (parser faults, I/O).
	Cause error
	// Attempts holds the per-candidate failures of an exhausted variant, in
	// attempt order.
	Attempts []*Error
}

// NewError builds an Error with an explicit message and no location.
func NewError(code, msg string) *Error {
	return &Error{Code: code, Message: msg}
}

// Errorf builds an Error whose message is produced by the i18n catalog for
// code, with data substituted.
func Errorf(code string, data map[string]string) *Error {
	return &Error{Code: code, Message: i18n.T(code, data)}
}

// Location renders the error path; empty when the error occurred at the
// root.
func (e *Error) Location() string { return e.Path.String() }

// AddField prepends a field segment so that the current location becomes a
// child of name. It returns e for chaining.
func (e *Error) AddField(name string) *Error {
	e.Path = append(Path{{Field: name}}, e.Path...)
	return e
}

// AddIndex prepends a sequence index segment. It returns e for chaining.
func (e *Error) AddIndex(i int) *Error {
	e.Path = append(Path{{Index: i, IsIndex: true}}, e.Path...)
	return e
}

func (e *Error) Error() string {
	loc := e.Location()
	if loc == "" {
		return e.Message
	}
	return loc + ": " + e.Message
}

func (e *Error) Unwrap() error { return e.Cause }

// Equal reports whether two errors carry the same code, message and
// location.
func (e *Error) Equal(o *Error) bool {
	if e == nil || o == nil {
		return e == o
	}
	return e.Code == o.Code && e.Message == o.Message && e.Location() == o.Location()
}

// AsError extracts an *Error from err. Foreign errors are wrapped as
// parse_error with err as the cause; nil stays nil.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return te
	}
	return &Error{Code: CodeParseError, Message: err.Error(), Cause: err}
}

func invalidKind(want Kind, got Node) *Error {
	return Errorf(CodeInvalidKind, map[string]string{"want": want.String(), "got": kindOf(got).String()})
}

func notImplemented() *Error {
	return Errorf(CodeNotImplemented, nil)
}

func variantExhausted(names []string, attempts []*Error) *Error {
	b := &strings.Builder{}
	for i := range attempts {
		if i > 0 {
			b.WriteString(", ")
		}
		fmt.Fprintf(b, "%s { %s }", names[i], attempts[i].Error())
	}
	e := Errorf(CodeVariantExhausted, map[string]string{"attempts": b.String()})
	e.Attempts = attempts
	return e
}
