package treebind

import "fmt"

// Predicate is one named rule of a constrained type.
type Predicate[T any] struct {
	Description string
	Check       func(T) bool
}

// Check runs preds in order and returns a constraint error for the first one
// that rejects v.
func Check[T any](v T, preds ...Predicate[T]) error {
	for _, p := range preds {
		if p.Check != nil && !p.Check(v) {
			return Errorf(CodeConstraint, map[string]string{"description": p.Description})
		}
	}
	return nil
}

// RuleSet supplies the fixed predicate list of a constrained type. It is
// implemented by an empty marker type so that the rules are part of the
// constrained type itself.
type RuleSet[T any] interface {
	Rules() []Predicate[T]
}

// Constrained holds a T that has passed every rule of R. The only ways to
// change the value are NewConstrained, Set and DecodeNode, and all three
// validate.
type Constrained[T any, R RuleSet[T]] struct {
	v T
}

func rulesOf[T any, R RuleSet[T]]() []Predicate[T] {
	var r R
	return r.Rules()
}

// NewConstrained validates v against R.
func NewConstrained[T any, R RuleSet[T]](v T) (Constrained[T, R], error) {
	if err := Check(v, rulesOf[T, R]()...); err != nil {
		return Constrained[T, R]{}, err
	}
	return Constrained[T, R]{v: v}, nil
}

// MustConstrained is NewConstrained for values known to be valid, such as
// literals and defaults. It panics on violation.
func MustConstrained[T any, R RuleSet[T]](v T) Constrained[T, R] {
	c, err := NewConstrained[T, R](v)
	if err != nil {
		panic(err)
	}
	return c
}

// Get returns the held value.
func (c Constrained[T, R]) Get() T { return c.v }

// Set replaces the held value when v passes every rule; otherwise the prior
// value is kept and the violation returned.
func (c *Constrained[T, R]) Set(v T) error {
	if err := Check(v, rulesOf[T, R]()...); err != nil {
		return err
	}
	c.v = v
	return nil
}

// DecodeNode converts n to T and validates it.
func (c *Constrained[T, R]) DecodeNode(d *Decoder, n Node) error {
	v, err := Decode[T](d, n)
	if err != nil {
		return err
	}
	return c.Set(v)
}

// EncodeNode renders the held value.
func (c Constrained[T, R]) EncodeNode() Node { return FromValue(c.v) }

func (c Constrained[T, R]) String() string { return fmt.Sprint(c.v) }
