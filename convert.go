package treebind

import (
	"reflect"
	"sync"
)

// NodeDecoder is implemented (on the pointer receiver) by types that know how
// to populate themselves from a Node. Generated per-type code implements it.
type NodeDecoder interface {
	DecodeNode(d *Decoder, n Node) error
}

// NodeEncoder is implemented by types that render themselves as a Node.
type NodeEncoder interface {
	EncodeNode() Node
}

// Converter is a registered pair of conversion functions for a type that
// cannot carry NodeDecoder/NodeEncoder methods itself. Either side may be nil.
type Converter[T any] struct {
	Decode func(d *Decoder, n Node) (T, error)
	Encode func(v T) Node
}

var registry = struct {
	sync.RWMutex
	conv map[reflect.Type]any
}{conv: map[reflect.Type]any{}}

// Register installs c as the converter for T, taking precedence over
// methods and the default scalar conversion. Intended for init-time use.
func Register[T any](c Converter[T]) {
	registry.Lock()
	registry.conv[reflect.TypeFor[T]()] = c
	registry.Unlock()
}

// Unregister removes any converter registered for T.
func Unregister[T any]() {
	registry.Lock()
	delete(registry.conv, reflect.TypeFor[T]())
	registry.Unlock()
}

func lookup[T any]() (Converter[T], bool) {
	registry.RLock()
	c, ok := registry.conv[reflect.TypeFor[T]()]
	registry.RUnlock()
	if !ok {
		return Converter[T]{}, false
	}
	return c.(Converter[T]), true
}

// ToValue converts n into a T. It is the top-level tree->typed entry point;
// nested conversions inside NodeDecoder implementations use Decode so the
// Decoder's options and depth carry through.
func ToValue[T any](n Node, opts ...DecodeOpt) Result[T] {
	return fromPair(Decode[T](NewDecoder(opts...), n))
}

// Decode converts n into a T using d. The returned error, when non-nil, is
// always an *Error.
func Decode[T any](d *Decoder, n Node) (T, error) {
	var zero T
	if d == nil {
		d = NewDecoder()
	}
	if n == nil {
		return zero, notImplemented()
	}
	if err := d.enter(); err != nil {
		return zero, err
	}
	defer d.leave()

	if c, ok := lookup[T](); ok && c.Decode != nil {
		v, err := c.Decode(d, n)
		if err != nil {
			return zero, AsError(err)
		}
		return v, nil
	}
	var v T
	switch p := any(&v).(type) {
	case NodeDecoder:
		if err := p.DecodeNode(d, n); err != nil {
			return zero, AsError(err)
		}
		return v, nil
	case *Node:
		*p = n
		return v, nil
	}
	if s, ok := n.(Scalar); ok {
		handled, err := decodeScalar(&v, s.text)
		if handled {
			if err != nil {
				return zero, err
			}
			return v, nil
		}
	}
	return zero, notImplemented()
}

// FromValue converts v into a Node. Types without a converter or
// NodeEncoder fall back to the default scalar rendering.
func FromValue[T any](v T) Node {
	if c, ok := lookup[T](); ok && c.Encode != nil {
		return c.Encode(v)
	}
	if e, ok := any(v).(NodeEncoder); ok {
		return e.EncodeNode()
	}
	if e, ok := any(&v).(NodeEncoder); ok {
		return e.EncodeNode()
	}
	if n, ok := any(v).(Node); ok {
		return n
	}
	return encodeScalar(v)
}
