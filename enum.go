package treebind

import "strconv"

// EnumCase is one alternative of a closed tagged enum, built with Unit or
// Payload.
type EnumCase interface {
	Name() string
	HasPayload() bool

	decode(d *Decoder, n Node) error
	selectUnit()
}

type unitCase struct {
	name string
	set  func()
}

func (c unitCase) Name() string                { return c.name }
func (unitCase) HasPayload() bool              { return false }
func (c unitCase) decode(*Decoder, Node) error { return nil }
func (c unitCase) selectUnit()                 { c.set() }

// Unit declares a payload-less alternative; set is called when it matches.
func Unit(name string, set func()) EnumCase { return unitCase{name: name, set: set} }

type payloadCase[T any] struct {
	name string
	set  func(T)
}

func (c payloadCase[T]) Name() string   { return c.name }
func (payloadCase[T]) HasPayload() bool { return true }
func (payloadCase[T]) selectUnit()      {}

func (c payloadCase[T]) decode(d *Decoder, n Node) error {
	v, err := Decode[T](d, n)
	if err != nil {
		return AsError(err).AddField(c.name)
	}
	c.set(v)
	return nil
}

// Payload declares an alternative carrying a T; set receives the decoded
// payload.
func Payload[T any](name string, set func(T)) EnumCase {
	return payloadCase[T]{name: name, set: set}
}

// DecodeEnum matches n against cases. A bare Scalar selects a unit case by
// name; a single-entry Mapping selects a payload case by key and decodes the
// entry value as its payload. Exactly one set func is called on success.
func DecodeEnum(d *Decoder, n Node, cases ...EnumCase) error {
	if d == nil {
		d = NewDecoder()
	}
	switch v := n.(type) {
	case Scalar:
		c := findCase(cases, v.text)
		if c == nil {
			return Errorf(CodeEnumUnknown, map[string]string{"text": v.text})
		}
		if c.HasPayload() {
			return Errorf(CodeEnumPayloadRequired, map[string]string{"name": c.Name()})
		}
		c.selectUnit()
		return nil
	case Mapping:
		if len(v.entries) != 1 {
			return Errorf(CodeEnumArity, map[string]string{"count": strconv.Itoa(len(v.entries))})
		}
		for key, payload := range v.entries {
			c := findCase(cases, key)
			if c == nil {
				return Errorf(CodeEnumUnknown, map[string]string{"text": key})
			}
			if !c.HasPayload() {
				return Errorf(CodeEnumPayloadForbidden, map[string]string{"name": c.Name()})
			}
			return c.decode(d, payload)
		}
	}
	return Errorf(CodeInvalidKind, map[string]string{"want": "scalar or mapping", "got": kindOf(n).String()})
}

func findCase(cases []EnumCase, name string) EnumCase {
	for _, c := range cases {
		if c.Name() == name {
			return c
		}
	}
	return nil
}

// EncodeUnit renders a payload-less alternative as a bare Scalar.
func EncodeUnit(name string) Node { return NewScalar(name) }

// EncodePayload renders a payload alternative as a single-entry Mapping.
func EncodePayload[T any](name string, v T) Node {
	return Mapping{entries: map[string]Node{name: FromValue(v)}}
}
