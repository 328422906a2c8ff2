package treebind

import (
	"strings"
)

// FieldSpec declares one struct field for BindStruct. Build it with
// Required, Default or Optional.
type FieldSpec interface {
	Name() string
	IsRequired() bool

	// decode converts the present value and returns a commit func that
	// writes the destination; nothing is written until every field succeeded.
	decode(d *Decoder, n Node) (commit func(), err error)
	// absent returns the commit func used when the field is missing.
	absent() func()
}

type fieldSpec[T any] struct {
	name     string
	required bool
	dst      *T
	def      T
}

func (f *fieldSpec[T]) Name() string     { return f.name }
func (f *fieldSpec[T]) IsRequired() bool { return f.required }

func (f *fieldSpec[T]) decode(d *Decoder, n Node) (func(), error) {
	v, err := Decode[T](d, n)
	if err != nil {
		return nil, err
	}
	return func() { *f.dst = v }, nil
}

func (f *fieldSpec[T]) absent() func() {
	def := f.def
	return func() { *f.dst = def }
}

// Required declares a field that must be present.
func Required[T any](name string, dst *T) FieldSpec {
	return &fieldSpec[T]{name: name, required: true, dst: dst}
}

// Default declares a field that takes def when absent.
func Default[T any](name string, dst *T, def T) FieldSpec {
	return &fieldSpec[T]{name: name, dst: dst, def: def}
}

type optionalSpec[T any] struct {
	name string
	dst  **T
}

func (f *optionalSpec[T]) Name() string     { return f.name }
func (f *optionalSpec[T]) IsRequired() bool { return false }

func (f *optionalSpec[T]) decode(d *Decoder, n Node) (func(), error) {
	v, err := Decode[T](d, n)
	if err != nil {
		return nil, err
	}
	return func() { *f.dst = &v }, nil
}

func (f *optionalSpec[T]) absent() func() { return func() { *f.dst = nil } }

// Optional declares a nullable field: *dst is set to nil when absent.
func Optional[T any](name string, dst **T) FieldSpec {
	return &optionalSpec[T]{name: name, dst: dst}
}

// BindStruct binds the entries of a Mapping to the declared fields, in
// order. Entries no field consumes are returned as the extra-field Mapping,
// or rejected with unknown_fields when d is strict. Destinations are only
// written when the whole binding succeeds.
func BindStruct(d *Decoder, n Node, fields ...FieldSpec) (Mapping, error) {
	if d == nil {
		d = NewDecoder()
	}
	m, ok := n.(Mapping)
	if !ok {
		return Mapping{}, invalidKind(KindMapping, n)
	}
	remaining := m.Entries()
	commits := make([]func(), 0, len(fields))
	for _, f := range fields {
		name := f.Name()
		v, present := remaining[name]
		if !present {
			if f.IsRequired() {
				return Mapping{}, Errorf(CodeMissingField, map[string]string{"name": name}).AddField(name)
			}
			commits = append(commits, f.absent())
			continue
		}
		commit, err := f.decode(d, v)
		if err != nil {
			return Mapping{}, AsError(err).AddField(name)
		}
		commits = append(commits, commit)
		delete(remaining, name)
	}
	extra := Mapping{entries: remaining}
	if d.IsStrict() && extra.Len() > 0 {
		return Mapping{}, Errorf(CodeUnknownFields, map[string]string{"names": strings.Join(extra.Keys(), ", ")})
	}
	for _, c := range commits {
		c()
	}
	return extra, nil
}

// EncodedField is one declared field rendered for EncodeStruct.
type EncodedField struct {
	name  string
	value Node
}

// Field renders a field value with FromValue.
func Field[T any](name string, v T) EncodedField {
	return EncodedField{name: name, value: FromValue(v)}
}

// OptionalField renders a nullable field; nil pointers are omitted.
func OptionalField[T any](name string, v *T) EncodedField {
	if v == nil {
		return EncodedField{name: name}
	}
	return EncodedField{name: name, value: FromValue(*v)}
}

// EncodeStruct builds the Mapping for a struct: the extra fields first, then
// the declared fields, which win on name clashes.
func EncodeStruct(extra Mapping, fields ...EncodedField) Mapping {
	out := make(map[string]Node, extra.Len()+len(fields))
	for k, v := range extra.entries {
		out[k] = v
	}
	for _, f := range fields {
		if f.value == nil {
			continue
		}
		out[f.name] = f.value
	}
	return Mapping{entries: out}
}
