package treebind

import (
	"maps"
	"slices"
	"strconv"
	"strings"
)

// Kind identifies which of the three node shapes a Node is.
type Kind int

const (
	KindScalar Kind = iota
	KindMapping
	KindSequence
)

func (k Kind) String() string {
	switch k {
	case KindScalar:
		return "scalar"
	case KindMapping:
		return "mapping"
	case KindSequence:
		return "sequence"
	default:
		return "unknown"
	}
}

// Node is the format-agnostic parsed document value. It is a closed set:
// only Scalar, Mapping and Sequence implement it. Nodes are immutable once
// built and may be shared between goroutines.
type Node interface {
	Kind() Kind
	// Equal reports deep, kind-sensitive equality.
	Equal(o Node) bool
	String() string

	sealed()
}

var (
	_ Node = Scalar{}
	_ Node = Mapping{}
	_ Node = Sequence{}
)

// Scalar is a leaf holding whitespace-trimmed text.
type Scalar struct {
	text string
}

// NewScalar trims text and wraps it as a Scalar.
func NewScalar(text string) Scalar { return Scalar{text: strings.TrimSpace(text)} }

// Text returns the trimmed payload.
func (s Scalar) Text() string { return s.text }

func (Scalar) Kind() Kind { return KindScalar }
func (Scalar) sealed()    {}

func (s Scalar) Equal(o Node) bool {
	os, ok := o.(Scalar)
	return ok && os.text == s.text
}

func (s Scalar) String() string { return strconv.Quote(s.text) }

// Mapping is a unique-keyed, unordered collection of named nodes.
type Mapping struct {
	entries map[string]Node
}

// NewMapping copies entries into a new Mapping. Nil values are dropped.
func NewMapping(entries map[string]Node) Mapping {
	m := make(map[string]Node, len(entries))
	for k, v := range entries {
		if v == nil {
			continue
		}
		m[k] = v
	}
	return Mapping{entries: m}
}

// Get looks up a child by name.
func (m Mapping) Get(name string) (Node, bool) {
	v, ok := m.entries[name]
	return v, ok
}

// Len returns the number of entries.
func (m Mapping) Len() int { return len(m.entries) }

// Keys returns the entry names in ascending order.
func (m Mapping) Keys() []string {
	return slices.Sorted(maps.Keys(m.entries))
}

// Entries returns a copy of the entries.
func (m Mapping) Entries() map[string]Node { return maps.Clone(m.entries) }

// Range calls fn for each entry in key order until fn returns false.
func (m Mapping) Range(fn func(name string, v Node) bool) {
	for _, k := range m.Keys() {
		if !fn(k, m.entries[k]) {
			return
		}
	}
}

func (Mapping) Kind() Kind { return KindMapping }
func (Mapping) sealed()    {}

func (m Mapping) Equal(o Node) bool {
	om, ok := o.(Mapping)
	if !ok || len(om.entries) != len(m.entries) {
		return false
	}
	for k, v := range m.entries {
		ov, ok := om.entries[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

func (m Mapping) String() string {
	b := &strings.Builder{}
	b.WriteString("{ ")
	for i, k := range m.Keys() {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(strconv.Quote(k))
		b.WriteString(": ")
		b.WriteString(m.entries[k].String())
	}
	b.WriteString(" }")
	return b.String()
}

// Sequence is an ordered collection of nodes.
type Sequence struct {
	items []Node
}

// NewSequence copies items into a new Sequence. Nil items are dropped.
func NewSequence(items ...Node) Sequence {
	s := make([]Node, 0, len(items))
	for _, it := range items {
		if it == nil {
			continue
		}
		s = append(s, it)
	}
	return Sequence{items: s}
}

// At returns the i-th item; it panics when i is out of range, like a slice.
func (s Sequence) At(i int) Node { return s.items[i] }

// Len returns the number of items.
func (s Sequence) Len() int { return len(s.items) }

// Items returns a copy of the items.
func (s Sequence) Items() []Node { return slices.Clone(s.items) }

func (Sequence) Kind() Kind { return KindSequence }
func (Sequence) sealed()    {}

func (s Sequence) Equal(o Node) bool {
	os, ok := o.(Sequence)
	if !ok {
		return false
	}
	return slices.EqualFunc(s.items, os.items, func(a, b Node) bool { return a.Equal(b) })
}

func (s Sequence) String() string {
	b := &strings.Builder{}
	b.WriteString("[ ")
	for i, it := range s.items {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(it.String())
	}
	b.WriteString(" ]")
	return b.String()
}

// Equal compares two possibly-nil nodes.
func Equal(a, b Node) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}

func kindOf(n Node) Kind {
	if n == nil {
		return Kind(-1)
	}
	return n.Kind()
}
