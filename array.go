package treebind

// DecodeSequence converts every item of a Sequence to E, in order. The first
// failing item aborts the whole conversion with its index prepended to the
// error location.
func DecodeSequence[E any](d *Decoder, n Node) ([]E, error) {
	if d == nil {
		d = NewDecoder()
	}
	s, ok := n.(Sequence)
	if !ok {
		return nil, invalidKind(KindSequence, n)
	}
	out := make([]E, 0, len(s.items))
	for i, it := range s.items {
		v, err := Decode[E](d, it)
		if err != nil {
			return nil, AsError(err).AddIndex(i)
		}
		out = append(out, v)
	}
	return out, nil
}

// EncodeSequence renders items with FromValue.
func EncodeSequence[E any](items []E) Sequence {
	out := make([]Node, 0, len(items))
	for _, it := range items {
		if n := FromValue(it); n != nil {
			out = append(out, n)
		}
	}
	return Sequence{items: out}
}
