package treebind

import (
	"reflect"

	"go.uber.org/zap"
)

// Alt is one candidate type of an open variant, built with Alternative.
type Alt interface {
	TypeName() string
	try(d *Decoder, n Node) error
}

type alt[T any] struct {
	set func(T)
}

func (alt[T]) TypeName() string { return reflect.TypeFor[T]().String() }

func (a alt[T]) try(d *Decoder, n Node) error {
	v, err := Decode[T](d, n)
	if err != nil {
		return err
	}
	a.set(v)
	return nil
}

// Alternative declares a candidate type for DecodeVariant.
func Alternative[T any](set func(T)) Alt { return alt[T]{set: set} }

// DecodeVariant tries each alternative in order and keeps the first that
// converts. When none does, the returned error lists every attempt.
func DecodeVariant(d *Decoder, n Node, alts ...Alt) error {
	if d == nil {
		d = NewDecoder()
	}
	names := make([]string, 0, len(alts))
	attempts := make([]*Error, 0, len(alts))
	for _, a := range alts {
		err := a.try(d, n)
		if err == nil {
			return nil
		}
		names = append(names, a.TypeName())
		attempts = append(attempts, AsError(err))
	}
	e := variantExhausted(names, attempts)
	Logger().Debug("variant exhausted", zap.Strings("candidates", names), zap.Error(e))
	return e
}
