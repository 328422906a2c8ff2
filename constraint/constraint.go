// Package constraint provides reusable predicates for constrained values.
//
// Predicates can be built from Go functions (Min, Max, Even, Match, ...) or
// from a source expression over the variable x, compiled once with
// expr-lang/expr:
//
//	var positive = constraint.MustExpr[float64]("x > 0.0")
package constraint

import (
	"cmp"
	"fmt"
	"regexp"
	"unicode/utf8"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/reoring/treebind"
	"go.uber.org/zap"
)

// Expr compiles src into a predicate. The expression sees the checked value
// as x and must evaluate to a boolean. The description of the predicate is
// src itself.
func Expr[T any](src string) (treebind.Predicate[T], error) {
	var zero T
	program, err := expr.Compile(src, expr.Env(map[string]any{"x": zero}), expr.AsBool())
	if err != nil {
		return treebind.Predicate[T]{}, fmt.Errorf("compile constraint %q: %w", src, err)
	}
	return treebind.Predicate[T]{Description: src, Check: runner[T](src, program)}, nil
}

// MustExpr is Expr for package-level rule tables; it panics when src does
// not compile.
func MustExpr[T any](src string) treebind.Predicate[T] {
	p, err := Expr[T](src)
	if err != nil {
		panic(err)
	}
	return p
}

func runner[T any](src string, program *vm.Program) func(T) bool {
	return func(v T) bool {
		out, err := expr.Run(program, map[string]any{"x": v})
		if err != nil {
			// a runtime fault counts as a rejection
			treebind.Logger().Debug("constraint evaluation failed", zap.String("expr", src), zap.Error(err))
			return false
		}
		ok, _ := out.(bool)
		return ok
	}
}

// Min requires x >= lo.
func Min[T cmp.Ordered](lo T) treebind.Predicate[T] {
	return treebind.Predicate[T]{
		Description: fmt.Sprintf("x >= %v", lo),
		Check:       func(x T) bool { return x >= lo },
	}
}

// Max requires x <= hi.
func Max[T cmp.Ordered](hi T) treebind.Predicate[T] {
	return treebind.Predicate[T]{
		Description: fmt.Sprintf("x <= %v", hi),
		Check:       func(x T) bool { return x <= hi },
	}
}

// Range requires lo <= x <= hi.
func Range[T cmp.Ordered](lo, hi T) treebind.Predicate[T] {
	return treebind.Predicate[T]{
		Description: fmt.Sprintf("%v <= x <= %v", lo, hi),
		Check:       func(x T) bool { return lo <= x && x <= hi },
	}
}

// Integer matches the built-in integer types and named types over them.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Even requires x to be divisible by two.
func Even[T Integer]() treebind.Predicate[T] {
	return treebind.Predicate[T]{
		Description: "x % 2 == 0",
		Check:       func(x T) bool { return x%2 == 0 },
	}
}

// NonEmpty rejects the empty string.
func NonEmpty() treebind.Predicate[string] {
	return treebind.Predicate[string]{
		Description: "len(x) > 0",
		Check:       func(x string) bool { return x != "" },
	}
}

// MinLen requires at least n characters (runes).
func MinLen(n int) treebind.Predicate[string] {
	return treebind.Predicate[string]{
		Description: fmt.Sprintf("len(x) >= %d", n),
		Check:       func(x string) bool { return utf8.RuneCountInString(x) >= n },
	}
}

// MaxLen allows at most n characters (runes).
func MaxLen(n int) treebind.Predicate[string] {
	return treebind.Predicate[string]{
		Description: fmt.Sprintf("len(x) <= %d", n),
		Check:       func(x string) bool { return utf8.RuneCountInString(x) <= n },
	}
}

// Match requires x to match the regular expression pattern. It panics when
// pattern is invalid, like regexp.MustCompile.
func Match(pattern string) treebind.Predicate[string] {
	re := regexp.MustCompile(pattern)
	return treebind.Predicate[string]{
		Description: "x matches " + pattern,
		Check:       re.MatchString,
	}
}
