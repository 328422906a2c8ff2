package constraint

import (
	"fmt"
	"strings"

	"github.com/reoring/treebind"
)

// All holds when every pred holds. Its description joins the parts with &&.
func All[T any](preds ...treebind.Predicate[T]) treebind.Predicate[T] {
	return treebind.Predicate[T]{
		Description: join(preds, " && "),
		Check: func(x T) bool {
			for _, p := range preds {
				if p.Check != nil && !p.Check(x) {
					return false
				}
			}
			return true
		},
	}
}

// Any holds when at least one pred holds. Any with no predicates never
// holds.
func Any[T any](preds ...treebind.Predicate[T]) treebind.Predicate[T] {
	return treebind.Predicate[T]{
		Description: join(preds, " || "),
		Check: func(x T) bool {
			for _, p := range preds {
				if p.Check != nil && p.Check(x) {
					return true
				}
			}
			return false
		},
	}
}

// Not negates p.
func Not[T any](p treebind.Predicate[T]) treebind.Predicate[T] {
	return treebind.Predicate[T]{
		Description: "!(" + p.Description + ")",
		Check:       func(x T) bool { return p.Check == nil || !p.Check(x) },
	}
}

func join[T any](preds []treebind.Predicate[T], sep string) string {
	parts := make([]string, 0, len(preds))
	for _, p := range preds {
		parts = append(parts, "("+p.Description+")")
	}
	return strings.Join(parts, sep)
}

// AtLeastOne requires a non-empty collection.
func AtLeastOne[E any]() treebind.Predicate[[]E] {
	return treebind.Predicate[[]E]{
		Description: "len(x) >= 1",
		Check:       func(x []E) bool { return len(x) > 0 },
	}
}

// UniqueBy requires the key of every element to be distinct. name describes
// the key in the predicate description.
func UniqueBy[E any, K comparable](name string, key func(E) K) treebind.Predicate[[]E] {
	return treebind.Predicate[[]E]{
		Description: fmt.Sprintf("unique %s", name),
		Check: func(x []E) bool {
			seen := make(map[K]struct{}, len(x))
			for _, e := range x {
				k := key(e)
				if _, dup := seen[k]; dup {
					return false
				}
				seen[k] = struct{}{}
			}
			return true
		},
	}
}
