package session

import (
	"iter"
	"math/rand/v2"
)

// shuffled yields the items in a random order, drawing each position only
// when the consumer asks for it. items is not modified.
func shuffled[T any](r *rand.Rand, items []T) iter.Seq[T] {
	return func(yield func(T) bool) {
		s := make([]T, len(items))
		copy(s, items)
		for i := range s {
			j := i + r.IntN(len(s)-i)
			s[i], s[j] = s[j], s[i]
			if !yield(s[i]) {
				return
			}
		}
	}
}
