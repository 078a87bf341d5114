package rowfold

import "iter"

// Pair is one physical row of a two-table join, already split and bound.
type Pair[A, B any] struct {
	First  A
	Second B
}

// Triple is one physical row of a three-table join.
type Triple[A, B, C any] struct {
	First  A
	Second B
	Third  C
}

func PairOf[A, B any](a A, b B) Pair[A, B] {
	return Pair[A, B]{First: a, Second: b}
}

func TripleOf[A, B, C any](a A, b B, c C) Triple[A, B, C] {
	return Triple[A, B, C]{First: a, Second: b, Third: c}
}

// Rows returns an in-memory tuple stream that yields rows in order and never fails.
func Rows[T any](rows ...T) iter.Seq2[T, error] {
	return func(yield func(T, error) bool) {
		for _, row := range rows {
			if !yield(row, nil) {
				return
			}
		}
	}
}
