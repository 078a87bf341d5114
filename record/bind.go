package record

import (
	"bytes"
	"iter"

	"github.com/longlodw/rowfold"
	"github.com/vmihailenco/msgpack/v5"
)

// Mapper binds one entity from its segment of a row.
type Mapper[T any] func(Row) (T, error)

// Struct returns a Mapper that decodes a segment into a new T. Columns bind
// to fields by `msgpack` tag, then `db` tag, then field name. A segment whose
// values are all NULL, as produced by an outer join with no match, binds to nil.
func Struct[T any]() Mapper[*T] {
	return func(row Row) (*T, error) {
		values, err := row.ToMap()
		if err != nil {
			return nil, err
		}
		if allNil(values) {
			return nil, nil
		}
		var buf bytes.Buffer
		if err := msgpack.NewEncoder(&buf).Encode(values); err != nil {
			return nil, err
		}
		dec := msgpack.NewDecoder(&buf)
		dec.SetCustomStructTag("db")
		out := new(T)
		if err := dec.Decode(out); err != nil {
			return nil, err
		}
		return out, nil
	}
}

// Map returns a Mapper that copies a segment into a map keyed by column name.
func Map() Mapper[map[string]any] {
	return func(row Row) (map[string]any, error) {
		return row.ToMap()
	}
}

func allNil(values map[string]any) bool {
	if len(values) == 0 {
		return false
	}
	for _, v := range values {
		if v != nil {
			return false
		}
	}
	return true
}

// Pairs binds each two-segment row of a joined stream into a rowfold.Pair.
// The stream ends at the first error, whether it comes from upstream or from a mapper.
func Pairs[A, B any](rows iter.Seq2[[]Row, error], first Mapper[A], second Mapper[B]) iter.Seq2[rowfold.Pair[A, B], error] {
	return func(yield func(rowfold.Pair[A, B], error) bool) {
		var zero rowfold.Pair[A, B]
		for segments, err := range rows {
			if err != nil {
				yield(zero, err)
				return
			}
			if len(segments) != 2 {
				yield(zero, ErrArityMismatch(2, len(segments)))
				return
			}
			a, err := first(segments[0])
			if err != nil {
				yield(zero, err)
				return
			}
			b, err := second(segments[1])
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(rowfold.PairOf(a, b), nil) {
				return
			}
		}
	}
}

// Triples binds each three-segment row of a joined stream into a rowfold.Triple.
func Triples[A, B, C any](rows iter.Seq2[[]Row, error], first Mapper[A], second Mapper[B], third Mapper[C]) iter.Seq2[rowfold.Triple[A, B, C], error] {
	return func(yield func(rowfold.Triple[A, B, C], error) bool) {
		var zero rowfold.Triple[A, B, C]
		for segments, err := range rows {
			if err != nil {
				yield(zero, err)
				return
			}
			if len(segments) != 3 {
				yield(zero, ErrArityMismatch(3, len(segments)))
				return
			}
			a, err := first(segments[0])
			if err != nil {
				yield(zero, err)
				return
			}
			b, err := second(segments[1])
			if err != nil {
				yield(zero, err)
				return
			}
			c, err := third(segments[2])
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(rowfold.TripleOf(a, b, c), nil) {
				return
			}
		}
	}
}
