// Package rowfold folds the flat row stream of a relational join back into
// deduplicated parent entities that own their child collections.
//
// A join of a parent table with a child table returns one row per
// (parent, child) pair, repeating the parent's columns on every row. The
// functions in this package consume such a stream, already split and bound
// into entity tuples by a producer (see the sqlrows and boltrows packages),
// and group it by caller-supplied keys. Groups come out in the order their
// key was first seen. The first parent instance seen for a key is the
// representative; later instances with the same key are discarded even when
// their other fields differ.
//
// Key functions must be pure: rows whose keys compare equal are the same
// logical entity. This is not checked.
//
// Errors yielded by the stream are returned unmodified and everything
// accumulated so far is dropped.
package rowfold

import "iter"

// OneToMany groups child rows under their parent. add is called with the
// representative parent for every row, including the first one for a key.
// Parents are typically pointers so that add can mutate them.
func OneToMany[P, C any, K comparable](
	rows iter.Seq2[Pair[P, C], error],
	key func(P) K,
	add func(P, C),
) ([]P, error) {
	parents := newTable[K, P]()
	for row, err := range rows {
		if err != nil {
			return nil, err
		}
		parent, _ := parents.resolve(key(row.First), row.First)
		add(parent, row.Second)
	}
	return parents.ordered(), nil
}

type group[P, C any] struct {
	parent   P
	children []C
}

type pairGroup[P, S, C any] struct {
	parent    P
	secondary S
	children  []C
}

// OneToManySelect groups child rows under their parent and projects each
// group once the stream is exhausted. sel sees the complete child slice of
// its key exactly once.
func OneToManySelect[P, C any, K comparable, R any](
	rows iter.Seq2[Pair[P, C], error],
	key func(P) K,
	sel func(P, []C) R,
) ([]R, error) {
	groups := newTable[K, *group[P, C]]()
	for row, err := range rows {
		if err != nil {
			return nil, err
		}
		k := key(row.First)
		g, ok := groups.get(k)
		if !ok {
			g = &group[P, C]{parent: row.First}
			groups.put(k, g)
		}
		g.children = append(g.children, row.Second)
	}
	out := make([]R, 0, groups.len())
	for _, g := range groups.all() {
		out = append(out, sel(g.parent, g.children))
	}
	return out, nil
}

// OneToManySelectPair is OneToManySelect for rows that carry two correlated
// parent-level values. Both the key and the projection see the pair that was
// first seen for the key.
func OneToManySelectPair[P, S, C any, K comparable, R any](
	rows iter.Seq2[Triple[P, S, C], error],
	key func(P, S) K,
	sel func(P, S, []C) R,
) ([]R, error) {
	groups := newTable[K, *pairGroup[P, S, C]]()
	for row, err := range rows {
		if err != nil {
			return nil, err
		}
		k := key(row.First, row.Second)
		g, ok := groups.get(k)
		if !ok {
			g = &pairGroup[P, S, C]{parent: row.First, secondary: row.Second}
			groups.put(k, g)
		}
		g.children = append(g.children, row.Third)
	}
	out := make([]R, 0, groups.len())
	for _, g := range groups.all() {
		out = append(out, sel(g.parent, g.secondary, g.children))
	}
	return out, nil
}

// OneToManyFirstOrDefault keeps the first parent of the stream and adds the
// child of every row to it. It is meant for queries constrained to a single
// parent; children of any other parent in the stream are merged into the
// first one. ok is false when the stream is empty.
func OneToManyFirstOrDefault[P, C any](
	rows iter.Seq2[Pair[P, C], error],
	add func(P, C),
) (parent P, ok bool, err error) {
	for row, rowErr := range rows {
		if rowErr != nil {
			var zero P
			return zero, false, rowErr
		}
		if !ok {
			parent = row.First
			ok = true
		}
		add(parent, row.Second)
	}
	return parent, ok, nil
}

// OneToOneSeq attaches the child of each row to the parent of the same row
// and yields that parent. Nothing is deduplicated: a parent repeated by the
// join is yielded once per row.
func OneToOneSeq[P, C any](
	rows iter.Seq2[Pair[P, C], error],
	add func(P, C),
) iter.Seq2[P, error] {
	return func(yield func(P, error) bool) {
		for row, err := range rows {
			if err != nil {
				var zero P
				yield(zero, err)
				return
			}
			add(row.First, row.Second)
			if !yield(row.First, nil) {
				return
			}
		}
	}
}

// OneToOne collects OneToOneSeq.
func OneToOne[P, C any](
	rows iter.Seq2[Pair[P, C], error],
	add func(P, C),
) ([]P, error) {
	out := make([]P, 0)
	for parent, err := range OneToOneSeq(rows, add) {
		if err != nil {
			return nil, err
		}
		out = append(out, parent)
	}
	return out, nil
}
