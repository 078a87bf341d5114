package boltrows

import (
	"iter"
	"slices"

	"github.com/longlodw/rowfold/record"
)

// Edge joins one more relation onto the previous level of a Join: rows of
// Relation whose Column equals the previous level's ParentColumn.
type Edge struct {
	Relation     string
	Column       string
	ParentColumn string
}

// Join runs an inner nested-loop join starting from every row of root and
// following edges level by level. Each result row holds one record.Row per
// level, so a parent with n matching children appears in n rows, exactly as
// a SQL join would return it. Root rows come in insertion order; children of
// one parent come in insertion order too.
func (tx *Tx) Join(root string, edges ...Edge) iter.Seq2[[]record.Row, error] {
	return func(yield func([]record.Row, error) bool) {
		rels := make([]*Relation, 0, len(edges)+1)
		rootRel, err := tx.Relation(root)
		if err != nil {
			yield(nil, err)
			return
		}
		rels = append(rels, rootRel)
		for i, edge := range edges {
			rel, err := tx.Relation(edge.Relation)
			if err != nil {
				yield(nil, err)
				return
			}
			if !slices.Contains(rels[i].columns, edge.ParentColumn) {
				yield(nil, ErrColumnNotFound(edge.ParentColumn))
				return
			}
			rels = append(rels, rel)
		}
		join(rels, edges, make([]record.Row, 0, len(rels)), rootRel.Scan(), yield)
	}
}

func join(rels []*Relation, edges []Edge, prefix []record.Row, rows iter.Seq2[record.Row, error], yield func([]record.Row, error) bool) bool {
	depth := len(prefix)
	for row, err := range rows {
		if err != nil {
			yield(nil, err)
			return false
		}
		current := append(slices.Clip(prefix), row)
		if depth+1 == len(rels) {
			if !yield(current, nil) {
				return false
			}
			continue
		}
		edge := edges[depth]
		v, err := row.Get(edge.ParentColumn)
		if err != nil {
			yield(nil, err)
			return false
		}
		if !join(rels, edges, current, rels[depth+1].Lookup(edge.Column, v), yield) {
			return false
		}
	}
	return true
}
