package sqlrows

import (
	"context"
	"iter"

	sq "github.com/Masterminds/squirrel"

	"github.com/longlodw/rowfold"
	"github.com/longlodw/rowfold/record"
)

// Query2 runs a two-entity join and binds each row into a Pair.
func Query2[A, B any](ctx context.Context, r *Reader, stmt sq.Sqlizer, first record.Mapper[A], second record.Mapper[B]) iter.Seq2[rowfold.Pair[A, B], error] {
	return record.Pairs(r.Rows(ctx, stmt, 2), first, second)
}

// Query3 runs a three-entity join and binds each row into a Triple.
func Query3[A, B, C any](ctx context.Context, r *Reader, stmt sq.Sqlizer, first record.Mapper[A], second record.Mapper[B], third record.Mapper[C]) iter.Seq2[rowfold.Triple[A, B, C], error] {
	return record.Triples(r.Rows(ctx, stmt, 3), first, second, third)
}

// OneToMany runs stmt and folds it with rowfold.OneToMany.
func OneToMany[P, C any, K comparable](
	ctx context.Context, r *Reader, stmt sq.Sqlizer,
	parent record.Mapper[P], child record.Mapper[C],
	key func(P) K, add func(P, C),
) ([]P, error) {
	return rowfold.OneToMany(Query2(ctx, r, stmt, parent, child), key, add)
}

// OneToManySelect runs stmt and folds it with rowfold.OneToManySelect.
func OneToManySelect[P, C any, K comparable, R any](
	ctx context.Context, r *Reader, stmt sq.Sqlizer,
	parent record.Mapper[P], child record.Mapper[C],
	key func(P) K, sel func(P, []C) R,
) ([]R, error) {
	return rowfold.OneToManySelect(Query2(ctx, r, stmt, parent, child), key, sel)
}

// OneToManySelectPair runs stmt and folds it with rowfold.OneToManySelectPair.
func OneToManySelectPair[P, S, C any, K comparable, R any](
	ctx context.Context, r *Reader, stmt sq.Sqlizer,
	parent record.Mapper[P], secondary record.Mapper[S], child record.Mapper[C],
	key func(P, S) K, sel func(P, S, []C) R,
) ([]R, error) {
	return rowfold.OneToManySelectPair(Query3(ctx, r, stmt, parent, secondary, child), key, sel)
}

// OneToManyFirstOrDefault runs stmt and folds it with rowfold.OneToManyFirstOrDefault.
// The query should be constrained to a single parent.
func OneToManyFirstOrDefault[P, C any](
	ctx context.Context, r *Reader, stmt sq.Sqlizer,
	parent record.Mapper[P], child record.Mapper[C],
	add func(P, C),
) (P, bool, error) {
	return rowfold.OneToManyFirstOrDefault(Query2(ctx, r, stmt, parent, child), add)
}

// QueryOneToOne runs stmt and attaches the child of every row to that row's
// parent. Parents repeated by the join are returned once per row.
func QueryOneToOne[P, C any](
	ctx context.Context, r *Reader, stmt sq.Sqlizer,
	parent record.Mapper[P], child record.Mapper[C],
	add func(P, C),
) ([]P, error) {
	return rowfold.OneToOne(Query2(ctx, r, stmt, parent, child), add)
}

// QueryOneToManyNested runs a three-level join and folds it with rowfold.OneToManyNested.
func QueryOneToManyNested[L1, L2, L3 any, K1, K2 comparable](
	ctx context.Context, r *Reader, stmt sq.Sqlizer,
	level1 record.Mapper[L1], level2 record.Mapper[L2], level3 record.Mapper[L3],
	addLevel2 func(L1, L2), addLevel3 func(L2, L3),
	key1 func(L1) K1, key2 func(L2) K2,
) ([]L1, error) {
	return rowfold.OneToManyNested(Query3(ctx, r, stmt, level1, level2, level3), key1, key2, addLevel2, addLevel3)
}
