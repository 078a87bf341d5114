package rowfold

import "iter"

// OneToManyNested folds a three-level join, for example customers joined to
// orders joined to order lines.
//
// Level-2 entities are deduplicated per level-1 parent: the same key2 under
// two different level-1 parents yields two distinct level-2 representatives.
// addLevel3 runs for every row. addLevel2 runs once per level-2
// representative after the stream is exhausted, in the order the
// (key1, key2) pairs were first seen.
func OneToManyNested[L1, L2, L3 any, K1, K2 comparable](
	rows iter.Seq2[Triple[L1, L2, L3], error],
	key1 func(L1) K1,
	key2 func(L2) K2,
	addLevel2 func(L1, L2),
	addLevel3 func(L2, L3),
) ([]L1, error) {
	level1 := newTable[K1, L1]()
	level2 := newTable[compositeKey[K1, K2], L2]()
	for row, err := range rows {
		if err != nil {
			return nil, err
		}
		k1 := key1(row.First)
		level1.resolve(k1, row.First)
		mid, _ := level2.resolve(compositeKey[K1, K2]{level1: k1, level2: key2(row.Second)}, row.Second)
		addLevel3(mid, row.Third)
	}
	for k, mid := range level2.all() {
		if top, ok := level1.get(k.level1); ok {
			addLevel2(top, mid)
		}
	}
	return level1.ordered(), nil
}
