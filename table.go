package rowfold

import "iter"

// table maps keys to values and remembers the order in which keys were first inserted.
type table[K comparable, V any] struct {
	index  map[K]int
	keys   []K
	values []V
}

func newTable[K comparable, V any]() *table[K, V] {
	return &table[K, V]{
		index: make(map[K]int),
	}
}

func (t *table[K, V]) get(key K) (V, bool) {
	i, ok := t.index[key]
	if !ok {
		var zero V
		return zero, false
	}
	return t.values[i], true
}

// resolve returns the representative stored for key. When key is unseen,
// candidate becomes the representative and inserted is true.
func (t *table[K, V]) resolve(key K, candidate V) (rep V, inserted bool) {
	if i, ok := t.index[key]; ok {
		return t.values[i], false
	}
	t.put(key, candidate)
	return candidate, true
}

// put appends an entry for a key that is not in the table yet.
func (t *table[K, V]) put(key K, value V) {
	t.index[key] = len(t.values)
	t.keys = append(t.keys, key)
	t.values = append(t.values, value)
}

func (t *table[K, V]) len() int {
	return len(t.values)
}

func (t *table[K, V]) all() iter.Seq2[K, V] {
	return func(yield func(K, V) bool) {
		for i, k := range t.keys {
			if !yield(k, t.values[i]) {
				return
			}
		}
	}
}

// ordered returns the representatives in first-seen order. The result is never nil.
func (t *table[K, V]) ordered() []V {
	out := make([]V, len(t.values))
	copy(out, t.values)
	return out
}

type compositeKey[K1, K2 comparable] struct {
	level1 K1
	level2 K2
}
