package rowfold

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"
)

// Independent folds share no state, so running them in parallel must give
// each the same result it gets alone.
func TestConcurrentFoldsAreIndependent(t *testing.T) {
	const workers = 16
	results := make([][]*customer, workers)

	var g errgroup.Group
	for w := range workers {
		g.Go(func() error {
			pairs := make([]Pair[*customer, *order], 0, 300)
			for i := range 300 {
				c := i % (w + 1)
				pairs = append(pairs, PairOf(&customer{ID: c, Name: fmt.Sprintf("w%d-c%d", w, c)}, &order{ID: i}))
			}
			got, err := OneToMany(Rows(pairs...), customerID, addOrder)
			if err != nil {
				return err
			}
			results[w] = got
			return nil
		})
	}
	require.NoError(t, g.Wait())

	for w, got := range results {
		require.Len(t, got, w+1)
		total := 0
		for c, cust := range got {
			require.Equal(t, c, cust.ID)
			require.Equal(t, fmt.Sprintf("w%d-c%d", w, c), cust.Name)
			total += len(cust.Orders)
		}
		require.Equal(t, 300, total)
	}
}
