package sqlrows

import (
	"strings"
)

// SplitEachColumn as a split marker gives every entity after the first a
// single column.
const SplitEachColumn = "*"

// splitColumns returns arity+1 offsets into columns; entity i owns
// columns[bounds[i]:bounds[i+1]]. splitOn is a comma separated list of
// marker column names lined up with the boundaries from the right: the last
// marker starts the last entity, the one before it the entity before, and
// the first marker is reused for any boundaries left over. Boundaries are
// found right to left. Each entity starts at the rightmost column before the
// next entity whose name matches its marker, ignoring case. Column 0 always
// starts the first entity.
func splitColumns(columns []string, splitOn string, arity int) ([]int, error) {
	if arity < 1 {
		return nil, ErrInvalidArity(arity)
	}
	markers := strings.Split(splitOn, ",")
	for i, m := range markers {
		markers[i] = strings.TrimSpace(m)
	}

	bounds := make([]int, arity+1)
	bounds[arity] = len(columns)
	end := len(columns)
	m := len(markers) - 1
	for i := arity - 1; i > 0; i-- {
		marker := markers[m]
		if m > 0 {
			m--
		}
		next := -1
		if marker == SplitEachColumn {
			if end-1 > 0 {
				next = end - 1
			}
		} else {
			for j := end - 1; j > 0; j-- {
				if strings.EqualFold(columns[j], marker) {
					next = j
					break
				}
			}
		}
		if next < 0 {
			return nil, ErrSplitColumnNotFound(marker, end)
		}
		bounds[i] = next
		end = next
	}
	return bounds, nil
}
