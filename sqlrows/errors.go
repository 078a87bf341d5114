package sqlrows

import (
	"fmt"
)

var (
	ErrSplitColumnNotFound = func(marker string, before int) error {
		return fmt.Errorf("split column %s not found before column %d", marker, before)
	}
	ErrInvalidArity = func(n int) error { return fmt.Errorf("row arity must be at least 1, got %d", n) }
)
