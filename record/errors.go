package record

import (
	"fmt"
)

var (
	ErrFieldNotFound = func(field string) error { return fmt.Errorf("field %s not found in row", field) }
	ErrArityMismatch = func(want, got int) error { return fmt.Errorf("row has %d segments, expected %d", got, want) }
)
