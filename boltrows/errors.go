package boltrows

import (
	"errors"
	"fmt"
)

var (
	ErrRelationNotFound   = func(name string) error { return fmt.Errorf("relation %s not found", name) }
	ErrRelationExists     = func(name string) error { return fmt.Errorf("relation %s already exists", name) }
	ErrColumnNotFound     = func(col string) error { return fmt.Errorf("column %s not found in columns", col) }
	ErrFieldCountMismatch = func(expected, got int) error {
		return fmt.Errorf("object has %d fields, expected %d", got, expected)
	}
	ErrObjectMissingField = func(col string) error { return fmt.Errorf("object is missing field %s", col) }
	ErrIndexNotFound      = func(col string) error { return fmt.Errorf("index for column %s not found", col) }
	ErrCannotEncodeKey    = func(v any) error { return fmt.Errorf("cannot encode key from value '%v' of type %T", v, v) }
	ErrMetadataNotFound   = errors.New("relation metadata not found")
)
