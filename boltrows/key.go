package boltrows

import (
	"encoding/binary"
	"math"
	"time"

	"rsc.io/ordered"
)

// toKey encodes v so that equal values give equal bytes and byte order
// follows value order. Integers of any width compare as int64 (uint64 above
// MaxInt64); integral floats compare as integers.
func toKey(v any) ([]byte, error) {
	n, err := normalizeKey(v)
	if err != nil {
		return nil, err
	}
	if !ordered.CanEncode(n) {
		return nil, ErrCannotEncodeKey(v)
	}
	return ordered.Encode(n), nil
}

func normalizeKey(v any) (any, error) {
	switch x := v.(type) {
	case string, []byte:
		return x, nil
	case int:
		return int64(x), nil
	case int8:
		return int64(x), nil
	case int16:
		return int64(x), nil
	case int32:
		return int64(x), nil
	case int64:
		return x, nil
	case uint:
		return normalizeUint(uint64(x)), nil
	case uint8:
		return int64(x), nil
	case uint16:
		return int64(x), nil
	case uint32:
		return int64(x), nil
	case uint64:
		return normalizeUint(x), nil
	case float32:
		return normalizeFloat(float64(x)), nil
	case float64:
		return normalizeFloat(x), nil
	case bool:
		if x {
			return int64(1), nil
		}
		return int64(0), nil
	case time.Time:
		return x.UnixNano(), nil
	default:
		return nil, ErrCannotEncodeKey(v)
	}
}

func normalizeUint(x uint64) any {
	if x <= math.MaxInt64 {
		return int64(x)
	}
	return x
}

func normalizeFloat(x float64) any {
	if x == math.Trunc(x) && x >= math.MinInt64 && x < math.MaxInt64 {
		return int64(x)
	}
	return x
}

func idKey(id uint64) []byte {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], id)
	return b[:]
}
