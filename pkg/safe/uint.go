// Package safe provides integer conversions that fail instead of silently
// overflowing.
package safe

import (
	"fmt"
	"math"
)

type integer interface {
	~int | ~int32 | ~int64 | ~uint | ~uint32 | ~uint64
}

// ToUint32 narrows v to uint32, rejecting negatives and overflow.
func ToUint32[T integer](v T) (uint32, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	if uint64(v) > math.MaxUint32 {
		return 0, fmt.Errorf("value %d out of uint32 range", v)
	}
	return uint32(v), nil
}

// ToUint16 narrows v to uint16, rejecting negatives and overflow.
func ToUint16[T integer](v T) (uint16, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint16 range", v)
	}
	if uint64(v) > math.MaxUint16 {
		return 0, fmt.Errorf("value %d out of uint16 range", v)
	}
	return uint16(v), nil
}

// ToUint64 widens v to uint64, rejecting negatives.
func ToUint64[T integer](v T) (uint64, error) {
	if v < 0 {
		return 0, fmt.Errorf("value %d out of uint64 range", v)
	}
	return uint64(v), nil
}

// ToInt64 converts an unsigned value to int64, rejecting overflow.
func ToInt64(v uint64) (int64, error) {
	if v > math.MaxInt64 {
		return 0, fmt.Errorf("value %d out of int64 range", v)
	}
	return int64(v), nil
}
