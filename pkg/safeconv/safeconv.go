// Package safeconv provides checked integer conversions that panic on
// overflow. Callers use them where a bounds violation indicates a bug,
// not an input condition.
package safeconv

import "math"

// MaxUint32 is the maximum value representable by uint32.
const MaxUint32 = uint32(math.MaxUint32)

// MustIntToUint32 converts v to uint32 and panics when v is negative
// or exceeds the uint32 range. Use only after the caller has already
// established the bound.
func MustIntToUint32(v int) uint32 {
	if v < 0 || v > int(MaxUint32) {
		panic("safeconv: int to uint32 out of bounds")
	}

	return uint32(v)
}
