package conv

import (
	"fmt"
	"math"
	"math/bits"
)

// Uint64ToUint converts a bit count or index to the platform uint used by the
// bitset backend. On 32-bit platforms values above math.MaxUint32 fail.
func Uint64ToUint(v uint64) (uint, error) {
	if bits.UintSize == 32 && v > math.MaxUint32 {
		return 0, fmt.Errorf("integer overflow: %d cannot be converted to uint (too large)", v)
	}
	return uint(v), nil
}
