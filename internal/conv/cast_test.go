//go:build amd64 || arm64

package conv

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUint64ToUint(t *testing.T) {
	t.Run("valid zero", func(t *testing.T) {
		got, err := Uint64ToUint(0)
		assert.NoError(t, err)
		assert.Equal(t, uint(0), got)
	})

	t.Run("valid above 32 bits", func(t *testing.T) {
		got, err := Uint64ToUint(1 << 40)
		assert.NoError(t, err)
		assert.Equal(t, uint(1<<40), got)
	})

	t.Run("valid max", func(t *testing.T) {
		got, err := Uint64ToUint(math.MaxUint64)
		assert.NoError(t, err)
		assert.Equal(t, uint(math.MaxUint64), got)
	})
}
