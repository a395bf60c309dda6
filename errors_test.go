package twiddle

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTypedErrors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		sentinel error
		msg      string
	}{
		{"index", CheckIndex(10, 10), ErrIndexOutOfBounds, "index 10 out of bounds [0, 10)"},
		{"size", CheckSize(16, 32), ErrSizeMismatch, "size mismatch: expected 16, got 32"},
		{"shape", CheckShape("k", uint16(4), uint16(5)), ErrShapeMismatch, "shape mismatch on k: expected 4, got 5"},
		{"parameter", NewParameterError("precision", 3, "must be in [4, 18]", nil), ErrInvalidParameter, "invalid parameter precision=3: must be in [4, 18]"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.err)
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.msg, tt.err.Error())

			// Wrapping keeps the sentinel reachable.
			wrapped := fmt.Errorf("combine: %w", tt.err)
			assert.ErrorIs(t, wrapped, tt.sentinel)
		})
	}
}

func TestChecksPass(t *testing.T) {
	assert.NoError(t, CheckIndex(9, 10))
	assert.NoError(t, CheckSize(8, 8))
	assert.NoError(t, CheckShape("seed", uint32(1), uint32(1)))
	assert.NoError(t, CheckCapacity(1))
	assert.NoError(t, CheckCapacity(MaxBits))
}

func TestCheckCapacity(t *testing.T) {
	assert.ErrorIs(t, CheckCapacity(0), ErrInvalidParameter)
	assert.ErrorIs(t, CheckCapacity(MaxBits+1), ErrInvalidParameter)
}

func TestErrorsAs(t *testing.T) {
	err := fmt.Errorf("op: %w", CheckIndex(100, 64))

	var ie *IndexError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, uint64(100), ie.Index)
	assert.Equal(t, uint64(64), ie.Size)

	var se *ShapeError
	assert.False(t, errors.As(err, &se))
}

func TestParameterError_Cause(t *testing.T) {
	cause := errors.New("underlying")
	err := NewParameterError("n", -1, "must be positive", cause)

	assert.ErrorIs(t, err, ErrInvalidParameter)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "n", err.Name)
	assert.Equal(t, -1, err.Value)
}
