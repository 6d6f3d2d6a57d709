package status

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStatus_Codes(t *testing.T) {
	// The numeric values are part of the engine boundary.
	require.Equal(t, 0, OK.Code())
	require.Equal(t, 1, InsufficientSamples.Code())
	require.Equal(t, 2, NoSolutionFound.Code())
	require.Equal(t, 3, SingularMatrix.Code())
	require.Equal(t, 4, NotPositiveDefinite.Code())
	require.Equal(t, 5, NotSymmetric.Code())
	require.Equal(t, 6, InvalidMode.Code())
}

func TestStatus_String(t *testing.T) {
	tests := []struct {
		status Status
		want   string
	}{
		{OK, "ok"},
		{InsufficientSamples, "insufficient_samples"},
		{NoSolutionFound, "no_solution_found"},
		{SingularMatrix, "singular_matrix"},
		{NotPositiveDefinite, "not_positive_definite"},
		{NotSymmetric, "not_symmetric"},
		{InvalidMode, "invalid_mode"},
		{Status(42), "status(42)"},
	}

	for _, tt := range tests {
		require.Equal(t, tt.want, tt.status.String())
	}
}

func TestStatus_Err(t *testing.T) {
	require.NoError(t, OK.Err())
	require.ErrorIs(t, InsufficientSamples.Err(), ErrInsufficientSamples)
	require.ErrorIs(t, NoSolutionFound.Err(), ErrNoSolutionFound)
	require.ErrorIs(t, SingularMatrix.Err(), ErrSingularMatrix)
	require.ErrorIs(t, NotPositiveDefinite.Err(), ErrNotPositiveDefinite)
	require.ErrorIs(t, NotSymmetric.Err(), ErrNotSymmetric)
	require.ErrorIs(t, InvalidMode.Err(), ErrInvalidMode)
	require.Error(t, Status(99).Err())
}

func TestStatus_Predicates(t *testing.T) {
	require.True(t, OK.IsOK())
	require.False(t, NoSolutionFound.IsOK())

	require.True(t, SingularMatrix.IsMatrixError())
	require.True(t, NotPositiveDefinite.IsMatrixError())
	require.True(t, NotSymmetric.IsMatrixError())
	require.False(t, InvalidMode.IsMatrixError())
	require.False(t, InsufficientSamples.IsMatrixError())
}

func TestFromError(t *testing.T) {
	s, ok := FromError(nil)
	require.True(t, ok)
	require.Equal(t, OK, s)

	wrapped := fmt.Errorf("fit failed: %w", NotPositiveDefinite.Err())
	s, ok = FromError(wrapped)
	require.True(t, ok)
	require.Equal(t, NotPositiveDefinite, s)

	_, ok = FromError(errors.New("something else"))
	require.False(t, ok)
}
