package gas

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckTolerance_Boundary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		net       float64
		within    bool
		deviation float64
	}{
		{10, true, 0},
		{10.5, true, 5},
		{9.5, true, -5},
		{10.51, false, 5.1},
		{9.49, false, -5.1},
		{12, false, 20},
	}
	for _, tt := range tests {
		res, err := CheckTolerance(tt.net, 10)
		require.NoError(t, err)
		assert.Equal(t, tt.within, res.WithinTolerance, "net %v", tt.net)
		assert.InDelta(t, tt.deviation, res.DeviationPercent, 1e-9, "net %v", tt.net)
		assert.Equal(t, 10.0, res.DeclaredKW)
	}
}

func TestCheckTolerance_RejectsBadRating(t *testing.T) {
	t.Parallel()

	for _, declared := range []float64{0, -4, math.NaN()} {
		_, err := CheckTolerance(10, declared)
		assert.ErrorIs(t, err, ErrInvalidMeasurement)
	}
	_, err := CheckTolerance(math.Inf(1), 10)
	assert.ErrorIs(t, err, ErrInvalidMeasurement)
}

func TestCheckTolerance_RoundedDeviation(t *testing.T) {
	t.Parallel()

	res, err := CheckTolerance(151.6301801801802, 150)
	require.NoError(t, err)
	assert.True(t, res.WithinTolerance)
	assert.Equal(t, 1.09, res.Rounded().DeviationPercent)
}
