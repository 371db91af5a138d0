package mathutil_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Sumatoshi-tech/chatfang/pkg/mathutil"
)

func TestClamp(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 0.5, mathutil.Clamp(0.5, -1, 1), 0)
	assert.InDelta(t, -1.0, mathutil.Clamp(-3, -1, 1), 0)
	assert.InDelta(t, 1.0, mathutil.Clamp(2, -1, 1), 0)
}

func TestClampPercent(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 100.0, mathutil.ClampPercent(250), 0)
	assert.InDelta(t, 0.0, mathutil.ClampPercent(-5), 0)
	assert.InDelta(t, 42.0, mathutil.ClampPercent(42), 0)
}

func TestPercent(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 50.0, mathutil.Percent(1, 2), 0.001)
	assert.InDelta(t, 0.0, mathutil.Percent(1, 0), 0)
	assert.Equal(t, 33, mathutil.RoundPercent(1, 3))
	assert.Equal(t, 67, mathutil.RoundPercent(2, 3))
	assert.Zero(t, mathutil.RoundPercent(5, 0))
}

func TestMean(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, mathutil.Mean([]float64{1, 2, 3}), 0.001)
	assert.InDelta(t, 0.0, mathutil.Mean(nil), 0)
}

func TestStdDev(t *testing.T) {
	t.Parallel()

	// Population standard deviation of {2, 4, 4, 4, 5, 5, 7, 9} is 2.
	values := []float64{2, 4, 4, 4, 5, 5, 7, 9}
	assert.InDelta(t, 2.0, mathutil.StdDev(values), 0.001)

	assert.InDelta(t, 0.0, mathutil.StdDev([]float64{5}), 0)
	assert.InDelta(t, 0.0, mathutil.StdDev(nil), 0)
}
