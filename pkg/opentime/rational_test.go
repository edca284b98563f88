package opentime_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sumatoshi-tech/cutline/pkg/opentime"
)

// Test rates.
const (
	rate24 = 24.0
	rate48 = 48.0
)

// TestNew verifies value and rate round through the constructor.
func TestNew(t *testing.T) {
	t.Parallel()

	rt := opentime.New(10, rate24)
	assert.InDelta(t, 10.0, rt.Value(), 0)
	assert.InDelta(t, rate24, rt.Rate(), 0)
}

// TestIsInvalid verifies invalid-time detection.
func TestIsInvalid(t *testing.T) {
	t.Parallel()

	assert.True(t, opentime.RationalTime{}.IsInvalid())
	assert.True(t, opentime.New(1, -24).IsInvalid())
	assert.False(t, opentime.New(1, rate24).IsInvalid())
}

// TestAdd_SameRate verifies addition at a shared rate.
func TestAdd_SameRate(t *testing.T) {
	t.Parallel()

	sum := opentime.New(10, rate24).Add(opentime.New(5, rate24))
	assert.InDelta(t, 15.0, sum.Value(), 0)
	assert.InDelta(t, rate24, sum.Rate(), 0)
}

// TestAdd_MixedRates verifies addition rescales to the higher rate.
func TestAdd_MixedRates(t *testing.T) {
	t.Parallel()

	// 10 frames at 24fps plus 10 frames at 48fps is 30 frames at 48fps.
	sum := opentime.New(10, rate24).Add(opentime.New(10, rate48))
	assert.InDelta(t, 30.0, sum.Value(), 0)
	assert.InDelta(t, rate48, sum.Rate(), 0)
}

// TestSub verifies subtraction.
func TestSub(t *testing.T) {
	t.Parallel()

	diff := opentime.New(10, rate24).Sub(opentime.New(4, rate24))
	assert.InDelta(t, 6.0, diff.Value(), 0)
}

// TestCmp_CrossRate verifies ordering across rates.
func TestCmp_CrossRate(t *testing.T) {
	t.Parallel()

	a := opentime.New(10, rate24)
	b := opentime.New(20, rate48) // same instant as a

	assert.Equal(t, 0, a.Cmp(b))
	assert.True(t, a.Equal(b))
	assert.False(t, a.Less(b))
	assert.True(t, a.LessOrEqual(b))

	later := opentime.New(11, rate24)
	require.Equal(t, -1, a.Cmp(later))
	require.Equal(t, 1, later.Cmp(a))
}

// TestRescaledTo verifies rate conversion.
func TestRescaledTo(t *testing.T) {
	t.Parallel()

	rt := opentime.New(12, rate24).RescaledTo(rate48)
	assert.InDelta(t, 24.0, rt.Value(), 0)
	assert.InDelta(t, rate48, rt.Rate(), 0)
}

// TestMinMax verifies ordering helpers.
func TestMinMax(t *testing.T) {
	t.Parallel()

	early := opentime.New(1, rate24)
	late := opentime.New(2, rate24)

	assert.True(t, early.Min(late).Equal(early))
	assert.True(t, early.Max(late).Equal(late))
}

// TestFromFrames_ToFrames verifies integer frame round trips.
func TestFromFrames_ToFrames(t *testing.T) {
	t.Parallel()

	rt := opentime.FromFrames(100, rate24)
	assert.Equal(t, 100, rt.ToFrames())
}

// TestAlmostEqual verifies tolerance comparison across rates.
func TestAlmostEqual(t *testing.T) {
	t.Parallel()

	a := opentime.New(10, rate24)
	b := opentime.New(20.1, rate48)

	assert.True(t, a.AlmostEqual(b, 0.2))
	assert.False(t, a.AlmostEqual(b, 0.05))
}
