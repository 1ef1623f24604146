package fixture

import (
	"math"
	"testing"
	"time"

	"github.com/fogleman/ease"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDimmer(t *testing.T, opts ...DimmerOption) (*Fixture, *Dimmer) {
	t.Helper()

	fix, err := NewFixture("spot1", 1, 1)
	require.NoError(t, err)
	d, err := NewDimmer(fix, 0, opts...)
	require.NoError(t, err)
	return fix, d
}

func TestNewDimmerOutOfRange(t *testing.T) {
	t.Parallel()

	fix, err := NewFixture("spot1", 1, 2)
	require.NoError(t, err)

	_, err = NewDimmer(fix, 2)
	require.ErrorIs(t, err, ErrChannelOutOfRange)
}

func TestDimmerDefaults(t *testing.T) {
	t.Parallel()

	_, d := newTestDimmer(t)
	assert.Equal(t, FullLevel, d.Target())
	assert.Equal(t, DefaultResolution, d.Resolution())
	assert.False(t, d.Fading())
}

func TestFadeInConverges(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		duration   time.Duration
		resolution time.Duration
		steps      int
		interval   time.Duration
	}{
		{time.Second, 100 * time.Millisecond, 10, 100 * time.Millisecond},
		{time.Second, DefaultResolution, 40, 25 * time.Millisecond},
		{1050 * time.Millisecond, 100 * time.Millisecond, 11, 1050 * time.Millisecond / 11},
		{10 * time.Millisecond, 100 * time.Millisecond, 1, 10 * time.Millisecond},
	}

	for _, testCase := range testCases {
		fix, d := newTestDimmer(t, WithResolution(testCase.resolution))

		interval := d.FadeIn(testCase.duration)
		assert.Equal(t, testCase.interval, interval)
		assert.Equal(t, testCase.steps, d.Pending())

		previous := uint8(0)
		taken := 0
		for d.FadeStep() {
			taken++
			v, _ := fix.Channel(0)
			assert.GreaterOrEqual(t, v, previous)
			previous = v
		}

		assert.Equal(t, testCase.steps, taken)
		assert.Equal(t, FullLevel, d.Value())

		// idempotent at completion
		assert.False(t, d.FadeStep())
		assert.False(t, d.FadeStep())
		assert.Equal(t, FullLevel, d.Value())
	}
}

func TestFadeInZeroDuration(t *testing.T) {
	t.Parallel()

	_, d := newTestDimmer(t)
	assert.Equal(t, time.Duration(0), d.FadeIn(0))
	assert.Equal(t, 0, d.Pending())
	assert.False(t, d.FadeStep())
	assert.Equal(t, uint8(0), d.Value())
}

func TestFadeInTargetEqualsCurrent(t *testing.T) {
	t.Parallel()

	fix, d := newTestDimmer(t, WithTarget(80))
	require.NoError(t, fix.SetChannel(0, 80))

	assert.Equal(t, time.Duration(0), d.FadeIn(time.Second))
	assert.False(t, d.FadeStep())
	assert.Equal(t, uint8(80), d.Value())
}

func TestFadeInLongestDuration(t *testing.T) {
	t.Parallel()

	_, d := newTestDimmer(t)

	interval := d.FadeIn(time.Duration(math.MaxInt64))
	assert.True(t, interval > 0)
	assert.True(t, d.Pending() > 0)
	assert.True(t, d.FadeStep())
	assert.True(t, d.Fading())
}

func TestFadeDown(t *testing.T) {
	t.Parallel()

	fix, d := newTestDimmer(t, WithResolution(100*time.Millisecond))
	require.NoError(t, fix.SetChannel(0, 200))
	d.SetTarget(0)

	d.FadeIn(500 * time.Millisecond)
	values := []uint8{}
	for d.FadeStep() {
		values = append(values, d.Value())
	}
	assert.Equal(t, []uint8{160, 120, 80, 40, 0}, values)
}

func TestFadeStartsFromLiveValue(t *testing.T) {
	t.Parallel()

	fix, d := newTestDimmer(t, WithResolution(100*time.Millisecond))
	require.NoError(t, fix.SetChannel(0, 55))

	d.FadeIn(200 * time.Millisecond)
	require.True(t, d.FadeStep())
	assert.Equal(t, uint8(155), d.Value())
	require.True(t, d.FadeStep())
	assert.Equal(t, FullLevel, d.Value())
}

func TestFadeWithCurve(t *testing.T) {
	t.Parallel()

	_, d := newTestDimmer(t, WithResolution(100*time.Millisecond), WithCurve(ease.InQuad), WithTarget(200))

	d.FadeIn(200 * time.Millisecond)
	require.True(t, d.FadeStep())
	assert.Equal(t, uint8(50), d.Value())
	require.True(t, d.FadeStep())
	assert.Equal(t, uint8(200), d.Value())
}

func TestDimmerBlackout(t *testing.T) {
	t.Parallel()

	_, d := newTestDimmer(t, WithResolution(100*time.Millisecond))
	d.FadeIn(time.Second)
	require.True(t, d.FadeStep())
	require.True(t, d.Fading())

	d.Blackout()
	assert.False(t, d.Fading())
	assert.False(t, d.FadeStep())
	assert.Equal(t, uint8(0), d.Value())
}

func TestCloneSharesFixture(t *testing.T) {
	t.Parallel()

	fix, d := newTestDimmer(t, WithResolution(100*time.Millisecond))
	c := d.Clone()

	c.FadeIn(100 * time.Millisecond)
	require.True(t, c.FadeStep())

	// the original has no fade armed but sees the shared channel
	assert.False(t, d.Fading())
	assert.Equal(t, FullLevel, d.Value())
	v, _ := fix.Channel(0)
	assert.Equal(t, FullLevel, v)
	assert.Same(t, d.Fixture(), c.Fixture())
}
