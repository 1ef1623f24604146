package cuelist

import (
	"context"
	"testing"
	"time"

	"github.com/robmorgan/lcs/config"
	"github.com/robmorgan/lcs/dmx"
	"github.com/robmorgan/lcs/fixture"
	"github.com/robmorgan/lcs/output/outputtest"
	"github.com/robmorgan/lcs/universe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/utils/clock"
)

func newTestUniverse(t *testing.T) *universe.Universe {
	t.Helper()

	u := universe.New(universe.WithFadeResolution(10 * time.Millisecond))
	t.Cleanup(func() { u.Close() })

	for i, name := range []string{"spot1", "spot2"} {
		_, err := u.AddFixture(name, dmx.Address(1+10*i), 1)
		require.NoError(t, err)
		require.NoError(t, u.AddDimmer(name, 0, fixture.WithTarget(0)))
	}
	require.NoError(t, u.StartTransport(outputtest.NewRecorder()))
	return u
}

func level(t *testing.T, u *universe.Universe, name string) uint8 {
	t.Helper()

	d, err := u.Dimmer(name)
	require.NoError(t, err)
	return d.Value()
}

func TestProcessCueList(t *testing.T) {
	t.Parallel()

	u := newTestUniverse(t)
	master := NewMaster(clock.RealClock{}, u)
	cl := NewCueList("main")

	first := master.EnQueueCue(Cue{Name: "open", Levels: map[string]uint8{"spot1": 255}, FadeTime: 50 * time.Millisecond}, cl)
	second := master.EnQueueCue(Cue{
		Name:     "half",
		Levels:   map[string]uint8{"spot2": 128},
		FadeTime: 50 * time.Millisecond,
		WaitTime: 10 * time.Millisecond,
		HoldTime: 10 * time.Millisecond,
	}, cl)
	assert.Equal(t, int64(1), first.ID)
	assert.Equal(t, int64(2), second.ID)
	assert.Equal(t, 2, cl.Pending())

	require.NoError(t, master.ProcessCueList(context.Background(), cl))

	// spot1 tracks through the second cue
	assert.Equal(t, uint8(255), level(t, u, "spot1"))
	assert.Equal(t, uint8(128), level(t, u, "spot2"))

	processed := cl.ProcessedCues()
	require.Len(t, processed, 2)
	assert.Equal(t, "open", processed[0].Name)
	assert.Equal(t, "processed", processed[0].State())
	assert.Equal(t, "processed", processed[1].State())
	assert.True(t, processed[1].RealDuration() >= 70*time.Millisecond)
	_, playing := cl.ActiveCue()
	assert.False(t, playing)
	assert.Zero(t, cl.Pending())
}

func TestActiveCueDuringPlayback(t *testing.T) {
	t.Parallel()

	u := newTestUniverse(t)
	master := NewMaster(clock.RealClock{}, u)
	cl := NewCueList("main")
	master.EnQueueCue(Cue{Name: "slow", Levels: map[string]uint8{"spot1": 255}, FadeTime: 10 * time.Second}, cl)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	done := make(chan error, 1)
	go func() { done <- master.ProcessCueList(ctx, cl) }()

	var active Cue
	require.Eventually(t, func() bool {
		var ok bool
		active, ok = cl.ActiveCue()
		return ok
	}, 2*time.Second, 5*time.Millisecond)
	assert.Equal(t, "slow", active.Name)
	assert.Equal(t, "active", active.State())
	assert.False(t, active.StartedAt.IsZero())

	// the snapshot is not touched by playback
	active.Name = "changed"
	again, ok := cl.ActiveCue()
	require.True(t, ok)
	assert.Equal(t, "slow", again.Name)

	cancel()
	require.ErrorIs(t, <-done, context.Canceled)
	_, ok = cl.ActiveCue()
	assert.False(t, ok)
}

func TestProcessCueListCancel(t *testing.T) {
	t.Parallel()

	u := newTestUniverse(t)
	master := NewMaster(clock.RealClock{}, u)
	cl := NewCueList("main")
	master.EnQueueCue(Cue{Name: "slow", Levels: map[string]uint8{"spot1": 255}, FadeTime: 10 * time.Second}, cl)
	master.EnQueueCue(Cue{Name: "never", Levels: map[string]uint8{"spot2": 255}}, cl)

	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	err := master.ProcessCueList(ctx, cl)
	require.ErrorIs(t, err, context.DeadlineExceeded)

	assert.Empty(t, u.Transitions())
	assert.Less(t, level(t, u, "spot1"), uint8(255))
	assert.Equal(t, uint8(0), level(t, u, "spot2"))

	processed := cl.ProcessedCues()
	require.Len(t, processed, 1)
	assert.Equal(t, "stopped", processed[0].State())
	assert.Equal(t, 1, cl.Pending())
}

func TestProcessCueUnknownDimmer(t *testing.T) {
	t.Parallel()

	u := newTestUniverse(t)
	master := NewMaster(clock.RealClock{}, u)

	err := master.ProcessCue(context.Background(), &Cue{Name: "oops", Levels: map[string]uint8{"spot9": 10}})
	assert.ErrorIs(t, err, universe.ErrNoSuchDimmer)
}

func TestFromConfig(t *testing.T) {
	t.Parallel()

	cues := FromConfig([]config.Cue{
		{Name: "open", Fade: time.Second, Wait: 2 * time.Second, Hold: 3 * time.Second, Levels: map[string]uint8{"spot1": 200}},
	})
	require.Len(t, cues, 1)
	assert.Equal(t, "open", cues[0].Name)
	assert.Equal(t, time.Second, cues[0].FadeTime)
	assert.Equal(t, 2*time.Second, cues[0].WaitTime)
	assert.Equal(t, 3*time.Second, cues[0].HoldTime)
	assert.Equal(t, map[string]uint8{"spot1": 200}, cues[0].Levels)
	assert.Equal(t, "enqueued", cues[0].State())
}
