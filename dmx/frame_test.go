package dmx

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameSetGet(t *testing.T) {
	t.Parallel()

	f := NewFrame()
	require.NoError(t, f.Set(1, 10))
	require.NoError(t, f.Set(512, 255))

	v, err := f.Get(1)
	require.NoError(t, err)
	assert.Equal(t, Channel(10), v)

	v, err = f.Get(512)
	require.NoError(t, err)
	assert.Equal(t, Channel(255), v)

	buf := f.Bytes()
	assert.Len(t, buf, 512)
	assert.Equal(t, byte(10), buf[0])
	assert.Equal(t, byte(255), buf[511])

	// the copy is detached from the frame
	buf[0] = 99
	v, _ = f.Get(1)
	assert.Equal(t, Channel(10), v)
}

func TestFrameOutOfRange(t *testing.T) {
	t.Parallel()

	f := NewFrame()
	require.Error(t, f.Set(0, 1))
	require.Error(t, f.Set(513, 1))
	_, err := f.Get(0)
	require.Error(t, err)
}

func TestFrameResetAndDump(t *testing.T) {
	t.Parallel()

	f := NewFrame()
	require.NoError(t, f.Set(2, 0xAB))
	assert.True(t, strings.HasPrefix(f.String(), "00000000  00 ab"))

	f.Reset()
	v, _ := f.Get(2)
	assert.Equal(t, Channel(0), v)
}
