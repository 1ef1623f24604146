package output

import (
	"bytes"
	"strings"
	"testing"

	"github.com/robmorgan/lcs/dmx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDumpWritesChangedFramesOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	d := NewDump(&buf)

	frame := dmx.NewFrame()
	require.NoError(t, d.Send(frame))
	require.NoError(t, d.Send(frame))
	assert.Equal(t, 1, d.Frames())

	require.NoError(t, frame.Set(2, 0xAB))
	require.NoError(t, d.Send(frame))
	assert.Equal(t, 2, d.Frames())

	out := buf.String()
	assert.Equal(t, 1, strings.Count(out, "frame 1\n"))
	assert.Contains(t, out, "frame 2\n")
	assert.Contains(t, out, "00 ab")

	assert.NoError(t, d.Close())
}
