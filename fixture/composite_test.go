package fixture

import (
	"testing"

	"github.com/lucasb-eyer/go-colorful"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompositeRGB(t *testing.T) {
	t.Parallel()

	fix, err := NewFixture("bar", 40, 4)
	require.NoError(t, err)

	c, err := NewRGB(fix, 1, 2, 3)
	require.NoError(t, err)
	assert.Equal(t, KindRGB, c.Kind())
	assert.False(t, c.HasWhite())

	require.NoError(t, c.SetHex("#FF00FF"))
	assert.Equal(t, []uint8{0, 255, 0, 255}, fix.Values())
	assert.Equal(t, "#ff00ff", c.Color().Hex())

	// white is ignored on an rgb light
	c.SetRGBW(1, 2, 3, 4)
	assert.Equal(t, []uint8{0, 1, 2, 3}, fix.Values())
	assert.Equal(t, uint8(0), c.White())

	require.Error(t, c.SetHex("not-a-colour"))
}

func TestCompositeRGBW(t *testing.T) {
	t.Parallel()

	fix, err := NewFixture("par", 1, 8)
	require.NoError(t, err)

	c, err := NewRGBW(fix, 1, 2, 3, 4)
	require.NoError(t, err)
	assert.Equal(t, KindRGBW, c.Kind())
	assert.Equal(t, []int{1, 2, 3, 4}, c.Offsets())

	c.SetRGBW(10, 20, 30, 40)
	assert.Equal(t, uint8(40), c.White())

	// SetColor leaves white alone
	c.SetColor(colorful.Color{R: 1, G: 0, B: 0})
	assert.Equal(t, []uint8{0, 255, 0, 0, 40, 0, 0, 0}, fix.Values())

	c.Off()
	assert.Equal(t, make([]uint8, 8), fix.Values())
}

func TestCompositeOutOfRange(t *testing.T) {
	t.Parallel()

	fix, err := NewFixture("bar", 1, 3)
	require.NoError(t, err)

	_, err = NewRGBW(fix, 0, 1, 2, 3)
	require.ErrorIs(t, err, ErrChannelOutOfRange)
	_, err = NewRGB(fix, 0, 1, 5)
	require.ErrorIs(t, err, ErrChannelOutOfRange)
}
