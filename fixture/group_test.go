package fixture

import (
	"testing"

	"github.com/robmorgan/lcs/dmx"
	"github.com/stretchr/testify/require"
)

func TestFixtureInMultipleGroups(t *testing.T) {
	t.Parallel()

	fix, err := NewFixture("left_par", 138, 8)
	require.NoError(t, err)

	// add the fixture to two fixture groups
	fg1 := NewGroup()
	fg2 := NewGroup()
	require.NoError(t, fg1.AddFixture(fix))
	require.NoError(t, fg2.AddFixture(fix))

	// set a value
	fix1, err := fg1.GetFixture("left_par")
	require.NoError(t, err)
	require.NoError(t, fix1.SetChannel(0, 165))

	// check its correct in the other fixture group
	par, err := fg2.GetFixture("left_par")
	require.NoError(t, err)
	v, _ := par.Channel(0)
	require.Equal(t, uint8(165), v)
}

func TestAddDuplicateFixture(t *testing.T) {
	t.Parallel()

	fg := NewGroup()
	a, _ := NewFixture("fixture1", 1, 1)
	b, _ := NewFixture("fixture1", 2, 1)

	require.NoError(t, fg.AddFixture(a))
	require.ErrorIs(t, fg.AddFixture(b), ErrDuplicateFixture)

	got, err := fg.GetFixture("fixture1")
	require.NoError(t, err)
	require.Same(t, a, got)

	_, err = fg.GetFixture("nope")
	require.ErrorIs(t, err, ErrNoSuchFixture)
}

func TestNamesAndFixturesOrdered(t *testing.T) {
	t.Parallel()

	fg := NewGroup()
	require.False(t, fg.HasFixtures())
	for i, name := range []string{"wash", "bar", "spot"} {
		f, err := NewFixture(name, dmx.Address(1+i*10), 1)
		require.NoError(t, err)
		require.NoError(t, fg.AddFixture(f))
	}

	require.True(t, fg.HasFixtures())
	require.Equal(t, []string{"bar", "spot", "wash"}, fg.Names())

	fixtures := fg.Fixtures()
	require.Len(t, fixtures, 3)
	require.Equal(t, "bar", fixtures[0].Name())
	require.Equal(t, "wash", fixtures[2].Name())
}
