package fixture

import "errors"

var (
	// ErrNoSuchFixture is returned when a name does not resolve to a registered fixture.
	ErrNoSuchFixture = errors.New("no such fixture")

	// ErrDuplicateFixture is returned when a fixture name is registered twice.
	ErrDuplicateFixture = errors.New("duplicate fixture")

	// ErrChannelOutOfRange is returned for a channel offset the fixture does not have.
	ErrChannelOutOfRange = errors.New("channel offset out of range")

	// ErrInvalidPatch is returned for an address/channel count that does not fit in a universe.
	ErrInvalidPatch = errors.New("fixture does not fit in the universe")
)
