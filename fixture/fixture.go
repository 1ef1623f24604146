package fixture

import (
	"fmt"
	"sync/atomic"

	"github.com/robmorgan/lcs/dmx"
)

// Fixture is a named block of consecutive DMX channels.
//
// Channel values are the single point of truth shared by the output driver and every
// Dimmer or CompositeLight built on the fixture. Each value lives in its own atomic
// word, so a write is one store and the serialise pass never sees a torn value.
type Fixture struct {
	name    string
	address dmx.Address

	channels []atomic.Uint32
}

// NewFixture creates a fixture occupying count channels starting at address.
func NewFixture(name string, address dmx.Address, count int) (*Fixture, error) {
	if !dmx.ValidAddress(address) || count < 1 || address+dmx.Address(count)-1 > dmx.UniverseChannels {
		return nil, fmt.Errorf("%w: name=%s address=%d channels=%d", ErrInvalidPatch, name, address, count)
	}

	return &Fixture{
		name:     name,
		address:  address,
		channels: make([]atomic.Uint32, count),
	}, nil
}

func (f *Fixture) Name() string {
	return f.name
}

// Address is the first DMX channel of the fixture.
func (f *Fixture) Address() dmx.Address {
	return f.address
}

// ChannelCount returns the number of channels the fixture uses
func (f *Fixture) ChannelCount() int {
	return len(f.channels)
}

// Channel returns the current value at offset (0-based).
func (f *Fixture) Channel(offset int) (uint8, error) {
	if err := f.checkOffset(offset); err != nil {
		return 0, err
	}
	return f.load(offset), nil
}

// SetChannel writes value at offset (0-based).
func (f *Fixture) SetChannel(offset int, value uint8) error {
	if err := f.checkOffset(offset); err != nil {
		return err
	}
	f.store(offset, value)
	return nil
}

// Values returns a copy of every channel value.
func (f *Fixture) Values() []uint8 {
	out := make([]uint8, len(f.channels))
	for i := range f.channels {
		out[i] = f.load(i)
	}
	return out
}

// Reset zeroes every channel.
func (f *Fixture) Reset() {
	for i := range f.channels {
		f.store(i, 0)
	}
}

// WriteTo copies the fixture's channel values into its slots of frame.
func (f *Fixture) WriteTo(frame *dmx.Frame) {
	base := int(f.address) - 1
	for i := range f.channels {
		frame.Channels[base+i] = dmx.Channel(f.load(i))
	}
}

func (f *Fixture) checkOffset(offset int) error {
	if offset < 0 || offset >= len(f.channels) {
		return fmt.Errorf("%w: fixture=%s offset=%d channels=%d", ErrChannelOutOfRange, f.name, offset, len(f.channels))
	}
	return nil
}

func (f *Fixture) load(offset int) uint8 {
	return uint8(f.channels[offset].Load())
}

func (f *Fixture) store(offset int, value uint8) {
	f.channels[offset].Store(uint32(value))
}
