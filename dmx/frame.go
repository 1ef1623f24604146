package dmx

import (
	"encoding/hex"
	"fmt"
)

// Address is a 1-based DMX512 slot number.
type Address int

// Channel is the value of a single DMX slot.
type Channel uint8

const (
	// UniverseChannels is the number of slots in a DMX512 universe.
	UniverseChannels Address = 512

	// StartCode is the null start code that prefixes dimmer data on the wire.
	StartCode byte = 0x00
)

// Frame holds one complete universe worth of channel values.
type Frame struct {
	Channels [UniverseChannels]Channel
}

// NewFrame creates an empty (all zero) frame.
func NewFrame() *Frame {
	return &Frame{}
}

// ValidAddress reports whether address is inside the universe.
func ValidAddress(address Address) bool {
	return address >= 1 && address <= UniverseChannels
}

func (f *Frame) Get(address Address) (Channel, error) {
	if !ValidAddress(address) {
		return 0, fmt.Errorf("dmx address (%d) not in range", address)
	}
	return f.Channels[address-1], nil
}

func (f *Frame) Set(address Address, value Channel) error {
	if !ValidAddress(address) {
		return fmt.Errorf("dmx address (%d) not in range", address)
	}
	f.Channels[address-1] = value
	return nil
}

// Reset zeroes every slot.
func (f *Frame) Reset() {
	f.Channels = [UniverseChannels]Channel{}
}

// Bytes returns a copy of the frame suitable for handing to a transport.
func (f *Frame) Bytes() []byte {
	buf := make([]byte, len(f.Channels))
	for i, channel := range f.Channels {
		buf[i] = byte(channel)
	}
	return buf
}

func (f *Frame) String() string {
	return hex.Dump(f.Bytes())
}
