package profile

import (
	"fmt"

	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

const (
	ChannelTypeIntensity = "channel:type:intensity"
	ChannelTypeStrobe    = "channel:type:strobe"

	ChannelTypeRed   = "channel:type:red"
	ChannelTypeGreen = "channel:type:green"
	ChannelTypeBlue  = "channel:type:blue"
	ChannelTypeWhite = "channel:type:white"
	ChannelTypeAmber = "channel:type:amber"
	ChannelTypeUV    = "channel:type:uv"
	ChannelTypeColor = "channel:type:color" // Generic color wheel channel (Shehds spots)

	ChannelTypePan       = "channel:type:pan"
	ChannelTypeTilt      = "channel:type:tilt"
	ChannelTypeTiltSpeed = "channel:type:tiltspeed"

	ChannelTypeGobo = "channel:type:gobo"

	ChannelTypeMotorSpeed = "channel:type:motor:speed"

	ChannelTypeFunctionSelect = "channel:type:function:select"
	ChannelTypeFunctionSpeed  = "channel:type:function:speed"

	ChannelTypeReset   = "channel:type:reset"
	ChannelTypeUnknown = "channel:type:unknown"
)

// Profile holds info for a fixture profile including the channel mappings.
type Profile struct {
	Name string

	// The fixture channels, keyed by channel type. Channel numbers start at 1.
	Channels map[string]int
}

// ChannelCount is the number of DMX slots a fixture with this profile occupies.
func (p Profile) ChannelCount() int {
	count := 0
	for _, ch := range p.Channels {
		if ch > count {
			count = ch
		}
	}
	return count
}

// Offset returns the 0-based offset of the channel with the given type.
func (p Profile) Offset(channelType string) (int, bool) {
	ch, ok := p.Channels[channelType]
	if !ok {
		return 0, false
	}
	return ch - 1, true
}

// Offsets returns the offsets of every listed type, or false if any is missing.
func (p Profile) Offsets(channelTypes ...string) ([]int, bool) {
	out := make([]int, 0, len(channelTypes))
	for _, ct := range channelTypes {
		offset, ok := p.Offset(ct)
		if !ok {
			return nil, false
		}
		out = append(out, offset)
	}
	return out, true
}

// Lookup returns the built-in profile with the given key.
func Lookup(key string) (Profile, error) {
	if p, ok := builtin[key]; ok {
		return p, nil
	}
	return Profile{}, fmt.Errorf("unknown fixture profile %q", key)
}

// Keys lists the built-in profile keys in sorted order.
func Keys() []string {
	keys := maps.Keys(builtin)
	slices.Sort(keys)
	return keys
}
