package config

import "github.com/robmorgan/lcs/profile"

func (f Fixture) profile() (profile.Profile, bool) {
	if f.Profile == "" {
		return profile.Profile{}, false
	}
	p, err := profile.Lookup(f.Profile)
	return p, err == nil
}

// ChannelCount is the explicit channel count, or the profile's when none is given.
func (f Fixture) ChannelCount() int {
	if f.Channels > 0 {
		return f.Channels
	}
	if p, ok := f.profile(); ok {
		return p.ChannelCount()
	}
	return 0
}

// DimmerOffset returns the 0-based channel the dimmer drives, if the fixture has one.
func (f Fixture) DimmerOffset() (int, bool) {
	if f.Dimmer != nil {
		return *f.Dimmer, true
	}
	if p, ok := f.profile(); ok {
		return p.Offset(profile.ChannelTypeIntensity)
	}
	return 0, false
}

// ColorOffsets returns the red, green, blue and optional white offsets of the
// composite light on this fixture. Explicit offsets win over the profile; a profile
// with a white channel gives an RGBW composite.
func (f Fixture) ColorOffsets() ([]int, bool) {
	switch {
	case len(f.RGBW) == 4:
		return append([]int(nil), f.RGBW...), true
	case len(f.RGB) == 3:
		return append([]int(nil), f.RGB...), true
	}

	p, ok := f.profile()
	if !ok {
		return nil, false
	}
	if offsets, ok := p.Offsets(profile.ChannelTypeRed, profile.ChannelTypeGreen, profile.ChannelTypeBlue, profile.ChannelTypeWhite); ok {
		return offsets, true
	}
	return p.Offsets(profile.ChannelTypeRed, profile.ChannelTypeGreen, profile.ChannelTypeBlue)
}
