package universe

import (
	"fmt"

	"github.com/robmorgan/lcs/config"
	"github.com/robmorgan/lcs/dmx"
	"github.com/robmorgan/lcs/fixture"
)

// Load builds a universe from the patch file at path. The output is not started;
// pass OutputSettings to Start for the configured transport.
func Load(path string, opts ...Option) (*Universe, error) {
	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	return FromConfig(cfg, opts...)
}

// FromConfig builds a universe from a validated patch. Options given here win over
// the fade defaults of the patch.
func FromConfig(cfg *config.Config, opts ...Option) (*Universe, error) {
	curve, err := cfg.FadeCurve()
	if err != nil {
		return nil, err
	}

	u := New(append([]Option{WithFadeResolution(cfg.Fade.Resolution), WithFadeCurve(curve)}, opts...)...)
	u.curveName = cfg.Fade.Curve
	u.settings = cfg.Output
	u.cues = append([]config.Cue(nil), cfg.Cues...)

	for _, f := range cfg.Fixtures {
		if _, err := u.AddFixture(f.Name, dmx.Address(f.Address), f.ChannelCount()); err != nil {
			return nil, err
		}

		if offset, ok := f.DimmerOffset(); ok {
			var dopts []fixture.DimmerOption
			if f.Target != nil {
				dopts = append(dopts, fixture.WithTarget(*f.Target))
			}
			if err := u.AddDimmer(f.Name, offset, dopts...); err != nil {
				return nil, fmt.Errorf("dimmer %s: %w", f.Name, err)
			}
		}

		if offsets, ok := f.ColorOffsets(); ok {
			if len(offsets) == 4 {
				err = u.AddCompositeRGBW(f.Name, offsets[0], offsets[1], offsets[2], offsets[3])
			} else {
				err = u.AddCompositeRGB(f.Name, offsets[0], offsets[1], offsets[2])
			}
			if err != nil {
				return nil, fmt.Errorf("composite %s: %w", f.Name, err)
			}
		}
	}

	u.log.WithField("fixtures", len(cfg.Fixtures)).Debug("universe loaded")
	return u, nil
}

// Config snapshots the universe as a patch. Offsets are written out explicitly, the
// profile a fixture was loaded from is not kept.
func (u *Universe) Config() *config.Config {
	u.mu.Lock()
	defer u.mu.Unlock()

	cfg := &config.Config{
		Fade:   config.Fade{Resolution: u.resolution, Curve: u.curveName},
		Output: u.settings,
		Cues:   append([]config.Cue(nil), u.cues...),
	}

	for _, f := range u.fixtures.Fixtures() {
		entry := config.Fixture{
			Name:     f.Name(),
			Address:  int(f.Address()),
			Channels: f.ChannelCount(),
		}

		if d, ok := u.dimmers[f.Name()]; ok {
			offset := d.Offset()
			entry.Dimmer = &offset
			if target := d.Target(); target != fixture.FullLevel {
				entry.Target = &target
			}
		}

		if c, ok := u.composites[f.Name()]; ok {
			if c.HasWhite() {
				entry.RGBW = c.Offsets()
			} else {
				entry.RGB = c.Offsets()
			}
		}

		cfg.Fixtures = append(cfg.Fixtures, entry)
	}
	return cfg
}

// Cues returns the cue list loaded with the patch.
func (u *Universe) Cues() []config.Cue {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]config.Cue(nil), u.cues...)
}

// Save writes the current patch to path.
func (u *Universe) Save(path string) error {
	return config.Save(path, u.Config())
}
