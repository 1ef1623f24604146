package config

import (
	"fmt"
	"sort"

	"github.com/robmorgan/lcs/dmx"
)

// Validate checks the struct tags and the patch as a whole: unique names, every
// fixture inside the universe, no two fixtures sharing a channel, all offsets
// inside their fixture and cues only naming dimmers.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}

	type span struct {
		name        string
		first, last int
	}
	spans := make([]span, 0, len(c.Fixtures))
	names := make(map[string]struct{}, len(c.Fixtures))
	dimmers := make(map[string]bool, len(c.Fixtures))

	for _, f := range c.Fixtures {
		if _, ok := names[f.Name]; ok {
			return fmt.Errorf("%w: duplicate fixture %q", ErrInvalidConfig, f.Name)
		}
		names[f.Name] = struct{}{}

		count := f.ChannelCount()
		if count == 0 {
			return fmt.Errorf("%w: fixture %q needs channels or a profile", ErrInvalidConfig, f.Name)
		}
		last := f.Address + count - 1
		if last > int(dmx.UniverseChannels) {
			return fmt.Errorf("%w: fixture %q ends at channel %d", ErrInvalidConfig, f.Name, last)
		}
		if len(f.RGB) > 0 && len(f.RGBW) > 0 {
			return fmt.Errorf("%w: fixture %q sets both rgb and rgbw", ErrInvalidConfig, f.Name)
		}

		if offset, ok := f.DimmerOffset(); ok {
			if offset >= count {
				return fmt.Errorf("%w: fixture %q dimmer offset %d out of range", ErrInvalidConfig, f.Name, offset)
			}
			dimmers[f.Name] = true
		}
		for _, offset := range append(append([]int(nil), f.RGB...), f.RGBW...) {
			if offset >= count {
				return fmt.Errorf("%w: fixture %q colour offset %d out of range", ErrInvalidConfig, f.Name, offset)
			}
		}

		spans = append(spans, span{name: f.Name, first: f.Address, last: last})
	}

	for _, cue := range c.Cues {
		for name := range cue.Levels {
			if !dimmers[name] {
				return fmt.Errorf("%w: cue %q sets %q which has no dimmer", ErrInvalidConfig, cue.Name, name)
			}
		}
	}

	sort.Slice(spans, func(i, j int) bool { return spans[i].first < spans[j].first })
	for i := 1; i < len(spans); i++ {
		if spans[i].first <= spans[i-1].last {
			return fmt.Errorf("%w: fixtures %q and %q overlap at channel %d",
				ErrInvalidConfig, spans[i-1].name, spans[i].name, spans[i].first)
		}
	}
	return nil
}
