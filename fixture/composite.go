package fixture

import (
	"fmt"

	"github.com/lucasb-eyer/go-colorful"
)

// Kinds of composite light.
const (
	KindRGB  = "rgb"
	KindRGBW = "rgbw"
)

// CompositeLight drives several raw channels of one Fixture as a colour.
// It holds no fade state; writes go straight to the fixture like a Dimmer step.
type CompositeLight struct {
	fixture *Fixture
	kind    string

	// red, green, blue and (rgbw only) white offsets
	offsets []int
}

// NewRGB creates a tri-channel colour light.
func NewRGB(f *Fixture, red, green, blue int) (*CompositeLight, error) {
	return newComposite(f, KindRGB, red, green, blue)
}

// NewRGBW creates a quad-channel colour light.
func NewRGBW(f *Fixture, red, green, blue, white int) (*CompositeLight, error) {
	return newComposite(f, KindRGBW, red, green, blue, white)
}

func newComposite(f *Fixture, kind string, offsets ...int) (*CompositeLight, error) {
	for _, offset := range offsets {
		if err := f.checkOffset(offset); err != nil {
			return nil, err
		}
	}
	return &CompositeLight{fixture: f, kind: kind, offsets: offsets}, nil
}

func (c *CompositeLight) Fixture() *Fixture {
	return c.fixture
}

// Kind is KindRGB or KindRGBW.
func (c *CompositeLight) Kind() string {
	return c.kind
}

// Offsets returns the channel offsets in r, g, b(, w) order.
func (c *CompositeLight) Offsets() []int {
	out := make([]int, len(c.offsets))
	copy(out, c.offsets)
	return out
}

func (c *CompositeLight) HasWhite() bool {
	return len(c.offsets) == 4
}

func (c *CompositeLight) SetRGB(r, g, b uint8) {
	c.fixture.store(c.offsets[0], r)
	c.fixture.store(c.offsets[1], g)
	c.fixture.store(c.offsets[2], b)
}

// SetRGBW sets all four channels. The white value is dropped on an RGB light.
func (c *CompositeLight) SetRGBW(r, g, b, w uint8) {
	c.SetRGB(r, g, b)
	if c.HasWhite() {
		c.fixture.store(c.offsets[3], w)
	}
}

// SetColor writes the colour to the red, green and blue channels. White is left alone.
func (c *CompositeLight) SetColor(color colorful.Color) {
	c.SetRGB(color.Clamped().RGB255())
}

// SetHex sets the colour from a "#rrggbb" string.
func (c *CompositeLight) SetHex(s string) error {
	color, err := colorful.Hex(s)
	if err != nil {
		return fmt.Errorf("invalid colour %q: %w", s, err)
	}
	c.SetColor(color)
	return nil
}

// Color reads the current red, green and blue channels back.
func (c *CompositeLight) Color() colorful.Color {
	return colorful.Color{
		R: float64(c.fixture.load(c.offsets[0])) / 255,
		G: float64(c.fixture.load(c.offsets[1])) / 255,
		B: float64(c.fixture.load(c.offsets[2])) / 255,
	}
}

// White returns the white channel, or 0 on an RGB light.
func (c *CompositeLight) White() uint8 {
	if !c.HasWhite() {
		return 0
	}
	return c.fixture.load(c.offsets[3])
}

// Off zeroes every channel of the light.
func (c *CompositeLight) Off() {
	for _, offset := range c.offsets {
		c.fixture.store(offset, 0)
	}
}
