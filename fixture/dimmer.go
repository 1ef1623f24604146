package fixture

import (
	"time"

	"github.com/fogleman/ease"
	"github.com/robmorgan/lcs/effect"
)

const (
	// DefaultResolution is the time between two fade steps (40 steps a second).
	DefaultResolution = 25 * time.Millisecond

	// FullLevel is the default fade target.
	FullLevel uint8 = 255
)

// Dimmer is a single channel brightness controller over one Fixture.
//
// A Dimmer is either idle (no steps pending) or fading. FadeIn arms a fade from the
// channel's current value towards the target; every FadeStep writes the next value
// straight into the fixture. A Dimmer is not safe for concurrent use: a running fade
// works on its own Clone while the fixture is shared.
type Dimmer struct {
	fixture *Fixture
	offset  int

	target     uint8
	resolution time.Duration
	curve      effect.Curve

	// fade state
	start   uint8
	current uint8
	steps   int
	taken   int
}

// DimmerOption configures a Dimmer.
type DimmerOption func(*Dimmer)

// WithResolution sets the time between two fade steps. Non-positive values are ignored.
func WithResolution(resolution time.Duration) DimmerOption {
	return func(d *Dimmer) {
		if resolution > 0 {
			d.resolution = resolution
		}
	}
}

// WithCurve sets the easing curve used for fades.
func WithCurve(curve effect.Curve) DimmerOption {
	return func(d *Dimmer) {
		if curve != nil {
			d.curve = curve
		}
	}
}

// WithTarget sets the initial fade target.
func WithTarget(target uint8) DimmerOption {
	return func(d *Dimmer) {
		d.target = target
	}
}

// NewDimmer creates a Dimmer driving the channel at offset on f.
func NewDimmer(f *Fixture, offset int, opts ...DimmerOption) (*Dimmer, error) {
	if err := f.checkOffset(offset); err != nil {
		return nil, err
	}

	d := &Dimmer{
		fixture:    f,
		offset:     offset,
		target:     FullLevel,
		resolution: DefaultResolution,
		curve:      ease.Linear,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.current = d.Value()

	return d, nil
}

func (d *Dimmer) Fixture() *Fixture {
	return d.fixture
}

func (d *Dimmer) Offset() int {
	return d.offset
}

func (d *Dimmer) Target() uint8 {
	return d.target
}

// SetTarget changes the level the next fade heads for. A fade already armed keeps its target.
func (d *Dimmer) SetTarget(target uint8) {
	d.target = target
}

func (d *Dimmer) Resolution() time.Duration {
	return d.resolution
}

// Value reads the live channel value from the fixture.
func (d *Dimmer) Value() uint8 {
	return d.fixture.load(d.offset)
}

// Pending returns the number of steps left in the current fade.
func (d *Dimmer) Pending() int {
	return d.steps - d.taken
}

// Fading reports whether a fade has steps left.
func (d *Dimmer) Fading() bool {
	return d.Pending() > 0
}

// FadeIn arms a fade from the current channel value to the target lasting duration
// and returns the interval to wait between steps.
//
// The fade is split into ceil(duration/resolution) steps. A non-positive duration,
// or a target equal to the current value, arms nothing: the first FadeStep reports
// completion and the returned interval is 0.
func (d *Dimmer) FadeIn(duration time.Duration) time.Duration {
	d.start = d.Value()
	d.current = d.start
	d.steps = 0
	d.taken = 0

	if duration <= 0 || d.target == d.start {
		return 0
	}

	steps := duration / d.resolution
	if duration%d.resolution != 0 {
		steps++
	}
	d.steps = int(steps)
	return duration / time.Duration(d.steps)
}

// FadeStep writes the next fade value into the fixture and reports whether a step
// was taken. Once the target has been written it keeps returning false.
func (d *Dimmer) FadeStep() bool {
	if d.taken >= d.steps {
		return false
	}

	d.taken++
	d.current = effect.Interpolate(d.curve, d.start, d.target, float64(d.taken)/float64(d.steps))
	d.fixture.store(d.offset, d.current)
	return true
}

// Blackout writes zero to the channel and drops any armed fade.
func (d *Dimmer) Blackout() {
	d.steps = 0
	d.taken = 0
	d.current = 0
	d.fixture.store(d.offset, 0)
}

// Clone returns an independent Dimmer over the same fixture channel.
func (d *Dimmer) Clone() *Dimmer {
	c := *d
	return &c
}
