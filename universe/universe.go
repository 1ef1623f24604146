// Package universe ties fixtures, dimmers and composite lights to a single DMX
// universe that is streamed continuously by an output driver, and runs fades over
// the dimmers as cancellable transitions.
package universe

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/robmorgan/lcs/config"
	"github.com/robmorgan/lcs/dmx"
	"github.com/robmorgan/lcs/effect"
	"github.com/robmorgan/lcs/fixture"
	"github.com/robmorgan/lcs/logger"
	"github.com/robmorgan/lcs/output"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Universe is the registry of everything patched into one DMX universe plus the
// lifecycle of its output driver. All methods are safe for concurrent use.
type Universe struct {
	log        *logrus.Entry
	clock      clock.WithTicker
	resolution time.Duration
	curve      effect.Curve
	curveName  string
	driverOpts []output.DriverOption
	onError    func(error)

	mu          sync.Mutex
	fixtures    *fixture.Group
	dimmers     map[string]*fixture.Dimmer
	composites  map[string]*fixture.CompositeLight
	driver      *output.Driver
	settings    output.Settings
	cues        []config.Cue
	transitions map[string]*Transition
	busy        map[string]*Transition

	errMu   sync.Mutex
	lastErr error
}

// Option configures a Universe.
type Option func(*Universe)

// WithClock sets the clock used for fade sleeps and the output cadence.
func WithClock(c clock.WithTicker) Option {
	return func(u *Universe) {
		if c != nil {
			u.clock = c
		}
	}
}

// WithFadeResolution sets the default step resolution of dimmers added later.
func WithFadeResolution(resolution time.Duration) Option {
	return func(u *Universe) {
		if resolution > 0 {
			u.resolution = resolution
		}
	}
}

// WithFadeCurve sets the default easing curve of dimmers added later.
func WithFadeCurve(curve effect.Curve) Option {
	return func(u *Universe) {
		if curve != nil {
			u.curve = curve
		}
	}
}

func WithLogger(log *logrus.Entry) Option {
	return func(u *Universe) {
		if log != nil {
			u.log = log
		}
	}
}

// WithTransportErrorHandler is called for every error reported by the output driver.
// It runs on the driver goroutine and must not block.
func WithTransportErrorHandler(fn func(error)) Option {
	return func(u *Universe) {
		u.onError = fn
	}
}

// WithDriverOptions adds options to every output driver the universe starts. They
// are applied after the ones derived from the transport settings.
func WithDriverOptions(opts ...output.DriverOption) Option {
	return func(u *Universe) {
		u.driverOpts = append(u.driverOpts, opts...)
	}
}

// New creates an empty universe with no output running.
func New(opts ...Option) *Universe {
	u := &Universe{
		log:         logger.GetProjectLogger(),
		clock:       clock.RealClock{},
		resolution:  fixture.DefaultResolution,
		fixtures:    fixture.NewGroup(),
		dimmers:     make(map[string]*fixture.Dimmer),
		composites:  make(map[string]*fixture.CompositeLight),
		transitions: make(map[string]*Transition),
		busy:        make(map[string]*Transition),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// AddFixture patches a fixture of count channels starting at address. Fixtures
// added while the output runs are sent from the next Start on.
func (u *Universe) AddFixture(name string, address dmx.Address, count int) (*fixture.Fixture, error) {
	f, err := fixture.NewFixture(name, address, count)
	if err != nil {
		return nil, err
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	if err := u.fixtures.AddFixture(f); err != nil {
		return nil, err
	}
	if u.driver != nil {
		u.log.WithField("fixture", name).Warn("fixture added while output is running, it is sent after a restart")
	}
	u.log.WithFields(logrus.Fields{"fixture": name, "address": address, "channels": count}).Debug("fixture added")
	return f, nil
}

// AddDimmer puts a dimmer on channel offset of the named fixture. The dimmer is
// registered under the fixture's name.
func (u *Universe) AddDimmer(name string, offset int, opts ...fixture.DimmerOption) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	f, err := u.fixtures.GetFixture(name)
	if err != nil {
		return err
	}
	if _, ok := u.dimmers[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateDimmer, name)
	}

	defaults := []fixture.DimmerOption{fixture.WithResolution(u.resolution), fixture.WithCurve(u.curve)}
	d, err := fixture.NewDimmer(f, offset, append(defaults, opts...)...)
	if err != nil {
		return err
	}

	u.dimmers[name] = d
	return nil
}

// AddCompositeRGB puts a three channel colour light on the named fixture.
func (u *Universe) AddCompositeRGB(name string, red, green, blue int) error {
	return u.addComposite(name, func(f *fixture.Fixture) (*fixture.CompositeLight, error) {
		return fixture.NewRGB(f, red, green, blue)
	})
}

// AddCompositeRGBW puts a four channel colour light on the named fixture.
func (u *Universe) AddCompositeRGBW(name string, red, green, blue, white int) error {
	return u.addComposite(name, func(f *fixture.Fixture) (*fixture.CompositeLight, error) {
		return fixture.NewRGBW(f, red, green, blue, white)
	})
}

func (u *Universe) addComposite(name string, build func(*fixture.Fixture) (*fixture.CompositeLight, error)) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	f, err := u.fixtures.GetFixture(name)
	if err != nil {
		return err
	}
	if _, ok := u.composites[name]; ok {
		return fmt.Errorf("%w: %s", ErrDuplicateComposite, name)
	}

	c, err := build(f)
	if err != nil {
		return err
	}

	u.composites[name] = c
	return nil
}

func (u *Universe) Fixture(name string) (*fixture.Fixture, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.fixtures.GetFixture(name)
}

// Fixtures returns every patched fixture in name order.
func (u *Universe) Fixtures() []*fixture.Fixture {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.fixtures.Fixtures()
}

// Dimmer returns the registered dimmer. A running fade works on its own copy, so
// the returned dimmer's fade state is not the transition's; Value is always live.
func (u *Universe) Dimmer(name string) (*fixture.Dimmer, error) {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.dimmer(name)
}

func (u *Universe) dimmer(name string) (*fixture.Dimmer, error) {
	d, ok := u.dimmers[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchDimmer, name)
	}
	return d, nil
}

func (u *Universe) Composite(name string) (*fixture.CompositeLight, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	c, ok := u.composites[name]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNoSuchComposite, name)
	}
	return c, nil
}

// SetTarget changes the level the next fade of the named dimmer heads for.
func (u *Universe) SetTarget(name string, target uint8) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	d, err := u.dimmer(name)
	if err != nil {
		return err
	}
	d.SetTarget(target)
	return nil
}

// Start opens the transport described by settings and starts streaming.
func (u *Universe) Start(settings output.Settings) error {
	if u.Running() {
		return ErrAlreadyRunning
	}

	transport, err := output.Open(settings)
	if err != nil {
		return err
	}
	if err := u.start(transport, settings); err != nil {
		transport.Close()
		return err
	}
	return nil
}

// StartTransport starts streaming to an already open transport. The universe owns
// it from now on and closes it on Stop.
func (u *Universe) StartTransport(transport output.Transport) error {
	return u.start(transport, output.Settings{})
}

func (u *Universe) start(transport output.Transport, settings output.Settings) error {
	u.mu.Lock()
	defer u.mu.Unlock()

	if u.driver != nil {
		select {
		case <-u.driver.Done():
			// the previous driver gave up on its own
			u.driver.Stop()
			u.driver = nil
		default:
			return ErrAlreadyRunning
		}
	}

	opts := append(settings.DriverOptions(), output.WithClock(u.clock), output.WithErrorHandler(u.reportTransportError))
	opts = append(opts, u.driverOpts...)

	d := output.NewDriver(transport, u.fixtures.Fixtures(), opts...)
	if err := d.Start(context.Background()); err != nil {
		return err
	}

	u.driver = d
	u.settings = settings
	u.log.WithFields(logrus.Fields{"transport": settings.TypeName(), "fixtures": u.fixtures.Count()}).Info("universe output started")
	if !u.fixtures.HasFixtures() {
		u.log.Warn("no fixtures patched, the output sends an empty universe")
	}
	return nil
}

// Stop ends every running fade and then the output driver, closing the transport.
// Calling Stop without a running driver does nothing.
func (u *Universe) Stop() error {
	u.mu.Lock()
	d := u.driver
	u.driver = nil
	u.mu.Unlock()

	// no new fade can start now
	u.haltTransitions()
	if d == nil {
		return nil
	}

	err := d.Stop()
	u.log.Info("universe output stopped")
	return err
}

// Close tears the universe down: no goroutine started by it survives the call.
// It is safe to call more than once and usually deferred right after New or Load.
func (u *Universe) Close() error {
	return u.Stop()
}

// Running reports whether an output driver is streaming.
func (u *Universe) Running() bool {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.running()
}

func (u *Universe) running() bool {
	if u.driver == nil {
		return false
	}
	select {
	case <-u.driver.Done():
		return false
	default:
		return true
	}
}

// OutputSettings returns the settings of the last Start, or the loaded ones.
func (u *Universe) OutputSettings() output.Settings {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.settings
}

// LastError returns the most recent error reported by the output driver.
func (u *Universe) LastError() error {
	u.errMu.Lock()
	defer u.errMu.Unlock()
	return u.lastErr
}

func (u *Universe) reportTransportError(err error) {
	u.errMu.Lock()
	u.lastErr = err
	u.errMu.Unlock()

	if u.onError != nil {
		u.onError(err)
	}
}

// FadeInOne fades the named dimmer from its current value to its target over
// duration, at the dimmer's own step interval. It fails with ErrNotRunning when no
// output runs and ErrFadeInProgress when the dimmer is already fading; in both
// cases no transition exists.
func (u *Universe) FadeInOne(name string, duration time.Duration) (*Transition, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.running() {
		return nil, ErrNotRunning
	}
	d, err := u.dimmer(name)
	if err != nil {
		return nil, err
	}
	if _, ok := u.busy[name]; ok {
		return nil, fmt.Errorf("%w: %s", ErrFadeInProgress, name)
	}

	fade := d.Clone()
	interval := fade.FadeIn(duration)
	return u.launch([]string{name}, []*fixture.Dimmer{fade}, interval), nil
}

// FadeInAll fades every dimmer towards its target over duration in one shared
// loop. The loop sleeps the shortest step interval of the dimmers that have steps
// to take and ends once none of them moved.
func (u *Universe) FadeInAll(duration time.Duration) (*Transition, error) {
	u.mu.Lock()
	defer u.mu.Unlock()

	if !u.running() {
		return nil, ErrNotRunning
	}

	names := u.dimmerNames()
	fades := make([]*fixture.Dimmer, 0, len(names))
	var interval time.Duration
	for _, name := range names {
		if _, ok := u.busy[name]; ok {
			return nil, fmt.Errorf("%w: %s", ErrFadeInProgress, name)
		}

		fade := u.dimmers[name].Clone()
		step := fade.FadeIn(duration)
		if step > 0 && (interval == 0 || step < interval) {
			interval = step
		}
		fades = append(fades, fade)
	}

	return u.launch(names, fades, interval), nil
}

// launch starts the fade goroutine; u.mu must be held.
func (u *Universe) launch(names []string, fades []*fixture.Dimmer, interval time.Duration) *Transition {
	t := newTransition(names, interval)
	u.transitions[t.id] = t
	for _, name := range names {
		u.busy[name] = t
	}

	log := u.log.WithFields(logrus.Fields{"transition": t.id, "dimmers": len(names), "interval": interval})
	log.Debug("transition started")

	go t.run(fades, u.driver.Trigger, u.clock, u.release, log)
	return t
}

// release drops a finished transition from the registry, before its Done closes.
func (u *Universe) release(t *Transition) {
	u.mu.Lock()
	defer u.mu.Unlock()

	delete(u.transitions, t.id)
	for _, name := range t.names {
		if u.busy[name] == t {
			delete(u.busy, name)
		}
	}
}

// Transitions returns the fades that are currently running.
func (u *Universe) Transitions() []*Transition {
	u.mu.Lock()
	defer u.mu.Unlock()

	out := make([]*Transition, 0, len(u.transitions))
	for _, t := range u.transitions {
		out = append(out, t)
	}
	return out
}

// haltTransitions stops every running fade without holding u.mu, since the fade
// goroutines take it on exit.
func (u *Universe) haltTransitions() {
	for _, t := range u.Transitions() {
		t.halt()
	}
}

// Blackout stops running fades, writes zero to every dimmer channel and triggers
// one push when the output runs. It returns once the push was requested.
func (u *Universe) Blackout() {
	u.haltTransitions()

	u.mu.Lock()
	defer u.mu.Unlock()

	// A fade launched while the lock was free would overwrite the zeros.
	for len(u.transitions) > 0 {
		u.mu.Unlock()
		u.haltTransitions()
		u.mu.Lock()
	}

	for _, d := range u.dimmers {
		d.Blackout()
	}
	if u.running() {
		u.driver.Trigger()
	}
	u.log.WithField("dimmers", len(u.dimmers)).Info("blackout")
}

func (u *Universe) dimmerNames() []string {
	names := make([]string, 0, len(u.dimmers))
	for _, name := range u.fixtures.Names() {
		if _, ok := u.dimmers[name]; ok {
			names = append(names, name)
		}
	}
	return names
}
