package output

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	commonerrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/lcs/dmx"
	"github.com/robmorgan/lcs/effect"
	"github.com/robmorgan/lcs/fixture"
	"github.com/robmorgan/lcs/logger"
	"github.com/sirupsen/logrus"
	"golang.org/x/time/rate"
	"k8s.io/utils/clock"
)

// DefaultRefreshRate is the number of frames per second sent without any trigger.
const DefaultRefreshRate = 40

// ErrDriverStarted is returned when Start is called on a driver that already ran.
var ErrDriverStarted = errors.New("output driver already started")

// Driver owns the only goroutine allowed to serialise fixture state and write it to
// the transport. It re-sends the full frame at the refresh rate and immediately
// whenever Trigger is called.
type Driver struct {
	transport Transport
	fixtures  []*fixture.Fixture

	name        string
	clock       clock.WithTicker
	refresh     time.Duration
	minFrameGap time.Duration
	maxErrors   int
	onError     func(error)
	log         *logrus.Entry

	trigger chan struct{}
	done    chan struct{}
	cancel  context.CancelFunc

	startOnce sync.Once
	stopOnce  sync.Once
	started   bool

	mu       sync.Mutex
	err      error
	closeErr error

	// owned by the loop goroutine
	frame       *dmx.Frame
	limiter     *rate.Limiter
	consecutive int
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithName labels the driver's logs and metrics, usually with the transport type.
func WithName(name string) DriverOption {
	return func(d *Driver) {
		if name != "" {
			d.name = name
		}
	}
}

// WithClock replaces the real clock, mostly for tests.
func WithClock(c clock.WithTicker) DriverOption {
	return func(d *Driver) {
		if c != nil {
			d.clock = c
		}
	}
}

// WithRefreshRate sets the idle cadence in frames per second. Non-positive values keep the default.
func WithRefreshRate(fps int) DriverOption {
	return func(d *Driver) {
		if fps > 0 {
			d.refresh = effect.FPS(fps)
		}
	}
}

// WithMinFrameGap limits how close together two frames may be sent.
func WithMinFrameGap(gap time.Duration) DriverOption {
	return func(d *Driver) {
		d.minFrameGap = gap
	}
}

// WithMaxConsecutiveErrors makes the loop give up after n failed sends in a row. Zero never gives up.
func WithMaxConsecutiveErrors(n int) DriverOption {
	return func(d *Driver) {
		d.maxErrors = n
	}
}

// WithErrorHandler is called from the driver goroutine for every transport error.
// It must not block.
func WithErrorHandler(fn func(error)) DriverOption {
	return func(d *Driver) {
		d.onError = fn
	}
}

// NewDriver creates a stopped driver over a snapshot of fixtures.
func NewDriver(transport Transport, fixtures []*fixture.Fixture, opts ...DriverOption) *Driver {
	snapshot := make([]*fixture.Fixture, len(fixtures))
	copy(snapshot, fixtures)

	d := &Driver{
		transport: transport,
		fixtures:  snapshot,
		name:      "custom",
		clock:     clock.RealClock{},
		refresh:   effect.FPS(DefaultRefreshRate),
		trigger:   make(chan struct{}, 1),
		done:      make(chan struct{}),
		frame:     dmx.NewFrame(),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.limiter = rate.NewLimiter(rate.Inf, 1)
	if d.minFrameGap > 0 {
		d.limiter = rate.NewLimiter(rate.Every(d.minFrameGap), 1)
	}
	d.log = logger.GetProjectLogger().WithField("transport", d.name)

	return d
}

// Start launches the driver goroutine. The loop runs until Stop is called, ctx is
// cancelled or the transport gives up.
func (d *Driver) Start(ctx context.Context) error {
	err := ErrDriverStarted
	d.startOnce.Do(func() {
		ctx, d.cancel = context.WithCancel(ctx)
		d.mu.Lock()
		d.started = true
		d.mu.Unlock()
		go d.run(ctx)
		err = nil
	})
	return err
}

// Trigger asks for the current state to be sent now. It never blocks: a trigger that
// arrives while one is already pending is folded into it. Safe to call from any
// goroutine, also after Stop.
func (d *Driver) Trigger() {
	triggers.WithLabelValues(d.name).Inc()
	select {
	case d.trigger <- struct{}{}:
	default:
	}
}

// Stop ends the loop and blocks until the goroutine has exited and the transport has
// been closed. A pending trigger is sent first. It returns the error from closing
// the transport, if any.
func (d *Driver) Stop() error {
	d.mu.Lock()
	started := d.started
	d.mu.Unlock()
	if !started {
		return nil
	}

	d.stopOnce.Do(func() {
		d.cancel()
		<-d.done
	})

	d.mu.Lock()
	defer d.mu.Unlock()
	return d.closeErr
}

// Done is closed once the loop has exited.
func (d *Driver) Done() <-chan struct{} {
	return d.done
}

// Err returns why the loop ended on its own (transport gave up or crashed), or nil.
func (d *Driver) Err() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.err
}

func (d *Driver) run(ctx context.Context) {
	defer close(d.done)
	defer d.closeTransport()
	defer commonerrors.Recover(func(cause error) {
		d.log.WithError(cause).Error("output driver crashed")
		d.fail(cause)
	})

	runningDrivers.Inc()
	defer runningDrivers.Dec()

	ticker := d.clock.NewTicker(d.refresh)
	defer ticker.Stop()

	d.log.WithFields(logrus.Fields{"fixtures": len(d.fixtures), "refresh": d.refresh}).Info("output driver started")

	for {
		select {
		case <-ctx.Done():
			d.flush()
			d.log.Info("output driver shutdown")
			return
		case <-ticker.C():
		case <-d.trigger:
		}

		if err := d.limiter.Wait(ctx); err != nil {
			// cancelled while waiting for a frame slot
			d.finalPush()
			d.log.Info("output driver shutdown")
			return
		}

		if err := d.push(); err != nil {
			d.log.WithError(err).Error("output driver stopped")
			d.fail(err)
			return
		}
	}
}

// flush sends a trigger that is still pending at shutdown, so a state change that
// was requested right before Stop reaches the transport.
func (d *Driver) flush() {
	select {
	case <-d.trigger:
		d.finalPush()
	default:
	}
}

func (d *Driver) finalPush() {
	if err := d.push(); err != nil {
		d.log.WithError(err).Warn("final dmx frame not sent")
	}
}

// push serialises every fixture and sends the frame. A send failure is reported and
// swallowed unless the consecutive error budget is used up.
func (d *Driver) push() error {
	for _, f := range d.fixtures {
		f.WriteTo(d.frame)
	}

	start := time.Now()
	err := d.transport.Send(d.frame)
	sendDuration.WithLabelValues(d.name).Observe(time.Since(start).Seconds())

	if err == nil {
		d.consecutive = 0
		framesSent.WithLabelValues(d.name).Inc()
		return nil
	}

	d.consecutive++
	sendErrors.WithLabelValues(d.name).Inc()
	d.log.WithError(err).WithField("consecutive", d.consecutive).Warn("failed to send dmx frame")
	d.report(err)

	if d.maxErrors > 0 && d.consecutive >= d.maxErrors {
		return fmt.Errorf("%w after %d consecutive failures: %v", ErrTransportGaveUp, d.consecutive, err)
	}
	return nil
}

func (d *Driver) report(err error) {
	if d.onError != nil {
		d.onError(err)
	}
}

func (d *Driver) fail(err error) {
	d.mu.Lock()
	if d.err == nil {
		d.err = err
	}
	d.mu.Unlock()
	d.report(err)
}

func (d *Driver) closeTransport() {
	err := d.transport.Close()
	if err != nil {
		d.log.WithError(err).Warn("failed to close output transport")
	}

	d.mu.Lock()
	d.closeErr = err
	d.mu.Unlock()
}
