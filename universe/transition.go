package universe

import (
	"sync"
	"time"

	commonerrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/google/uuid"
	"github.com/robmorgan/lcs/fixture"
	"github.com/sirupsen/logrus"
	"k8s.io/utils/clock"
)

// Transition is a running fade over one or more dimmers. The fade runs in its own
// goroutine until every dimmer reached its target or Stop is called.
type Transition struct {
	id       string
	names    []string
	interval time.Duration

	stop     chan struct{}
	done     chan struct{}
	stopOnce sync.Once

	mu      sync.Mutex
	stopped bool
	err     error
}

func newTransition(names []string, interval time.Duration) *Transition {
	return &Transition{
		id:       uuid.NewString(),
		names:    names,
		interval: interval,
		stop:     make(chan struct{}),
		done:     make(chan struct{}),
	}
}

func (t *Transition) ID() string {
	return t.id
}

// Interval is the time slept between two steps.
func (t *Transition) Interval() time.Duration {
	return t.interval
}

// Dimmers lists the names of the dimmers being faded.
func (t *Transition) Dimmers() []string {
	return append([]string(nil), t.names...)
}

// Done is closed once the fade goroutine has exited.
func (t *Transition) Done() <-chan struct{} {
	return t.done
}

// Wait blocks until the fade finished or was stopped.
func (t *Transition) Wait() {
	<-t.done
}

// Err returns the panic that ended the fade, if any.
func (t *Transition) Err() error {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.err
}

// Stop asks the fade to end and blocks until its goroutine exited. The request is
// seen after the current sleep, so Stop takes at most one interval. Once Stop
// returns no more channel writes or output triggers happen. Stopping a fade that
// already finished is fine; stopping the same Transition twice is
// ErrTransitionStopped.
func (t *Transition) Stop() error {
	t.mu.Lock()
	if t.stopped {
		t.mu.Unlock()
		return ErrTransitionStopped
	}
	t.stopped = true
	t.mu.Unlock()

	t.halt()
	return nil
}

// halt is Stop without the bookkeeping, used when the universe tears fades down.
func (t *Transition) halt() {
	t.stopOnce.Do(func() { close(t.stop) })
	<-t.done
}

func (t *Transition) stopRequested() bool {
	select {
	case <-t.stop:
		return true
	default:
		return false
	}
}

// run steps every dimmer once per pass, asks for a push after each pass that moved
// something, sleeps and then polls for a stop request.
func (t *Transition) run(dimmers []*fixture.Dimmer, push func(), clk clock.Clock, release func(*Transition), log *logrus.Entry) {
	defer close(t.done)
	defer release(t)
	defer commonerrors.Recover(func(cause error) {
		log.WithError(cause).Error("transition crashed")
		t.mu.Lock()
		t.err = cause
		t.mu.Unlock()
	})

	steps := 0
	for {
		stepped := false
		for _, d := range dimmers {
			if d.FadeStep() {
				stepped = true
			}
		}
		if !stepped {
			log.WithField("steps", steps).Debug("transition finished")
			return
		}
		steps++
		push()

		clk.Sleep(t.interval)
		if t.stopRequested() {
			log.WithField("steps", steps).Debug("transition stopped")
			return
		}
	}
}
