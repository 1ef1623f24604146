// Package outputtest provides a recording output transport for tests.
package outputtest

import (
	"sync"
	"time"

	"github.com/robmorgan/lcs/dmx"
)

// Recorder is an in-memory transport that keeps a copy of every frame it is sent.
type Recorder struct {
	mu       sync.Mutex
	frames   []dmx.Frame
	failures int
	closed   int
	fail     error
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) Send(frame *dmx.Frame) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.fail != nil {
		r.failures++
		return r.fail
	}
	r.frames = append(r.frames, *frame)
	return nil
}

func (r *Recorder) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed++
	return nil
}

// SetFailure makes every following Send return err. A nil err heals the transport.
func (r *Recorder) SetFailure(err error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.fail = err
}

// Sends returns the number of frames recorded.
func (r *Recorder) Sends() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.frames)
}

// Failures returns the number of sends that were refused.
func (r *Recorder) Failures() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.failures
}

// Closed returns how many times Close was called.
func (r *Recorder) Closed() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.closed
}

// Frames returns a copy of every recorded frame.
func (r *Recorder) Frames() []dmx.Frame {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]dmx.Frame, len(r.frames))
	copy(out, r.frames)
	return out
}

// Last returns the most recent frame.
func (r *Recorder) Last() (dmx.Frame, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.frames) == 0 {
		return dmx.Frame{}, false
	}
	return r.frames[len(r.frames)-1], true
}

// Value returns channel address of the most recent frame, or 0 before the first send.
func (r *Recorder) Value(address dmx.Address) dmx.Channel {
	f, ok := r.Last()
	if !ok {
		return 0
	}
	v, _ := f.Get(address)
	return v
}

// WaitForSends polls until at least n frames were recorded or timeout passes.
func (r *Recorder) WaitForSends(n int, timeout time.Duration) bool {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if r.Sends() >= n {
			return true
		}
		time.Sleep(time.Millisecond)
	}
	return r.Sends() >= n
}
