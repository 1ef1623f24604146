package output

import (
	"fmt"
	"io"
	"sync"

	"github.com/robmorgan/lcs/dmx"
	"github.com/robmorgan/lcs/logger"
)

// Dump writes a hex dump of every frame that differs from the previous one. It is
// the default transport and useful without any hardware attached.
type Dump struct {
	w io.Writer

	mu     sync.Mutex
	last   *dmx.Frame
	frames int
}

func NewDump(w io.Writer) *Dump {
	return &Dump{w: w}
}

func (d *Dump) Send(frame *dmx.Frame) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.last != nil && *d.last == *frame {
		return nil
	}
	if d.last == nil {
		d.last = dmx.NewFrame()
	}
	*d.last = *frame
	d.frames++

	logger.GetProjectLogger().WithField("frame", d.frames).Debug("dmx frame changed")
	_, err := fmt.Fprintf(d.w, "frame %d\n%s", d.frames, frame.String())
	return err
}

// Frames returns how many distinct frames have been written.
func (d *Dump) Frames() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.frames
}

func (d *Dump) Close() error {
	return nil
}
