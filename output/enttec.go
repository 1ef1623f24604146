package output

import (
	"fmt"
	"io"
	"math"
	"time"

	"github.com/gruntwork-io/go-commons/errors"
	"github.com/robmorgan/lcs/dmx"
	"go.bug.st/serial"
)

// Enttec DMX USB Pro message framing.
const (
	enttecStartOfMessage byte = 0x7E
	enttecEndOfMessage   byte = 0xE7

	enttecLabelSetParameters byte = 4
	enttecLabelSendDMX       byte = 6

	// widget timing parameters are expressed in units of 10.67µs
	enttecTimeUnit = 10670 * time.Nanosecond

	// DefaultBaudRate is used when the settings leave the baud rate empty.
	DefaultBaudRate = 57600
)

// EnttecPro sends frames to an Enttec DMX USB Pro compatible widget.
type EnttecPro struct {
	port io.WriteCloser
	buf  []byte
}

// OpenEnttecPro opens the serial port named in s and configures the widget timing.
func OpenEnttecPro(s Settings) (*EnttecPro, error) {
	if s.Port == "" {
		return nil, fmt.Errorf("enttec transport needs a serial port")
	}

	baud := s.BaudRate
	if baud == 0 {
		baud = DefaultBaudRate
	}

	port, err := serial.Open(s.Port, &serial.Mode{
		BaudRate: baud,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.TwoStopBits,
	})
	if err != nil {
		return nil, errors.WithStackTraceAndPrefix(err, "opening serial port %s", s.Port)
	}

	e := NewEnttecPro(port)
	if s.BreakTime > 0 || s.MarkAfterBreak > 0 || s.RefreshRate > 0 {
		if err := e.SetParameters(s.BreakTime, s.MarkAfterBreak, s.RefreshRate); err != nil {
			port.Close()
			return nil, err
		}
	}
	return e, nil
}

// NewEnttecPro wraps an already open port.
func NewEnttecPro(port io.WriteCloser) *EnttecPro {
	return &EnttecPro{
		port: port,
		buf:  make([]byte, 0, int(dmx.UniverseChannels)+6),
	}
}

// Send writes the start code and all 512 slots as one "send DMX" message.
func (e *EnttecPro) Send(frame *dmx.Frame) error {
	payload := make([]byte, 0, int(dmx.UniverseChannels)+1)
	payload = append(payload, dmx.StartCode)
	payload = append(payload, frame.Bytes()...)
	return e.write(enttecLabelSendDMX, payload)
}

// SetParameters programs the break time, mark after break and output rate of the widget.
// Values are clamped to what the widget accepts.
func (e *EnttecPro) SetParameters(breakTime, markAfterBreak time.Duration, refreshRate int) error {
	payload := []byte{
		0, 0, // no user configuration
		enttecUnits(breakTime, 9, 127),
		enttecUnits(markAfterBreak, 1, 127),
		byte(math.Max(0, math.Min(40, float64(refreshRate)))),
	}
	return e.write(enttecLabelSetParameters, payload)
}

func (e *EnttecPro) Close() error {
	return e.port.Close()
}

func (e *EnttecPro) write(label byte, payload []byte) error {
	e.buf = encodeEnttecMessage(e.buf[:0], label, payload)
	if _, err := e.port.Write(e.buf); err != nil {
		return errors.WithStackTraceAndPrefix(err, "writing enttec message label=%d", label)
	}
	return nil
}

func encodeEnttecMessage(buf []byte, label byte, payload []byte) []byte {
	buf = append(buf, enttecStartOfMessage, label, byte(len(payload)&0xFF), byte(len(payload)>>8))
	buf = append(buf, payload...)
	return append(buf, enttecEndOfMessage)
}

func enttecUnits(d time.Duration, min, max float64) byte {
	units := math.Round(float64(d) / float64(enttecTimeUnit))
	return byte(math.Max(min, math.Min(max, units)))
}
