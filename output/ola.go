package output

import (
	"errors"
	"fmt"

	commonerrors "github.com/gruntwork-io/go-commons/errors"
	"github.com/nickysemenza/gola"
	"github.com/robmorgan/lcs/dmx"
)

const (
	defaultOLAAddress  = "localhost:9010"
	defaultOLAUniverse = 1
)

// ErrOLARejected is returned when olad refuses a frame.
var ErrOLARejected = errors.New("olad rejected dmx frame")

// OLAClient is the interface for communicating with OLA
type OLAClient interface {
	SendDmx(universe int, values []byte) (status bool, err error)
	Close()
}

// OLA sends frames to an Open Lighting Architecture daemon.
type OLA struct {
	client   OLAClient
	universe int
}

// OpenOLA connects to olad.
func OpenOLA(s OLASettings) (*OLA, error) {
	addr := s.Address
	if addr == "" {
		addr = defaultOLAAddress
	}

	client, err := gola.New(addr)
	if err != nil {
		return nil, commonerrors.WithStackTraceAndPrefix(err, "could not connect to OLA at %s", addr)
	}
	return NewOLA(client, s.Universe), nil
}

// NewOLA wraps a connected client. A zero universe means universe 1.
func NewOLA(client OLAClient, universe int) *OLA {
	if universe == 0 {
		universe = defaultOLAUniverse
	}
	return &OLA{client: client, universe: universe}
}

func (o *OLA) Send(frame *dmx.Frame) error {
	ok, err := o.client.SendDmx(o.universe, frame.Bytes())
	if err != nil {
		return commonerrors.WithStackTraceAndPrefix(err, "sending dmx to OLA universe %d", o.universe)
	}
	if !ok {
		return fmt.Errorf("%w: universe=%d", ErrOLARejected, o.universe)
	}
	return nil
}

func (o *OLA) Close() error {
	o.client.Close()
	return nil
}
