package output

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/robmorgan/lcs/dmx"
)

// Transport types understood by Open.
const (
	TypeEnttec = "enttec"
	TypeOLA    = "ola"
	TypeMQTT   = "mqtt"
	TypeDump   = "dump"
)

var (
	// ErrUnknownTransport is returned by Open for an unsupported transport type.
	ErrUnknownTransport = errors.New("unknown output transport")

	// ErrTransportGaveUp ends the driver loop after too many consecutive send failures.
	ErrTransportGaveUp = errors.New("output transport gave up")
)

// Transport writes complete DMX frames to the bus. Send is only ever called from the
// driver goroutine and must not retain frame after it returns.
type Transport interface {
	Send(frame *dmx.Frame) error
	Close() error
}

// Settings describes the physical connection and the driver cadence.
type Settings struct {
	Type string `yaml:"type,omitempty" validate:"omitempty,oneof=enttec ola mqtt dump"`

	// Serial port settings (enttec)
	Port           string        `yaml:"port,omitempty"`
	BaudRate       int           `yaml:"baud_rate,omitempty" validate:"gte=0"`
	BreakTime      time.Duration `yaml:"break_time,omitempty" validate:"gte=0"`
	MarkAfterBreak time.Duration `yaml:"mark_after_break,omitempty" validate:"gte=0"`

	// RefreshRate is the number of frames per second sent when nothing triggers a push.
	RefreshRate int `yaml:"refresh_rate,omitempty" validate:"gte=0,lte=44"`
	// MinFrameGap is the shortest time allowed between two frames. Zero disables the limit.
	MinFrameGap time.Duration `yaml:"min_frame_gap,omitempty" validate:"gte=0"`
	// MaxConsecutiveErrors stops the driver after that many failed sends in a row. Zero retries forever.
	MaxConsecutiveErrors int `yaml:"max_consecutive_errors,omitempty" validate:"gte=0"`

	OLA  OLASettings  `yaml:"ola,omitempty"`
	MQTT MQTTSettings `yaml:"mqtt,omitempty"`
}

// OLASettings points at an olad RPC endpoint.
type OLASettings struct {
	Address  string `yaml:"address,omitempty"`
	Universe int    `yaml:"universe,omitempty" validate:"gte=0"`
}

// MQTTSettings describes the broker frames are published to.
type MQTTSettings struct {
	Broker   string `yaml:"broker,omitempty"`
	Topic    string `yaml:"topic,omitempty"`
	ClientID string `yaml:"client_id,omitempty"`
	QoS      byte   `yaml:"qos,omitempty" validate:"lte=2"`
}

// TypeName returns the transport type, defaulting to dump.
func (s Settings) TypeName() string {
	if s.Type == "" {
		return TypeDump
	}
	return s.Type
}

// Open connects the transport described by s.
func Open(s Settings) (Transport, error) {
	switch s.TypeName() {
	case TypeEnttec:
		return OpenEnttecPro(s)
	case TypeOLA:
		return OpenOLA(s.OLA)
	case TypeMQTT:
		return OpenMQTT(s.MQTT)
	case TypeDump:
		return NewDump(os.Stdout), nil
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownTransport, s.Type)
	}
}

// DriverOptions translates the cadence part of s into driver options.
func (s Settings) DriverOptions() []DriverOption {
	return []DriverOption{
		WithName(s.TypeName()),
		WithRefreshRate(s.RefreshRate),
		WithMinFrameGap(s.MinFrameGap),
		WithMaxConsecutiveErrors(s.MaxConsecutiveErrors),
	}
}
