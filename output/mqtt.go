package output

import (
	"errors"
	"fmt"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"github.com/robmorgan/lcs/dmx"
)

const (
	defaultMQTTTopic      = "lcs/universe/1/dmx"
	defaultConnectTimeout = 10 * time.Second
	defaultPublishTimeout = time.Second
	disconnectQuiesceMS   = 250
)

var (
	// ErrMQTTConnect is returned when the broker cannot be reached.
	ErrMQTTConnect = errors.New("mqtt connection failed")

	// ErrMQTTPublish is returned when a frame could not be published in time.
	ErrMQTTPublish = errors.New("mqtt publish failed")
)

// MQTT publishes every frame as a raw 512 byte retained message, for bridges that
// forward it to Art-Net or sACN nodes.
type MQTT struct {
	client pahomqtt.Client
	topic  string
	qos    byte
}

// OpenMQTT connects to the broker in s.
func OpenMQTT(s MQTTSettings) (*MQTT, error) {
	if s.Broker == "" {
		return nil, fmt.Errorf("%w: no broker configured", ErrMQTTConnect)
	}

	clientID := s.ClientID
	if clientID == "" {
		clientID = "lcs-" + uuid.NewString()
	}

	opts := pahomqtt.NewClientOptions().
		AddBroker(s.Broker).
		SetClientID(clientID).
		SetAutoReconnect(true).
		SetConnectTimeout(defaultConnectTimeout)

	client := pahomqtt.NewClient(opts)
	token := client.Connect()
	if !token.WaitTimeout(defaultConnectTimeout) {
		return nil, fmt.Errorf("%w: timeout after %v", ErrMQTTConnect, defaultConnectTimeout)
	}
	if err := token.Error(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMQTTConnect, err)
	}

	return NewMQTT(client, s.Topic, s.QoS), nil
}

// NewMQTT wraps a connected client.
func NewMQTT(client pahomqtt.Client, topic string, qos byte) *MQTT {
	if topic == "" {
		topic = defaultMQTTTopic
	}
	return &MQTT{client: client, topic: topic, qos: qos}
}

func (m *MQTT) Send(frame *dmx.Frame) error {
	token := m.client.Publish(m.topic, m.qos, true, frame.Bytes())
	if !token.WaitTimeout(defaultPublishTimeout) {
		return fmt.Errorf("%w: timeout after %v", ErrMQTTPublish, defaultPublishTimeout)
	}
	if err := token.Error(); err != nil {
		return fmt.Errorf("%w: %w", ErrMQTTPublish, err)
	}
	return nil
}

func (m *MQTT) Close() error {
	m.client.Disconnect(disconnectQuiesceMS)
	return nil
}
