package output

import (
	"errors"
	"testing"
	"time"

	pahomqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/robmorgan/lcs/dmx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeToken struct {
	complete bool
	err      error
}

func (t *fakeToken) Wait() bool                     { return t.complete }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.complete }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if t.complete {
		close(ch)
	}
	return ch
}

// fakeClient embeds the interface so only the methods under test need a body.
type fakeClient struct {
	pahomqtt.Client

	token        *fakeToken
	topic        string
	qos          byte
	retained     bool
	payload      []byte
	disconnected bool
}

func (c *fakeClient) Publish(topic string, qos byte, retained bool, payload interface{}) pahomqtt.Token {
	c.topic, c.qos, c.retained = topic, qos, retained
	c.payload, _ = payload.([]byte)
	return c.token
}

func (c *fakeClient) Disconnect(uint) {
	c.disconnected = true
}

func TestMQTTPublishesRetainedFrame(t *testing.T) {
	t.Parallel()

	client := &fakeClient{token: &fakeToken{complete: true}}
	m := NewMQTT(client, "", 1)

	frame := dmx.NewFrame()
	require.NoError(t, frame.Set(3, 42))
	require.NoError(t, m.Send(frame))

	assert.Equal(t, defaultMQTTTopic, client.topic)
	assert.Equal(t, byte(1), client.qos)
	assert.True(t, client.retained)
	require.Len(t, client.payload, 512)
	assert.Equal(t, byte(42), client.payload[2])

	require.NoError(t, m.Close())
	assert.True(t, client.disconnected)
}

func TestMQTTPublishFailures(t *testing.T) {
	t.Parallel()

	timeout := &fakeClient{token: &fakeToken{complete: false}}
	err := NewMQTT(timeout, "stage/dmx", 0).Send(dmx.NewFrame())
	assert.ErrorIs(t, err, ErrMQTTPublish)

	broken := errors.New("not connected")
	failing := &fakeClient{token: &fakeToken{complete: true, err: broken}}
	err = NewMQTT(failing, "stage/dmx", 0).Send(dmx.NewFrame())
	assert.ErrorIs(t, err, ErrMQTTPublish)
	assert.ErrorIs(t, err, broken)
	assert.Equal(t, "stage/dmx", failing.topic)
}

func TestOpenMQTTNeedsBroker(t *testing.T) {
	t.Parallel()

	_, err := OpenMQTT(MQTTSettings{})
	assert.ErrorIs(t, err, ErrMQTTConnect)
}
