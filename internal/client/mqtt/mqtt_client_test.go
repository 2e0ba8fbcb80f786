package mqtt

import (
	"errors"
	"strings"
	"testing"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	mqttIface "github.com/tetragramaton/bstat/internal/interface/mqtt"
)

type fakeToken struct {
	done bool
	err  error
}

func (t *fakeToken) Wait() bool                     { return t.done }
func (t *fakeToken) WaitTimeout(time.Duration) bool { return t.done }
func (t *fakeToken) Error() error                   { return t.err }

func (t *fakeToken) Done() <-chan struct{} {
	ch := make(chan struct{})
	if t.done {
		close(ch)
	}
	return ch
}

type fakeAPI struct {
	token        *fakeToken
	open         bool
	published    []mqttIface.Message
	disconnected int
}

func (f *fakeAPI) Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token {
	f.published = append(f.published, mqttIface.Message{Topic: topic, QoS: qos, Retain: retained, Payload: payload.([]byte)})
	return f.token
}

func (f *fakeAPI) Disconnect(uint) {
	f.disconnected++
	f.open = false
}

func (f *fakeAPI) IsConnectionOpen() bool { return f.open }

func TestPublishEvent(t *testing.T) {
	api := &fakeAPI{token: &fakeToken{done: true}, open: true}
	c := &mqttClient{API: api, timeout: time.Second}

	err := c.PublishEvent(mqttIface.Message{Topic: "bstat/boiler/state", Payload: []byte(`{}`), QoS: 1})
	require.NoError(t, err)
	require.Len(t, api.published, 1)
	assert.Equal(t, "bstat/boiler/state", api.published[0].Topic)
	assert.Equal(t, byte(1), api.published[0].QoS)
}

func TestPublishEventErrors(t *testing.T) {
	refused := errors.New("not authorized")
	c := &mqttClient{API: &fakeAPI{token: &fakeToken{done: true, err: refused}}, timeout: time.Second}
	assert.ErrorIs(t, c.PublishEvent(mqttIface.Message{Topic: "t"}), refused)

	c = &mqttClient{API: &fakeAPI{token: &fakeToken{}}, timeout: time.Millisecond}
	assert.ErrorIs(t, c.PublishEvent(mqttIface.Message{Topic: "t"}), errPublishTimeout)
}

func TestCloseDisconnectsOnce(t *testing.T) {
	api := &fakeAPI{open: true}
	c := &mqttClient{API: api}
	require.NoError(t, c.Close(250))
	require.NoError(t, c.Close(250))
	assert.Equal(t, 1, api.disconnected)
}

func TestLoadConfigFromEnv(t *testing.T) {
	t.Setenv("MQTT_URL", "tcp://broker:1883")
	t.Setenv("MQTT_CLIENT_ID", "")
	t.Setenv("MQTT_USERNAME", "boiler")
	t.Setenv("MQTT_PASSWORD", "secret")
	t.Setenv("MQTT_TLS", "true")

	cfg, err := LoadConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "tcp://broker:1883", cfg.BrokerURL)
	assert.True(t, strings.HasPrefix(cfg.ClientID, "bstat-"))
	assert.Equal(t, "boiler", cfg.Username)
	assert.True(t, cfg.TLS)

	t.Setenv("MQTT_TLS", "maybe")
	_, err = LoadConfigFromEnv()
	assert.Error(t, err)
}

func TestNewClientRequiresBroker(t *testing.T) {
	_, err := NewClient(Config{})
	assert.Error(t, err)
}
