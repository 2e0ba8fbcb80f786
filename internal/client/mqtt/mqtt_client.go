package mqtt

import (
	"crypto/tls"
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	mqtt "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	mqttIface "github.com/tetragramaton/bstat/internal/interface/mqtt"
)

var errPublishTimeout = errors.New("mqtt publish timed out")

type mqttClient struct {
	mqttIface.API
	timeout time.Duration
}

type Config struct {
	BrokerURL string
	ClientID  string
	Username  string
	Password  string
	TLS       bool
	Timeout   time.Duration
}

// LoadConfigFromEnv reads MQTT_* variables. The broker URL may be empty, in
// which case publishing is disabled by the caller.
func LoadConfigFromEnv() (Config, error) {
	var cfg Config

	cfg.BrokerURL = os.Getenv("MQTT_URL")
	cfg.ClientID = os.Getenv("MQTT_CLIENT_ID")
	if cfg.ClientID == "" {
		cfg.ClientID = "bstat-" + uuid.NewString()
	}
	cfg.Username = os.Getenv("MQTT_USERNAME")
	cfg.Password = os.Getenv("MQTT_PASSWORD")
	cfg.Timeout = 10 * time.Second

	if v := os.Getenv("MQTT_TLS"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return cfg, fmt.Errorf("invalid MQTT_TLS %q: %w", v, err)
		}
		cfg.TLS = b
	}

	return cfg, nil
}

func NewClient(cfg Config) (mqttIface.Client, error) {
	if cfg.BrokerURL == "" {
		return nil, errors.New("missing MQTT broker URL")
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}

	opts := mqtt.NewClientOptions().
		AddBroker(cfg.BrokerURL).
		SetClientID(cfg.ClientID).
		SetKeepAlive(30 * time.Second).
		SetConnectTimeout(5 * time.Second).
		SetPingTimeout(3 * time.Second).
		SetAutoReconnect(false).
		SetOrderMatters(false)

	if cfg.Username != "" {
		opts.SetUsername(cfg.Username)
		opts.SetPassword(cfg.Password)
	}
	if cfg.TLS {
		opts.SetTLSConfig(&tls.Config{InsecureSkipVerify: true})
	}

	client := mqtt.NewClient(opts)
	t := client.Connect()
	if ok := t.WaitTimeout(cfg.Timeout); !ok {
		return nil, fmt.Errorf("mqtt connect %s: timed out", cfg.BrokerURL)
	}
	if err := t.Error(); err != nil {
		return nil, fmt.Errorf("mqtt connect %s: %w", cfg.BrokerURL, err)
	}
	return &mqttClient{
		API:     client,
		timeout: cfg.Timeout,
	}, nil
}

func (c *mqttClient) PublishEvent(message mqttIface.Message) error {
	t := c.API.Publish(message.Topic, message.QoS, message.Retain, message.Payload)
	if !t.WaitTimeout(c.timeout) {
		return fmt.Errorf("%w: %s", errPublishTimeout, message.Topic)
	}
	return t.Error()
}

func (c *mqttClient) Close(quiesce uint) error {
	if c.IsConnectionOpen() {
		c.Disconnect(quiesce)
	}
	return nil
}
