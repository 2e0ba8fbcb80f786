// Package config resolves command-line options and a device profile into
// the settings of one run.
package config

import (
	"errors"
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/tetragramaton/bstat/internal/boiler"
)

var (
	ErrNoTransport    = errors.New("must specify either ip address or serial port")
	ErrBothTransports = errors.New("must specify only one of ip address or serial port")
)

const DefaultPort = 502

// Options carries raw flag values. Pointer fields are nil when the flag was
// not given, so the profile default applies.
type Options struct {
	Serial      string
	IP          string
	Port        *int
	Target      *int
	Profile     string
	ProfileFile string

	Baud     *int
	Parity   *string
	DataBits *int
	StopBits *int
	SlaveID  *int
	Timeout  time.Duration

	JSON bool

	MQTTURL     string
	MQTTTopic   string
	DeviceID    string
	HADiscovery bool
}

type Link struct {
	Baud     int    `validate:"min=1"`
	Parity   string `validate:"oneof=N E O"`
	DataBits int    `validate:"min=5,max=8"`
	StopBits int    `validate:"oneof=1 2"`
}

type Publish struct {
	URL       string
	Topic     string `validate:"required_with=URL"`
	DeviceID  string `validate:"required_with=URL"`
	Discovery bool
}

func (p Publish) Enabled() bool {
	return p.URL != ""
}

type Config struct {
	Mode    string `validate:"oneof=rtu tcp"`
	Serial  string
	IP      string `validate:"omitempty,ip|hostname"`
	Port    int    `validate:"min=1,max=65535"`
	Link    Link
	SlaveID int           `validate:"min=1,max=247"`
	Timeout time.Duration `validate:"min=0"`

	Profile *boiler.Profile `validate:"required"`
	// Target is the requested setpoint in °F; Percent is what gets written.
	Target  *int
	Percent int

	JSON    bool
	Publish Publish
}

// TCPAddr is ip:port for the TCP transport.
func (c *Config) TCPAddr() string {
	return net.JoinHostPort(c.IP, strconv.Itoa(c.Port))
}

var validate = validator.New()

// Resolve checks the options and merges them over the selected profile. It
// performs no device I/O.
func Resolve(o Options) (*Config, error) {
	switch {
	case o.Serial == "" && o.IP == "":
		return nil, ErrNoTransport
	case o.Serial != "" && o.IP != "":
		return nil, ErrBothTransports
	}

	profile, err := loadProfile(o)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		Mode:    "rtu",
		Serial:  o.Serial,
		IP:      o.IP,
		Port:    DefaultPort,
		Profile: profile,
		Link: Link{
			Baud:     profile.Serial.Baud,
			Parity:   profile.Serial.Parity,
			DataBits: profile.Serial.DataBits,
			StopBits: profile.Serial.StopBits,
		},
		SlaveID: int(profile.SlaveID),
		Timeout: o.Timeout,
		JSON:    o.JSON,
		Publish: Publish{
			URL:       o.MQTTURL,
			Topic:     o.MQTTTopic,
			DeviceID:  o.DeviceID,
			Discovery: o.HADiscovery,
		},
	}
	if o.IP != "" {
		cfg.Mode = "tcp"
	}
	if o.Port != nil {
		cfg.Port = *o.Port
	}
	if cfg.Publish.Topic == "" && cfg.Publish.DeviceID != "" {
		cfg.Publish.Topic = "bstat/" + cfg.Publish.DeviceID + "/state"
	}
	if o.Baud != nil {
		cfg.Link.Baud = *o.Baud
	}
	if o.Parity != nil {
		cfg.Link.Parity = *o.Parity
	}
	if o.DataBits != nil {
		cfg.Link.DataBits = *o.DataBits
	}
	if o.StopBits != nil {
		cfg.Link.StopBits = *o.StopBits
	}
	if o.SlaveID != nil {
		cfg.SlaveID = *o.SlaveID
	}

	if o.Target != nil {
		if profile.Setpoint == nil {
			return nil, fmt.Errorf("%w: %s", boiler.ErrNoSetpoint, profile.Name)
		}
		percent, err := profile.Setpoint.Percent(*o.Target)
		if err != nil {
			return nil, fmt.Errorf("invalid setpoint (%d): %w", *o.Target, err)
		}
		cfg.Target = o.Target
		cfg.Percent = percent
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func loadProfile(o Options) (*boiler.Profile, error) {
	if o.ProfileFile != "" {
		return boiler.LoadProfile(o.ProfileFile)
	}
	name := o.Profile
	if name == "" {
		name = "prestige"
	}
	return boiler.Lookup(name)
}
