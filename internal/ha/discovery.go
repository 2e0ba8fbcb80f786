// Package ha builds Home Assistant MQTT discovery messages for boiler
// readings.
package ha

import (
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
)

const discoveryPrefix = "homeassistant"

type Device struct {
	Identifiers []string `json:"identifiers,omitempty"`
	Model       string   `json:"model,omitempty"`
	Name        string   `json:"name,omitempty"`
}

type SensorConfig struct {
	Name        string  `json:"name"`
	UniqueID    string  `json:"unique_id"`
	StateTopic  string  `json:"state_topic"`
	ValueTpl    string  `json:"value_template,omitempty"`
	DeviceClass string  `json:"device_class,omitempty"`
	StateClass  string  `json:"state_class,omitempty"`
	UnitOfMeas  string  `json:"unit_of_measurement,omitempty"`
	Device      *Device `json:"device,omitempty"`
	QoS         int     `json:"qos,omitempty"`
	// Extra keys are merged into the top-level object.
	Extra map[string]any `json:"-"`
}

func (c *SensorConfig) Marshal() ([]byte, error) {
	type alias SensorConfig
	b, err := json.Marshal(alias(*c))
	if err != nil || len(c.Extra) == 0 {
		return b, err
	}
	var base map[string]any
	if err := json.Unmarshal(b, &base); err != nil {
		return nil, err
	}
	for k, v := range c.Extra {
		if _, taken := base[k]; !taken {
			base[k] = v
		}
	}
	return json.Marshal(base)
}

// SensorTopic is the retained config topic of one sensor of a node.
func SensorTopic(node, key string) string {
	return fmt.Sprintf("%s/sensor/%s/%s/config", discoveryPrefix, node, key)
}

var unsafe = regexp.MustCompile(`[^a-zA-Z0-9_]+`)

func Sanitize(s string) string {
	return strings.ToLower(unsafe.ReplaceAllString(s, "_"))
}

// Value describes one reading inside the published state document.
type Value struct {
	Key         string // key under "values" in the state JSON
	Name        string
	Unit        string
	DeviceClass string
	// Precision sets suggested_display_precision when positive.
	Precision int
}

// Sensor is one retained discovery message.
type Sensor struct {
	Topic  string
	Config *SensorConfig
}

// ValueSensor describes a value read as value_json.values.<key> from
// stateTopic.
func ValueSensor(device *Device, stateTopic string, v Value) Sensor {
	node := Sanitize(device.Name)
	cfg := &SensorConfig{
		Name:        v.Name,
		UniqueID:    node + "_" + v.Key,
		StateTopic:  stateTopic,
		ValueTpl:    fmt.Sprintf("{{ value_json.values.%s }}", v.Key),
		DeviceClass: v.DeviceClass,
		UnitOfMeas:  v.Unit,
		Device:      device,
		QoS:         1,
	}
	if v.Unit != "" {
		cfg.StateClass = "measurement"
	}
	if v.Precision > 0 {
		cfg.Extra = map[string]any{"suggested_display_precision": v.Precision}
	}
	return Sensor{Topic: SensorTopic(node, v.Key), Config: cfg}
}
