package main

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/tetragramaton/bstat/internal/boiler"
	"github.com/tetragramaton/bstat/internal/ha"
	mqttIface "github.com/tetragramaton/bstat/internal/interface/mqtt"
	"github.com/tetragramaton/bstat/internal/report"
)

// publish sends the discovery configs (when enabled) and then the snapshot.
func (h *MainHandler) publish(snap *boiler.Snapshot, now time.Time) error {
	pub := h.Config.Publish
	if pub.Discovery {
		if err := h.publishDiscovery(snap); err != nil {
			return err
		}
	}
	return h.publishEvent(pub.Topic, report.NewDocument(snap, now.Unix()))
}

func (h *MainHandler) publishEvent(topic string, payload any) error {
	data, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal payload: %w", err)
	}
	return h.send(topic, data, false)
}

func (h *MainHandler) publishDiscovery(snap *boiler.Snapshot) error {
	pub := h.Config.Publish
	model := h.Config.Profile.Description
	if model == "" {
		model = h.Config.Profile.Name
	}
	device := &ha.Device{
		Identifiers: []string{pub.DeviceID},
		Model:       model,
		Name:        pub.DeviceID,
	}
	for _, r := range snap.Readings {
		s := ha.ValueSensor(device, pub.Topic, sensorValue(r.Field))
		data, err := s.Config.Marshal()
		if err != nil {
			return fmt.Errorf("failed to marshal discovery for %s: %w", r.Field.Name, err)
		}
		if err := h.send(s.Topic, data, true); err != nil {
			return err
		}
	}
	return nil
}

func (h *MainHandler) send(topic string, data []byte, retain bool) error {
	err := h.MQTTClient.PublishEvent(mqttIface.Message{
		Topic:   topic,
		Payload: data,
		QoS:     1,
		Retain:  retain,
	})
	if err != nil {
		return fmt.Errorf("publish %s: %w", topic, err)
	}
	logrus.WithFields(logrus.Fields{"topic": topic, "bytes": len(data), "retain": retain}).Debug("published")
	return nil
}

func sensorValue(f boiler.Field) ha.Value {
	v := ha.Value{Key: report.Key(f.Name), Name: f.Name}
	switch f.Kind {
	case boiler.Temperature:
		v.Unit, v.DeviceClass, v.Precision = "°C", "temperature", 1
	case boiler.Percent:
		v.Unit, v.Precision = "%", 1
	}
	return v
}
