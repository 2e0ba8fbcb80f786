package main

import (
	"log"

	"github.com/sirupsen/logrus"
	"github.com/tetragramaton/bstat/internal/client/modbus"
	"github.com/tetragramaton/bstat/internal/client/mqtt"
	"github.com/tetragramaton/bstat/internal/config"
	modbusIface "github.com/tetragramaton/bstat/internal/interface/modbus"
	mqttIface "github.com/tetragramaton/bstat/internal/interface/mqtt"
)

func ProvideModbusClient(cfg *config.Config) (modbusIface.Client, func(), error) {
	mc := modbus.Config{
		Mode:     cfg.Mode,
		Port:     cfg.Serial,
		Baud:     cfg.Link.Baud,
		DataBits: cfg.Link.DataBits,
		Parity:   cfg.Link.Parity,
		StopBits: cfg.Link.StopBits,
		TCPAddr:  cfg.TCPAddr(),
		SlaveID:  byte(cfg.SlaveID),
		Timeout:  cfg.Timeout,
	}
	if logrus.IsLevelEnabled(logrus.TraceLevel) {
		mc.Logger = log.New(logrus.StandardLogger().WriterLevel(logrus.TraceLevel), "modbus: ", 0)
	}

	client, err := modbus.NewHandler(mc)
	if err != nil {
		return nil, nil, err
	}
	logrus.WithField("target", mc.Target()).Debug("modbus connected")

	return client, func() {
		if err := client.Close(); err != nil {
			logrus.WithError(err).Warn("modbus client close")
		}
	}, nil
}

// ProvideMqttClient returns a nil client when publishing is disabled or the
// run changes the setpoint, which publishes nothing.
func ProvideMqttClient(cfg *config.Config) (mqttIface.Client, func(), error) {
	if !cfg.Publish.Enabled() || cfg.Target != nil {
		return nil, func() {}, nil
	}

	mc, err := mqtt.LoadConfigFromEnv()
	if err != nil {
		return nil, nil, err
	}
	mc.BrokerURL = cfg.Publish.URL

	client, err := mqtt.NewClient(mc)
	if err != nil {
		return nil, nil, err
	}
	logrus.WithField("broker", mc.BrokerURL).Debug("mqtt connected")

	return client, func() {
		if err := client.Close(250); err != nil {
			logrus.WithError(err).Warn("mqtt client close")
		}
	}, nil
}
