package mqtt

import mqtt "github.com/eclipse/paho.mqtt.golang"

type Message struct {
	Topic   string `json:"topic"`
	Payload []byte `json:"payload"`
	QoS     byte   `json:"qos"`
	Retain  bool   `json:"retain"`
}

type Client interface {
	PublishEvent(message Message) error
	Close(quiesce uint) error
}

// API is the part of paho's mqtt.Client the publisher drives.
type API interface {
	Publish(topic string, qos byte, retained bool, payload interface{}) mqtt.Token
	Disconnect(quiesce uint)
	IsConnectionOpen() bool
}
