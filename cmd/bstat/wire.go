//go:build wireinject
// +build wireinject

package main

import (
	"io"

	"github.com/google/wire"
	"github.com/tetragramaton/bstat/internal/config"
)

func InitMainHandler(cfg *config.Config, out io.Writer) (*MainHandler, func(), error) {
	wire.Build(
		NewMainHandler,
		ProvideModbusClient,
		ProvideMqttClient,
	)
	return nil, nil, nil // wire will generate the result
}
