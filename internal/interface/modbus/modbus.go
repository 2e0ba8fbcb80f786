package modbus

//go:generate mockgen -destination=mock/mock_modbus.go -package=mock github.com/tetragramaton/bstat/internal/interface/modbus Client

// Client is an open Modbus session bound to one slave.
type Client interface {
	API
	Close() error
}

// API is the subset of goburrow/modbus.Client the boiler queries use.
type API interface {
	ReadHoldingRegisters(address, quantity uint16) (results []byte, err error)
	ReadInputRegisters(address, quantity uint16) (results []byte, err error)
	WriteSingleRegister(address, value uint16) (results []byte, err error)
}
