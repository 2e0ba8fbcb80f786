package modbus

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTransport struct {
	connectErr error
	connects   int
	closes     int
}

func (f *fakeTransport) Connect() error {
	f.connects++
	return f.connectErr
}

func (f *fakeTransport) Close() error {
	f.closes++
	return nil
}

type countingAPI struct {
	calls int
}

func (c *countingAPI) ReadHoldingRegisters(address, quantity uint16) ([]byte, error) {
	c.calls++
	return make([]byte, 2*quantity), nil
}

func (c *countingAPI) ReadInputRegisters(address, quantity uint16) ([]byte, error) {
	c.calls++
	return make([]byte, 2*quantity), nil
}

func (c *countingAPI) WriteSingleRegister(address, value uint16) ([]byte, error) {
	c.calls++
	return []byte{byte(value >> 8), byte(value)}, nil
}

func TestOpenConnectFailureClosesOnce(t *testing.T) {
	tr := &fakeTransport{connectErr: errors.New("dial tcp 10.0.0.5:502: connection refused")}
	api := &countingAPI{}

	h, err := open(api, tr, "tcp://10.0.0.5:502")
	require.Error(t, err)
	assert.Nil(t, h)
	assert.ErrorIs(t, err, ErrConnect)
	assert.ErrorIs(t, err, tr.connectErr)
	assert.Contains(t, err.Error(), "tcp://10.0.0.5:502")

	assert.Equal(t, 1, tr.connects)
	assert.Equal(t, 1, tr.closes)
	assert.Zero(t, api.calls)
}

func TestCloseIsIdempotent(t *testing.T) {
	tr := &fakeTransport{}
	h, err := open(&countingAPI{}, tr, "rtu:///dev/ttyUSB0")
	require.NoError(t, err)

	require.NoError(t, h.Close())
	require.NoError(t, h.Close())
	assert.Equal(t, 1, tr.closes)
}

func TestCloseNilHandle(t *testing.T) {
	var h *handler
	assert.NoError(t, h.Close())

	empty := &handler{}
	assert.NoError(t, empty.Close())
}

func TestNewHandlerUnknownMode(t *testing.T) {
	c, err := NewHandler(Config{Mode: "udp"})
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrConnect)
}

func TestTarget(t *testing.T) {
	assert.Equal(t, "tcp://10.0.0.5:502", Config{Mode: "tcp", TCPAddr: "10.0.0.5:502"}.Target())
	assert.Equal(t, "rtu:///dev/ttyUSB0?baud=9600&parity=E",
		Config{Mode: "rtu", Port: "/dev/ttyUSB0", Baud: 9600, Parity: "E"}.Target())
}
