package modbus

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/goburrow/modbus"
	modbusIface "github.com/tetragramaton/bstat/internal/interface/modbus"
)

// ErrConnect marks failures to construct or open the Modbus session.
var ErrConnect = errors.New("modbus_connect failed")

type Config struct {
	Mode string // "rtu" or "tcp"

	// RTU
	Port     string // serial device, e.g. /dev/ttyUSB0
	Baud     int
	DataBits int
	Parity   string // "N","E","O"
	StopBits int

	// TCP
	TCPAddr string // "192.168.1.10:502"

	SlaveID byte
	Timeout time.Duration

	// Logger receives goburrow's frame traces when set.
	Logger *log.Logger
}

// Target describes the endpoint for log and error messages.
func (c Config) Target() string {
	if c.Mode == "tcp" {
		return "tcp://" + c.TCPAddr
	}
	return fmt.Sprintf("rtu://%s?baud=%d&parity=%s", c.Port, c.Baud, c.Parity)
}

type transporter interface {
	Connect() error
	Close() error
}

type handler struct {
	modbusIface.API
	transport transporter
	closed    bool
}

func NewHandler(cfg Config) (modbusIface.Client, error) {
	var (
		h   *handler
		err error
	)
	switch cfg.Mode {
	case "tcp":
		th := modbus.NewTCPClientHandler(cfg.TCPAddr)
		th.SlaveId = cfg.SlaveID
		if cfg.Timeout > 0 {
			th.Timeout = cfg.Timeout
		}
		th.Logger = cfg.Logger
		h, err = open(modbus.NewClient(th), th, cfg.Target())
	case "rtu":
		rh := modbus.NewRTUClientHandler(cfg.Port)
		rh.BaudRate = cfg.Baud
		rh.DataBits = cfg.DataBits
		rh.Parity = cfg.Parity
		rh.StopBits = cfg.StopBits
		rh.SlaveId = cfg.SlaveID
		if cfg.Timeout > 0 {
			rh.Timeout = cfg.Timeout
		}
		rh.Logger = cfg.Logger
		h, err = open(modbus.NewClient(rh), rh, cfg.Target())
	default:
		return nil, fmt.Errorf("%w: unknown mode %q", ErrConnect, cfg.Mode)
	}
	if err != nil {
		return nil, err
	}
	return h, nil
}

// open connects t. On failure the transport is closed before returning so
// the caller never holds a half-open session.
func open(api modbusIface.API, t transporter, target string) (*handler, error) {
	h := &handler{API: api, transport: t}
	if err := t.Connect(); err != nil {
		_ = h.Close()
		return nil, fmt.Errorf("%w (%s): %w", ErrConnect, target, err)
	}
	return h, nil
}

// Close releases the transport once; later calls are no-ops.
func (h *handler) Close() error {
	if h == nil || h.closed || h.transport == nil {
		return nil
	}
	h.closed = true
	return h.transport.Close()
}
