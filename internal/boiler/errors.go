package boiler

import (
	"errors"
	"fmt"
)

var (
	ErrSetpointRange  = errors.New("setpoint out of range")
	ErrNoSetpoint     = errors.New("profile has no setpoint registers")
	ErrUnknownProfile = errors.New("unknown profile")
	ErrUnknownField   = errors.New("unknown field")
)

// ReadError reports a failed block read.
type ReadError struct {
	Kind    RegisterKind
	Address Ref
	Count   uint16
	Err     error
}

func (e *ReadError) Error() string {
	return fmt.Sprintf("Modbus read of %d %s regs at addr %s failed: %v", e.Count, e.Kind, e.Address, e.Err)
}

func (e *ReadError) Unwrap() error { return e.Err }

// ShortReadError reports a read that returned fewer (or more) registers than
// requested.
type ShortReadError struct {
	Kind    RegisterKind
	Address Ref
	Want    int
	Got     int
}

func (e *ShortReadError) Error() string {
	return fmt.Sprintf("Modbus read of %d %s regs at addr %s returned %d", e.Want, e.Kind, e.Address, e.Got)
}

// WriteError reports a failed or unconfirmed single-register write.
type WriteError struct {
	Address   Ref
	Value     uint16
	Confirmed int
	Err       error
}

func (e *WriteError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("Modbus write of %d to %s failed: %v", e.Value, e.Address, e.Err)
	}
	return fmt.Sprintf("Modbus write of %d to %s failed: %d registers confirmed", e.Value, e.Address, e.Confirmed)
}

func (e *WriteError) Unwrap() error { return e.Err }
