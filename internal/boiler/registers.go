package boiler

import (
	"encoding/binary"
	"fmt"
)

// RegisterKind selects the Modbus address space of a block or field.
type RegisterKind string

const (
	Holding RegisterKind = "holding"
	Input   RegisterKind = "input"
)

// Ref is a Modicon-style register reference such as 0x40006. Only the low
// 16 bits go on the wire.
type Ref uint32

func (r Ref) Wire() uint16 {
	return uint16(r & 0xFFFF)
}

func (r Ref) String() string {
	return fmt.Sprintf("%#x", uint32(r))
}

// Label is the 1-based decimal register name used by vendor manuals,
// e.g. Reg40001 for the first holding register.
func (k RegisterKind) Label(wire uint16) string {
	prefix := 3
	if k == Holding {
		prefix = 4
	}
	return fmt.Sprintf("Reg%d%04d", prefix, uint32(wire)+1)
}

// Block is one contiguous read.
type Block struct {
	Address Ref    `yaml:"address" json:"address"`
	Count   uint16 `yaml:"count" json:"count" validate:"max=125"`
}

// Decode converts a big-endian register payload into signed values.
func Decode(data []byte) []int16 {
	regs := make([]int16, len(data)/2)
	for i := range regs {
		regs[i] = int16(binary.BigEndian.Uint16(data[2*i:]))
	}
	return regs
}
