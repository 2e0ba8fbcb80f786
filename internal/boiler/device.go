package boiler

import (
	"encoding/binary"
	"fmt"

	"github.com/sirupsen/logrus"
	modbusIface "github.com/tetragramaton/bstat/internal/interface/modbus"
)

// Snapshot is the decoded result of one query.
type Snapshot struct {
	Profile  string
	Holding  []int16
	Input    []int16
	Readings []Reading
}

func (s *Snapshot) Reading(name string) (Reading, bool) {
	for _, r := range s.Readings {
		if r.Field.Name == name {
			return r, true
		}
	}
	return Reading{}, false
}

// BlockFunc is called after each successful block read with the decoded
// readings of that block.
type BlockFunc func(kind RegisterKind, regs []int16, readings []Reading)

// SetpointObserver follows a setpoint change as it runs.
type SetpointObserver interface {
	Before(holding []int16)
	Enabled(value uint16)
	Writing(targetF, percent int)
	After(holding []int16, confirm *Reading)
}

type Device struct {
	client  modbusIface.API
	profile *Profile
}

func NewDevice(client modbusIface.API, profile *Profile) *Device {
	return &Device{client: client, profile: profile}
}

func (d *Device) Profile() *Profile {
	return d.profile
}

// Read performs one blocking read of the profile's block of the given kind.
func (d *Device) Read(kind RegisterKind) ([]int16, error) {
	block := d.profile.block(kind)
	log := logrus.WithFields(logrus.Fields{
		"kind":    kind,
		"address": block.Address.String(),
		"count":   block.Count,
	})

	var (
		data []byte
		err  error
	)
	if kind == Holding {
		data, err = d.client.ReadHoldingRegisters(block.Address.Wire(), block.Count)
	} else {
		data, err = d.client.ReadInputRegisters(block.Address.Wire(), block.Count)
	}
	if err != nil {
		return nil, &ReadError{Kind: kind, Address: block.Address, Count: block.Count, Err: err}
	}
	if len(data) != 2*int(block.Count) {
		return nil, &ShortReadError{Kind: kind, Address: block.Address, Want: int(block.Count), Got: len(data) / 2}
	}
	regs := Decode(data)
	log.Debugf("read registers %v", regs)
	return regs, nil
}

// Query reads the holding block then the input block. The first failure
// ends the query; blocks with a zero count are skipped.
func (d *Device) Query(fn BlockFunc) (*Snapshot, error) {
	snap := &Snapshot{Profile: d.profile.Name}
	for _, kind := range []RegisterKind{Holding, Input} {
		if d.profile.block(kind).Count == 0 {
			continue
		}
		regs, err := d.Read(kind)
		if err != nil {
			return snap, err
		}
		readings, err := d.profile.Decode(kind, regs)
		if err != nil {
			return snap, err
		}
		if kind == Holding {
			snap.Holding = regs
		} else {
			snap.Input = regs
		}
		snap.Readings = append(snap.Readings, readings...)
		if fn != nil {
			fn(kind, regs, readings)
		}
	}
	return snap, nil
}

// Write sets one holding register and requires the slave to confirm exactly
// that register and value.
func (d *Device) Write(ref Ref, value uint16) error {
	res, err := d.client.WriteSingleRegister(ref.Wire(), value)
	if err != nil {
		return &WriteError{Address: ref, Value: value, Err: err}
	}
	if len(res) != 2 {
		return &WriteError{Address: ref, Value: value, Confirmed: len(res) / 2}
	}
	if got := binary.BigEndian.Uint16(res); got != value {
		return &WriteError{Address: ref, Value: value, Confirmed: 1,
			Err: fmt.Errorf("slave echoed %d", got)}
	}
	logrus.WithFields(logrus.Fields{"address": ref.String(), "value": value}).Debug("wrote register")
	return nil
}

// ChangeSetpoint enables remote control and writes the percentage derived
// from targetF, then re-reads the holding block. The range check runs again
// here so no out-of-range value reaches the device.
func (d *Device) ChangeSetpoint(targetF int, obs SetpointObserver) ([]int16, error) {
	sp := d.profile.Setpoint
	if sp == nil {
		return nil, fmt.Errorf("%w: %s", ErrNoSetpoint, d.profile.Name)
	}
	percent, err := sp.Percent(targetF)
	if err != nil {
		return nil, err
	}

	before, err := d.Read(Holding)
	if err != nil {
		return nil, err
	}
	obs.Before(before)

	if err := d.Write(sp.EnableRegister, sp.EnableValue); err != nil {
		return nil, err
	}
	obs.Enabled(sp.EnableValue)

	obs.Writing(targetF, percent)
	if err := d.Write(sp.Register, uint16(percent)); err != nil {
		return nil, err
	}

	after, err := d.Read(Holding)
	if err != nil {
		return nil, err
	}
	var confirm *Reading
	if f, ok := d.profile.Field(sp.Confirm); ok && f.Offset < len(after) {
		confirm = &Reading{Field: f, Raw: after[f.Offset]}
	}
	obs.After(after, confirm)
	return after, nil
}
