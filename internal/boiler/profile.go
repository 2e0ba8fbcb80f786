// Package boiler holds the per-model register maps of supported boiler
// controllers and the read/write sequences run against them.
package boiler

import (
	"fmt"
	"sort"

	"github.com/go-playground/validator/v10"
)

// Kind says how a raw register value is presented.
type Kind string

const (
	Temperature Kind = "temperature" // raw / divisor in °C
	Percent     Kind = "percent"
	Raw         Kind = "raw"
	Flag        Kind = "flag" // non-zero means on
	Mode        Kind = "mode" // raw value looked up in Labels
)

type Field struct {
	Name    string         `yaml:"name" json:"name" validate:"required"`
	Block   RegisterKind   `yaml:"block" json:"block" validate:"oneof=holding input"`
	Offset  int            `yaml:"offset" json:"offset" validate:"min=0"`
	Kind    Kind           `yaml:"kind" json:"kind" validate:"oneof=temperature percent raw flag mode"`
	Divisor float64        `yaml:"divisor,omitempty" json:"divisor,omitempty" validate:"min=0"`
	Labels  map[int]string `yaml:"labels,omitempty" json:"labels,omitempty"`
}

func (f Field) divisor() float64 {
	if f.Divisor == 0 {
		return 1
	}
	return f.Divisor
}

type SerialDefaults struct {
	Baud     int    `yaml:"baud" validate:"min=1"`
	Parity   string `yaml:"parity" validate:"oneof=N E O"`
	DataBits int    `yaml:"data_bits" validate:"min=5,max=8"`
	StopBits int    `yaml:"stop_bits" validate:"oneof=1 2"`
}

// Setpoint describes how a target temperature in °F is written. The
// controller takes a percentage that its BMS settings map onto a setpoint
// range, so percent = floor(Intercept + Slope*°F).
type Setpoint struct {
	EnableRegister Ref     `yaml:"enable_register"`
	EnableValue    uint16  `yaml:"enable_value"`
	Register       Ref     `yaml:"register"`
	Slope          float64 `yaml:"slope" validate:"ne=0"`
	Intercept      float64 `yaml:"intercept"`
	// Confirm names the holding field printed after the write.
	Confirm string `yaml:"confirm"`
}

// Diagram names the fields placed on the loop schematic.
type Diagram struct {
	OutletSetpoint string `yaml:"outlet_setpoint"`
	OutletTemp     string `yaml:"outlet_temp"`
	SupplySetpoint string `yaml:"supply_setpoint"`
	SupplyTemp     string `yaml:"supply_temp"`
	InletTemp      string `yaml:"inlet_temp"`
	FiringRate     string `yaml:"firing_rate"`
}

func (d *Diagram) names() []string {
	return []string{d.OutletSetpoint, d.OutletTemp, d.SupplySetpoint, d.SupplyTemp, d.InletTemp, d.FiringRate}
}

type Profile struct {
	Name        string         `yaml:"name" validate:"required"`
	Description string         `yaml:"description,omitempty"`
	Serial      SerialDefaults `yaml:"serial"`
	SlaveID     byte           `yaml:"slave_id" validate:"min=1,max=247"`
	Holding     Block          `yaml:"holding"`
	Input       Block          `yaml:"input"`
	Fields      []Field        `yaml:"fields" validate:"dive"`
	Setpoint    *Setpoint      `yaml:"setpoint,omitempty" validate:"omitempty"`
	Diagram     *Diagram       `yaml:"diagram,omitempty"`
	DumpHolding bool           `yaml:"dump_holding,omitempty"`
}

var validate = validator.New()

// Validate checks struct constraints and that every field, diagram slot and
// confirm name resolves inside the profile's blocks.
func (p *Profile) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("profile %q: %w", p.Name, err)
	}
	for _, f := range p.Fields {
		block := p.block(f.Block)
		if f.Offset >= int(block.Count) {
			return fmt.Errorf("profile %q: field %q offset %d outside %d %s registers", p.Name, f.Name, f.Offset, block.Count, f.Block)
		}
	}
	if p.Diagram != nil {
		for _, name := range p.Diagram.names() {
			if _, ok := p.Field(name); !ok {
				return fmt.Errorf("profile %q: diagram: %w %q", p.Name, ErrUnknownField, name)
			}
		}
	}
	if p.Setpoint != nil && p.Setpoint.Confirm != "" {
		f, ok := p.Field(p.Setpoint.Confirm)
		if !ok || f.Block != Holding {
			return fmt.Errorf("profile %q: setpoint confirm: %w %q", p.Name, ErrUnknownField, p.Setpoint.Confirm)
		}
	}
	return nil
}

func (p *Profile) block(kind RegisterKind) Block {
	if kind == Holding {
		return p.Holding
	}
	return p.Input
}

func (p *Profile) Field(name string) (Field, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f, true
		}
	}
	return Field{}, false
}

// Decode maps the registers of one block onto the profile's fields, in
// profile order.
func (p *Profile) Decode(kind RegisterKind, regs []int16) ([]Reading, error) {
	var readings []Reading
	for _, f := range p.Fields {
		if f.Block != kind {
			continue
		}
		if f.Offset >= len(regs) {
			return nil, fmt.Errorf("field %q offset %d outside %d %s registers", f.Name, f.Offset, len(regs), kind)
		}
		readings = append(readings, Reading{Field: f, Raw: regs[f.Offset]})
	}
	return readings, nil
}

var builtins = map[string]func() *Profile{
	"prestige": prestige,
	"knight":   knight,
}

// Profiles lists the built-in profile names.
func Profiles() []string {
	names := make([]string, 0, len(builtins))
	for name := range builtins {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Lookup returns a fresh copy of a built-in profile.
func Lookup(name string) (*Profile, error) {
	fn, ok := builtins[name]
	if !ok {
		return nil, fmt.Errorf("%w %q (known: %v)", ErrUnknownProfile, name, Profiles())
	}
	return fn(), nil
}

func temp(block RegisterKind, offset int, name string, divisor float64) Field {
	return Field{Name: name, Block: block, Offset: offset, Kind: Temperature, Divisor: divisor}
}

func pct(block RegisterKind, offset int, name string) Field {
	return Field{Name: name, Block: block, Offset: offset, Kind: Percent}
}

// Triangle Tube Solo Prestige.
func prestige() *Profile {
	return &Profile{
		Name:        "prestige",
		Description: "Triangle Tube Solo Prestige",
		Serial:      SerialDefaults{Baud: 38400, Parity: "N", DataBits: 8, StopBits: 1},
		SlaveID:     1,
		Holding:     Block{Address: 0x40000, Count: 7},
		Input:       Block{Address: 0x30003, Count: 9},
		Fields: []Field{
			temp(Holding, 6, "System Supply Temp", 10),
			temp(Input, 0, "System Supply Setp", 2),
			pct(Input, 3, "Cascade Current Power"),
			temp(Input, 4, "Outlet Setp", 10),
			temp(Input, 5, "Outlet Temp", 10),
			temp(Input, 6, "Inlet Temp", 10),
			temp(Input, 7, "Flue Temp", 10),
			pct(Input, 8, "Firing Rate"),
		},
		Diagram: &Diagram{
			OutletSetpoint: "Outlet Setp",
			OutletTemp:     "Outlet Temp",
			SupplySetpoint: "System Supply Setp",
			SupplyTemp:     "System Supply Temp",
			InletTemp:      "Inlet Temp",
			FiringRate:     "Firing Rate",
		},
	}
}

// Lochinvar Knight (WHN series) behind a SYNC/BMS Modbus card.
func knight() *Profile {
	return &Profile{
		Name:        "knight",
		Description: "Lochinvar Knight WHN",
		Serial:      SerialDefaults{Baud: 9600, Parity: "E", DataBits: 8, StopBits: 1},
		SlaveID:     1,
		Holding:     Block{Address: 0x40000, Count: 7},
		Input:       Block{Address: 0x30003, Count: 9},
		Fields: []Field{
			{Name: "Operating Mode", Block: Holding, Offset: 0, Kind: Mode, Labels: map[int]string{
				0:  "Initialization",
				1:  "Standby",
				2:  "CH Demand",
				3:  "DHW Demand",
				4:  "CH & DHW Demand",
				5:  "Manual Operation",
				6:  "Shutdown",
				7:  "Error",
				8:  "Manual Operation 2",
				9:  "Freeze Protection",
				10: "Sensor Test",
			}},
			{Name: "Cascade Mode", Block: Holding, Offset: 1, Kind: Mode, Labels: map[int]string{
				0: "Single Boiler",
				1: "Manager",
				2: "Member",
			}},
			temp(Holding, 6, "System Supply Temp", 10),
			{Name: "Alarm Status", Block: Input, Offset: 0, Kind: Flag},
			{Name: "Pump Status", Block: Input, Offset: 1, Kind: Flag},
			{Name: "Flame Status", Block: Input, Offset: 2, Kind: Flag},
			pct(Input, 3, "Cascade Current Power"),
			temp(Input, 5, "Outlet Temp", 10),
			temp(Input, 6, "Inlet Temp", 10),
			temp(Input, 7, "Flue Temp", 10),
			pct(Input, 8, "Lead Firing Rate"),
		},
		Setpoint: &Setpoint{
			EnableRegister: 0x40000,
			EnableValue:    4,
			Register:       0x40002,
			Slope:          1.7363171,
			Intercept:      -101.4856,
			Confirm:        "System Supply Temp",
		},
		DumpHolding: true,
	}
}
