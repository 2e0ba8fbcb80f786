// Package report renders boiler snapshots as text or JSON.
package report

import (
	"fmt"
	"io"

	"github.com/tetragramaton/bstat/internal/boiler"
)

func Line(r boiler.Reading) string {
	name := r.Field.Name
	switch r.Field.Kind {
	case boiler.Temperature:
		return fmt.Sprintf("%s: %.1f°C %.1f°F", name, r.Value(), r.Fahrenheit())
	case boiler.Percent:
		return fmt.Sprintf("%s: %.1f%%", name, r.Value())
	case boiler.Flag:
		if r.On() {
			return name + ": on"
		}
		return name + ": off"
	case boiler.Mode:
		return fmt.Sprintf("%s: %d (%s)", name, r.Raw, r.Label())
	default:
		return fmt.Sprintf("%s: %d", name, r.Raw)
	}
}

// Celsius renders a temperature without the Fahrenheit column.
func Celsius(r boiler.Reading) string {
	return fmt.Sprintf("%s: %.1f°C", r.Field.Name, r.Value())
}

func Readings(w io.Writer, readings []boiler.Reading) error {
	for _, r := range readings {
		if _, err := fmt.Fprintln(w, Line(r)); err != nil {
			return err
		}
	}
	return nil
}

// Dump prints each register of a block under its vendor name.
func Dump(w io.Writer, kind boiler.RegisterKind, block boiler.Block, regs []int16) error {
	for i, v := range regs {
		if _, err := fmt.Fprintf(w, "%s: %d\n", kind.Label(block.Address.Wire()+uint16(i)), v); err != nil {
			return err
		}
	}
	return nil
}
