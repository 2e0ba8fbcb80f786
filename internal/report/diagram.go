package report

import (
	"fmt"
	"io"

	"github.com/tetragramaton/bstat/internal/boiler"
)

const diagram = `
    +-------------+(%s)            (%s)
    |             | %s              %s
    |             |---------------------------->
    |             |
    |             |
    | Firing Rate |
    |    %s     |
    |     \|/     | %s
    |             |<----------------------------
    |             |
    +-------------+
`

// Diagram draws the boiler loop with supply on top and return below.
func Diagram(w io.Writer, d *boiler.Diagram, snap *boiler.Snapshot) error {
	temp := func(name string) string {
		r, ok := snap.Reading(name)
		if !ok {
			return fmt.Sprintf("%5s°C", "---")
		}
		return fmt.Sprintf("%5.1f°C", r.Value())
	}
	rate := "---%"
	if r, ok := snap.Reading(d.FiringRate); ok {
		rate = fmt.Sprintf("%3.0f%%", r.Value())
	}
	_, err := fmt.Fprintf(w, diagram,
		temp(d.OutletSetpoint), temp(d.SupplySetpoint),
		temp(d.OutletTemp), temp(d.SupplyTemp),
		rate,
		temp(d.InletTemp),
	)
	return err
}
