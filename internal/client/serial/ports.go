// Package serial enumerates local serial ports for --list-ports.
package serial

import (
	"fmt"
	"sort"

	"go.bug.st/serial/enumerator"
)

type Port struct {
	Name    string
	USB     bool
	VID     string
	PID     string
	Product string
}

func (p Port) String() string {
	if !p.USB {
		return p.Name
	}
	if p.Product != "" {
		return fmt.Sprintf("%s (USB %s:%s %s)", p.Name, p.VID, p.PID, p.Product)
	}
	return fmt.Sprintf("%s (USB %s:%s)", p.Name, p.VID, p.PID)
}

var detailedPorts = enumerator.GetDetailedPortsList

// List returns the serial ports visible to the OS, sorted by name.
func List() ([]Port, error) {
	details, err := detailedPorts()
	if err != nil {
		return nil, fmt.Errorf("list serial ports: %w", err)
	}
	ports := make([]Port, 0, len(details))
	for _, d := range details {
		ports = append(ports, Port{
			Name:    d.Name,
			USB:     d.IsUSB,
			VID:     d.VID,
			PID:     d.PID,
			Product: d.Product,
		})
	}
	sort.Slice(ports, func(i, j int) bool {
		return ports[i].Name < ports[j].Name
	})
	return ports, nil
}
