package boiler

import (
	"fmt"
	"math"
)

func CToF(c float64) float64 {
	return c*9/5 + 32
}

// Percent converts a target temperature in °F into the percentage written
// to the setpoint register.
func (s *Setpoint) Percent(targetF int) (int, error) {
	sp := int(math.Floor(s.Intercept + s.Slope*float64(targetF)))
	if sp < 0 || sp > 100 {
		return sp, fmt.Errorf("%w: %d°F maps to %d%%, must be within 0-100%% (%d-%d°F)",
			ErrSetpointRange, targetF, sp, s.minTarget(), s.maxTarget())
	}
	return sp, nil
}

// minTarget and maxTarget are the extreme °F targets accepted by Percent.
func (s *Setpoint) minTarget() int {
	return int(math.Ceil(-s.Intercept / s.Slope))
}

func (s *Setpoint) maxTarget() int {
	return int(math.Ceil((101-s.Intercept)/s.Slope)) - 1
}

type Reading struct {
	Field Field
	Raw   int16
}

// Value is the scaled reading: °C for temperatures, percent for percents.
func (r Reading) Value() float64 {
	return float64(r.Raw) / r.Field.divisor()
}

func (r Reading) Fahrenheit() float64 {
	return CToF(r.Value())
}

func (r Reading) On() bool {
	return r.Raw != 0
}

// Label resolves a mode reading.
func (r Reading) Label() string {
	if l, ok := r.Field.Labels[int(r.Raw)]; ok {
		return l
	}
	return fmt.Sprintf("Unknown (%d)", r.Raw)
}
