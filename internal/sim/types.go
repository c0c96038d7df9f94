package sim

import (
	"errors"
	"fmt"
	"math"
)

var (
	// ErrInvalidWindow covers non-positive time step or duration and a
	// disturbance scheduled before t=0.
	ErrInvalidWindow = errors.New("sim: invalid simulation window")

	// ErrUnstableTimeStep flags a step size too large for the plant's
	// thermal time constant; explicit Euler would oscillate or diverge.
	ErrUnstableTimeStep = errors.New("sim: time step unstable for thermal time constant")

	// ErrDiverged flags a non-finite temperature during integration.
	ErrDiverged = errors.New("sim: temperature diverged (NaN or Inf)")
)

// Sample is one point of a trajectory: the liquid temperature after the
// step, the heater command and net heat flow applied during it.
type Sample struct {
	Time        float64 `json:"time"`        // s
	Temperature float64 `json:"temperature"` // C
	Heater      float64 `json:"heater"`      // W
	HeatFlow    float64 `json:"heat_flow"`   // W
}

// Disturbance is a single temperature step injected into both
// trajectories at the first simulation step reaching Time.
type Disturbance struct {
	Time      float64 `json:"time" yaml:"time"`           // s
	Magnitude float64 `json:"magnitude" yaml:"magnitude"` // K
}

// Config fixes one simulation window. All fields are in core units:
// seconds and degrees Celsius.
type Config struct {
	InitialTemp float64
	AmbientTemp float64
	Setpoint    float64
	Duration    float64
	Dt          float64
	Disturbance *Disturbance
}

func (c Config) Validate() error {
	if c.Dt <= 0 {
		return fmt.Errorf("%w: dt %.4f s", ErrInvalidWindow, c.Dt)
	}
	if c.Duration <= 0 {
		return fmt.Errorf("%w: duration %.1f s", ErrInvalidWindow, c.Duration)
	}
	if c.Disturbance != nil && c.Disturbance.Time < 0 {
		return fmt.Errorf("%w: disturbance at %.1f s", ErrInvalidWindow, c.Disturbance.Time)
	}
	return nil
}

// Steps returns the number of integration steps in the window, rounded
// so binary round-off in duration/dt cannot drop a step.
func (c Config) Steps() int {
	return int(math.Round(c.Duration / c.Dt))
}

// Result holds the two trajectories of one run. Both share the time
// base, initial temperature and disturbance schedule; only the
// controlled one feeds heater power into the heat balance.
type Result struct {
	Controlled   []Sample `json:"controlled"`
	Uncontrolled []Sample `json:"uncontrolled"`
}
