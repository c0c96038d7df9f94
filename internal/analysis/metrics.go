// Package analysis computes control-quality metrics from finished
// temperature trajectories.
package analysis

import (
	"errors"
	"math"

	"github.com/JJonas1998/Projekt-9/internal/sim"
)

// ErrEmptyTrajectory is returned when a trajectory holds no samples.
var ErrEmptyTrajectory = errors.New("analysis: empty trajectory")

// DefaultBand is the settling tolerance as a fraction of the setpoint step.
const DefaultBand = 0.02

// riseFraction is how much of the setpoint step counts as "risen".
const riseFraction = 0.9

// Metrics summarizes how well a controlled run tracked its setpoint.
// SettlingTime is only meaningful when Settled is true. RiseTime is
// negative when the trajectory never covers 90% of the setpoint step.
type Metrics struct {
	Settled          bool    `json:"settled"`
	SettlingTime     float64 `json:"settling_time_s"`
	RiseTime         float64 `json:"rise_time_s"`
	OvershootPct     float64 `json:"overshoot_pct"`
	SteadyStateError float64 `json:"steady_state_error_k"`
	Energy           float64 `json:"energy_j"`
	PeakTemperature  float64 `json:"peak_temperature_c"`
	MaxHeaterPower   float64 `json:"max_heater_power_w"`
}

// Engine evaluates trajectories against a setpoint. Band is the settling
// tolerance as a fraction of the initial setpoint step.
type Engine struct {
	Band float64
}

func NewEngine() *Engine {
	return &Engine{Band: DefaultBand}
}

// Analyze computes Metrics for one trajectory. The trajectory is assumed
// to be time ordered, as produced by the simulator.
func (e *Engine) Analyze(trajectory []sim.Sample, setpoint float64) (Metrics, error) {
	if len(trajectory) == 0 {
		return Metrics{}, ErrEmptyTrajectory
	}

	initial := trajectory[0].Temperature
	step := setpoint - initial

	m := Metrics{
		SteadyStateError: setpoint - trajectory[len(trajectory)-1].Temperature,
		PeakTemperature:  initial,
		RiseTime:         -1,
	}

	for _, s := range trajectory {
		if s.Temperature > m.PeakTemperature {
			m.PeakTemperature = s.Temperature
		}
		if s.Heater > m.MaxHeaterPower {
			m.MaxHeaterPower = s.Heater
		}
	}

	m.OvershootPct = overshoot(trajectory, setpoint, step)
	m.Settled, m.SettlingTime = e.settling(trajectory, setpoint, step)
	m.RiseTime = riseTime(trajectory, initial, step)
	m.Energy = heaterEnergy(trajectory)

	return m, nil
}

// overshoot is the worst excursion past the setpoint in the direction of
// the step, as a percentage of the step. Undershoot reports as zero, as
// does a zero step: with no commanded step there is nothing to overshoot.
func overshoot(trajectory []sim.Sample, setpoint, step float64) float64 {
	if step == 0 {
		return 0
	}
	worst := 0.0
	for _, s := range trajectory {
		past := (s.Temperature - setpoint) / step
		if past > worst {
			worst = past
		}
	}
	return worst * 100
}

// settling finds the time after which every sample stays within the
// tolerance band around the setpoint. The band is sized by the setpoint
// step; disturbance-rejection runs start on the setpoint with a zero
// step, so the band falls back to the same fraction of the setpoint
// itself.
func (e *Engine) settling(trajectory []sim.Sample, setpoint, step float64) (bool, float64) {
	width := e.Band * math.Abs(step)
	if width == 0 {
		width = e.Band * math.Abs(setpoint)
	}

	last := -1
	for i := len(trajectory) - 1; i >= 0; i-- {
		if math.Abs(trajectory[i].Temperature-setpoint) > width {
			last = i
			break
		}
	}
	switch {
	case last == -1:
		return true, trajectory[0].Time
	case last == len(trajectory)-1:
		return false, 0
	default:
		return true, trajectory[last+1].Time
	}
}

// riseTime is the first time the temperature covers riseFraction of the
// setpoint step, or -1 when it never does.
func riseTime(trajectory []sim.Sample, initial, step float64) float64 {
	if step == 0 {
		return trajectory[0].Time
	}
	target := initial + riseFraction*step
	for _, s := range trajectory {
		if step > 0 && s.Temperature >= target {
			return s.Time
		}
		if step < 0 && s.Temperature <= target {
			return s.Time
		}
	}
	return -1
}

// heaterEnergy integrates heater power over time with the trapezoid rule.
func heaterEnergy(trajectory []sim.Sample) float64 {
	total := 0.0
	for i := 1; i < len(trajectory); i++ {
		dt := trajectory[i].Time - trajectory[i-1].Time
		total += 0.5 * (trajectory[i].Heater + trajectory[i-1].Heater) * dt
	}
	return total
}
