// Package control implements the heater-side PID regulator.
package control

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidTimeStep = errors.New("control: time step must be positive")
	ErrInvalidParams   = errors.New("control: invalid controller parameters")
)

// Params are the fixed controller settings for one run. Gains may be
// zero; the output is clamped to [OutputMin, OutputMax].
type Params struct {
	Kp        float64
	Ki        float64
	Kd        float64
	OutputMin float64
	OutputMax float64
}

func (p Params) Validate() error {
	if p.OutputMax <= p.OutputMin {
		return fmt.Errorf("%w: output bounds [%.1f, %.1f]", ErrInvalidParams, p.OutputMin, p.OutputMax)
	}
	return nil
}

// PID holds the mutable controller state for exactly one run. Instances
// must not be shared across concurrent runs; Reset returns one to its
// initial state.
type PID struct {
	params   Params
	integral float64
	prevErr  float64
}

func NewPID(params Params) (*PID, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return &PID{params: params}, nil
}

// Params returns the immutable controller settings.
func (p *PID) Params() Params { return p.params }

// Compute returns the clamped actuator command for one control step.
// The integral accumulator is frozen while the raw output saturates the
// bound in the error's direction, so it cannot wind up during prolonged
// saturation.
func (p *PID) Compute(err, dt float64) (float64, error) {
	if dt <= 0 {
		return 0, fmt.Errorf("%w: dt=%f", ErrInvalidTimeStep, dt)
	}

	prop := p.params.Kp * err
	deriv := p.params.Kd * (err - p.prevErr) / dt
	accum := p.integral + err*dt

	raw := prop + p.params.Ki*accum + deriv

	windingUp := (raw > p.params.OutputMax && err > 0) || (raw < p.params.OutputMin && err < 0)
	if !windingUp {
		p.integral = accum
	}
	p.prevErr = err

	return clamp(raw, p.params.OutputMin, p.params.OutputMax), nil
}

// Integral exposes the accumulator, mainly for tests and diagnostics.
func (p *PID) Integral() float64 { return p.integral }

// Reset zeroes the accumulator and the stored error. Call it before
// every independent run; reusing stale state skews the first steps of
// the next trajectory.
func (p *PID) Reset() {
	p.integral = 0
	p.prevErr = 0
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
