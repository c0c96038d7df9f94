package sim

import (
	"context"
	"fmt"
	"math"

	"github.com/JJonas1998/Projekt-9/internal/control"
	"github.com/JJonas1998/Projekt-9/internal/reactor"
)

// stabilityMargin bounds dt to a fraction of the thermal time constant
// m*cp/(U*A). Explicit Euler on the cooling equation is stable up to
// 2*tau; half of tau keeps the discretization error small as well.
const stabilityMargin = 0.5

// Simulator integrates the reactor heat balance with explicit Euler,
// once with the controller in the loop and once without.
type Simulator struct {
	model *reactor.Model
	pid   *control.PID
}

func New(model *reactor.Model, pid *control.PID) *Simulator {
	return &Simulator{model: model, pid: pid}
}

// Run produces the controlled and uncontrolled trajectories for one
// window. It validates geometry and window before the first step,
// rejects step sizes beyond the stability margin, and resets the
// controller so stale accumulator state can never leak between runs.
// Identical inputs produce identical trajectories.
func (s *Simulator) Run(ctx context.Context, geo reactor.Geometry, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := geo.Validate(); err != nil {
		return nil, err
	}

	if err := s.checkStability(geo, cfg); err != nil {
		return nil, err
	}

	s.pid.Reset()
	controlled, err := s.runPass(ctx, geo, cfg, true)
	if err != nil {
		return nil, err
	}

	uncontrolled, err := s.runPass(ctx, geo, cfg, false)
	if err != nil {
		return nil, err
	}

	return &Result{Controlled: controlled, Uncontrolled: uncontrolled}, nil
}

func (s *Simulator) checkStability(geo reactor.Geometry, cfg Config) error {
	capacity, err := s.model.HeatCapacity(cfg.InitialTemp, geo)
	if err != nil {
		return err
	}
	ua, err := s.model.Conductance(cfg.InitialTemp, geo)
	if err != nil {
		return err
	}

	tau := capacity / ua
	if cfg.Dt > stabilityMargin*tau {
		return fmt.Errorf("%w: dt %.1f s exceeds %.1f s (tau %.1f s)",
			ErrUnstableTimeStep, cfg.Dt, stabilityMargin*tau, tau)
	}
	return nil
}

func (s *Simulator) runPass(ctx context.Context, geo reactor.Geometry, cfg Config, withController bool) ([]Sample, error) {
	steps := cfg.Steps()
	samples := make([]Sample, 0, steps+1)
	samples = append(samples, Sample{Time: 0, Temperature: cfg.InitialTemp})

	temp := cfg.InitialTemp
	t := 0.0
	disturbed := cfg.Disturbance == nil

	for i := 0; i < steps; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}

		if !disturbed && t >= cfg.Disturbance.Time {
			temp += cfg.Disturbance.Magnitude
			disturbed = true
		}

		power := 0.0
		if withController {
			u, err := s.pid.Compute(cfg.Setpoint-temp, cfg.Dt)
			if err != nil {
				return nil, err
			}
			power = u
		}

		flow, err := s.model.NetHeatFlow(temp, cfg.AmbientTemp, geo, power)
		if err != nil {
			return nil, fmt.Errorf("step %d (t=%.1f s): %w", i, t, err)
		}
		capacity, err := s.model.HeatCapacity(temp, geo)
		if err != nil {
			return nil, fmt.Errorf("step %d (t=%.1f s): %w", i, t, err)
		}

		temp += flow * cfg.Dt / capacity
		t += cfg.Dt

		if math.IsNaN(temp) || math.IsInf(temp, 0) {
			return nil, fmt.Errorf("%w: step %d (t=%.1f s)", ErrDiverged, i, t)
		}

		samples = append(samples, Sample{Time: t, Temperature: temp, Heater: power, HeatFlow: flow})
	}

	return samples, nil
}
