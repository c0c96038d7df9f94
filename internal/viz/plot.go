// Package viz renders stored trajectories as terminal charts.
package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/JJonas1998/Projekt-9/internal/sim"
)

const (
	plotWidth  = 80
	plotHeight = 10
)

// Downsample reduces a trajectory to at most points values so charts
// stay readable for long runs.
func Downsample(samples []sim.Sample, pick func(sim.Sample) float64, points int) []float64 {
	if points <= 0 || len(samples) == 0 {
		return nil
	}
	if len(samples) <= points {
		out := make([]float64, len(samples))
		for i, s := range samples {
			out[i] = pick(s)
		}
		return out
	}
	if points == 1 {
		return []float64{pick(samples[0])}
	}
	out := make([]float64, points)
	for i := 0; i < points; i++ {
		idx := i * (len(samples) - 1) / (points - 1)
		out[i] = pick(samples[idx])
	}
	return out
}

// Temperatures plots the controlled and uncontrolled temperature curves
// stacked, with the setpoint named in the caption.
func Temperatures(result *sim.Result, setpoint float64) string {
	var b strings.Builder

	ctl := Downsample(result.Controlled, func(s sim.Sample) float64 { return s.Temperature }, plotWidth)
	if len(ctl) > 1 {
		b.WriteString(asciigraph.Plot(ctl,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption(fmt.Sprintf("controlled temperature (setpoint %.1f °C)", setpoint)),
		))
		b.WriteString("\n\n")
	}

	open := Downsample(result.Uncontrolled, func(s sim.Sample) float64 { return s.Temperature }, plotWidth)
	if len(open) > 1 {
		b.WriteString(asciigraph.Plot(open,
			asciigraph.Height(plotHeight),
			asciigraph.Width(plotWidth),
			asciigraph.Caption("uncontrolled temperature"),
		))
		b.WriteString("\n")
	}

	return b.String()
}

// HeaterPower plots the heater output over the run.
func HeaterPower(result *sim.Result) string {
	data := Downsample(result.Controlled, func(s sim.Sample) float64 { return s.Heater }, plotWidth)
	if len(data) < 2 {
		return ""
	}
	return asciigraph.Plot(data,
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("heater power (W)"),
	) + "\n"
}
