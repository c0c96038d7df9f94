package reactor

import (
	"fmt"

	"github.com/JJonas1998/Projekt-9/internal/fluid"
)

const (
	// DefaultOutsideFilm is the air-side film coefficient in W/(m2*K).
	DefaultOutsideFilm = 35.0

	// DefaultFilmFloor bounds the inner film coefficient from below in
	// W/(m2*K). With the stirrer off the correlation degenerates to the
	// laminar constant; the floor stands in for natural convection and
	// keeps the film resistance finite.
	DefaultFilmFloor = 150.0
)

// Model computes heat flow between the stirred liquid and the ambient
// air through the vessel wall. It is stateless: every call is a pure
// function of temperatures and geometry.
type Model struct {
	Fluid       fluid.Provider
	Correlation NusseltCorrelation
	OutsideFilm float64 // W/(m2*K)
	FilmFloor   float64 // W/(m2*K)
}

// NewModel returns a Model with the default stirred-tank correlation
// and film coefficients.
func NewModel(provider fluid.Provider) *Model {
	return &Model{
		Fluid:       provider,
		Correlation: DefaultCorrelation(),
		OutsideFilm: DefaultOutsideFilm,
		FilmFloor:   DefaultFilmFloor,
	}
}

// Reynolds returns the impeller Reynolds number at the given liquid
// temperature.
func (m *Model) Reynolds(tempC float64, geo Geometry) (float64, error) {
	p, err := m.Fluid.Properties(tempC)
	if err != nil {
		return 0, err
	}
	d := geo.StirrerDiameter()
	return (geo.StirrerRPM / 60.0) * d * d * p.Density / p.Viscosity, nil
}

// FilmCoefficient returns the liquid-side film coefficient h in
// W/(m2*K), bounded below by FilmFloor.
func (m *Model) FilmCoefficient(tempC float64, geo Geometry) (float64, error) {
	p, err := m.Fluid.Properties(tempC)
	if err != nil {
		return 0, err
	}
	d := geo.StirrerDiameter()
	re := (geo.StirrerRPM / 60.0) * d * d * p.Density / p.Viscosity
	nu := m.Correlation.Nusselt(re, p.Prandtl())

	h := nu * p.Conductivity / d
	if h < m.FilmFloor {
		h = m.FilmFloor
	}
	return h, nil
}

// Conductance returns U*A in W/K: inner film, wall conduction and
// outside film resistances in series, referenced to the inner area.
func (m *Model) Conductance(tempC float64, geo Geometry) (float64, error) {
	if err := geo.Validate(); err != nil {
		return 0, err
	}
	area := geo.SurfaceArea()
	if area <= 0 {
		return 0, fmt.Errorf("%w: derived area %.4f m2", ErrInvalidGeometry, area)
	}

	hIn, err := m.FilmCoefficient(tempC, geo)
	if err != nil {
		return 0, err
	}

	rIn := 1.0 / (hIn * area)
	rWall := geo.WallThickness() / (geo.Material.Conductivity() * area)
	rOut := 1.0 / (m.OutsideFilm * area)

	return 1.0 / (rIn + rWall + rOut), nil
}

// NetHeatFlow returns the net heat flow into the liquid in W:
// U*A*(ambient - liquid) plus the heater power.
func (m *Model) NetHeatFlow(liquidC, ambientC float64, geo Geometry, heaterPower float64) (float64, error) {
	ua, err := m.Conductance(liquidC, geo)
	if err != nil {
		return 0, err
	}
	return ua*(ambientC-liquidC) + heaterPower, nil
}

// HeatCapacity returns m*cp of the liquid charge in J/K at the given
// temperature.
func (m *Model) HeatCapacity(tempC float64, geo Geometry) (float64, error) {
	p, err := m.Fluid.Properties(tempC)
	if err != nil {
		return 0, err
	}
	return p.Density * geo.Volume() * p.SpecificHeat, nil
}
