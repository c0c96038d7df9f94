package fluid

import (
	"errors"
	"fmt"
)

// ErrOutOfRange indicates a property lookup outside the provider's valid
// temperature range. Callers must not extrapolate around it.
var ErrOutOfRange = errors.New("fluid: temperature out of property range")

// Properties holds the thermophysical properties of the process liquid
// at a single temperature.
type Properties struct {
	Density      float64 // kg/m3
	Viscosity    float64 // Pa*s, dynamic
	Conductivity float64 // W/(m*K)
	SpecificHeat float64 // J/(kg*K)
}

// Prandtl returns the Prandtl number cp*mu/k for this property set.
func (p Properties) Prandtl() float64 {
	return p.SpecificHeat * p.Viscosity / p.Conductivity
}

// Provider supplies liquid properties as a pure function of temperature.
type Provider interface {
	Properties(tempC float64) (Properties, error)
}

// Constant is a Provider that returns the same property set at every
// temperature. Useful for analytic validation where temperature-dependent
// properties would blur the comparison.
type Constant struct {
	Props Properties
}

func (c Constant) Properties(tempC float64) (Properties, error) {
	return c.Props, nil
}

// WaterConstant returns a Constant provider with liquid water properties
// near 25 C at atmospheric pressure.
func WaterConstant() Constant {
	return Constant{Props: Properties{
		Density:      997.0,
		Viscosity:    1.002e-3,
		Conductivity: 0.606,
		SpecificHeat: 4186.0,
	}}
}

func rangeErr(tempC, min, max float64) error {
	return fmt.Errorf("%w: %.2f C (valid %.0f..%.0f C)", ErrOutOfRange, tempC, min, max)
}
