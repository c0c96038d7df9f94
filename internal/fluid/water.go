package fluid

import "math"

// Water provides liquid water properties at 101.325 kPa, tabulated in
// 5 C steps over 0..100 C and linearly interpolated in between.
// Values follow the IAPWS saturation-line data commonly quoted in
// process-engineering property tables.
type Water struct{}

const (
	waterMinC  = 0.0
	waterMaxC  = 100.0
	waterStepC = 5.0
)

// columns: density kg/m3, viscosity Pa*s, conductivity W/(m*K), cp J/(kg*K)
var waterTable = [21]Properties{
	{999.84, 1.792e-3, 0.561, 4219},
	{999.97, 1.518e-3, 0.571, 4205},
	{999.70, 1.306e-3, 0.580, 4195},
	{999.10, 1.138e-3, 0.589, 4189},
	{998.21, 1.002e-3, 0.598, 4184},
	{997.05, 0.890e-3, 0.607, 4181},
	{995.65, 0.797e-3, 0.615, 4180},
	{994.03, 0.719e-3, 0.623, 4179},
	{992.22, 0.653e-3, 0.630, 4179},
	{990.21, 0.596e-3, 0.637, 4181},
	{988.04, 0.547e-3, 0.643, 4182},
	{985.69, 0.504e-3, 0.649, 4184},
	{983.20, 0.466e-3, 0.654, 4186},
	{980.55, 0.433e-3, 0.659, 4188},
	{977.76, 0.404e-3, 0.663, 4191},
	{974.84, 0.378e-3, 0.667, 4194},
	{971.79, 0.354e-3, 0.670, 4198},
	{968.61, 0.333e-3, 0.673, 4203},
	{965.31, 0.314e-3, 0.675, 4208},
	{961.89, 0.297e-3, 0.677, 4213},
	{958.35, 0.282e-3, 0.679, 4219},
}

// Properties returns interpolated water properties at tempC, or
// ErrOutOfRange outside 0..100 C.
func (Water) Properties(tempC float64) (Properties, error) {
	if math.IsNaN(tempC) || tempC < waterMinC || tempC > waterMaxC {
		return Properties{}, rangeErr(tempC, waterMinC, waterMaxC)
	}

	pos := (tempC - waterMinC) / waterStepC
	lo := int(pos)
	if lo >= len(waterTable)-1 {
		return waterTable[len(waterTable)-1], nil
	}
	frac := pos - float64(lo)

	a, b := waterTable[lo], waterTable[lo+1]
	return Properties{
		Density:      lerp(a.Density, b.Density, frac),
		Viscosity:    lerp(a.Viscosity, b.Viscosity, frac),
		Conductivity: lerp(a.Conductivity, b.Conductivity, frac),
		SpecificHeat: lerp(a.SpecificHeat, b.SpecificHeat, frac),
	}, nil
}

func lerp(a, b, frac float64) float64 {
	return a + (b-a)*frac
}
