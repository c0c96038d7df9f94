package reactor

import "math"

// NusseltCorrelation maps Reynolds and Prandtl numbers to a Nusselt
// number. It is a policy choice: swapping the correlation changes the
// inner film coefficient but nothing else about the model.
type NusseltCorrelation interface {
	Nusselt(re, pr float64) float64
}

// PowerLaw is the generic Nu = C * Re^m * Pr^n form.
type PowerLaw struct {
	C float64
	M float64
	N float64
}

func (p PowerLaw) Nusselt(re, pr float64) float64 {
	return p.C * math.Pow(re, p.M) * math.Pow(pr, p.N)
}

// NuLaminar is the constant Nusselt number used outside the validity
// range of the turbulent correlations.
const NuLaminar = 3.66

// StirredTank switches between an impeller correlation in the
// transitional regime, Dittus-Boelter for fully turbulent flow, and the
// laminar constant otherwise.
type StirredTank struct {
	Transitional PowerLaw
	Turbulent    PowerLaw
}

// DefaultCorrelation returns the stirred-tank correlation set used by
// the simulation unless a caller substitutes its own.
func DefaultCorrelation() StirredTank {
	return StirredTank{
		Transitional: PowerLaw{C: 0.354, M: 0.714, N: 0.260},
		Turbulent:    PowerLaw{C: 0.023, M: 0.8, N: 0.4},
	}
}

func (s StirredTank) Nusselt(re, pr float64) float64 {
	switch {
	case re >= 1e4 && pr >= 0.6:
		return s.Turbulent.Nusselt(re, pr)
	case re > 4.5e3 && re < 1e4 && pr > 0.6 && pr < 160:
		return s.Transitional.Nusselt(re, pr)
	default:
		return NuLaminar
	}
}
