package reactor

import (
	"fmt"
	"math"
)

// Material is an integer enum for the vessel wall material.
type Material int

const (
	MaterialUnknown Material = iota
	MaterialSteel
	MaterialStainless
	MaterialGlass
	MaterialPlastic
	MaterialAluminum
)

// conductivity W/(m*K)
var materialConductivity = map[Material]float64{
	MaterialSteel:     46.0,
	MaterialStainless: 21.0,
	MaterialGlass:     1.4,
	MaterialPlastic:   0.3,
	MaterialAluminum:  230.0,
}

func (m Material) Valid() bool {
	_, ok := materialConductivity[m]
	return ok
}

// Conductivity returns the wall thermal conductivity in W/(m*K).
func (m Material) Conductivity() float64 {
	return materialConductivity[m]
}

func (m Material) String() string {
	switch m {
	case MaterialSteel:
		return "steel"
	case MaterialStainless:
		return "stainless"
	case MaterialGlass:
		return "glass"
	case MaterialPlastic:
		return "plastic"
	case MaterialAluminum:
		return "aluminum"
	default:
		return "unknown"
	}
}

// ParseMaterial is handy for config files and CLI flags.
func ParseMaterial(s string) (Material, error) {
	switch s {
	case "steel":
		return MaterialSteel, nil
	case "stainless":
		return MaterialStainless, nil
	case "glass":
		return MaterialGlass, nil
	case "plastic":
		return MaterialPlastic, nil
	case "aluminum":
		return MaterialAluminum, nil
	default:
		return MaterialUnknown, fmt.Errorf("%w: %q", ErrInvalidMaterial, s)
	}
}

// Materials lists the valid wall materials in declaration order.
func Materials() []Material {
	return []Material{MaterialSteel, MaterialStainless, MaterialGlass, MaterialPlastic, MaterialAluminum}
}

// aspectRatio fixes the vessel shape at height = 2 * radius. A modeling
// assumption, not a tunable per run.
const aspectRatio = 2.0

// Geometry describes the stirred vessel. Immutable for one run.
type Geometry struct {
	VolumeLiters    float64  // > 0
	WallThicknessMM float64  // > 0
	Material        Material // fixed conductivity per material
	StirrerRPM      float64  // >= 0
}

func (g Geometry) Validate() error {
	if g.VolumeLiters <= 0 {
		return fmt.Errorf("%w: volume %.3f L", ErrInvalidGeometry, g.VolumeLiters)
	}
	if g.WallThicknessMM <= 0 {
		return fmt.Errorf("%w: wall thickness %.3f mm", ErrInvalidGeometry, g.WallThicknessMM)
	}
	if !g.Material.Valid() {
		return fmt.Errorf("%w: material %d", ErrInvalidMaterial, int(g.Material))
	}
	if g.StirrerRPM < 0 {
		return fmt.Errorf("%w: stirrer speed %.1f 1/min", ErrInvalidGeometry, g.StirrerRPM)
	}
	return nil
}

// Volume returns the liquid volume in m3.
func (g Geometry) Volume() float64 {
	return g.VolumeLiters / 1000.0
}

// WallThickness returns the wall thickness in m.
func (g Geometry) WallThickness() float64 {
	return g.WallThicknessMM / 1000.0
}

// Radius returns the inner radius in m for a cylinder with V = pi*r^2*h
// and h = aspectRatio*r.
func (g Geometry) Radius() float64 {
	return math.Cbrt(g.Volume() / (aspectRatio * math.Pi))
}

// Height returns the inner height in m.
func (g Geometry) Height() float64 {
	return aspectRatio * g.Radius()
}

// SurfaceArea returns the inner heat-transfer area in m2 (shell plus
// both end caps).
func (g Geometry) SurfaceArea() float64 {
	r := g.Radius()
	return 2*math.Pi*r*r + 2*math.Pi*r*g.Height()
}

// StirrerDiameter returns the impeller diameter in m, one third of the
// vessel diameter.
func (g Geometry) StirrerDiameter() float64 {
	return 2.0 * g.Radius() / 3.0
}
