package reactor

import (
	"errors"
	"math"
	"testing"
)

func TestGeometryDerived(t *testing.T) {
	geo := Geometry{VolumeLiters: 20, WallThicknessMM: 5, Material: MaterialStainless, StirrerRPM: 100}

	r := geo.Radius()
	if math.Abs(r-0.1471) > 1e-3 {
		t.Errorf("radius: expected ~0.147 m, got %f", r)
	}
	if math.Abs(geo.Height()-2*r) > 1e-12 {
		t.Errorf("height should be 2r, got %f for r=%f", geo.Height(), r)
	}

	// volume closes: pi*r^2*h == V
	v := math.Pi * r * r * geo.Height()
	if math.Abs(v-geo.Volume()) > 1e-9 {
		t.Errorf("cylinder volume %f does not match %f", v, geo.Volume())
	}

	wantArea := 2*math.Pi*r*r + 2*math.Pi*r*geo.Height()
	if math.Abs(geo.SurfaceArea()-wantArea) > 1e-12 {
		t.Errorf("surface area: expected %f, got %f", wantArea, geo.SurfaceArea())
	}

	if math.Abs(geo.StirrerDiameter()-2*r/3) > 1e-12 {
		t.Errorf("stirrer diameter should be 2r/3, got %f", geo.StirrerDiameter())
	}
}

func TestGeometryValidate(t *testing.T) {
	valid := Geometry{VolumeLiters: 10, WallThicknessMM: 5, Material: MaterialSteel, StirrerRPM: 60}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid geometry rejected: %v", err)
	}

	tests := []struct {
		name string
		geo  Geometry
		want error
	}{
		{"zero volume", Geometry{VolumeLiters: 0, WallThicknessMM: 5, Material: MaterialSteel}, ErrInvalidGeometry},
		{"negative volume", Geometry{VolumeLiters: -1, WallThicknessMM: 5, Material: MaterialSteel}, ErrInvalidGeometry},
		{"zero thickness", Geometry{VolumeLiters: 10, WallThicknessMM: 0, Material: MaterialSteel}, ErrInvalidGeometry},
		{"negative stirrer speed", Geometry{VolumeLiters: 10, WallThicknessMM: 5, Material: MaterialSteel, StirrerRPM: -10}, ErrInvalidGeometry},
		{"unknown material", Geometry{VolumeLiters: 10, WallThicknessMM: 5, Material: MaterialUnknown}, ErrInvalidMaterial},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.geo.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestMaterialRoundTrip(t *testing.T) {
	for _, m := range Materials() {
		parsed, err := ParseMaterial(m.String())
		if err != nil {
			t.Errorf("parse %q: %v", m.String(), err)
		}
		if parsed != m {
			t.Errorf("round trip for %v: got %v", m, parsed)
		}
		if m.Conductivity() <= 0 {
			t.Errorf("material %v has non-positive conductivity", m)
		}
	}

	if _, err := ParseMaterial("adamantium"); !errors.Is(err, ErrInvalidMaterial) {
		t.Errorf("expected ErrInvalidMaterial, got %v", err)
	}
}
