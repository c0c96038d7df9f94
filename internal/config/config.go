package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/JJonas1998/Projekt-9/internal/analysis"
	"github.com/JJonas1998/Projekt-9/internal/control"
	"github.com/JJonas1998/Projekt-9/internal/reactor"
	"github.com/JJonas1998/Projekt-9/internal/sim"
)

const (
	DefaultVolume      = 2.0
	DefaultWallMM      = 5.0
	DefaultMaterial    = "stainless"
	DefaultRPM         = 120.0
	DefaultInitialTemp = 20.0
	DefaultAmbientTemp = 22.0
	DefaultSetpoint    = 37.0
	DefaultDurationMin = 120.0
	DefaultDt          = 1.0
	DefaultKp          = 300.0
	DefaultKi          = 0.05
	DefaultKd          = 50.0
	DefaultMaxPower    = 5000.0
)

type Config struct {
	Vessel      VesselConfig     `yaml:"vessel"`
	Temps       TempConfig       `yaml:"temperatures"`
	PID         PIDConfig        `yaml:"pid"`
	Sim         SimConfig        `yaml:"simulation"`
	Disturbance *sim.Disturbance `yaml:"disturbance,omitempty"`
}

type VesselConfig struct {
	VolumeLiters    float64 `yaml:"volume_l"`
	WallThicknessMM float64 `yaml:"wall_mm"`
	Material        string  `yaml:"material"`
	StirrerRPM      float64 `yaml:"stirrer_rpm"`
}

type TempConfig struct {
	Initial  float64 `yaml:"initial_c"`
	Ambient  float64 `yaml:"ambient_c"`
	Setpoint float64 `yaml:"setpoint_c"`
}

type PIDConfig struct {
	Kp       float64 `yaml:"kp"`
	Ki       float64 `yaml:"ki"`
	Kd       float64 `yaml:"kd"`
	MaxPower float64 `yaml:"max_power_w"`
}

type SimConfig struct {
	DurationMin float64 `yaml:"duration_min"`
	Dt          float64 `yaml:"dt_s"`
	Band        float64 `yaml:"settling_band"`
}

func DefaultConfig() *Config {
	return &Config{
		Vessel: VesselConfig{
			VolumeLiters:    DefaultVolume,
			WallThicknessMM: DefaultWallMM,
			Material:        DefaultMaterial,
			StirrerRPM:      DefaultRPM,
		},
		Temps: TempConfig{
			Initial:  DefaultInitialTemp,
			Ambient:  DefaultAmbientTemp,
			Setpoint: DefaultSetpoint,
		},
		PID: PIDConfig{
			Kp:       DefaultKp,
			Ki:       DefaultKi,
			Kd:       DefaultKd,
			MaxPower: DefaultMaxPower,
		},
		Sim: SimConfig{
			DurationMin: DefaultDurationMin,
			Dt:          DefaultDt,
			Band:        analysis.DefaultBand,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Geometry converts the vessel section into domain types. The material
// name is validated here so config mistakes surface before a run starts.
func (c *Config) Geometry() (reactor.Geometry, error) {
	mat, err := reactor.ParseMaterial(c.Vessel.Material)
	if err != nil {
		return reactor.Geometry{}, fmt.Errorf("vessel: %w", err)
	}
	return reactor.Geometry{
		VolumeLiters:    c.Vessel.VolumeLiters,
		WallThicknessMM: c.Vessel.WallThicknessMM,
		Material:        mat,
		StirrerRPM:      c.Vessel.StirrerRPM,
	}, nil
}

func (c *Config) PIDParams() control.Params {
	return control.Params{
		Kp:        c.PID.Kp,
		Ki:        c.PID.Ki,
		Kd:        c.PID.Kd,
		OutputMin: 0,
		OutputMax: c.PID.MaxPower,
	}
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{
		InitialTemp: c.Temps.Initial,
		AmbientTemp: c.Temps.Ambient,
		Setpoint:    c.Temps.Setpoint,
		Duration:    c.Sim.DurationMin * 60,
		Dt:          c.Sim.Dt,
		Disturbance: c.Disturbance,
	}
}

// Engine builds an analysis engine with the configured settling band.
func (c *Config) Engine() *analysis.Engine {
	e := analysis.NewEngine()
	if c.Sim.Band > 0 {
		e.Band = c.Sim.Band
	}
	return e
}
