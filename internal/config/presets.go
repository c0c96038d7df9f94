package config

import "github.com/JJonas1998/Projekt-9/internal/sim"

// Presets are ready-made scenarios. Each preset is completed with
// DefaultConfig values for anything it leaves zero, so entries only
// list what differs from the defaults.
var Presets = map[string]*Config{
	"fermentation": {
		Vessel: VesselConfig{VolumeLiters: 20, WallThicknessMM: 5, Material: "stainless", StirrerRPM: 120},
		Temps:  TempConfig{Initial: 20, Ambient: 22, Setpoint: 37},
		PID:    PIDConfig{Kp: 300, Ki: 0.05, Kd: 50, MaxPower: 5000},
		Sim:    SimConfig{DurationMin: 120, Dt: 1},
	},
	"benchtop": {
		Vessel: VesselConfig{VolumeLiters: 2, WallThicknessMM: 4, Material: "glass", StirrerRPM: 200},
		Temps:  TempConfig{Initial: 21, Ambient: 21, Setpoint: 30},
		PID:    PIDConfig{Kp: 60, Ki: 0.01, Kd: 10, MaxPower: 800},
		Sim:    SimConfig{DurationMin: 90, Dt: 0.5},
	},
	"cold-start": {
		Vessel: VesselConfig{VolumeLiters: 10, WallThicknessMM: 6, Material: "stainless", StirrerRPM: 150},
		Temps:  TempConfig{Initial: 8, Ambient: 18, Setpoint: 37},
		PID:    PIDConfig{Kp: 250, Ki: 0.04, Kd: 40, MaxPower: 4000},
		Sim:    SimConfig{DurationMin: 180, Dt: 1},
	},
	"disturbance": {
		Vessel:      VesselConfig{VolumeLiters: 20, WallThicknessMM: 5, Material: "stainless", StirrerRPM: 120},
		Temps:       TempConfig{Initial: 37, Ambient: 22, Setpoint: 37},
		PID:         PIDConfig{Kp: 300, Ki: 0.05, Kd: 50, MaxPower: 5000},
		Sim:         SimConfig{DurationMin: 60, Dt: 1},
		Disturbance: &sim.Disturbance{Time: 300, Magnitude: -4},
	},
	"pilot": {
		Vessel: VesselConfig{VolumeLiters: 200, WallThicknessMM: 8, Material: "steel", StirrerRPM: 90},
		Temps:  TempConfig{Initial: 18, Ambient: 20, Setpoint: 35},
		PID:    PIDConfig{Kp: 1500, Ki: 0.2, Kd: 200, MaxPower: 30000},
		Sim:    SimConfig{DurationMin: 240, Dt: 2},
	},
}

func GetPreset(name string) *Config {
	p, ok := Presets[name]
	if !ok {
		return nil
	}
	cfg := *p
	if p.Disturbance != nil {
		d := *p.Disturbance
		cfg.Disturbance = &d
	}
	if cfg.Sim.Band == 0 {
		cfg.Sim.Band = DefaultConfig().Sim.Band
	}
	return &cfg
}

func ListPresets() []string {
	names := make([]string, 0, len(Presets))
	for name := range Presets {
		names = append(names, name)
	}
	return names
}
