package main

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/JJonas1998/Projekt-9/internal/config"
	"github.com/JJonas1998/Projekt-9/internal/control"
	"github.com/JJonas1998/Projekt-9/internal/fluid"
	"github.com/JJonas1998/Projekt-9/internal/reactor"
	"github.com/JJonas1998/Projekt-9/internal/sim"
	"github.com/JJonas1998/Projekt-9/internal/storage"
	"github.com/JJonas1998/Projekt-9/internal/tui"
	"github.com/JJonas1998/Projekt-9/internal/viz"
)

var (
	dataDir string

	volume      float64
	wallMM      float64
	material    string
	rpm         float64
	initialTemp float64
	ambientTemp float64
	setpoint    float64
	kp          float64
	ki          float64
	kd          float64
	maxPower    float64
	durationMin float64
	dtSec       float64
	distTime    float64
	distMag     float64

	configFile string
	preset     string

	kpValues string
	kiValues string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bioreaktor",
		Short: "bioreactor thermal simulation and PID tuning lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bioreaktor", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "simulate a heated vessel and store the result",
		RunE:  runSimulation,
	}
	addScenarioFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a stored run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live [run_id]",
		Short: "replay a stored run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "sweep PID gains and compare control quality",
		RunE:  tuneGains,
	}
	addScenarioFlags(tuneCmd)
	tuneCmd.Flags().StringVar(&kpValues, "kp-values", "", "comma separated kp candidates")
	tuneCmd.Flags().StringVar(&kiValues, "ki-values", "", "comma separated ki candidates")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available scenario presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			if len(names) == 0 {
				fmt.Println("no presets")
				return nil
			}
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tVESSEL\tSETPOINT\tDURATION")
			for _, name := range names {
				p := config.GetPreset(name)
				fmt.Fprintf(w, "%s\t%.0f L %s\t%.1f °C\t%.0f min\n",
					name, p.Vessel.VolumeLiters, p.Vessel.Material, p.Temps.Setpoint, p.Sim.DurationMin)
			}
			return w.Flush()
		},
	}

	materialsCmd := &cobra.Command{
		Use:   "materials",
		Short: "list supported wall materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "MATERIAL\tCONDUCTIVITY W/(m*K)")
			for _, m := range reactor.Materials() {
				fmt.Fprintf(w, "%s\t%.2f\n", m, m.Conductivity())
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, exportCmd, liveCmd, tuneCmd, presetsCmd, materialsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addScenarioFlags(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&volume, "volume", config.DefaultVolume, "liquid volume in liters")
	cmd.Flags().Float64Var(&wallMM, "wall", config.DefaultWallMM, "wall thickness in mm")
	cmd.Flags().StringVar(&material, "material", config.DefaultMaterial, "wall material")
	cmd.Flags().Float64Var(&rpm, "rpm", config.DefaultRPM, "stirrer speed")
	cmd.Flags().Float64Var(&initialTemp, "initial", config.DefaultInitialTemp, "initial liquid temperature °C")
	cmd.Flags().Float64Var(&ambientTemp, "ambient", config.DefaultAmbientTemp, "ambient temperature °C")
	cmd.Flags().Float64Var(&setpoint, "setpoint", config.DefaultSetpoint, "target temperature °C")
	cmd.Flags().Float64Var(&kp, "kp", config.DefaultKp, "pid kp")
	cmd.Flags().Float64Var(&ki, "ki", config.DefaultKi, "pid ki")
	cmd.Flags().Float64Var(&kd, "kd", config.DefaultKd, "pid kd")
	cmd.Flags().Float64Var(&maxPower, "max-power", config.DefaultMaxPower, "heater limit in W")
	cmd.Flags().Float64Var(&durationMin, "time", config.DefaultDurationMin, "duration in minutes")
	cmd.Flags().Float64Var(&dtSec, "dt", config.DefaultDt, "timestep in seconds")
	cmd.Flags().Float64Var(&distTime, "disturbance-at", 0, "disturbance time in seconds")
	cmd.Flags().Float64Var(&distMag, "disturbance", 0, "disturbance magnitude in K")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset scenario")
}

// buildConfig merges preset, config file and flags. Flags win over the
// config file, which wins over the preset.
func buildConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("volume") {
		cfg.Vessel.VolumeLiters = volume
	}
	if cmd.Flags().Changed("wall") {
		cfg.Vessel.WallThicknessMM = wallMM
	}
	if cmd.Flags().Changed("material") {
		cfg.Vessel.Material = material
	}
	if cmd.Flags().Changed("rpm") {
		cfg.Vessel.StirrerRPM = rpm
	}
	if cmd.Flags().Changed("initial") {
		cfg.Temps.Initial = initialTemp
	}
	if cmd.Flags().Changed("ambient") {
		cfg.Temps.Ambient = ambientTemp
	}
	if cmd.Flags().Changed("setpoint") {
		cfg.Temps.Setpoint = setpoint
	}
	if cmd.Flags().Changed("kp") {
		cfg.PID.Kp = kp
	}
	if cmd.Flags().Changed("ki") {
		cfg.PID.Ki = ki
	}
	if cmd.Flags().Changed("kd") {
		cfg.PID.Kd = kd
	}
	if cmd.Flags().Changed("max-power") {
		cfg.PID.MaxPower = maxPower
	}
	if cmd.Flags().Changed("time") {
		cfg.Sim.DurationMin = durationMin
	}
	if cmd.Flags().Changed("dt") {
		cfg.Sim.Dt = dtSec
	}
	if cmd.Flags().Changed("disturbance") {
		cfg.Disturbance = &sim.Disturbance{Time: distTime, Magnitude: distMag}
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	geo, err := cfg.Geometry()
	if err != nil {
		return err
	}

	pid, err := control.NewPID(cfg.PIDParams())
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	model := reactor.NewModel(fluid.Water{})
	simulator := sim.New(model, pid)

	fmt.Printf("simulating %.0f L %s vessel at %.0f rpm...\n", geo.VolumeLiters, geo.Material, geo.StirrerRPM)
	start := time.Now()

	result, err := simulator.Run(context.Background(), geo, cfg.SimConfig())
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	metrics, err := cfg.Engine().Analyze(result.Controlled, cfg.Temps.Setpoint)
	if err != nil {
		return err
	}

	runID, err := st.Save(cfg, result, metrics)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", len(result.Controlled))

	if ua, err := model.Conductance(cfg.Temps.Setpoint, geo); err == nil {
		fmt.Printf("\nvessel:\n")
		fmt.Printf("  radius: %.3f m, height: %.3f m\n", geo.Radius(), geo.Height())
		fmt.Printf("  surface: %.4f m², stirrer: %.3f m\n", geo.SurfaceArea(), geo.StirrerDiameter())
		fmt.Printf("  heat loss: %.2f W/K at %.1f °C\n", ua, cfg.Temps.Setpoint)
	}

	fmt.Printf("\nmetrics:\n")
	if metrics.Settled {
		fmt.Printf("  settled: at %.0f s\n", metrics.SettlingTime)
	} else {
		fmt.Printf("  settled: no\n")
	}
	if metrics.RiseTime >= 0 {
		fmt.Printf("  rise time: %.0f s\n", metrics.RiseTime)
	}
	fmt.Printf("  overshoot: %.1f %%\n", metrics.OvershootPct)
	fmt.Printf("  steady-state error: %.3f K\n", metrics.SteadyStateError)
	fmt.Printf("  peak temperature: %.2f °C\n", metrics.PeakTemperature)
	fmt.Printf("  heater energy: %.1f kJ\n", metrics.Energy/1000)

	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tVESSEL\tSETPOINT\tSETTLED\tOVERSHOOT\tERROR")

	for _, run := range runs {
		settled := "no"
		if run.Metrics.Settled {
			settled = fmt.Sprintf("%.0fs", run.Metrics.SettlingTime)
		}
		fmt.Fprintf(w, "%s\t%s\t%.0f L %s\t%.1f °C\t%s\t%.1f%%\t%.3f K\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Config.Vessel.VolumeLiters,
			run.Config.Vessel.Material,
			run.Config.Temps.Setpoint,
			settled,
			run.Metrics.OvershootPct,
			run.Metrics.SteadyStateError,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	if len(result.Controlled) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("vessel: %.0f L %s\n", meta.Config.Vessel.VolumeLiters, meta.Config.Vessel.Material)
	fmt.Printf("samples: %d\n\n", len(result.Controlled))

	fmt.Println(viz.Temperatures(result, meta.Config.Temps.Setpoint))
	fmt.Println(viz.HeaterPower(result))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}

	return storage.ExportJSON(os.Stdout, meta.Config, result, meta.Metrics)
}

func replayRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	result, err := st.LoadTrajectory(runID)
	if err != nil {
		return err
	}
	if len(result.Controlled) == 0 {
		return fmt.Errorf("no data to replay")
	}

	geo, err := meta.Config.Geometry()
	if err != nil {
		return err
	}

	player := tui.NewPlayer(result, meta.Metrics, geo, meta.Config.Temps.Setpoint)
	p := tea.NewProgram(player)
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}

func tuneGains(cmd *cobra.Command, args []string) error {
	cfg, err := buildConfig(cmd)
	if err != nil {
		return err
	}

	geo, err := cfg.Geometry()
	if err != nil {
		return err
	}

	kps, err := parseFloats(kpValues)
	if err != nil {
		return fmt.Errorf("kp-values: %w", err)
	}
	if len(kps) == 0 {
		kps = []float64{cfg.PID.Kp}
	}
	kis, err := parseFloats(kiValues)
	if err != nil {
		return fmt.Errorf("ki-values: %w", err)
	}
	if len(kis) == 0 {
		kis = []float64{cfg.PID.Ki}
	}

	var gains []control.Params
	for _, p := range kps {
		for _, i := range kis {
			gains = append(gains, control.Params{
				Kp: p, Ki: i, Kd: cfg.PID.Kd,
				OutputMin: 0, OutputMax: cfg.PID.MaxPower,
			})
		}
	}

	fmt.Printf("sweeping %d gain combinations...\n\n", len(gains))

	model := reactor.NewModel(fluid.Water{})
	results := sim.Sweep(context.Background(), model, geo, cfg.SimConfig(), gains)

	engine := cfg.Engine()
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "KP\tKI\tKD\tSETTLED\tOVERSHOOT\tERROR\tENERGY")

	for _, r := range results {
		if r.Err != nil {
			fmt.Fprintf(w, "%.1f\t%.3f\t%.1f\terror: %v\t\t\t\n", r.Params.Kp, r.Params.Ki, r.Params.Kd, r.Err)
			continue
		}
		metrics, err := engine.Analyze(r.Result.Controlled, cfg.Temps.Setpoint)
		if err != nil {
			fmt.Fprintf(w, "%.1f\t%.3f\t%.1f\terror: %v\t\t\t\n", r.Params.Kp, r.Params.Ki, r.Params.Kd, err)
			continue
		}
		settled := "no"
		if metrics.Settled {
			settled = fmt.Sprintf("%.0fs", metrics.SettlingTime)
		}
		fmt.Fprintf(w, "%.1f\t%.3f\t%.1f\t%s\t%.1f%%\t%.3f K\t%.1f kJ\n",
			r.Params.Kp, r.Params.Ki, r.Params.Kd, settled,
			metrics.OvershootPct, metrics.SteadyStateError, metrics.Energy/1000)
	}

	return w.Flush()
}

func parseFloats(s string) ([]float64, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	parts := strings.Split(s, ",")
	out := make([]float64, 0, len(parts))
	for _, p := range parts {
		v, err := strconv.ParseFloat(strings.TrimSpace(p), 64)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}
