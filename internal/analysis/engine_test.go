package analysis_test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/JJonas1998/Projekt-9/internal/analysis"
	"github.com/JJonas1998/Projekt-9/internal/control"
	"github.com/JJonas1998/Projekt-9/internal/fluid"
	"github.com/JJonas1998/Projekt-9/internal/reactor"
	"github.com/JJonas1998/Projekt-9/internal/sim"
)

// traj builds a 1 Hz trajectory from temperature values.
func traj(temps ...float64) []sim.Sample {
	out := make([]sim.Sample, len(temps))
	for i, t := range temps {
		out[i] = sim.Sample{Time: float64(i), Temperature: t}
	}
	return out
}

var _ = Describe("Engine", func() {
	var engine *analysis.Engine

	BeforeEach(func() {
		engine = analysis.NewEngine()
	})

	It("rejects an empty trajectory", func() {
		_, err := engine.Analyze(nil, 37)
		Expect(err).To(MatchError(analysis.ErrEmptyTrajectory))
	})

	Describe("settling time", func() {
		It("finds the first time after which all samples stay in band", func() {
			// Step 20 -> 30, band 2% of 10 K = 0.2 K.
			m, err := engine.Analyze(traj(20, 25, 29, 29.9, 29.95, 30.0), 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Settled).To(BeTrue())
			Expect(m.SettlingTime).To(Equal(3.0))
		})

		It("reports not settled when the last sample is out of band", func() {
			m, err := engine.Analyze(traj(20, 25, 29.9, 28), 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Settled).To(BeFalse())
		})

		It("treats a trajectory that starts in band as settled immediately", func() {
			m, err := engine.Analyze(traj(30, 30, 30), 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Settled).To(BeTrue())
			Expect(m.SettlingTime).To(Equal(0.0))
		})

		It("falls back to a setpoint-sized band for runs starting on the setpoint", func() {
			// Cold shock from the 37 °C setpoint and recovery; the step
			// is zero, so the band is 2% of the setpoint (0.74 K).
			m, err := engine.Analyze(traj(37, 33, 35, 36.8, 37.0, 36.9), 37)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Settled).To(BeTrue())
			Expect(m.SettlingTime).To(Equal(3.0))
		})

		It("honors a custom band width", func() {
			engine.Band = 0.10 // 1 K band for a 10 K step
			m, err := engine.Analyze(traj(20, 25, 29.5, 29.5), 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Settled).To(BeTrue())
			Expect(m.SettlingTime).To(Equal(2.0))
		})
	})

	Describe("overshoot", func() {
		It("measures the worst excursion past the setpoint", func() {
			m, err := engine.Analyze(traj(20, 28, 31, 30.2, 30), 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.OvershootPct).To(BeNumerically("~", 10.0, 1e-9))
		})

		It("is zero when the setpoint is never crossed", func() {
			m, err := engine.Analyze(traj(20, 25, 29, 29.8), 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.OvershootPct).To(BeZero())
		})

		It("is sign aware for downward steps", func() {
			// Cooling from 30 to 20, dipping to 19 is a 10% overshoot.
			m, err := engine.Analyze(traj(30, 24, 19, 20), 20)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.OvershootPct).To(BeNumerically("~", 10.0, 1e-9))
		})
	})

	Describe("rise time", func() {
		It("is the first time 90% of the step is covered", func() {
			m, err := engine.Analyze(traj(20, 24, 28, 29.5, 30), 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.RiseTime).To(Equal(3.0))
		})

		It("is negative when the step is never covered", func() {
			m, err := engine.Analyze(traj(20, 21, 22), 30)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.RiseTime).To(BeNumerically("<", 0))
		})
	})

	Describe("steady-state error and extremes", func() {
		It("reports setpoint minus final temperature", func() {
			m, err := engine.Analyze(traj(20, 29, 36.5), 37)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.SteadyStateError).To(BeNumerically("~", 0.5, 1e-9))
			Expect(m.PeakTemperature).To(Equal(36.5))
		})
	})

	Describe("heater energy", func() {
		It("integrates constant power exactly", func() {
			samples := traj(20, 21, 22, 23, 24)
			for i := range samples {
				samples[i].Heater = 100
			}
			m, err := engine.Analyze(samples, 37)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Energy).To(BeNumerically("~", 400.0, 1e-9))
			Expect(m.MaxHeaterPower).To(Equal(100.0))
		})

		It("integrates a ramp with the trapezoid rule", func() {
			samples := traj(20, 21, 22)
			samples[0].Heater = 0
			samples[1].Heater = 100
			samples[2].Heater = 200
			m, err := engine.Analyze(samples, 37)
			Expect(err).NotTo(HaveOccurred())
			Expect(m.Energy).To(BeNumerically("~", 200.0, 1e-9))
		})
	})
})

var _ = Describe("Fermentation batch", func() {
	var result *sim.Result
	var engine *analysis.Engine

	cfg := sim.Config{
		InitialTemp: 20,
		AmbientTemp: 22,
		Setpoint:    37,
		Duration:    7200,
		Dt:          1,
	}

	BeforeEach(func() {
		geo := reactor.Geometry{
			VolumeLiters:    20,
			WallThicknessMM: 5,
			Material:        reactor.MaterialStainless,
			StirrerRPM:      120,
		}
		pid, err := control.NewPID(control.Params{
			Kp: 300, Ki: 0.05, Kd: 50,
			OutputMin: 0, OutputMax: 5000,
		})
		Expect(err).NotTo(HaveOccurred())

		s := sim.New(reactor.NewModel(fluid.Water{}), pid)
		result, err = s.Run(context.Background(), geo, cfg)
		Expect(err).NotTo(HaveOccurred())

		engine = analysis.NewEngine()
	})

	It("settles inside the tolerance band well before the end of the run", func() {
		m, err := engine.Analyze(result.Controlled, cfg.Setpoint)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Settled).To(BeTrue())
		Expect(m.SettlingTime).To(BeNumerically("<", 3000))
		Expect(m.RiseTime).To(BeNumerically(">", 100))
		Expect(m.RiseTime).To(BeNumerically("<", 2500))
	})

	It("tracks the setpoint with little overshoot and small residual error", func() {
		m, err := engine.Analyze(result.Controlled, cfg.Setpoint)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.OvershootPct).To(BeNumerically("<", 5))
		Expect(m.PeakTemperature).To(BeNumerically("<", 37.6))
		Expect(m.SteadyStateError).To(BeNumerically("~", 0, 0.4))
	})

	It("saturates the heater during the initial rise", func() {
		m, err := engine.Analyze(result.Controlled, cfg.Setpoint)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.MaxHeaterPower).To(BeNumerically("~", 5000, 1e-6))
		Expect(m.Energy).To(BeNumerically(">", 1e6))
		Expect(m.Energy).To(BeNumerically("<", 3.6e7))
	})

	It("shows the uncontrolled vessel never reaching the setpoint", func() {
		m, err := engine.Analyze(result.Uncontrolled, cfg.Setpoint)
		Expect(err).NotTo(HaveOccurred())
		Expect(m.Settled).To(BeFalse())
		Expect(m.RiseTime).To(BeNumerically("<", 0))
		Expect(m.Energy).To(BeZero())
	})
})
