package control

import (
	"errors"
	"math"
	"testing"
)

func mustPID(t *testing.T, p Params) *PID {
	t.Helper()
	pid, err := NewPID(p)
	if err != nil {
		t.Fatalf("new pid: %v", err)
	}
	return pid
}

func TestProportionalOnly(t *testing.T) {
	pid := mustPID(t, Params{Kp: 2.0, OutputMin: 0, OutputMax: 1000})

	out, err := pid.Compute(10.0, 1.0)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if out != 20.0 {
		t.Errorf("P-only output: expected 20, got %f", out)
	}
}

func TestIntegralAccumulation(t *testing.T) {
	pid := mustPID(t, Params{Ki: 1.0, OutputMin: 0, OutputMax: 1000})

	// constant error 2 over three 1 s steps: integral 2, 4, 6
	for i, want := range []float64{2, 4, 6} {
		out, err := pid.Compute(2.0, 1.0)
		if err != nil {
			t.Fatalf("compute step %d: %v", i, err)
		}
		if math.Abs(out-want) > 1e-12 {
			t.Errorf("step %d: expected %f, got %f", i, want, out)
		}
	}
}

func TestDerivative(t *testing.T) {
	pid := mustPID(t, Params{Kd: 3.0, OutputMin: -1000, OutputMax: 1000})

	if _, err := pid.Compute(1.0, 0.5); err != nil {
		t.Fatalf("compute: %v", err)
	}
	// error falls from 1 to 0.5 over 0.5 s: slope -1, D = -3
	out, err := pid.Compute(0.5, 0.5)
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	if math.Abs(out-(-3.0)) > 1e-12 {
		t.Errorf("derivative output: expected -3, got %f", out)
	}
}

func TestOutputClamp(t *testing.T) {
	pid := mustPID(t, Params{Kp: 100, OutputMin: 0, OutputMax: 500})

	out, _ := pid.Compute(100.0, 1.0)
	if out != 500 {
		t.Errorf("expected clamp to 500, got %f", out)
	}

	out, _ = pid.Compute(-100.0, 1.0)
	if out != 0 {
		t.Errorf("expected clamp to 0, got %f", out)
	}
}

func TestAntiWindupFreeze(t *testing.T) {
	pid := mustPID(t, Params{Kp: 50, Ki: 0.5, OutputMin: 0, OutputMax: 100})

	// large error saturates immediately; the accumulator must not grow
	// over prolonged saturation
	if _, err := pid.Compute(1000.0, 1.0); err != nil {
		t.Fatalf("compute: %v", err)
	}
	after1 := pid.Integral()
	for i := 0; i < 100; i++ {
		out, err := pid.Compute(1000.0, 1.0)
		if err != nil {
			t.Fatalf("compute: %v", err)
		}
		if out != 100 {
			t.Fatalf("expected saturated output 100, got %f", out)
		}
	}
	if pid.Integral() != after1 {
		t.Errorf("integral grew during saturation: %f -> %f", after1, pid.Integral())
	}

	// once the error shrinks below saturation the accumulator moves again
	if _, err := pid.Compute(0.5, 1.0); err != nil {
		t.Fatalf("compute: %v", err)
	}
	if pid.Integral() == after1 {
		t.Error("integral should resume once output desaturates")
	}
}

func TestAntiWindupLowerBound(t *testing.T) {
	pid := mustPID(t, Params{Kp: 50, Ki: 0.5, OutputMin: 0, OutputMax: 100})

	// negative error pins the output at the lower bound; the (negative)
	// accumulation must freeze there too
	if _, err := pid.Compute(-1000.0, 1.0); err != nil {
		t.Fatalf("compute: %v", err)
	}
	frozen := pid.Integral()
	for i := 0; i < 50; i++ {
		if _, err := pid.Compute(-1000.0, 1.0); err != nil {
			t.Fatalf("compute: %v", err)
		}
	}
	if pid.Integral() != frozen {
		t.Errorf("integral drifted at lower bound: %f -> %f", frozen, pid.Integral())
	}
}

func TestReset(t *testing.T) {
	pid := mustPID(t, Params{Kp: 1, Ki: 1, Kd: 1, OutputMin: 0, OutputMax: 1000})

	if _, err := pid.Compute(5.0, 1.0); err != nil {
		t.Fatalf("compute: %v", err)
	}
	pid.Reset()

	fresh := mustPID(t, Params{Kp: 1, Ki: 1, Kd: 1, OutputMin: 0, OutputMax: 1000})
	a, _ := pid.Compute(3.0, 1.0)
	b, _ := fresh.Compute(3.0, 1.0)
	if a != b {
		t.Errorf("reset controller should match a fresh one: %f vs %f", a, b)
	}
}

func TestInvalidTimeStep(t *testing.T) {
	pid := mustPID(t, Params{Kp: 1, OutputMin: 0, OutputMax: 100})

	for _, dt := range []float64{0, -1} {
		if _, err := pid.Compute(1.0, dt); !errors.Is(err, ErrInvalidTimeStep) {
			t.Errorf("dt=%f: expected ErrInvalidTimeStep, got %v", dt, err)
		}
	}
}

func TestInvalidParams(t *testing.T) {
	if _, err := NewPID(Params{OutputMin: 10, OutputMax: 10}); !errors.Is(err, ErrInvalidParams) {
		t.Errorf("expected ErrInvalidParams for empty output range, got %v", err)
	}
}
