package pendulum

import (
	"math"
	"testing"
)

func TestStepEquilibriumWithoutGravity(t *testing.T) {
	s := NewState()
	p := SimulationParameters{Length: 5, Gravity: 0, Damping: 1}

	for i := 0; i < 1000; i++ {
		Step(&s, p, Timestep)
		if s.AngularVelocity != 0 {
			t.Fatalf("step %d: velocity = %v, want 0", i, s.AngularVelocity)
		}
		if s.Angle != InitialAngle {
			t.Fatalf("step %d: angle = %v, want %v", i, s.Angle, InitialAngle)
		}
	}
}

func TestStepSingleStep(t *testing.T) {
	s := State{Angle: math.Pi / 3}
	p := SimulationParameters{Length: 5, Gravity: 9.8, Damping: 1}
	dt := 1.0 / 60.0

	Step(&s, p, dt)

	wantAcc := -9.8 / 5 * math.Sin(math.Pi/3)
	if math.Abs(wantAcc-(-1.6974)) > 1e-4 {
		t.Fatalf("acceleration = %v, want ~-1.6974", wantAcc)
	}
	wantVel := wantAcc * dt
	wantAngle := math.Pi/3 + wantVel*dt

	if math.Abs(s.AngularVelocity-wantVel) > 1e-12 {
		t.Errorf("velocity = %v, want %v", s.AngularVelocity, wantVel)
	}
	if math.Abs(s.Angle-wantAngle) > 1e-12 {
		t.Errorf("angle = %v, want %v", s.Angle, wantAngle)
	}
	if math.Abs(s.AngularVelocity-(-0.028290)) > 1e-6 {
		t.Errorf("velocity = %v, want ~-0.028290", s.AngularVelocity)
	}
	if math.Abs(s.Angle-1.046726) > 1e-6 {
		t.Errorf("angle = %v, want ~1.046726", s.Angle)
	}
}

func TestStepDampingIsGeometric(t *testing.T) {
	tests := []struct {
		name    string
		damping float64
	}{
		{"light", 0.99},
		{"medium", 0.9},
		{"heavy", 0.5},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v0 := 2.0
			s := State{Angle: 0.3, AngularVelocity: v0}
			p := SimulationParameters{Length: 5, Gravity: 0, Damping: tt.damping}

			prev := math.Abs(v0)
			for n := 1; n <= 50; n++ {
				Step(&s, p, Timestep)
				got := math.Abs(s.AngularVelocity)
				if got > prev {
					t.Fatalf("step %d: |velocity| grew from %v to %v", n, prev, got)
				}
				want := v0 * math.Pow(tt.damping, float64(n))
				if math.Abs(s.AngularVelocity-want) > 1e-9 {
					t.Fatalf("step %d: velocity = %v, want %v", n, s.AngularVelocity, want)
				}
				prev = got
			}
		})
	}
}

func TestStepAngleIsNotWrapped(t *testing.T) {
	s := State{Angle: 0, AngularVelocity: 600}
	p := SimulationParameters{Length: 1, Gravity: 0, Damping: 1}

	for i := 0; i < 10; i++ {
		Step(&s, p, Timestep)
	}
	if math.Abs(s.Angle-100) > 1e-9 {
		t.Errorf("angle = %v, want 100 (no wrapping)", s.Angle)
	}
}

func TestStepSwingsTowardRest(t *testing.T) {
	s := NewState()
	p := SimulationParameters{Length: DefaultLength, Gravity: DefaultGravity, Damping: DefaultDamping}

	start := Energy(s, p)
	for i := 0; i < 600; i++ {
		Step(&s, p, Timestep)
	}
	if end := Energy(s, p); end >= start {
		t.Errorf("energy after 10s = %v, want below initial %v", end, start)
	}
}

func TestEnergyAtRest(t *testing.T) {
	p := SimulationParameters{Length: 2, Gravity: 9.8, Damping: 1}
	if e := Energy(State{}, p); e != 0 {
		t.Errorf("energy at rest = %v, want 0", e)
	}
	// Horizontal and still: g * L.
	e := Energy(State{Angle: math.Pi / 2}, p)
	if math.Abs(e-19.6) > 1e-9 {
		t.Errorf("energy at 90 degrees = %v, want 19.6", e)
	}
}
