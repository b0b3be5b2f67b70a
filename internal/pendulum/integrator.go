package pendulum

import "math"

// Timestep is the fixed step used for every frame. The loop does not measure
// real elapsed time, so simulated speed follows the display refresh rate.
const Timestep = 1.0 / 60.0

// Step advances s by dt using semi-implicit Euler with the damping factor
// applied to the velocity before the angle update. Nothing is clamped.
func Step(s *State, p SimulationParameters, dt float64) {
	acceleration := -(p.Gravity / p.Length) * math.Sin(s.Angle)
	s.AngularVelocity += acceleration * dt
	s.AngularVelocity *= p.Damping
	s.Angle += s.AngularVelocity * dt
}

// Energy returns the specific mechanical energy (per unit mass) of s. It is
// used to watch for runaway parameter choices, not by the integrator.
func Energy(s State, p SimulationParameters) float64 {
	v := p.Length * s.AngularVelocity
	return 0.5*v*v + p.Gravity*p.Length*(1-math.Cos(s.Angle))
}
