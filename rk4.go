package hybridsim

import "github.com/gosim/hybridsim/vec"

// rk4Stepper is the classical fixed-step 4th order Runge-Kutta stepper.
// Stage buffers are allocated once and reused for every Step call, the
// Go-idiomatic equivalent of the source system's stack-resident arrays.
type rk4Stepper struct {
	ode ODEFunc
	h   float64

	k1, k2, k3, k4 []float64
	wk             []float64
}

func newRK4Stepper(cfg RK4Config, ode ODEFunc, ny int) *rk4Stepper {
	if cfg.H <= 0 {
		throwf("hybridsim: RK4Config.H must be positive, got %v", cfg.H)
	}
	return &rk4Stepper{
		ode: ode,
		h:   cfg.H,
		k1:  vec.Zero(ny),
		k2:  vec.Zero(ny),
		k3:  vec.Zero(ny),
		k4:  vec.Zero(ny),
		wk:  vec.Zero(ny),
	}
}

// Step advances y by the fixed step h using the standard 4-stage
// quadrature: y_new = y + h*(k1+2k2+2k3+k4)/6, and writes the mean slope
// into dy such that y_new = y + h*dy.
func (s *rk4Stepper) Step(t float64, y, dy []float64) float64 {
	const overSix = 1.0 / 6.0
	h := s.h

	s.ode(t, y, s.k1)

	vec.AddScaledTo(s.wk, y, 0.5*h, s.k1)
	s.ode(t+0.5*h, s.wk, s.k2)

	vec.AddScaledTo(s.wk, y, 0.5*h, s.k2)
	s.ode(t+0.5*h, s.wk, s.k3)

	vec.AddScaledTo(s.wk, y, h, s.k3)
	s.ode(t+h, s.wk, s.k4)

	for i := range dy {
		dy[i] = (s.k1[i] + 2*s.k2[i] + 2*s.k3[i] + s.k4[i]) * overSix
	}
	vec.AddScaled(y, h, dy)

	return t + h
}
