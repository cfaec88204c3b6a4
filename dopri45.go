package hybridsim

import (
	"math"

	"github.com/gosim/hybridsim/vec"
)

// dopri45Stepper is the adaptive embedded Dormand-Prince 4(5) stepper:
// seven stages per attempt, a 5th order solution advanced (its B5-weighted
// mean slope is written to dy), a 4th order solution used only for the
// embedded error estimate, and a step-size controller that shrinks and
// retries on rejection. Every attempt evaluates all seven stages; the last
// stage is not reused as the first stage of the next step.
type dopri45Stepper struct {
	ode ODEFunc

	h              float64
	abstol, reltol float64
	hmin, hmax     float64

	k1, k2, k3, k4, k5, k6, k7 []float64
	wk, y4, y5, totalTols      []float64
}

// Dormand-Prince Butcher tableau.
const (
	dpC2, dpC3, dpC4, dpC5, dpC6, dpC7 = 1.0 / 5.0, 3.0 / 10.0, 4.0 / 5.0, 8.0 / 9.0, 1.0, 1.0

	dpA21 = 1.0 / 5.0
	dpA31 = 3.0 / 40.0
	dpA32 = 9.0 / 40.0
	dpA41 = 44.0 / 45.0
	dpA42 = -56.0 / 15.0
	dpA43 = 32.0 / 9.0
	dpA51 = 19372.0 / 6561.0
	dpA52 = -25360.0 / 2187.0
	dpA53 = 64448.0 / 6561.0
	dpA54 = -212.0 / 729.0
	dpA61 = -9017.0 / 3168.0
	dpA62 = -355.0 / 33.0
	dpA63 = 46732.0 / 5247.0
	dpA64 = 49.0 / 176.0
	dpA65 = -5103.0 / 18656.0
	dpA71 = 35.0 / 384.0
	dpA73 = 500.0 / 1113.0
	dpA74 = 125.0 / 192.0
	dpA75 = -2187.0 / 6784.0
	dpA76 = 11.0 / 84.0

	// B4 row: 4th order solution coefficients.
	dpB41 = 5179.0 / 57600.0
	dpB43 = 7571.0 / 16695.0
	dpB44 = 393.0 / 640.0
	dpB45 = -92097.0 / 339200.0
	dpB46 = 187.0 / 2100.0
	dpB47 = 1.0 / 40.0

	// B5 row == A7 row (FSAL): 5th order solution / accepted slope.
	dpB51 = dpA71
	dpB53 = dpA73
	dpB54 = dpA74
	dpB55 = dpA75
	dpB56 = dpA76

	dpOrder = 5.0
)

func newDopri45Stepper(cfg Dopri45Config, ode ODEFunc, ny int) *dopri45Stepper {
	if cfg.HMin <= 0 || cfg.HMax < cfg.HMin {
		throwf("hybridsim: Dopri45Config requires 0 < HMin <= HMax, got HMin=%v HMax=%v", cfg.HMin, cfg.HMax)
	}
	h0 := cfg.H0
	if h0 <= 0 {
		h0 = cfg.HMin
	}
	return &dopri45Stepper{
		ode:       ode,
		h:         h0,
		abstol:    cfg.AbsTol,
		reltol:    cfg.RelTol,
		hmin:      cfg.HMin,
		hmax:      cfg.HMax,
		k1:        vec.Zero(ny),
		k2:        vec.Zero(ny),
		k3:        vec.Zero(ny),
		k4:        vec.Zero(ny),
		k5:        vec.Zero(ny),
		k6:        vec.Zero(ny),
		k7:        vec.Zero(ny),
		wk:        vec.Zero(ny),
		y4:        vec.Zero(ny),
		y5:        vec.Zero(ny),
		totalTols: vec.Zero(ny),
	}
}

// Step repeatedly attempts a Dormand-Prince step at the stepper's current
// h, shrinking h and retrying on rejection, until one is accepted (or h
// bottoms out at hmin, at which point the step is forced through
// regardless of its error estimate).
func (s *dopri45Stepper) Step(t float64, y, dy []float64) float64 {
	for {
		e := s.attempt(t, y, dy)
		if e <= 1 {
			nextT := t + s.h
			copy(y, s.y5)
			s.updateStepSize(e)
			return nextT
		}
		if s.h <= s.hmin {
			// Cannot meet tolerance even at the minimum step: force
			// progress with the inaccurate step rather than stalling.
			nextT := t + s.h
			copy(y, s.y5)
			s.updateStepSize(e)
			return nextT
		}
		s.updateStepSize(e)
	}
}

// attempt computes the embedded 4th/5th order solutions at the stepper's
// current h and returns the RMS normalized error E.
func (s *dopri45Stepper) attempt(t float64, y, dy []float64) float64 {
	h := s.h

	s.ode(t, y, s.k1)

	vec.AddScaledTo(s.wk, y, h*dpA21, s.k1)
	s.ode(t+h*dpC2, s.wk, s.k2)

	copy(s.wk, y)
	vec.AddScaled(s.wk, h*dpA31, s.k1)
	vec.AddScaled(s.wk, h*dpA32, s.k2)
	s.ode(t+h*dpC3, s.wk, s.k3)

	copy(s.wk, y)
	vec.AddScaled(s.wk, h*dpA41, s.k1)
	vec.AddScaled(s.wk, h*dpA42, s.k2)
	vec.AddScaled(s.wk, h*dpA43, s.k3)
	s.ode(t+h*dpC4, s.wk, s.k4)

	copy(s.wk, y)
	vec.AddScaled(s.wk, h*dpA51, s.k1)
	vec.AddScaled(s.wk, h*dpA52, s.k2)
	vec.AddScaled(s.wk, h*dpA53, s.k3)
	vec.AddScaled(s.wk, h*dpA54, s.k4)
	s.ode(t+h*dpC5, s.wk, s.k5)

	copy(s.wk, y)
	vec.AddScaled(s.wk, h*dpA61, s.k1)
	vec.AddScaled(s.wk, h*dpA62, s.k2)
	vec.AddScaled(s.wk, h*dpA63, s.k3)
	vec.AddScaled(s.wk, h*dpA64, s.k4)
	vec.AddScaled(s.wk, h*dpA65, s.k5)
	s.ode(t+h*dpC6, s.wk, s.k6)

	copy(s.wk, y)
	vec.AddScaled(s.wk, h*dpA71, s.k1)
	vec.AddScaled(s.wk, h*dpA73, s.k3)
	vec.AddScaled(s.wk, h*dpA74, s.k4)
	vec.AddScaled(s.wk, h*dpA75, s.k5)
	vec.AddScaled(s.wk, h*dpA76, s.k6)
	s.ode(t+h*dpC7, s.wk, s.k7)

	var sumSq float64
	for i := range y {
		s.y4[i] = y[i] + h*(dpB41*s.k1[i]+dpB43*s.k3[i]+dpB44*s.k4[i]+dpB45*s.k5[i]+dpB46*s.k6[i]+dpB47*s.k7[i])

		dy[i] = dpB51*s.k1[i] + dpB53*s.k3[i] + dpB54*s.k4[i] + dpB55*s.k5[i] + dpB56*s.k6[i]
		s.y5[i] = y[i] + h*dy[i]

		s.totalTols[i] = s.abstol + s.reltol*math.Abs(s.y5[i])
		ratio := (s.y5[i] - s.y4[i]) / s.totalTols[i]
		sumSq += ratio * ratio
	}

	return math.Sqrt(sumSq / float64(len(y)))
}

// updateStepSize applies the standard PI-like step-size controller:
// ratio = 0.9*(1/E)^(1/5), clamped to [0.25,4.0], then h is clamped to
// [hmin, hmax].
func (s *dopri45Stepper) updateStepSize(e float64) {
	ratio := 0.9 * math.Pow(1/e, 1.0/dpOrder)
	if ratio < 0.25 {
		ratio = 0.25
	} else if ratio > 4.0 {
		ratio = 4.0
	}
	s.h *= ratio
	if s.h < s.hmin {
		s.h = s.hmin
	} else if s.h > s.hmax {
		s.h = s.hmax
	}
}
