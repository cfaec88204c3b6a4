package hybridsim

// Stepper advances an ODE system one bounded time step. It owns all of its
// stage storage so that a single Step call allocates nothing.
type Stepper interface {
	// Step advances one accepted step from t, overwriting y with the new
	// state and writing the step's mean slope into dy (so that
	// y_new = y_old + (t_next-t)*dy, used by the simulator to
	// linearly interpolate sample outputs between accepted steps). It
	// returns the new time t_next.
	Step(t float64, y, dy []float64) (tNext float64)
}

// StepperKind tags which concrete Stepper a StepperConfig selects.
type StepperKind int

const (
	// KindRK4 selects the classical fixed-step 4th order Runge-Kutta
	// stepper.
	KindRK4 StepperKind = iota
	// KindDopri45 selects the adaptive embedded Dormand-Prince 4(5)
	// stepper.
	KindDopri45
)

// RK4Config configures the fixed-step classical Runge-Kutta stepper.
type RK4Config struct {
	// H is the fixed step size. Must be positive.
	H float64
}

// Dopri45Config configures the adaptive Dormand-Prince 4(5) stepper.
type Dopri45Config struct {
	H0         float64 // initial step size
	AbsTol     float64 // absolute error tolerance
	RelTol     float64 // relative error tolerance
	HMin, HMax float64 // step-size bounds
}

// StepperConfig is a tagged configuration selecting one concrete Stepper,
// following the source system's "plain struct selected by a tag" style
// rather than a stepper class hierarchy (see spec.md design note "Tagged
// configuration vs. inheritance").
type StepperConfig struct {
	Kind    StepperKind
	RK4     RK4Config
	Dopri45 Dopri45Config
}

// NewStepper builds the concrete Stepper selected by cfg.Kind, bound to the
// given ODE and state-vector length ny.
func NewStepper(cfg StepperConfig, ode ODEFunc, ny int) Stepper {
	switch cfg.Kind {
	case KindRK4:
		return newRK4Stepper(cfg.RK4, ode, ny)
	case KindDopri45:
		return newDopri45Stepper(cfg.Dopri45, ode, ny)
	default:
		throwf("hybridsim: unknown StepperKind %d", cfg.Kind)
		return nil
	}
}
