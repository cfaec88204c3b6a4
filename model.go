// Package hybridsim simulates user-defined dynamical models that mix
// continuous ordinary differential equations with discrete events ("beats")
// driving recursive state updates, and fits model parameters to observed
// data by minimizing a least-squares objective. It targets
// pharmacokinetic/pharmacodynamic and similar mechanistic models where a
// system evolves continuously but receives periodic perturbations (dosing,
// sampling) at exact discrete times.
package hybridsim

import "github.com/gosim/hybridsim/beat"

// ODEFunc writes the continuous derivative of y at time t into dy. It must
// write every component of dy and must not retain either slice.
type ODEFunc func(t float64, y, dy []float64)

// SimModel is the callback surface a simulation drives. Implementations own
// a state vector of fixed length NY() and, when they have beats, a
// parallel boolean activation vector of length NB().
type SimModel interface {
	// NY is the length of the state vector y.
	NY() int
	// NB is the number of discrete-event beats, 0 if none.
	NB() int

	// Init returns the initial time and state. Called once per run.
	Init() (t0 float64, y0 []float64)

	// ODE writes the continuous derivative of y at time t into dy.
	ODE(t float64, y, dy []float64)

	// Rec writes the additive jump applied when beats fire into dy. It is
	// called every time the simulator processes an event point, whether or
	// not any beat is currently active; a model with no active beats is
	// expected to leave dy untouched (all zero).
	Rec(t float64, y, dy []float64, act []bool)

	// Cond decides, for the exact current time t, which beats in act
	// should fire. nextT holds each beat's currently scheduled next firing
	// time; Cond may read it but the scheduler owns advancing it.
	Cond(t beat.Time, act []bool, nextT []beat.Time, y []float64)

	// Beats returns the beat timetable given the state at time t. It may
	// be called more than once with the same (t, y) the schedule was
	// initialized with.
	Beats(t float64, y []float64) []beat.Descriptor

	// CRE projects y onto the model's algebraic invariants ("constant
	// relations"). It must be idempotent: CRE(t, CRE(t, y)) == CRE(t, y).
	CRE(t float64, y []float64)
}

// Bounds is an inclusive parameter search range, used by optimizers that
// require bounded search (the genetic algorithm).
type Bounds struct {
	Lo, Hi float64
}

// OptModel extends SimModel with the parameter-vector access optimizers
// need to drive candidate parameter values through a simulation.
type OptModel interface {
	SimModel

	// NP is the length of the full parameter array p.
	NP() int

	// GetX returns the indices into p exposed for optimization and,
	// optionally, their search bounds (nil if the model does not support
	// bounded optimization; required by the genetic algorithm).
	GetX() (xIndex []int, xBounds []Bounds)

	// GetP returns the full parameter array. Callers must not mutate the
	// returned slice; use SetP.
	GetP() []float64

	// SetP assigns p[index] = value.
	SetP(index int, value float64)

	// Clone returns a deep copy of the model sharing no mutable state with
	// the receiver, so that parallel fitness evaluation (genetic algorithm)
	// can drive independent parameter vectors through independent models
	// concurrently.
	Clone() OptModel
}
