package hybridsim

import "github.com/gosim/hybridsim/vec"

// Objective couples a Simulator with an observation set, reducing a
// parameter vector x to a scalar sum-of-squares residual against the
// observed data.
type Objective struct {
	sim  *Simulator
	data Data

	smpT    []float64
	obsY    []float64
	tyIdx   []tyIndex
	xIndex  []int
	xBounds []Bounds
}

// NewObjective builds an Objective from a simulator and its observation
// set. It returns an *ObservationError if any observation references a
// state index outside the model's state dimension.
func NewObjective(sim *Simulator, data Data) (*Objective, error) {
	optModel, ok := sim.Model.(OptModel)
	if !ok {
		return nil, &ConfigError{Field: "Simulator.Model", Message: "model does not implement OptModel (missing NP/GetX/GetP/SetP)"}
	}

	ny := sim.Model.NY()
	for _, o := range data.Obs {
		if o.YIndex < 0 || o.YIndex >= ny {
			return nil, &ObservationError{Message: "y_index out of range"}
		}
	}

	smpT := data.SampleTimes()
	for _, o := range data.Obs {
		if !containsFloat(smpT, o.T) {
			return nil, &ObservationError{Message: "observation time not present in its own sample-time set"}
		}
	}

	xIndex, xBounds := optModel.GetX()

	return &Objective{
		sim:     sim,
		data:    data,
		smpT:    smpT,
		obsY:    data.Values(),
		tyIdx:   data.indexAgainst(smpT),
		xIndex:  xIndex,
		xBounds: xBounds,
	}, nil
}

func containsFloat(s []float64, v float64) bool {
	for _, x := range s {
		if x == v {
			return true
		}
	}
	return false
}

// LenX is the number of parameters exposed for optimization.
func (o *Objective) LenX() int { return len(o.xIndex) }

// XIndex is the model parameter index optimized by each coordinate of x.
func (o *Objective) XIndex() []int { return o.xIndex }

// XBounds is the per-coordinate optimization bounds, or nil if the model
// did not supply any.
func (o *Objective) XBounds() []Bounds { return o.xBounds }

// X0 reads the current value of every optimized coordinate from the
// model's parameter vector.
func (o *Objective) X0() []float64 {
	p := o.sim.Model.(OptModel).GetP()
	x0 := make([]float64, len(o.xIndex))
	for i, idx := range o.xIndex {
		x0[i] = p[idx]
	}
	return x0
}

// SetX writes x into the model's parameter vector at the indices returned
// by GetX.
func (o *Objective) SetX(x []float64) {
	model := o.sim.Model.(OptModel)
	for i, idx := range o.xIndex {
		model.SetP(idx, x[i])
	}
}

// Obj sets x into the model, runs the simulator, and returns the sum of
// squared residuals against the observation set.
func (o *Objective) Obj(x []float64) float64 {
	o.SetX(x)
	result := o.sim.Run(o.smpT)

	diffs := make([]float64, len(o.tyIdx))
	for k, idx := range o.tyIdx {
		diffs[k] = o.obsY[k] - result.Y[idx.tIndex][idx.yIndex]
	}
	return vec.SumSquares(diffs)
}

// Clone produces an independent Objective sharing no mutable state with
// the receiver, suitable for handing to a parallel fitness worker. The
// underlying model is deep-copied via OptModel.Clone.
func (o *Objective) Clone() *Objective {
	clonedModel := o.sim.Model.(OptModel).Clone()
	clonedSim := &Simulator{Model: clonedModel, Stepper: o.sim.Stepper}
	return &Objective{
		sim:     clonedSim,
		data:    o.data,
		smpT:    append([]float64(nil), o.smpT...),
		obsY:    append([]float64(nil), o.obsY...),
		tyIdx:   append([]tyIndex(nil), o.tyIdx...),
		xIndex:  append([]int(nil), o.xIndex...),
		xBounds: append([]Bounds(nil), o.xBounds...),
	}
}
