package hybridsim

import (
	"sort"

	"github.com/gosim/hybridsim/beat"
	"github.com/gosim/hybridsim/vec"
)

// SimResult is the trajectory produced by a Simulator run: T[i] is the
// time of the i-th emitted sample and Y[i] its state vector.
type SimResult struct {
	T []float64
	Y [][]float64
}

// Simulator drives a model forward from its initial time to the end of the
// requested sample times, interleaving ODE integration with discrete beat
// recursion.
type Simulator struct {
	Model   SimModel
	Stepper StepperConfig
}

// NewSimulator pairs a model with the stepper configuration used to
// integrate it.
func NewSimulator(model SimModel, stepper StepperConfig) *Simulator {
	return &Simulator{Model: model, Stepper: stepper}
}

// Run integrates the model from t0 to the last requested sample time,
// returning the state at every retained sample point.
func (sim *Simulator) Run(sampleTimes []float64) SimResult {
	t0, y0 := sim.Model.Init()
	ny := sim.Model.NY()

	beats := sim.Model.Beats(t0, y0)
	smpT, endT := normalizeSampleTimes(t0, sampleTimes)

	sched := beat.NewScheduler(t0, endT, beats)
	stepper := NewStepper(sim.Stepper, sim.Model.ODE, ny)

	curT := t0
	curY := vec.Clone(y0)
	deltaY := vec.Zero(ny)
	derivY := vec.Zero(ny)

	var resT []float64
	var resY [][]float64

	for {
		nextT := sched.Step(curT, curY, sim.Model.Cond)

		sim.Model.Rec(curT, curY, deltaY, sched.ActiveSlice())
		vec.Add(curY, deltaY)
		for i := range deltaY {
			deltaY[i] = 0
		}
		sim.Model.CRE(curT, curY)

		if curT >= endT {
			break
		}

		sim.integrateSegment(stepper, curT, nextT, &smpT, curY, derivY, &resT, &resY)

		curT = nextT
	}

	resT = append(resT, curT)
	resY = append(resY, vec.Clone(curY))

	return SimResult{T: resT, Y: resY}
}

// integrateSegment repeatedly steps the stepper from t0 until it overshoots
// endT, emitting a linearly interpolated sample for every pending sample
// time earlier than both the end of the step just completed and endT (a
// sample at the step's start time included). curY is updated
// in place to the state at the last accepted step.
func (sim *Simulator) integrateSegment(
	stepper Stepper,
	t0, endT float64,
	smpT *[]float64,
	curY, derivY []float64,
	resT *[]float64,
	resY *[][]float64,
) {
	t := t0
	newY := vec.Clone(curY)

	for {
		newT := stepper.Step(t, newY, derivY)

		for len(*smpT) > 0 && (*smpT)[0] < newT && (*smpT)[0] < endT {
			outT := (*smpT)[0]
			*smpT = (*smpT)[1:]

			outY := make([]float64, len(curY))
			for i := range outY {
				outY[i] = curY[i] + (outT-t)*derivY[i]
			}
			sim.Model.CRE(outT, outY)

			*resT = append(*resT, outT)
			*resY = append(*resY, outY)
		}

		t = newT
		copy(curY, newY)

		if newT > endT {
			break
		}
	}
}

// normalizeSampleTimes sorts and dedups the caller's sample times, drops
// anything earlier than t0, and returns the remaining FIFO together with
// the run's end time (t0 itself if nothing remains).
func normalizeSampleTimes(t0 float64, sampleTimes []float64) (smpT []float64, endT float64) {
	ts := append([]float64(nil), sampleTimes...)
	sort.Float64s(ts)
	ts = dedupSorted(ts)

	kept := ts[:0]
	for _, t := range ts {
		if t >= t0 {
			kept = append(kept, t)
		}
	}
	if len(kept) == 0 {
		return nil, t0
	}
	return kept, kept[len(kept)-1]
}
