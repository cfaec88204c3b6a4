package hybridsim

import "sort"

// Observation is a single data point tying a simulated state component to
// an observed value at a given time. TErr and YErr are reserved for future
// weighting and are not consumed by Objective yet.
type Observation struct {
	YIndex int
	T      float64
	YValue float64
	TErr   *float64
	YErr   *float64
}

// Data is the observation set an Objective is fit against: an external
// collaborator per the model contract, supplied by the caller rather than
// produced by the simulator itself.
type Data struct {
	Obs []Observation
}

// NewData wraps a slice of observations, taking ownership of it.
func NewData(obs []Observation) Data {
	return Data{Obs: obs}
}

// SampleTimes returns the sorted, deduplicated set of times referenced by
// the observation set, suitable as the sample_times argument to
// Simulator.Run.
func (d Data) SampleTimes() []float64 {
	ts := make([]float64, len(d.Obs))
	for i, o := range d.Obs {
		ts[i] = o.T
	}
	sort.Float64s(ts)
	return dedupSorted(ts)
}

// Values returns the observed y values in observation order.
func (d Data) Values() []float64 {
	vs := make([]float64, len(d.Obs))
	for i, o := range d.Obs {
		vs[i] = o.YValue
	}
	return vs
}

// tyIndex is the (time-index, y-index) pair locating an observation within
// a simulation trajectory sampled at smpT.
type tyIndex struct {
	tIndex, yIndex int
}

// indexAgainst resolves each observation's time against smpT (as produced
// by SampleTimes), returning one tyIndex per observation in input order.
func (d Data) indexAgainst(smpT []float64) []tyIndex {
	idx := make([]tyIndex, len(d.Obs))
	for k, o := range d.Obs {
		tIdx := 0
		for j, t := range smpT {
			if o.T == t {
				tIdx = j
			}
		}
		idx[k] = tyIndex{tIndex: tIdx, yIndex: o.YIndex}
	}
	return idx
}

func dedupSorted(ts []float64) []float64 {
	if len(ts) == 0 {
		return ts
	}
	out := ts[:1]
	for _, t := range ts[1:] {
		if t != out[len(out)-1] {
			out = append(out, t)
		}
	}
	return out
}
