package hybridsim_test

import (
	"math"
	"testing"

	"github.com/gosim/hybridsim"
	"github.com/gosim/hybridsim/beat"
)

// twoCompartment is scenario E1: a closed two-compartment linear system
// with an analytic solution.
type twoCompartment struct {
	y0 []float64
}

func (m *twoCompartment) NY() int { return 2 }
func (m *twoCompartment) NB() int { return 0 }
func (m *twoCompartment) Init() (float64, []float64) {
	return 0, append([]float64(nil), m.y0...)
}
func (m *twoCompartment) ODE(t float64, y, dy []float64) {
	dy[0] = -0.2*y[0] + 0.05*y[1]
	dy[1] = 0.2*y[0] - 0.05*y[1]
}
func (m *twoCompartment) Rec(t float64, y, dy []float64, act []bool) {}
func (m *twoCompartment) Cond(t beat.Time, act []bool, nextT []beat.Time, y []float64) {}
func (m *twoCompartment) Beats(t float64, y []float64) []beat.Descriptor { return nil }
func (m *twoCompartment) CRE(t float64, y []float64)                    {}

func TestSimulatorTwoCompartmentMatchesAnalyticSolution(t *testing.T) {
	model := &twoCompartment{y0: []float64{100, 0}}
	sim := hybridsim.NewSimulator(model, hybridsim.StepperConfig{
		Kind: hybridsim.KindDopri45,
		Dopri45: hybridsim.Dopri45Config{
			H0:     1e-3,
			AbsTol: 1e-6,
			RelTol: 1e-6,
			HMin:   1e-6,
			HMax:   1e-3,
		},
	})

	sampleTimes := make([]float64, 0, 5001)
	for tt := 0.0; tt <= 50.0+1e-9; tt += 0.01 {
		sampleTimes = append(sampleTimes, tt)
	}

	result := sim.Run(sampleTimes)

	checks := []struct {
		t, y0, y1 float64
	}{
		{0.1, 98.0248, 1.9752},
		{1, 82.3041, 17.6959},
		{10, 26.5668, 73.4332},
		{50, 20.0003, 79.9997},
	}

	for _, c := range checks {
		idx := closestIndex(result.T, c.t)
		if math.Abs(result.T[idx]-c.t) > 1e-9 {
			t.Fatalf("no sample at t=%v", c.t)
		}
		if math.Abs(result.Y[idx][0]-c.y0) > 5e-4 {
			t.Errorf("t=%v: y0 = %v, want %v", c.t, result.Y[idx][0], c.y0)
		}
		if math.Abs(result.Y[idx][1]-c.y1) > 5e-4 {
			t.Errorf("t=%v: y1 = %v, want %v", c.t, result.Y[idx][1], c.y1)
		}
	}
}

func TestSimulatorMonotoneEmissionAndSampleCount(t *testing.T) {
	model := &twoCompartment{y0: []float64{100, 0}}
	sim := hybridsim.NewSimulator(model, hybridsim.StepperConfig{
		Kind: hybridsim.KindRK4,
		RK4:  hybridsim.RK4Config{H: 0.01},
	})

	sampleTimes := []float64{5, 1, 3, 1, -1, 3}
	result := sim.Run(sampleTimes)

	// dedup({1,3,5} filtered to >= t0=0) => 3 distinct emitted samples.
	if len(result.T) != 3 {
		t.Fatalf("len(T) = %d, want 3", len(result.T))
	}
	for i := 1; i < len(result.T); i++ {
		if result.T[i] <= result.T[i-1] {
			t.Fatalf("emission not strictly increasing at index %d: %v <= %v", i, result.T[i], result.T[i-1])
		}
	}
}

func TestSimulatorEmptySampleTimesYieldsOneRecord(t *testing.T) {
	model := &twoCompartment{y0: []float64{100, 0}}
	sim := hybridsim.NewSimulator(model, hybridsim.StepperConfig{
		Kind: hybridsim.KindRK4,
		RK4:  hybridsim.RK4Config{H: 0.01},
	})

	result := sim.Run(nil)
	if len(result.T) != 1 {
		t.Fatalf("len(T) = %d, want 1", len(result.T))
	}
	if result.T[0] != 0 {
		t.Errorf("T[0] = %v, want t0=0", result.T[0])
	}
}

// beatCounter is scenario E4: a single beat with no ODE dynamics that adds
// 1 to y[0] every time it fires.
type beatCounter struct{}

func (beatCounter) NY() int { return 1 }
func (beatCounter) NB() int { return 1 }
func (beatCounter) Init() (float64, []float64) {
	return 0, []float64{0}
}
func (beatCounter) ODE(t float64, y, dy []float64) { dy[0] = 0 }
func (beatCounter) Rec(t float64, y, dy []float64, act []bool) {
	if act[0] {
		dy[0] = 1
	}
}
func (beatCounter) Cond(t beat.Time, act []bool, nextT []beat.Time, y []float64) {
	act[0] = t.Equal(nextT[0])
}
func (beatCounter) Beats(t float64, y []float64) []beat.Descriptor {
	return []beat.Descriptor{beat.NewDescriptor(0, 1, 0.1, true)}
}
func (beatCounter) CRE(t float64, y []float64) {}

func TestSimulatorBeatFiresElevenTimes(t *testing.T) {
	model := beatCounter{}
	sim := hybridsim.NewSimulator(model, hybridsim.StepperConfig{
		Kind: hybridsim.KindRK4,
		RK4:  hybridsim.RK4Config{H: 0.05},
	})

	result := sim.Run([]float64{0, 1})

	last := result.Y[len(result.Y)-1]
	if last[0] != 11 {
		t.Errorf("y[0] at t=1 = %v, want 11 (11 firings)", last[0])
	}
}

func closestIndex(ts []float64, target float64) int {
	best := 0
	bestDiff := math.Abs(ts[0] - target)
	for i, t := range ts {
		if d := math.Abs(t - target); d < bestDiff {
			best = i
			bestDiff = d
		}
	}
	return best
}
