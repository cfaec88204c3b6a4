package hybridsim_test

import (
	"math"
	"testing"

	"github.com/gosim/hybridsim"
)

func TestGARequiresBounds(t *testing.T) {
	model := newTwoCompartmentFit(0.1, 0.1)

	// An unbounded model: GetX returns no bounds.
	unboundedModel := &unboundedFit{twoCompartmentFit: *model}
	unboundedSim := hybridsim.NewSimulator(unboundedModel, referenceStepper())

	obj, err := hybridsim.NewObjective(unboundedSim, referenceDataset())
	if err != nil {
		t.Fatalf("NewObjective: %v", err)
	}

	_, err = hybridsim.GAConfig{MaxGen: 1, NPop: 10, MutationRate: 0.5}.Run(obj)
	if err == nil {
		t.Fatal("expected a ConfigError when the model supplies no x_bounds")
	}
}

type unboundedFit struct {
	twoCompartmentFit
}

func (m *unboundedFit) GetX() (xIndex []int, xBounds []hybridsim.Bounds) {
	return []int{0, 1}, nil
}

func TestGARespectsBoundsAndReturnsFiniteFitness(t *testing.T) {
	model := newTwoCompartmentFit(0.1, 0.1)
	sim := hybridsim.NewSimulator(model, referenceStepper())
	obj, err := hybridsim.NewObjective(sim, referenceDataset())
	if err != nil {
		t.Fatalf("NewObjective: %v", err)
	}

	cfg := hybridsim.GAConfig{MaxGen: 5, NPop: 20, MutationRate: 0.5}
	result, err := cfg.Run(obj)
	if err != nil {
		t.Fatalf("GA run: %v", err)
	}

	bounds := obj.XBounds()
	for i, x := range result.X {
		if x < bounds[i].Lo || x > bounds[i].Hi {
			t.Errorf("result.X[%d] = %v out of bounds [%v,%v]", i, x, bounds[i].Lo, bounds[i].Hi)
		}
	}
	if math.IsNaN(result.F) || math.IsInf(result.F, 0) {
		t.Errorf("GA returned a non-finite objective value: %v", result.F)
	}
}
