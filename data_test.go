package hybridsim_test

import (
	"reflect"
	"testing"

	"github.com/gosim/hybridsim"
)

func TestDataSampleTimesDedupsAndSorts(t *testing.T) {
	data := hybridsim.NewData([]hybridsim.Observation{
		{YIndex: 0, T: 5, YValue: 1},
		{YIndex: 1, T: 1, YValue: 2},
		{YIndex: 0, T: 1, YValue: 3},
		{YIndex: 0, T: 3, YValue: 4},
	})

	got := data.SampleTimes()
	want := []float64{1, 3, 5}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SampleTimes() = %v, want %v", got, want)
	}
}

func TestDataValuesPreservesObservationOrder(t *testing.T) {
	data := hybridsim.NewData([]hybridsim.Observation{
		{YIndex: 0, T: 5, YValue: 10},
		{YIndex: 1, T: 1, YValue: 20},
	})

	got := data.Values()
	want := []float64{10, 20}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Values() = %v, want %v", got, want)
	}
}
