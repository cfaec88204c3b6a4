package beat

import "testing"

// fireOnSchedule is the kind of CondFunc a real model supplies: fire
// whenever the exact current time equals the beat's recorded next time.
func fireOnSchedule(t Time, act []bool, nextT []Time, y []float64) {
	for i := range act {
		act[i] = t.Equal(nextT[i])
	}
}

func TestSchedulerFiresOnExactInterval(t *testing.T) {
	// start=0, end=1, interval=0.1, initially active: fires at
	// 0,0.1,...,1.0 inclusive -> 11 firings (E4 in spec.md).
	sched := NewScheduler(0, 1, []Descriptor{NewDescriptor(0, 1, 0.1, true)})

	fires := 0
	cur := 0.0
	for {
		next := sched.Step(cur, nil, fireOnSchedule)
		if sched.Active(0) {
			fires++
		}
		if cur >= 1 {
			break
		}
		cur = next
	}
	if fires != 11 {
		t.Fatalf("expected 11 firings over [0,1] at interval 0.1, got %d", fires)
	}
}

func TestSchedulerStopsAfterEnd(t *testing.T) {
	d := NewDescriptor(0, 0.25, 0.1, true)
	sched := NewScheduler(0, 1, []Descriptor{d})

	next := sched.Step(0, nil, fireOnSchedule) // fires at 0, advances nextT to 0.1
	if !sched.Active(0) {
		t.Fatal("expected beat to fire at t=0")
	}
	if next != 0.1 {
		t.Fatalf("expected next firing at 0.1, got %v", next)
	}

	next = sched.Step(0.1, nil, fireOnSchedule)
	if next != 0.2 {
		t.Fatalf("expected next firing at 0.2, got %v", next)
	}

	// 0.2+0.1 = 0.3 > end(0.25), so the beat should stop: earliest
	// becomes the stopped sentinel, clamped to endT=1.
	next = sched.Step(0.2, nil, fireOnSchedule)
	if next != 1 {
		t.Fatalf("expected beat to stop and clamp to simulation end, got %v", next)
	}
}

func TestFromFloatRoundTrip(t *testing.T) {
	for _, f := range []float64{0, 0.1, 0.2, 1.5, 100.25} {
		got := FromFloat(f).InexactFloat64()
		if got != f {
			t.Errorf("FromFloat(%v) round-trip = %v", f, got)
		}
	}
}
