package beat

// CondFunc is the model callback that decides, for the exact current time
// t, which beats fire (writes into act) given the schedule's current next
// firing times. It mirrors the "cond" entry of the model contract.
type CondFunc func(t Time, act []bool, nextT []Time, y []float64)

// Scheduler tracks the per-beat next-firing time across a run, in exact
// rational arithmetic, and the activation state decided each step by the
// model's CondFunc (seeded from each descriptor's InitialActive). A beat
// that advances past its End is marked stopped and never fires again.
type Scheduler struct {
	descriptors []Descriptor
	nextT       []Time
	act         []bool
	stopped     Time
	endT        Time
}

// NewScheduler builds a Scheduler for the given beat descriptors, with the
// simulation starting at t0 and ending no later than endT. Each beat's
// first firing time is max(t0, descriptor.Start).
func NewScheduler(t0, endT float64, descriptors []Descriptor) *Scheduler {
	dt0 := FromFloat(t0)
	dEnd := FromFloat(endT)
	stopped := dEnd.Add(decimalOne)

	nextT := make([]Time, len(descriptors))
	act := make([]bool, len(descriptors))
	for i, d := range descriptors {
		act[i] = d.InitialActive
		if dt0.LessThan(d.Start) {
			nextT[i] = d.Start
		} else {
			nextT[i] = dt0
		}
	}
	return &Scheduler{
		descriptors: descriptors,
		nextT:       nextT,
		act:         act,
		stopped:     stopped,
		endT:        dEnd,
	}
}

var decimalOne = FromFloat(1)

// Step evaluates cond at exact time t, advances each active beat's next
// firing time by its interval (marking it stopped if that would carry it
// past its End), and returns the earliest next firing time across all
// beats, clamped to the simulation end time, as a float64 suitable for use
// as the next ODE-segment endpoint. The activation flags written by cond
// are retained and can be read back with Active.
func (s *Scheduler) Step(t float64, y []float64, cond CondFunc) float64 {
	dt := FromFloat(t)
	cond(dt, s.act, s.nextT, y)

	for i, active := range s.act {
		if !active {
			continue
		}
		candidate := s.nextT[i].Add(s.descriptors[i].Interval)
		if candidate.LessThanOrEqual(s.descriptors[i].End) {
			s.nextT[i] = candidate
		} else {
			s.nextT[i] = s.stopped
		}
	}

	if len(s.nextT) == 0 {
		return s.endT.InexactFloat64()
	}
	earliest := s.nextT[0]
	for _, nt := range s.nextT[1:] {
		if nt.LessThan(earliest) {
			earliest = nt
		}
	}
	if earliest.LessThan(s.endT) {
		return earliest.InexactFloat64()
	}
	return s.endT.InexactFloat64()
}

// Active reports whether beat i fired on the most recent Step call.
func (s *Scheduler) Active(i int) bool {
	return s.act[i]
}

// ActiveSlice exposes the activation flags written by the most recent Step
// call, for passing directly into a model's Rec callback.
func (s *Scheduler) ActiveSlice() []bool {
	return s.act
}
