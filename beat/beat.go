// Package beat schedules the discrete-event "beats" that drive recursive
// state updates in a hybrid ODE/event simulation. Beat times are kept in
// exact rational (decimal) arithmetic so that a schedule such as
// (0.1, 0.2, 0.3, ...) never drifts against repeated floating-point
// addition; floating-point time is used only once a beat's firing instant
// is handed to the ODE integrator as a segment endpoint.
package beat

import "github.com/shopspring/decimal"

// Time is an exact rational instant used only for beat scheduling.
type Time = decimal.Decimal

// FromFloat converts a float64 to an exact Time by parsing its canonical
// decimal string representation, so that round-tripping through Time and
// back to float64 is stable.
func FromFloat(f float64) Time {
	return decimal.NewFromFloat(f)
}

// Descriptor is a single beat's schedule: it starts at Start, fires every
// Interval while active, and never fires past End. InitialActive reports
// whether the beat is armed the instant the simulation begins.
type Descriptor struct {
	Start         Time
	End           Time
	Interval      Time
	InitialActive bool
}

// NewDescriptor builds a Descriptor from float64 endpoints, parsing each
// through FromFloat.
func NewDescriptor(start, end, interval float64, initialActive bool) Descriptor {
	return Descriptor{
		Start:         FromFloat(start),
		End:           FromFloat(end),
		Interval:      FromFloat(interval),
		InitialActive: initialActive,
	}
}
