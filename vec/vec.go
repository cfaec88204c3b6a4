// Package vec provides elementwise arithmetic helpers for the fixed-length
// state vectors used by the steppers and simulator. Vectors are plain
// []float64 slices allocated once by their owner and reused in place across
// an entire run, mirroring the stack-resident state arrays of the source
// system.
package vec

// Clone returns a new slice with the same contents as s.
func Clone(s []float64) []float64 {
	cp := make([]float64, len(s))
	copy(cp, s)
	return cp
}

// Zero returns a new zero-valued slice of length n.
func Zero(n int) []float64 {
	return make([]float64, n)
}
