package vec

import (
	"math"

	"gonum.org/v1/gonum/floats"
)

// Abs takes the absolute value of every element of dst, in place.
func Abs(dst []float64) {
	for i := range dst {
		dst[i] = math.Abs(dst[i])
	}
}

// Add performs dst = dst + s elementwise.
// It panics if the slice lengths do not match.
func Add(dst, s []float64) {
	floats.Add(dst, s)
}

// AddTo performs dst = s + t elementwise and returns dst.
// It panics if the slice lengths do not match.
func AddTo(dst, s, t []float64) []float64 {
	floats.AddTo(dst, s, t)
	return dst
}

// AddScaled performs dst = dst + alpha*s elementwise.
// It panics if the slice lengths do not match.
func AddScaled(dst []float64, alpha float64, s []float64) {
	floats.AddScaled(dst, alpha, s)
}

// AddScaledTo performs dst = y + alpha*s elementwise and returns dst.
// It panics if the slice lengths do not match.
func AddScaledTo(dst, y []float64, alpha float64, s []float64) []float64 {
	floats.AddScaledTo(dst, y, alpha, s)
	return dst
}

// Scale multiplies every element of dst by c, in place.
func Scale(c float64, dst []float64) {
	floats.Scale(c, dst)
}

// ScaleTo multiplies the elements of s by c and stores the result in dst.
// It panics if the slice lengths do not match.
func ScaleTo(dst []float64, c float64, s []float64) []float64 {
	floats.ScaleTo(dst, c, s)
	return dst
}

// Sub performs dst = dst - s elementwise.
// It panics if the slice lengths do not match.
func Sub(dst, s []float64) {
	floats.Sub(dst, s)
}

// SubTo performs dst = s - t elementwise and returns dst.
// It panics if the slice lengths do not match.
func SubTo(dst, s, t []float64) []float64 {
	floats.SubTo(dst, s, t)
	return dst
}

// Max returns the maximum value in s.
func Max(s []float64) float64 {
	return floats.Max(s)
}

// SumSquares returns the sum of the squares of the elements of s.
func SumSquares(s []float64) float64 {
	return floats.Dot(s, s)
}
