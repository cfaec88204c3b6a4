package hybridsim

import (
	"math"
	"sort"

	"github.com/gosim/hybridsim/vec"
)

// NelderMeadConfig configures the adaptive Nelder-Mead simplex optimizer.
type NelderMeadConfig struct {
	// MaxIter bounds the number of iterations; 0 means 200*len_x.
	MaxIter int
	// Adaptive selects the dimension-scaled adaptive coefficients instead
	// of the classical rho=1,chi=2,psi=0.5,sigma=0.5 set.
	Adaptive bool
	XAbsTol  float64
	FAbsTol  float64
	Verbose  bool
}

// nmVertex is one point of the simplex together with its objective value.
type nmVertex struct {
	f float64
	x []float64
}

// NelderMead runs the adaptive Nelder-Mead simplex algorithm against obj,
// starting from the model's current parameter values at obj's optimized
// indices.
//
// The expansion and inside-contraction steps deliberately omit the
// centroid term present in the textbook formulas (x_e = rho*chi*(xbar -
// x_worst) rather than xbar + rho*chi*(xbar - x_worst), and similarly for
// inside contraction); this matches the behavior of the system this
// optimizer was ported from and is preserved rather than corrected.
func (cfg NelderMeadConfig) Run(obj *Objective) OptResult {
	n := obj.LenX()

	rho, chi, psi, sigma := nmCoefficients(cfg.Adaptive, n)

	maxIter := cfg.MaxIter
	if maxIter == 0 {
		maxIter = 200 * n
	}

	var logger Logger
	if cfg.Verbose {
		defer logger.flush()
	}
	proc := "--"

	simplex := make([]nmVertex, 0, n+1)
	x0 := obj.X0()
	simplex = append(simplex, nmVertex{f: obj.Obj(x0), x: x0})

	const nonzeroDelta = 0.05
	const zeroDelta = 0.00025
	for k := 0; k < n; k++ {
		x := vec.Clone(x0)
		if x[k] != 0 {
			x[k] = (1 + nonzeroDelta) * x[k]
		} else {
			x[k] = zeroDelta
		}
		simplex = append(simplex, nmVertex{f: obj.Obj(x), x: x})
	}

	if cfg.Verbose {
		logger.Logf("   %s:   f:%.4e    x%v\n", proc, simplex[0].f, simplex[0].x)
	}

	for iter := 0; iter < maxIter; iter++ {
		sortSimplex(simplex)
		if cfg.Verbose {
			logger.Logf("   %s:   f:%.4e    x%v\n", proc, simplex[0].f, simplex[0].x)
		}

		fBest := simplex[0].f
		if nmConverged(simplex, cfg.XAbsTol, cfg.FAbsTol) {
			if cfg.Verbose {
				logger.Logf("Converged.\n")
			}
			break
		}

		xBar := nmCentroid(simplex, n)
		xWorst := simplex[n].x

		xReflect := nmAddScaled(xBar, rho, xBar, xWorst)
		fReflect := obj.Obj(xReflect)

		switch {
		case fBest <= fReflect && fReflect < simplex[n-1].f:
			simplex[n] = nmVertex{f: fReflect, x: xReflect}
			proc = "Re"

		case fReflect < fBest:
			xExpand := nmScaledDiff(rho*chi, xBar, xWorst)
			fExpand := obj.Obj(xExpand)
			if fExpand < fReflect {
				simplex[n] = nmVertex{f: fExpand, x: xExpand}
				proc = "Ex"
			} else {
				simplex[n] = nmVertex{f: fReflect, x: xReflect}
				proc = "Rx"
			}

		case simplex[n-1].f <= fReflect && fReflect < simplex[n].f:
			xOutside := nmAddScaled(xBar, psi*rho, xBar, xWorst)
			fOutside := obj.Obj(xOutside)
			if fOutside <= fReflect {
				simplex[n] = nmVertex{f: fOutside, x: xOutside}
				proc = "Oc"
			} else {
				simplex[n] = nmVertex{f: fReflect, x: xReflect}
				proc = "Ro"
			}

		default:
			xInside := nmScaledDiff(psi, xWorst, xBar)
			fInside := obj.Obj(xInside)
			if fInside < simplex[n].f {
				simplex[n] = nmVertex{f: fInside, x: xInside}
				proc = "Ic"
			} else {
				nmShrink(simplex, sigma, obj)
				proc = "Sh"
			}
		}
	}

	sortSimplex(simplex)
	return OptResult{X: simplex[0].x, Index: obj.XIndex(), F: simplex[0].f}
}

func nmCoefficients(adaptive bool, n int) (rho, chi, psi, sigma float64) {
	if !adaptive {
		return 1, 2, 0.5, 0.5
	}
	nf := float64(n)
	return 1, 1 + 2/nf, 0.75 - 1/(2*nf), 1 - 1/nf
}

func sortSimplex(simplex []nmVertex) {
	sort.SliceStable(simplex, func(i, j int) bool { return simplex[i].f < simplex[j].f })
}

func nmCentroid(simplex []nmVertex, n int) []float64 {
	sum := vec.Clone(simplex[0].x)
	for i := 1; i < n; i++ {
		vec.Add(sum, simplex[i].x)
	}
	vec.Scale(1/float64(n), sum)
	return sum
}

// nmAddScaled returns base + alpha*(a-b).
func nmAddScaled(base []float64, alpha float64, a, b []float64) []float64 {
	diff := vec.SubTo(make([]float64, len(a)), a, b)
	out := vec.Clone(base)
	vec.AddScaled(out, alpha, diff)
	return out
}

// nmScaledDiff returns alpha*(a-b), with no added base term (see the bug
// preserved in expansion and inside contraction above).
func nmScaledDiff(alpha float64, a, b []float64) []float64 {
	diff := vec.SubTo(make([]float64, len(a)), a, b)
	vec.Scale(alpha, diff)
	return diff
}

func nmShrink(simplex []nmVertex, sigma float64, obj *Objective) {
	best := simplex[0].x
	for i := 1; i < len(simplex); i++ {
		x := nmAddScaled(best, sigma, simplex[i].x, best)
		simplex[i] = nmVertex{f: obj.Obj(x), x: x}
	}
}

func nmConverged(simplex []nmVertex, xAbsTol, fAbsTol float64) bool {
	bestF := simplex[0].f
	bestX := simplex[0].x
	var maxFDiff, maxXDiff float64
	for _, v := range simplex[1:] {
		if d := math.Abs(bestF - v.f); d > maxFDiff {
			maxFDiff = d
		}
		diff := vec.SubTo(make([]float64, len(bestX)), bestX, v.x)
		vec.Abs(diff)
		if d := vec.Max(diff); d > maxXDiff {
			maxXDiff = d
		}
	}
	return maxXDiff <= xAbsTol && maxFDiff <= fAbsTol
}
