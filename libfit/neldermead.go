// Package libfit provides a small derivative-free minimizer for low
// dimensional, noisy objectives.
package libfit

import (
	"github.com/chewxy/math32"
	"golang.org/x/exp/slices"
)

// standard downhill simplex coefficients
const (
	coefReflect  = 1.0
	coefExpand   = 2.0
	coefContract = 0.5
	coefShrink   = 0.5
)

// Objective evaluates a candidate parameter vector. Implementations may keep
// state between calls; the minimizer never evaluates concurrently and never
// retains the slice it passes in.
type Objective func(params []float32) float32

// Result is the outcome of a minimization. Point is always the best vertex
// found, whether or not the simplex converged.
type Result struct {
	Point      []float32
	Value      float32
	Iterations int
	Converged  bool
}

type vertex struct {
	p []float32
	f float32
}

// NelderMead minimizes fn over len(start) dimensions with a downhill simplex
// seeded at start, offset by delta along each axis. It terminates once the
// spread between the best and worst vertex values drops below tolerance, or
// after maxIters iterations, whichever comes first. Non-convergence is not an
// error; check Converged when it matters.
func NelderMead(start []float32, delta, tolerance float32, maxIters int, fn Objective) Result {
	dim := len(start)

	simplex := make([]vertex, dim+1)
	for i := range simplex {
		p := append([]float32(nil), start...)
		if i > 0 {
			p[i-1] += delta
		}
		simplex[i] = vertex{p: p, f: fn(p)}
	}

	rank := func() {
		slices.SortStableFunc(simplex, func(a, b vertex) int {
			switch {
			case a.f < b.f:
				return -1
			case a.f > b.f:
				return 1
			}
			return 0
		})
	}
	rank()

	lo, hi := 0, dim
	centroid := make([]float32, dim)
	trial := make([]float32, dim)
	expanded := make([]float32, dim)

	iters := 0
	converged := false
	for ; iters < maxIters; iters++ {
		if math32.Abs(simplex[hi].f-simplex[lo].f) < tolerance {
			converged = true
			break
		}

		// centroid of the face opposite the worst vertex
		for d := range centroid {
			centroid[d] = 0
		}
		for i := range simplex {
			if i == hi {
				continue
			}
			for d := range centroid {
				centroid[d] += simplex[i].p[d]
			}
		}
		for d := range centroid {
			centroid[d] /= float32(dim)
		}

		// reflect the worst vertex through the centroid
		for d := range trial {
			trial[d] = centroid[d] + coefReflect*(centroid[d]-simplex[hi].p[d])
		}
		fr := fn(trial)

		switch {
		case fr < simplex[lo].f:
			// new best, try expanding further along the same direction
			for d := range expanded {
				expanded[d] = centroid[d] + coefExpand*(trial[d]-centroid[d])
			}
			if fe := fn(expanded); fe < fr {
				copy(simplex[hi].p, expanded)
				simplex[hi].f = fe
			} else {
				copy(simplex[hi].p, trial)
				simplex[hi].f = fr
			}
		case fr < simplex[hi-1].f:
			// better than the second worst, keep the reflection
			copy(simplex[hi].p, trial)
			simplex[hi].f = fr
		default:
			// contract toward the centroid
			for d := range trial {
				trial[d] = centroid[d] + coefContract*(simplex[hi].p[d]-centroid[d])
			}
			if fc := fn(trial); fc < simplex[hi].f {
				copy(simplex[hi].p, trial)
				simplex[hi].f = fc
			} else {
				// shrink everything toward the best vertex
				for i := range simplex {
					if i == lo {
						continue
					}
					for d := range simplex[i].p {
						simplex[i].p[d] = simplex[lo].p[d] + coefShrink*(simplex[i].p[d]-simplex[lo].p[d])
					}
					simplex[i].f = fn(simplex[i].p)
				}
			}
		}

		rank()
	}

	return Result{
		Point:      append([]float32(nil), simplex[lo].p...),
		Value:      simplex[lo].f,
		Iterations: iters,
		Converged:  converged,
	}
}
