// Package ltc implements the core of the fitter: the linearly transformed
// cosine lobe, the Monte-Carlo estimators that score a candidate lobe against
// a target BRDF, and the grid fitter that produces the lookup table.
package ltc

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Lobe is a linearly transformed cosine distribution: a clamped cosine lobe
// reshaped by the matrix built from the orthonormal frame X, Y, Z and the
// three free shape scalars. Amplitude is the total integrated energy, so
// Eval(l)/Amplitude is the lobe's sampling density at l.
//
// The matrix and its cached inverse are derived state; Update must run after
// any mutation of the frame or scalars before Sample or Eval are trusted.
type Lobe struct {
	Amplitude float32

	M11, M22, M13 float32

	X, Y, Z mgl32.Vec3

	m    mgl32.Mat3
	invM mgl32.Mat3
	detM float32
}

// NewLobe returns a unit cosine lobe aligned with +Z.
func NewLobe() *Lobe {
	lb := &Lobe{
		Amplitude: 1,
		M11:       1,
		M22:       1,
		X:         mgl32.Vec3{1, 0, 0},
		Y:         mgl32.Vec3{0, 1, 0},
		Z:         mgl32.Vec3{0, 0, 1},
	}
	lb.Update()
	return lb
}

// Update rebuilds the transform from the current frame and shape scalars.
func (lb *Lobe) Update() {
	lb.m = mgl32.Mat3FromCols(
		lb.X.Mul(lb.M11),
		lb.Y.Mul(lb.M22),
		lb.X.Mul(lb.M13).Add(lb.Z),
	)
	lb.invM = lb.m.Inv()
	lb.detM = math32.Abs(lb.m.Det())
}

// Matrix returns the transform as of the last Update.
func (lb *Lobe) Matrix() mgl32.Mat3 {
	return lb.m
}

// Eval returns the lobe's amplitude-scaled density at direction l.
func (lb *Lobe) Eval(l mgl32.Vec3) float32 {
	orig := lb.invM.Mul3x1(l).Normalize()
	back := lb.m.Mul3x1(orig)

	ln := back.Len()
	jacobian := lb.detM / (ln * ln * ln)
	d := math32.Max(0, orig.Z()) / math32.Pi
	return lb.Amplitude * d / jacobian
}

// Sample draws a direction from the transformed cosine distribution.
func (lb *Lobe) Sample(u1, u2 float32) mgl32.Vec3 {
	theta := math32.Acos(math32.Sqrt(u1))
	phi := 2.0 * math32.Pi * u2
	c := mgl32.Vec3{
		math32.Sin(theta) * math32.Cos(phi),
		math32.Sin(theta) * math32.Sin(phi),
		math32.Cos(theta),
	}
	return lb.m.Mul3x1(c).Normalize()
}
