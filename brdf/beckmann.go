package brdf

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// Beckmann is the gaussian-slope microfacet model with Walter's rational
// approximation of the Smith lambda term.
type Beckmann struct{}

func (Beckmann) Eval(v, l mgl32.Vec3, alpha float32) (float32, float32) {
	if v.Z() <= 0 {
		return 0, 0
	}

	lambdaV := beckmannLambda(alpha, v.Z())
	var g2 float32
	if l.Z() > 0 {
		g2 = 1.0 / (1.0 + lambdaV + beckmannLambda(alpha, l.Z()))
	}

	h := v.Add(l).Normalize()
	slopeX := h.X() / h.Z()
	slopeY := h.Y() / h.Z()
	d := math32.Exp(-(slopeX*slopeX+slopeY*slopeY)/(alpha*alpha)) /
		(math32.Pi * alpha * alpha * h.Z() * h.Z() * h.Z() * h.Z())

	pdf := math32.Abs(d * h.Z() / 4.0 / v.Dot(h))
	return d * g2 / 4.0 / v.Z(), pdf
}

func (Beckmann) Sample(v mgl32.Vec3, alpha, u1, u2 float32) mgl32.Vec3 {
	phi := 2.0 * math32.Pi * u1
	r := alpha * math32.Sqrt(-math32.Log(1.0-u2))
	n := mgl32.Vec3{r * math32.Cos(phi), r * math32.Sin(phi), 1}.Normalize()
	return n.Mul(2 * n.Dot(v)).Sub(v)
}

// The rational fit is only valid for a < 1.6; beyond that lambda is
// negligible.
func beckmannLambda(alpha, cosTheta float32) float32 {
	if cosTheta >= 1 {
		return 0
	}
	a := 1.0 / alpha / math32.Tan(math32.Acos(cosTheta))
	if a >= 1.6 {
		return 0
	}
	return (1.0 - 1.259*a + 0.396*a*a) / (3.535*a + 2.181*a*a)
}
