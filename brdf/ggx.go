package brdf

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// GGX is the Trowbridge-Reitz microfacet model with the Smith
// height-correlated masking-shadowing term, importance-sampled in slope
// space.
type GGX struct{}

func (GGX) Eval(v, l mgl32.Vec3, alpha float32) (float32, float32) {
	if v.Z() <= 0 {
		return 0, 0
	}

	lambdaV := ggxLambda(alpha, v.Z())
	var g2 float32
	if l.Z() > 0 {
		g2 = 1.0 / (1.0 + lambdaV + ggxLambda(alpha, l.Z()))
	}

	h := v.Add(l).Normalize()
	slopeX := h.X() / h.Z()
	slopeY := h.Y() / h.Z()
	d := 1.0 / (1.0 + (slopeX*slopeX+slopeY*slopeY)/(alpha*alpha))
	d = d * d
	d = d / (math32.Pi * alpha * alpha * h.Z() * h.Z() * h.Z() * h.Z())

	pdf := math32.Abs(d * h.Z() / 4.0 / v.Dot(h))
	return d * g2 / 4.0 / v.Z(), pdf
}

func (GGX) Sample(v mgl32.Vec3, alpha, u1, u2 float32) mgl32.Vec3 {
	phi := 2.0 * math32.Pi * u1
	r := alpha * math32.Sqrt(u2/(1.0-u2))
	n := mgl32.Vec3{r * math32.Cos(phi), r * math32.Sin(phi), 1}.Normalize()
	return n.Mul(2 * n.Dot(v)).Sub(v)
}

func ggxLambda(alpha, cosTheta float32) float32 {
	if cosTheta >= 1 {
		return 0
	}
	a := 1.0 / alpha / math32.Tan(math32.Acos(cosTheta))
	return 0.5 * (-1.0 + math32.Sqrt(1.0+1.0/(a*a)))
}
