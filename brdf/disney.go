package brdf

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

// DisneyDiffuse is the Burley retro-reflective diffuse term, sampled with a
// cosine distribution.
type DisneyDiffuse struct{}

func (DisneyDiffuse) Eval(v, l mgl32.Vec3, alpha float32) (float32, float32) {
	if v.Z() <= 0 || l.Z() <= 0 {
		return 0, 0
	}

	h := v.Add(l).Normalize()
	ldoth := l.Dot(h)

	// fd90 depends on perceptual roughness, not alpha
	perceptual := math32.Sqrt(alpha)
	fd90 := 0.5 + 2.0*ldoth*ldoth*perceptual
	lightScatter := 1.0 + (fd90-1.0)*math32.Pow(1.0-l.Z(), 5.0)
	viewScatter := 1.0 + (fd90-1.0)*math32.Pow(1.0-v.Z(), 5.0)

	pdf := l.Z() / math32.Pi
	return lightScatter * viewScatter * l.Z() / math32.Pi, pdf
}

func (DisneyDiffuse) Sample(v mgl32.Vec3, alpha, u1, u2 float32) mgl32.Vec3 {
	r := math32.Sqrt(u1)
	phi := 2.0 * math32.Pi * u2
	return mgl32.Vec3{r * math32.Cos(phi), r * math32.Sin(phi), math32.Sqrt(1.0 - r*r)}
}
