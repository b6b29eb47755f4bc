package brdf_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ltcfit/brdf"
)

func viewAt(theta float64) mgl32.Vec3 {
	return mgl32.Vec3{float32(math.Sin(theta)), 0, float32(math.Cos(theta))}
}

func TestByName(t *testing.T) {
	for _, name := range []string{"ggx", "beckmann", "disney"} {
		m, ok := brdf.ByName(name)
		assert.True(t, ok, name)
		assert.NotNil(t, m, name)
	}

	_, ok := brdf.ByName("phong")
	assert.False(t, ok)
}

func TestSampleEvalPairing(t *testing.T) {
	models := map[string]brdf.Model{
		"ggx":      brdf.GGX{},
		"beckmann": brdf.Beckmann{},
		"disney":   brdf.DisneyDiffuse{},
	}

	v := viewAt(math.Pi / 4)
	const n = 16

	for name, m := range models {
		t.Run(name, func(t *testing.T) {
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					u1 := (float32(i) + 0.5) / n
					u2 := (float32(j) + 0.5) / n

					l := m.Sample(v, 0.5, u1, u2)
					require.InDelta(t, 1.0, float64(l.Len()), 1e-4, "sampled direction must be unit length")

					if l.Z() <= 0 {
						// microfacet models can reflect below the horizon;
						// those samples carry no weight in the estimators
						continue
					}

					value, pdf := m.Eval(v, l, 0.5)
					require.Greater(t, pdf, float32(0), "density must be positive at a sampled direction")
					require.GreaterOrEqual(t, value, float32(0))
					require.False(t, math.IsNaN(float64(value)) || math.IsInf(float64(value), 0))
				}
			}
		})
	}
}

func TestDisneyCosineDensity(t *testing.T) {
	v := viewAt(math.Pi / 6)
	m := brdf.DisneyDiffuse{}

	l := m.Sample(v, 0.3, 0.4, 0.7)
	_, pdf := m.Eval(v, l, 0.3)

	assert.InDelta(t, float64(l.Z())/math.Pi, float64(pdf), 1e-6,
		"cosine sampling must report the cosine density")
}

func TestEvalBelowHorizonView(t *testing.T) {
	v := mgl32.Vec3{0, 0, -1}
	l := mgl32.Vec3{0, 0, 1}

	for name, m := range map[string]brdf.Model{
		"ggx":      brdf.GGX{},
		"beckmann": brdf.Beckmann{},
		"disney":   brdf.DisneyDiffuse{},
	} {
		value, pdf := m.Eval(v, l, 0.5)
		assert.Zero(t, value, name)
		assert.Zero(t, pdf, name)
	}
}

func TestAlbedoBounded(t *testing.T) {
	// white furnace sanity: without Fresnel the single-scattering albedo of a
	// normalized microfacet model stays at or below one
	const n = 32
	v := viewAt(0)

	for name, m := range map[string]brdf.Model{
		"ggx":      brdf.GGX{},
		"beckmann": brdf.Beckmann{},
	} {
		for _, alpha := range []float32{0.1, 0.5, 1.0} {
			var albedo float32
			for j := 0; j < n; j++ {
				for i := 0; i < n; i++ {
					u1 := (float32(i) + 0.5) / n
					u2 := (float32(j) + 0.5) / n
					l := m.Sample(v, alpha, u1, u2)
					if value, pdf := m.Eval(v, l, alpha); pdf > 0 {
						albedo += value / pdf
					}
				}
			}
			albedo /= n * n

			assert.Greater(t, albedo, float32(0.3), "%s alpha %g", name, alpha)
			assert.LessOrEqual(t, albedo, float32(1.02), "%s alpha %g", name, alpha)
		}
	}
}
