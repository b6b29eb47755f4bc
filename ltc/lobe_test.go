package ltc_test

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"

	"ltcfit/ltc"
)

func TestLobeEvalCosine(t *testing.T) {
	lb := ltc.NewLobe()

	is := lb.Eval(mgl32.Vec3{0, 0, 1})
	should := float32(1.0 / math.Pi)
	if math.Abs(float64(is-should)) > 1e-6 {
		t.Errorf("identity lobe at the apex should be %.6f but is %.6f", should, is)
	}

	if down := lb.Eval(mgl32.Vec3{0, 0, -1}); down != 0 {
		t.Errorf("identity lobe below the horizon should be 0 but is %g", down)
	}
}

func TestLobeAmplitudeScaling(t *testing.T) {
	lb := ltc.NewLobe()
	base := lb.Eval(mgl32.Vec3{0, 0, 1})

	lb.Amplitude = 2.5
	if is := lb.Eval(mgl32.Vec3{0, 0, 1}); math.Abs(float64(is-2.5*base)) > 1e-6 {
		t.Errorf("eval should scale linearly with amplitude, got %g for base %g", is, base)
	}
}

func TestLobeSampleUnitUpper(t *testing.T) {
	lb := ltc.NewLobe()
	lb.M11 = 0.4
	lb.M22 = 0.9
	lb.M13 = 0.2
	lb.Update()

	const n = 8
	for j := 0; j < n; j++ {
		for i := 0; i < n; i++ {
			u1 := (float32(i) + 0.5) / n
			u2 := (float32(j) + 0.5) / n
			l := lb.Sample(u1, u2)

			if math.Abs(float64(l.Len()-1)) > 1e-5 {
				t.Fatalf("sample (%d,%d) is not normalized: %v", i, j, l)
			}
		}
	}
}

func TestLobeMatrixStructure(t *testing.T) {
	lb := ltc.NewLobe()
	lb.M11 = 0.5
	lb.M22 = 0.25
	lb.M13 = 0.1
	lb.Update()

	// identity frame: M = [m11*X | m22*Y | m13*X + Z]
	m := lb.Matrix()
	checks := []struct {
		row, col int
		want     float32
	}{
		{0, 0, 0.5},
		{1, 1, 0.25},
		{0, 2, 0.1},
		{2, 2, 1},
		{0, 1, 0}, {1, 0, 0}, {1, 2, 0}, {2, 1, 0}, {2, 0, 0},
	}
	for _, c := range checks {
		if is := m.At(c.row, c.col); is != c.want {
			t.Errorf("M[%d][%d] should be %g but is %g", c.row, c.col, c.want, is)
		}
	}
}
