package ltc

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

// uniform hemisphere reflector with value 1 and density 1
type flatModel struct{}

func (flatModel) Sample(v mgl32.Vec3, alpha, u1, u2 float32) mgl32.Vec3 {
	z := u1
	r := float32(math.Sqrt(float64(1 - z*z)))
	phi := 2 * math.Pi * float64(u2)
	return mgl32.Vec3{r * float32(math.Cos(phi)), r * float32(math.Sin(phi)), z}
}

func (flatModel) Eval(v, l mgl32.Vec3, alpha float32) (float32, float32) {
	return 1, 1
}

func testConfig(n, samples int) Config {
	return Config{Resolution: n, Samples: samples, MinAlpha: 1e-4}
}

func TestObjectiveIsotropyInvariant(t *testing.T) {
	obj := &fitObjective{
		lobe:      NewLobe(),
		minAlpha:  1e-4,
		isotropic: true,
	}

	params := [][3]float32{
		{0.7, 0.3, 0.2},
		{-1, 0.5, 0.9},
		{0.01, -2, -0.4},
	}
	for _, p := range params {
		obj.set(p[:])
		if obj.lobe.M22 != obj.lobe.M11 {
			t.Errorf("isotropic update %v: m22 = %g differs from m11 = %g", p, obj.lobe.M22, obj.lobe.M11)
		}
		if obj.lobe.M13 != 0 {
			t.Errorf("isotropic update %v: m13 = %g should be zero", p, obj.lobe.M13)
		}
	}
}

func TestObjectiveClampInvariant(t *testing.T) {
	const minAlpha = 1e-4
	obj := &fitObjective{
		lobe:     NewLobe(),
		minAlpha: minAlpha,
	}

	params := [][3]float32{
		{-1, -1, 0},
		{0, 0, 0.5},
		{minAlpha / 2, 1e-9, -0.2},
		{0.3, 0.6, 0.1},
	}
	for _, p := range params {
		obj.set(p[:])
		if obj.lobe.M11 < minAlpha || obj.lobe.M22 < minAlpha {
			t.Errorf("update %v left a singular shape: m11 = %g, m22 = %g", p, obj.lobe.M11, obj.lobe.M22)
		}
	}
}

func TestFitterTraversalOrder(t *testing.T) {
	f := NewFitter(flatModel{}, testConfig(3, 4))

	var visited [][2]int
	f.OnCell = func(a, tt int) {
		visited = append(visited, [2]int{a, tt})
	}
	f.Run()

	expected := [][2]int{
		{2, 2}, {2, 1}, {2, 0},
		{1, 2}, {1, 1}, {1, 0},
		{0, 2}, {0, 1}, {0, 0},
	}
	if len(visited) != len(expected) {
		t.Fatalf("visited %d cells, expected %d", len(visited), len(expected))
	}
	for i := range expected {
		if visited[i] != expected[i] {
			t.Fatalf("visit %d was %v, expected %v (both indices must descend)", i, visited[i], expected[i])
		}
	}
}

func TestFitterBoundaryCell(t *testing.T) {
	cfg := testConfig(4, 8)
	f := NewFitter(flatModel{}, cfg)
	tab := f.Run()

	// roughness 1, view along the normal: the symmetric anchor cell
	cell := tab.At(3, 3)

	if m11, m22 := cell.Matrix.At(0, 0), cell.Matrix.At(1, 1); m11 != m22 {
		t.Errorf("anchor cell must stay isotropic: m11 = %g, m22 = %g", m11, m22)
	}
	if cell.Amplitude[0] != 1 {
		t.Errorf("constant reflector amplitude should be 1 but is %g", cell.Amplitude[0])
	}
	if cell.Iterations > f.MaxIterations {
		t.Errorf("iteration cap exceeded: %d", cell.Iterations)
	}

	// the start point is a vertex of the initial simplex, so the fit can
	// never be worse than it
	start := NewLobe()
	start.Amplitude = 1
	e0 := ComputeError(start, flatModel{}, mgl32.Vec3{0, 0, 1}, 1, cfg.Samples)
	if cell.Error > e0+1e-6 {
		t.Errorf("fit error %g exceeds the first-guess error %g", cell.Error, e0)
	}
	if math.IsNaN(float64(cell.Error)) || math.IsInf(float64(cell.Error), 0) {
		t.Errorf("fit error is not finite: %g", cell.Error)
	}
}

func TestFitterStructuralZeros(t *testing.T) {
	tab := NewFitter(flatModel{}, testConfig(3, 4)).Run()

	for i := range tab.Cells {
		m := &tab.Cells[i].Matrix
		for _, rc := range [][2]int{{0, 1}, {1, 0}, {1, 2}, {2, 1}} {
			if v := m.At(rc[0], rc[1]); v != 0 {
				t.Fatalf("cell %d entry (%d,%d) should be zeroed but is %g", i, rc[0], rc[1], v)
			}
		}
	}
}
