package ltc

import (
	"log/slog"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"ltcfit/brdf"
	"ltcfit/libfit"
)

// fitObjective adapts one lobe/BRDF pair to the minimizer. Every evaluation
// mutates the shared lobe in place; the minimizer evaluates strictly
// sequentially, never concurrently.
type fitObjective struct {
	lobe      *Lobe
	model     brdf.Model
	view      mgl32.Vec3
	alpha     float32
	minAlpha  float32
	samples   int
	isotropic bool
}

// set applies a raw parameter vector (m11, m22, m13) to the lobe. The
// diagonal scalars are floored at minAlpha; an isotropic fit collapses to a
// rotationally symmetric lobe.
func (f *fitObjective) set(params []float32) {
	m11 := math32.Max(params[0], f.minAlpha)
	m22 := math32.Max(params[1], f.minAlpha)

	if f.isotropic {
		f.lobe.M11 = m11
		f.lobe.M22 = m11
		f.lobe.M13 = 0
	} else {
		f.lobe.M11 = m11
		f.lobe.M22 = m22
		f.lobe.M13 = params[2]
	}
	f.lobe.Update()
}

func (f *fitObjective) eval(params []float32) float32 {
	f.set(params)
	return ComputeError(f.lobe, f.model, f.view, f.alpha, f.samples)
}

// Fitter fits one lobe per grid cell, reusing neighbouring results as warm
// starts. The traversal is strictly sequential; each cell's first guess
// depends on previously fitted cells.
type Fitter struct {
	Config Config
	Model  brdf.Model

	// Epsilon is the minimizer's initial simplex offset.
	Epsilon float32
	// Tolerance and MaxIterations bound the minimizer per cell.
	Tolerance     float32
	MaxIterations int

	// Logger, when set, reports row progress at Info and per-cell fit
	// diagnostics at Debug.
	Logger *slog.Logger

	// OnCell, when set, is called before each cell is fitted, in traversal
	// order.
	OnCell func(a, t int)
}

// NewFitter returns a fitter with the reference minimizer settings.
func NewFitter(m brdf.Model, cfg Config) *Fitter {
	return &Fitter{
		Config:        cfg,
		Model:         m,
		Epsilon:       0.05,
		Tolerance:     1e-5,
		MaxIterations: 100,
	}
}

// Run fits the full table. Both indices descend: roughness from 1 towards 0,
// and the view angle from near grazing towards normal incidence. The t = N-1
// column (view along the normal) is rotationally symmetric with a trivial
// starting frame, so fitting it first gives every row a stable anchor.
func (f *Fitter) Run() *Table {
	n := f.Config.Resolution
	tab := NewTable(n)
	lobe := NewLobe()

	// The shape scalars of the previous fit seed the next one. Carrying them
	// explicitly, rather than through leftover lobe state, makes the warm
	// start an input instead of a side effect.
	warm := [3]float32{1, 1, 0}

	for a := n - 1; a >= 0; a-- {
		for t := n - 1; t >= 0; t-- {
			if f.OnCell != nil {
				f.OnCell(a, t)
			}
			f.fitCell(tab, lobe, &warm, a, t)
		}
		if f.Logger != nil {
			f.Logger.Info("fitted roughness row", "a", a, "remaining", a)
		}
	}

	return tab
}

func (f *Fitter) fitCell(tab *Table, lobe *Lobe, warm *[3]float32, a, t int) {
	n := f.Config.Resolution

	// theta is clamped below the grazing singularity at pi/2
	ct := float32(t) / float32(n-1)
	theta := math32.Min(1.57, math32.Acos(ct))
	view := mgl32.Vec3{math32.Sin(theta), 0, math32.Cos(theta)}

	roughness := float32(a) / float32(n-1)
	alpha := math32.Max(roughness*roughness, f.Config.MinAlpha)

	lobe.Amplitude = ComputeNorm(f.Model, view, alpha, f.Config.Samples)
	avgDir := ComputeAverageDir(f.Model, view, alpha, f.Config.Samples)

	isotropic := t == n-1
	if isotropic {
		// view along the normal: the lobe is rotationally symmetric and
		// aligned with Z
		lobe.X = mgl32.Vec3{1, 0, 0}
		lobe.Y = mgl32.Vec3{0, 1, 0}
		lobe.Z = mgl32.Vec3{0, 0, 1}

		if a == n-1 {
			// roughness 1, the coarse global start
			warm[0] = 1
			warm[1] = 1
		} else {
			// seed from the same column of the previous roughness row
			prev := tab.At(a+1, t).Matrix
			warm[0] = math32.Max(prev.At(0, 0), f.Config.MinAlpha)
			warm[1] = math32.Max(prev.At(1, 1), f.Config.MinAlpha)
		}
		warm[2] = 0
	} else {
		// orient the lobe along the measured average direction; the shape
		// scalars continue from the previous cell's fit
		l := avgDir
		lobe.X = mgl32.Vec3{l.Z(), 0, -l.X()}
		lobe.Y = mgl32.Vec3{0, 1, 0}
		lobe.Z = l
	}
	lobe.M11 = warm[0]
	lobe.M22 = warm[1]
	lobe.M13 = warm[2]
	lobe.Update()

	obj := &fitObjective{
		lobe:      lobe,
		model:     f.Model,
		view:      view,
		alpha:     alpha,
		minAlpha:  f.Config.MinAlpha,
		samples:   f.Config.Samples,
		isotropic: isotropic,
	}
	res := libfit.NelderMead(warm[:], f.Epsilon, f.Tolerance, f.MaxIterations, obj.eval)

	// The minimizer can terminate mid-step; apply the best point once more so
	// the stored lobe matches the reported optimum.
	obj.set(res.Point)
	warm[0] = lobe.M11
	warm[1] = lobe.M22
	warm[2] = lobe.M13

	cell := tab.At(a, t)
	cell.Matrix = lobe.Matrix()
	cell.Amplitude = mgl32.Vec2{lobe.Amplitude, 0}
	cell.Error = res.Value
	cell.Iterations = res.Iterations
	cell.Converged = res.Converged

	// entries the parameterisation keeps at zero; drop numeric noise
	cell.Matrix.Set(0, 1, 0)
	cell.Matrix.Set(1, 0, 0)
	cell.Matrix.Set(2, 1, 0)
	cell.Matrix.Set(1, 2, 0)

	if f.Logger != nil {
		f.Logger.Debug("fitted cell",
			"a", a, "t", t,
			"alpha", alpha, "theta", theta,
			"error", res.Value,
			"iterations", res.Iterations,
			"converged", res.Converged)
	}
}
