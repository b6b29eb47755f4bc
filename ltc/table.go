package ltc

import "github.com/go-gl/mathgl/mgl32"

// Config carries the constants that shape a fitting run.
type Config struct {
	// Resolution is the edge length of the square lookup table.
	Resolution int
	// Samples is the edge length of the per-cell stratified sample grid, so
	// each estimator evaluates Samples*Samples pairs.
	Samples int
	// MinAlpha floors roughness and the diagonal shape scalars. Values below
	// it produce numerically singular lobes.
	MinAlpha float32
}

// DefaultConfig matches the reference 64x64 table with 32x32 samples.
func DefaultConfig() Config {
	return Config{
		Resolution: 64,
		Samples:    32,
		MinAlpha:   1e-4,
	}
}

// Cell is one fitted table entry. Error, Iterations and Converged are
// diagnostics from the minimizer; non-convergence is not an error, but
// consumers can use them to spot cells of degraded quality.
type Cell struct {
	Matrix mgl32.Mat3
	// Amplitude holds the lobe's total energy in the first component; the
	// second is reserved by the texture layout.
	Amplitude  mgl32.Vec2
	Error      float32
	Iterations int
	Converged  bool
}

// Table is the dense Resolution x Resolution fit result, indexed by the
// roughness bucket a and the view-angle bucket t.
type Table struct {
	Resolution int
	Cells      []Cell
}

func NewTable(n int) *Table {
	return &Table{
		Resolution: n,
		Cells:      make([]Cell, n*n),
	}
}

// At returns the cell for roughness bucket a and view-angle bucket t.
func (tab *Table) At(a, t int) *Cell {
	return &tab.Cells[a+t*tab.Resolution]
}
