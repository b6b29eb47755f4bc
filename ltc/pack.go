package ltc

import "github.com/go-gl/mathgl/mgl32"

// PackedTable is the runtime texture view of a fitted table: per cell a
// four-component record with the variable terms of the rescaled inverse
// transform and a two-component record with the remaining term and the
// amplitude.
type PackedTable struct {
	Resolution int
	Tex1       []mgl32.Vec4
	Tex2       []mgl32.Vec2
}

// Pack derives the texture representation of a fitted table. The transforms
// are structurally sparse, so the inverse exists in closed form:
//
//	a 0 b            c*e    0    -b*c
//	0 c 0   ==>       0  a*e-b*d   0
//	d 0 e           -c*d    0     a*c
//
// The right-hand side is the adjugate, the inverse rescaled by the
// determinant. Rescaling folds the scale into the stored terms so no separate
// scale channel is needed; it is exact, not an approximation.
func Pack(tab *Table) *PackedTable {
	n := tab.Resolution
	p := &PackedTable{
		Resolution: n,
		Tex1:       make([]mgl32.Vec4, n*n),
		Tex2:       make([]mgl32.Vec2, n*n),
	}

	for i := range tab.Cells {
		m := &tab.Cells[i].Matrix

		a := m.At(0, 0)
		b := m.At(0, 2)
		c := m.At(1, 1)
		d := m.At(2, 0)
		e := m.At(2, 2)

		t0 := c * e
		t1 := -b * c
		t2 := a*e - b*d
		t3 := -c * d
		t4 := a * c

		p.Tex1[i] = mgl32.Vec4{t0, t1, t2, t3}
		p.Tex2[i] = mgl32.Vec2{t4, tab.Cells[i].Amplitude[0]}
	}

	return p
}
