package ltc

import (
	"bufio"
	"fmt"
	"io"

	"ltcfit/libio"
)

// WriteTabC writes the fitted transforms and amplitudes as a C header. The
// matrices are emitted row-major, nine floats per cell.
func WriteTabC(w io.Writer, tab *Table) error {
	bw := bufio.NewWriter(w)
	n := tab.Resolution

	fmt.Fprintf(bw, "static const int ltc_size = %d;\n\n", n)

	fmt.Fprintf(bw, "static const float ltc_mat[%d*%d][9] = {\n", n, n)
	for i := range tab.Cells {
		m := &tab.Cells[i].Matrix
		fmt.Fprintf(bw, "\t{%g, %g, %g, %g, %g, %g, %g, %g, %g},\n",
			m.At(0, 0), m.At(0, 1), m.At(0, 2),
			m.At(1, 0), m.At(1, 1), m.At(1, 2),
			m.At(2, 0), m.At(2, 1), m.At(2, 2))
	}
	fmt.Fprintf(bw, "};\n\n")

	fmt.Fprintf(bw, "static const float ltc_amp[%d*%d] = {\n", n, n)
	for i := range tab.Cells {
		fmt.Fprintf(bw, "\t%g,\n", tab.Cells[i].Amplitude[0])
	}
	fmt.Fprintf(bw, "};\n")

	return bw.Flush()
}

// WriteJS writes the packed tables as a JavaScript module with two flat
// arrays, four and two floats per cell.
func WriteJS(w io.Writer, p *PackedTable) error {
	bw := bufio.NewWriter(w)
	n := p.Resolution

	fmt.Fprintf(bw, "var g_ltc_size = %d;\n\n", n)

	fmt.Fprintf(bw, "var g_ltc_1 = [\n")
	for _, t := range p.Tex1 {
		fmt.Fprintf(bw, "%g, %g, %g, %g,\n", t[0], t[1], t[2], t[3])
	}
	fmt.Fprintf(bw, "];\n\n")

	fmt.Fprintf(bw, "var g_ltc_2 = [\n")
	for _, t := range p.Tex2 {
		fmt.Fprintf(bw, "%g, %g,\n", t[0], t[1])
	}
	fmt.Fprintf(bw, "];\n")

	return bw.Flush()
}

// WriteDDS writes the packed tables as two float DDS surfaces: an RGBA32F
// texture with the four variable inverse terms and a RG32F texture with the
// remaining term and the amplitude.
func WriteDDS(w1, w2 io.Writer, p *PackedTable) error {
	n := p.Resolution

	pix1 := make([]float32, 0, n*n*4)
	for _, t := range p.Tex1 {
		pix1 = append(pix1, t[0], t[1], t[2], t[3])
	}
	if err := libio.WriteDDS(w1, pix1, 4, n, n); err != nil {
		return fmt.Errorf("could not write inverse terms: %w", err)
	}

	pix2 := make([]float32, 0, n*n*2)
	for _, t := range p.Tex2 {
		pix2 = append(pix2, t[0], t[1])
	}
	if err := libio.WriteDDS(w2, pix2, 2, n, n); err != nil {
		return fmt.Errorf("could not write amplitude terms: %w", err)
	}

	return nil
}
