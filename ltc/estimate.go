package ltc

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"

	"ltcfit/brdf"
)

// The estimators integrate over a deterministic stratified grid of
// nsamples x nsamples points, (i+0.5)/n by (j+0.5)/n. The fixed grid keeps
// successive fits reproducible and low-variance, which matters because the
// grid fitter reuses each fit to seed its neighbour.

// ComputeNorm estimates the total reflected energy (albedo) of the BRDF for
// view direction v. Samples with non-positive density contribute zero.
func ComputeNorm(m brdf.Model, v mgl32.Vec3, alpha float32, nsamples int) float32 {
	var norm float32

	for j := 0; j < nsamples; j++ {
		for i := 0; i < nsamples; i++ {
			u1 := (float32(i) + 0.5) / float32(nsamples)
			u2 := (float32(j) + 0.5) / float32(nsamples)

			l := m.Sample(v, alpha, u1, u2)
			eval, pdf := m.Eval(v, l, alpha)
			if pdf > 0 {
				norm += eval / pdf
			}
		}
	}

	return norm / float32(nsamples*nsamples)
}

// ComputeAverageDir estimates the mean outgoing direction of the BRDF for
// view direction v. The lateral component is zeroed, which is exact for
// isotropic models up to sampling noise.
func ComputeAverageDir(m brdf.Model, v mgl32.Vec3, alpha float32, nsamples int) mgl32.Vec3 {
	var avg mgl32.Vec3

	for j := 0; j < nsamples; j++ {
		for i := 0; i < nsamples; i++ {
			u1 := (float32(i) + 0.5) / float32(nsamples)
			u2 := (float32(j) + 0.5) / float32(nsamples)

			l := m.Sample(v, alpha, u1, u2)
			eval, pdf := m.Eval(v, l, alpha)
			if pdf > 0 {
				avg = avg.Add(l.Mul(eval / pdf))
			}
		}
	}

	avg[1] = 0
	return avg.Normalize()
}

// ComputeError measures the mismatch between the lobe and the BRDF by
// importance sampling both distributions over the stratified grid and
// combining them with the balance heuristic 1/(pdfLobe + pdfBrdf). The
// absolute difference is cubed rather than squared so that large local
// mismatches dominate broad low-error regions. Terms accumulate in float64;
// over thousands of them float32 accumulation drifts visibly.
func ComputeError(lb *Lobe, m brdf.Model, v mgl32.Vec3, alpha float32, nsamples int) float32 {
	var errSum float64

	for j := 0; j < nsamples; j++ {
		for i := 0; i < nsamples; i++ {
			u1 := (float32(i) + 0.5) / float32(nsamples)
			u2 := (float32(j) + 0.5) / float32(nsamples)

			// importance sample the lobe
			{
				l := lb.Sample(u1, u2)

				evalBrdf, pdfBrdf := m.Eval(v, l, alpha)
				evalLobe := lb.Eval(l)
				pdfLobe := evalLobe / lb.Amplitude

				e := float64(math32.Abs(evalBrdf - evalLobe))
				errSum += e * e * e / float64(pdfLobe+pdfBrdf)
			}

			// importance sample the BRDF
			{
				l := m.Sample(v, alpha, u1, u2)

				evalBrdf, pdfBrdf := m.Eval(v, l, alpha)
				evalLobe := lb.Eval(l)
				pdfLobe := evalLobe / lb.Amplitude

				e := float64(math32.Abs(evalBrdf - evalLobe))
				errSum += e * e * e / float64(pdfLobe+pdfBrdf)
			}
		}
	}

	return float32(errSum) / float32(nsamples*nsamples)
}
