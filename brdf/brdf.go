// Package brdf provides the analytic reflectance models that the fitter
// approximates. All models are isotropic and defined in the local shading
// frame with Z as the surface normal.
package brdf

import "github.com/go-gl/mathgl/mgl32"

// Model is a physically based reflectance function with an importance
// sampling scheme.
//
// Sample and Eval form a pair: the pdf returned by Eval must be the density
// of the distribution Sample draws from, evaluated at l. The Monte-Carlo
// estimators in package ltc rely on this pairing for unbiasedness.
type Model interface {
	// Sample importance-samples an outgoing direction for view direction v
	// and roughness alpha from two uniform [0,1) variates.
	Sample(v mgl32.Vec3, alpha, u1, u2 float32) mgl32.Vec3
	// Eval returns the reflectance for the view/light pair together with the
	// sampling density of Sample's distribution at l. Both are zero for
	// degenerate configurations.
	Eval(v, l mgl32.Vec3, alpha float32) (value, pdf float32)
}

// ByName resolves a model from its command-line name.
func ByName(name string) (Model, bool) {
	switch name {
	case "ggx":
		return GGX{}, true
	case "beckmann":
		return Beckmann{}, true
	case "disney":
		return DisneyDiffuse{}, true
	}
	return nil, false
}
