// Package curve converts between the Weierstrass-affine representation the
// rest of the world uses for BLS12-377 G1 and the twisted-Edwards forms the
// FPGA's adder actually computes in.
package curve

import "github.com/cyclone-msm/cyclone-msm/field"

// WeierstrassAffine is a point on y^2 = x^3 + b, or the point at infinity.
type WeierstrassAffine struct {
	X, Y       field.Element
	Infinity bool
}

// PreprocessedAffine is a twisted-Edwards-affine point with KT = 2*d*X*Y
// precomputed, in the form the FPGA expects on its SetX/SetY/SetKT upload
// channels. Created once per input point and treated as immutable
// thereafter: KT is only ever consistent with the (X, Y) it was derived
// from.
type PreprocessedAffine struct {
	X, Y, KT field.Element
}

// IdentityPreprocessed is the twisted-Edwards-affine encoding of the group
// identity: (0, 1, 0).
func IdentityPreprocessed() PreprocessedAffine {
	return PreprocessedAffine{X: field.Zero(), Y: field.One(), KT: field.Zero()}
}

// TEProjective is the extended twisted-Edwards projective representation
// (X, Y, Z, T) with T = X*Y/Z, used only for intermediate accumulators
// while folding column results on the host.
type TEProjective struct {
	X, Y, Z, T field.Element
}

// TEIdentity is the extended projective identity: (0, 1, 1, 0).
func TEIdentity() TEProjective {
	return TEProjective{X: field.Zero(), Y: field.One(), Z: field.One(), T: field.Zero()}
}
