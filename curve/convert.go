package curve

import "github.com/cyclone-msm/cyclone-msm/field"

// curveD is the twisted-Edwards curve coefficient d for the curve
// isomorphic to BLS12-377 G1. Used only to fold extended projective
// accumulators on the host; the FPGA itself never sees it directly (it
// consumes KT, which is precomputed per point during preprocessing).
var curveD field.Element

// twoCurveD is 2*d, the constant the unified addition/doubling formulas
// below actually use.
var twoCurveD field.Element

func init() {
	if _, err := curveD.SetString(curveDDecimal); err != nil {
		panic("curve: invalid curve constant d: " + err.Error())
	}
	twoCurveD.Double(&curveD)
}

const curveDDecimal = "122268283598675559488486339158635529096981886914877139579534153582033676785385790730042363341236035746924960903179"

// maxShardSize caps the number of points converted together in one call to
// PreprocessBatch so the three scratch F_q arrays it allocates (x, y, z) stay
// under roughly 9 MiB: 3 * 2^16 * sizeof(field.Element).
const maxShardSize = 1 << 16

// Preprocess converts a single Weierstrass-affine point into its
// twisted-Edwards preprocessed form:
//
//	xpo   = x + 1
//	sxpo  = xpo * FQ_S
//	axpo  = xpo * FQ_SQRT_MIN_A
//	syxpo = sxpo * y
//	x_te  = (sxpo + 1) * axpo
//	y_te  = syxpo - y
//	z_te  = syxpo + y
//	result = PP(x_te/z_te, y_te/z_te)
//
// The point at infinity maps to PP(0, 1, 0).
func Preprocess(p WeierstrassAffine) PreprocessedAffine {
	if p.Infinity {
		return IdentityPreprocessed()
	}

	var xte, yte, zte field.Element
	xAffineNumerators(&p.X, &p.Y, &xte, &yte, &zte)

	var zInv field.Element
	zInv.Inverse(&zte)

	var pp PreprocessedAffine
	pp.X.Mul(&xte, &zInv)
	pp.Y.Mul(&yte, &zInv)
	deriveKT(&pp)
	return pp
}

// xAffineNumerators computes the (x_te, y_te, z_te) triple shared by both
// the single-point and batched preprocessing paths, ahead of the division
// each performs differently (direct inversion vs. a shared batch inversion).
func xAffineNumerators(x, y, xte, yte, zte *field.Element) {
	var xpo, sxpo, axpo, syxpo field.Element

	xpo.Add(x, &oneElement)
	sxpo.Mul(&xpo, &field.FQ_S)
	axpo.Mul(&xpo, &field.FQ_SQRT_MIN_A)
	syxpo.Mul(&sxpo, y)

	var sxpoPlusOne field.Element
	sxpoPlusOne.Add(&sxpo, &oneElement)
	xte.Mul(&sxpoPlusOne, &axpo)

	yte.Sub(&syxpo, y)
	zte.Add(&syxpo, y)
}

var oneElement = field.One()

// deriveKT fills in pp.KT = 2*d*X*Y from the already-computed affine
// coordinates.
func deriveKT(pp *PreprocessedAffine) {
	var xy field.Element
	xy.Mul(&pp.X, &pp.Y)
	pp.KT.Mul(&xy, &twoCurveD)
}

// PreprocessBatch converts every point of in into out, which must have the
// same length. It performs the coordinate math for all points first, then a
// single batch inversion of the Z denominators (Montgomery's trick),
// instead of one inversion per point.
//
// Callers with more than maxShardSize points must shard the work
// themselves: PreprocessBatch does not do this internally so that the
// caller controls peak memory explicitly, per the accelerator's host
// budget.
func PreprocessBatch(in []WeierstrassAffine, out []PreprocessedAffine) {
	if len(in) != len(out) {
		panic("curve: PreprocessBatch: in and out length mismatch")
	}
	if len(in) == 0 {
		return
	}
	if len(in) > maxShardSize {
		panic("curve: PreprocessBatch: shard exceeds maximum of 2^16 points")
	}

	xs := make([]field.Element, len(in))
	ys := make([]field.Element, len(in))
	zs := make([]field.Element, len(in))

	for i, p := range in {
		if p.Infinity {
			xs[i] = field.Zero()
			ys[i] = field.One()
			zs[i] = field.One()
			continue
		}
		xAffineNumerators(&p.X, &p.Y, &xs[i], &ys[i], &zs[i])
	}

	zInv := field.BatchInvert(zs)

	for i := range in {
		out[i].X.Mul(&xs[i], &zInv[i])
		out[i].Y.Mul(&ys[i], &zInv[i])
		deriveKT(&out[i])
	}
}

// IntoWeierstrass converts an extended twisted-Edwards projective point
// (as read back from the FPGA's aggregated-result registers) into
// Weierstrass-affine form:
//
//	aff_x = X/Z
//	aff_y = Y/Z
//	u = (1+aff_y)/(1-aff_y)
//	v = u/aff_x
//	x = u*FQ_S_INV - 1
//	y = v*FQ_S_INV*FQ_SQRT_MIN_A
//
// The identity maps to Weierstrass infinity.
func IntoWeierstrass(p TEProjective) WeierstrassAffine {
	if p.Z.IsZero() || (p.X.IsZero() && p.Y.Equal(&p.Z)) {
		return WeierstrassAffine{Infinity: true}
	}

	var zInv, affX, affY field.Element
	zInv.Inverse(&p.Z)
	affX.Mul(&p.X, &zInv)
	affY.Mul(&p.Y, &zInv)

	if affX.IsZero() && affY.Equal(&oneElement) {
		return WeierstrassAffine{Infinity: true}
	}

	var onePlusY, oneMinusY, u, v field.Element
	onePlusY.Add(&oneElement, &affY)
	oneMinusY.Sub(&oneElement, &affY)
	u.Inverse(&oneMinusY)
	u.Mul(&u, &onePlusY)

	var xInv field.Element
	xInv.Inverse(&affX)
	v.Mul(&u, &xInv)

	var out WeierstrassAffine
	out.X.Mul(&u, &field.FQ_S_INV)
	out.X.Sub(&out.X, &oneElement)

	out.Y.Mul(&v, &field.FQ_S_INV)
	out.Y.Mul(&out.Y, &field.FQ_SQRT_MIN_A)
	return out
}

// Add sets *dst = a + b using the unified extended twisted-Edwards
// addition formulas for curves with a = -1 (add-2008-hwcd-3):
//
//	A = (Y1-X1)*(Y2-X2); B = (Y1+X1)*(Y2+X2)
//	C = 2d*T1*T2;        D = 2*Z1*Z2
//	E = B-A; F = D-C; G = D+C; H = B+A
//	X3 = E*F; Y3 = G*H; T3 = E*H; Z3 = F*G
func Add(dst *TEProjective, a, b TEProjective) {
	var yMinusX1, yMinusX2, yPlusX1, yPlusX2 field.Element
	yMinusX1.Sub(&a.Y, &a.X)
	yMinusX2.Sub(&b.Y, &b.X)
	yPlusX1.Add(&a.Y, &a.X)
	yPlusX2.Add(&b.Y, &b.X)

	var A, B, C, D field.Element
	A.Mul(&yMinusX1, &yMinusX2)
	B.Mul(&yPlusX1, &yPlusX2)
	C.Mul(&a.T, &b.T)
	C.Mul(&C, &twoCurveD)
	D.Mul(&a.Z, &b.Z)
	D.Double(&D)

	var E, F, G, H field.Element
	E.Sub(&B, &A)
	F.Sub(&D, &C)
	G.Add(&D, &C)
	H.Add(&B, &A)

	dst.X.Mul(&E, &F)
	dst.Y.Mul(&G, &H)
	dst.T.Mul(&E, &H)
	dst.Z.Mul(&F, &G)
}

// Double sets *dst = 2*a using the dbl-2008-hwcd-a=-1 formulas:
//
//	A = X1^2; B = Y1^2; C = 2*Z1^2; D = -A
//	E = (X1+Y1)^2 - A - B
//	G = D+B; F = G-C; H = D-B
//	X3 = E*F; Y3 = G*H; T3 = E*H; Z3 = F*G
func Double(dst *TEProjective, a TEProjective) {
	var A, B, C field.Element
	A.Square(&a.X)
	B.Square(&a.Y)
	C.Square(&a.Z)
	C.Double(&C)

	var D field.Element
	D.Neg(&A)

	var xPlusY, E field.Element
	xPlusY.Add(&a.X, &a.Y)
	E.Square(&xPlusY)
	E.Sub(&E, &A)
	E.Sub(&E, &B)

	var G, F, H field.Element
	G.Add(&D, &B)
	F.Sub(&G, &C)
	H.Sub(&D, &B)

	dst.X.Mul(&E, &F)
	dst.Y.Mul(&G, &H)
	dst.T.Mul(&E, &H)
	dst.Z.Mul(&F, &G)
}

// Negate sets *dst = -a: for the a=-1 twisted-Edwards curve this package
// uses, negation flips the sign of X and T and leaves Y and Z unchanged.
func Negate(dst *TEProjective, a TEProjective) {
	dst.X.Neg(&a.X)
	dst.Y = a.Y
	dst.Z = a.Z
	dst.T.Neg(&a.T)
}

// DoubleInPlace applies Double n times, used to realign a column
// accumulator by n digit-widths' worth of weight (a "left shift" in the
// bucket-method sense) before folding it into the running MSM total.
func DoubleInPlace(p *TEProjective, n int) {
	for i := 0; i < n; i++ {
		Double(p, *p)
	}
}
