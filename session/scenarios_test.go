package session_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
	"github.com/stretchr/testify/require"

	"github.com/cyclone-msm/cyclone-msm/curve"
	"github.com/cyclone-msm/cyclone-msm/internal/harness"
	"github.com/cyclone-msm/cyclone-msm/scalar"
	"github.com/cyclone-msm/cyclone-msm/session"
)

// newMSMFixture sets up a session with n random points uploaded, backed by
// the bucket-reducing fake FPGA, returning the session and the
// Weierstrass-affine points it was given (in upload order).
func newMSMFixture(t *testing.T, k int) (*session.Session, []bls12377.G1Affine) {
	t.Helper()
	n := 1 << k
	r := rand.New(rand.NewSource(7))
	_, _, g1, _ := bls12377.Generators()

	affine := make([]bls12377.G1Affine, n)
	weierstrass := make([]curve.WeierstrassAffine, n)
	for i := 0; i < n; i++ {
		var kBig big.Int
		kBig.SetUint64(r.Uint64()&0x7fffffff | 1)
		var p bls12377.G1Affine
		p.ScalarMultiplication(&g1, &kBig)
		affine[i] = p
		weierstrass[i] = curve.WeierstrassAffine{X: p.X, Y: p.Y}
	}

	fake := newFakeFPGA(n)
	s, err := session.New(fake, k, nil)
	require.NoError(t, err)

	preprocessed := make([]curve.PreprocessedAffine, n)
	curve.PreprocessBatch(weierstrass, preprocessed)
	s.SetPreprocessedPoints(preprocessed)

	return s, affine
}

// scalarOf builds a raw Scalar for a small (possibly negative) test value,
// two's-complement across the full 256-bit width: recoding a negative value
// this way produces exactly the small negative digit it represents, with
// the carry chain's final (dropped) carry-out accounting for the implied
// mod-2^256 wraparound.
func scalarOf(v int64) scalar.Scalar {
	var b big.Int
	b.SetInt64(v)
	return asScalarLimbsBig(&b)
}

func asScalarLimbsBig(v *big.Int) scalar.Scalar {
	mask := new(big.Int).SetUint64(^uint64(0))
	tmp := new(big.Int).Set(v)
	if tmp.Sign() < 0 {
		// reduce mod 2^256 so limb 0 carries the right two's-complement
		// pattern for a small negative digit.
		mod := new(big.Int).Lsh(big.NewInt(1), 256)
		tmp.Add(tmp, mod)
	}
	var out scalar.Scalar
	for i := 0; i < 4; i++ {
		word := new(big.Int).And(tmp, mask)
		out[i] = word.Uint64()
		tmp.Rsh(tmp, 64)
	}
	return out
}

// TestScenarioSinglePointPlusOne is S1: n=2, s0=1, s1=0 => result = P0.
func TestScenarioSinglePointPlusOne(t *testing.T) {
	s, affine := newMSMFixture(t, 1)
	got := s.MSM([]scalar.Scalar{scalarOf(1), scalarOf(0)})
	require.True(t, got.X.Equal(&affine[0].X))
	require.True(t, got.Y.Equal(&affine[0].Y))
}

// TestScenarioSinglePointMinusOne is S2: n=1, s0=-1 => result = -P0.
func TestScenarioSinglePointMinusOne(t *testing.T) {
	s, affine := newMSMFixture(t, 0)
	got := s.MSM([]scalar.Scalar{scalarOf(-1)})

	var want bls12377.G1Affine
	want.Neg(&affine[0])

	require.True(t, got.X.Equal(&want.X))
	require.True(t, got.Y.Equal(&want.Y))
}

// TestScenarioAdd is S3: n=2, s0=s1=1 => result = P0 + P1.
func TestScenarioAdd(t *testing.T) {
	s, affine := newMSMFixture(t, 1)
	got := s.MSM([]scalar.Scalar{scalarOf(1), scalarOf(1)})

	var want bls12377.G1Jac
	want.FromAffine(&affine[0])
	var p1 bls12377.G1Jac
	p1.FromAffine(&affine[1])
	want.AddAssign(&p1)
	var wantAffine bls12377.G1Affine
	wantAffine.FromJacobian(&want)

	require.True(t, got.X.Equal(&wantAffine.X))
	require.True(t, got.Y.Equal(&wantAffine.Y))
}

// TestScenarioSub is S4: n=2, digits {1,-1} => result = P0 - P1.
func TestScenarioSub(t *testing.T) {
	s, affine := newMSMFixture(t, 1)
	got := s.MSM([]scalar.Scalar{scalarOf(1), scalarOf(-1)})

	var want bls12377.G1Jac
	want.FromAffine(&affine[0])
	var p1 bls12377.G1Jac
	p1.FromAffine(&affine[1])
	want.SubAssign(&p1)
	var wantAffine bls12377.G1Affine
	wantAffine.FromJacobian(&want)

	require.True(t, got.X.Equal(&wantAffine.X))
	require.True(t, got.Y.Equal(&wantAffine.Y))
}

// TestScenarioColumnOnly is S5: random 16-bit digits over harness points
// Pi = beta^i * G, checked column-wise. n is reduced to 2^6 from the spec's
// 2^10 for test tractability; the property being checked does not depend on
// n's magnitude.
func TestScenarioColumnOnly(t *testing.T) {
	const k = 6
	n := 1 << k

	beta := harness.GenerateBeta()
	weierstrass := harness.GeneratePoints(k, beta)

	fake := newFakeFPGA(n)
	s, err := session.New(fake, k, nil)
	require.NoError(t, err)

	preprocessed := make([]curve.PreprocessedAffine, n)
	curve.PreprocessBatch(weierstrass, preprocessed)
	s.SetPreprocessedPoints(preprocessed)

	r := rand.New(rand.NewSource(11))
	digits := make([]int16, n)
	scalars := make([]fr.Element, n)
	for i := range digits {
		d := int16(r.Intn(1<<16) - (1 << 15))
		digits[i] = d
		scalars[i].SetInt64(int64(d))
	}

	got := s.RunColumn(func(i int) int16 { return digits[i] })
	want := harness.Reference(weierstrass, scalars)

	require.True(t, got.X.Equal(&want.X))
	require.True(t, got.Y.Equal(&want.Y))
}

// TestScenarioFullMSM is S6: random scalars over harness points, full MSM.
// n is reduced to 2^6 from the spec's 2^16 for test tractability.
func TestScenarioFullMSM(t *testing.T) {
	const k = 6
	n := 1 << k

	beta := harness.GenerateBeta()
	weierstrass := harness.GeneratePoints(k, beta)
	scalars := harness.GenerateScalars(k)

	fake := newFakeFPGA(n)
	s, err := session.New(fake, k, nil)
	require.NoError(t, err)

	preprocessed := make([]curve.PreprocessedAffine, n)
	curve.PreprocessBatch(weierstrass, preprocessed)
	s.SetPreprocessedPoints(preprocessed)

	rawScalars := make([]scalar.Scalar, n)
	for i, sc := range scalars {
		var v big.Int
		sc.BigInt(&v)
		rawScalars[i] = asScalarLimbsBig(&v)
	}

	got := s.MSM(rawScalars)
	want := harness.Reference(weierstrass, scalars)

	require.True(t, got.X.Equal(&want.X))
	require.True(t, got.Y.Equal(&want.Y))
}

// TestLinearityOverHarnessBasis is testable property 5: msm(P,s1)+msm(P,s2)
// == msm(P, s1+s2 mod r), over the harness basis Pi = beta^i*G, checked by
// comparing the sum of the first two MSM results with the third.
func TestLinearityOverHarnessBasis(t *testing.T) {
	const k = 4
	n := 1 << k

	beta := harness.GenerateBeta()
	weierstrass := harness.GeneratePoints(k, beta)

	fake := newFakeFPGA(n)
	s, err := session.New(fake, k, nil)
	require.NoError(t, err)

	preprocessed := make([]curve.PreprocessedAffine, n)
	curve.PreprocessBatch(weierstrass, preprocessed)
	s.SetPreprocessedPoints(preprocessed)

	r := rand.New(rand.NewSource(21))
	s1 := make([]fr.Element, n)
	s2 := make([]fr.Element, n)
	sum := make([]fr.Element, n)
	raw1 := make([]scalar.Scalar, n)
	raw2 := make([]scalar.Scalar, n)
	rawSum := make([]scalar.Scalar, n)
	for i := 0; i < n; i++ {
		s1[i].SetUint64(r.Uint64() & 0x7fffffff)
		s2[i].SetUint64(r.Uint64() & 0x7fffffff)
		sum[i].Add(&s1[i], &s2[i])

		var v big.Int
		s1[i].BigInt(&v)
		raw1[i] = asScalarLimbsBig(&v)
		s2[i].BigInt(&v)
		raw2[i] = asScalarLimbsBig(&v)
		sum[i].BigInt(&v)
		rawSum[i] = asScalarLimbsBig(&v)
	}

	got1 := s.MSM(raw1)
	got2 := s.MSM(raw2)
	gotSum := s.MSM(rawSum)

	var jac1, jac2 bls12377.G1Jac
	jac1.FromAffine(&bls12377.G1Affine{X: got1.X, Y: got1.Y})
	jac2.FromAffine(&bls12377.G1Affine{X: got2.X, Y: got2.Y})
	jac1.AddAssign(&jac2)
	var combined bls12377.G1Affine
	combined.FromJacobian(&jac1)

	require.True(t, combined.X.Equal(&gotSum.X))
	require.True(t, combined.Y.Equal(&gotSum.Y))
}
