// Package harness generates the challenge instances the CLI and tests
// compare the accelerator against: a fixed sequence of curve points
// Pᵢ = βⁱ·G for a random base β, and an independent software reference for
// multi-scalar multiplication to check results against. None of this runs
// on the accelerator; it exists only to drive and check it.
package harness

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc"
	"github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/cyclone-msm/cyclone-msm/curve"
)

// GenerateBeta draws a random nonzero element of F_r to serve as the
// point-generation basis.
func GenerateBeta() fr.Element {
	var beta fr.Element
	for {
		beta.MustSetRandom()
		if !beta.IsZero() {
			return beta
		}
	}
}

// GeneratePoints returns n = 2^k points Pᵢ = βⁱ·G, i = 0..n-1, where G is
// the BLS12-377 G1 generator. P₀ is always G itself (β⁰ = 1).
func GeneratePoints(k int, beta fr.Element) []curve.WeierstrassAffine {
	n := 1 << k
	_, _, g1, _ := bls12377.Generators()

	points := make([]curve.WeierstrassAffine, n)
	acc := fr.One()
	for i := 0; i < n; i++ {
		var accBig big.Int
		acc.BigInt(&accBig)

		var p bls12377.G1Affine
		p.ScalarMultiplication(&g1, &accBig)
		points[i] = curve.WeierstrassAffine{X: p.X, Y: p.Y}

		acc.Mul(&acc, &beta)
	}
	return points
}

// GenerateScalars draws n = 2^k random elements of F_r as an MSM
// challenge's scalar vector.
func GenerateScalars(k int) []fr.Element {
	n := 1 << k
	scalars := make([]fr.Element, n)
	for i := range scalars {
		scalars[i].MustSetRandom()
	}
	return scalars
}

// Reference computes an independent multi-scalar multiplication of points
// against scalars using gnark-crypto's reference implementation, for
// comparison against the accelerator's result.
func Reference(points []curve.WeierstrassAffine, scalars []fr.Element) curve.WeierstrassAffine {
	affine := make([]bls12377.G1Affine, len(points))
	for i, p := range points {
		affine[i] = bls12377.G1Affine{X: p.X, Y: p.Y}
	}

	var acc bls12377.G1Jac
	if _, err := acc.MultiExp(affine, scalars, ecc.MultiExpConfig{}); err != nil {
		panic("harness: reference MultiExp: " + err.Error())
	}

	var out bls12377.G1Affine
	out.FromJacobian(&acc)
	return curve.WeierstrassAffine{X: out.X, Y: out.Y, Infinity: acc.Z.IsZero()}
}

// LinearCombinationScalar folds beta and scalars into the single exponent
// Σ sᵢ·βⁱ mod r that a harness-generated instance reduces to: with
// Pᵢ = βⁱ·G, msm(P, s) == LinearCombinationScalar(beta, s)·G.
func LinearCombinationScalar(beta fr.Element, scalars []fr.Element) fr.Element {
	var total, power fr.Element
	power.SetOne()
	for _, s := range scalars {
		var term fr.Element
		term.Mul(&s, &power)
		total.Add(&total, &term)
		power.Mul(&power, &beta)
	}
	return total
}
