// Package field is a thin facade over the base-field and scalar-field
// arithmetic of BLS12-377, backed by gnark-crypto. It exposes exactly the
// surface the rest of cyclone-msm needs: element construction, the
// Weierstrass/twisted-Edwards isomorphism constants, and Montgomery's batch
// inversion trick. All other field arithmetic (add/sub/mul/inverse/double)
// is used directly from gnark-crypto by callers.
package field

import (
	"math/big"

	"github.com/consensys/gnark-crypto/ecc/bls12-377/fp"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"
)

// Element is the base field F_q, q a 377-bit prime. Six 64-bit limbs,
// little-endian, always stored in Montgomery form.
type Element = fp.Element

// Scalar is the subgroup scalar field F_r, r a 253-bit prime.
type Scalar = fr.Element

// Montgomery constants defining the Weierstrass <-> twisted-Edwards
// isomorphism used by the curve package. These are literal 377-bit decimal
// values, embedded as program constants exactly as the accelerator's curve
// parameters require; they are not derived at runtime.
var (
	// FQ_S is the isomorphism scale factor "s".
	FQ_S Element
	// FQ_S_INV is the multiplicative inverse of FQ_S.
	FQ_S_INV Element
	// FQ_SQRT_MIN_A is a square root of -A for the twisted-Edwards curve
	// coefficient A.
	FQ_SQRT_MIN_A Element
)

func init() {
	if _, err := FQ_S.SetString(fqSDecimal); err != nil {
		panic("field: invalid FQ_S constant: " + err.Error())
	}
	if _, err := FQ_S_INV.SetString(fqSInvDecimal); err != nil {
		panic("field: invalid FQ_S_INV constant: " + err.Error())
	}
	if _, err := FQ_SQRT_MIN_A.SetString(fqSqrtMinADecimal); err != nil {
		panic("field: invalid FQ_SQRT_MIN_A constant: " + err.Error())
	}
}

// These decimal literals are the isomorphism parameters published for the
// BLS12-377 Weierstrass <-> twisted-Edwards mapping used by the Celo/Zexe
// curve tooling this accelerator targets.
const (
	fqSDecimal        = "10189023633222963290707194929886294091415157242906428298294512798502806398782149227503530278436336312243746741931"
	fqSInvDecimal     = "30567070899668889872121584789658882274245471728719284894883538395508419196346447682510590835309008936731240225793"
	fqSqrtMinADecimal = "235104237478051516191809091778322087600408126435680774020954291067230236919576441851480900410358060820255406299421"
)

// Zero returns the additive identity of F_q.
func Zero() Element {
	var z Element
	return z
}

// One returns the multiplicative identity of F_q.
func One() Element {
	var z Element
	z.SetOne()
	return z
}

// FromLimbs builds a field element directly from six little-endian 64-bit
// limbs already in Montgomery form. Used when round-tripping values that the
// accelerator has already reduced, such as bucket-read results.
func FromLimbs(limbs [6]uint64) Element {
	return Element(limbs)
}

// ToLimbs returns the element's six little-endian 64-bit limbs, still in
// Montgomery form, exactly as the accelerator's stream packets and
// register read-backs carry field elements on the wire.
func ToLimbs(e Element) [6]uint64 {
	return [6]uint64(e)
}

// FromUint64 builds the field element representing the given integer.
func FromUint64(v uint64) Element {
	var z Element
	z.SetUint64(v)
	return z
}

// FromBigInt reduces a big.Int modulo q.
func FromBigInt(v *big.Int) Element {
	var z Element
	z.SetBigInt(v)
	return z
}

// BatchInvert returns a new slice holding the inverse of every element of
// in, leaving in unchanged. It performs exactly one modular inversion plus 3*len(in)
// multiplications (Montgomery's trick), matching the cost model the curve
// package's batched preprocessing relies on. Any zero element of in stays
// zero in the result, matching gnark-crypto's convention for projective-coordinate
// points at infinity.
func BatchInvert(in []Element) []Element {
	return fp.BatchInvert(in)
}
