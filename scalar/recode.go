package scalar

// Recode converts each of the n input scalars into its carry-adjusted
// digit form, writing the result into out (which must have the same
// length as in and may not alias in). Every 64-bit limb is viewed as four
// 16-bit half-words; this walks all sixteen half-words of a scalar in
// ascending order of weight (limb 0's half-word 0 first, limb 3's
// half-word 3 last) applying the standard "carry the high bit up"
// recoding: whenever a half-word's value is >= 2^15, the emitted digit is
// half-2^16 (negative) and a +1 carry propagates into the next half-word's
// position, possibly across a limb boundary.
//
// The topmost carry, out of limb 3's top half-word, is dropped rather than
// propagated further: scalars are guaranteed to be < 2^253 (the BLS12-377
// subgroup order's bit length), so that half-word's raw value can never be
// large enough to produce one.
func Recode(in []Scalar, out []Scalar) {
	if len(in) != len(out) {
		panic("scalar: Recode: in and out length mismatch")
	}
	for s := range in {
		var carry uint32
		var limbs [4]uint64
		for i := 0; i < 4; i++ {
			var digits [4]Digit
			digits, carry = recodeLimb(in[s][i], carry)
			limbs[i] = packDigits(digits)
		}
		out[s] = Scalar(limbs)
	}
}

// recodeLimb applies the carry chain to a single 64-bit limb's four
// half-words, given the carry flowing in from the previous limb (0 or 1),
// and returns the four signed digits along with the carry flowing out.
func recodeLimb(limb uint64, carryIn uint32) (digits [4]Digit, carryOut uint32) {
	carry := carryIn
	for j := 0; j < 4; j++ {
		v := uint32(uint16(limb>>(16*j))) + carry
		if v >= 1<<15 {
			digits[j] = Digit(int32(v) - 1<<16)
			carry = 1
		} else {
			digits[j] = Digit(v)
			carry = 0
		}
	}
	return digits, carry
}

func packDigits(digits [4]Digit) uint64 {
	var packed uint64
	for j, d := range digits {
		packed |= uint64(uint16(d)) << (16 * j)
	}
	return packed
}

// ColumnDigit reads the already carry-adjusted digit at (limb, half) from
// a scalar produced by Recode.
func ColumnDigit(s Scalar, limb, half int) Digit {
	return Digit(int16(s.halfWord(limb, half)))
}

// LimbZeroDigits computes the four digits of limb 0 directly from a raw,
// un-recoded scalar, without touching limbs 1-3 or any shared carry
// state. Limb 0 has no incoming carry (it is the least significant), so
// this produces exactly the same four digits Recode would have written to
// limb 0 of its output — it exists purely so the concurrent column-0
// dispatch (run alongside the full Recode call on the host's second
// worker) never reads or writes the shared carried-scalar buffer.
func LimbZeroDigits(raw Scalar) [4]Digit {
	digits, _ := recodeLimb(raw[0], 0)
	return digits
}
