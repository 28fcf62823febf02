// Package scalar recodes 256-bit scalars into the four signed 16-bit digit
// columns the FPGA's Pippenger reduction consumes.
package scalar

// Scalar is an unsigned 256-bit integer: four 64-bit limbs, little-endian.
// It carries no modular invariant at this layer; the recoder treats it as
// raw bits.
type Scalar [4]uint64

// Digit is a signed 16-bit accelerator command payload, always in
// [-2^15, 2^15-1].
type Digit int16

// halfWord extracts the jth 16-bit half-word (j in [0,3]) of limb i.
func (s Scalar) halfWord(i, j int) uint16 {
	return uint16(s[i] >> (16 * j))
}
