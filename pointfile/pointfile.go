// Package pointfile reads and writes the two on-disk artifacts the
// cyclone-msm CLI shares between its "points", "load", "column", and "msm"
// subcommands: a raw little-endian dump of preprocessed points and a raw
// little-endian scalar field element used as the test-vector basis.
package pointfile

import (
	"encoding/binary"
	"fmt"
	"os"

	"github.com/cyclone-msm/cyclone-msm/curve"
	"github.com/cyclone-msm/cyclone-msm/field"
)

// recordSize is the on-disk size of one PreprocessedAffine record: X, Y,
// KT, each six little-endian 64-bit limbs, 3*48 = 144 bytes.
const recordSize = 3 * 6 * 8

// betaSize is the on-disk size of the beta scalar: a raw 32-byte F_r
// element, little-endian.
const betaSize = 32

// WritePoints writes points to path as a raw little-endian dump of
// PreprocessedAffine records, 144 bytes each.
func WritePoints(path string, points []curve.PreprocessedAffine) error {
	buf := make([]byte, len(points)*recordSize)
	for i, p := range points {
		off := i * recordSize
		putElement(buf[off:], p.X)
		putElement(buf[off+48:], p.Y)
		putElement(buf[off+96:], p.KT)
	}
	return os.WriteFile(path, buf, 0o644)
}

// ReadPoints reads path and decodes it into exactly n PreprocessedAffine
// records, returning an error if the file size does not equal 144*n.
func ReadPoints(path string, n int) ([]curve.PreprocessedAffine, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	want := n * recordSize
	if len(buf) != want {
		return nil, fmt.Errorf("pointfile: %s: size %d, want %d (144*2^k)", path, len(buf), want)
	}

	points := make([]curve.PreprocessedAffine, n)
	for i := range points {
		off := i * recordSize
		points[i].X = getElement(buf[off:])
		points[i].Y = getElement(buf[off+48:])
		points[i].KT = getElement(buf[off+96:])
	}
	return points, nil
}

// WriteBeta writes beta to path as a raw little-endian 32-byte scalar.
func WriteBeta(path string, beta field.Scalar) error {
	var buf [betaSize]byte
	b := beta.Bytes() // gnark-crypto's Bytes() is big-endian; reverse to little-endian on disk.
	for i, v := range b {
		buf[betaSize-1-i] = v
	}
	return os.WriteFile(path, buf[:], 0o644)
}

// ReadBeta reads path and decodes it into a scalar field element.
func ReadBeta(path string) (field.Scalar, error) {
	buf, err := os.ReadFile(path)
	if err != nil {
		return field.Scalar{}, err
	}
	if len(buf) != betaSize {
		return field.Scalar{}, fmt.Errorf("pointfile: %s: size %d, want %d", path, len(buf), betaSize)
	}

	var be [betaSize]byte
	for i, v := range buf {
		be[betaSize-1-i] = v
	}
	var beta field.Scalar
	beta.SetBytes(be[:])
	return beta, nil
}

func putElement(dst []byte, e field.Element) {
	limbs := field.ToLimbs(e)
	for i, l := range limbs {
		binary.LittleEndian.PutUint64(dst[i*8:i*8+8], l)
	}
}

func getElement(src []byte) field.Element {
	var limbs [6]uint64
	for i := range limbs {
		limbs[i] = binary.LittleEndian.Uint64(src[i*8 : i*8+8])
	}
	return field.FromLimbs(limbs)
}
