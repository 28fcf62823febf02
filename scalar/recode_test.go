package scalar_test

import (
	"math/big"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/cyclone-msm/cyclone-msm/scalar"
)

// reconstruct sums every d_{i,j} * 2^(64i+16j) using big.Int signed
// arithmetic, mirroring the bit-exactness property the recoder must
// satisfy for every input scalar.
func reconstruct(s scalar.Scalar) *big.Int {
	total := new(big.Int)
	weight := new(big.Int)
	for i := 0; i < 4; i++ {
		for j := 0; j < 4; j++ {
			d := int64(scalar.ColumnDigit(s, i, j))
			weight.Lsh(big.NewInt(1), uint(64*i+16*j))
			term := new(big.Int).Mul(big.NewInt(d), weight)
			total.Add(total, term)
		}
	}
	return total
}

func toBigInt(s scalar.Scalar) *big.Int {
	total := new(big.Int)
	for i := 3; i >= 0; i-- {
		total.Lsh(total, 64)
		total.Or(total, new(big.Int).SetUint64(s[i]))
	}
	return total
}

func randomScalarBelow253Bits(r *rand.Rand) scalar.Scalar {
	var s scalar.Scalar
	for i := range s {
		s[i] = r.Uint64()
	}
	s[3] &= (1 << 61) - 1 // keep the top three bits clear: < 2^253
	return s
}

func TestRecodeIsBitExact(t *testing.T) {
	r := rand.New(rand.NewSource(7))
	raw := make([]scalar.Scalar, 64)
	for i := range raw {
		raw[i] = randomScalarBelow253Bits(r)
	}

	carried := make([]scalar.Scalar, len(raw))
	scalar.Recode(raw, carried)

	for i, s := range raw {
		got := reconstruct(carried[i])
		want := toBigInt(s)
		require.Equal(t, want, got, "scalar %d did not round-trip", i)
	}
}

func TestRecodeDigitsStayInRange(t *testing.T) {
	r := rand.New(rand.NewSource(8))
	raw := make([]scalar.Scalar, 128)
	for i := range raw {
		raw[i] = randomScalarBelow253Bits(r)
	}
	carried := make([]scalar.Scalar, len(raw))
	scalar.Recode(raw, carried)

	for _, s := range carried {
		for i := 0; i < 4; i++ {
			for j := 0; j < 4; j++ {
				d := scalar.ColumnDigit(s, i, j)
				require.GreaterOrEqual(t, int(d), -(1 << 15))
				require.LessOrEqual(t, int(d), (1<<15)-1)
			}
		}
	}
}

func TestLimbZeroDigitsMatchFullRecode(t *testing.T) {
	r := rand.New(rand.NewSource(9))
	raw := make([]scalar.Scalar, 32)
	for i := range raw {
		raw[i] = randomScalarBelow253Bits(r)
	}
	carried := make([]scalar.Scalar, len(raw))
	scalar.Recode(raw, carried)

	for i, s := range raw {
		local := scalar.LimbZeroDigits(s)
		for j := 0; j < 4; j++ {
			require.Equal(t, scalar.ColumnDigit(carried[i], 0, j), local[j],
				"scalar %d digit (0,%d)", i, j)
		}
	}
}

func TestRecodePanicsOnLengthMismatch(t *testing.T) {
	require.Panics(t, func() {
		scalar.Recode(make([]scalar.Scalar, 2), make([]scalar.Scalar, 1))
	})
}
