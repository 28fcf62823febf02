package main

import (
	"flag"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"time"

	"github.com/consensys/gnark-crypto/ecc/bls12-377"
	"github.com/consensys/gnark-crypto/ecc/bls12-377/fr"

	"github.com/cyclone-msm/cyclone-msm/internal/harness"
	"github.com/cyclone-msm/cyclone-msm/pointfile"
	"github.com/cyclone-msm/cyclone-msm/scalar"
	"github.com/cyclone-msm/cyclone-msm/session"
)

func doMSM(args []string, stdOut, stdErr io.Writer) int {
	flags := flag.NewFlagSet("msm", flag.ExitOnError)
	flags.SetOutput(stdErr)
	preloaded := flags.Bool("preloaded", false, "Assume points are already uploaded to the accelerator.")
	verbose := flags.Bool("v", false, "Enables verbose logging.")
	_ = flags.Parse(args)

	if flags.NArg() < 2 {
		fmt.Fprintln(stdErr, "usage: cyclone-msm msm <k> <name> [--preloaded] [-v]")
		return 1
	}

	k, err := strconv.Atoi(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stdErr, "invalid k: %v\n", err)
		return 1
	}
	name := flags.Arg(1)
	n := 1 << k

	beta, err := pointfile.ReadBeta(name + ".beta")
	if err != nil {
		fmt.Fprintf(stdErr, "reading %s.beta: %v\n", name, err)
		return 1
	}

	t, err := openTransport()
	if err != nil {
		fmt.Fprintf(stdErr, "attaching accelerator: %v\n", err)
		return 1
	}
	defer t.Close()

	cfg := session.NewConfig().WithVerbose(*verbose)
	s, err := session.New(t, k, cfg)
	if err != nil {
		fmt.Fprintf(stdErr, "starting session: %v\n", err)
		return 1
	}

	if !*preloaded {
		points, err := pointfile.ReadPoints(name+".points", n)
		if err != nil {
			fmt.Fprintf(stdErr, "reading %s.points: %v\n", name, err)
			return 1
		}
		s.SetPreprocessedPoints(points)
	}

	scalars := make([]fr.Element, n)
	rawScalars := make([]scalar.Scalar, n)
	for i := range scalars {
		scalars[i].MustSetRandom()
		var v big.Int
		scalars[i].BigInt(&v)
		rawScalars[i] = scalarFromBigInt(&v)
	}

	start := time.Now()
	got := s.MSM(rawScalars)
	fmt.Fprintf(stdOut, "msm: %s\n", time.Since(start))

	combined := harness.LinearCombinationScalar(beta, scalars)
	var combinedInt big.Int
	combined.BigInt(&combinedInt)

	_, _, g1, _ := bls12377.Generators()
	var want bls12377.G1Affine
	want.ScalarMultiplication(&g1, &combinedInt)

	if !got.X.Equal(&want.X) || !got.Y.Equal(&want.Y) {
		fmt.Fprintf(stdErr, "msm mismatch: got x=%s y=%s, want x=%s y=%s\n",
			got.X.String(), got.Y.String(), want.X.String(), want.Y.String())
		return 1
	}

	fmt.Fprintf(stdOut, "msm check ok: x=%s y=%s\n", got.X.String(), got.Y.String())
	return 0
}

// scalarFromBigInt packs v's little-endian 64-bit words into a raw Scalar,
// the same layout session.MSM expects from its caller.
func scalarFromBigInt(v *big.Int) scalar.Scalar {
	mask := new(big.Int).SetUint64(^uint64(0))
	tmp := new(big.Int).Set(v)

	var out scalar.Scalar
	for i := 0; i < 4; i++ {
		word := new(big.Int).And(tmp, mask)
		out[i] = word.Uint64()
		tmp.Rsh(tmp, 64)
	}
	return out
}
