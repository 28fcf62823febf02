package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/cyclone-msm/cyclone-msm/curve"
	"github.com/cyclone-msm/cyclone-msm/internal/harness"
	"github.com/cyclone-msm/cyclone-msm/pointfile"
)

func doPoints(args []string, stdOut, stdErr io.Writer) int {
	flags := flag.NewFlagSet("points", flag.ExitOnError)
	flags.SetOutput(stdErr)
	_ = flags.Parse(args)

	if flags.NArg() < 2 {
		fmt.Fprintln(stdErr, "usage: cyclone-msm points <k> <name>")
		return 1
	}

	k, err := strconv.Atoi(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stdErr, "invalid k: %v\n", err)
		return 1
	}
	name := flags.Arg(1)

	beta := harness.GenerateBeta()
	weierstrass := harness.GeneratePoints(k, beta)

	// PreprocessBatch accepts at most 2^16 points per call.
	const shard = 1 << 16
	preprocessed := make([]curve.PreprocessedAffine, len(weierstrass))
	for lo := 0; lo < len(weierstrass); lo += shard {
		hi := min(lo+shard, len(weierstrass))
		curve.PreprocessBatch(weierstrass[lo:hi], preprocessed[lo:hi])
	}

	if err := pointfile.WritePoints(name+".points", preprocessed); err != nil {
		fmt.Fprintf(stdErr, "writing %s.points: %v\n", name, err)
		return 1
	}
	if err := pointfile.WriteBeta(name+".beta", beta); err != nil {
		fmt.Fprintf(stdErr, "writing %s.beta: %v\n", name, err)
		return 1
	}

	fmt.Fprintf(stdOut, "wrote %s.points and %s.beta (2^%d points)\n", name, name, k)
	return 0
}
