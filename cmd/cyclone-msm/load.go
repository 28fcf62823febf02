package main

import (
	"flag"
	"fmt"
	"io"
	"strconv"

	"github.com/cyclone-msm/cyclone-msm/pointfile"
	"github.com/cyclone-msm/cyclone-msm/session"
)

func doLoad(args []string, stdOut, stdErr io.Writer) int {
	flags := flag.NewFlagSet("load", flag.ExitOnError)
	flags.SetOutput(stdErr)
	_ = flags.Parse(args)

	if flags.NArg() < 2 {
		fmt.Fprintln(stdErr, "usage: cyclone-msm load <k> <name>")
		return 1
	}

	k, err := strconv.Atoi(flags.Arg(0))
	if err != nil {
		fmt.Fprintf(stdErr, "invalid k: %v\n", err)
		return 1
	}
	name := flags.Arg(1)

	points, err := pointfile.ReadPoints(name+".points", 1<<k)
	if err != nil {
		fmt.Fprintf(stdErr, "reading %s.points: %v\n", name, err)
		return 1
	}

	t, err := openTransport()
	if err != nil {
		fmt.Fprintf(stdErr, "attaching accelerator: %v\n", err)
		return 1
	}
	defer t.Close()

	s, err := session.New(t, k, nil)
	if err != nil {
		fmt.Fprintf(stdErr, "starting session: %v\n", err)
		return 1
	}
	s.SetPreprocessedPoints(points)

	fmt.Fprintf(stdOut, "loaded %d points from %s.points\n", len(points), name)
	return 0
}
