// Command cyclone-msm drives the accelerator from the shell: generating
// challenge point/scalar files, uploading them, and running a single-column
// or full multi-scalar-multiplication check against a software reference.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/cyclone-msm/cyclone-msm/transport"
)

func main() {
	os.Exit(doMain(os.Stdout, os.Stderr))
}

// doMain is separated out for the purpose of unit testing.
func doMain(stdOut, stdErr io.Writer) int {
	flag.CommandLine.SetOutput(stdErr)

	var help bool
	flag.BoolVar(&help, "h", false, "Prints usage.")
	flag.Parse()

	if help || flag.NArg() == 0 {
		printUsage(stdErr)
		return 0
	}

	subCmd := flag.Arg(0)
	args := flag.Args()[1:]
	switch subCmd {
	case "points":
		return doPoints(args, stdOut, stdErr)
	case "load":
		return doLoad(args, stdOut, stdErr)
	case "column":
		return doColumn(args, stdOut, stdErr)
	case "msm":
		return doMSM(args, stdOut, stdErr)
	default:
		fmt.Fprintln(stdErr, "invalid command")
		printUsage(stdErr)
		return 1
	}
}

func printUsage(stdErr io.Writer) {
	fmt.Fprintln(stdErr, "cyclone-msm CLI")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Usage:\n  cyclone-msm <command>")
	fmt.Fprintln(stdErr)
	fmt.Fprintln(stdErr, "Commands:")
	fmt.Fprintln(stdErr, "  points <k> <name>\tGenerates 2^k curve points and a beta scalar")
	fmt.Fprintln(stdErr, "  load <k> <name>\tUploads points to the accelerator")
	fmt.Fprintln(stdErr, "  column <k> <name>\tRuns a one-column correctness check")
	fmt.Fprintln(stdErr, "  msm <k> <name>\tRuns a full MSM and compares against reference")
}

// openTransport attaches to the real accelerator's BAR resource files,
// named by environment variable so a test rig can point at a simulator
// device node without changing the command line.
func openTransport() (transport.Transport, error) {
	return transport.Open(os.Getenv("CYCLONE_MSM_CONTROL_BAR"), os.Getenv("CYCLONE_MSM_STREAM_BAR"))
}
