// Package main provides the mera CLI.
package main

import (
	"fmt"
	"io"
	"os"
)

const version = "v0.0.1-dev"

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		usage(stderr)
		return 1
	}

	var err error
	switch args[0] {
	case "version":
		fmt.Fprintf(stdout, "mera %s\n", version)
		return 0
	case "eval":
		err = evalCmd(args[1:], stdin, stdout, stderr)
	case "build":
		err = buildCmd(args[1:], stdout, stderr)
	case "help", "-h", "--help":
		usage(stdout)
		return 0
	default:
		fmt.Fprintf(stderr, "unknown command %q\n\n", args[0])
		usage(stderr)
		return 1
	}

	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}
	return 0
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "mera - tensor-network srep evaluator")
	fmt.Fprintf(w, "Version: %s\n\n", version)
	fmt.Fprintln(w, "Commands:")
	fmt.Fprintln(w, "  eval [-config file.yaml] [-breakup] [-matrix] [-verbose] [-save out.mera] <equation|->")
	fmt.Fprintln(w, "                   evaluate lhs=rhs against the configured tensors")
	fmt.Fprintln(w, "  build -sites N [-periodic] [-energy]")
	fmt.Fprintln(w, "                   print a 1-D binary MERA srep and its energy terms")
	fmt.Fprintln(w, "  version          show version")
}
