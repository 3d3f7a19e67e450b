//go:build !js

package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"

	"goprelude/pkg/abi"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run emits the prelude declarations for a code generator. It returns the
// process exit code.
func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("goprelude", flag.ContinueOnError)
	fs.SetOutput(stderr)
	lang := fs.String("lang", "c", "declaration language: c or llvm")
	outPath := fs.String("out", "", "output file path (default: stdout)")
	list := fs.Bool("list", false, "list the prelude primitives and exit")
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected arguments: %v\n", fs.Args())
		fs.Usage()
		return 2
	}

	if *list {
		for _, sig := range abi.Signatures() {
			fmt.Fprintf(stdout, "%-14s %s\n", sig.Name, sig.Doc)
		}
		return 0
	}

	out := stdout
	if *outPath != "" {
		f, err := os.Create(*outPath)
		if err != nil {
			fmt.Fprintf(stderr, "failed to create output file %q: %v\n", *outPath, err)
			return 1
		}
		defer f.Close()
		out = f
	}

	if err := abi.WriteDeclarations(out, *lang); err != nil {
		if errors.Is(err, abi.ErrUnknownLanguage) {
			fmt.Fprintln(stderr, err)
			return 2
		}
		fmt.Fprintf(stderr, "failed to write declarations: %v\n", err)
		return 1
	}
	if *outPath != "" {
		fmt.Fprintf(stdout, "wrote %s declarations -> %s\n", *lang, *outPath)
	}
	return 0
}
