package commands

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/candbc/candbc-go/pkg/codegen"
	"github.com/candbc/candbc-go/pkg/dbc"
)

// RunGen generates Go message descriptors from a DBC file.
func RunGen(env Env, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("gen", stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, `candbc gen - Generate Go message descriptors

Usage:
  candbc gen [flags] <file.dbc>

Flags:`)
		fs.PrintDefaults()
	}
	pkg := fs.String("package", env.config().Codegen.Package, "Package name of the generated file")
	output := fs.String("o", "", "Output file (default: stdout)")

	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		return usageError(stderr, fs, "exactly one DBC file required")
	}

	d, err := env.readDocument(fs.Arg(0), false)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer dbc.Destroy(d)

	src, err := codegen.Generate(d, filepath.Base(fs.Arg(0)), codegen.Options{Package: *pkg})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	err = withOutput(*output, stdout, func(w io.Writer) error {
		_, err := w.Write(src)
		return err
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	return exitSuccess
}
