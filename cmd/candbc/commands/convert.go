package commands

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/candbc/candbc-go/pkg/dbc"
	"github.com/candbc/candbc-go/pkg/dbcfile"
	"github.com/candbc/candbc-go/pkg/export"
)

// RunConvert reads an exported view and writes it back as DBC text.
func RunConvert(env Env, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("convert", stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, `candbc convert - Convert an exported view back to DBC text

Usage:
  candbc convert [flags] <file.json|file.yaml|file.cbor>

Flags:`)
		fs.PrintDefaults()
	}
	formatFlag := fs.String("format", "", "Input format (default: from file extension)")
	output := fs.String("o", "", "Output file (default: stdout)")

	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		return usageError(stderr, fs, "exactly one input file required")
	}
	input := fs.Arg(0)

	name := *formatFlag
	if name == "" {
		name = strings.TrimPrefix(filepath.Ext(input), ".")
	}
	format, err := export.ParseFormat(name)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	f, err := os.Open(input)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	view, err := export.Decode(f, format)
	f.Close()
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", input, err)
		return exitCommandError
	}

	d, err := export.ToDocument(view)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %s: %v\n", input, err)
		return exitCommandError
	}
	defer dbc.Destroy(d)
	env.logger().Debug("converted view", "file", input, "format", format, "messages", d.Messages.Len())

	err = withOutput(*output, stdout, func(w io.Writer) error {
		return dbcfile.Write(w, d)
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	return exitSuccess
}
