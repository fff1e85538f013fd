package commands

import (
	"fmt"
	"io"

	"github.com/candbc/candbc-go/pkg/dbc"
	"github.com/candbc/candbc-go/pkg/export"
	"github.com/candbc/candbc-go/pkg/inspect"
)

// RunStats prints the projection statistics of a DBC file.
func RunStats(env Env, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("stats", stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, `candbc stats - Show statistics about a DBC file

Usage:
  candbc stats [-json] <file.dbc>

Flags:`)
		fs.PrintDefaults()
	}
	asJSON := fs.Bool("json", false, "Output statistics as JSON")

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

	stats := export.Statistics(d)
	if *asJSON {
		if err := export.EncodeIndent(stdout, stats, export.FormatJSON, env.config().Indent); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		return exitSuccess
	}
	fmt.Fprint(stdout, inspect.NewFormatter().FormatStats(stats))
	return exitSuccess
}
