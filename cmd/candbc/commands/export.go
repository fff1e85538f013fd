package commands

import (
	"fmt"
	"io"

	"github.com/candbc/candbc-go/pkg/dbc"
	"github.com/candbc/candbc-go/pkg/export"
	"github.com/candbc/candbc-go/pkg/inspect"
)

// RunExport projects a DBC file and writes the view as JSON, YAML or CBOR.
func RunExport(env Env, args []string, stdout, stderr io.Writer) int {
	cfg := env.config()
	fs := newFlagSet("export", stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, `candbc export - Export a DBC file as JSON, YAML or CBOR

Usage:
  candbc export [flags] <file.dbc>

Flags:`)
		fs.PrintDefaults()
	}
	formatFlag := fs.String("format", cfg.Format, "Output format (json, yaml, cbor)")
	output := fs.String("o", "", "Output file (default: stdout)")
	indent := fs.Int("indent", cfg.Indent, "Indent width for json and yaml")
	showStats := fs.Bool("stats", false, "Print statistics to stderr")

	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		return usageError(stderr, fs, "exactly one DBC file required")
	}
	format, err := export.ParseFormat(*formatFlag)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	d, err := env.readDocument(fs.Arg(0), false)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer dbc.Destroy(d)

	view, stats := export.Project(d)
	err = withOutput(*output, stdout, func(w io.Writer) error {
		return export.EncodeIndent(w, view, format, *indent)
	})
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	env.logger().Debug("exported document", "file", fs.Arg(0), "format", format, "messages", stats.Messages)

	if *showStats {
		fmt.Fprint(stderr, inspect.NewFormatter().FormatStats(stats))
	}
	return exitSuccess
}
