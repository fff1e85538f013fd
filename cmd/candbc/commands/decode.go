package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/candbc/candbc-go/pkg/dbc"
	"github.com/candbc/candbc-go/pkg/frame"
	"github.com/candbc/candbc-go/pkg/inspect"
)

// RunDecode decodes one CAN payload against a message of a DBC file.
func RunDecode(env Env, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("decode", stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, `candbc decode - Decode a CAN payload

Usage:
  candbc decode <file.dbc> <id|name>[/<signal>] <hexdata>

Examples:
  candbc decode powertrain.dbc 100 0x401F7D
  candbc decode powertrain.dbc EngineData/EngineSpeed "40 1F 7D"`)
	}
	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() < 3 {
		return usageError(stderr, fs, "DBC file, message and payload required")
	}

	path, err := inspect.ParsePath(fs.Arg(1))
	if err != nil {
		fmt.Fprintf(stderr, "Error: invalid message: %v\n", err)
		return exitCommandError
	}
	data, err := frame.ParseHex(strings.Join(fs.Args()[2:], ""))
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

	m, values, err := inspect.NewInspector(d).Decode(path, data)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	f := inspect.NewFormatter()
	fmt.Fprintf(stdout, "%s %s\n", f.FormatID(m.ID), dbc.TextOr(m.Name, ""))
	fmt.Fprint(stdout, f.FormatDecoded(values))
	return exitSuccess
}
