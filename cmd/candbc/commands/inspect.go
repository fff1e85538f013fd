package commands

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/candbc/candbc-go/cmd/candbc/interactive"
	"github.com/candbc/candbc-go/pkg/dbc"
)

// RunInspect opens an interactive shell on a DBC file. With -c the given
// semicolon-separated commands run without a terminal.
func RunInspect(env Env, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("inspect", stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, `candbc inspect - Browse a DBC file interactively

Usage:
  candbc inspect [-c commands] <file.dbc>

Flags:`)
		fs.PrintDefaults()
	}
	script := fs.String("c", "", "Run these commands (separated by ';') and exit")

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

	if *script != "" {
		sh := interactive.NewShell(d)
		for _, line := range strings.Split(*script, ";") {
			if sh.Execute(line, stdout) {
				break
			}
		}
		return exitSuccess
	}

	sh, err := interactive.New(d)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	sh.Run(ctx)
	return exitSuccess
}
