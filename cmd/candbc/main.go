// Command candbc reads, converts and inspects DBC CAN network descriptions.
//
// Usage:
//
//	candbc [-config file] [-v] <command> [flags] <args>
//
// Commands:
//
//	export    Export a DBC file as JSON, YAML or CBOR
//	stats     Show statistics about a DBC file
//	show      Display DBC file contents
//	validate  Parse and check DBC files
//	decode    Decode a CAN payload
//	convert   Convert an exported view back to DBC text
//	gen       Generate Go message descriptors
//	inspect   Browse a DBC file interactively
//
// Examples:
//
//	# Export to JSON with statistics
//	candbc export -stats powertrain.dbc
//
//	# Round trip through YAML
//	candbc export -format yaml -o pt.yaml powertrain.dbc
//	candbc convert -o pt.dbc pt.yaml
//
//	# Decode a frame
//	candbc decode powertrain.dbc 0x64 401F7D0000000000
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/candbc/candbc-go/cmd/candbc/commands"
	"github.com/candbc/candbc-go/internal/config"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
)

const usage = `candbc - DBC CAN database tool

Usage:
  candbc [-config file] [-v] <command> [flags] <args>

Commands:
  export    Export a DBC file as JSON, YAML or CBOR
  stats     Show statistics about a DBC file
  show      Display DBC file contents
  validate  Parse and check DBC files
  decode    Decode a CAN payload
  convert   Convert an exported view back to DBC text
  gen       Generate Go message descriptors
  inspect   Browse a DBC file interactively

Global flags:
  -config file  Load settings from a YAML file
  -v            Enable debug logging

Use "candbc <command> -help" for more information about a command.
`

type runFunc func(commands.Env, []string, io.Writer, io.Writer) int

var commandTable = map[string]runFunc{
	"export":   commands.RunExport,
	"stats":    commands.RunStats,
	"show":     commands.RunShow,
	"validate": commands.RunValidate,
	"decode":   commands.RunDecode,
	"convert":  commands.RunConvert,
	"gen":      commands.RunGen,
	"inspect":  commands.RunInspect,
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("candbc", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stderr, usage) }
	configPath := fs.String("config", "", "Configuration file")
	verbose := fs.Bool("v", false, "Enable debug logging")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess
		}
		return exitCommandError
	}
	if fs.NArg() < 1 {
		fmt.Fprint(stderr, usage)
		return exitCommandError
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		cfg = loaded
	}

	level := cfg.Level()
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(stderr, &slog.HandlerOptions{Level: level}))
	env := commands.Env{Config: cfg, Logger: logger}

	cmd := fs.Arg(0)
	cmdArgs := fs.Args()[1:]

	switch cmd {
	case "help", "-h", "--help":
		fmt.Fprint(stdout, usage)
		return exitSuccess
	case "version", "--version":
		fmt.Fprintln(stdout, "candbc version 0.1.0")
		return exitSuccess
	}

	runCmd, ok := commandTable[cmd]
	if !ok {
		fmt.Fprintf(stderr, "Unknown command: %s\n", cmd)
		fmt.Fprint(stderr, usage)
		return exitCommandError
	}
	logger.Debug("running command", "command", cmd, "config", *configPath)
	return runCmd(env, cmdArgs, stdout, stderr)
}
