// Package commands implements the candbc subcommands. Each RunX function
// parses its own flags and returns a process exit code.
package commands

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/candbc/candbc-go/internal/config"
	"github.com/candbc/candbc-go/pkg/dbc"
	"github.com/candbc/candbc-go/pkg/dbcfile"
)

const (
	exitSuccess      = 0
	exitCommandError = 1
	exitValidation   = 2
)

// Env carries the settings shared by all subcommands.
type Env struct {
	Config *config.Config
	Logger *slog.Logger
}

// DefaultEnv returns the built-in configuration and a discarding logger.
func DefaultEnv() Env {
	return Env{Config: config.Default(), Logger: slog.New(slog.DiscardHandler)}
}

func (e Env) config() *config.Config {
	if e.Config == nil {
		return config.Default()
	}
	return e.Config
}

func (e Env) logger() *slog.Logger {
	if e.Logger == nil {
		return slog.New(slog.DiscardHandler)
	}
	return e.Logger
}

// readDocument parses a DBC file with the environment's reader settings.
func (e Env) readDocument(path string, strict bool) (*dbc.Document, error) {
	return dbcfile.ReadFile(path, dbcfile.Options{
		Logger: e.logger(),
		Strict: strict || e.config().Strict,
	})
}

// newFlagSet returns a flag set that reports errors instead of exiting.
func newFlagSet(name string, stderr io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	return fs
}

// parseFlags parses args and maps -help to a successful exit.
func parseFlags(fs *flag.FlagSet, args []string) (exit int, ok bool) {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitSuccess, false
		}
		return exitCommandError, false
	}
	return 0, true
}

// withOutput calls fn with a writer for path, or stdout when path is empty.
// The file is removed again when fn fails.
func withOutput(path string, stdout io.Writer, fn func(io.Writer) error) (err error) {
	if path == "" {
		return fn(stdout)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(path)
		}
	}()
	return fn(f)
}

func usageError(stderr io.Writer, fs *flag.FlagSet, msg string) int {
	fmt.Fprintf(stderr, "Error: %s\n", msg)
	fs.Usage()
	return exitCommandError
}
