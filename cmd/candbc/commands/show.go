package commands

import (
	"errors"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/candbc/candbc-go/pkg/dbc"
	"github.com/candbc/candbc-go/pkg/export"
	"github.com/candbc/candbc-go/pkg/inspect"
)

// ShowOptions configures the show command.
type ShowOptions struct {
	Format  string // text, json, yaml, html
	Message string // message path, optionally with a signal
	IDs     bool
	File    string
}

// RunShow displays a DBC file, one message or one signal.
func RunShow(env Env, args []string, stdout, stderr io.Writer) int {
	fs := newFlagSet("show", stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, `candbc show - Display DBC file contents

Usage:
  candbc show [flags] <file.dbc>

The -message path is <id|name>[/<signal>], e.g. 0x64 or EngineData/Speed.
The html format renders a report with one signal table per message and
accepts only message paths.

Flags:`)
		fs.PrintDefaults()
	}
	var opts ShowOptions
	fs.StringVar(&opts.Format, "format", "text", "Output format (text, json, yaml, html)")
	fs.StringVar(&opts.Message, "message", "", "Show only this message or signal")
	fs.BoolVar(&opts.IDs, "ids", false, "Show hexadecimal message identifiers")

	if code, ok := parseFlags(fs, args); !ok {
		return code
	}
	if fs.NArg() != 1 {
		return usageError(stderr, fs, "exactly one DBC file required")
	}
	opts.File = fs.Arg(0)

	var path *inspect.Path
	if opts.Message != "" {
		p, err := inspect.ParsePath(opts.Message)
		if err != nil {
			fmt.Fprintf(stderr, "Error: invalid message path: %v\n", err)
			return exitCommandError
		}
		path = p
	}

	d, err := env.readDocument(opts.File, false)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	defer dbc.Destroy(d)

	if opts.Format == "text" {
		f := inspect.NewFormatter()
		f.ShowIDs = opts.IDs
		out, err := showText(inspect.NewInspector(d), f, path)
		if err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		fmt.Fprint(stdout, out)
		return exitSuccess
	}

	if opts.Format == "html" {
		if err := showHTML(d, path, stdout); err != nil {
			fmt.Fprintf(stderr, "Error: %v\n", err)
			return exitCommandError
		}
		return exitSuccess
	}

	format, err := export.ParseFormat(opts.Format)
	if err != nil || format == export.FormatCBOR {
		fmt.Fprintf(stderr, "Error: unsupported show format %q\n", opts.Format)
		return exitCommandError
	}
	v, err := showValue(d, path)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	if err := export.EncodeIndent(stdout, v, format, env.config().Indent); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return exitCommandError
	}
	return exitSuccess
}

func showText(insp *inspect.Inspector, f *inspect.Formatter, path *inspect.Path) (string, error) {
	switch {
	case path == nil:
		tree, err := insp.InspectDocument()
		if err != nil {
			return "", err
		}
		return f.FormatDocumentTree(tree), nil
	case path.IsSignal():
		info, err := insp.InspectSignal(path)
		if err != nil {
			return "", err
		}
		return f.FormatSignal(info), nil
	default:
		info, err := insp.InspectMessage(path)
		if err != nil {
			return "", err
		}
		return f.FormatMessage(info), nil
	}
}

// showHTML writes the HTML report of the whole document or of one message.
func showHTML(d *dbc.Document, path *inspect.Path, w io.Writer) error {
	view, _ := export.Project(d)
	if path != nil {
		if path.IsSignal() {
			return errors.New("html report needs a message path, not a signal path")
		}
		m := inspect.ResolveMessage(d, path)
		if m == nil {
			return fmt.Errorf("%w: %s", inspect.ErrMessageNotFound, path.Message)
		}
		key := strconv.FormatUint(uint64(m.ID), 10)
		view.Messages = map[string]*export.MessageView{key: view.Messages[key]}
	}
	return export.WriteHTML(w, view, export.ReportOptions{Generated: time.Now()})
}

// showValue returns the projected view of the whole document, a message or
// a signal.
func showValue(d *dbc.Document, path *inspect.Path) (any, error) {
	view, _ := export.Project(d)
	if path == nil {
		return view, nil
	}
	m := inspect.ResolveMessage(d, path)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", inspect.ErrMessageNotFound, path.Message)
	}
	mv := view.Messages[strconv.FormatUint(uint64(m.ID), 10)]
	if !path.IsSignal() {
		return mv, nil
	}
	s := inspect.ResolveSignal(m, path.Signal)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", inspect.ErrSignalNotFound, path)
	}
	sv, ok := mv.Signals[dbc.TextOr(s.Name, "")]
	if !ok {
		return nil, errors.New("signal missing from projection")
	}
	return sv, nil
}
