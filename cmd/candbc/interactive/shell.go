// Package interactive provides the interactive command-line interface
// for browsing a DBC document.
package interactive

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/chzyer/readline"

	"github.com/candbc/candbc-go/pkg/dbc"
	"github.com/candbc/candbc-go/pkg/export"
	"github.com/candbc/candbc-go/pkg/frame"
	"github.com/candbc/candbc-go/pkg/inspect"
)

// Shell handles interactive mode for candbc inspect.
type Shell struct {
	inspector *inspect.Inspector
	formatter *inspect.Formatter
	rl        *readline.Instance
}

// New creates a shell over d. The document stays owned by the caller.
func New(d *dbc.Document) (*Shell, error) {
	s := NewShell(d)
	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "candbc> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
		AutoComplete:    s.completer(),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}
	s.rl = rl
	return s, nil
}

// NewShell creates a shell without a terminal. Use Execute to drive it.
func NewShell(d *dbc.Document) *Shell {
	return &Shell{
		inspector: inspect.NewInspector(d),
		formatter: inspect.NewFormatter(),
	}
}

// Stdout returns a writer that properly coordinates with the readline input.
// Use this for log output to avoid interfering with the command prompt.
func (s *Shell) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop. It returns when the user quits,
// input ends or ctx is cancelled.
func (s *Shell) Run(ctx context.Context) {
	defer s.rl.Close()

	s.printHelp(s.rl.Stdout())

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}

		if quit := s.Execute(line, s.rl.Stdout()); quit {
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return
		}
	}
}

// Execute runs one command line and reports whether the shell should exit.
func (s *Shell) Execute(line string, w io.Writer) (quit bool) {
	input := strings.TrimSpace(line)
	if input == "" {
		return false
	}

	parts := strings.Fields(input)
	cmd := strings.ToLower(parts[0])
	args := parts[1:]

	switch cmd {
	case "help", "?":
		s.printHelp(w)

	case "messages", "ls":
		s.cmdMessages(w)

	case "message", "m":
		s.cmdMessage(w, args)

	case "signals", "sig":
		s.cmdSignals(w, args)

	case "nodes", "n":
		s.cmdNodes(w, args)

	case "stats":
		fmt.Fprint(w, s.formatter.FormatStats(export.Statistics(s.inspector.Document())))

	case "decode", "d":
		s.cmdDecode(w, args)

	case "ids":
		s.formatter.ShowIDs = !s.formatter.ShowIDs
		fmt.Fprintf(w, "Hexadecimal ids: %v\n", s.formatter.ShowIDs)

	case "quit", "exit", "q":
		return true

	default:
		fmt.Fprintf(w, "Unknown command: %s (type 'help' for commands)\n", cmd)
	}
	return false
}

func (s *Shell) printHelp(w io.Writer) {
	fmt.Fprintln(w, `
candbc Commands:
  Browsing:
    messages              - List all messages
    message <path>        - Show a message, or a signal as <message>/<signal>
    signals <message>     - List the signals of a message
    nodes [name]          - List nodes, or show one node

  Analysis:
    stats                 - Show document statistics
    decode <message> <hex> - Decode a payload, e.g. decode 100 0x401F7D
    ids                   - Toggle hexadecimal message ids

  General:
    help                  - Show this help
    quit                  - Exit

  Message Format:
    decimal id, 0x-prefixed id or name - e.g., 100, 0x64 or EngineData`)
}

func (s *Shell) cmdMessages(w io.Writer) {
	tree, err := s.inspector.InspectDocument()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprint(w, s.formatter.FormatMessageList(tree.Messages))
}

func (s *Shell) cmdMessage(w io.Writer, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(w, "Usage: message <path>")
		fmt.Fprintln(w, "  Example: message EngineData/EngineSpeed")
		return
	}
	path, err := inspect.ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(w, "Invalid path: %v\n", err)
		return
	}

	if path.IsSignal() {
		info, err := s.inspector.InspectSignal(path)
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		fmt.Fprint(w, s.formatter.FormatSignal(info))
		return
	}
	info, err := s.inspector.InspectMessage(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprint(w, s.formatter.FormatMessage(info))
}

func (s *Shell) cmdSignals(w io.Writer, args []string) {
	if len(args) < 1 {
		fmt.Fprintln(w, "Usage: signals <message>")
		return
	}
	path, err := inspect.ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(w, "Invalid path: %v\n", err)
		return
	}
	info, err := s.inspector.InspectMessage(path)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprint(w, s.formatter.FormatSignalTable(info.Signals))
}

func (s *Shell) cmdNodes(w io.Writer, args []string) {
	if len(args) > 0 {
		info, err := s.inspector.InspectNode(args[0])
		if err != nil {
			fmt.Fprintf(w, "Error: %v\n", err)
			return
		}
		fmt.Fprint(w, s.formatter.FormatNode(info))
		return
	}

	tree, err := s.inspector.InspectDocument()
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	if len(tree.Nodes) == 0 {
		fmt.Fprintln(w, "(no nodes)")
		return
	}
	for _, n := range tree.Nodes {
		fmt.Fprintf(w, "  %s\n", n)
	}
}

func (s *Shell) cmdDecode(w io.Writer, args []string) {
	if len(args) < 2 {
		fmt.Fprintln(w, "Usage: decode <message> <hex>")
		fmt.Fprintln(w, "  Example: decode 100 0x401F7D")
		return
	}
	path, err := inspect.ParsePath(args[0])
	if err != nil {
		fmt.Fprintf(w, "Invalid path: %v\n", err)
		return
	}
	data, err := frame.ParseHex(strings.Join(args[1:], ""))
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	m, values, err := s.inspector.Decode(path, data)
	if err != nil {
		fmt.Fprintf(w, "Error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "%s %s\n", s.formatter.FormatID(m.ID), dbc.TextOr(m.Name, ""))
	fmt.Fprint(w, s.formatter.FormatDecoded(values))
}

// completer offers command names and, after message commands, message names.
func (s *Shell) completer() readline.AutoCompleter {
	names := func(string) []string {
		return inspect.MessageNames(s.inspector.Document())
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("messages"),
		readline.PcItem("message", readline.PcItemDynamic(names)),
		readline.PcItem("signals", readline.PcItemDynamic(names)),
		readline.PcItem("nodes"),
		readline.PcItem("stats"),
		readline.PcItem("decode", readline.PcItemDynamic(names)),
		readline.PcItem("ids"),
		readline.PcItem("help"),
		readline.PcItem("quit"),
	)
}
