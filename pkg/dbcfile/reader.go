package dbcfile

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/candbc/candbc-go/pkg/dbc"
)

// Options configures a read.
type Options struct {
	// Logger receives skipped statements (debug) and unresolved references
	// (warn). Nil discards.
	Logger *slog.Logger

	// Strict turns unresolved references into errors.
	Strict bool
}

func (o Options) logger() *slog.Logger {
	if o.Logger != nil {
		return o.Logger
	}
	return slog.New(slog.DiscardHandler)
}

// ReadFile reads the DBC file at path.
func ReadFile(path string, opts Options) (*dbc.Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrOpen, err)
	}
	defer f.Close()
	return Read(f, path, opts)
}

// Read parses DBC text from r. name is recorded as the document filename;
// an empty name records "<stdin>".
func Read(r io.Reader, name string, opts Options) (*dbc.Document, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read dbc data: %w", err)
	}
	return parse(string(data), name, opts)
}

// ParseString parses DBC text with default options.
func ParseString(src string) (*dbc.Document, error) {
	return parse(src, "", Options{})
}

func parse(src, name string, opts Options) (*dbc.Document, error) {
	toks, err := tokenize(src)
	if err != nil {
		return nil, withFile(err, name)
	}

	p := &parser{
		toks:   toks,
		b:      dbc.NewBuilder(),
		log:    opts.logger(),
		strict: opts.Strict,
	}
	if name != "" {
		p.log = p.log.With("file", name)
	}

	if err := p.parseFile(); err != nil {
		p.b.Abort()
		return nil, withFile(err, name)
	}
	return p.b.Finish(name)
}

func withFile(err error, name string) error {
	if se, ok := err.(*SyntaxError); ok && se.File == "" {
		se.File = name
	}
	return err
}
