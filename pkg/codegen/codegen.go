// Package codegen emits Go source describing the messages of a DBC document:
// one id constant per message and a signal descriptor table per message.
package codegen

import (
	"errors"
	"fmt"
	"go/token"
	"math"
	"strconv"
	"strings"
	"text/template"
	"unicode"

	"golang.org/x/tools/imports"

	"github.com/candbc/candbc-go/pkg/dbc"
)

// DefaultPackage is used when Options.Package is empty.
const DefaultPackage = "candb"

// ErrInvalidPackage is returned for a package name that is not a Go identifier.
var ErrInvalidPackage = errors.New("invalid package name")

// Options configures generation.
type Options struct {
	// Package is the package clause of the generated file.
	Package string
}

type fileData struct {
	Package  string
	Source   string
	Messages []messageData
}

type messageData struct {
	GoName  string
	ID      uint32
	Name    string
	Length  uint16
	Sender  string
	Signals []signalData
}

type signalData struct {
	Name         string
	StartBit     uint16
	Length       uint16
	LittleEndian bool
	Signed       bool
	Factor       string
	Offset       string
	Min          string
	Max          string
	Unit         string
	Multiplexor  bool
	Multiplexed  bool
	MuxValue     uint32
}

var funcMap = template.FuncMap{
	"quote": strconv.Quote,
}

var fileTmpl = template.Must(template.New("file").Funcs(funcMap).Parse(`// Code generated by candbc gen{{if .Source}} from {{.Source}}{{end}}. DO NOT EDIT.

package {{.Package}}

// Signal describes the layout and scaling of one signal.
type Signal struct {
	Name         string
	StartBit     uint16
	Length       uint16
	LittleEndian bool
	Signed       bool
	Factor       float64
	Offset       float64
	Min          float64
	Max          float64
	Unit         string
	Multiplexor  bool
	Multiplexed  bool
	MuxValue     uint32
}

// Message describes one CAN message.
type Message struct {
	ID      uint32
	Name    string
	Length  uint16
	Sender  string
	Signals []Signal
}
{{if .Messages}}
// Message identifiers.
const (
{{- range .Messages}}
	{{.GoName}}ID uint32 = {{.ID}}
{{- end}}
)
{{range .Messages}}
// {{.GoName}}Signals are the signals of {{.Name}}.
var {{.GoName}}Signals = []Signal{
{{- range .Signals}}
	{Name: {{quote .Name}}, StartBit: {{.StartBit}}, Length: {{.Length}}, LittleEndian: {{.LittleEndian}}, Signed: {{.Signed}}, Factor: {{.Factor}}, Offset: {{.Offset}}, Min: {{.Min}}, Max: {{.Max}}, Unit: {{quote .Unit}}{{if .Multiplexor}}, Multiplexor: true{{end}}{{if .Multiplexed}}, Multiplexed: true, MuxValue: {{.MuxValue}}{{end}}},
{{- end}}
}
{{end}}{{end}}
// Messages lists every message in file order.
var Messages = []Message{
{{- range .Messages}}
	{ID: {{.GoName}}ID, Name: {{quote .Name}}, Length: {{.Length}}, Sender: {{quote .Sender}}, Signals: {{.GoName}}Signals},
{{- end}}
}
`))

// Generate renders Go source for d. source names the input in the
// generated header and may be empty.
func Generate(d *dbc.Document, source string, opts Options) ([]byte, error) {
	if d == nil {
		return nil, dbc.ErrNoDocument
	}
	pkg := opts.Package
	if pkg == "" {
		pkg = DefaultPackage
	}
	if !token.IsIdentifier(pkg) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidPackage, pkg)
	}

	data := fileData{Package: pkg, Source: source}
	used := make(map[string]bool)
	for m := range d.Messages.All() {
		md := messageData{
			ID:     m.ID,
			Name:   dbc.TextOr(m.Name, ""),
			Length: m.Length,
			Sender: dbc.TextOr(m.Sender, ""),
		}
		md.GoName = goName(md.Name)
		if used[md.GoName] {
			md.GoName += strconv.FormatUint(uint64(m.ID), 10)
		}
		used[md.GoName] = true

		for s := range m.Signals.All() {
			md.Signals = append(md.Signals, signalData{
				Name:         dbc.TextOr(s.Name, ""),
				StartBit:     s.StartBit,
				Length:       s.Length,
				LittleEndian: s.ByteOrder == dbc.LittleEndian,
				Signed:       s.Signedness == dbc.Signed,
				Factor:       floatLiteral(s.Scale),
				Offset:       floatLiteral(s.Offset),
				Min:          floatLiteral(s.Min),
				Max:          floatLiteral(s.Max),
				Unit:         dbc.TextOr(s.Unit, ""),
				Multiplexor:  s.Mux == dbc.MuxMultiplexor,
				Multiplexed:  s.Mux == dbc.MuxMultiplexed,
				MuxValue:     s.MuxValue,
			})
		}
		data.Messages = append(data.Messages, md)
	}

	var b strings.Builder
	if err := fileTmpl.Execute(&b, data); err != nil {
		return nil, fmt.Errorf("rendering template: %w", err)
	}

	formatted, err := imports.Process(pkg+".go", []byte(b.String()), nil)
	if err != nil {
		return nil, fmt.Errorf("goimports: %w", err)
	}
	return formatted, nil
}

// goName converts a DBC identifier such as "ENGINE_data_2" to "EngineData2".
func goName(name string) string {
	parts := strings.FieldsFunc(name, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	var b strings.Builder
	for _, p := range parts {
		lower := strings.ToLower(p)
		if p != strings.ToUpper(p) {
			lower = p
		}
		b.WriteString(strings.ToUpper(lower[:1]) + lower[1:])
	}
	out := b.String()
	if out == "" || !unicode.IsLetter(rune(out[0])) {
		out = "Msg" + out
	}
	return out
}

func floatLiteral(f float64) string {
	switch {
	case math.IsNaN(f):
		return "math.NaN()"
	case math.IsInf(f, 1):
		return "math.Inf(1)"
	case math.IsInf(f, -1):
		return "math.Inf(-1)"
	}
	return strconv.FormatFloat(f, 'g', -1, 64)
}
