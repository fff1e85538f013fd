package export

import (
	"cmp"
	"embed"
	"fmt"
	"html/template"
	"io"
	"maps"
	"slices"
	"strconv"
	"time"

	"github.com/candbc/candbc-go/pkg/dbc"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

var reportTmpl = template.Must(template.ParseFS(templateFS, "templates/report.html.tmpl"))

// ReportOptions configures [WriteHTML].
type ReportOptions struct {
	// Generated is shown under the title when set.
	Generated time.Time
}

type reportData struct {
	Title     string
	Version   string
	Generated string
	Messages  []reportMessage
}

type reportMessage struct {
	ID         uint32
	HexID      string
	Name       string
	Length     uint16
	Sender     string
	Attributes []reportAttribute
	Signals    []reportSignal
}

type reportAttribute struct {
	Name  string
	Value string
}

type reportSignal struct {
	Name       string
	BitStart   uint16
	Length     uint16
	Endianness string
	Factor     string
	Offset     string
	Range      string
	Enums      []reportEnum
}

type reportEnum struct {
	Value int64
	Label string
}

// WriteHTML renders v as an HTML page with one signal table per message.
// Messages appear in ascending id order and signals by start bit. Message
// attribute values that are ordinals of a known enum definition show the
// label instead.
func WriteHTML(w io.Writer, v *View, opts ReportOptions) error {
	if v == nil {
		return fmt.Errorf("%w: nil view", ErrInvalidView)
	}
	data, err := newReportData(v, opts)
	if err != nil {
		return err
	}
	if err := reportTmpl.Execute(w, data); err != nil {
		return fmt.Errorf("executing template %s: %w", reportTmpl.Name(), err)
	}
	return nil
}

func newReportData(v *View, opts ReportOptions) (*reportData, error) {
	data := &reportData{
		Title:   dbc.TextOr(v.Filename, "<stdin>"),
		Version: dbc.TextOr(v.Version, ""),
	}
	if !opts.Generated.IsZero() {
		data.Generated = opts.Generated.Format(time.DateTime)
	}

	for key, mv := range v.Messages {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: message key %q is not a decimal id", ErrInvalidView, key)
		}
		if mv == nil {
			return nil, fmt.Errorf("%w: message %s is empty", ErrInvalidView, key)
		}
		rm := reportMessage{
			ID:     uint32(id),
			HexID:  fmt.Sprintf("0x%x", id),
			Name:   dbc.TextOr(mv.Name, ""),
			Length: mv.Length,
			Sender: dbc.TextOr(mv.Sender, ""),
		}
		for _, name := range slices.Sorted(maps.Keys(mv.Attributes)) {
			value := mv.Attributes[name]
			if label, ok := v.AttributeDefinitions[name][value]; ok {
				value = label
			}
			rm.Attributes = append(rm.Attributes, reportAttribute{Name: name, Value: value})
		}
		for name, sv := range mv.Signals {
			if sv == nil {
				return nil, fmt.Errorf("%w: signal %q is empty", ErrInvalidView, name)
			}
			rs, err := newReportSignal(name, sv)
			if err != nil {
				return nil, err
			}
			rm.Signals = append(rm.Signals, rs)
		}
		slices.SortFunc(rm.Signals, func(a, b reportSignal) int {
			return cmp.Or(cmp.Compare(a.BitStart, b.BitStart), cmp.Compare(a.Name, b.Name))
		})
		data.Messages = append(data.Messages, rm)
	}
	slices.SortFunc(data.Messages, func(a, b reportMessage) int { return cmp.Compare(a.ID, b.ID) })
	return data, nil
}

func newReportSignal(name string, sv *SignalView) (reportSignal, error) {
	rs := reportSignal{
		Name:       name,
		BitStart:   sv.BitStart,
		Length:     sv.Length,
		Endianness: "MSB",
		Factor:     formatNumber(sv.Factor),
		Offset:     formatNumber(sv.Offset),
		Range:      formatNumber(sv.Min) + " to " + formatNumber(sv.Max),
	}
	if sv.LittleEndian {
		rs.Endianness = "LSB"
	}
	for key, label := range sv.Enums {
		value, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return rs, fmt.Errorf("%w: enum key %q is not an integer", ErrInvalidView, key)
		}
		rs.Enums = append(rs.Enums, reportEnum{Value: value, Label: label})
	}
	slices.SortFunc(rs.Enums, func(a, b reportEnum) int { return cmp.Compare(a.Value, b.Value) })
	return rs, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
