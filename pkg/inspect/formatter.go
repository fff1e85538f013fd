package inspect

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/candbc/candbc-go/pkg/dbc"
	"github.com/candbc/candbc-go/pkg/export"
	"github.com/candbc/candbc-go/pkg/frame"
)

// Formatter formats inspection output.
type Formatter struct {
	// ShowMetadata includes comments and attributes
	ShowMetadata bool

	// ShowIDs adds the hexadecimal form to message identifiers
	ShowIDs bool

	// IndentWidth is the number of spaces per indent level
	IndentWidth int
}

// NewFormatter creates a new Formatter with default settings.
func NewFormatter() *Formatter {
	return &Formatter{
		ShowMetadata: true,
		ShowIDs:      false,
		IndentWidth:  2,
	}
}

// Indent returns the content with indentation.
func (f *Formatter) Indent(depth int, content string) string {
	width := f.IndentWidth
	if width == 0 {
		width = 2
	}
	indent := strings.Repeat(" ", depth*width)
	return indent + content
}

// FormatValue formats an attribute value for display. Strings are quoted,
// hex values render in hexadecimal.
func (f *Formatter) FormatValue(v dbc.Value) string {
	switch x := v.(type) {
	case nil:
		return "null"
	case dbc.StringValue:
		return strconv.Quote(string(x))
	case dbc.HexValue:
		return fmt.Sprintf("0x%X", uint32(x))
	default:
		return x.String()
	}
}

// FormatID formats a message identifier.
func (f *Formatter) FormatID(id uint32) string {
	if f.ShowIDs {
		return fmt.Sprintf("%d (0x%X)", id, id)
	}
	return strconv.FormatUint(uint64(id), 10)
}

// AttributeRow represents an attribute for display.
type AttributeRow struct {
	Name  string
	Value dbc.Value
	Kind  string
}

// FormatAttributeTable formats a list of attributes as a table.
func (f *Formatter) FormatAttributeTable(rows []AttributeRow) string {
	if len(rows) == 0 {
		return "  (no attributes)\n"
	}

	var sb strings.Builder
	for _, row := range rows {
		sb.WriteString(fmt.Sprintf("  %s: %s", row.Name, f.FormatValue(row.Value)))
		if f.ShowMetadata && row.Kind != "" {
			sb.WriteString(fmt.Sprintf(" (%s)", row.Kind))
		}
		sb.WriteString("\n")
	}
	return sb.String()
}

// FormatDocumentTree formats the document summary.
func (f *Formatter) FormatDocumentTree(tree *DocumentTree) string {
	var sb strings.Builder

	name := tree.Filename
	if name == "" {
		name = "(unnamed)"
	}
	sb.WriteString(fmt.Sprintf("Document: %s\n", name))
	if tree.Version != "" {
		sb.WriteString(fmt.Sprintf("Version: %q\n", tree.Version))
	}
	sb.WriteString(fmt.Sprintf("Nodes: %s\n", strings.Join(tree.Nodes, ", ")))
	sb.WriteString("---\n")
	sb.WriteString(f.FormatMessageList(tree.Messages))
	return sb.String()
}

// FormatMessageList formats one line per message.
func (f *Formatter) FormatMessageList(msgs []MessageSummary) string {
	if len(msgs) == 0 {
		return "(no messages)\n"
	}
	var sb strings.Builder
	for _, m := range msgs {
		sb.WriteString(f.formatSummary(m))
		sb.WriteString("\n")
	}
	return sb.String()
}

func (f *Formatter) formatSummary(m MessageSummary) string {
	line := fmt.Sprintf("%s %s [%d bytes, %d signals]", f.FormatID(m.ID), m.Name, m.Length, m.Signals)
	if m.Sender != "" {
		line += " from " + m.Sender
	}
	if m.Multiplexed {
		line += " (multiplexed)"
	}
	return line
}

// FormatMessage formats a message and its signals.
func (f *Formatter) FormatMessage(info *MessageInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Message %s\n", f.formatSummary(info.MessageSummary)))
	if len(info.Transmitters) > 0 {
		sb.WriteString(f.Indent(1, "Transmitters: "+strings.Join(info.Transmitters, ", ")) + "\n")
	}
	if f.ShowMetadata {
		if info.Comment != "" {
			sb.WriteString(f.Indent(1, fmt.Sprintf("Comment: %q", info.Comment)) + "\n")
		}
		if len(info.Attributes) > 0 {
			sb.WriteString(f.Indent(1, "Attributes:") + "\n")
			sb.WriteString(f.FormatAttributeTable(info.Attributes))
		}
	}
	sb.WriteString(f.FormatSignalTable(info.Signals))
	return sb.String()
}

// FormatSignalTable formats one line per signal.
func (f *Formatter) FormatSignalTable(sigs []SignalInfo) string {
	if len(sigs) == 0 {
		return f.Indent(1, "(no signals)") + "\n"
	}
	var sb strings.Builder
	for _, s := range sigs {
		mux := ""
		if s.Mux != "" {
			mux = " " + s.Mux
		}
		line := fmt.Sprintf("%s%s: %d|%d@%s (%g,%g) [%g|%g]",
			s.Name, mux, s.StartBit, s.Length, orderCode(s), s.Scale, s.Offset, s.Min, s.Max)
		if s.Unit != "" {
			line += " " + strconv.Quote(s.Unit)
		}
		sb.WriteString(f.Indent(1, line) + "\n")
	}
	return sb.String()
}

// FormatSignal formats the full detail of one signal.
func (f *Formatter) FormatSignal(s *SignalInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Signal %s\n", s.Name))
	row := func(label, value string) {
		sb.WriteString(f.Indent(1, fmt.Sprintf("%-11s %s", label+":", value)) + "\n")
	}
	if s.Mux != "" {
		row("Mux", s.Mux)
	}
	row("Layout", fmt.Sprintf("start %d, length %d, %s, %s", s.StartBit, s.Length, s.ByteOrder, s.Signedness))
	row("Value type", s.ValueType)
	row("Scaling", fmt.Sprintf("factor %g, offset %g", s.Scale, s.Offset))
	row("Range", fmt.Sprintf("[%g, %g]", s.Min, s.Max))
	if s.Unit != "" {
		row("Unit", s.Unit)
	}
	if len(s.Receivers) > 0 {
		row("Receivers", strings.Join(s.Receivers, ", "))
	}
	for _, v := range s.Values {
		row("Value", fmt.Sprintf("%d = %q", v.Value, v.Label))
	}
	if f.ShowMetadata {
		if s.Comment != "" {
			row("Comment", strconv.Quote(s.Comment))
		}
		if len(s.Attributes) > 0 {
			sb.WriteString(f.Indent(1, "Attributes:") + "\n")
			sb.WriteString(f.FormatAttributeTable(s.Attributes))
		}
	}
	return sb.String()
}

// FormatNode formats a node and the messages it transmits.
func (f *Formatter) FormatNode(info *NodeInfo) string {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Node %s\n", info.Name))
	if f.ShowMetadata {
		if info.Comment != "" {
			sb.WriteString(f.Indent(1, fmt.Sprintf("Comment: %q", info.Comment)) + "\n")
		}
		if len(info.Attributes) > 0 {
			sb.WriteString(f.Indent(1, "Attributes:") + "\n")
			sb.WriteString(f.FormatAttributeTable(info.Attributes))
		}
	}
	if len(info.Transmits) == 0 {
		sb.WriteString(f.Indent(1, "(transmits nothing)") + "\n")
		return sb.String()
	}
	for _, m := range info.Transmits {
		sb.WriteString(f.Indent(1, f.formatSummary(m)) + "\n")
	}
	return sb.String()
}

// FormatStats formats projection statistics.
func (f *Formatter) FormatStats(s export.Stats) string {
	var sb strings.Builder
	rows := []struct {
		label string
		value int
	}{
		{"Messages", s.Messages},
		{"Normal messages", s.NormalMessages},
		{"Multiplexed messages", s.MultiplexedMessages},
		{"Multiplexed combinations", s.MultiplexedMessageCombinations},
		{"Signals", s.Signals},
		{"Total signal bits", s.Length},
	}
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-25s %d\n", r.label+":", r.value))
	}
	return sb.String()
}

// FormatDecoded formats decoded signal values, one per line.
func (f *Formatter) FormatDecoded(values []frame.Value) string {
	if len(values) == 0 {
		return f.Indent(1, "(no signals decoded)") + "\n"
	}
	var sb strings.Builder
	for _, v := range values {
		sb.WriteString(f.Indent(1, fmt.Sprintf("%s [raw %d]", v, v.Raw)) + "\n")
	}
	return sb.String()
}

func orderCode(s SignalInfo) string {
	code := "1"
	if s.ByteOrder == dbc.BigEndian.String() {
		code = "0"
	}
	if s.Signedness == dbc.Signed.String() {
		return code + "-"
	}
	return code + "+"
}
