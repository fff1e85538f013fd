package dbcfile

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/candbc/candbc-go/pkg/dbc"
)

// newSymbols is the NS_ section written by DBC editors.
var newSymbols = []string{
	"NS_DESC_", "CM_", "BA_DEF_", "BA_", "VAL_", "CAT_DEF_", "CAT_", "FILTER",
	"BA_DEF_DEF_", "EV_DATA_", "ENVVAR_DATA_", "SGTYPE_", "SGTYPE_VAL_",
	"BA_DEF_SGTYPE_", "BA_SGTYPE_", "SIG_TYPE_REF_", "VAL_TABLE_", "SIG_GROUP_",
	"SIG_VALTYPE_", "SIGTYPE_VALTYPE_", "BO_TX_BU_", "BA_DEF_REL_", "BA_REL_",
	"BA_DEF_DEF_REL_", "BU_SG_REL_", "BU_EV_REL_", "BU_BO_REL_", "SG_MUL_VAL_",
}

// Write renders d as DBC text. Sections follow the order DBC editors
// produce; entities within a section keep document order.
func Write(w io.Writer, d *dbc.Document) error {
	if d == nil {
		return dbc.ErrNoDocument
	}
	out := &textWriter{w: bufio.NewWriter(w)}

	out.printf("VERSION %s\n\n", quote(dbc.TextOr(d.Version, "")))
	out.printf("NS_ :\n")
	for _, ns := range newSymbols {
		out.printf("\t%s\n", ns)
	}
	out.printf("\nBS_:\n\n")

	out.printf("BU_:")
	for n := range d.Nodes.All() {
		out.printf(" %s", dbc.TextOr(n.Name, ""))
	}
	out.printf("\n")

	for t := range d.ValueTables.All() {
		out.printf("VAL_TABLE_ %s%s;\n", dbc.TextOr(t.Name, ""), valueMapText(t.ValueMap))
	}
	out.printf("\n")

	for m := range d.Messages.All() {
		writeMessage(out, m)
	}

	for m := range d.Messages.All() {
		if len(m.Transmitters) > 0 {
			out.printf("BO_TX_BU_ %d : %s;\n", m.ID, strings.Join(m.Transmitters, ","))
		}
	}

	for ev := range d.EnvVars.All() {
		writeEnvVar(out, ev)
	}
	for ev := range d.EnvVars.All() {
		if ev.Type == dbc.EnvData {
			out.printf("ENVVAR_DATA_ %s: %d;\n", dbc.TextOr(ev.Name, ""), ev.DataSize)
		}
	}
	out.printf("\n")

	writeComments(out, d)
	writeDefinitions(out, d)
	writeAttributes(out, d)
	writeValueDescriptions(out, d)

	for g := range d.SignalGroups.All() {
		out.printf("SIG_GROUP_ %d %s %d : %s;\n", g.ID, dbc.TextOr(g.Name, ""), g.Repetitions, strings.Join(g.Signals, " "))
	}

	for m := range d.Messages.All() {
		for s := range m.Signals.All() {
			if s.ValueType != dbc.ValueTypeInteger {
				out.printf("SIG_VALTYPE_ %d %s : %d;\n", m.ID, dbc.TextOr(s.Name, ""), s.ValueType)
			}
		}
	}

	if out.err != nil {
		return fmt.Errorf("writing dbc: %w", out.err)
	}
	if err := out.w.Flush(); err != nil {
		return fmt.Errorf("writing dbc: %w", err)
	}
	return nil
}

type textWriter struct {
	w   *bufio.Writer
	err error
}

func (t *textWriter) printf(format string, args ...any) {
	if t.err != nil {
		return
	}
	_, t.err = fmt.Fprintf(t.w, format, args...)
}

func writeMessage(out *textWriter, m *dbc.Message) {
	out.printf("BO_ %d %s: %d %s\n", m.ID, dbc.TextOr(m.Name, ""), m.Length, orPlaceholder(m.Sender))
	for s := range m.Signals.All() {
		mux := ""
		switch s.Mux {
		case dbc.MuxMultiplexor:
			mux = " M"
		case dbc.MuxMultiplexed:
			mux = fmt.Sprintf(" m%d", s.MuxValue)
		}
		sign := "+"
		if s.Signedness == dbc.Signed {
			sign = "-"
		}
		receivers := dbc.PlaceholderNode
		if len(s.Receivers) > 0 {
			receivers = strings.Join(s.Receivers, ",")
		}
		out.printf(" SG_ %s%s : %d|%d@%d%s (%s,%s) [%s|%s] %s %s\n",
			dbc.TextOr(s.Name, ""), mux, s.StartBit, s.Length, s.ByteOrder, sign,
			formatFloat(s.Scale), formatFloat(s.Offset), formatFloat(s.Min), formatFloat(s.Max),
			quote(dbc.TextOr(s.Unit, "")), receivers)
	}
	out.printf("\n")
}

func writeEnvVar(out *textWriter, ev *dbc.EnvVar) {
	typ := ev.Type
	access := uint32(ev.Access)
	switch ev.Type {
	case dbc.EnvString:
		access |= 0x8000
	case dbc.EnvData:
		// the data kind is carried by ENVVAR_DATA_
		typ = dbc.EnvInteger
	}
	nodes := dbc.PlaceholderNode
	if len(ev.Nodes) > 0 {
		nodes = strings.Join(ev.Nodes, ",")
	}
	out.printf("EV_ %s: %d [%s|%s] %s %s %d DUMMY_NODE_VECTOR%X %s;\n",
		dbc.TextOr(ev.Name, ""), typ, formatFloat(ev.Min), formatFloat(ev.Max),
		quote(dbc.TextOr(ev.Unit, "")), formatFloat(ev.Initial), ev.Index, access, nodes)
}

func writeComments(out *textWriter, d *dbc.Document) {
	if d.Network != nil && d.Network.Comment != nil {
		out.printf("CM_ %s;\n", quote(*d.Network.Comment))
	}
	for n := range d.Nodes.All() {
		if n.Comment != nil {
			out.printf("CM_ BU_ %s %s;\n", dbc.TextOr(n.Name, ""), quote(*n.Comment))
		}
	}
	for m := range d.Messages.All() {
		if m.Comment != nil {
			out.printf("CM_ BO_ %d %s;\n", m.ID, quote(*m.Comment))
		}
		for s := range m.Signals.All() {
			if s.Comment != nil {
				out.printf("CM_ SG_ %d %s %s;\n", m.ID, dbc.TextOr(s.Name, ""), quote(*s.Comment))
			}
		}
	}
	for ev := range d.EnvVars.All() {
		if ev.Comment != nil {
			out.printf("CM_ EV_ %s %s;\n", dbc.TextOr(ev.Name, ""), quote(*ev.Comment))
		}
	}
}

func writeDefinitions(out *textWriter, d *dbc.Document) {
	for def := range d.AttributeDefinitions.All() {
		if def.Object.IsRelation() {
			continue
		}
		out.printf("BA_DEF_ %s%s %s;\n", objectPrefix(def.Object), quote(dbc.TextOr(def.Name, "")), rangeText(def))
	}
	for def := range d.AttributeDefinitions.All() {
		if def.Object.IsRelation() {
			out.printf("BA_DEF_REL_ %s%s %s;\n", objectPrefix(def.Object), quote(dbc.TextOr(def.Name, "")), rangeText(def))
		}
	}
	for def := range d.AttributeDefinitions.All() {
		if def.Default != nil && !def.Object.IsRelation() {
			out.printf("BA_DEF_DEF_ %s %s;\n", quote(dbc.TextOr(def.Name, "")), valueText(def.Default))
		}
	}
	for def := range d.AttributeDefinitions.All() {
		if def.Default != nil && def.Object.IsRelation() {
			out.printf("BA_DEF_DEF_REL_ %s %s;\n", quote(dbc.TextOr(def.Name, "")), valueText(def.Default))
		}
	}
}

func writeAttributes(out *textWriter, d *dbc.Document) {
	if d.Network != nil {
		for a := range d.Network.Attributes.All() {
			out.printf("BA_ %s %s;\n", quote(dbc.TextOr(a.Name, "")), valueText(a.Value))
		}
	}
	for n := range d.Nodes.All() {
		for a := range n.Attributes.All() {
			out.printf("BA_ %s BU_ %s %s;\n", quote(dbc.TextOr(a.Name, "")), dbc.TextOr(n.Name, ""), valueText(a.Value))
		}
	}
	for m := range d.Messages.All() {
		for a := range m.Attributes.All() {
			out.printf("BA_ %s BO_ %d %s;\n", quote(dbc.TextOr(a.Name, "")), m.ID, valueText(a.Value))
		}
		for s := range m.Signals.All() {
			for a := range s.Attributes.All() {
				out.printf("BA_ %s SG_ %d %s %s;\n", quote(dbc.TextOr(a.Name, "")), m.ID, dbc.TextOr(s.Name, ""), valueText(a.Value))
			}
		}
	}
	for ev := range d.EnvVars.All() {
		for a := range ev.Attributes.All() {
			out.printf("BA_ %s EV_ %s %s;\n", quote(dbc.TextOr(a.Name, "")), dbc.TextOr(ev.Name, ""), valueText(a.Value))
		}
	}
	for r := range d.AttributeRelations.All() {
		if r.Node == nil || r.Message == nil {
			continue
		}
		name := quote(dbc.TextOr(r.Name, ""))
		node := dbc.TextOr(r.Node.Name, "")
		if r.Kind() == dbc.ObjectNodeSignal {
			out.printf("BA_REL_ %s BU_SG_REL_ %s SG_ %d %s %s;\n", name, node, r.Message.ID, dbc.TextOr(r.Signal.Name, ""), valueText(r.Value))
		} else {
			out.printf("BA_REL_ %s BU_BO_REL_ %s %d %s;\n", name, node, r.Message.ID, valueText(r.Value))
		}
	}
}

func writeValueDescriptions(out *textWriter, d *dbc.Document) {
	for m := range d.Messages.All() {
		for s := range m.Signals.All() {
			if s.ValueMap != nil {
				out.printf("VAL_ %d %s%s;\n", m.ID, dbc.TextOr(s.Name, ""), valueMapText(s.ValueMap))
			}
		}
	}
	for ev := range d.EnvVars.All() {
		if ev.ValueMap != nil {
			out.printf("VAL_ %s%s;\n", dbc.TextOr(ev.Name, ""), valueMapText(ev.ValueMap))
		}
	}
}

func objectPrefix(k dbc.ObjectKind) string {
	switch k {
	case dbc.ObjectNode:
		return "BU_ "
	case dbc.ObjectMessage:
		return "BO_ "
	case dbc.ObjectSignal:
		return "SG_ "
	case dbc.ObjectEnvVar:
		return "EV_ "
	case dbc.ObjectNodeSignal:
		return "BU_SG_REL_ "
	case dbc.ObjectNodeMessage:
		return "BU_BO_REL_ "
	default:
		return ""
	}
}

func rangeText(def *dbc.AttributeDefinition) string {
	switch r := def.Range.(type) {
	case dbc.IntRange:
		return fmt.Sprintf("INT %d %d", r.Min, r.Max)
	case dbc.HexRange:
		return fmt.Sprintf("HEX %d %d", r.Min, r.Max)
	case dbc.FloatRange:
		return fmt.Sprintf("FLOAT %s %s", formatFloat(r.Min), formatFloat(r.Max))
	case dbc.EnumRange:
		labels := make([]string, len(r.Labels))
		for i, l := range r.Labels {
			labels[i] = quote(l)
		}
		return "ENUM " + strings.Join(labels, ",")
	}
	switch def.Kind {
	case dbc.KindInt:
		return "INT 0 0"
	case dbc.KindHex:
		return "HEX 0 0"
	case dbc.KindFloat:
		return "FLOAT 0 0"
	case dbc.KindEnum:
		return "ENUM"
	default:
		return "STRING"
	}
}

func valueText(v dbc.Value) string {
	switch v := v.(type) {
	case dbc.StringValue, dbc.EnumValue:
		return quote(v.String())
	case nil:
		return `""`
	default:
		return v.String()
	}
}

func valueMapText(vm *dbc.ValueMap) string {
	var b strings.Builder
	for e := range vm.All() {
		fmt.Fprintf(&b, " %d %s", e.Index, quote(dbc.TextOr(e.Label, "")))
	}
	b.WriteByte(' ')
	return b.String()
}

func orPlaceholder(name *string) string {
	if name == nil || *name == "" {
		return dbc.PlaceholderNode
	}
	return *name
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

// quote renders s as a DBC string literal.
func quote(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return `"` + r.Replace(s) + `"`
}
