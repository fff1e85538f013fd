package inspect

import (
	"strings"
	"testing"

	"github.com/candbc/candbc-go/pkg/dbc"
	"github.com/candbc/candbc-go/pkg/export"
	"github.com/candbc/candbc-go/pkg/frame"
)

func TestFormatValue(t *testing.T) {
	f := NewFormatter()

	tests := []struct {
		name  string
		value dbc.Value
		want  string
	}{
		{"nil", nil, "null"},
		{"int", dbc.IntValue(-5), "-5"},
		{"float", dbc.FloatValue(0.25), "0.25"},
		{"string", dbc.StringValue(`say "hi"`), `"say \"hi\""`},
		{"enum", dbc.EnumValue("Cyclic"), "Cyclic"},
		{"hex", dbc.HexValue(0x1F), "0x1F"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := f.FormatValue(tt.value); got != tt.want {
				t.Errorf("FormatValue(%v) = %q, want %q", tt.value, got, tt.want)
			}
		})
	}
}

func TestFormatID(t *testing.T) {
	f := NewFormatter()
	if got := f.FormatID(256); got != "256" {
		t.Errorf("FormatID = %q", got)
	}
	f.ShowIDs = true
	if got := f.FormatID(256); got != "256 (0x100)" {
		t.Errorf("FormatID with ShowIDs = %q", got)
	}
}

func TestFormatterIndent(t *testing.T) {
	tests := []struct {
		width int
		depth int
		want  string
	}{
		{2, 0, "x"},
		{2, 2, "    x"},
		{4, 1, "    x"},
		{0, 1, "  x"},
	}
	for _, tt := range tests {
		f := &Formatter{IndentWidth: tt.width}
		if got := f.Indent(tt.depth, "x"); got != tt.want {
			t.Errorf("Indent(width %d, depth %d) = %q, want %q", tt.width, tt.depth, got, tt.want)
		}
	}
}

func TestFormatAttributeTable(t *testing.T) {
	f := NewFormatter()
	rows := []AttributeRow{
		{Name: "GenMsgCycleTime", Value: dbc.IntValue(10), Kind: "int"},
		{Name: "Label", Value: dbc.StringValue("x"), Kind: "string"},
	}
	got := f.FormatAttributeTable(rows)
	want := "  GenMsgCycleTime: 10 (int)\n  Label: \"x\" (string)\n"
	if got != want {
		t.Errorf("FormatAttributeTable =\n%s\nwant\n%s", got, want)
	}

	f.ShowMetadata = false
	if got := f.FormatAttributeTable(rows[:1]); got != "  GenMsgCycleTime: 10\n" {
		t.Errorf("without metadata = %q", got)
	}
	if got := f.FormatAttributeTable(nil); got != "  (no attributes)\n" {
		t.Errorf("empty table = %q", got)
	}
}

func TestFormatDocumentTree(t *testing.T) {
	insp := NewInspector(createTestDocument(t))
	tree, err := insp.InspectDocument()
	if err != nil {
		t.Fatal(err)
	}

	out := NewFormatter().FormatDocumentTree(tree)
	for _, want := range []string{
		"Document: test.dbc\n",
		"Version: \"1.0\"\n",
		"Nodes: Engine, Gateway, Dash\n",
		"100 EngineData [8 bytes, 2 signals] from Engine\n",
		"512 MuxInfo [8 bytes, 3 signals] from Gateway (multiplexed)\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	if got := NewFormatter().FormatMessageList(nil); got != "(no messages)\n" {
		t.Errorf("empty list = %q", got)
	}
}

func TestFormatMessage(t *testing.T) {
	insp := NewInspector(createTestDocument(t))
	info, err := insp.InspectMessage(mustPath(t, "100"))
	if err != nil {
		t.Fatal(err)
	}

	f := NewFormatter()
	f.ShowIDs = true
	out := f.FormatMessage(info)
	for _, want := range []string{
		"Message 100 (0x64) EngineData",
		"  Transmitters: Gateway\n",
		"  Comment: \"Engine state\"\n",
		"  GenMsgMask: 0xFF (hex)\n",
		"  Speed: 0|16@1+ (0.25,0) [0|16383.75] \"rpm\"\n",
		"  Mode: 16|8@1+ (1,0) [0|3]\n",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}

	f.ShowMetadata = false
	if strings.Contains(f.FormatMessage(info), "Comment") {
		t.Error("comment shown without metadata")
	}

	mux, err := insp.InspectMessage(mustPath(t, "MuxInfo"))
	if err != nil {
		t.Fatal(err)
	}
	out = NewFormatter().FormatMessage(mux)
	if !strings.Contains(out, "  Page M: 0|8@1+") || !strings.Contains(out, "  Volt m1: 8|8@1+ (0.5,0)") {
		t.Errorf("mux signals not rendered:\n%s", out)
	}
}

func TestFormatSignalTableOrderCodes(t *testing.T) {
	out := NewFormatter().FormatSignalTable([]SignalInfo{
		{Name: "A", StartBit: 7, Length: 8, ByteOrder: dbc.BigEndian.String(), Signedness: dbc.Signed.String(), Scale: 1},
	})
	if out != "  A: 7|8@0- (1,0) [0|0]\n" {
		t.Errorf("FormatSignalTable = %q", out)
	}
	if got := NewFormatter().FormatSignalTable(nil); got != "  (no signals)\n" {
		t.Errorf("empty table = %q", got)
	}
}

func TestFormatSignal(t *testing.T) {
	insp := NewInspector(createTestDocument(t))
	info, err := insp.InspectSignal(mustPath(t, "100/Mode"))
	if err != nil {
		t.Fatal(err)
	}
	out := NewFormatter().FormatSignal(info)
	for _, want := range []string{
		"Signal Mode\n",
		"start 16, length 8, little_endian, unsigned",
		"factor 1, offset 0",
		"[0, 3]",
		`0 = "Off"`,
		`1 = "Run"`,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatNode(t *testing.T) {
	insp := NewInspector(createTestDocument(t))
	f := NewFormatter()

	engine, err := insp.InspectNode("Engine")
	if err != nil {
		t.Fatal(err)
	}
	if out := f.FormatNode(engine); !strings.Contains(out, "  100 EngineData [8 bytes, 2 signals] from Engine\n") {
		t.Errorf("FormatNode(Engine) =\n%s", out)
	}

	dash, err := insp.InspectNode("Dash")
	if err != nil {
		t.Fatal(err)
	}
	out := f.FormatNode(dash)
	if !strings.Contains(out, "(transmits nothing)") || !strings.Contains(out, "NodeLayer: 2 (int)") {
		t.Errorf("FormatNode(Dash) =\n%s", out)
	}
}

func TestFormatStats(t *testing.T) {
	out := NewFormatter().FormatStats(export.Stats{Messages: 3, Signals: 7, Length: 42})
	for _, want := range []string{"Messages:                 3\n", "Signals:                  7\n", "Total signal bits:        42\n"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestFormatDecoded(t *testing.T) {
	f := NewFormatter()
	out := f.FormatDecoded([]frame.Value{
		{Name: "Speed", Raw: 4000, Physical: 1000, Unit: "rpm"},
		{Name: "Mode", Raw: 1, Physical: 1, Label: "Run", HasLabel: true},
	})
	want := "  Speed = 1000 rpm [raw 4000]\n  Mode = 1 (Run) [raw 1]\n"
	if out != want {
		t.Errorf("FormatDecoded = %q, want %q", out, want)
	}
	if got := f.FormatDecoded(nil); got != "  (no signals decoded)\n" {
		t.Errorf("empty = %q", got)
	}
}
