package dbcfile

import (
	"bytes"
	"errors"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candbc/candbc-go/pkg/dbc"
)

const samplePath = "testdata/powertrain.dbc"

func readSample(t *testing.T) *dbc.Document {
	t.Helper()
	d, err := ReadFile(samplePath, Options{})
	require.NoError(t, err)
	t.Cleanup(func() { dbc.Destroy(d) })
	return d
}

func TestReadFileHeader(t *testing.T) {
	d := readSample(t)
	assert.Equal(t, samplePath, *d.Filename)
	assert.Equal(t, "1.4", *d.Version)

	var nodes []string
	for n := range d.Nodes.All() {
		nodes = append(nodes, *n.Name)
	}
	assert.Equal(t, []string{"Engine", "Gateway", "Dashboard"}, nodes)

	tables := d.ValueTables.Items()
	require.Len(t, tables, 1)
	label, ok := dbc.Lookup(tables[0].ValueMap, 0)
	assert.True(t, ok)
	assert.Equal(t, "Off", label)
}

func TestReadFileMessages(t *testing.T) {
	d := readSample(t)
	require.Equal(t, 3, d.Messages.Len())

	engine := d.Message(100)
	require.NotNil(t, engine)
	assert.Equal(t, "EngineData", *engine.Name)
	assert.Equal(t, uint16(8), engine.Length)
	assert.Equal(t, "Engine", *engine.Sender)
	assert.Equal(t, []string{"Engine", "Gateway"}, engine.Transmitters)
	assert.Equal(t, "Cyclic engine state", *engine.Comment)

	speed := engine.SignalByName("EngineSpeed")
	require.NotNil(t, speed)
	assert.Equal(t, uint16(0), speed.StartBit)
	assert.Equal(t, uint16(16), speed.Length)
	assert.Equal(t, dbc.LittleEndian, speed.ByteOrder)
	assert.Equal(t, dbc.Unsigned, speed.Signedness)
	assert.Equal(t, 0.25, speed.Scale)
	assert.Equal(t, 16383.75, speed.Max)
	assert.Equal(t, "rpm", *speed.Unit)
	assert.Equal(t, []string{"Gateway", "Dashboard"}, speed.Receivers)
	assert.Equal(t, "Crankshaft speed", *speed.Comment)

	temp := engine.SignalByName("CoolantTemp")
	assert.Equal(t, dbc.Signed, temp.Signedness)
	assert.Equal(t, -40.0, temp.Offset)
	assert.Equal(t, -40.0, temp.Min)
	label, ok := dbc.Lookup(temp.ValueMap, 254)
	assert.True(t, ok)
	assert.Equal(t, "Error", label)

	throttle := engine.SignalByName("Throttle")
	assert.Equal(t, dbc.BigEndian, throttle.ByteOrder)
}

func TestReadFileMultiplexing(t *testing.T) {
	d := readSample(t)
	mux := d.Message(2364539904)
	require.NotNil(t, mux)

	sel := mux.Multiplexor()
	require.NotNil(t, sel)
	assert.Equal(t, "Page", *sel.Name)

	voltage := mux.SignalByName("Voltage")
	assert.Equal(t, dbc.MuxMultiplexed, voltage.Mux)
	assert.Equal(t, uint32(1), voltage.MuxValue)

	ratio := mux.SignalByName("Ratio")
	assert.Equal(t, uint32(2), ratio.MuxValue)
	assert.Equal(t, dbc.ValueTypeFloat, ratio.ValueType)

	assert.Equal(t, dbc.MuxPlain, d.Message(512).SignalByName("Lamp").Mux)
}

func TestReadFileEnvVars(t *testing.T) {
	d := readSample(t)
	evs := d.EnvVars.Items()
	require.Len(t, evs, 3)

	mode := evs[0]
	assert.Equal(t, "EnvMode", *mode.Name)
	assert.Equal(t, dbc.EnvInteger, mode.Type)
	assert.Equal(t, dbc.AccessReadWrite, mode.Access)
	assert.Equal(t, 3.0, mode.Max)
	assert.Equal(t, uint32(1), mode.Index)
	assert.Equal(t, []string{"Engine"}, mode.Nodes)
	assert.Equal(t, "Operating mode", *mode.Comment)
	label, ok := dbc.Lookup(mode.ValueMap, 1)
	assert.True(t, ok)
	assert.Equal(t, "Run", label)

	assert.Equal(t, dbc.EnvString, evs[1].Type)
	assert.Equal(t, dbc.AccessUnrestricted, evs[1].Access)

	blob := evs[2]
	assert.Equal(t, "EnvBlob", *blob.Name)
	assert.Equal(t, dbc.EnvData, blob.Type)
	assert.Equal(t, uint32(8), blob.DataSize)
}

func TestEnvVarDataForUnknownVariable(t *testing.T) {
	src := "ENVVAR_DATA_ Ghost: 4;\n"

	d, err := ParseString(src)
	require.NoError(t, err)
	assert.Equal(t, 0, d.EnvVars.Len())
	dbc.Destroy(d)

	d, err = Read(strings.NewReader(src), "", Options{Strict: true})
	assert.Nil(t, d)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.ErrorIs(t, err, dbc.ErrUnknownEnvVar)
}

func TestReadFileCommentFragmentsAreJoined(t *testing.T) {
	d := readSample(t)
	assert.Equal(t, "Powertrain network", *d.Network.Comment)
	assert.Equal(t, "Engine control unit", *d.Node("Engine").Comment)
}

func TestReadFileAttributes(t *testing.T) {
	d := readSample(t)

	sendType := d.Definition("GenMsgSendType")
	require.NotNil(t, sendType)
	assert.Equal(t, dbc.ObjectMessage, sendType.Object)
	assert.Equal(t, dbc.KindEnum, sendType.Kind)
	assert.Equal(t, []string{"Cyclic", "OnEvent", "IfActive"}, sendType.Labels())
	assert.Equal(t, dbc.EnumValue("Cyclic"), sendType.Default)

	startValue := d.Definition("GenSigStartValue")
	assert.Equal(t, dbc.FloatRange{Min: -3.4e38, Max: 3.4e38}, startValue.Range)
	assert.Equal(t, dbc.FloatValue(0), startValue.Default)

	assert.Equal(t, dbc.HexValue(0), d.Definition("NodeLayer").Default)
	assert.Equal(t, dbc.ObjectNetwork, d.Definition("BusType").Object)
	assert.Equal(t, dbc.ObjectNodeSignal, d.Definition("GenSigTimeout").Object)
	assert.Equal(t, dbc.IntValue(0), d.Definition("GenMsgTimeout").Default)

	attrs := map[string]dbc.Value{}
	for a := range d.Message(100).Attributes.All() {
		attrs[*a.Name] = a.Value
	}
	assert.Equal(t, map[string]dbc.Value{
		"GenMsgSendType":  dbc.IntValue(0),
		"GenMsgCycleTime": dbc.IntValue(10),
	}, attrs)

	netAttrs := d.Network.Attributes.Items()
	require.Len(t, netAttrs, 1)
	assert.Equal(t, dbc.StringValue("CAN FD"), netAttrs[0].Value)

	nodeAttrs := d.Node("Engine").Attributes.Items()
	require.Len(t, nodeAttrs, 1)
	assert.Equal(t, dbc.HexValue(16), nodeAttrs[0].Value)

	sigAttrs := d.Message(100).SignalByName("EngineSpeed").Attributes.Items()
	require.Len(t, sigAttrs, 1)
	assert.Equal(t, dbc.FloatValue(12.5), sigAttrs[0].Value)

	evAttrs := d.EnvVars.Items()[0].Attributes.Items()
	require.Len(t, evAttrs, 1)
	assert.Equal(t, dbc.StringValue("High"), evAttrs[0].Value)
}

func TestReadFileRelations(t *testing.T) {
	d := readSample(t)
	rels := d.AttributeRelations.Items()
	require.Len(t, rels, 2)

	assert.Equal(t, dbc.ObjectNodeSignal, rels[0].Kind())
	assert.Same(t, d.Node("Gateway"), rels[0].Node)
	assert.Same(t, d.Message(100), rels[0].Message)
	assert.Same(t, d.Message(100).SignalByName("EngineSpeed"), rels[0].Signal)
	assert.Equal(t, dbc.IntValue(500), rels[0].Value)

	assert.Equal(t, dbc.ObjectNodeMessage, rels[1].Kind())
	assert.Same(t, d.Node("Dashboard"), rels[1].Node)
	assert.Same(t, d.Message(2364539904), rels[1].Message)
	assert.Nil(t, rels[1].Signal)
}

func TestReadFileSignalGroups(t *testing.T) {
	d := readSample(t)
	groups := d.SignalGroups.Items()
	require.Len(t, groups, 1)
	assert.Equal(t, uint32(100), groups[0].ID)
	assert.Equal(t, "EngineGroup", *groups[0].Name)
	assert.Equal(t, []string{"EngineSpeed", "CoolantTemp"}, groups[0].Signals)
}

func TestReadFileIsConsistent(t *testing.T) {
	result := dbc.Check(readSample(t))
	assert.True(t, result.Valid)
	assert.Empty(t, result.Warnings)
}

func TestReadFileMissing(t *testing.T) {
	d, err := ReadFile(filepath.Join(t.TempDir(), "missing.dbc"), Options{})
	assert.ErrorIs(t, err, ErrOpen)
	assert.Nil(t, d)
}

func TestReadWithoutNameUsesStdin(t *testing.T) {
	d, err := Read(strings.NewReader(`VERSION ""`), "", Options{})
	require.NoError(t, err)
	defer dbc.Destroy(d)
	assert.Equal(t, dbc.StdinName, *d.Filename)
	assert.Equal(t, "", *d.Version)
}

func TestParseStringEmpty(t *testing.T) {
	d, err := ParseString("")
	require.NoError(t, err)
	defer dbc.Destroy(d)
	assert.Nil(t, d.Version)
	assert.Zero(t, d.Messages.Len())
}

func TestParseSyntaxErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		line int
	}{
		{"missing colon", "BO_ 1 Msg 8 Node", 1},
		{"bad byte order", "BO_ 1 Msg: 8 N\n SG_ S : 0|8@2+ (1,0) [0|1] \"\" N", 2},
		{"bad mux indicator", "BO_ 1 Msg: 8 N\n SG_ S x : 0|8@1+ (1,0) [0|1] \"\" N", 2},
		{"signal outside message", "SG_ S : 0|8@1+ (1,0) [0|1] \"\" N", 1},
		{"bad attribute type", "BA_DEF_ BO_ \"X\" BOOL;", 1},
		{"bad enum value", "BA_DEF_ BO_ \"E\" ENUM \"a\";\nBA_DEF_DEF_ \"E\" 1.5;", 2},
		{"unterminated value table", "VAL_TABLE_ T 0 \"a\"", 1},
		{"message id out of range", "BO_ 4294967296 Msg: 8 N", 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := Read(strings.NewReader(tt.src), "bad.dbc", Options{})
			assert.Nil(t, d)
			require.Error(t, err)
			assert.ErrorIs(t, err, ErrSyntax)

			var se *SyntaxError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, "bad.dbc", se.File)
			assert.Equal(t, tt.line, se.Line)
			assert.Contains(t, err.Error(), "bad.dbc:")
		})
	}
}

func TestUnresolvedReferences(t *testing.T) {
	src := "BU_: A\nCM_ BO_ 42 \"ghost\";\nBA_ \"X\" BU_ Nobody 1;\n"

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d, err := Read(strings.NewReader(src), "", Options{Logger: logger})
	require.NoError(t, err)
	defer dbc.Destroy(d)
	assert.Contains(t, logs.String(), "unresolved reference")
	assert.Contains(t, logs.String(), "keyword=CM_")

	d2, err := Read(strings.NewReader(src), "", Options{Strict: true})
	assert.Nil(t, d2)
	assert.ErrorIs(t, err, ErrSyntax)
	assert.ErrorIs(t, err, dbc.ErrUnknownMessage)
}

func TestSkippedStatementsAreLogged(t *testing.T) {
	src := "NS_ :\n\tCM_\n\tBA_\n\nBS_:\nBU_: A\nSGTYPE_ Foo : 8@1+ (1,0) [0|1] \"\" 0 ;\nCAT_DEF_ 1 Body 0 ;\n"

	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelDebug}))
	d, err := Read(strings.NewReader(src), "", Options{Logger: logger})
	require.NoError(t, err)
	defer dbc.Destroy(d)

	assert.Equal(t, 1, d.Nodes.Len())
	for _, kw := range []string{"NS_", "BS_", "SGTYPE_", "CAT_DEF_"} {
		assert.Contains(t, logs.String(), "keyword="+kw)
	}
	assert.Contains(t, logs.String(), "line=7")
}

func TestAttributeWithoutDefinitionInfersKind(t *testing.T) {
	d, err := ParseString("BA_ \"A\" 5;\nBA_ \"B\" 2.5;\nBA_ \"C\" \"x\";\nBA_ \"D\" 4000000000;\n")
	require.NoError(t, err)
	defer dbc.Destroy(d)

	var got []dbc.Value
	for a := range d.Network.Attributes.All() {
		got = append(got, a.Value)
	}
	assert.Equal(t, []dbc.Value{
		dbc.IntValue(5), dbc.FloatValue(2.5), dbc.StringValue("x"), dbc.HexValue(4000000000),
	}, got)
}

func TestEnumAttributeByLabel(t *testing.T) {
	d, err := ParseString("BO_ 1 M: 8 N\nBA_DEF_ BO_ \"E\" ENUM \"a\",\"b\";\nBA_ \"E\" BO_ 1 \"b\";\n")
	require.NoError(t, err)
	defer dbc.Destroy(d)

	attrs := d.Message(1).Attributes.Items()
	require.Len(t, attrs, 1)
	assert.Equal(t, dbc.EnumValue("b"), attrs[0].Value)
}

func TestExtendedMultiplexing(t *testing.T) {
	d, err := ParseString("BO_ 1 M: 8 N\n SG_ S m3M : 0|8@1+ (1,0) [0|1] \"\" N\n")
	require.NoError(t, err)
	defer dbc.Destroy(d)

	s := d.Message(1).SignalByName("S")
	assert.Equal(t, dbc.MuxMultiplexed, s.Mux)
	assert.Equal(t, uint32(3), s.MuxValue)
}
