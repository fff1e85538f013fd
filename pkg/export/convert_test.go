package export

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candbc/candbc-go/pkg/dbc"
)

func TestToDocumentReprojectsToSameView(t *testing.T) {
	d := testDocument(t)
	defer dbc.Destroy(d)
	want, wantStats := Project(d)

	rebuilt, err := ToDocument(want)
	require.NoError(t, err)
	defer dbc.Destroy(rebuilt)

	got, gotStats := Project(rebuilt)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("view mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, wantStats, gotStats)

	nodes := rebuilt.Nodes.Items()
	require.Len(t, nodes, 1)
	assert.Equal(t, "ECU", *nodes[0].Name)
}

func TestToDocumentOrdering(t *testing.T) {
	v := &View{
		Messages: map[string]*MessageView{
			"20": {Name: dbc.Text("B"), Length: 8, Attributes: map[string]string{}},
			"3": {Name: dbc.Text("A"), Length: 8, Attributes: map[string]string{}, Signals: map[string]*SignalView{
				"High": {BitStart: 8, Length: 8},
				"Low":  {BitStart: 0, Length: 8},
			}},
		},
	}
	d, err := ToDocument(v)
	require.NoError(t, err)
	defer dbc.Destroy(d)

	msgs := d.Messages.Items()
	require.Len(t, msgs, 2)
	assert.Equal(t, uint32(3), msgs[0].ID)
	assert.Equal(t, uint32(20), msgs[1].ID)

	sigs := msgs[0].Signals.Items()
	require.Len(t, sigs, 2)
	assert.Equal(t, "Low", *sigs[0].Name)
	assert.Equal(t, "High", *sigs[1].Name)
	assert.Equal(t, dbc.StdinName, *d.Filename)
}

func TestToDocumentAttributeValues(t *testing.T) {
	v := &View{
		Messages: map[string]*MessageView{
			"1": {Attributes: map[string]string{
				"Int":   "-5",
				"Hex":   "4294967295",
				"Float": "0.25",
				"Str":   "hello",
			}},
		},
	}
	d, err := ToDocument(v)
	require.NoError(t, err)
	defer dbc.Destroy(d)

	got := map[string]dbc.Value{}
	for a := range d.Message(1).Attributes.All() {
		got[*a.Name] = a.Value
	}
	assert.Equal(t, map[string]dbc.Value{
		"Int":   dbc.IntValue(-5),
		"Hex":   dbc.HexValue(4294967295),
		"Float": dbc.FloatValue(0.25),
		"Str":   dbc.StringValue("hello"),
	}, got)
	assert.Nil(t, d.Message(1).Name)
}

func TestToDocumentRejectsInvalidViews(t *testing.T) {
	tests := []struct {
		name string
		view *View
	}{
		{"nil view", nil},
		{"hex message key", &View{Messages: map[string]*MessageView{"0x10": {}}}},
		{"nil message", &View{Messages: map[string]*MessageView{"1": nil}}},
		{"bad enum key", &View{Messages: map[string]*MessageView{"1": {Signals: map[string]*SignalView{
			"S": {Enums: map[string]string{"x": "y"}},
		}}}}},
		{"bad value type", &View{Messages: map[string]*MessageView{"1": {Signals: map[string]*SignalView{
			"S": {ValueType: "complex"},
		}}}}},
		{"both mux roles", &View{Messages: map[string]*MessageView{"1": {Signals: map[string]*SignalView{
			"S": {Multiplexor: true, Multiplexing: new(uint32)},
		}}}}},
		{"gap in labels", &View{AttributeDefinitions: map[string]map[string]string{
			"E": {"0": "a", "2": "c"},
		}}},
		{"padded label ordinal", &View{AttributeDefinitions: map[string]map[string]string{
			"E": {"0": "a", "00": "b"},
		}}},
		{"signed label ordinal", &View{AttributeDefinitions: map[string]map[string]string{
			"E": {"+0": "a"},
		}}},
		{"nil signal", &View{Messages: map[string]*MessageView{"1": {Signals: map[string]*SignalView{
			"A": {BitStart: 8, Length: 8}, "B": nil,
		}}}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d, err := ToDocument(tt.view)
			assert.ErrorIs(t, err, ErrInvalidView)
			assert.Nil(t, d)
		})
	}
}

func TestToDocumentNullSignalFromJSON(t *testing.T) {
	src := `{"messages":{"1":{"name":"M","length":8,"signals":{` +
		`"A":{"bit_start":0,"length":8,"factor":1},"B":null}}}}`
	v, err := Decode(strings.NewReader(src), FormatJSON)
	require.NoError(t, err)

	d, err := ToDocument(v)
	assert.ErrorIs(t, err, ErrInvalidView)
	assert.Contains(t, err.Error(), `signal "B" is empty`)
	assert.Nil(t, d)
}

func TestToDocumentLabelsInOrdinalOrder(t *testing.T) {
	d, err := ToDocument(&View{AttributeDefinitions: map[string]map[string]string{
		"E": {"2": "c", "0": "a", "1": "b"},
	}})
	require.NoError(t, err)
	defer dbc.Destroy(d)

	def := d.Definition("E")
	require.NotNil(t, def)
	assert.Equal(t, []string{"a", "b", "c"}, def.Labels())
}
