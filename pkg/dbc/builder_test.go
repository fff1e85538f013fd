package dbc

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderPreservesEmissionOrder(t *testing.T) {
	d := sampleDocument(t)

	var nodes []string
	for n := range d.Nodes.All() {
		nodes = append(nodes, *n.Name)
	}
	assert.Equal(t, []string{"Engine", "Gateway"}, nodes)

	var ids []uint32
	for m := range d.Messages.All() {
		ids = append(ids, m.ID)
	}
	assert.Equal(t, []uint32{100, 2364539904}, ids)

	var signals []string
	for s := range d.Message(2364539904).Signals.All() {
		signals = append(signals, *s.Name)
	}
	assert.Equal(t, []string{"Selector", "A", "B"}, signals)
}

func TestBuilderFinish(t *testing.T) {
	d := sampleDocument(t)
	assert.Equal(t, "sample.dbc", *d.Filename)
	assert.Equal(t, "1.2", *d.Version)
	assert.Equal(t, "sample network", *d.Network.Comment)
	assert.Equal(t, "engine state", *d.Message(100).Comment)
	assert.Equal(t, "crank speed", *d.Message(100).SignalByName("Speed").Comment)
	assert.Equal(t, []string{"Gateway"}, d.Message(100).Transmitters)

	label, ok := Lookup(d.Message(100).SignalByName("Temp").ValueMap, 255)
	assert.True(t, ok)
	assert.Equal(t, "Invalid", label)

	def := d.Definition("GenMsgSendType")
	require.NotNil(t, def)
	assert.Equal(t, EnumValue("Cyclic"), def.Default)
}

func TestBuilderFinishWithoutFilename(t *testing.T) {
	b := NewBuilder()
	d, err := b.Finish("")
	require.NoError(t, err)
	assert.Equal(t, StdinName, *d.Filename)
	assert.Nil(t, b.Document())

	_, err = b.Finish("again.dbc")
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestBuilderAbort(t *testing.T) {
	b := NewBuilder()
	require.NoError(t, b.SetVersion(Text("1")))
	m, err := b.AddMessage(1, "Partial", 8, "")
	require.NoError(t, err)
	require.NoError(t, b.AddSignal(m, &Signal{Name: Text("s")}))
	doc := b.Document()

	b.Abort()

	assert.Nil(t, b.Document())
	assert.Nil(t, doc.Filename)
	assert.Nil(t, doc.Version)
	assert.Nil(t, doc.Messages)
	assert.Nil(t, m.Name)

	assert.NotPanics(t, b.Abort)
	_, err = b.AddNode("late")
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestBuilderLookupErrors(t *testing.T) {
	b := NewBuilder()
	_, err := b.AddMessage(1, "M", 8, "")
	require.NoError(t, err)

	tests := []struct {
		name string
		call func() error
		want error
	}{
		{"unknown message comment", func() error { return b.SetMessageComment(2, Text("x")) }, ErrUnknownMessage},
		{"unknown signal comment", func() error { return b.SetSignalComment(1, "nope", Text("x")) }, ErrUnknownSignal},
		{"unknown node comment", func() error { return b.SetNodeComment("N", Text("x")) }, ErrUnknownNode},
		{"unknown envvar comment", func() error { return b.SetEnvVarComment("E", Text("x")) }, ErrUnknownEnvVar},
		{"unknown default", func() error { return b.SetAttributeDefault("A", IntValue(1)) }, ErrUnknownAttribute},
		{"unknown transmitters", func() error { return b.AddTransmitters(9, []string{"N"}) }, ErrUnknownMessage},
		{"unknown relation node", func() error { return b.AddNodeMessageRelation("R", "N", 1, IntValue(1)) }, ErrUnknownNode},
		{"nil message signal", func() error { return b.AddSignal(nil, &Signal{}) }, ErrUnknownMessage},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.call()
			assert.True(t, errors.Is(err, tt.want), "got %v, want %v", err, tt.want)
		})
	}
}

func TestBuilderReplacesValueMap(t *testing.T) {
	b := NewBuilder()
	m, err := b.AddMessage(1, "M", 8, "")
	require.NoError(t, err)
	require.NoError(t, b.AddSignal(m, &Signal{Name: Text("S")}))

	first := valueMap(0, "a")
	require.NoError(t, b.SetSignalValueMap(1, "S", first))
	require.NoError(t, b.SetSignalValueMap(1, "S", valueMap(1, "b")))

	assert.Equal(t, 0, first.Len())
	_, ok := Lookup(m.SignalByName("S").ValueMap, 1)
	assert.True(t, ok)
}

func TestBuilderMessageWithoutSender(t *testing.T) {
	b := NewBuilder()
	m, err := b.AddMessage(5, "NoSender", 0, "")
	require.NoError(t, err)
	assert.Nil(t, m.Sender)
	assert.False(t, m.IsMultiplexed())
	assert.Nil(t, m.Multiplexor())
}
