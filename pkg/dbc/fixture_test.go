package dbc

import (
	"reflect"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/candbc/candbc-go/pkg/seq"
)

// deepCompare compares documents through unexported list internals.
var deepCompare = cmp.Exporter(func(reflect.Type) bool { return true })

func valueMap(pairs ...any) *ValueMap {
	vm := &ValueMap{}
	for i := 0; i+1 < len(pairs); i += 2 {
		vm.Append(&ValueMapEntry{Index: int64(pairs[i].(int)), Label: Text(pairs[i+1].(string))})
	}
	return vm
}

// sampleDocument builds a document touching every entity kind.
func sampleDocument(t *testing.T) *Document {
	t.Helper()
	b := NewBuilder()

	require.NoError(t, b.SetVersion(Text("1.2")))
	_, err := b.AddNode("Engine")
	require.NoError(t, err)
	_, err = b.AddNode("Gateway")
	require.NoError(t, err)

	_, err = b.AddValueTable("OnOff", valueMap(0, "Off", 1, "On"))
	require.NoError(t, err)

	engine, err := b.AddMessage(100, "EngineData", 8, "Engine")
	require.NoError(t, err)
	require.NoError(t, b.AddSignal(engine, &Signal{
		Name: Text("Speed"), StartBit: 0, Length: 16, ByteOrder: LittleEndian,
		Scale: 0.25, Offset: 0, Min: 0, Max: 16383.75, Unit: Text("rpm"),
		Receivers: []string{"Gateway"},
	}))
	require.NoError(t, b.AddSignal(engine, &Signal{
		Name: Text("Temp"), StartBit: 16, Length: 8, Signedness: Signed,
		Scale: 1, Offset: -40, Min: -40, Max: 215, Unit: Text("degC"),
	}))

	mux, err := b.AddMessage(2364539904, "MuxData", 8, "Gateway")
	require.NoError(t, err)
	require.NoError(t, b.AddSignal(mux, &Signal{Name: Text("Selector"), Mux: MuxMultiplexor, Length: 8, Scale: 1}))
	require.NoError(t, b.AddSignal(mux, &Signal{Name: Text("A"), Mux: MuxMultiplexed, MuxValue: 0, StartBit: 8, Length: 8, Scale: 1}))
	require.NoError(t, b.AddSignal(mux, &Signal{Name: Text("B"), Mux: MuxMultiplexed, MuxValue: 1, StartBit: 8, Length: 16, Scale: 1}))

	require.NoError(t, b.AddTransmitters(100, []string{"Gateway"}))
	require.NoError(t, b.SetSignalValueMap(100, "Temp", valueMap(255, "Invalid")))

	require.NoError(t, b.AddEnvVar(&EnvVar{
		Name: Text("EnvMode"), Type: EnvInteger, Access: AccessReadWrite,
		Max: 3, Unit: Text(""), Index: 1, Nodes: []string{"Engine"},
	}))
	require.NoError(t, b.SetEnvVarValueMap("EnvMode", valueMap(0, "Idle", 1, "Run")))

	require.NoError(t, b.AddAttributeDefinition(&AttributeDefinition{
		Name: Text("GenMsgSendType"), Object: ObjectMessage, Kind: KindEnum,
		Range: EnumRange{Labels: []string{"Cyclic", "OnChange"}},
	}))
	require.NoError(t, b.SetAttributeDefault("GenMsgSendType", EnumValue("Cyclic")))
	require.NoError(t, b.AddAttributeDefinition(&AttributeDefinition{
		Name: Text("GenMsgCycleTime"), Object: ObjectMessage, Kind: KindInt,
		Range: IntRange{Min: 0, Max: 10000}, Default: IntValue(100),
	}))
	require.NoError(t, b.AddAttributeDefinition(&AttributeDefinition{
		Name: Text("BusType"), Object: ObjectNetwork, Kind: KindString, Default: StringValue("CAN"),
	}))

	require.NoError(t, b.AddNetworkAttribute("BusType", StringValue("CAN FD")))
	require.NoError(t, b.AddNodeAttribute("Engine", "NodeLayer", HexValue(0x10)))
	require.NoError(t, b.AddMessageAttribute(100, "GenMsgSendType", IntValue(0)))
	require.NoError(t, b.AddMessageAttribute(100, "GenMsgCycleTime", IntValue(10)))
	require.NoError(t, b.AddSignalAttribute(100, "Speed", "GenSigStartValue", FloatValue(12.5)))
	require.NoError(t, b.AddEnvVarAttribute("EnvMode", "EnvLevel", EnumValue("High")))

	require.NoError(t, b.AddNodeSignalRelation("GenSigTimeout", "Gateway", 100, "Speed", IntValue(500)))
	require.NoError(t, b.AddNodeMessageRelation("GenMsgTimeout", "Gateway", 2364539904, IntValue(200)))

	require.NoError(t, b.AddSignalGroup(&SignalGroup{ID: 100, Name: Text("EngineGroup"), Repetitions: 1, Signals: []string{"Speed", "Temp"}}))

	require.NoError(t, b.SetNetworkComment(Text("sample network")))
	require.NoError(t, b.SetNodeComment("Engine", Text("engine controller")))
	require.NoError(t, b.SetMessageComment(100, Text("engine state")))
	require.NoError(t, b.SetSignalComment(100, "Speed", Text("crank speed")))
	require.NoError(t, b.SetEnvVarComment("EnvMode", Text("mode switch")))

	d, err := b.Finish("sample.dbc")
	require.NoError(t, err)
	return d
}

// listOf collects a list for assertions.
func listOf[E seq.Owned[E]](l *seq.List[E]) []E {
	return l.Items()
}
