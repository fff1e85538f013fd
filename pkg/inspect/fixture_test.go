package inspect

import (
	"testing"

	"github.com/candbc/candbc-go/pkg/dbc"
)

// createTestDocument builds a small two-message network:
//
//	100 EngineData from Engine: Speed (16 bit intel, 0.25 rpm), Mode (value map)
//	0x200 MuxInfo from Gateway: Page M, Odo m0, Volt m1
func createTestDocument(t *testing.T) *dbc.Document {
	t.Helper()
	b := dbc.NewBuilder()
	must := func(err error) {
		t.Helper()
		if err != nil {
			t.Fatalf("building document: %v", err)
		}
	}

	must(b.SetVersion(dbc.Text("1.0")))
	for _, n := range []string{"Engine", "Gateway", "Dash"} {
		_, err := b.AddNode(n)
		must(err)
	}
	must(b.SetNodeComment("Dash", dbc.Text("Instrument cluster")))
	must(b.AddNodeAttribute("Dash", "NodeLayer", dbc.IntValue(2)))

	engine, err := b.AddMessage(100, "EngineData", 8, "Engine")
	must(err)
	must(b.AddSignal(engine, &dbc.Signal{
		Name: dbc.Text("Speed"), StartBit: 0, Length: 16, ByteOrder: dbc.LittleEndian,
		Scale: 0.25, Max: 16383.75, Unit: dbc.Text("rpm"), Receivers: []string{"Dash"},
	}))
	must(b.AddSignal(engine, &dbc.Signal{
		Name: dbc.Text("Mode"), StartBit: 16, Length: 8, ByteOrder: dbc.LittleEndian, Scale: 1, Max: 3,
	}))
	vm := &dbc.ValueMap{}
	vm.Append(&dbc.ValueMapEntry{Index: 0, Label: dbc.Text("Off")})
	vm.Append(&dbc.ValueMapEntry{Index: 1, Label: dbc.Text("Run")})
	must(b.SetSignalValueMap(100, "Mode", vm))
	must(b.SetMessageComment(100, dbc.Text("Engine state")))
	must(b.SetSignalComment(100, "Speed", dbc.Text("Crank speed")))
	must(b.AddMessageAttribute(100, "GenMsgCycleTime", dbc.IntValue(10)))
	must(b.AddMessageAttribute(100, "GenMsgMask", dbc.HexValue(0xFF)))
	must(b.AddSignalAttribute(100, "Speed", "SigLabel", dbc.StringValue("rpm sensor")))
	must(b.AddTransmitters(100, []string{"Gateway"}))

	mux, err := b.AddMessage(0x200, "MuxInfo", 8, "Gateway")
	must(err)
	must(b.AddSignal(mux, &dbc.Signal{Name: dbc.Text("Page"), Mux: dbc.MuxMultiplexor, Length: 8, ByteOrder: dbc.LittleEndian, Scale: 1}))
	must(b.AddSignal(mux, &dbc.Signal{Name: dbc.Text("Odo"), Mux: dbc.MuxMultiplexed, MuxValue: 0, StartBit: 8, Length: 16, ByteOrder: dbc.LittleEndian, Scale: 1, Unit: dbc.Text("km")}))
	must(b.AddSignal(mux, &dbc.Signal{Name: dbc.Text("Volt"), Mux: dbc.MuxMultiplexed, MuxValue: 1, StartBit: 8, Length: 8, ByteOrder: dbc.LittleEndian, Scale: 0.5, Unit: dbc.Text("V")}))

	d, err := b.Finish("test.dbc")
	must(err)
	t.Cleanup(func() { dbc.Destroy(d) })
	return d
}
