package interactive

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/candbc/candbc-go/pkg/dbc"
	"github.com/candbc/candbc-go/pkg/dbcfile"
)

func testShell(t *testing.T) *Shell {
	t.Helper()
	d, err := dbcfile.ReadFile("../../../pkg/dbcfile/testdata/powertrain.dbc", dbcfile.Options{})
	require.NoError(t, err)
	t.Cleanup(func() { dbc.Destroy(d) })
	return NewShell(d)
}

func execute(s *Shell, line string) (string, bool) {
	var buf bytes.Buffer
	quit := s.Execute(line, &buf)
	return buf.String(), quit
}

func TestShellCommands(t *testing.T) {
	s := testShell(t)

	tests := []struct {
		line string
		want []string
	}{
		{"messages", []string{"100 EngineData [8 bytes, 3 signals] from Engine", "512 Status"}},
		{"ls", []string{"2364539904 DiagMux"}},
		{"message 0x64", []string{"Message 100 EngineData", "Transmitters: Engine, Gateway", "EngineSpeed: 0|16@1+"}},
		{"m DiagMux/Page", []string{"Signal Page", "Mux:", `2 = "Ratio"`}},
		{"signals 2364539904", []string{"Page M: 0|8@1+", "Ratio m2: 8|32@1+"}},
		{"nodes", []string{"  Engine\n", "  Gateway\n", "  Dashboard\n"}},
		{"nodes engine", []string{"Node Engine", "Comment: \"Engine control unit\"", "NodeLayer: 0x10 (hex)"}},
		{"stats", []string{"Messages:                 3", "Signals:                  9"}},
		{"decode 512 01 00", []string{"512 Status", "Lamp = 1 [raw 1]"}},
		{"help", []string{"candbc Commands:"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			out, quit := execute(s, tt.line)
			assert.False(t, quit)
			for _, want := range tt.want {
				assert.Contains(t, out, want)
			}
		})
	}
}

func TestShellUsageAndErrors(t *testing.T) {
	s := testShell(t)

	tests := map[string]string{
		"message":          "Usage: message <path>",
		"message 1/2/3":    "Invalid path",
		"message 42":       "Error: message not found",
		"message 100/Nope": "Error: signal not found",
		"signals":          "Usage: signals <message>",
		"nodes Body":       "Error: node not found",
		"decode 100":       "Usage: decode <message> <hex>",
		"decode 100 zz":    "invalid payload",
		"decode 100 00":    "frame too short",
		"bogus":            "Unknown command: bogus",
	}
	for line, want := range tests {
		out, quit := execute(s, line)
		assert.False(t, quit, line)
		assert.Contains(t, out, want, line)
	}
}

func TestShellToggleIDsAndQuit(t *testing.T) {
	s := testShell(t)

	out, _ := execute(s, "ids")
	assert.Contains(t, out, "Hexadecimal ids: true")
	out, _ = execute(s, "messages")
	assert.Contains(t, out, "100 (0x64) EngineData")

	for _, cmd := range []string{"quit", "exit", "Q"} {
		_, quit := execute(s, cmd)
		assert.True(t, quit, cmd)
	}
}
