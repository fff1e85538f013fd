package inspect

import (
	"slices"
	"testing"

	"github.com/candbc/candbc-go/pkg/dbc"
)

func TestResolveMessage(t *testing.T) {
	d := createTestDocument(t)

	tests := []struct {
		input string
		want  uint32
		found bool
	}{
		{"100", 100, true},
		{"0x200", 0x200, true},
		{"EngineData", 100, true},
		{"enginedata", 100, true},
		{"MUXINFO", 0x200, true},
		{"101", 0, false},
		{"Unknown", 0, false},
	}
	for _, tt := range tests {
		p, err := ParsePath(tt.input)
		if err != nil {
			t.Fatalf("ParsePath(%q): %v", tt.input, err)
		}
		m := ResolveMessage(d, p)
		if (m != nil) != tt.found {
			t.Errorf("ResolveMessage(%q) found = %v, want %v", tt.input, m != nil, tt.found)
			continue
		}
		if m != nil && m.ID != tt.want {
			t.Errorf("ResolveMessage(%q).ID = %d, want %d", tt.input, m.ID, tt.want)
		}
	}

	if ResolveMessage(nil, &Path{Message: "x"}) != nil {
		t.Error("ResolveMessage(nil document) should return nil")
	}
}

func TestResolveMessagePrefersExactCase(t *testing.T) {
	b := dbc.NewBuilder()
	if _, err := b.AddMessage(1, "status", 1, ""); err != nil {
		t.Fatal(err)
	}
	if _, err := b.AddMessage(2, "Status", 1, ""); err != nil {
		t.Fatal(err)
	}
	d, err := b.Finish("")
	if err != nil {
		t.Fatal(err)
	}
	defer dbc.Destroy(d)

	if m := ResolveMessage(d, &Path{Message: "Status"}); m == nil || m.ID != 2 {
		t.Errorf("exact match should win, got %v", m)
	}
	if m := ResolveMessage(d, &Path{Message: "STATUS"}); m == nil || m.ID != 1 {
		t.Errorf("first case-insensitive match should win, got %v", m)
	}
}

func TestResolveSignalAndNode(t *testing.T) {
	d := createTestDocument(t)
	m := d.Message(100)

	if s := ResolveSignal(m, "speed"); s == nil || dbc.TextOr(s.Name, "") != "Speed" {
		t.Errorf("ResolveSignal(speed) = %v", s)
	}
	if ResolveSignal(m, "Odo") != nil {
		t.Error("Odo belongs to another message")
	}
	if ResolveSignal(nil, "Speed") != nil {
		t.Error("ResolveSignal(nil) should return nil")
	}

	if n := ResolveNode(d, "DASH"); n == nil || dbc.TextOr(n.Name, "") != "Dash" {
		t.Errorf("ResolveNode(DASH) = %v", n)
	}
	if ResolveNode(d, "Body") != nil {
		t.Error("ResolveNode(Body) should return nil")
	}
}

func TestMessageNames(t *testing.T) {
	d := createTestDocument(t)
	got := MessageNames(d)
	want := []string{"EngineData", "MuxInfo"}
	if !slices.Equal(got, want) {
		t.Errorf("MessageNames() = %v, want %v", got, want)
	}
	if MessageNames(nil) != nil {
		t.Error("MessageNames(nil) should be nil")
	}
}
