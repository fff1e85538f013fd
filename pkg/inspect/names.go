package inspect

import (
	"slices"
	"strings"

	"github.com/candbc/candbc-go/pkg/dbc"
)

// ResolveMessage finds the message addressed by p. Identifiers match
// exactly; names match case-insensitively, with an exact-case match taking
// precedence.
func ResolveMessage(d *dbc.Document, p *Path) *dbc.Message {
	if d == nil || p == nil {
		return nil
	}
	if p.HasID {
		return d.Message(p.ID)
	}
	var fold *dbc.Message
	for m := range d.Messages.All() {
		name := dbc.TextOr(m.Name, "")
		if name == p.Message {
			return m
		}
		if fold == nil && strings.EqualFold(name, p.Message) {
			fold = m
		}
	}
	return fold
}

// ResolveSignal finds a signal of m by name (case-insensitive).
func ResolveSignal(m *dbc.Message, name string) *dbc.Signal {
	if m == nil {
		return nil
	}
	if s := m.SignalByName(name); s != nil {
		return s
	}
	for s := range m.Signals.All() {
		if strings.EqualFold(dbc.TextOr(s.Name, ""), name) {
			return s
		}
	}
	return nil
}

// ResolveNode finds a node by name (case-insensitive).
func ResolveNode(d *dbc.Document, name string) *dbc.Node {
	if d == nil {
		return nil
	}
	if n := d.Node(name); n != nil {
		return n
	}
	for n := range d.Nodes.All() {
		if strings.EqualFold(dbc.TextOr(n.Name, ""), name) {
			return n
		}
	}
	return nil
}

// MessageNames returns the sorted, distinct message names of d.
func MessageNames(d *dbc.Document) []string {
	if d == nil {
		return nil
	}
	var names []string
	for m := range d.Messages.All() {
		if m.Name != nil {
			names = append(names, *m.Name)
		}
	}
	slices.Sort(names)
	return slices.Compact(names)
}
