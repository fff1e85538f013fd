package inspect

import (
	"errors"
	"fmt"
	"slices"

	"github.com/candbc/candbc-go/pkg/dbc"
	"github.com/candbc/candbc-go/pkg/export"
	"github.com/candbc/candbc-go/pkg/frame"
)

// Inspector errors.
var (
	ErrNoDocument       = errors.New("no document loaded")
	ErrMessageNotFound  = errors.New("message not found")
	ErrSignalNotFound   = errors.New("signal not found")
	ErrNodeNotFound     = errors.New("node not found")
	ErrNotSignalPath    = errors.New("path does not name a signal")
	ErrUnexpectedSignal = errors.New("path names a signal")
)

// Inspector provides read-only views of a document.
type Inspector struct {
	doc *dbc.Document
}

// NewInspector creates a new Inspector for the given document.
func NewInspector(d *dbc.Document) *Inspector {
	return &Inspector{doc: d}
}

// Document returns the underlying document.
func (i *Inspector) Document() *dbc.Document {
	return i.doc
}

// DocumentTree summarizes a document for display.
type DocumentTree struct {
	Filename string
	Version  string
	Nodes    []string
	Messages []MessageSummary
	Stats    export.Stats
}

// MessageSummary is one line of a message listing.
type MessageSummary struct {
	ID          uint32
	Name        string
	Length      uint16
	Sender      string
	Signals     int
	Multiplexed bool
}

// MessageInfo is the detailed view of one message.
type MessageInfo struct {
	MessageSummary
	Comment      string
	Transmitters []string
	Attributes   []AttributeRow
	Signals      []SignalInfo
}

// SignalInfo is the detailed view of one signal.
type SignalInfo struct {
	Name       string
	Mux        string
	StartBit   uint16
	Length     uint16
	ByteOrder  string
	Signedness string
	ValueType  string
	Scale      float64
	Offset     float64
	Min        float64
	Max        float64
	Unit       string
	Receivers  []string
	Comment    string
	Values     []ValueLabel
	Attributes []AttributeRow
}

// ValueLabel is one entry of a signal value map.
type ValueLabel struct {
	Value int64
	Label string
}

// NodeInfo is the detailed view of one node.
type NodeInfo struct {
	Name       string
	Comment    string
	Transmits  []MessageSummary
	Attributes []AttributeRow
}

// InspectDocument returns a summary of the whole document.
func (i *Inspector) InspectDocument() (*DocumentTree, error) {
	if i.doc == nil {
		return nil, ErrNoDocument
	}
	tree := &DocumentTree{
		Filename: dbc.TextOr(i.doc.Filename, ""),
		Version:  dbc.TextOr(i.doc.Version, ""),
		Stats:    export.Statistics(i.doc),
	}
	for n := range i.doc.Nodes.All() {
		tree.Nodes = append(tree.Nodes, dbc.TextOr(n.Name, ""))
	}
	for m := range i.doc.Messages.All() {
		tree.Messages = append(tree.Messages, summarize(m))
	}
	return tree, nil
}

// InspectMessage returns the message addressed by p, which must not name a
// signal.
func (i *Inspector) InspectMessage(p *Path) (*MessageInfo, error) {
	if p.IsSignal() {
		return nil, fmt.Errorf("%w: %s", ErrUnexpectedSignal, p)
	}
	m, err := i.message(p)
	if err != nil {
		return nil, err
	}

	info := &MessageInfo{
		MessageSummary: summarize(m),
		Comment:        dbc.TextOr(m.Comment, ""),
		Transmitters:   slices.Clone(m.Transmitters),
		Attributes:     attributeRows(m.Attributes),
	}
	for s := range m.Signals.All() {
		info.Signals = append(info.Signals, inspectSignal(s))
	}
	return info, nil
}

// InspectSignal returns the signal addressed by p.
func (i *Inspector) InspectSignal(p *Path) (*SignalInfo, error) {
	if !p.IsSignal() {
		return nil, fmt.Errorf("%w: %s", ErrNotSignalPath, p)
	}
	m, err := i.message(p)
	if err != nil {
		return nil, err
	}
	s := ResolveSignal(m, p.Signal)
	if s == nil {
		return nil, fmt.Errorf("%w: %s", ErrSignalNotFound, p)
	}
	info := inspectSignal(s)
	return &info, nil
}

// InspectNode returns the node with the given name and the messages it
// sends, either as sender or as an additional transmitter.
func (i *Inspector) InspectNode(name string) (*NodeInfo, error) {
	if i.doc == nil {
		return nil, ErrNoDocument
	}
	n := ResolveNode(i.doc, name)
	if n == nil {
		return nil, fmt.Errorf("%w: %s", ErrNodeNotFound, name)
	}
	nodeName := dbc.TextOr(n.Name, "")
	info := &NodeInfo{
		Name:       nodeName,
		Comment:    dbc.TextOr(n.Comment, ""),
		Attributes: attributeRows(n.Attributes),
	}
	for m := range i.doc.Messages.All() {
		if dbc.TextOr(m.Sender, "") == nodeName || slices.Contains(m.Transmitters, nodeName) {
			info.Transmits = append(info.Transmits, summarize(m))
		}
	}
	return info, nil
}

// Decode decodes a payload for the message addressed by p.
func (i *Inspector) Decode(p *Path, data []byte) (*dbc.Message, []frame.Value, error) {
	m, err := i.message(p)
	if err != nil {
		return nil, nil, err
	}
	values, err := frame.Decode(m, data)
	if err != nil {
		return m, nil, err
	}
	if p.IsSignal() {
		s := ResolveSignal(m, p.Signal)
		if s == nil {
			return m, nil, fmt.Errorf("%w: %s", ErrSignalNotFound, p)
		}
		for _, v := range values {
			if v.Signal == s {
				return m, []frame.Value{v}, nil
			}
		}
		// Multiplexed signal not selected by this payload.
		return m, nil, nil
	}
	return m, values, nil
}

func (i *Inspector) message(p *Path) (*dbc.Message, error) {
	if i.doc == nil {
		return nil, ErrNoDocument
	}
	m := ResolveMessage(i.doc, p)
	if m == nil {
		return nil, fmt.Errorf("%w: %s", ErrMessageNotFound, p.Message)
	}
	return m, nil
}

func summarize(m *dbc.Message) MessageSummary {
	return MessageSummary{
		ID:          m.ID,
		Name:        dbc.TextOr(m.Name, ""),
		Length:      m.Length,
		Sender:      dbc.TextOr(m.Sender, ""),
		Signals:     m.Signals.Len(),
		Multiplexed: m.IsMultiplexed(),
	}
}

func inspectSignal(s *dbc.Signal) SignalInfo {
	info := SignalInfo{
		Name:       dbc.TextOr(s.Name, ""),
		Mux:        muxText(s),
		StartBit:   s.StartBit,
		Length:     s.Length,
		ByteOrder:  s.ByteOrder.String(),
		Signedness: s.Signedness.String(),
		ValueType:  s.ValueType.String(),
		Scale:      s.Scale,
		Offset:     s.Offset,
		Min:        s.Min,
		Max:        s.Max,
		Unit:       dbc.TextOr(s.Unit, ""),
		Receivers:  slices.Clone(s.Receivers),
		Comment:    dbc.TextOr(s.Comment, ""),
		Attributes: attributeRows(s.Attributes),
	}
	if s.ValueMap != nil {
		for e := range s.ValueMap.All() {
			info.Values = append(info.Values, ValueLabel{Value: e.Index, Label: dbc.TextOr(e.Label, "")})
		}
	}
	return info
}

func muxText(s *dbc.Signal) string {
	switch s.Mux {
	case dbc.MuxMultiplexor:
		return "M"
	case dbc.MuxMultiplexed:
		return fmt.Sprintf("m%d", s.MuxValue)
	}
	return ""
}

func attributeRows(l *dbc.AttributeList) []AttributeRow {
	var rows []AttributeRow
	for a := range l.All() {
		row := AttributeRow{Name: dbc.TextOr(a.Name, ""), Value: a.Value}
		if a.Value != nil {
			row.Kind = a.Value.Kind().String()
		}
		rows = append(rows, row)
	}
	return rows
}
