package dbc

import "github.com/candbc/candbc-go/pkg/seq"

// Message is a CAN frame definition (BO_). It owns its signals.
type Message struct {
	// ID is the CAN identifier as written in the file, including the
	// extended-frame flag bit when present.
	ID uint32

	Name *string

	// Length is the payload length in bytes.
	Length uint16

	// Sender is the weak name of the transmitting node.
	Sender *string

	Signals    *SignalList
	Comment    *string
	Attributes *AttributeList

	// Transmitters are weak names of additional transmitting nodes (BO_TX_BU_).
	Transmitters []string
}

// MessageList is the owned message sequence of a document.
type MessageList = seq.List[*Message]

// Clone returns a deep copy of the message and all of its signals.
func (m *Message) Clone() *Message {
	if m == nil {
		return nil
	}
	return &Message{
		ID:           m.ID,
		Name:         cloneText(m.Name),
		Length:       m.Length,
		Sender:       cloneText(m.Sender),
		Signals:      m.Signals.Clone(),
		Comment:      cloneText(m.Comment),
		Attributes:   m.Attributes.Clone(),
		Transmitters: cloneNames(m.Transmitters),
	}
}

// Release drops the message, its signals and its attributes.
func (m *Message) Release() {
	if m == nil {
		return
	}
	m.Signals.Release()
	m.Attributes.Release()
	*m = Message{}
}

// Multiplexor returns the first signal with the multiplexor role, or nil.
func (m *Message) Multiplexor() *Signal {
	for s := range m.Signals.All() {
		if s.Mux == MuxMultiplexor {
			return s
		}
	}
	return nil
}

// IsMultiplexed reports whether at least one signal is multiplexed.
func (m *Message) IsMultiplexed() bool {
	for s := range m.Signals.All() {
		if s.Mux == MuxMultiplexed {
			return true
		}
	}
	return false
}

// Signal is a bit field within a message (SG_).
type Signal struct {
	Name *string

	Mux MuxRole
	// MuxValue is the selector value; meaningful only when Mux is MuxMultiplexed.
	MuxValue uint32

	StartBit   uint16
	Length     uint16
	ByteOrder  ByteOrder
	Signedness Signedness

	// Physical value = raw * Scale + Offset, expected within [Min, Max].
	Scale  float64
	Offset float64
	Min    float64
	Max    float64

	ValueType SignalValueType
	Unit      *string

	// Receivers are weak names of receiving nodes.
	Receivers []string

	Comment    *string
	Attributes *AttributeList
	ValueMap   *ValueMap
}

// SignalList is the owned signal sequence of a message.
type SignalList = seq.List[*Signal]

// Clone returns a deep copy of the signal.
func (s *Signal) Clone() *Signal {
	if s == nil {
		return nil
	}
	c := *s
	c.Name = cloneText(s.Name)
	c.Unit = cloneText(s.Unit)
	c.Receivers = cloneNames(s.Receivers)
	c.Comment = cloneText(s.Comment)
	c.Attributes = s.Attributes.Clone()
	c.ValueMap = s.ValueMap.Clone()
	return &c
}

// Release drops the signal, its attributes and its value map.
func (s *Signal) Release() {
	if s == nil {
		return
	}
	s.Attributes.Release()
	s.ValueMap.Release()
	*s = Signal{}
}
