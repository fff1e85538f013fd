// Package frame decodes CAN frame payloads using message definitions.
package frame

import (
	"encoding/hex"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/candbc/candbc-go/pkg/dbc"
)

// Decoding errors.
var (
	ErrShortFrame     = errors.New("frame too short for signal")
	ErrSignalTooLong  = errors.New("signal longer than 64 bits")
	ErrInvalidPayload = errors.New("invalid payload")
)

// Value is one decoded signal.
type Value struct {
	// Signal is a weak handle to the definition that produced the value.
	Signal *dbc.Signal

	Name string

	// Raw is the extracted bit field, sign-extended for signed signals.
	Raw int64

	// Physical is Raw scaled and offset, or the IEEE value for float and
	// double signals.
	Physical float64

	Unit string

	// Label is the value-map label for Raw, when one exists.
	Label    string
	HasLabel bool
}

// String renders the value as "name = physical unit (label)".
func (v Value) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s = %g", v.Name, v.Physical)
	if v.Unit != "" {
		fmt.Fprintf(&b, " %s", v.Unit)
	}
	if v.HasLabel {
		fmt.Fprintf(&b, " (%s)", v.Label)
	}
	return b.String()
}

// Decode extracts every signal of msg from data in signal order. A
// multiplexed signal is decoded only when the multiplexor's raw value equals
// its selector; without a multiplexor, multiplexed signals are skipped.
func Decode(msg *dbc.Message, data []byte) ([]Value, error) {
	if msg == nil {
		return nil, dbc.ErrUnknownMessage
	}

	var selector int64
	haveSelector := false
	if mux := msg.Multiplexor(); mux != nil {
		v, err := decodeSignal(mux, data)
		if err != nil {
			return nil, err
		}
		selector, haveSelector = v.Raw, true
	}

	values := make([]Value, 0, msg.Signals.Len())
	for s := range msg.Signals.All() {
		if s.Mux == dbc.MuxMultiplexed && (!haveSelector || selector != int64(s.MuxValue)) {
			continue
		}
		v, err := decodeSignal(s, data)
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, nil
}

// DecodeID looks up message id in d and decodes data with it.
func DecodeID(d *dbc.Document, id uint32, data []byte) (*dbc.Message, []Value, error) {
	msg := d.Message(id)
	if msg == nil {
		return nil, nil, fmt.Errorf("%w: %d", dbc.ErrUnknownMessage, id)
	}
	values, err := Decode(msg, data)
	return msg, values, err
}

func decodeSignal(s *dbc.Signal, data []byte) (Value, error) {
	name := dbc.TextOr(s.Name, "")
	if s.Length > 64 {
		return Value{}, fmt.Errorf("%w: %s", ErrSignalTooLong, name)
	}

	bits, err := extract(data, s.StartBit, s.Length, s.ByteOrder)
	if err != nil {
		return Value{}, fmt.Errorf("%w: %s", err, name)
	}

	v := Value{Signal: s, Name: name, Unit: dbc.TextOr(s.Unit, "")}
	switch {
	case s.ValueType == dbc.ValueTypeFloat && s.Length == 32:
		v.Raw = int64(bits)
		v.Physical = float64(math.Float32frombits(uint32(bits)))*s.Scale + s.Offset
	case s.ValueType == dbc.ValueTypeDouble && s.Length == 64:
		v.Raw = int64(bits)
		v.Physical = math.Float64frombits(bits)*s.Scale + s.Offset
	default:
		v.Raw = int64(bits)
		if s.Signedness == dbc.Signed && s.Length > 0 && s.Length < 64 && bits&(1<<(s.Length-1)) != 0 {
			v.Raw = int64(bits) - int64(1)<<s.Length
		}
		v.Physical = float64(v.Raw)*s.Scale + s.Offset
	}

	if s.ValueMap != nil {
		v.Label, v.HasLabel = dbc.Lookup(s.ValueMap, v.Raw)
	}
	return v, nil
}

// extract reads length bits starting at start. Intel signals count from the
// least significant bit upwards; Motorola signals start at their most
// significant bit and walk the DBC sawtooth numbering.
func extract(data []byte, start, length uint16, order dbc.ByteOrder) (uint64, error) {
	var raw uint64
	pos := int(start)
	for i := 0; i < int(length); i++ {
		if pos/8 >= len(data) || pos < 0 {
			return 0, ErrShortFrame
		}
		bit := uint64(data[pos/8]>>(pos%8)) & 1

		if order == dbc.LittleEndian {
			raw |= bit << i
			pos++
			continue
		}
		raw = raw<<1 | bit
		if pos%8 == 0 {
			pos += 15
		} else {
			pos--
		}
	}
	return raw, nil
}

// ParseHex decodes a payload written as hex digits, with or without a 0x
// prefix and with optional spaces between bytes.
func ParseHex(s string) ([]byte, error) {
	s = strings.TrimPrefix(strings.TrimPrefix(strings.TrimSpace(s), "0x"), "0X")
	s = strings.ReplaceAll(s, " ", "")
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidPayload, err)
	}
	return data, nil
}
