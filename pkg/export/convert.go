package export

import (
	"cmp"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"

	"github.com/candbc/candbc-go/pkg/dbc"
)

// ErrInvalidView is returned when a view cannot be turned back into a
// document.
var ErrInvalidView = errors.New("invalid view")

// ToDocument rebuilds a document from a view. Only what a view carries
// survives: messages, signals, value maps, message attributes and the
// message-scoped enum definitions. Each distinct sender becomes a node.
// Messages are appended in ascending id
// order and signals in ascending start bit order, since a view keeps no
// declaration order.
func ToDocument(v *View) (*dbc.Document, error) {
	if v == nil {
		return nil, fmt.Errorf("%w: nil view", ErrInvalidView)
	}

	b := dbc.NewBuilder()
	if err := buildDocument(b, v); err != nil {
		b.Abort()
		return nil, err
	}
	return b.Finish(dbc.TextOr(v.Filename, ""))
}

func buildDocument(b *dbc.Builder, v *View) error {
	if err := b.SetVersion(copyText(v.Version)); err != nil {
		return err
	}

	for _, name := range slices.Sorted(maps.Keys(v.AttributeDefinitions)) {
		labels, err := orderedLabels(v.AttributeDefinitions[name])
		if err != nil {
			return fmt.Errorf("attribute definition %q: %w", name, err)
		}
		def := &dbc.AttributeDefinition{
			Name:   dbc.Text(name),
			Object: dbc.ObjectMessage,
			Kind:   dbc.KindEnum,
			Range:  dbc.EnumRange{Labels: labels},
		}
		if err := b.AddAttributeDefinition(def); err != nil {
			return err
		}
	}

	type keyed struct {
		id uint32
		mv *MessageView
	}
	msgs := make([]keyed, 0, len(v.Messages))
	for key, mv := range v.Messages {
		id, err := strconv.ParseUint(key, 10, 32)
		if err != nil {
			return fmt.Errorf("%w: message key %q is not a decimal id", ErrInvalidView, key)
		}
		if mv == nil {
			return fmt.Errorf("%w: message %s is empty", ErrInvalidView, key)
		}
		msgs = append(msgs, keyed{id: uint32(id), mv: mv})
	}
	slices.SortFunc(msgs, func(a, b keyed) int { return cmp.Compare(a.id, b.id) })

	seen := make(map[string]bool)
	for _, k := range msgs {
		sender := dbc.TextOr(k.mv.Sender, "")
		if sender == "" || seen[sender] {
			continue
		}
		seen[sender] = true
		if _, err := b.AddNode(sender); err != nil {
			return err
		}
	}

	for _, k := range msgs {
		if err := buildMessage(b, k.id, k.mv); err != nil {
			return fmt.Errorf("message %d: %w", k.id, err)
		}
	}
	return nil
}

func buildMessage(b *dbc.Builder, id uint32, mv *MessageView) error {
	m, err := b.AddMessage(id, dbc.TextOr(mv.Name, ""), mv.Length, dbc.TextOr(mv.Sender, ""))
	if err != nil {
		return err
	}
	if mv.Name == nil {
		m.Name = nil
	}

	for name, sv := range mv.Signals {
		if sv == nil {
			return fmt.Errorf("%w: signal %q is empty", ErrInvalidView, name)
		}
	}
	names := slices.Collect(maps.Keys(mv.Signals))
	slices.SortFunc(names, func(a, c string) int {
		return cmp.Or(cmp.Compare(mv.Signals[a].BitStart, mv.Signals[c].BitStart), cmp.Compare(a, c))
	})
	for _, name := range names {
		sig, err := buildSignal(name, mv.Signals[name])
		if err != nil {
			return fmt.Errorf("signal %q: %w", name, err)
		}
		if err := b.AddSignal(m, sig); err != nil {
			return err
		}
	}

	for _, name := range slices.Sorted(maps.Keys(mv.Attributes)) {
		if err := b.AddMessageAttribute(id, name, parseValue(mv.Attributes[name])); err != nil {
			return err
		}
	}
	return nil
}

func buildSignal(name string, sv *SignalView) (*dbc.Signal, error) {
	vt, err := parseValueType(sv.ValueType)
	if err != nil {
		return nil, err
	}

	s := &dbc.Signal{
		Name:      dbc.Text(name),
		StartBit:  sv.BitStart,
		Length:    sv.Length,
		ValueType: vt,
		Scale:     sv.Factor,
		Offset:    sv.Offset,
		Min:       sv.Min,
		Max:       sv.Max,
		Unit:      copyText(sv.Unit),
	}
	if sv.LittleEndian {
		s.ByteOrder = dbc.LittleEndian
	}
	if sv.Signed {
		s.Signedness = dbc.Signed
	}

	switch {
	case sv.Multiplexor && sv.Multiplexing != nil:
		return nil, fmt.Errorf("%w: both multiplexor and multiplexed", ErrInvalidView)
	case sv.Multiplexor:
		s.Mux = dbc.MuxMultiplexor
	case sv.Multiplexing != nil:
		s.Mux = dbc.MuxMultiplexed
		s.MuxValue = *sv.Multiplexing
	}

	if sv.Enums != nil {
		vm, err := buildValueMap(sv.Enums)
		if err != nil {
			return nil, err
		}
		s.ValueMap = vm
	}
	return s, nil
}

func buildValueMap(enums map[string]string) (*dbc.ValueMap, error) {
	type entry struct {
		index int64
		label string
	}
	entries := make([]entry, 0, len(enums))
	for key, label := range enums {
		idx, err := strconv.ParseInt(key, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%w: enum key %q is not an integer", ErrInvalidView, key)
		}
		entries = append(entries, entry{index: idx, label: label})
	}
	slices.SortFunc(entries, func(a, b entry) int { return cmp.Compare(a.index, b.index) })

	vm := &dbc.ValueMap{}
	for _, e := range entries {
		vm.Append(&dbc.ValueMapEntry{Index: e.index, Label: dbc.Text(e.label)})
	}
	return vm, nil
}

// orderedLabels turns an ordinal-keyed label map back into a list. Keys must
// be exactly the canonical decimals 0..n-1.
func orderedLabels(m map[string]string) ([]string, error) {
	labels := make([]string, len(m))
	for i := range labels {
		label, ok := m[strconv.Itoa(i)]
		if !ok {
			return nil, fmt.Errorf("%w: missing label ordinal %d", ErrInvalidView, i)
		}
		labels[i] = label
	}
	return labels, nil
}

func parseValueType(s string) (dbc.SignalValueType, error) {
	switch s {
	case "", "integer":
		return dbc.ValueTypeInteger, nil
	case "float":
		return dbc.ValueTypeFloat, nil
	case "double":
		return dbc.ValueTypeDouble, nil
	default:
		return 0, fmt.Errorf("%w: value type %q", ErrInvalidView, s)
	}
}

// parseValue recovers a typed value from its rendered text. Integers come
// back as IntValue, unsigned values past the int32 range as HexValue, other
// numbers as FloatValue and everything else as StringValue.
func parseValue(s string) dbc.Value {
	if i, err := strconv.ParseInt(s, 10, 32); err == nil {
		return dbc.IntValue(i)
	}
	if u, err := strconv.ParseUint(s, 10, 32); err == nil {
		return dbc.HexValue(u)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil {
		return dbc.FloatValue(f)
	}
	return dbc.StringValue(s)
}
