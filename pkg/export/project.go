package export

import (
	"strconv"

	"github.com/candbc/candbc-go/pkg/dbc"
)

// Project walks d once and returns its exported view together with the
// aggregate statistics. d is never modified. A nil document projects to a
// nil view and zero statistics.
func Project(d *dbc.Document) (*View, Stats) {
	var stats Stats
	if d == nil {
		return nil, stats
	}

	v := &View{
		Filename:             copyText(d.Filename),
		Version:              copyText(d.Version),
		AttributeDefinitions: projectDefinitions(d),
		Messages:             make(map[string]*MessageView, d.Messages.Len()),
	}

	for m := range d.Messages.All() {
		v.Messages[strconv.FormatUint(uint64(m.ID), 10)] = projectMessage(m, &stats)
	}

	return v, stats
}

// Statistics computes only the aggregates of d.
func Statistics(d *dbc.Document) Stats {
	_, stats := Project(d)
	return stats
}

// projectDefinitions keeps message-scoped enum definitions and keys their
// labels by ordinal position.
func projectDefinitions(d *dbc.Document) map[string]map[string]string {
	out := make(map[string]map[string]string)
	for def := range d.AttributeDefinitions.All() {
		if def.Object != dbc.ObjectMessage || def.Kind != dbc.KindEnum {
			continue
		}
		labels := make(map[string]string)
		for i, label := range def.Labels() {
			labels[strconv.Itoa(i)] = label
		}
		out[dbc.TextOr(def.Name, "")] = labels
	}
	return out
}

func projectMessage(m *dbc.Message, stats *Stats) *MessageView {
	mv := &MessageView{
		Name:       copyText(m.Name),
		Sender:     copyText(m.Sender),
		Length:     m.Length,
		Attributes: make(map[string]string, m.Attributes.Len()),
	}

	for a := range m.Attributes.All() {
		mv.Attributes[dbc.TextOr(a.Name, "")] = dbc.FormatValue(a.Value)
	}

	selectors := make(map[uint32]struct{})
	if m.Signals.Len() > 0 {
		mv.Signals = make(map[string]*SignalView, m.Signals.Len())
	}
	for s := range m.Signals.All() {
		mv.Signals[dbc.TextOr(s.Name, "")] = projectSignal(s)
		if s.Mux == dbc.MuxMultiplexed {
			mv.HasMultiplexor = true
			selectors[s.MuxValue] = struct{}{}
		}
		stats.Signals++
		stats.Length += int(s.Length)
	}

	stats.Messages++
	if mv.HasMultiplexor {
		stats.MultiplexedMessages++
		stats.MultiplexedMessageCombinations += len(selectors)
	} else {
		stats.NormalMessages++
	}

	return mv
}

func projectSignal(s *dbc.Signal) *SignalView {
	sv := &SignalView{
		BitStart:     s.StartBit,
		Length:       s.Length,
		LittleEndian: s.ByteOrder == dbc.LittleEndian,
		Signed:       s.Signedness == dbc.Signed,
		ValueType:    s.ValueType.String(),
		Factor:       s.Scale,
		Offset:       s.Offset,
		Min:          s.Min,
		Max:          s.Max,
		Unit:         copyText(s.Unit),
	}

	if s.ValueMap != nil {
		sv.Enums = make(map[string]string, s.ValueMap.Len())
		for e := range s.ValueMap.All() {
			sv.Enums[strconv.FormatInt(e.Index, 10)] = dbc.TextOr(e.Label, "")
		}
	}

	switch s.Mux {
	case dbc.MuxMultiplexor:
		sv.Multiplexor = true
	case dbc.MuxMultiplexed:
		sel := s.MuxValue
		sv.Multiplexing = &sel
	}

	return sv
}

// copyText keeps the view independent of the document's text buffers.
func copyText(t *string) *string {
	if t == nil {
		return nil
	}
	s := *t
	return &s
}
