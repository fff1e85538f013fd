package dbc

import (
	"fmt"
	"slices"
)

// Issue codes reported by Check.
const (
	CodeDuplicateMessageID   = "DUPLICATE_MESSAGE_ID"
	CodeMultipleMultiplexors = "MULTIPLE_MULTIPLEXORS"
	CodeMissingMultiplexor   = "MISSING_MULTIPLEXOR"
	CodeEnumDefaultUnlisted  = "ENUM_DEFAULT_UNLISTED"
	CodeUnknownNode          = "UNKNOWN_NODE"
)

// Issue is one consistency problem found by Check.
type Issue struct {
	Code    string
	Message string
}

func (i Issue) Error() string {
	return fmt.Sprintf("%s: %s", i.Code, i.Message)
}

// CheckResult collects the issues found in a document.
type CheckResult struct {
	// Valid is false when at least one error was found.
	Valid bool

	Errors   []Issue
	Warnings []Issue
}

func (r *CheckResult) addError(code, format string, args ...any) {
	r.Errors = append(r.Errors, Issue{Code: code, Message: fmt.Sprintf(format, args...)})
	r.Valid = false
}

func (r *CheckResult) addWarning(code, format string, args ...any) {
	r.Warnings = append(r.Warnings, Issue{Code: code, Message: fmt.Sprintf(format, args...)})
}

// Check reports the assumptions the model relies on but does not enforce:
// unique message ids, at most one multiplexor per message, enum defaults
// among their labels and resolvable node names. It never mutates d.
func Check(d *Document) *CheckResult {
	result := &CheckResult{Valid: true}
	if d == nil {
		return result
	}

	checkMessageIDs(d, result)
	checkMultiplexing(d, result)
	checkEnumDefaults(d, result)
	checkNodeNames(d, result)

	return result
}

func checkMessageIDs(d *Document, r *CheckResult) {
	seen := make(map[uint32]string)
	for m := range d.Messages.All() {
		name := TextOr(m.Name, "")
		if prev, ok := seen[m.ID]; ok {
			r.addError(CodeDuplicateMessageID, "message id %d used by %q and %q", m.ID, prev, name)
			continue
		}
		seen[m.ID] = name
	}
}

func checkMultiplexing(d *Document, r *CheckResult) {
	for m := range d.Messages.All() {
		var multiplexors, multiplexed int
		for s := range m.Signals.All() {
			switch s.Mux {
			case MuxMultiplexor:
				multiplexors++
			case MuxMultiplexed:
				multiplexed++
			}
		}
		name := TextOr(m.Name, "")
		if multiplexors > 1 {
			r.addError(CodeMultipleMultiplexors, "message %q (%d) has %d multiplexor signals", name, m.ID, multiplexors)
		}
		if multiplexed > 0 && multiplexors == 0 {
			r.addWarning(CodeMissingMultiplexor, "message %q (%d) has multiplexed signals but no multiplexor", name, m.ID)
		}
	}
}

func checkEnumDefaults(d *Document, r *CheckResult) {
	for def := range d.AttributeDefinitions.All() {
		if def.Kind != KindEnum || def.Default == nil {
			continue
		}
		labels := def.Labels()
		switch v := def.Default.(type) {
		case EnumValue:
			if !slices.Contains(labels, string(v)) {
				r.addWarning(CodeEnumDefaultUnlisted, "default %q of %q is not one of its labels", string(v), TextOr(def.Name, ""))
			}
		case IntValue:
			if v < 0 || int(v) >= len(labels) {
				r.addWarning(CodeEnumDefaultUnlisted, "default ordinal %d of %q is outside its %d labels", int32(v), TextOr(def.Name, ""), len(labels))
			}
		}
	}
}

func checkNodeNames(d *Document, r *CheckResult) {
	known := make(map[string]bool, d.Nodes.Len())
	for n := range d.Nodes.All() {
		if n.Name != nil {
			known[*n.Name] = true
		}
	}
	unknown := func(name string) bool {
		return name != "" && name != PlaceholderNode && !known[name]
	}

	for m := range d.Messages.All() {
		name := TextOr(m.Name, "")
		if m.Sender != nil && unknown(*m.Sender) {
			r.addWarning(CodeUnknownNode, "sender %q of message %q is not declared", *m.Sender, name)
		}
		for _, tx := range m.Transmitters {
			if unknown(tx) {
				r.addWarning(CodeUnknownNode, "transmitter %q of message %q is not declared", tx, name)
			}
		}
		for s := range m.Signals.All() {
			for _, rx := range s.Receivers {
				if unknown(rx) {
					r.addWarning(CodeUnknownNode, "receiver %q of signal %q is not declared", rx, TextOr(s.Name, ""))
				}
			}
		}
	}
	for ev := range d.EnvVars.All() {
		for _, n := range ev.Nodes {
			if unknown(n) {
				r.addWarning(CodeUnknownNode, "node %q of environment variable %q is not declared", n, TextOr(ev.Name, ""))
			}
		}
	}
}
