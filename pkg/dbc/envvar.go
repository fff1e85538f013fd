package dbc

import "github.com/candbc/candbc-go/pkg/seq"

// EnvVar is a document-scoped environment variable (EV_).
type EnvVar struct {
	Name    *string
	Type    EnvVarType
	Access  AccessType
	Min     float64
	Max     float64
	Unit    *string
	Initial float64
	Index   uint32

	// DataSize is the byte size of an EnvData variable (ENVVAR_DATA_).
	DataSize uint32

	// Nodes are weak names of the nodes accessing the variable.
	Nodes []string

	ValueMap   *ValueMap
	Comment    *string
	Attributes *AttributeList
}

// EnvVarList is the owned environment variable sequence of a document.
type EnvVarList = seq.List[*EnvVar]

// Clone returns a deep copy of the variable.
func (e *EnvVar) Clone() *EnvVar {
	if e == nil {
		return nil
	}
	c := *e
	c.Name = cloneText(e.Name)
	c.Unit = cloneText(e.Unit)
	c.Nodes = cloneNames(e.Nodes)
	c.ValueMap = e.ValueMap.Clone()
	c.Comment = cloneText(e.Comment)
	c.Attributes = e.Attributes.Clone()
	return &c
}

// Release drops the variable, its value map and its attributes.
func (e *EnvVar) Release() {
	if e == nil {
		return
	}
	e.ValueMap.Release()
	e.Attributes.Release()
	*e = EnvVar{}
}

// SignalGroup groups signals of one message for documentation purposes
// (SIG_GROUP_).
type SignalGroup struct {
	// ID is the id of the message the group belongs to.
	ID          uint32
	Name        *string
	Repetitions uint32

	// Signals are weak names of signals in the message.
	Signals []string
}

// SignalGroupList is the owned signal group sequence of a document.
type SignalGroupList = seq.List[*SignalGroup]

// Clone returns a deep copy of the group.
func (g *SignalGroup) Clone() *SignalGroup {
	if g == nil {
		return nil
	}
	return &SignalGroup{
		ID:          g.ID,
		Name:        cloneText(g.Name),
		Repetitions: g.Repetitions,
		Signals:     cloneNames(g.Signals),
	}
}

// Release drops the group.
func (g *SignalGroup) Release() {
	if g == nil {
		return
	}
	*g = SignalGroup{}
}
