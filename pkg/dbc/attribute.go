package dbc

import "github.com/candbc/candbc-go/pkg/seq"

// Attribute is a named value attached directly to a network, node, message,
// signal or environment variable.
type Attribute struct {
	Name  *string
	Value Value
}

// AttributeList is the owned attribute sequence of an object.
type AttributeList = seq.List[*Attribute]

// Clone returns a deep copy of the attribute.
func (a *Attribute) Clone() *Attribute {
	if a == nil {
		return nil
	}
	return &Attribute{
		Name:  cloneText(a.Name),
		Value: CloneValue(a.Value),
	}
}

// Release drops the attribute's name and value.
func (a *Attribute) Release() {
	if a == nil {
		return
	}
	*a = Attribute{}
}

// AttributeDefinition declares a custom attribute: the kind of object it
// applies to, its value kind, its range and its default.
//
// Range holds an IntRange, FloatRange, HexRange or EnumRange matching Kind,
// or nil for string attributes. Default, when set, has the same kind; for
// enums it is expected (not enforced) to be one of the labels.
type AttributeDefinition struct {
	Name    *string
	Object  ObjectKind
	Kind    ValueKind
	Range   Range
	Default Value
}

// AttributeDefinitionList is the owned definition sequence of a document.
type AttributeDefinitionList = seq.List[*AttributeDefinition]

// Labels returns the enum labels of the definition, or nil when it is not
// an enum definition.
func (d *AttributeDefinition) Labels() []string {
	if d == nil {
		return nil
	}
	if r, ok := d.Range.(EnumRange); ok {
		return r.Labels
	}
	return nil
}

// Clone returns a deep copy of the definition.
func (d *AttributeDefinition) Clone() *AttributeDefinition {
	if d == nil {
		return nil
	}
	return &AttributeDefinition{
		Name:    cloneText(d.Name),
		Object:  d.Object,
		Kind:    d.Kind,
		Range:   CloneRange(d.Range),
		Default: CloneValue(d.Default),
	}
}

// Release drops the definition's name, range and default.
func (d *AttributeDefinition) Release() {
	if d == nil {
		return
	}
	*d = AttributeDefinition{}
}

// AttributeRelation is an attribute scoped to a (node, message, signal)
// combination rather than attached to one object.
//
// Node, Message and Signal are weak handles into lists owned elsewhere in
// the document. They are never released through the relation, and Clone
// copies them unchanged.
type AttributeRelation struct {
	Name    *string
	Value   Value
	Node    *Node
	Message *Message
	Signal  *Signal
}

// AttributeRelationList is the owned relation sequence of a document.
type AttributeRelationList = seq.List[*AttributeRelation]

// Kind returns the relation kind derived from the handles that are set.
func (r *AttributeRelation) Kind() ObjectKind {
	if r.Signal != nil {
		return ObjectNodeSignal
	}
	return ObjectNodeMessage
}

// Clone returns a copy of the relation with its own name and value. The weak
// handles point at the same entities as the original.
func (r *AttributeRelation) Clone() *AttributeRelation {
	if r == nil {
		return nil
	}
	return &AttributeRelation{
		Name:    cloneText(r.Name),
		Value:   CloneValue(r.Value),
		Node:    r.Node,
		Message: r.Message,
		Signal:  r.Signal,
	}
}

// Release drops the relation's name and value and forgets its weak handles
// without touching their targets.
func (r *AttributeRelation) Release() {
	if r == nil {
		return
	}
	*r = AttributeRelation{}
}
