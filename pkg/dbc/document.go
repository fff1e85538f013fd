package dbc

// Document is the aggregate root of a DBC description. It owns every list
// below it.
type Document struct {
	Filename *string
	Version  *string

	Nodes                *NodeList
	ValueTables          *ValueTableList
	Messages             *MessageList
	EnvVars              *EnvVarList
	AttributeRelations   *AttributeRelationList
	AttributeDefinitions *AttributeDefinitionList
	SignalGroups         *SignalGroupList
	Network              *Network
}

// NewDocument returns an empty document with every list allocated.
func NewDocument() *Document {
	return &Document{
		Nodes:                &NodeList{},
		ValueTables:          &ValueTableList{},
		Messages:             &MessageList{},
		EnvVars:              &EnvVarList{},
		AttributeRelations:   &AttributeRelationList{},
		AttributeDefinitions: &AttributeDefinitionList{},
		SignalGroups:         &SignalGroupList{},
		Network:              &Network{Attributes: &AttributeList{}},
	}
}

// Message returns the first message with the given id.
func (d *Document) Message(id uint32) *Message {
	if d == nil {
		return nil
	}
	for m := range d.Messages.All() {
		if m.ID == id {
			return m
		}
	}
	return nil
}

// Node returns the first node with the given name.
func (d *Document) Node(name string) *Node {
	if d == nil {
		return nil
	}
	for n := range d.Nodes.All() {
		if n.Name != nil && *n.Name == name {
			return n
		}
	}
	return nil
}

// Definition returns the first attribute definition with the given name.
func (d *Document) Definition(name string) *AttributeDefinition {
	if d == nil {
		return nil
	}
	for def := range d.AttributeDefinitions.All() {
		if def.Name != nil && *def.Name == name {
			return def
		}
	}
	return nil
}

// SignalByName returns the first signal of m with the given name.
func (m *Message) SignalByName(name string) *Signal {
	if m == nil {
		return nil
	}
	for s := range m.Signals.All() {
		if s.Name != nil && *s.Name == name {
			return s
		}
	}
	return nil
}
