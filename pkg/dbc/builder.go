package dbc

import (
	"errors"
	"fmt"
)

// Builder errors.
var (
	ErrNoDocument       = errors.New("builder has no document")
	ErrUnknownMessage   = errors.New("unknown message")
	ErrUnknownSignal    = errors.New("unknown signal")
	ErrUnknownNode      = errors.New("unknown node")
	ErrUnknownEnvVar    = errors.New("unknown environment variable")
	ErrUnknownAttribute = errors.New("unknown attribute definition")
)

// StdinName is the filename recorded for documents read without a path.
const StdinName = "<stdin>"

// Builder populates a Document incrementally, in the order a grammar emits
// declarations. Every entity is appended to its list in call order.
//
// A Builder is finished with exactly one of Finish, which hands the document
// to the caller, or Abort, which destroys the partial document.
type Builder struct {
	doc *Document
}

// NewBuilder returns a builder holding a new empty document.
func NewBuilder() *Builder {
	return &Builder{doc: NewDocument()}
}

// Document returns the document under construction, or nil once the
// builder has been finished or aborted.
func (b *Builder) Document() *Document {
	return b.doc
}

// Finish records the filename and hands the document over. An empty
// filename is recorded as StdinName.
func (b *Builder) Finish(filename string) (*Document, error) {
	if b.doc == nil {
		return nil, ErrNoDocument
	}
	if filename == "" {
		filename = StdinName
	}
	d := b.doc
	d.Filename = Text(filename)
	b.doc = nil
	return d, nil
}

// Abort destroys the partial document. It is safe to call more than once.
func (b *Builder) Abort() {
	Destroy(b.doc)
	b.doc = nil
}

// SetVersion records the VERSION string.
func (b *Builder) SetVersion(version *string) error {
	if b.doc == nil {
		return ErrNoDocument
	}
	b.doc.Version = version
	return nil
}

// AddNode appends a node.
func (b *Builder) AddNode(name string) (*Node, error) {
	if b.doc == nil {
		return nil, ErrNoDocument
	}
	n := &Node{Name: Text(name), Attributes: &AttributeList{}}
	b.doc.Nodes.Append(n)
	return n, nil
}

// AddValueTable appends a value table and takes ownership of vm.
func (b *Builder) AddValueTable(name string, vm *ValueMap) (*ValueTable, error) {
	if b.doc == nil {
		return nil, ErrNoDocument
	}
	t := &ValueTable{Name: Text(name), ValueMap: vm}
	b.doc.ValueTables.Append(t)
	return t, nil
}

// AddMessage appends a message with no signals. An empty sender leaves the
// sender absent.
func (b *Builder) AddMessage(id uint32, name string, length uint16, sender string) (*Message, error) {
	if b.doc == nil {
		return nil, ErrNoDocument
	}
	m := &Message{
		ID:         id,
		Name:       Text(name),
		Length:     length,
		Signals:    &SignalList{},
		Attributes: &AttributeList{},
	}
	if sender != "" {
		m.Sender = Text(sender)
	}
	b.doc.Messages.Append(m)
	return m, nil
}

// AddSignal appends sig to msg and takes ownership of it.
func (b *Builder) AddSignal(msg *Message, sig *Signal) error {
	if b.doc == nil {
		return ErrNoDocument
	}
	if msg == nil {
		return ErrUnknownMessage
	}
	if msg.Signals == nil {
		msg.Signals = &SignalList{}
	}
	if sig.Attributes == nil {
		sig.Attributes = &AttributeList{}
	}
	msg.Signals.Append(sig)
	return nil
}

// AddTransmitters appends names to the transmitter list of message id.
func (b *Builder) AddTransmitters(id uint32, names []string) error {
	m, err := b.message(id)
	if err != nil {
		return err
	}
	m.Transmitters = append(m.Transmitters, names...)
	return nil
}

// AddEnvVar appends an environment variable and takes ownership of it.
func (b *Builder) AddEnvVar(ev *EnvVar) error {
	if b.doc == nil {
		return ErrNoDocument
	}
	if ev.Attributes == nil {
		ev.Attributes = &AttributeList{}
	}
	b.doc.EnvVars.Append(ev)
	return nil
}

// AddSignalGroup appends a signal group and takes ownership of it.
func (b *Builder) AddSignalGroup(g *SignalGroup) error {
	if b.doc == nil {
		return ErrNoDocument
	}
	b.doc.SignalGroups.Append(g)
	return nil
}

// SetNetworkComment sets the network comment.
func (b *Builder) SetNetworkComment(text *string) error {
	if b.doc == nil {
		return ErrNoDocument
	}
	b.network().Comment = text
	return nil
}

// SetNodeComment sets the comment of the named node.
func (b *Builder) SetNodeComment(node string, text *string) error {
	n, err := b.node(node)
	if err != nil {
		return err
	}
	n.Comment = text
	return nil
}

// SetMessageComment sets the comment of message id.
func (b *Builder) SetMessageComment(id uint32, text *string) error {
	m, err := b.message(id)
	if err != nil {
		return err
	}
	m.Comment = text
	return nil
}

// SetSignalComment sets the comment of a signal of message id.
func (b *Builder) SetSignalComment(id uint32, signal string, text *string) error {
	s, err := b.signal(id, signal)
	if err != nil {
		return err
	}
	s.Comment = text
	return nil
}

// SetEnvVarComment sets the comment of the named environment variable.
func (b *Builder) SetEnvVarComment(name string, text *string) error {
	ev, err := b.envVar(name)
	if err != nil {
		return err
	}
	ev.Comment = text
	return nil
}

// SetEnvVarData marks the named environment variable as a data variable of
// size bytes.
func (b *Builder) SetEnvVarData(name string, size uint32) error {
	ev, err := b.envVar(name)
	if err != nil {
		return err
	}
	ev.Type = EnvData
	ev.DataSize = size
	return nil
}

// SetSignalValueMap attaches vm to a signal of message id, releasing any
// previous map.
func (b *Builder) SetSignalValueMap(id uint32, signal string, vm *ValueMap) error {
	s, err := b.signal(id, signal)
	if err != nil {
		return err
	}
	s.ValueMap.Release()
	s.ValueMap = vm
	return nil
}

// SetEnvVarValueMap attaches vm to the named environment variable, releasing
// any previous map.
func (b *Builder) SetEnvVarValueMap(name string, vm *ValueMap) error {
	ev, err := b.envVar(name)
	if err != nil {
		return err
	}
	ev.ValueMap.Release()
	ev.ValueMap = vm
	return nil
}

// SetSignalValueType sets the raw representation of a signal of message id.
func (b *Builder) SetSignalValueType(id uint32, signal string, t SignalValueType) error {
	s, err := b.signal(id, signal)
	if err != nil {
		return err
	}
	s.ValueType = t
	return nil
}

// AddAttributeDefinition appends a definition and takes ownership of it.
func (b *Builder) AddAttributeDefinition(def *AttributeDefinition) error {
	if b.doc == nil {
		return ErrNoDocument
	}
	b.doc.AttributeDefinitions.Append(def)
	return nil
}

// Definition returns the attribute definition with the given name.
func (b *Builder) Definition(name string) (*AttributeDefinition, error) {
	if b.doc == nil {
		return nil, ErrNoDocument
	}
	def := b.doc.Definition(name)
	if def == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownAttribute, name)
	}
	return def, nil
}

// SetAttributeDefault sets the default value of the named definition.
func (b *Builder) SetAttributeDefault(name string, v Value) error {
	def, err := b.Definition(name)
	if err != nil {
		return err
	}
	def.Default = v
	return nil
}

// AddNetworkAttribute attaches an attribute to the network.
func (b *Builder) AddNetworkAttribute(name string, v Value) error {
	if b.doc == nil {
		return ErrNoDocument
	}
	net := b.network()
	net.Attributes.Append(&Attribute{Name: Text(name), Value: v})
	return nil
}

// AddNodeAttribute attaches an attribute to the named node.
func (b *Builder) AddNodeAttribute(node, name string, v Value) error {
	n, err := b.node(node)
	if err != nil {
		return err
	}
	n.Attributes = appendAttribute(n.Attributes, name, v)
	return nil
}

// AddMessageAttribute attaches an attribute to message id.
func (b *Builder) AddMessageAttribute(id uint32, name string, v Value) error {
	m, err := b.message(id)
	if err != nil {
		return err
	}
	m.Attributes = appendAttribute(m.Attributes, name, v)
	return nil
}

// AddSignalAttribute attaches an attribute to a signal of message id.
func (b *Builder) AddSignalAttribute(id uint32, signal, name string, v Value) error {
	s, err := b.signal(id, signal)
	if err != nil {
		return err
	}
	s.Attributes = appendAttribute(s.Attributes, name, v)
	return nil
}

// AddEnvVarAttribute attaches an attribute to the named environment variable.
func (b *Builder) AddEnvVarAttribute(envVar, name string, v Value) error {
	ev, err := b.envVar(envVar)
	if err != nil {
		return err
	}
	ev.Attributes = appendAttribute(ev.Attributes, name, v)
	return nil
}

// AddNodeMessageRelation appends an attribute scoped to (node, message).
func (b *Builder) AddNodeMessageRelation(name, node string, id uint32, v Value) error {
	n, err := b.node(node)
	if err != nil {
		return err
	}
	m, err := b.message(id)
	if err != nil {
		return err
	}
	b.doc.AttributeRelations.Append(&AttributeRelation{
		Name:    Text(name),
		Value:   v,
		Node:    n,
		Message: m,
	})
	return nil
}

// AddNodeSignalRelation appends an attribute scoped to (node, message, signal).
func (b *Builder) AddNodeSignalRelation(name, node string, id uint32, signal string, v Value) error {
	n, err := b.node(node)
	if err != nil {
		return err
	}
	m, err := b.message(id)
	if err != nil {
		return err
	}
	s := m.SignalByName(signal)
	if s == nil {
		return fmt.Errorf("%w: %q in message %d", ErrUnknownSignal, signal, id)
	}
	b.doc.AttributeRelations.Append(&AttributeRelation{
		Name:    Text(name),
		Value:   v,
		Node:    n,
		Message: m,
		Signal:  s,
	})
	return nil
}

func appendAttribute(l *AttributeList, name string, v Value) *AttributeList {
	if l == nil {
		l = &AttributeList{}
	}
	l.Append(&Attribute{Name: Text(name), Value: v})
	return l
}

func (b *Builder) network() *Network {
	if b.doc.Network == nil {
		b.doc.Network = &Network{}
	}
	if b.doc.Network.Attributes == nil {
		b.doc.Network.Attributes = &AttributeList{}
	}
	return b.doc.Network
}

func (b *Builder) message(id uint32) (*Message, error) {
	if b.doc == nil {
		return nil, ErrNoDocument
	}
	m := b.doc.Message(id)
	if m == nil {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMessage, id)
	}
	return m, nil
}

func (b *Builder) signal(id uint32, name string) (*Signal, error) {
	m, err := b.message(id)
	if err != nil {
		return nil, err
	}
	s := m.SignalByName(name)
	if s == nil {
		return nil, fmt.Errorf("%w: %q in message %d", ErrUnknownSignal, name, id)
	}
	return s, nil
}

func (b *Builder) node(name string) (*Node, error) {
	if b.doc == nil {
		return nil, ErrNoDocument
	}
	n := b.doc.Node(name)
	if n == nil {
		return nil, fmt.Errorf("%w: %q", ErrUnknownNode, name)
	}
	return n, nil
}

func (b *Builder) envVar(name string) (*EnvVar, error) {
	if b.doc == nil {
		return nil, ErrNoDocument
	}
	for ev := range b.doc.EnvVars.All() {
		if ev.Name != nil && *ev.Name == name {
			return ev, nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownEnvVar, name)
}
