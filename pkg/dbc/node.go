package dbc

import "github.com/candbc/candbc-go/pkg/seq"

// PlaceholderNode is the name DBC editors write where no node applies.
const PlaceholderNode = "Vector__XXX"

// Node is an ECU on the bus (BU_).
type Node struct {
	Name       *string
	Comment    *string
	Attributes *AttributeList
}

// NodeList is the owned node sequence of a document.
type NodeList = seq.List[*Node]

// Clone returns a deep copy of the node.
func (n *Node) Clone() *Node {
	if n == nil {
		return nil
	}
	return &Node{
		Name:       cloneText(n.Name),
		Comment:    cloneText(n.Comment),
		Attributes: n.Attributes.Clone(),
	}
}

// Release drops the node and its attributes.
func (n *Node) Release() {
	if n == nil {
		return
	}
	n.Attributes.Release()
	*n = Node{}
}

// Network holds document-scoped metadata that is not tied to any node or
// message.
type Network struct {
	Attributes *AttributeList
	Comment    *string
}

// Clone returns a deep copy of the network.
func (n *Network) Clone() *Network {
	if n == nil {
		return nil
	}
	return &Network{
		Attributes: n.Attributes.Clone(),
		Comment:    cloneText(n.Comment),
	}
}

// Release drops the network's attributes and comment.
func (n *Network) Release() {
	if n == nil {
		return
	}
	n.Attributes.Release()
	*n = Network{}
}
