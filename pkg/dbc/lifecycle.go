package dbc

// CloneOptions configures Document.CloneWith.
type CloneOptions struct {
	// RetargetRelations re-points the weak Node, Message and Signal handles
	// of every attribute relation at the corresponding entities of the copy.
	// Handles whose target is not owned by the source document are kept.
	RetargetRelations bool
}

// Destroy releases d and everything it owns. Weak handles are never
// followed. Destroy on nil is a no-op, and it tolerates a partially
// populated document.
func Destroy(d *Document) {
	d.Release()
}

// Duplicate returns a storage-independent deep copy of d, or nil for nil.
// Relation handles are copied unchanged.
func Duplicate(d *Document) *Document {
	return d.Clone()
}

// Release tears the document down. The struct is zeroed afterwards.
func (d *Document) Release() {
	if d == nil {
		return
	}
	d.Nodes.Release()
	d.ValueTables.Release()
	d.Messages.Release()
	d.EnvVars.Release()
	d.AttributeRelations.Release()
	d.AttributeDefinitions.Release()
	d.SignalGroups.Release()
	d.Network.Release()
	*d = Document{}
}

// Clone returns a deep copy of the document. Attribute relations in the
// copy keep pointing at the entities of the original.
func (d *Document) Clone() *Document {
	return d.CloneWith(CloneOptions{})
}

// CloneWith returns a deep copy of the document configured by opts.
func (d *Document) CloneWith(opts CloneOptions) *Document {
	if d == nil {
		return nil
	}
	c := &Document{
		Filename:             cloneText(d.Filename),
		Version:              cloneText(d.Version),
		Nodes:                d.Nodes.Clone(),
		ValueTables:          d.ValueTables.Clone(),
		Messages:             d.Messages.Clone(),
		EnvVars:              d.EnvVars.Clone(),
		AttributeRelations:   d.AttributeRelations.Clone(),
		AttributeDefinitions: d.AttributeDefinitions.Clone(),
		SignalGroups:         d.SignalGroups.Clone(),
		Network:              d.Network.Clone(),
	}
	if opts.RetargetRelations {
		retargetRelations(d, c)
	}
	return c
}

// retargetRelations maps every node, message and signal of orig to its
// counterpart in dup by walking both documents in parallel, then rewrites
// the relation handles of dup. Lists of a clone have the same shape as the
// source, so positional pairing is exact.
func retargetRelations(orig, dup *Document) {
	nodes := make(map[*Node]*Node, orig.Nodes.Len())
	origNodes, dupNodes := orig.Nodes.Items(), dup.Nodes.Items()
	for i := range origNodes {
		nodes[origNodes[i]] = dupNodes[i]
	}

	messages := make(map[*Message]*Message, orig.Messages.Len())
	signals := make(map[*Signal]*Signal)
	origMsgs, dupMsgs := orig.Messages.Items(), dup.Messages.Items()
	for i := range origMsgs {
		messages[origMsgs[i]] = dupMsgs[i]
		origSigs, dupSigs := origMsgs[i].Signals.Items(), dupMsgs[i].Signals.Items()
		for j := range origSigs {
			signals[origSigs[j]] = dupSigs[j]
		}
	}

	for rel := range dup.AttributeRelations.All() {
		if n, ok := nodes[rel.Node]; ok {
			rel.Node = n
		}
		if m, ok := messages[rel.Message]; ok {
			rel.Message = m
		}
		if s, ok := signals[rel.Signal]; ok {
			rel.Signal = s
		}
	}
}
