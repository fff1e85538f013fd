// Package dbc implements the in-memory model of a CAN network description
// (DBC) document.
//
// # Document Hierarchy
//
//	Document
//	├── Network        (document-scoped attributes and comment)
//	├── Nodes          (ECUs, referenced by name elsewhere)
//	├── ValueTables    (named index -> label maps)
//	├── Messages
//	│   └── Signals    (owned by exactly one message)
//	├── EnvVars
//	├── AttributeDefinitions
//	├── AttributeRelations
//	└── SignalGroups
//
// # Ownership
//
// Every repeated entity kind lives in a [seq.List], which exclusively owns
// its elements. Names that point at other entities (a message's sender, a
// signal's receivers, an environment variable's nodes, a signal group's
// signals) are weak: they are plain strings and resolving them is the
// caller's job. An [AttributeRelation] holds weak *Node, *Message and *Signal
// handles into lists owned elsewhere in the same document.
//
// Release tears an entity down together with everything it owns and never
// follows weak handles. Clone produces a storage-independent copy; weak
// relation handles are copied as they are unless [Document.CloneWith] is
// asked to re-target them.
//
// # Construction
//
// Documents are populated incrementally by a [Builder], normally driven by
// the DBC text reader in package dbcfile. The model is permissive: it stores
// what it is given. [Check] reports the consistency assumptions a document
// does not meet.
package dbc
