package dbc

// ObjectKind is the kind of object an attribute definition applies to.
type ObjectKind uint8

const (
	ObjectNetwork ObjectKind = iota
	ObjectNode
	ObjectMessage
	ObjectSignal
	ObjectEnvVar
	// ObjectNodeSignal is a relation between a node and a signal (BU_SG_REL_).
	ObjectNodeSignal
	// ObjectNodeMessage is a relation between a node and a message (BU_BO_REL_).
	ObjectNodeMessage
)

// String returns the object kind name.
func (k ObjectKind) String() string {
	names := []string{"network", "node", "message", "signal", "envvar", "node_signal", "node_message"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// IsRelation reports whether the kind scopes attributes to a relation
// rather than to a single object.
func (k ObjectKind) IsRelation() bool {
	return k == ObjectNodeSignal || k == ObjectNodeMessage
}

// ValueKind is the type tag of an attribute value.
type ValueKind uint8

const (
	KindInt ValueKind = iota
	KindFloat
	KindString
	KindEnum
	KindHex
)

// String returns the value kind name.
func (k ValueKind) String() string {
	names := []string{"int", "float", "string", "enum", "hex"}
	if int(k) < len(names) {
		return names[k]
	}
	return "unknown"
}

// MuxRole is the multiplexing role of a signal.
type MuxRole uint8

const (
	// MuxPlain is an ordinary signal.
	MuxPlain MuxRole = iota
	// MuxMultiplexor selects which multiplexed signals are valid.
	MuxMultiplexor
	// MuxMultiplexed is valid only when the multiplexor equals its selector.
	MuxMultiplexed
)

// String returns the role name.
func (m MuxRole) String() string {
	switch m {
	case MuxPlain:
		return "plain"
	case MuxMultiplexor:
		return "multiplexor"
	case MuxMultiplexed:
		return "multiplexed"
	default:
		return "unknown"
	}
}

// ByteOrder is the bit numbering of a signal. The values match the DBC
// "@0"/"@1" notation.
type ByteOrder uint8

const (
	// BigEndian is Motorola byte order (@0).
	BigEndian ByteOrder = 0
	// LittleEndian is Intel byte order (@1).
	LittleEndian ByteOrder = 1
)

// String returns the byte order name.
func (b ByteOrder) String() string {
	if b == LittleEndian {
		return "little_endian"
	}
	return "big_endian"
}

// Signedness tells whether a signal's raw value is two's complement.
type Signedness uint8

const (
	Unsigned Signedness = iota
	Signed
)

// String returns "signed" or "unsigned".
func (s Signedness) String() string {
	if s == Signed {
		return "signed"
	}
	return "unsigned"
}

// SignalValueType is the raw representation of a signal (SIG_VALTYPE_).
type SignalValueType uint8

const (
	ValueTypeInteger SignalValueType = iota
	ValueTypeFloat
	ValueTypeDouble
)

// String returns the representation name.
func (t SignalValueType) String() string {
	names := []string{"integer", "float", "double"}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// EnvVarType is the data type of an environment variable.
type EnvVarType uint8

const (
	EnvInteger EnvVarType = 0
	EnvFloat   EnvVarType = 1
	EnvString  EnvVarType = 2
	EnvData    EnvVarType = 3
)

// String returns the type name.
func (t EnvVarType) String() string {
	names := []string{"integer", "float", "string", "data"}
	if int(t) < len(names) {
		return names[t]
	}
	return "unknown"
}

// AccessType is the access mode of an environment variable.
type AccessType uint8

const (
	AccessUnrestricted AccessType = 0
	AccessReadOnly     AccessType = 1
	AccessWriteOnly    AccessType = 2
	AccessReadWrite    AccessType = 3
)

// String returns the access mode name.
func (a AccessType) String() string {
	names := []string{"unrestricted", "readonly", "writeonly", "readwrite"}
	if int(a) < len(names) {
		return names[a]
	}
	return "unknown"
}
