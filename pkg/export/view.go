package export

// View is the exported mapping of a document.
type View struct {
	Filename *string `json:"filename" yaml:"filename" cbor:"filename"`
	Version  *string `json:"version" yaml:"version" cbor:"version"`

	// AttributeDefinitions holds the message-scoped enum definitions, keyed
	// by definition name, each mapping label ordinal to label.
	AttributeDefinitions map[string]map[string]string `json:"attribute_definitions" yaml:"attribute_definitions" cbor:"attribute_definitions"`

	// Messages is keyed by the decimal message id.
	Messages map[string]*MessageView `json:"messages" yaml:"messages" cbor:"messages"`
}

// MessageView is the exported form of one message.
type MessageView struct {
	Name       *string                `json:"name" yaml:"name" cbor:"name"`
	Sender     *string                `json:"sender" yaml:"sender" cbor:"sender"`
	Length     uint16                 `json:"length" yaml:"length" cbor:"length"`
	Attributes map[string]string      `json:"attributes" yaml:"attributes" cbor:"attributes"`
	Signals    map[string]*SignalView `json:"signals,omitempty" yaml:"signals,omitempty" cbor:"signals,omitempty"`

	// HasMultiplexor is set only when at least one signal is multiplexed.
	HasMultiplexor bool `json:"has_multiplexor,omitempty" yaml:"has_multiplexor,omitempty" cbor:"has_multiplexor,omitempty"`
}

// SignalView is the exported form of one signal.
type SignalView struct {
	BitStart     uint16  `json:"bit_start" yaml:"bit_start" cbor:"bit_start"`
	Length       uint16  `json:"length" yaml:"length" cbor:"length"`
	LittleEndian bool    `json:"little_endian" yaml:"little_endian" cbor:"little_endian"`
	Signed       bool    `json:"signed" yaml:"signed" cbor:"signed"`
	ValueType    string  `json:"value_type" yaml:"value_type" cbor:"value_type"`
	Factor       float64 `json:"factor" yaml:"factor" cbor:"factor"`
	Offset       float64 `json:"offset" yaml:"offset" cbor:"offset"`
	Min          float64 `json:"min" yaml:"min" cbor:"min"`
	Max          float64 `json:"max" yaml:"max" cbor:"max"`
	Unit         *string `json:"unit,omitempty" yaml:"unit,omitempty" cbor:"unit,omitempty"`

	// Enums maps the decimal raw value to its label.
	Enums map[string]string `json:"enums,omitempty" yaml:"enums,omitempty" cbor:"enums,omitempty"`

	// Multiplexor and Multiplexing are mutually exclusive; plain signals
	// carry neither.
	Multiplexor  bool    `json:"multiplexor,omitempty" yaml:"multiplexor,omitempty" cbor:"multiplexor,omitempty"`
	Multiplexing *uint32 `json:"multiplexing,omitempty" yaml:"multiplexing,omitempty" cbor:"multiplexing,omitempty"`
}

// Stats are the aggregates computed while projecting a document.
type Stats struct {
	Messages            int `json:"messages" yaml:"messages"`
	NormalMessages      int `json:"normal_messages" yaml:"normal_messages"`
	MultiplexedMessages int `json:"multiplexed_messages" yaml:"multiplexed_messages"`

	// MultiplexedMessageCombinations sums, over all messages, the number of
	// distinct selector values used by multiplexed signals.
	MultiplexedMessageCombinations int `json:"multiplexed_message_combinations" yaml:"multiplexed_message_combinations"`

	Signals int `json:"signals" yaml:"signals"`

	// Length is the total declared bit length of all signals.
	Length int `json:"length" yaml:"length"`
}
