package dbc

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is a typed attribute value. The set of implementations is closed:
// IntValue, FloatValue, StringValue, EnumValue and HexValue.
//
// String renders the canonical display text used by the JSON projection.
// HexValue renders as unsigned decimal, not hexadecimal.
type Value interface {
	Kind() ValueKind
	String() string
	isValue()
}

// IntValue is a signed 32-bit integer attribute value.
type IntValue int32

// FloatValue is a 64-bit floating point attribute value.
type FloatValue float64

// StringValue is a free text attribute value.
type StringValue string

// EnumValue is an enumeration label attribute value.
type EnumValue string

// HexValue is an unsigned 32-bit attribute value declared as HEX.
type HexValue uint32

func (IntValue) Kind() ValueKind    { return KindInt }
func (FloatValue) Kind() ValueKind  { return KindFloat }
func (StringValue) Kind() ValueKind { return KindString }
func (EnumValue) Kind() ValueKind   { return KindEnum }
func (HexValue) Kind() ValueKind    { return KindHex }

func (v IntValue) String() string    { return strconv.FormatInt(int64(v), 10) }
func (v FloatValue) String() string  { return strconv.FormatFloat(float64(v), 'g', -1, 64) }
func (v StringValue) String() string { return string(v) }
func (v EnumValue) String() string   { return string(v) }
func (v HexValue) String() string    { return strconv.FormatUint(uint64(v), 10) }

func (IntValue) isValue()    {}
func (FloatValue) isValue()  {}
func (StringValue) isValue() {}
func (EnumValue) isValue()   {}
func (HexValue) isValue()    {}

// CloneValue returns an independent copy of v. Text payloads are copied;
// numeric payloads are copied by value. A nil value clones to nil.
func CloneValue(v Value) Value {
	switch x := v.(type) {
	case nil:
		return nil
	case IntValue, FloatValue, HexValue:
		return x
	case StringValue:
		return StringValue(strings.Clone(string(x)))
	case EnumValue:
		return EnumValue(strings.Clone(string(x)))
	default:
		panic(fmt.Sprintf("dbc: unknown attribute value type %T", v))
	}
}

// FormatValue renders v as display text. A nil value renders empty.
func FormatValue(v Value) string {
	if v == nil {
		return ""
	}
	return v.String()
}

// Range is the allowed range of an attribute definition. The implementation
// is selected by the definition's value kind: IntRange, FloatRange, HexRange
// or EnumRange. String definitions have no range.
type Range interface {
	Kind() ValueKind
	isRange()
}

// IntRange bounds an INT attribute.
type IntRange struct {
	Min int32
	Max int32
}

// FloatRange bounds a FLOAT attribute.
type FloatRange struct {
	Min float64
	Max float64
}

// HexRange bounds a HEX attribute.
type HexRange struct {
	Min uint32
	Max uint32
}

// EnumRange lists the labels of an ENUM attribute in declaration order.
type EnumRange struct {
	Labels []string
}

func (IntRange) Kind() ValueKind   { return KindInt }
func (FloatRange) Kind() ValueKind { return KindFloat }
func (HexRange) Kind() ValueKind   { return KindHex }
func (EnumRange) Kind() ValueKind  { return KindEnum }

func (IntRange) isRange()   {}
func (FloatRange) isRange() {}
func (HexRange) isRange()   {}
func (EnumRange) isRange()  {}

// CloneRange returns an independent copy of r. A nil range clones to nil.
func CloneRange(r Range) Range {
	switch x := r.(type) {
	case nil:
		return nil
	case IntRange, FloatRange, HexRange:
		return x
	case EnumRange:
		return EnumRange{Labels: cloneNames(x.Labels)}
	default:
		panic(fmt.Sprintf("dbc: unknown attribute range type %T", r))
	}
}
