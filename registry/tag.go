// Package registry holds the server-side tag store: the typed tag
// record, the in-memory registry that maps tag id to tag, and the
// concurrency discipline that serializes mutation of that store.
package registry

import (
	"encoding/binary"
	"fmt"
	"math"

	"fillwire.dev/fillwire/wire"
)

// DataType is the fixed type of a tag's value for its lifetime.
type DataType int

const (
	Integer DataType = iota
	Unsigned
	Float
	String
)

func (t DataType) String() string {
	switch t {
	case Integer:
		return "Integer"
	case Unsigned:
		return "Unsigned"
	case Float:
		return "Float"
	case String:
		return "String"
	default:
		return "UnknownDataType"
	}
}

// Access is the per-tag operation that a client is permitted to
// perform; it is the only authorization the protocol provides.
type Access int

const (
	ReadOnly Access = iota
	WriteOnly
	ReadWrite
)

func (a Access) Readable() bool { return a == ReadOnly || a == ReadWrite }
func (a Access) Writable() bool { return a == WriteOnly || a == ReadWrite }

// Value is a tagged union consistent with a Tag's DataType: only the
// variant matching DataType is ever observable (spec.md §3.4 invariant
// a). Implemented as an interface with one concrete type per DataType,
// per the redesign flag in spec.md §9, replacing a record with one
// field per primitive type plus a discriminator.
type Value interface {
	Type() DataType
	// EncodePayload renders the value into the 4-byte wire payload
	// slot. String values encode to the zero payload; their body
	// travels in separate frames (the protocol package's ReadString and
	// WriteString handlers).
	EncodePayload() [4]byte
}

type IntValue int32

func (IntValue) Type() DataType { return Integer }
func (v IntValue) EncodePayload() [4]byte {
	var p [4]byte
	binary.LittleEndian.PutUint32(p[:], uint32(v))
	return p
}

type UintValue uint32

func (UintValue) Type() DataType { return Unsigned }
func (v UintValue) EncodePayload() [4]byte {
	var p [4]byte
	binary.LittleEndian.PutUint32(p[:], uint32(v))
	return p
}

type FloatValue float32

func (FloatValue) Type() DataType { return Float }
func (v FloatValue) EncodePayload() [4]byte {
	var p [4]byte
	binary.LittleEndian.PutUint32(p[:], math.Float32bits(float32(v)))
	return p
}

// StringValue holds a tag's string body out of band; its wire payload
// slot is always zero, since the string itself travels over the
// multi-frame ReadString/WriteString exchange.
type StringValue string

func (StringValue) Type() DataType { return String }
func (StringValue) EncodePayload() [4]byte { return wire.ZeroPayload }

// DecodeValue parses a 4-byte numeric payload into the Value variant
// matching dataType. String is not handled here: its payload carries a
// UTF-16 code-unit count, decoded by the ReadString/WriteString
// handlers directly.
func DecodeValue(dataType DataType, payload [4]byte) (Value, error) {
	switch dataType {
	case Integer:
		return IntValue(int32(binary.LittleEndian.Uint32(payload[:]))), nil
	case Unsigned:
		return UintValue(binary.LittleEndian.Uint32(payload[:])), nil
	case Float:
		return FloatValue(math.Float32frombits(binary.LittleEndian.Uint32(payload[:]))), nil
	default:
		return nil, fmt.Errorf("registry: cannot decode numeric payload for %v", dataType)
	}
}

// Tag is a single named, typed data point on the server.
type Tag struct {
	ID     uint16
	Name   string
	Type   DataType
	Access Access
	value  Value
}

// NewTag constructs a Tag, rejecting a value whose Type doesn't match typ.
func NewTag(id uint16, name string, typ DataType, access Access, value Value) (Tag, error) {
	if value.Type() != typ {
		return Tag{}, fmt.Errorf("registry: value type %v does not match tag type %v", value.Type(), typ)
	}
	return Tag{ID: id, Name: name, Type: typ, Access: access, value: value}, nil
}

// Value returns the tag's current value.
func (t Tag) Value() Value { return t.value }

// EncodeValue renders the tag's current value into the 4-byte wire
// payload slot (spec.md §4.C "value_to_payload").
func (t Tag) EncodeValue() [4]byte {
	return t.value.EncodePayload()
}

// WithValue returns a copy of t with its value replaced, after
// checking the replacement's type against t.Type (spec.md §4.C
// "apply_payload"; invariant c permits rejecting type-changing
// updates, which fillwire does).
func (t Tag) WithValue(v Value) (Tag, error) {
	if v.Type() != t.Type {
		return Tag{}, fmt.Errorf("registry: cannot change tag %d from %v to %v", t.ID, t.Type, v.Type())
	}
	t.value = v
	return t, nil
}

// ApplyPayload decodes a numeric 4-byte payload per t.Type and returns
// the updated tag. It is an error to call this on a String tag; string
// values are applied via WithValue(StringValue(...)) by the
// WriteString handler instead.
func (t Tag) ApplyPayload(payload [4]byte) (Tag, error) {
	v, err := DecodeValue(t.Type, payload)
	if err != nil {
		return Tag{}, err
	}
	return t.WithValue(v)
}
