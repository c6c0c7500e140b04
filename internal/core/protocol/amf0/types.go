// If you are AI: This file defines AMF0 type constants and basic types.
// AMF0 is the encoding of FLV script tag payloads such as onMetaData.

package amf0

// AMF0 type markers
const (
	TypeNumber      = 0
	TypeBoolean     = 1
	TypeString      = 2
	TypeObject      = 3
	TypeNull        = 5
	TypeUndefined   = 6
	TypeReference   = 7
	TypeECMAArray   = 8
	TypeObjectEnd   = 9
	TypeStrictArray = 10
	TypeDate        = 11
	TypeLongString  = 12
	TypeXMLDocument = 15
	TypeTypedObject = 16
)

// Value represents a decoded AMF0 value.
// Decoded values are float64, bool, string, nil, Object, ECMAArray, Array, or time.Time.
type Value interface{}

// Object represents an AMF0 anonymous object (key-value pairs).
type Object map[string]Value

// ECMAArray represents an AMF0 associative array, the container used by onMetaData.
type ECMAArray map[string]Value

// Array represents an AMF0 strict array.
type Array []Value
