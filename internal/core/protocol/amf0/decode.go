// If you are AI: This file implements AMF0 decoding for script tag payloads.
// Only types seen in FLV metadata are decoded; references and typed objects are rejected.

package amf0

import (
	"bytes"
	"encoding/binary"
	"errors"
	"io"
	"time"
)

var (
	ErrUnexpectedType = errors.New("unexpected AMF0 type")
	ErrInvalidData    = errors.New("invalid AMF0 data")
)

// maxNesting bounds recursion through nested objects and arrays.
const maxNesting = 64

// Decode reads and decodes a single AMF0 value from the reader.
// Returns the decoded value and any error.
func Decode(r io.Reader) (Value, error) {
	return decodeValue(r, 0)
}

// DecodeAll decodes every value in b, as found in a script tag payload.
func DecodeAll(b []byte) ([]Value, error) {
	r := bytes.NewReader(b)
	var vals []Value
	for r.Len() > 0 {
		val, err := Decode(r)
		if err != nil {
			return vals, err
		}
		vals = append(vals, val)
	}
	return vals, nil
}

// decodeValue decodes one value at the given nesting depth.
func decodeValue(r io.Reader, depth int) (Value, error) {
	if depth > maxNesting {
		return nil, ErrInvalidData
	}

	var typeMarker byte
	if err := binary.Read(r, binary.BigEndian, &typeMarker); err != nil {
		return nil, err
	}

	switch typeMarker {
	case TypeNumber:
		return decodeNumber(r)
	case TypeBoolean:
		return decodeBoolean(r)
	case TypeString:
		return decodeString(r)
	case TypeLongString:
		return decodeLongString(r)
	case TypeNull, TypeUndefined:
		return nil, nil
	case TypeObject:
		obj, err := decodeProperties(r, depth)
		if err != nil {
			return nil, err
		}
		return Object(obj), nil
	case TypeECMAArray:
		return decodeECMAArray(r, depth)
	case TypeStrictArray:
		return decodeStrictArray(r, depth)
	case TypeDate:
		return decodeDate(r)
	default:
		return nil, ErrUnexpectedType
	}
}

// DecodeString reads an AMF0 string value.
func DecodeString(r io.Reader) (string, error) {
	var typeMarker byte
	if err := binary.Read(r, binary.BigEndian, &typeMarker); err != nil {
		return "", err
	}
	if typeMarker != TypeString {
		return "", ErrUnexpectedType
	}
	return decodeString(r)
}

// decodeNumber decodes an AMF0 number (double precision float64).
func decodeNumber(r io.Reader) (float64, error) {
	var num float64
	err := binary.Read(r, binary.BigEndian, &num)
	return num, err
}

// decodeBoolean decodes an AMF0 boolean.
func decodeBoolean(r io.Reader) (bool, error) {
	var b byte
	if err := binary.Read(r, binary.BigEndian, &b); err != nil {
		return false, err
	}
	return b != 0, nil
}

// decodeString decodes an AMF0 string.
func decodeString(r io.Reader) (string, error) {
	var length uint16
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return "", err
	}
	return readString(r, int(length))
}

// decodeLongString decodes an AMF0 long string.
func decodeLongString(r io.Reader) (string, error) {
	var length uint32
	if err := binary.Read(r, binary.BigEndian, &length); err != nil {
		return "", err
	}
	return readString(r, int(length))
}

// readString reads n bytes as a string.
func readString(r io.Reader, n int) (string, error) {
	if n == 0 {
		return "", nil
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf), nil
}

// decodeDate decodes an AMF0 date. The time zone field is ignored.
func decodeDate(r io.Reader) (time.Time, error) {
	var millis float64
	if err := binary.Read(r, binary.BigEndian, &millis); err != nil {
		return time.Time{}, err
	}
	var tz int16
	if err := binary.Read(r, binary.BigEndian, &tz); err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(int64(millis)).UTC(), nil
}

// decodeProperties decodes key-value pairs up to the object end marker.
func decodeProperties(r io.Reader, depth int) (map[string]Value, error) {
	props := make(map[string]Value)
	for {
		key, err := decodeString(r)
		if err != nil {
			return nil, err
		}
		if key == "" {
			// Object end marker
			var endMarker byte
			if err := binary.Read(r, binary.BigEndian, &endMarker); err != nil {
				return nil, err
			}
			if endMarker != TypeObjectEnd {
				return nil, ErrInvalidData
			}
			return props, nil
		}
		value, err := decodeValue(r, depth+1)
		if err != nil {
			return nil, err
		}
		props[key] = value
	}
}

// decodeECMAArray decodes an AMF0 ECMA array.
// The count is advisory; properties run until the end marker.
func decodeECMAArray(r io.Reader, depth int) (ECMAArray, error) {
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	props, err := decodeProperties(r, depth)
	if err != nil {
		return nil, err
	}
	return ECMAArray(props), nil
}

// decodeStrictArray decodes an AMF0 strict array.
func decodeStrictArray(r io.Reader, depth int) (Array, error) {
	var count uint32
	if err := binary.Read(r, binary.BigEndian, &count); err != nil {
		return nil, err
	}
	arr := make(Array, 0, min(count, 1024))
	for i := uint32(0); i < count; i++ {
		val, err := decodeValue(r, depth+1)
		if err != nil {
			return nil, err
		}
		arr = append(arr, val)
	}
	return arr, nil
}
