// If you are AI: This file implements AMF0 encoding for script tag payloads.
// Object keys are written in sorted order so equal values encode to equal bytes.

package amf0

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sort"
	"time"
)

// Encode writes an AMF0 value to the writer.
// Integer types are widened to AMF0 numbers. Unsupported types return an error.
func Encode(w io.Writer, val Value) error {
	switch v := val.(type) {
	case float64:
		return encodeNumber(w, v)
	case float32:
		return encodeNumber(w, float64(v))
	case int:
		return encodeNumber(w, float64(v))
	case int64:
		return encodeNumber(w, float64(v))
	case uint32:
		return encodeNumber(w, float64(v))
	case bool:
		return encodeBoolean(w, v)
	case string:
		return encodeString(w, v)
	case nil:
		return encodeNull(w)
	case Object:
		return encodeProperties(w, TypeObject, v)
	case ECMAArray:
		return encodeECMAArray(w, v)
	case Array:
		return encodeArray(w, v)
	case time.Time:
		return encodeDate(w, v)
	default:
		return fmt.Errorf("%w: cannot encode %T", ErrUnexpectedType, val)
	}
}

// encodeNumber encodes an AMF0 number.
func encodeNumber(w io.Writer, num float64) error {
	if err := binary.Write(w, binary.BigEndian, byte(TypeNumber)); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, num)
}

// encodeBoolean encodes an AMF0 boolean.
func encodeBoolean(w io.Writer, b bool) error {
	if err := binary.Write(w, binary.BigEndian, byte(TypeBoolean)); err != nil {
		return err
	}
	var val byte
	if b {
		val = 1
	}
	return binary.Write(w, binary.BigEndian, val)
}

// encodeString encodes an AMF0 string, switching to a long string above 64KB.
func encodeString(w io.Writer, s string) error {
	if len(s) > math.MaxUint16 {
		if err := binary.Write(w, binary.BigEndian, byte(TypeLongString)); err != nil {
			return err
		}
		if err := binary.Write(w, binary.BigEndian, uint32(len(s))); err != nil {
			return err
		}
		_, err := io.WriteString(w, s)
		return err
	}
	if err := binary.Write(w, binary.BigEndian, byte(TypeString)); err != nil {
		return err
	}
	return writeUTF8(w, s)
}

// writeUTF8 writes a 16-bit length-prefixed string without a type marker.
func writeUTF8(w io.Writer, s string) error {
	if err := binary.Write(w, binary.BigEndian, uint16(len(s))); err != nil {
		return err
	}
	_, err := io.WriteString(w, s)
	return err
}

// encodeNull encodes an AMF0 null.
func encodeNull(w io.Writer) error {
	return binary.Write(w, binary.BigEndian, byte(TypeNull))
}

// encodeDate encodes an AMF0 date as milliseconds since the epoch with a zero time zone.
func encodeDate(w io.Writer, t time.Time) error {
	if err := binary.Write(w, binary.BigEndian, byte(TypeDate)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, float64(t.UnixMilli())); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, int16(0))
}

// encodeECMAArray encodes an AMF0 ECMA array: marker, count, then properties.
func encodeECMAArray(w io.Writer, arr ECMAArray) error {
	if err := binary.Write(w, binary.BigEndian, byte(TypeECMAArray)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(arr))); err != nil {
		return err
	}
	return writeProperties(w, arr)
}

// encodeProperties encodes a marker followed by properties and the end marker.
func encodeProperties(w io.Writer, marker byte, props map[string]Value) error {
	if err := binary.Write(w, binary.BigEndian, marker); err != nil {
		return err
	}
	return writeProperties(w, props)
}

// writeProperties writes key-value pairs in sorted key order and the object end marker.
func writeProperties(w io.Writer, props map[string]Value) error {
	keys := make([]string, 0, len(props))
	for key := range props {
		keys = append(keys, key)
	}
	sort.Strings(keys)

	for _, key := range keys {
		if len(key) == 0 || len(key) > math.MaxUint16 {
			return fmt.Errorf("%w: property key length %d", ErrInvalidData, len(key))
		}
		if err := writeUTF8(w, key); err != nil {
			return err
		}
		if err := Encode(w, props[key]); err != nil {
			return err
		}
	}
	// Object end marker
	if err := binary.Write(w, binary.BigEndian, uint16(0)); err != nil {
		return err
	}
	return binary.Write(w, binary.BigEndian, byte(TypeObjectEnd))
}

// encodeArray encodes an AMF0 strict array.
func encodeArray(w io.Writer, arr Array) error {
	if err := binary.Write(w, binary.BigEndian, byte(TypeStrictArray)); err != nil {
		return err
	}
	if err := binary.Write(w, binary.BigEndian, uint32(len(arr))); err != nil {
		return err
	}
	for _, val := range arr {
		if err := Encode(w, val); err != nil {
			return err
		}
	}
	return nil
}

// EncodeValues encodes values back to back without an enclosing array.
// Script tag payloads are such a sequence, e.g. "onMetaData" then an ECMA array.
func EncodeValues(vals ...Value) ([]byte, error) {
	var buf bytes.Buffer
	for _, val := range vals {
		if err := Encode(&buf, val); err != nil {
			return nil, err
		}
	}
	return buf.Bytes(), nil
}
