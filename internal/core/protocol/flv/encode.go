// If you are AI: This file implements tag encoding: header, descriptor byte, then payload.
// The data size is always recomputed from the body being written.

package flv

import (
	"fmt"
)

// Encode encodes the tag as FLV tag bytes without the trailing previous tag size.
// The result is exactly 11 + t.DataSize() bytes long.
// Allocation: One slice sized for the whole tag; the payload is copied.
func Encode(t *Tag) ([]byte, error) {
	if t == nil {
		return nil, fmt.Errorf("%w: nil tag", ErrMalformedHeader)
	}
	return AppendTag(make([]byte, 0, TagHeaderSize+t.DataSize()), t)
}

// AppendTag appends the encoded tag to dst.
// On error dst is returned unchanged.
func AppendTag(dst []byte, t *Tag) ([]byte, error) {
	if t == nil {
		return dst, fmt.Errorf("%w: nil tag", ErrMalformedHeader)
	}
	if !t.Type.Valid() {
		return dst, fmt.Errorf("%w: unknown tag type %d", ErrFieldOutOfRange, t.Type)
	}

	var descriptor []byte
	switch t.Type {
	case TagTypeAudio:
		b, err := t.Audio.Byte()
		if err != nil {
			return dst, err
		}
		descriptor = []byte{b}
	case TagTypeVideo:
		b, err := t.Video.Byte()
		if err != nil {
			return dst, err
		}
		descriptor = []byte{b}
	}

	out, err := t.Header().AppendTo(dst)
	if err != nil {
		return dst, err
	}
	out = append(out, descriptor...)
	return append(out, t.Payload...), nil
}

// EncodeBody encodes only the variant body (descriptor byte and payload).
// This is the form carried by RTMP messages and bus.MediaMessage.
func EncodeBody(t *Tag) ([]byte, error) {
	buf, err := Encode(t)
	if err != nil {
		return nil, err
	}
	return buf[TagHeaderSize:], nil
}
