// If you are AI: This file implements the 11-byte tag header codec shared by all tag types.
// Format: tag type (1) + data size (3) + timestamp lower (3) + timestamp upper (1) + stream ID (3)

package flv

import (
	"fmt"
)

// TagHeader is the decoded form of the common tag header.
// Timestamp holds only the low 24 bits; TimestampExtended holds the high byte.
type TagHeader struct {
	Type              TagType
	DataSize          uint32
	Timestamp         uint32
	TimestampExtended uint8
	StreamID          uint32 // Decoded for inspection only, always encoded as 0
}

// Time returns the full 32-bit timestamp in milliseconds.
func (h TagHeader) Time() uint32 {
	return uint32(h.TimestampExtended)<<24 | h.Timestamp&maxUint24
}

// AppendTo appends the encoded header to dst.
// Returns ErrFieldOutOfRange if DataSize or Timestamp do not fit 24 bits.
// Allocation: Grows dst by 11 bytes, no other allocations.
func (h TagHeader) AppendTo(dst []byte) ([]byte, error) {
	if h.DataSize > maxUint24 {
		return dst, fmt.Errorf("%w: data size %d exceeds 24 bits", ErrFieldOutOfRange, h.DataSize)
	}
	if h.Timestamp > maxUint24 {
		return dst, fmt.Errorf("%w: timestamp base %d exceeds 24 bits", ErrFieldOutOfRange, h.Timestamp)
	}
	return append(dst,
		byte(h.Type),
		// Data size (3 bytes, big-endian)
		byte(h.DataSize>>16), byte(h.DataSize>>8), byte(h.DataSize),
		// Timestamp: lower 24 bits, then upper 8 bits
		byte(h.Timestamp>>16), byte(h.Timestamp>>8), byte(h.Timestamp),
		h.TimestampExtended,
		// Stream ID (3 bytes, always 0)
		0, 0, 0,
	), nil
}

// Bytes returns the encoded header as a new 11-byte slice.
func (h TagHeader) Bytes() ([]byte, error) {
	return h.AppendTo(make([]byte, 0, TagHeaderSize))
}

// DecodeTagHeader decodes the first 11 bytes of b.
// Returns ErrMalformedHeader if b is too short or the type byte is not exactly
// audio, video, or script. Set reserved or filter bits are rejected, since a
// filtered body is encrypted. A nonzero stream ID is tolerated.
func DecodeTagHeader(b []byte) (TagHeader, error) {
	if len(b) < TagHeaderSize {
		return TagHeader{}, fmt.Errorf("%w: need %d bytes, have %d", ErrMalformedHeader, TagHeaderSize, len(b))
	}
	tagType := TagType(b[0])
	if !tagType.Valid() {
		return TagHeader{}, fmt.Errorf("%w: unknown tag type %d", ErrMalformedHeader, b[0])
	}
	return TagHeader{
		Type:              tagType,
		DataSize:          uint24(b[1:4]),
		Timestamp:         uint24(b[4:7]),
		TimestampExtended: b[7],
		StreamID:          uint24(b[8:11]),
	}, nil
}

// uint24 reads a big-endian 24-bit value from the first three bytes of b.
func uint24(b []byte) uint32 {
	return uint32(b[0])<<16 | uint32(b[1])<<8 | uint32(b[2])
}
