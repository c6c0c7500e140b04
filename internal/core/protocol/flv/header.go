// If you are AI: This file implements FLV file header generation and parsing.
// FLV header is written once at the start of the stream.

package flv

import (
	"encoding/binary"
	"fmt"
)

// Header flag bits
const (
	headerFlagAudio = 0x04
	headerFlagVideo = 0x01
)

// Header represents an FLV file header.
type Header struct {
	HasAudio   bool
	HasVideo   bool
	Version    uint8
	DataOffset uint32 // Offset of the first PreviousTagSize field
}

// Bytes returns the FLV header as a byte slice.
// Allocation: Pre-allocated 9-byte slice, no heap allocations.
func (h *Header) Bytes() []byte {
	header := make([]byte, FLVHeaderSize)

	// Signature "FLV" (3 bytes)
	copy(header[0:3], FLVSignature)

	// Version (1 byte)
	header[3] = FLVVersion

	// Flags (1 byte): audio and video flags
	flags := byte(0)
	if h.HasAudio {
		flags |= headerFlagAudio
	}
	if h.HasVideo {
		flags |= headerFlagVideo
	}
	header[4] = flags

	// Data offset (4 bytes, big-endian): size of this header
	binary.BigEndian.PutUint32(header[5:9], FLVHeaderSize)

	return header
}

// NewHeader creates a new FLV header with specified audio/video flags.
func NewHeader(hasAudio, hasVideo bool) *Header {
	return &Header{
		HasAudio:   hasAudio,
		HasVideo:   hasVideo,
		Version:    FLVVersion,
		DataOffset: FLVHeaderSize,
	}
}

// ParseHeader decodes a 9-byte FLV file header.
// Returns ErrMalformedFileHeader on a short buffer, bad signature, or a data
// offset smaller than the header itself.
func ParseHeader(b []byte) (*Header, error) {
	if len(b) < FLVHeaderSize {
		return nil, fmt.Errorf("%w: need %d bytes, have %d", ErrMalformedFileHeader, FLVHeaderSize, len(b))
	}
	if string(b[0:3]) != FLVSignature {
		return nil, fmt.Errorf("%w: bad signature %q", ErrMalformedFileHeader, b[0:3])
	}
	offset := binary.BigEndian.Uint32(b[5:9])
	if offset < FLVHeaderSize {
		return nil, fmt.Errorf("%w: data offset %d", ErrMalformedFileHeader, offset)
	}
	return &Header{
		HasAudio:   b[4]&headerFlagAudio != 0,
		HasVideo:   b[4]&headerFlagVideo != 0,
		Version:    b[3],
		DataOffset: offset,
	}, nil
}
