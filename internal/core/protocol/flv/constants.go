// If you are AI: This file defines FLV container constants and tag types.

package flv

// FLV file signature
const FLVSignature = "FLV"

// FLV version
const FLVVersion = 1

// FLV header size
const FLVHeaderSize = 9

// TagHeaderSize is the size of the common header in front of every tag body.
const TagHeaderSize = 11

// PreviousTagSizeLength is the size of the back-pointer written after each tag.
const PreviousTagSizeLength = 4

// Previous tag size (4 bytes) before first tag
const FirstPreviousTagSize = 0

// maxUint24 bounds the 24-bit header fields (data size, timestamp base, stream id).
const maxUint24 = 1<<24 - 1

// TagType is the wire type code of a tag and the discriminant of Tag.
type TagType uint8

// Tag types
const (
	TagTypeAudio  TagType = 8
	TagTypeVideo  TagType = 9
	TagTypeScript TagType = 18
)

// Valid reports whether t is one of the three tag types defined by the container.
func (t TagType) Valid() bool {
	switch t {
	case TagTypeAudio, TagTypeVideo, TagTypeScript:
		return true
	default:
		return false
	}
}

// String returns a human-readable representation of the tag type.
func (t TagType) String() string {
	switch t {
	case TagTypeAudio:
		return "audio"
	case TagTypeVideo:
		return "video"
	case TagTypeScript:
		return "script"
	default:
		return "unknown"
	}
}

// Packet type constants shared by AAC and AVC payloads (first payload byte).
const (
	AACPacketTypeSequenceHeader = 0
	AACPacketTypeRaw            = 1

	AVCPacketTypeSequenceHeader = 0
	AVCPacketTypeNALU           = 1
	AVCPacketTypeEndOfSequence  = 2
)

// IsVideoKeyframe returns true if the FLV video payload represents a keyframe.
// In RTMP/FLV format: byte[0] upper nibble = frame type (1=keyframe).
func IsVideoKeyframe(body []byte) bool {
	return len(body) >= 1 && FrameType(body[0]>>4) == FrameTypeKey
}
