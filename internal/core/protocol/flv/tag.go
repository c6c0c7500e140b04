// If you are AI: This file defines the in-memory FLV tag.
// A Tag is one audio frame, video frame, or script record; Type selects the variant.

package flv

// Tag represents an FLV tag (audio, video, or script).
// Audio is meaningful only for TagTypeAudio and Video only for TagTypeVideo.
// Ownership: The tag exclusively owns Payload. Constructors and Decode copy
// their input, and Encode never retains a reference to it.
// An empty payload is always held as nil: constructors, Clone, and Decode all
// return nil for a zero-length payload, so compare payloads by length or with
// bytes.Equal rather than expecting []byte{} back.
type Tag struct {
	Type      TagType
	Timestamp uint32 // Milliseconds since stream start, full 32 bits
	Offset    int64  // Byte position in the containing stream, not wire data
	Audio     AudioHeader
	Video     VideoHeader
	Payload   []byte
}

// NewAudioTag creates an audio tag with a private copy of payload.
func NewAudioTag(timestamp uint32, header AudioHeader, payload []byte) *Tag {
	return &Tag{
		Type:      TagTypeAudio,
		Timestamp: timestamp,
		Audio:     header,
		Payload:   clonePayload(payload),
	}
}

// NewVideoTag creates a video tag with a private copy of payload.
func NewVideoTag(timestamp uint32, header VideoHeader, payload []byte) *Tag {
	return &Tag{
		Type:      TagTypeVideo,
		Timestamp: timestamp,
		Video:     header,
		Payload:   clonePayload(payload),
	}
}

// NewScriptTag creates a script tag. The payload is an opaque AMF blob.
func NewScriptTag(timestamp uint32, payload []byte) *Tag {
	return &Tag{
		Type:      TagTypeScript,
		Timestamp: timestamp,
		Payload:   clonePayload(payload),
	}
}

// clonePayload returns a private copy of b. Empty input yields nil.
func clonePayload(b []byte) []byte {
	if len(b) == 0 {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}

// Clone returns a deep copy of the tag.
func (t *Tag) Clone() *Tag {
	c := *t
	c.Payload = clonePayload(t.Payload)
	return &c
}

// TimestampBase returns the low 24 bits written to the header timestamp slot.
func (t *Tag) TimestampBase() uint32 {
	return t.Timestamp & maxUint24
}

// TimestampExtended returns the high byte written to the extended timestamp slot.
func (t *Tag) TimestampExtended() uint8 {
	return uint8(t.Timestamp >> 24)
}

// descriptorSize returns the number of descriptor bytes preceding the payload.
func (t *Tag) descriptorSize() int {
	if t.Type == TagTypeAudio || t.Type == TagTypeVideo {
		return 1
	}
	return 0
}

// DataSize returns the length of the encoded variant body.
// It is always derived from the current fields, never stored.
func (t *Tag) DataSize() int {
	return t.descriptorSize() + len(t.Payload)
}

// Header returns the tag header that Encode would emit.
func (t *Tag) Header() TagHeader {
	return TagHeader{
		Type:              t.Type,
		DataSize:          uint32(t.DataSize()),
		Timestamp:         t.TimestampBase(),
		TimestampExtended: t.TimestampExtended(),
	}
}

// Known reports whether the variant descriptor decoded without Unknown sentinels.
// Script tags are always known.
func (t *Tag) Known() bool {
	switch t.Type {
	case TagTypeAudio:
		return t.Audio.Known()
	case TagTypeVideo:
		return t.Video.Known()
	default:
		return true
	}
}

// IsKeyframe returns true for video tags carrying a key or generated key frame.
func (t *Tag) IsKeyframe() bool {
	return t.Type == TagTypeVideo &&
		(t.Video.FrameType == FrameTypeKey || t.Video.FrameType == FrameTypeGeneratedKey)
}

// IsSequenceHeader returns true for AAC or AVC decoder configuration tags.
// Both codecs signal it with packet type 0 in the first payload byte.
func (t *Tag) IsSequenceHeader() bool {
	if len(t.Payload) == 0 {
		return false
	}
	switch t.Type {
	case TagTypeAudio:
		return t.Audio.Format == SoundFormatAAC && t.Payload[0] == AACPacketTypeSequenceHeader
	case TagTypeVideo:
		return t.Video.Codec == VideoCodecAVC && t.Payload[0] == AVCPacketTypeSequenceHeader
	default:
		return false
	}
}
