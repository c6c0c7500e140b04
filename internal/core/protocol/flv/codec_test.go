// If you are AI: This file tests the tag encoder and decoder against the FLV wire layout.

package flv

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aacStereo() AudioHeader {
	return AudioHeader{
		Format:   SoundFormatAAC,
		Rate:     SoundRate44kHz,
		Size:     SoundSize16Bit,
		Channels: SoundTypeStereo,
	}
}

func TestRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		tag  *Tag
	}{
		{"audio", NewAudioTag(40, aacStereo(), []byte{0x01, 0x21, 0x10})},
		{"audio empty", NewAudioTag(0, aacStereo(), nil)},
		{"audio pcm mono", NewAudioTag(1, AudioHeader{Format: SoundFormatPCM, Rate: SoundRate5_5kHz, Size: SoundSize8Bit, Channels: SoundTypeMono}, []byte{0x80})},
		{"video key", NewVideoTag(33, VideoHeader{FrameType: FrameTypeKey, Codec: VideoCodecAVC}, []byte{0x01, 0x00, 0x00, 0x00, 0x65})},
		{"video empty", NewVideoTag(66, VideoHeader{FrameType: FrameTypeInter, Codec: VideoCodecVP6}, nil)},
		{"video command", NewVideoTag(99, VideoHeader{FrameType: FrameTypeCommand, Codec: VideoCodecScreenVideo2}, []byte{0x00})},
		{"script", NewScriptTag(0, []byte{0x02, 0x00, 0x01, 'x'})},
		{"script empty", NewScriptTag(5, nil)},
		{"extended timestamp", NewAudioTag(0x12345678, aacStereo(), []byte{0x01})},
		{"max timestamp", NewVideoTag(0xFFFFFFFF, VideoHeader{FrameType: FrameTypeDisposable, Codec: VideoCodecSorensonH263}, []byte{0xAA})},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			encoded, err := Encode(tt.tag)
			require.NoError(t, err)

			decoded, n, err := Decode(encoded)
			require.NoError(t, err)
			assert.Equal(t, len(encoded), n)
			assert.Equal(t, tt.tag, decoded)
		})
	}
}

func TestRoundTripIgnoresOffset(t *testing.T) {
	tag := NewVideoTag(10, VideoHeader{FrameType: FrameTypeKey, Codec: VideoCodecAVC}, []byte{0x01})
	tag.Offset = 4096

	encoded, err := Encode(tag)
	require.NoError(t, err)
	decoded, _, err := Decode(encoded)
	require.NoError(t, err)

	assert.Equal(t, int64(0), decoded.Offset)
	decoded.Offset = tag.Offset
	assert.Equal(t, tag, decoded)
}

func TestEncodeSizeInvariant(t *testing.T) {
	for _, size := range []int{0, 1, 255, 4096, 70000} {
		payload := bytes.Repeat([]byte{0x5A}, size)
		for _, tag := range []*Tag{
			NewAudioTag(0, aacStereo(), payload),
			NewVideoTag(0, VideoHeader{FrameType: FrameTypeInter, Codec: VideoCodecAVC}, payload),
			NewScriptTag(0, payload),
		} {
			encoded, err := Encode(tag)
			require.NoError(t, err)
			assert.Equal(t, TagHeaderSize+tag.DataSize(), len(encoded))

			h, err := DecodeTagHeader(encoded)
			require.NoError(t, err)
			assert.Equal(t, uint32(len(encoded)-TagHeaderSize), h.DataSize)
		}
	}
}

func TestEncodeTimestampSplit(t *testing.T) {
	tests := []struct {
		timestamp uint32
		base      [3]byte
		extended  byte
	}{
		{0, [3]byte{0, 0, 0}, 0},
		{0xFFFFFF, [3]byte{0xFF, 0xFF, 0xFF}, 0},
		{16777216, [3]byte{0, 0, 0}, 1},
		{16777217, [3]byte{0, 0, 1}, 1},
		{0x7F000102, [3]byte{0, 1, 2}, 0x7F},
	}

	for _, tt := range tests {
		tag := NewAudioTag(tt.timestamp, aacStereo(), nil)
		assert.Equal(t, tt.timestamp&0xFFFFFF, tag.TimestampBase())
		assert.Equal(t, tt.extended, tag.TimestampExtended())

		encoded, err := Encode(tag)
		require.NoError(t, err)
		assert.Equal(t, tt.base[:], encoded[4:7], "timestamp %d", tt.timestamp)
		assert.Equal(t, tt.extended, encoded[7], "timestamp %d", tt.timestamp)
	}
}

func TestAudioDescriptorPacking(t *testing.T) {
	h := aacStereo()
	expected := byte(SoundFormatAAC)<<4 | byte(SoundRate44kHz)<<2 | byte(SoundSize16Bit)<<1 | byte(SoundTypeStereo)
	require.Equal(t, byte(0xAF), expected)

	b, err := h.Byte()
	require.NoError(t, err)
	assert.Equal(t, expected, b)
	assert.Equal(t, h, ParseAudioHeader(b))

	encoded, err := Encode(NewAudioTag(0, h, []byte{0x01}))
	require.NoError(t, err)
	assert.Equal(t, expected, encoded[TagHeaderSize])
}

func TestAudioDescriptorAllCodes(t *testing.T) {
	for i := 0; i < 256; i++ {
		h := ParseAudioHeader(byte(i))
		if !h.Known() {
			assert.Equal(t, SoundFormatUnknown, h.Format, "byte 0x%02x", i)
			continue
		}
		b, err := h.Byte()
		require.NoError(t, err)
		assert.Equal(t, byte(i), b)
	}
}

func TestVideoDescriptorPacking(t *testing.T) {
	h := VideoHeader{FrameType: FrameTypeKey, Codec: VideoCodecAVC}
	b, err := h.Byte()
	require.NoError(t, err)
	assert.Equal(t, byte(0x17), b)
	assert.Equal(t, h, ParseVideoHeader(b))
	assert.True(t, IsVideoKeyframe([]byte{b}))
}

func TestDecodeUnknownVideoCodec(t *testing.T) {
	// Key frame with codec nibble 12, outside the known table
	data := []byte{
		byte(TagTypeVideo), 0x00, 0x00, 0x03,
		0x00, 0x00, 0x10, 0x00,
		0x00, 0x00, 0x00,
		0x1C, 0xDE, 0xAD,
	}

	tag, n, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, len(data), n)
	assert.Equal(t, FrameTypeKey, tag.Video.FrameType)
	assert.Equal(t, VideoCodecUnknown, tag.Video.Codec)
	assert.Equal(t, []byte{0xDE, 0xAD}, tag.Payload)
	assert.False(t, tag.Known())

	// Unknown codes cannot be packed back into a nibble
	_, err = Encode(tag)
	assert.ErrorIs(t, err, ErrFieldOutOfRange)
}

func TestDecodeUnknownSoundFormat(t *testing.T) {
	// Sound format 13 is unassigned
	data := []byte{
		byte(TagTypeAudio), 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x00,
		0x00, 0x00, 0x00,
		0xD3,
	}
	tag, _, err := Decode(data)
	require.NoError(t, err)
	assert.Equal(t, SoundFormatUnknown, tag.Audio.Format)
	assert.Equal(t, SoundRate5_5kHz, tag.Audio.Rate)
	assert.Equal(t, SoundSize16Bit, tag.Audio.Size)
	assert.Equal(t, SoundTypeStereo, tag.Audio.Channels)
}

func TestDecodeTruncatedBody(t *testing.T) {
	header, err := TagHeader{Type: TagTypeVideo, DataSize: 100}.Bytes()
	require.NoError(t, err)
	data := append(header, bytes.Repeat([]byte{0x17}, 50)...)

	tag, n, err := Decode(data)
	assert.ErrorIs(t, err, ErrTruncatedBody)
	assert.Nil(t, tag)
	assert.Equal(t, 0, n)
}

func TestDecodeMissingDescriptor(t *testing.T) {
	for _, tagType := range []TagType{TagTypeAudio, TagTypeVideo} {
		header, err := TagHeader{Type: tagType}.Bytes()
		require.NoError(t, err)
		_, _, err = Decode(header)
		assert.ErrorIs(t, err, ErrTruncatedBody)
	}

	// Script tags may be empty
	header, err := TagHeader{Type: TagTypeScript}.Bytes()
	require.NoError(t, err)
	tag, n, err := Decode(header)
	require.NoError(t, err)
	assert.Equal(t, TagHeaderSize, n)
	assert.Empty(t, tag.Payload)
}

func TestZeroPayloadAudioTag(t *testing.T) {
	tag := NewAudioTag(0, aacStereo(), []byte{})
	encoded, err := Encode(tag)
	require.NoError(t, err)
	assert.Len(t, encoded, 12)
	assert.Equal(t, 1, tag.DataSize())

	decoded, n, err := Decode(encoded)
	require.NoError(t, err)
	assert.Equal(t, 12, n)
	assert.Empty(t, decoded.Payload)
	assert.Equal(t, aacStereo(), decoded.Audio)
}

func TestEmptyPayloadIsNil(t *testing.T) {
	handBuilt := &Tag{Type: TagTypeScript, Timestamp: 7, Payload: []byte{}}
	encoded, err := Encode(handBuilt)
	require.NoError(t, err)

	decoded, _, err := Decode(encoded)
	require.NoError(t, err)
	assert.Nil(t, decoded.Payload)
	assert.Nil(t, handBuilt.Clone().Payload)
	assert.Nil(t, NewVideoTag(0, VideoHeader{FrameType: FrameTypeKey, Codec: VideoCodecAVC}, []byte{}).Payload)
}

func TestDecodeConsumesExactlyOneTag(t *testing.T) {
	first, err := Encode(NewAudioTag(1, aacStereo(), []byte{0x01, 0x02}))
	require.NoError(t, err)
	second, err := Encode(NewScriptTag(2, []byte{0x05}))
	require.NoError(t, err)
	stream := append(append([]byte{}, first...), second...)

	tag, n, err := Decode(stream)
	require.NoError(t, err)
	assert.Equal(t, len(first), n)
	assert.Equal(t, TagTypeAudio, tag.Type)

	tag, n, err = Decode(stream[n:])
	require.NoError(t, err)
	assert.Equal(t, len(second), n)
	assert.Equal(t, TagTypeScript, tag.Type)
}

func TestDecodeDoesNotAliasInput(t *testing.T) {
	encoded, err := Encode(NewVideoTag(0, VideoHeader{FrameType: FrameTypeKey, Codec: VideoCodecAVC}, []byte{0x01, 0x02}))
	require.NoError(t, err)

	tag, _, err := Decode(encoded)
	require.NoError(t, err)
	encoded[TagHeaderSize+1] = 0xFF
	assert.Equal(t, []byte{0x01, 0x02}, tag.Payload)
}

func TestEncodeDoesNotRetainPayload(t *testing.T) {
	tag := NewScriptTag(0, []byte{0x01, 0x02})
	encoded, err := Encode(tag)
	require.NoError(t, err)

	tag.Payload[0] = 0xFF
	assert.Equal(t, byte(0x01), encoded[TagHeaderSize])
}

func TestConstructorsCopyPayload(t *testing.T) {
	payload := []byte{0x01, 0x02}
	tag := NewAudioTag(0, aacStereo(), payload)
	payload[0] = 0xFF
	assert.Equal(t, []byte{0x01, 0x02}, tag.Payload)

	clone := tag.Clone()
	clone.Payload[1] = 0xEE
	assert.Equal(t, []byte{0x01, 0x02}, tag.Payload)
}

func TestEncodeRejectsInvalidTags(t *testing.T) {
	_, err := Encode(nil)
	assert.ErrorIs(t, err, ErrMalformedHeader)

	_, err = Encode(&Tag{Type: TagType(7)})
	assert.ErrorIs(t, err, ErrFieldOutOfRange)

	_, err = Encode(&Tag{Type: TagTypeAudio, Audio: AudioHeader{Format: SoundFormatUnknown}})
	assert.ErrorIs(t, err, ErrFieldOutOfRange)

	_, err = Encode(&Tag{Type: TagTypeAudio, Audio: AudioHeader{Rate: SoundRate(4)}})
	assert.ErrorIs(t, err, ErrFieldOutOfRange)

	_, err = Encode(&Tag{Type: TagTypeScript, Payload: make([]byte, 1<<24)})
	assert.ErrorIs(t, err, ErrFieldOutOfRange)
}

func TestAppendTagLeavesDstOnError(t *testing.T) {
	dst := []byte{0x01}
	out, err := AppendTag(dst, &Tag{Type: TagTypeVideo, Video: VideoHeader{FrameType: FrameTypeUnknown}})
	assert.ErrorIs(t, err, ErrFieldOutOfRange)
	assert.Equal(t, dst, out)
}

func TestEncodeBody(t *testing.T) {
	body, err := EncodeBody(NewVideoTag(0, VideoHeader{FrameType: FrameTypeKey, Codec: VideoCodecAVC}, []byte{0x00}))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x17, 0x00}, body)
}

func TestTagFlags(t *testing.T) {
	seq := NewVideoTag(0, VideoHeader{FrameType: FrameTypeKey, Codec: VideoCodecAVC}, []byte{AVCPacketTypeSequenceHeader})
	assert.True(t, seq.IsKeyframe())
	assert.True(t, seq.IsSequenceHeader())

	nalu := NewVideoTag(0, VideoHeader{FrameType: FrameTypeInter, Codec: VideoCodecAVC}, []byte{AVCPacketTypeNALU})
	assert.False(t, nalu.IsKeyframe())
	assert.False(t, nalu.IsSequenceHeader())

	aacSeq := NewAudioTag(0, aacStereo(), []byte{AACPacketTypeSequenceHeader, 0x12, 0x10})
	assert.True(t, aacSeq.IsSequenceHeader())

	mp3 := NewAudioTag(0, AudioHeader{Format: SoundFormatMP3}, []byte{0x00})
	assert.False(t, mp3.IsSequenceHeader())
}
