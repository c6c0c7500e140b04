// If you are AI: This file tests the 11-byte tag header codec.

package flv

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTagHeaderLayout(t *testing.T) {
	h := TagHeader{
		Type:              TagTypeVideo,
		DataSize:          0x010203,
		Timestamp:         0x040506,
		TimestampExtended: 0x07,
		StreamID:          0x123456,
	}

	b, err := h.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{
		0x09,
		0x01, 0x02, 0x03,
		0x04, 0x05, 0x06,
		0x07,
		0x00, 0x00, 0x00, // stream ID is never written
	}, b)
	assert.Equal(t, uint32(0x07040506), h.Time())
}

func TestDecodeTagHeaderToleratesStreamID(t *testing.T) {
	b := []byte{0x12, 0x00, 0x00, 0x05, 0x00, 0x00, 0x0A, 0x00, 0x00, 0x00, 0x01}

	h, err := DecodeTagHeader(b)
	require.NoError(t, err)
	assert.Equal(t, TagTypeScript, h.Type)
	assert.Equal(t, uint32(5), h.DataSize)
	assert.Equal(t, uint32(10), h.Time())
	assert.Equal(t, uint32(1), h.StreamID)

	out, err := h.Bytes()
	require.NoError(t, err)
	assert.Equal(t, []byte{0, 0, 0}, out[8:11])
}

func TestDecodeTagHeaderRejectsFilterAndReservedBits(t *testing.T) {
	for _, code := range []byte{0x28, 0xE8, 0x29, 0x32} {
		b := []byte{code, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00}
		_, err := DecodeTagHeader(b)
		assert.ErrorIs(t, err, ErrMalformedHeader, "type byte %#x", code)
	}
}

func TestDecodeRejectsEncryptedTag(t *testing.T) {
	b := []byte{0x28, 0x00, 0x00, 0x02, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0x00, 0xAF, 0x01}
	tag, n, err := Decode(b)
	assert.ErrorIs(t, err, ErrMalformedHeader)
	assert.Nil(t, tag)
	assert.Zero(t, n)
}

func TestDecodeTagHeaderErrors(t *testing.T) {
	_, err := DecodeTagHeader([]byte{0x08, 0x00, 0x00})
	assert.ErrorIs(t, err, ErrMalformedHeader)

	_, err = DecodeTagHeader(nil)
	assert.ErrorIs(t, err, ErrMalformedHeader)

	for _, code := range []byte{0, 7, 10, 17, 19, 31} {
		b := make([]byte, TagHeaderSize)
		b[0] = code
		_, err := DecodeTagHeader(b)
		assert.ErrorIs(t, err, ErrMalformedHeader, "type code %d", code)
	}
}

func TestTagHeaderOutOfRange(t *testing.T) {
	_, err := TagHeader{Type: TagTypeAudio, DataSize: 1 << 24}.Bytes()
	assert.ErrorIs(t, err, ErrFieldOutOfRange)

	_, err = TagHeader{Type: TagTypeAudio, Timestamp: 1 << 24}.Bytes()
	assert.ErrorIs(t, err, ErrFieldOutOfRange)
}

func TestTagTypeString(t *testing.T) {
	assert.Equal(t, "audio", TagTypeAudio.String())
	assert.Equal(t, "video", TagTypeVideo.String())
	assert.Equal(t, "script", TagTypeScript.String())
	assert.Equal(t, "unknown", TagType(3).String())
}
