// If you are AI: This file implements tag decoding from bytes back into a Tag.
// Decoding may run in one call or in two phases (header first, then body).

package flv

import (
	"fmt"
)

// Decode decodes one tag from the start of b.
// Returns the tag and the number of bytes consumed (11 + data size).
// Returns ErrMalformedHeader or ErrTruncatedBody; trailing bytes are ignored.
func Decode(b []byte) (*Tag, int, error) {
	h, err := DecodeTagHeader(b)
	if err != nil {
		return nil, 0, err
	}
	end := TagHeaderSize + int(h.DataSize)
	if len(b) < end {
		return nil, 0, fmt.Errorf("%w: header declares %d bytes, %d available",
			ErrTruncatedBody, h.DataSize, len(b)-TagHeaderSize)
	}
	tag, err := DecodeBody(h, b[TagHeaderSize:end])
	if err != nil {
		return nil, 0, err
	}
	return tag, end, nil
}

// DecodeBody builds a tag from a decoded header and its body bytes.
// body must hold at least h.DataSize bytes; extra bytes are ignored.
// The payload is copied, so body may be reused by the caller.
func DecodeBody(h TagHeader, body []byte) (*Tag, error) {
	if uint32(len(body)) < h.DataSize {
		return nil, fmt.Errorf("%w: header declares %d bytes, %d available",
			ErrTruncatedBody, h.DataSize, len(body))
	}
	body = body[:h.DataSize]

	tag := &Tag{
		Type:      h.Type,
		Timestamp: h.Time(),
	}

	switch h.Type {
	case TagTypeScript:
		tag.Payload = clonePayload(body)
		return tag, nil
	case TagTypeAudio, TagTypeVideo:
		if len(body) == 0 {
			return nil, fmt.Errorf("%w: %s tag has no descriptor byte", ErrTruncatedBody, h.Type)
		}
		if h.Type == TagTypeAudio {
			tag.Audio = ParseAudioHeader(body[0])
		} else {
			tag.Video = ParseVideoHeader(body[0])
		}
		tag.Payload = clonePayload(body[1:])
		return tag, nil
	default:
		return nil, fmt.Errorf("%w: unknown tag type %d", ErrMalformedHeader, h.Type)
	}
}
