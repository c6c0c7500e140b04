// If you are AI: This file converts between bus MediaMessages and FLV tags.
// Message payloads are tag bodies; tags never alias the pooled message buffer.

package flv

import (
	"fmt"

	"flvkit/internal/core/bus"
)

// messageTagTypes maps bus message types to FLV tag types.
var messageTagTypes = map[bus.MessageType]TagType{
	bus.MessageTypeAudio:    TagTypeAudio,
	bus.MessageTypeVideo:    TagTypeVideo,
	bus.MessageTypeMetadata: TagTypeScript,
}

// MuxMessage converts a bus MediaMessage into an FLV tag.
// The descriptor byte is parsed and the payload is copied, so the message
// can be released immediately afterwards.
// Returns ErrMalformedHeader for an unsupported message type and
// ErrTruncatedBody for an audio or video message without a descriptor byte.
func MuxMessage(msg *bus.MediaMessage) (*Tag, error) {
	if msg == nil {
		return nil, fmt.Errorf("%w: nil message", ErrMalformedHeader)
	}
	tagType, ok := messageTagTypes[msg.Type]
	if !ok {
		return nil, fmt.Errorf("%w: unsupported message type %s", ErrMalformedHeader, msg.Type)
	}
	h := TagHeader{
		Type:              tagType,
		DataSize:          uint32(len(msg.Payload)),
		Timestamp:         msg.Timestamp & maxUint24,
		TimestampExtended: uint8(msg.Timestamp >> 24),
	}
	return DecodeBody(h, msg.Payload)
}

// DemuxTag converts an FLV tag into a pooled bus MediaMessage.
// The caller owns the returned message and must release it.
// Allocation: Message and payload come from the bus pools.
func DemuxTag(t *Tag) (*bus.MediaMessage, error) {
	body, err := EncodeBody(t)
	if err != nil {
		return nil, err
	}

	msg := bus.AcquireMessage()
	switch t.Type {
	case TagTypeAudio:
		msg.Type = bus.MessageTypeAudio
	case TagTypeVideo:
		msg.Type = bus.MessageTypeVideo
	default:
		msg.Type = bus.MessageTypeMetadata
	}
	msg.Timestamp = t.Timestamp
	msg.SetPayload(body)
	return msg, nil
}
