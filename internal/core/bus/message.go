// If you are AI: This file defines MediaMessage, the capture-side unit handed to the tag muxer.
// Payload memory comes from a pool; the FLV muxer copies out of it before building a tag.

package bus

import (
	"sync"
)

// MessageType represents the type of media message.
type MessageType uint8

const (
	// MessageTypeAudio represents an audio frame.
	MessageTypeAudio MessageType = iota
	// MessageTypeVideo represents a video frame.
	MessageTypeVideo
	// MessageTypeMetadata represents metadata or script data.
	MessageTypeMetadata
)

// MediaMessage represents one compressed media unit produced by a capture or
// transcode stage. Payload is an FLV tag body: the descriptor byte for audio
// and video followed by codec data, or an AMF0 blob for metadata.
// Ownership: The message owns the payload buffer until ReleaseMessage.
type MediaMessage struct {
	Type      MessageType // Type of media (audio, video, metadata)
	Timestamp uint32      // Milliseconds since stream start
	Payload   []byte      // Tag body (owned by message, returned to pool on release)
}

// messagePool is a sync.Pool for MediaMessage instances.
var messagePool = sync.Pool{
	New: func() interface{} {
		return &MediaMessage{}
	},
}

// AcquireMessage acquires a MediaMessage from the pool.
// The caller must call ReleaseMessage when done to return it to the pool.
func AcquireMessage() *MediaMessage {
	msg := messagePool.Get().(*MediaMessage)
	msg.Type = 0
	msg.Timestamp = 0
	msg.Payload = nil
	return msg
}

// ReleaseMessage returns a MediaMessage and its payload buffer to the pools.
// The message and its payload must not be used after release.
func ReleaseMessage(msg *MediaMessage) {
	if msg == nil {
		return
	}
	ReleasePayload(msg.Payload)
	msg.Payload = nil
	messagePool.Put(msg)
}

// payloadPool is a sync.Pool for payload buffers.
var payloadPool = sync.Pool{
	New: func() interface{} {
		// Preallocate 64KB buffer for typical frame sizes
		buf := make([]byte, 0, 64*1024)
		return &buf
	},
}

// AcquirePayload acquires a zero-length payload buffer from the pool.
func AcquirePayload() []byte {
	bufPtr := payloadPool.Get().(*[]byte)
	return (*bufPtr)[:0]
}

// ReleasePayload returns a payload buffer to the pool.
// Only buffers up to 256KB are pooled to avoid memory bloat.
func ReleasePayload(buf []byte) {
	if buf == nil || cap(buf) > 256*1024 {
		return
	}
	buf = buf[:0]
	payloadPool.Put(&buf)
}

// SetPayload copies data into a pooled buffer owned by the message.
// The previous payload (if any) is released first.
func (m *MediaMessage) SetPayload(data []byte) {
	ReleasePayload(m.Payload)
	m.Payload = append(AcquirePayload(), data...)
}

// Clone creates a deep copy of the message with a new pooled payload.
// Both the original and clone must be released independently.
func (m *MediaMessage) Clone() *MediaMessage {
	clone := AcquireMessage()
	clone.Type = m.Type
	clone.Timestamp = m.Timestamp
	if len(m.Payload) > 0 {
		clone.SetPayload(m.Payload)
	}
	return clone
}

// String returns a human-readable representation of the message type.
func (t MessageType) String() string {
	switch t {
	case MessageTypeAudio:
		return "audio"
	case MessageTypeVideo:
		return "video"
	case MessageTypeMetadata:
		return "metadata"
	default:
		return "unknown"
	}
}
