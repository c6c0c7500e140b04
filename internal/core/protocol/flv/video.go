// If you are AI: This file defines the video enumerations and the video descriptor byte.
// Bit layout (MSB first): frame type (4) | codec (4).

package flv

import (
	"fmt"
)

// FrameType is the video frame type code.
type FrameType uint8

// Video frame types
const (
	FrameTypeKey          FrameType = 1
	FrameTypeInter        FrameType = 2
	FrameTypeDisposable   FrameType = 3
	FrameTypeGeneratedKey FrameType = 4
	FrameTypeCommand      FrameType = 5

	// FrameTypeUnknown is the decode fallback for codes outside the table.
	FrameTypeUnknown FrameType = 0xFF
)

// VideoCodec is the video codec code carried in the lower nibble of the descriptor.
type VideoCodec uint8

// Video codecs
const (
	VideoCodecJPEG         VideoCodec = 1
	VideoCodecSorensonH263 VideoCodec = 2
	VideoCodecScreenVideo  VideoCodec = 3
	VideoCodecVP6          VideoCodec = 4
	VideoCodecVP6Alpha     VideoCodec = 5
	VideoCodecScreenVideo2 VideoCodec = 6
	VideoCodecAVC          VideoCodec = 7

	// VideoCodecUnknown is the decode fallback for codes outside the table.
	VideoCodecUnknown VideoCodec = 0xFF
)

// parseFrameType maps a 4-bit code, returning Unknown for codes outside 1..5.
func parseFrameType(code byte) FrameType {
	if code >= byte(FrameTypeKey) && code <= byte(FrameTypeCommand) {
		return FrameType(code)
	}
	return FrameTypeUnknown
}

// parseVideoCodec maps a 4-bit code, returning Unknown for codes outside 1..7.
func parseVideoCodec(code byte) VideoCodec {
	if code >= byte(VideoCodecJPEG) && code <= byte(VideoCodecAVC) {
		return VideoCodec(code)
	}
	return VideoCodecUnknown
}

// String returns the frame type name.
func (f FrameType) String() string {
	switch f {
	case FrameTypeKey:
		return "key"
	case FrameTypeInter:
		return "inter"
	case FrameTypeDisposable:
		return "disposable"
	case FrameTypeGeneratedKey:
		return "generated-key"
	case FrameTypeCommand:
		return "command"
	default:
		return "unknown"
	}
}

// String returns the codec name.
func (c VideoCodec) String() string {
	switch c {
	case VideoCodecJPEG:
		return "jpeg"
	case VideoCodecSorensonH263:
		return "h263"
	case VideoCodecScreenVideo:
		return "screen"
	case VideoCodecVP6:
		return "vp6"
	case VideoCodecVP6Alpha:
		return "vp6-alpha"
	case VideoCodecScreenVideo2:
		return "screen2"
	case VideoCodecAVC:
		return "avc"
	default:
		return "unknown"
	}
}

// VideoHeader holds the fields packed into the video descriptor byte.
type VideoHeader struct {
	FrameType FrameType
	Codec     VideoCodec
}

// Byte packs the header into its descriptor byte.
// Returns ErrFieldOutOfRange if either code does not fit its nibble.
func (h VideoHeader) Byte() (byte, error) {
	if h.FrameType > 0x0F {
		return 0, fmt.Errorf("%w: frame type code %d exceeds 4 bits", ErrFieldOutOfRange, h.FrameType)
	}
	if h.Codec > 0x0F {
		return 0, fmt.Errorf("%w: video codec code %d exceeds 4 bits", ErrFieldOutOfRange, h.Codec)
	}
	return byte(h.FrameType)<<4 | byte(h.Codec), nil
}

// ParseVideoHeader unpacks a video descriptor byte.
// Unrecognized codes become the Unknown sentinels; it never fails.
func ParseVideoHeader(b byte) VideoHeader {
	return VideoHeader{
		FrameType: parseFrameType(b >> 4),
		Codec:     parseVideoCodec(b & 0x0F),
	}
}

// Known reports whether both fields decoded to values from their tables.
func (h VideoHeader) Known() bool {
	return h.FrameType != FrameTypeUnknown && h.Codec != VideoCodecUnknown
}
