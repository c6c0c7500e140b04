// If you are AI: This file defines the audio enumerations and the audio descriptor byte.
// Bit layout (MSB first): format (4) | rate (2) | size (1) | channels (1).

package flv

import (
	"fmt"
)

// SoundFormat is the audio codec code carried in the upper nibble of the descriptor.
type SoundFormat uint8

// Sound formats. Codes are fixed by the container format.
const (
	SoundFormatPCM               SoundFormat = 0
	SoundFormatADPCM             SoundFormat = 1
	SoundFormatMP3               SoundFormat = 2
	SoundFormatPCMLE             SoundFormat = 3
	SoundFormatNellymoser16kMono SoundFormat = 4
	SoundFormatNellymoser8kMono  SoundFormat = 5
	SoundFormatNellymoser        SoundFormat = 6
	SoundFormatG711ALaw          SoundFormat = 7
	SoundFormatG711MuLaw         SoundFormat = 8
	SoundFormatAAC               SoundFormat = 10
	SoundFormatSpeex             SoundFormat = 11
	SoundFormatMP38k             SoundFormat = 14
	SoundFormatDeviceSpecific    SoundFormat = 15

	// SoundFormatUnknown is the decode fallback for codes outside the table.
	SoundFormatUnknown SoundFormat = 0xFF
)

// SoundRate is the sample rate class.
type SoundRate uint8

// Sample rate classes.
const (
	SoundRate5_5kHz SoundRate = 0
	SoundRate11kHz  SoundRate = 1
	SoundRate22kHz  SoundRate = 2
	SoundRate44kHz  SoundRate = 3

	SoundRateUnknown SoundRate = 0xFF
)

// SoundSize is the sample size.
type SoundSize uint8

// Sample sizes.
const (
	SoundSize8Bit  SoundSize = 0
	SoundSize16Bit SoundSize = 1

	SoundSizeUnknown SoundSize = 0xFF
)

// SoundType is the channel layout.
type SoundType uint8

// Channel layouts.
const (
	SoundTypeMono   SoundType = 0
	SoundTypeStereo SoundType = 1

	SoundTypeUnknown SoundType = 0xFF
)

var soundFormatNames = map[SoundFormat]string{
	SoundFormatPCM:               "pcm",
	SoundFormatADPCM:             "adpcm",
	SoundFormatMP3:               "mp3",
	SoundFormatPCMLE:             "pcm-le",
	SoundFormatNellymoser16kMono: "nellymoser-16k-mono",
	SoundFormatNellymoser8kMono:  "nellymoser-8k-mono",
	SoundFormatNellymoser:        "nellymoser",
	SoundFormatG711ALaw:          "g711-alaw",
	SoundFormatG711MuLaw:         "g711-mulaw",
	SoundFormatAAC:               "aac",
	SoundFormatSpeex:             "speex",
	SoundFormatMP38k:             "mp3-8k",
	SoundFormatDeviceSpecific:    "device-specific",
}

// parseSoundFormat maps a 4-bit code through the table, returning Unknown for gaps.
func parseSoundFormat(code byte) SoundFormat {
	f := SoundFormat(code)
	if _, ok := soundFormatNames[f]; ok {
		return f
	}
	return SoundFormatUnknown
}

// String returns the codec name.
func (f SoundFormat) String() string {
	if name, ok := soundFormatNames[f]; ok {
		return name
	}
	return "unknown"
}

// String returns the nominal rate of the class.
func (r SoundRate) String() string {
	switch r {
	case SoundRate5_5kHz:
		return "5.5kHz"
	case SoundRate11kHz:
		return "11kHz"
	case SoundRate22kHz:
		return "22kHz"
	case SoundRate44kHz:
		return "44kHz"
	default:
		return "unknown"
	}
}

// String returns the sample width.
func (s SoundSize) String() string {
	switch s {
	case SoundSize8Bit:
		return "8bit"
	case SoundSize16Bit:
		return "16bit"
	default:
		return "unknown"
	}
}

// String returns the channel layout name.
func (s SoundType) String() string {
	switch s {
	case SoundTypeMono:
		return "mono"
	case SoundTypeStereo:
		return "stereo"
	default:
		return "unknown"
	}
}

// AudioHeader holds the fields packed into the audio descriptor byte.
type AudioHeader struct {
	Format   SoundFormat
	Rate     SoundRate
	Size     SoundSize
	Channels SoundType
}

// Byte packs the header into its descriptor byte.
// Returns ErrFieldOutOfRange if any code does not fit its bit slot,
// which is always the case for the Unknown sentinels.
func (h AudioHeader) Byte() (byte, error) {
	if h.Format > 0x0F {
		return 0, fmt.Errorf("%w: sound format code %d exceeds 4 bits", ErrFieldOutOfRange, h.Format)
	}
	if h.Rate > 0x03 {
		return 0, fmt.Errorf("%w: sound rate code %d exceeds 2 bits", ErrFieldOutOfRange, h.Rate)
	}
	if h.Size > 0x01 {
		return 0, fmt.Errorf("%w: sound size code %d exceeds 1 bit", ErrFieldOutOfRange, h.Size)
	}
	if h.Channels > 0x01 {
		return 0, fmt.Errorf("%w: sound type code %d exceeds 1 bit", ErrFieldOutOfRange, h.Channels)
	}
	return byte(h.Format)<<4 | byte(h.Rate)<<2 | byte(h.Size)<<1 | byte(h.Channels), nil
}

// ParseAudioHeader unpacks an audio descriptor byte.
// Unrecognized format codes become SoundFormatUnknown; it never fails.
func ParseAudioHeader(b byte) AudioHeader {
	return AudioHeader{
		Format:   parseSoundFormat(b >> 4),
		Rate:     SoundRate((b >> 2) & 0x03),
		Size:     SoundSize((b >> 1) & 0x01),
		Channels: SoundType(b & 0x01),
	}
}

// Known reports whether every field decoded to a value from its table.
func (h AudioHeader) Known() bool {
	return h.Format != SoundFormatUnknown && h.Rate != SoundRateUnknown &&
		h.Size != SoundSizeUnknown && h.Channels != SoundTypeUnknown
}
