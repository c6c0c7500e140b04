// If you are AI: This file builds and reads onMetaData script tags.
// The tag codec treats script payloads as opaque; this is a helper layer above it.

package flv

import (
	"errors"
	"fmt"

	"flvkit/internal/core/protocol/amf0"
)

// MetadataName is the script data name carrying stream metadata.
const MetadataName = "onMetaData"

// ErrNotScriptTag is returned when script helpers are used on an audio or video tag.
var ErrNotScriptTag = errors.New("not an FLV script tag")

// NewMetadataTag creates a script tag carrying onMetaData with the given properties.
func NewMetadataTag(timestamp uint32, props amf0.ECMAArray) (*Tag, error) {
	payload, err := amf0.EncodeValues(MetadataName, props)
	if err != nil {
		return nil, fmt.Errorf("encode metadata: %w", err)
	}
	// EncodeValues returns a fresh buffer, so the tag can own it directly.
	return &Tag{
		Type:      TagTypeScript,
		Timestamp: timestamp,
		Payload:   payload,
	}, nil
}

// Metadata decodes a script tag payload into its name and properties.
// Both ECMA arrays and anonymous objects are accepted as the property container.
func (t *Tag) Metadata() (string, amf0.ECMAArray, error) {
	if t.Type != TagTypeScript {
		return "", nil, fmt.Errorf("%w: %s", ErrNotScriptTag, t.Type)
	}
	vals, err := amf0.DecodeAll(t.Payload)
	if err != nil {
		return "", nil, fmt.Errorf("decode script data: %w", err)
	}
	if len(vals) == 0 {
		return "", nil, fmt.Errorf("decode script data: %w", amf0.ErrInvalidData)
	}
	name, ok := vals[0].(string)
	if !ok {
		return "", nil, fmt.Errorf("decode script data name: %w", amf0.ErrUnexpectedType)
	}
	if len(vals) < 2 {
		return name, amf0.ECMAArray{}, nil
	}
	switch props := vals[1].(type) {
	case amf0.ECMAArray:
		return name, props, nil
	case amf0.Object:
		return name, amf0.ECMAArray(props), nil
	default:
		return name, amf0.ECMAArray{}, nil
	}
}
