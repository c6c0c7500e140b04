// If you are AI: This file defines the error values returned by the FLV tag codec.
// Callers match them with errors.Is; the codec never logs.

package flv

import (
	"errors"
)

var (
	// ErrMalformedHeader is returned when a tag header is short or has an unknown type code.
	ErrMalformedHeader = errors.New("malformed FLV tag header")
	// ErrTruncatedBody is returned when fewer body bytes remain than the header declares.
	ErrTruncatedBody = errors.New("truncated FLV tag body")
	// ErrFieldOutOfRange is returned when a value does not fit its packed wire slot.
	ErrFieldOutOfRange = errors.New("FLV field out of range")
	// ErrMalformedFileHeader is returned when the 9-byte file header is invalid.
	ErrMalformedFileHeader = errors.New("malformed FLV file header")
)
