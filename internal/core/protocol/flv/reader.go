// If you are AI: This file implements the FLV container reader.
// Tags are read in two phases: the 11-byte header first, then the declared body.

package flv

import (
	"bufio"
	"encoding/binary"
	"errors"
	"fmt"
	"io"
)

// ErrResyncFailed is returned when no plausible tag header is found within the scan limit.
var ErrResyncFailed = errors.New("FLV resync failed")

// readerBufferSize bounds how far Resync can look ahead to verify a candidate tag.
const readerBufferSize = 256 * 1024

// Reader reads an FLV file header and tags from an io.Reader.
// Not safe for concurrent use.
type Reader struct {
	r      *bufio.Reader
	offset int64
}

// NewReader creates a reader on top of r.
func NewReader(r io.Reader) *Reader {
	return &Reader{
		r: bufio.NewReaderSize(r, readerBufferSize),
	}
}

// Offset returns the number of bytes consumed so far.
func (r *Reader) Offset() int64 {
	return r.offset
}

// ReadHeader reads the file header, skips to its data offset, and
// consumes PreviousTagSize0.
func (r *Reader) ReadHeader() (*Header, error) {
	buf := make([]byte, FLVHeaderSize)
	if err := r.readFull(buf); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFileHeader, err)
	}
	header, err := ParseHeader(buf)
	if err != nil {
		return nil, err
	}
	if skip := int64(header.DataOffset) - FLVHeaderSize; skip > 0 {
		if err := r.discard(int(skip)); err != nil {
			return nil, fmt.Errorf("%w: %w", ErrMalformedFileHeader, err)
		}
	}
	var prevSize [PreviousTagSizeLength]byte
	if err := r.readFull(prevSize[:]); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrMalformedFileHeader, err)
	}
	return header, nil
}

// ReadTagHeader reads the next tag header.
// Returns io.EOF at a clean end of stream. On ErrMalformedHeader no bytes
// are consumed, so the caller may Resync from the same position.
func (r *Reader) ReadTagHeader() (TagHeader, error) {
	b, err := r.r.Peek(TagHeaderSize)
	if err != nil {
		if len(b) == 0 && errors.Is(err, io.EOF) {
			return TagHeader{}, io.EOF
		}
		if errors.Is(err, io.EOF) {
			err = io.ErrUnexpectedEOF
		}
		return TagHeader{}, fmt.Errorf("%w at offset %d: %w", ErrMalformedHeader, r.offset, err)
	}
	h, err := DecodeTagHeader(b)
	if err != nil {
		return TagHeader{}, fmt.Errorf("at offset %d: %w", r.offset, err)
	}
	if err := r.discard(TagHeaderSize); err != nil {
		return TagHeader{}, err
	}
	return h, nil
}

// ReadBody reads the body declared by h plus the trailing previous tag size.
// A missing trailer at the very end of the stream is tolerated.
// Allocation: Returns a new slice owned by the caller.
func (r *Reader) ReadBody(h TagHeader) ([]byte, error) {
	body := make([]byte, h.DataSize)
	if err := r.readFull(body); err != nil {
		return nil, fmt.Errorf("%w at offset %d: %w", ErrTruncatedBody, r.offset, err)
	}
	var prevSize [PreviousTagSizeLength]byte
	if err := r.readFull(prevSize[:]); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w at offset %d: %w", ErrTruncatedBody, r.offset, err)
	}
	return body, nil
}

// ReadTag reads and decodes one complete tag.
// The returned tag's Offset is the position of its header.
func (r *Reader) ReadTag() (*Tag, error) {
	start := r.offset
	h, err := r.ReadTagHeader()
	if err != nil {
		return nil, err
	}
	body, err := r.ReadBody(h)
	if err != nil {
		return nil, err
	}
	tag, err := DecodeBody(h, body)
	if err != nil {
		return nil, fmt.Errorf("at offset %d: %w", start, err)
	}
	tag.Offset = start
	return tag, nil
}

// Resync scans forward one byte at a time until the reader is positioned at
// a plausible tag header: known type, zero stream ID, and, when the whole tag
// fits the read buffer, a matching previous tag size trailer.
// Returns the number of bytes skipped. Scanning stops after limit bytes.
func (r *Reader) Resync(limit int) (int, error) {
	skipped := 0
	for skipped < limit {
		if err := r.discard(1); err != nil {
			return skipped, fmt.Errorf("%w after %d bytes: %w", ErrResyncFailed, skipped, err)
		}
		skipped++
		if r.plausibleTag() {
			return skipped, nil
		}
	}
	return skipped, fmt.Errorf("%w: no tag header within %d bytes", ErrResyncFailed, limit)
}

// plausibleTag reports whether the buffered bytes look like the start of a tag.
func (r *Reader) plausibleTag() bool {
	b, err := r.r.Peek(TagHeaderSize)
	if err != nil {
		return false
	}
	if !TagType(b[0]).Valid() || uint24(b[8:11]) != 0 {
		return false
	}
	tagLen := TagHeaderSize + int(uint24(b[1:4]))
	full, err := r.r.Peek(tagLen + PreviousTagSizeLength)
	if err != nil {
		// Too large to verify or at end of stream; accept the header alone.
		return len(full) >= TagHeaderSize
	}
	return binary.BigEndian.Uint32(full[tagLen:]) == uint32(tagLen)
}

// readFull fills b and advances the offset by the bytes read.
func (r *Reader) readFull(b []byte) error {
	n, err := io.ReadFull(r.r, b)
	r.offset += int64(n)
	return err
}

// discard skips n bytes and advances the offset.
func (r *Reader) discard(n int) error {
	d, err := r.r.Discard(n)
	r.offset += int64(d)
	return err
}
