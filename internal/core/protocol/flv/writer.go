// If you are AI: This file implements the FLV container writer.
// The writer owns the stream offset and the previous tag size trailer; tags never see either.

package flv

import (
	"bufio"
	"encoding/binary"
	"fmt"
	"io"
)

// Writer appends an FLV file header and tags to an io.Writer.
// Not safe for concurrent use; callers sequence writes against one stream.
// Allocation: One encode buffer reused across tags.
type Writer struct {
	w             *bufio.Writer
	buf           []byte
	offset        int64
	headerWritten bool
}

// NewWriter creates a writer on top of w. Call Flush when done.
func NewWriter(w io.Writer) *Writer {
	return &Writer{
		w:   bufio.NewWriter(w),
		buf: make([]byte, 0, 64*1024),
	}
}

// WriteHeader writes the FLV file header followed by PreviousTagSize0.
// Calling it more than once is a no-op.
func (w *Writer) WriteHeader(hasAudio, hasVideo bool) error {
	if w.headerWritten {
		return nil
	}

	header := NewHeader(hasAudio, hasVideo)
	if err := w.write(header.Bytes()); err != nil {
		return err
	}

	// Write previous tag size (0 for first tag)
	var prevSize [PreviousTagSizeLength]byte
	binary.BigEndian.PutUint32(prevSize[:], FirstPreviousTagSize)
	if err := w.write(prevSize[:]); err != nil {
		return err
	}

	w.headerWritten = true
	return nil
}

// WriteTag encodes t and appends it with its previous tag size trailer.
// t.Offset is set to the position the tag was written at.
func (w *Writer) WriteTag(t *Tag) error {
	buf, err := AppendTag(w.buf[:0], t)
	if err != nil {
		return fmt.Errorf("encode tag at %d: %w", w.offset, err)
	}
	w.buf = buf[:0]

	t.Offset = w.offset
	return w.writeTagBytes(buf)
}

// WriteRaw writes a pre-encoded body behind a freshly encoded header.
// Used to forward tags whose descriptor did not decode to known values.
// h.DataSize is replaced by len(body) and the stream ID is written as 0.
func (w *Writer) WriteRaw(h TagHeader, body []byte) error {
	h.DataSize = uint32(len(body))
	buf, err := h.AppendTo(w.buf[:0])
	if err != nil {
		return fmt.Errorf("encode raw %s tag at %d: %w", h.Type, w.offset, err)
	}
	buf = append(buf, body...)
	w.buf = buf[:0]
	return w.writeTagBytes(buf)
}

// writeTagBytes writes an encoded tag and its 4-byte previous tag size.
func (w *Writer) writeTagBytes(tag []byte) error {
	if err := w.write(tag); err != nil {
		return err
	}
	var prevSize [PreviousTagSizeLength]byte
	binary.BigEndian.PutUint32(prevSize[:], uint32(len(tag)))
	return w.write(prevSize[:])
}

// write writes b and advances the offset.
func (w *Writer) write(b []byte) error {
	n, err := w.w.Write(b)
	w.offset += int64(n)
	return err
}

// Flush flushes buffered data to the underlying writer.
func (w *Writer) Flush() error {
	return w.w.Flush()
}

// Offset returns the number of bytes written so far.
func (w *Writer) Offset() int64 {
	return w.offset
}
