// If you are AI: This file implements the FLV remuxer that rewrites tag timestamps.
// Tags are decoded and re-encoded, so data sizes, stream IDs and trailers come out normalized.

package remux

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"math"

	"flvkit/internal/config"
	"flvkit/internal/core/protocol/flv"
)

// Stats summarizes one remux run.
type Stats struct {
	Audio        int   // Audio tags written
	Video        int   // Video tags written
	Script       int   // Script tags written
	Passed       int   // Tags with unknown codes forwarded unchanged
	Dropped      int   // Tags omitted from the output
	Resyncs      int   // Times the reader scanned past corruption
	SkippedBytes int64 // Bytes skipped while resyncing
}

// Tags returns the total number of tags written.
func (s Stats) Tags() int {
	return s.Audio + s.Video + s.Script + s.Passed
}

// Remuxer copies an FLV stream while adjusting timestamps.
// A Remuxer holds no per-run state and may be reused sequentially.
type Remuxer struct {
	cfg    config.RemuxConfig
	logger *slog.Logger
}

// New creates a remuxer. A nil logger falls back to slog.Default().
func New(cfg config.RemuxConfig, logger *slog.Logger) *Remuxer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Remuxer{
		cfg:    cfg,
		logger: logger,
	}
}

// clock tracks the rebase origin across one run.
type clock struct {
	rebase bool
	offset int64
	base   uint32
	set    bool
}

// stamp maps an input timestamp to its output value.
// The origin is the first audio or video tag written; earlier script tags map to the offset.
// Only call it for tags that reach the output.
func (c *clock) stamp(tagType flv.TagType, ts uint32) uint32 {
	rel := int64(ts)
	if c.rebase {
		if !c.set {
			if tagType == flv.TagTypeScript {
				return clamp(c.offset)
			}
			c.base = ts
			c.set = true
		}
		// Timestamps that run backwards past the origin are clamped
		rel = max(int64(ts)-int64(c.base), 0)
	}
	return clamp(rel + c.offset)
}

// clamp limits v to the 32-bit timestamp range.
func clamp(v int64) uint32 {
	if v < 0 {
		return 0
	}
	if v > math.MaxUint32 {
		return math.MaxUint32
	}
	return uint32(v)
}

// Run reads FLV from src and writes the remuxed stream to dst.
// Cancellation is checked between tags. Stats are valid even when an error is returned.
func (m *Remuxer) Run(ctx context.Context, src io.Reader, dst io.Writer) (Stats, error) {
	var stats Stats

	r := flv.NewReader(src)
	header, err := r.ReadHeader()
	if err != nil {
		return stats, fmt.Errorf("read file header: %w", err)
	}

	w := flv.NewWriter(dst)
	if err := w.WriteHeader(header.HasAudio, header.HasVideo); err != nil {
		return stats, fmt.Errorf("write file header: %w", err)
	}

	clk := &clock{
		rebase: m.cfg.RebaseEnabled(),
		offset: m.cfg.TimestampOffsetMs,
	}

	for {
		if err := ctx.Err(); err != nil {
			return stats, err
		}

		done, err := m.step(r, w, clk, &stats)
		if err != nil {
			return stats, err
		}
		if done {
			break
		}
	}

	if err := w.Flush(); err != nil {
		return stats, fmt.Errorf("flush output: %w", err)
	}

	m.logger.Info("remux complete",
		"audio", stats.Audio,
		"video", stats.Video,
		"script", stats.Script,
		"passed", stats.Passed,
		"dropped", stats.Dropped,
		"resyncs", stats.Resyncs,
		"skipped_bytes", stats.SkippedBytes,
	)
	return stats, nil
}

// step processes one tag. Returns true when the input is exhausted.
func (m *Remuxer) step(r *flv.Reader, w *flv.Writer, clk *clock, stats *Stats) (bool, error) {
	start := r.Offset()
	h, err := r.ReadTagHeader()
	switch {
	case err == nil:
	case errors.Is(err, io.EOF):
		return true, nil
	case errors.Is(err, io.ErrUnexpectedEOF):
		return m.tail(err, start)
	case errors.Is(err, flv.ErrMalformedHeader):
		return m.resync(r, err, stats)
	default:
		return false, err
	}

	body, err := r.ReadBody(h)
	if err != nil {
		return m.tail(err, start)
	}

	tag, err := flv.DecodeBody(h, body)
	if err != nil {
		if !m.cfg.ResyncEnabled() {
			return false, err
		}
		m.logger.Warn("dropping undecodable tag", "offset", start, "error", err)
		stats.Dropped++
		return false, nil
	}

	if !tag.Known() {
		if m.cfg.Unknown == config.UnknownDrop {
			m.logger.Debug("dropping tag with unknown codec", "offset", start, "type", h.Type)
			stats.Dropped++
			return false, nil
		}
		ts := clk.stamp(h.Type, h.Time())
		h.Timestamp = ts & 0xFFFFFF
		h.TimestampExtended = uint8(ts >> 24)
		if err := w.WriteRaw(h, body); err != nil {
			return false, err
		}
		stats.Passed++
		return false, nil
	}

	tag.Timestamp = clk.stamp(tag.Type, tag.Timestamp)
	if err := w.WriteTag(tag); err != nil {
		return false, err
	}
	switch tag.Type {
	case flv.TagTypeAudio:
		stats.Audio++
	case flv.TagTypeVideo:
		stats.Video++
	default:
		stats.Script++
	}
	return false, nil
}

// resync skips past a malformed header when enabled.
func (m *Remuxer) resync(r *flv.Reader, cause error, stats *Stats) (bool, error) {
	if !m.cfg.ResyncEnabled() {
		return false, cause
	}
	start := r.Offset()
	skipped, err := r.Resync(m.cfg.MaxResyncBytes)
	stats.Resyncs++
	stats.SkippedBytes += int64(skipped)
	if err != nil {
		if errors.Is(err, io.EOF) {
			m.logger.Warn("discarding trailing garbage", "offset", start, "bytes", skipped)
			return true, nil
		}
		return false, err
	}
	m.logger.Warn("resynchronized after malformed tag", "offset", start, "skipped", skipped, "error", cause)
	return false, nil
}

// tail handles a tag cut short by the end of the input.
// Recordings that stop mid-tag are common, so this is a warning when resync is enabled.
func (m *Remuxer) tail(cause error, offset int64) (bool, error) {
	if !m.cfg.ResyncEnabled() {
		return false, cause
	}
	m.logger.Warn("discarding truncated final tag", "offset", offset, "error", cause)
	return true, nil
}
