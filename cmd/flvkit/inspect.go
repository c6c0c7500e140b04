// If you are AI: This file implements the inspect subcommand, which lists the tags in an FLV file.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"
	"text/tabwriter"

	"github.com/spf13/pflag"

	"flvkit/internal/config"
	"flvkit/internal/core/protocol/flv"
)

// runInspect parses inspect flags and lists FILE.
func runInspect(ctx context.Context, args []string, stdout io.Writer) error {
	var common commonFlags

	fs := pflag.NewFlagSet("inspect", pflag.ContinueOnError)
	fs.SetOutput(stdout)
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("inspect: expected FILE, got %d arguments", fs.NArg())
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	f, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer f.Close()

	return inspect(ctx, f, stdout, cfg.Remux, newLogger(cfg.Log, os.Stderr))
}

// inspect writes a tabular listing of every tag in src.
// With resync enabled it tolerates the same damage the remuxer does: malformed
// headers are skipped with Resync, undecodable tags are left out, and a
// truncated tail or trailing garbage ends the listing cleanly.
func inspect(ctx context.Context, src io.Reader, stdout io.Writer, cfg config.RemuxConfig, logger *slog.Logger) error {
	r := flv.NewReader(src)
	header, err := r.ReadHeader()
	if err != nil {
		return err
	}
	fmt.Fprintf(stdout, "FLV version %d audio=%t video=%t data_offset=%d\n",
		header.Version, header.HasAudio, header.HasVideo, header.DataOffset)

	tw := tabwriter.NewWriter(stdout, 0, 4, 2, ' ', 0)
	defer tw.Flush()
	fmt.Fprintln(tw, "OFFSET\tTYPE\tTIME\tSIZE\tDETAILS")

	tolerant := cfg.ResyncEnabled()
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		start := r.Offset()
		h, err := r.ReadTagHeader()
		switch {
		case err == nil:
		case errors.Is(err, io.EOF):
			return nil
		case errors.Is(err, io.ErrUnexpectedEOF) && tolerant:
			logger.Warn("discarding truncated final tag", "offset", start, "error", err)
			return nil
		case errors.Is(err, flv.ErrMalformedHeader) && tolerant:
			skipped, rerr := r.Resync(cfg.MaxResyncBytes)
			if rerr != nil {
				if errors.Is(rerr, io.EOF) {
					logger.Warn("discarding trailing garbage", "offset", start, "bytes", skipped)
					return nil
				}
				return rerr
			}
			logger.Warn("skipped malformed data", "offset", start, "bytes", skipped)
			continue
		default:
			return err
		}

		body, err := r.ReadBody(h)
		if err != nil {
			if !tolerant {
				return err
			}
			logger.Warn("discarding truncated final tag", "offset", start, "error", err)
			return nil
		}

		tag, err := flv.DecodeBody(h, body)
		if err != nil {
			if !tolerant {
				return fmt.Errorf("at offset %d: %w", start, err)
			}
			logger.Warn("skipping undecodable tag", "offset", start, "error", err)
			continue
		}
		tag.Offset = start

		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%s\n", tag.Offset, tag.Type, tag.Timestamp, tag.DataSize(), describe(tag))
	}
}

// describe summarizes the variant fields of a tag.
func describe(tag *flv.Tag) string {
	var parts []string
	switch tag.Type {
	case flv.TagTypeAudio:
		parts = append(parts, tag.Audio.Format.String(), tag.Audio.Rate.String(),
			tag.Audio.Size.String(), tag.Audio.Channels.String())
	case flv.TagTypeVideo:
		parts = append(parts, tag.Video.Codec.String(), tag.Video.FrameType.String())
	case flv.TagTypeScript:
		name, props, err := tag.Metadata()
		if err != nil {
			return "undecodable script data"
		}
		keys := make([]string, 0, len(props))
		for key := range props {
			keys = append(keys, key)
		}
		sort.Strings(keys)
		parts = append(parts, name, "["+strings.Join(keys, ",")+"]")
	}
	if tag.IsSequenceHeader() {
		parts = append(parts, "seq-hdr")
	}
	return strings.Join(parts, " ")
}
