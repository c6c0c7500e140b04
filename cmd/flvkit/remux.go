// If you are AI: This file implements the remux subcommand.

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/pflag"

	"flvkit/internal/config"
	"flvkit/internal/remux"
)

// runRemux parses remux flags and rewrites IN to OUT.
func runRemux(ctx context.Context, args []string, stdout io.Writer) error {
	var common commonFlags
	var offsetMs int64
	var noRebase, dropUnknown, strict bool

	fs := pflag.NewFlagSet("remux", pflag.ContinueOnError)
	fs.SetOutput(stdout)
	common.register(fs)
	fs.Int64Var(&offsetMs, "offset-ms", 0, "milliseconds added to every timestamp")
	fs.BoolVar(&noRebase, "no-rebase", false, "keep original timestamps instead of starting at 0")
	fs.BoolVar(&dropUnknown, "drop-unknown", false, "drop tags whose codec is not recognized")
	fs.BoolVar(&strict, "strict", false, "fail on malformed tags instead of resynchronizing")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 2 {
		return fmt.Errorf("remux: expected IN and OUT, got %d arguments", fs.NArg())
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	if fs.Changed("offset-ms") {
		cfg.Remux.TimestampOffsetMs = offsetMs
	}
	if noRebase {
		cfg.Remux.SetRebase(false)
	}
	if dropUnknown {
		cfg.Remux.Unknown = config.UnknownDrop
	}
	if strict {
		cfg.Remux.SetResync(false)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	logger := newLogger(cfg.Log, os.Stderr)

	in, err := os.Open(fs.Arg(0))
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(fs.Arg(1))
	if err != nil {
		return err
	}

	stats, err := remux.New(cfg.Remux, logger).Run(ctx, in, out)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return fmt.Errorf("remux %s: %w", fs.Arg(0), err)
	}

	fmt.Fprintf(stdout, "wrote %d tags to %s (%d dropped, %d resyncs)\n",
		stats.Tags(), fs.Arg(1), stats.Dropped, stats.Resyncs)
	return nil
}
