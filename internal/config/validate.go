// If you are AI: This file validates configuration values and returns descriptive errors.

package config

import (
	"fmt"
	"math"
)

// Validate checks that all configuration values are within acceptable ranges.
// Returns an error describing the first validation failure found.
func (c *Config) Validate() error {
	if err := c.Log.Validate(); err != nil {
		return fmt.Errorf("log config: %w", err)
	}
	if err := c.Remux.Validate(); err != nil {
		return fmt.Errorf("remux config: %w", err)
	}
	return nil
}

// Validate checks logging configuration values.
func (l *LogConfig) Validate() error {
	switch l.Level {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("level must be one of debug, info, warn, error, got %q", l.Level)
	}
	switch l.Format {
	case "text", "json":
	default:
		return fmt.Errorf("format must be text or json, got %q", l.Format)
	}
	return nil
}

// Validate checks remux configuration values.
func (r *RemuxConfig) Validate() error {
	if r.TimestampOffsetMs < -math.MaxUint32 || r.TimestampOffsetMs > math.MaxUint32 {
		return fmt.Errorf("timestamp_offset_ms must fit 32 bits, got %d", r.TimestampOffsetMs)
	}
	if r.Unknown != UnknownPass && r.Unknown != UnknownDrop {
		return fmt.Errorf("unknown must be %q or %q, got %q", UnknownPass, UnknownDrop, r.Unknown)
	}
	if r.MaxResyncBytes <= 0 {
		return fmt.Errorf("max_resync_bytes must be positive, got %d", r.MaxResyncBytes)
	}
	return nil
}
