// If you are AI: This file defines the configuration structure for flvkit.
// It uses strict YAML decoding and explicit defaults.

package config

import (
	"bytes"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"
)

// Unknown tag policies
const (
	UnknownPass = "pass" // Forward the tag body unchanged behind a rewritten header
	UnknownDrop = "drop" // Omit the tag from the output
)

// Config holds the complete tool configuration.
// All fields must have explicit defaults or be required.
type Config struct {
	Log   LogConfig   `yaml:"log"`
	Remux RemuxConfig `yaml:"remux"`
}

// LogConfig defines structured logging settings.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, or error
	Format string `yaml:"format"` // text or json
}

// RemuxConfig defines how tags are rewritten when remuxing a file.
type RemuxConfig struct {
	TimestampOffsetMs int64  `yaml:"timestamp_offset_ms"` // Added to every timestamp after rebasing
	Rebase            *bool  `yaml:"rebase,omitempty"`    // Shift the first tag to timestamp 0
	Unknown           string `yaml:"unknown"`             // Policy for tags with Unknown codec codes
	Resync            *bool  `yaml:"resync,omitempty"`    // Scan past malformed tags instead of failing
	MaxResyncBytes    int    `yaml:"max_resync_bytes"`    // Scan limit per resync
}

// Default returns a configuration with every default applied.
func Default() *Config {
	var cfg Config
	cfg.setDefaults()
	return &cfg
}

// Load reads configuration from a YAML file.
// Returns an error if the file cannot be read or decoded.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}
	return Parse(data)
}

// Parse decodes configuration from YAML bytes and applies defaults.
// Unknown fields are rejected. An empty document yields the defaults.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true) // Reject unknown fields

	if err := decoder.Decode(&cfg); err != nil && err != io.EOF {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	// Apply defaults
	cfg.setDefaults()

	return &cfg, nil
}

// setDefaults applies explicit default values to unset fields.
func (c *Config) setDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Log.Format == "" {
		c.Log.Format = "text"
	}
	if c.Remux.Rebase == nil {
		c.Remux.Rebase = boolPtr(true)
	}
	if c.Remux.Unknown == "" {
		c.Remux.Unknown = UnknownPass
	}
	if c.Remux.Resync == nil {
		c.Remux.Resync = boolPtr(true)
	}
	if c.Remux.MaxResyncBytes == 0 {
		c.Remux.MaxResyncBytes = 1 << 20
	}
}

// boolPtr returns a pointer to b.
func boolPtr(b bool) *bool {
	return &b
}

// RebaseEnabled reports whether timestamps are shifted so the first tag starts at 0.
func (r *RemuxConfig) RebaseEnabled() bool {
	return r.Rebase == nil || *r.Rebase
}

// ResyncEnabled reports whether malformed tags are skipped by scanning forward.
func (r *RemuxConfig) ResyncEnabled() bool {
	return r.Resync == nil || *r.Resync
}

// SetRebase overrides the rebase setting.
func (r *RemuxConfig) SetRebase(enabled bool) {
	r.Rebase = boolPtr(enabled)
}

// SetResync overrides the resync setting.
func (r *RemuxConfig) SetResync(enabled bool) {
	r.Resync = boolPtr(enabled)
}
