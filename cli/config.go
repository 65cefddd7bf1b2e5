package cli

import (
	"fmt"
	"runtime"

	"github.com/BurntSushi/toml"

	"github.com/fourey/lineart"
)

// Config is the TOML-backed set of defaults for every tunable named in
// SPEC_FULL.md §3/§6, plus the CLI-only worker count (§4.9). Flags always
// override config values; config overrides these hardcoded defaults.
type Config struct {
	Threshold         float64 `toml:"threshold"`
	SplineLen         int     `toml:"spline_len"`
	SegmentLen        int     `toml:"segment_len"`
	MaxGrow           int     `toml:"max_grow"`
	SelectTransparent bool    `toml:"select_transparent"`
	BindGapLength     bool    `toml:"bind_gap"`
	Workers           int     `toml:"workers"`
}

// DefaultConfig mirrors lineart.DefaultParams, plus a worker count capped
// at the host's CPU count.
func DefaultConfig() Config {
	p := lineart.DefaultParams()
	return Config{
		Threshold:         p.StrokeThreshold,
		SplineLen:         p.SplineMaxLength,
		SegmentLen:        p.SegmentMaxLength,
		MaxGrow:           p.MaxGrow,
		SelectTransparent: p.SelectTransparent,
		BindGapLength:     p.BindGapLength,
		Workers:           runtime.NumCPU(),
	}
}

// LoadConfig reads a TOML file at path into DefaultConfig's values,
// grounded on the noisetorch tool's use of github.com/BurntSushi/toml for
// exactly this purpose. A missing file or malformed TOML at an
// explicitly-given path is a fatal startup error (§4.9), never silently
// ignored.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("could not load config %q: %w", path, err)
	}
	return cfg, nil
}

// Params converts the config into the engine's Params, for a caller that
// hasn't overridden anything via flags.
func (c Config) Params() lineart.Params {
	return lineart.Params{
		SelectTransparent: c.SelectTransparent,
		StrokeThreshold:   c.Threshold,
		SplineMaxLength:   c.SplineLen,
		SegmentMaxLength:  c.SegmentLen,
		MaxGrow:           c.MaxGrow,
		BindGapLength:     c.BindGapLength,
	}
}
