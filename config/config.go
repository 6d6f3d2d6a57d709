// Package config loads fitter and blob settings from TOML.
//
// A complete file looks like:
//
//	[guard]
//	threshold = 0.001
//	default = 0.001
//
//	[refinement]
//	max_iterations = 64
//
//	[log]
//	level = "info"
//
//	[blob]
//	compression = "zstd"
//	endian = "little"
//
// Missing keys keep their defaults; unknown keys are rejected.
package config

import (
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/rs/zerolog"

	"github.com/arloliu/gaussfit"
	"github.com/arloliu/gaussfit/blob"
	"github.com/arloliu/gaussfit/errs"
	"github.com/arloliu/gaussfit/format"
	"github.com/arloliu/gaussfit/guard"
)

// Config is the root of the configuration file.
type Config struct {
	Guard      GuardConfig      `toml:"guard"`
	Refinement RefinementConfig `toml:"refinement"`
	Log        LogConfig        `toml:"log"`
	Blob       BlobConfig       `toml:"blob"`
}

// GuardConfig configures the divisor clamp of the solver.
type GuardConfig struct {
	Threshold float64 `toml:"threshold"`
	Default   float64 `toml:"default"`
}

// RefinementConfig bounds iterative refinement.
type RefinementConfig struct {
	MaxIterations int `toml:"max_iterations"`
}

// LogConfig configures the fit logger.
type LogConfig struct {
	// Level is a zerolog level name such as "debug" or "warn".
	Level string `toml:"level"`
}

// BlobConfig configures the sample blob encoder.
type BlobConfig struct {
	Compression format.CompressionType `toml:"compression"`
	// Endian is "little" or "big".
	Endian string `toml:"endian"`
}

// Default returns the configuration matching the library defaults.
func Default() *Config {
	return &Config{
		Guard: GuardConfig{
			Threshold: guard.DefaultThreshold,
			Default:   guard.DefaultValue,
		},
		Refinement: RefinementConfig{MaxIterations: gaussfit.DefaultMaxIterations},
		Log:        LogConfig{Level: zerolog.InfoLevel.String()},
		Blob: BlobConfig{
			Compression: format.CompressionNone,
			Endian:      "little",
		},
	}
}

// Parse decodes a TOML document on top of the defaults and validates it.
func Parse(data string) (*Config, error) {
	cfg := Default()
	md, err := toml.Decode(data, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", errs.ErrInvalidConfig, err)
	}
	if err := finish(cfg, md); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Load reads and validates the TOML file at path.
func Load(path string) (*Config, error) {
	cfg := Default()
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %w", errs.ErrInvalidConfig, path, err)
	}
	if err := finish(cfg, md); err != nil {
		return nil, err
	}

	return cfg, nil
}

func finish(cfg *Config, md toml.MetaData) error {
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}

		return fmt.Errorf("%w: unknown keys %s", errs.ErrInvalidConfig, strings.Join(keys, ", "))
	}

	return cfg.Validate()
}

// Validate checks every section.
func (c *Config) Validate() error {
	g := guard.Divisor{Threshold: c.Guard.Threshold, Default: c.Guard.Default}
	if err := g.Validate(); err != nil {
		return fmt.Errorf("%w: guard: %w", errs.ErrInvalidConfig, err)
	}
	if c.Refinement.MaxIterations <= 0 {
		return fmt.Errorf("%w: refinement: %w: %d", errs.ErrInvalidConfig, errs.ErrInvalidIterations, c.Refinement.MaxIterations)
	}
	if _, err := zerolog.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("%w: log: %w", errs.ErrInvalidConfig, err)
	}
	if !c.Blob.Compression.IsValid() {
		return fmt.Errorf("%w: blob: %w", errs.ErrInvalidConfig, errs.ErrInvalidCompression)
	}
	if _, err := c.bigEndian(); err != nil {
		return err
	}

	return nil
}

func (c *Config) bigEndian() (bool, error) {
	switch strings.ToLower(c.Blob.Endian) {
	case "", "little":
		return false, nil
	case "big":
		return true, nil
	default:
		return false, fmt.Errorf("%w: blob: unknown endian %q", errs.ErrInvalidConfig, c.Blob.Endian)
	}
}

// Logger creates a zerolog logger writing JSON events to w at the
// configured level.
func (c *Config) Logger(w io.Writer) (zerolog.Logger, error) {
	level, err := zerolog.ParseLevel(c.Log.Level)
	if err != nil {
		return zerolog.Nop(), fmt.Errorf("%w: log: %w", errs.ErrInvalidConfig, err)
	}

	return zerolog.New(w).Level(level).With().Timestamp().Str("component", "gaussfit").Logger(), nil
}

// FitterOptions converts the configuration into fitter options. Fit events
// are logged to w.
func (c *Config) FitterOptions(w io.Writer) ([]gaussfit.FitterOption, error) {
	logger, err := c.Logger(w)
	if err != nil {
		return nil, err
	}

	return []gaussfit.FitterOption{
		gaussfit.WithDivisorGuard(guard.Divisor{Threshold: c.Guard.Threshold, Default: c.Guard.Default}),
		gaussfit.WithMaxIterations(c.Refinement.MaxIterations),
		gaussfit.WithLogger(logger),
	}, nil
}

// EncoderOptions converts the blob section into encoder options.
func (c *Config) EncoderOptions() ([]blob.EncoderOption, error) {
	big, err := c.bigEndian()
	if err != nil {
		return nil, err
	}

	opts := []blob.EncoderOption{blob.WithCompression(c.Blob.Compression)}
	if big {
		opts = append(opts, blob.WithBigEndian())
	}

	return opts, nil
}
