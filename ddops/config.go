package ddops

// Copyright (c) 2025 Colin McRae

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/predrag3141/polyrep/rational"
	"github.com/predrag3141/polyrep/tableau"
)

// Config holds the options of a conversion. The zero value is the default:
// Chernikov rule on, fixed width arithmetic with promotion on overflow, a
// bound of tableau.DefaultMaxValues entries per working system and the
// caller's elimination order.
type Config struct {
	// DisableChernikov turns off the per-column redundancy filter. A single
	// minimal support pass still runs after the last column.
	DisableChernikov bool `yaml:"disableChernikov" toml:"disable_chernikov"`

	// LongArithmetic computes with math/big from the start.
	LongArithmetic bool `yaml:"longArithmetic" toml:"long_arithmetic"`

	// DisablePromotion makes fixed width overflow fatal.
	DisablePromotion bool `yaml:"disablePromotion" toml:"disable_promotion"`

	// AllowDemotion lets the context return to fixed width after
	// Fourier-Motzkin elimination if every value fits.
	AllowDemotion bool `yaml:"allowDemotion" toml:"allow_demotion"`

	// FixedWidthLimit bounds numerators and denominators in fixed width mode.
	// 0 means rational.DefaultCapacity.
	FixedWidthLimit int64 `yaml:"fixedWidthLimit" toml:"fixed_width_limit" validate:"gte=0,lte=2147483647"`

	// MaxRows bounds the live rows of a working system. 0 leaves only the
	// MaxValues bound.
	MaxRows int `yaml:"maxRows" toml:"max_rows" validate:"gte=0"`

	// MaxValues bounds the entries of the live rows of a working system.
	// 0 means tableau.DefaultMaxValues.
	MaxValues int `yaml:"maxValues" toml:"max_values" validate:"gte=0"`

	// OptimizeOrder picks at each step the column whose elimination creates
	// the fewest rows.
	OptimizeOrder bool `yaml:"optimizeOrder" toml:"optimize_order"`

	// StrictIntegers makes integerization overflow fatal instead of leaving
	// the row fractional.
	StrictIntegers bool `yaml:"strictIntegers" toml:"strict_integers"`

	// Logger receives debug records of each phase. nil means slog.Default().
	Logger *slog.Logger `yaml:"-" toml:"-" validate:"-"`
}

var configValidate = validator.New()

// Validate checks the numeric bounds of c.
func (c Config) Validate() error {
	if err := configValidate.Struct(c); err != nil {
		return fmt.Errorf("Config.Validate: %w", err)
	}
	return nil
}

// LoadConfig reads a Config from a YAML file (.yaml or .yml) or a TOML file
// (any other extension) and validates it.
func LoadConfig(path string) (Config, error) {
	var cfg Config
	content, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("LoadConfig: could not read %q: %w", path, err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err = yaml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("LoadConfig: YAML parse error in %q: %w", path, err)
		}
	default:
		if err = toml.Unmarshal(content, &cfg); err != nil {
			return cfg, fmt.Errorf("LoadConfig: TOML parse error in %q: %w", path, err)
		}
	}
	if err = cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("LoadConfig: %q: %w", path, err)
	}
	return cfg, nil
}

// contextOptions translates c into options for a new rational.Context.
func (c Config) contextOptions(logger *slog.Logger) []rational.Option {
	opts := []rational.Option{
		rational.WithPromotion(!c.DisablePromotion),
		rational.WithDemotion(c.AllowDemotion),
		rational.WithLogger(logger),
	}
	if c.FixedWidthLimit > 0 {
		opts = append(opts, rational.WithCapacity(c.FixedWidthLimit))
	}
	if c.LongArithmetic {
		opts = append(opts, rational.WithArbitraryPrecision())
	}
	return opts
}

// limits returns the size bounds of the working systems of a conversion.
func (c Config) limits() tableau.Limits {
	return tableau.Limits{MaxRows: c.MaxRows, MaxValues: c.MaxValues}
}
