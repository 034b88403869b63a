package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/countdown-tracker/audio"
	"github.com/lixenwraith/countdown-tracker/constants"
	"github.com/lixenwraith/countdown-tracker/engine"
)

// ErrUnsupportedFormat is returned for config files that are neither TOML nor YAML
var ErrUnsupportedFormat = errors.New("unsupported config format")

// Config is the full countdown configuration
type Config struct {
	// Target is the instant to count down to, any form engine.ParseTarget accepts
	Target string `toml:"target" yaml:"target" validate:"required,countdown_target"`

	// Title is drawn above the fields, empty hides it
	Title string `toml:"title" yaml:"title" validate:"max=80"`

	// FrameRate is the refresh cadence of the terminal host in frames per second
	FrameRate int `toml:"frame_rate" yaml:"frame_rate" validate:"gte=1,lte=240"`

	// ShowHelp draws the key hint on the bottom row
	ShowHelp bool `toml:"show_help" yaml:"show_help"`

	Audio  audio.AudioConfig `toml:"audio" yaml:"audio"`
	Status StatusConfig      `toml:"status" yaml:"status"`
	Log    LogConfig         `toml:"log" yaml:"log"`
}

// StatusConfig enables the HTTP status endpoint when Addr is set
type StatusConfig struct {
	Addr string `toml:"addr" yaml:"addr" validate:"omitempty,hostname_port"`
}

// LogConfig controls the log file, the terminal itself is never logged to
type LogConfig struct {
	Level string `toml:"level" yaml:"level" validate:"oneof=debug info warn error disabled"`
	File  string `toml:"file" yaml:"file"`
}

// Default returns a config with every optional field populated
func Default() *Config {
	return &Config{
		FrameRate: constants.DefaultFrameRate,
		ShowHelp:  true,
		Audio:     *audio.DefaultAudioConfig(),
		Log: LogConfig{
			Level: "disabled",
			File:  filepath.Join(constants.LogDir, constants.LogFileName),
		},
	}
}

// Load reads path over the defaults and applies audio environment overrides.
// The result is not validated so callers can merge flags first
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		md, err := toml.Decode(string(data), cfg)
		if err != nil {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, fmt.Errorf("parse %s: unknown keys %v", path, undecoded)
		}
	case ".yaml", ".yml":
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		// An empty document leaves the defaults, as an empty TOML file does
		if err := dec.Decode(cfg); err != nil && !errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("parse %s: %w", path, err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}

	cfg.Audio.ApplyEnv()
	return cfg, nil
}

// LoadValid is Load followed by Validate
func LoadValid(path string) (*Config, error) {
	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	_ = v.RegisterValidation("countdown_target", func(fl validator.FieldLevel) bool {
		_, err := engine.ParseTarget(fl.Field().String())
		return err == nil
	})
	return v
}

// Validate checks field constraints including that Target parses
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// ParsedTarget resolves Target, valid only after Validate succeeded
func (c *Config) ParsedTarget() (engine.Target, error) {
	return engine.ParseTarget(c.Target)
}
