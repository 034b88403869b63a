package audio

import (
	"os"
	"strconv"

	"github.com/lixenwraith/countdown-tracker/constants"
)

// AudioConfig controls the expiry chime
type AudioConfig struct {
	Enabled    bool    `toml:"enabled" yaml:"enabled"`
	Volume     float64 `toml:"volume" yaml:"volume" validate:"gte=0,lte=1"`
	SampleRate int     `toml:"sample_rate" yaml:"sample_rate" validate:"gte=8000,lte=192000"`
}

// DefaultAudioConfig returns the built-in chime settings
func DefaultAudioConfig() *AudioConfig {
	return &AudioConfig{
		Enabled:    true,
		Volume:     0.5,
		SampleRate: constants.DefaultSampleRate,
	}
}

// LoadAudioConfig loads audio configuration from environment variables over the defaults
func LoadAudioConfig() *AudioConfig {
	cfg := DefaultAudioConfig()
	cfg.ApplyEnv()
	return cfg
}

// ApplyEnv overrides fields from environment variables, malformed values are ignored
func (cfg *AudioConfig) ApplyEnv() {
	if enabled := os.Getenv(constants.EnvAudioEnabled); enabled != "" {
		if val, err := strconv.ParseBool(enabled); err == nil {
			cfg.Enabled = val
		}
	}

	// Volume is given as 0-100 and stored as 0.0-1.0
	if volume := os.Getenv(constants.EnvVolume); volume != "" {
		if val, err := strconv.Atoi(volume); err == nil {
			cfg.Volume = float64(val) / 100.0
			if cfg.Volume < 0 {
				cfg.Volume = 0
			}
			if cfg.Volume > 1 {
				cfg.Volume = 1
			}
		}
	}

	if sampleRate := os.Getenv(constants.EnvSampleRate); sampleRate != "" {
		if val, err := strconv.Atoi(sampleRate); err == nil && val > 0 {
			cfg.SampleRate = val
		}
	}
}
