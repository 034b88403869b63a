package audio

import (
	"testing"

	"github.com/lixenwraith/countdown-tracker/constants"
)

// TestDefaultAudioConfig verifies default configuration
func TestDefaultAudioConfig(t *testing.T) {
	cfg := DefaultAudioConfig()

	if !cfg.Enabled {
		t.Error("Expected default config to have Enabled=true")
	}
	if cfg.Volume != 0.5 {
		t.Errorf("Expected default volume 0.5, got %f", cfg.Volume)
	}
	if cfg.SampleRate != constants.DefaultSampleRate {
		t.Errorf("Expected default sample rate %d, got %d", constants.DefaultSampleRate, cfg.SampleRate)
	}
}

// TestLoadAudioConfigFromEnv verifies each override and clamping
func TestLoadAudioConfigFromEnv(t *testing.T) {
	tests := []struct {
		name       string
		env        map[string]string
		enabled    bool
		volume     float64
		sampleRate int
	}{
		{
			name:       "No overrides",
			env:        map[string]string{},
			enabled:    true,
			volume:     0.5,
			sampleRate: constants.DefaultSampleRate,
		},
		{
			name:       "Disabled",
			env:        map[string]string{constants.EnvAudioEnabled: "false"},
			enabled:    false,
			volume:     0.5,
			sampleRate: constants.DefaultSampleRate,
		},
		{
			name:       "Volume percent",
			env:        map[string]string{constants.EnvVolume: "80"},
			enabled:    true,
			volume:     0.8,
			sampleRate: constants.DefaultSampleRate,
		},
		{
			name:       "Volume clamped high",
			env:        map[string]string{constants.EnvVolume: "250"},
			enabled:    true,
			volume:     1.0,
			sampleRate: constants.DefaultSampleRate,
		},
		{
			name:       "Volume clamped low",
			env:        map[string]string{constants.EnvVolume: "-10"},
			enabled:    true,
			volume:     0,
			sampleRate: constants.DefaultSampleRate,
		},
		{
			name:       "Sample rate",
			env:        map[string]string{constants.EnvSampleRate: "44100"},
			enabled:    true,
			volume:     0.5,
			sampleRate: 44100,
		},
		{
			name: "Malformed values ignored",
			env: map[string]string{
				constants.EnvAudioEnabled: "maybe",
				constants.EnvVolume:       "loud",
				constants.EnvSampleRate:   "0",
			},
			enabled:    true,
			volume:     0.5,
			sampleRate: constants.DefaultSampleRate,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(constants.EnvAudioEnabled, "")
			t.Setenv(constants.EnvVolume, "")
			t.Setenv(constants.EnvSampleRate, "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			cfg := LoadAudioConfig()
			if cfg.Enabled != tt.enabled {
				t.Errorf("Expected Enabled=%v, got %v", tt.enabled, cfg.Enabled)
			}
			if cfg.Volume != tt.volume {
				t.Errorf("Expected volume %f, got %f", tt.volume, cfg.Volume)
			}
			if cfg.SampleRate != tt.sampleRate {
				t.Errorf("Expected sample rate %d, got %d", tt.sampleRate, cfg.SampleRate)
			}
		})
	}
}
