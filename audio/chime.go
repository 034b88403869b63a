package audio

import (
	"fmt"
	"sync"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"
	"github.com/rs/zerolog"

	"github.com/lixenwraith/countdown-tracker/constants"
)

// Chime plays a short ascending tone sequence when a countdown expires
type Chime struct {
	mu          sync.Mutex
	cfg         AudioConfig
	rate        beep.SampleRate
	initialized bool
	log         zerolog.Logger
}

// NewChime creates a chime, the speaker is opened by Initialize
func NewChime(cfg *AudioConfig, log zerolog.Logger) *Chime {
	if cfg == nil {
		cfg = DefaultAudioConfig()
	}
	return &Chime{
		cfg:  *cfg,
		rate: beep.SampleRate(cfg.SampleRate),
		log:  log,
	}
}

// Initialize opens the speaker. Disabled chimes succeed without touching audio hardware
func (c *Chime) Initialize() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.initialized || !c.cfg.Enabled {
		return nil
	}

	if err := speaker.Init(c.rate, c.rate.N(constants.SpeakerBufferDuration)); err != nil {
		return fmt.Errorf("speaker init: %w", err)
	}
	c.initialized = true
	c.log.Debug().Int("sample_rate", int(c.rate)).Msg("chime speaker ready")
	return nil
}

// Ready reports whether Play will produce sound
func (c *Chime) Ready() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.initialized
}

// Play queues the chime without blocking, no-op when not initialized
func (c *Chime) Play() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}

	s, err := c.Streamer()
	if err != nil {
		c.log.Warn().Err(err).Msg("chime streamer")
		return
	}
	speaker.Play(s)
}

// Close releases the speaker
func (c *Chime) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.initialized {
		return
	}
	speaker.Clear()
	speaker.Close()
	c.initialized = false
}

// Streamer builds the finite tone sequence at the configured volume
func (c *Chime) Streamer() (beep.Streamer, error) {
	toneLen := c.rate.N(constants.ChimeToneDuration)
	gapLen := c.rate.N(constants.ChimeGapDuration)

	parts := make([]beep.Streamer, 0, constants.ChimeRepeats*2)
	for i := 0; i < constants.ChimeRepeats; i++ {
		if i > 0 {
			parts = append(parts, beep.Silence(gapLen))
		}
		// Each tone a major third above the previous
		freq := constants.ChimeFrequency * (1 + 0.25*float64(i))
		tone, err := generators.SineTone(c.rate, freq)
		if err != nil {
			return nil, fmt.Errorf("tone %d: %w", i, err)
		}
		parts = append(parts, beep.Take(toneLen, tone))
	}

	// Gain scales by 1+Gain
	return &effects.Gain{
		Streamer: beep.Seq(parts...),
		Gain:     c.cfg.Volume - 1,
	}, nil
}
