package audio

import (
	"math"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/countdown-tracker/constants"
)

func drain(t *testing.T, c *Chime) (total int, peak float64) {
	t.Helper()
	s, err := c.Streamer()
	require.NoError(t, err)

	buf := make([][2]float64, 512)
	for {
		n, ok := s.Stream(buf)
		for i := 0; i < n; i++ {
			peak = math.Max(peak, math.Abs(buf[i][0]))
		}
		total += n
		if !ok {
			return total, peak
		}
	}
}

func TestChimeStreamerLength(t *testing.T) {
	cfg := DefaultAudioConfig()
	c := NewChime(cfg, zerolog.Nop())

	rate := cfg.SampleRate
	toneLen := rate * int(constants.ChimeToneDuration.Milliseconds()) / 1000
	gapLen := rate * int(constants.ChimeGapDuration.Milliseconds()) / 1000
	expected := constants.ChimeRepeats*toneLen + (constants.ChimeRepeats-1)*gapLen

	total, _ := drain(t, c)
	assert.Equal(t, expected, total)
}

func TestChimeStreamerVolume(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Volume = 0.25
	_, peak := drain(t, NewChime(cfg, zerolog.Nop()))

	assert.Greater(t, peak, 0.0)
	assert.LessOrEqual(t, peak, 0.25+1e-9)

	cfg.Volume = 0
	_, peak = drain(t, NewChime(cfg, zerolog.Nop()))
	assert.Equal(t, 0.0, peak)
}

func TestChimeDisabledSkipsSpeaker(t *testing.T) {
	cfg := DefaultAudioConfig()
	cfg.Enabled = false
	c := NewChime(cfg, zerolog.Nop())

	require.NoError(t, c.Initialize())
	assert.False(t, c.Ready())
	assert.NotPanics(t, c.Play)
	assert.NotPanics(t, c.Close)
}

func TestNewChimeNilConfig(t *testing.T) {
	c := NewChime(nil, zerolog.Nop())
	assert.Equal(t, *DefaultAudioConfig(), c.cfg)
}
