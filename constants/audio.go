package constants

import "time"

// Expiry Chime
const (
	// ChimeFrequency is the fundamental of each chime tone in Hz
	ChimeFrequency = 880.0

	// ChimeToneDuration is the length of one tone
	ChimeToneDuration = 180 * time.Millisecond

	// ChimeGapDuration is the silence between tones
	ChimeGapDuration = 90 * time.Millisecond

	// ChimeRepeats is the number of tones played on expiry
	ChimeRepeats = 3

	// DefaultSampleRate for speaker initialization
	DefaultSampleRate = 48000

	// SpeakerBufferDuration is the speaker buffer length passed to speaker.Init
	SpeakerBufferDuration = 100 * time.Millisecond
)

// Audio environment overrides
const (
	EnvAudioEnabled = "COUNTDOWN_AUDIO_ENABLED"
	EnvVolume       = "COUNTDOWN_VOLUME"
	EnvSampleRate   = "COUNTDOWN_SAMPLE_RATE"
)
