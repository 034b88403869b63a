package constants

import "time"

// Render Loop Timing
const (
	// FrameUpdateInterval is the rendering frame rate interval (~60 FPS)
	FrameUpdateInterval = 16 * time.Millisecond

	// DefaultFrameRate matches FrameUpdateInterval
	DefaultFrameRate = 60

	// MaxFrameRate bounds the configurable frame rate
	MaxFrameRate = 240

	// EventChannelSize is the buffered capacity between the input poller and the render loop
	EventChannelSize = 100
)

// FrameInterval converts a frames-per-second rate to a ticker interval.
// Non-positive rates fall back to FrameUpdateInterval
func FrameInterval(fps int) time.Duration {
	if fps <= 0 {
		return FrameUpdateInterval
	}
	if fps > MaxFrameRate {
		fps = MaxFrameRate
	}
	return time.Second / time.Duration(fps)
}

// Logging
const (
	LogDir      = "logs"
	LogFileName = "countdown.log"
)
