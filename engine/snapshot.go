package engine

import "fmt"

// Field unit sizes in milliseconds
const (
	msPerSecond = 1000
	msPerMinute = 60 * msPerSecond
	msPerHour   = 60 * msPerMinute
	msPerDay    = 24 * msPerHour

	// DaysWrap caps the days field at two digits, 30 days remaining displays as 00
	DaysWrap = 30
)

// Snapshot is one tick's formatted fields, replaced whole on every tick
type Snapshot struct {
	Days    string `json:"days"`
	Hours   string `json:"hours"`
	Minutes string `json:"minutes"`
	Seconds string `json:"seconds"`

	RemainingMs int64 `json:"remaining_ms"`
}

// ZeroSnapshot is the display state before the first tick
var ZeroSnapshot = Snapshot{Days: "00", Hours: "00", Minutes: "00", Seconds: "00"}

// ComputeSnapshot converts a non-negative remaining duration into display fields.
// Negative input is clamped to zero; the engine never publishes it
func ComputeSnapshot(remainingMs int64) Snapshot {
	if remainingMs < 0 {
		remainingMs = 0
	}
	return Snapshot{
		Days:        pad2((remainingMs / msPerDay) % DaysWrap),
		Hours:       pad2((remainingMs / msPerHour) % 24),
		Minutes:     pad2((remainingMs / msPerMinute) % 60),
		Seconds:     pad2((remainingMs / msPerSecond) % 60),
		RemainingMs: remainingMs,
	}
}

// String renders DD:HH:MM:SS
func (s Snapshot) String() string {
	return s.Days + ":" + s.Hours + ":" + s.Minutes + ":" + s.Seconds
}

// Fields returns the values in display order: days, hours, minutes, seconds
func (s Snapshot) Fields() [4]string {
	return [4]string{s.Days, s.Hours, s.Minutes, s.Seconds}
}

// pad2 formats with at least two digits, wider values are kept intact
func pad2(v int64) string {
	return fmt.Sprintf("%02d", v)
}
