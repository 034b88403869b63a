package engine

import (
	"errors"
	"strconv"
	"strings"
	"time"
)

// Target is the instant a countdown runs toward, resolved once to epoch milliseconds
type Target struct {
	ms    int64
	valid bool
}

// Layouts tried in order by ParseTarget
var (
	// Carry their own offset or Z
	zonedLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00",
	}

	// Date-times without an offset are read in local time
	localLayouts = []string{
		"2006-01-02T15:04:05",
		"2006-01-02T15:04",
		"2006-01-02 15:04:05",
		"2006-01-02 15:04",
	}

	// Date-only forms resolve to UTC midnight
	dateLayouts = []string{
		"2006-01-02",
		"2006-01",
	}
)

// minEpochDigits keeps short digit runs such as an ISO basic date 20251231 from being
// read as milliseconds into 1970
const minEpochDigits = 10

var (
	errEmptyTarget        = errors.New("empty target")
	errZeroTime           = errors.New("zero time")
	errShortEpoch         = errors.New("epoch milliseconds need at least 10 digits")
	errUnrecognizedFormat = errors.New("unrecognized date/time format")
)

// TargetFromTime resolves a structured time value, the zero time is rejected
func TargetFromTime(t time.Time) (Target, error) {
	if t.IsZero() {
		return Target{}, &InvalidTargetError{Input: t.String(), Err: errZeroTime}
	}
	return Target{ms: t.UnixMilli(), valid: true}, nil
}

// TargetFromUnixMilli resolves an epoch millisecond count
func TargetFromUnixMilli(ms int64) Target {
	return Target{ms: ms, valid: true}
}

// ParseTarget resolves a date/time string: RFC 3339 with or without seconds,
// ISO-8601 local date-times, YYYY-MM-DD and YYYY-MM dates, or an epoch millisecond count
func ParseTarget(raw string) (Target, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return Target{}, &InvalidTargetError{Input: raw, Err: errEmptyTarget}
	}

	if isDigits(s) {
		if len(s) < minEpochDigits {
			return Target{}, &InvalidTargetError{Input: raw, Err: errShortEpoch}
		}
		ms, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			return Target{}, &InvalidTargetError{Input: raw, Err: err}
		}
		return TargetFromUnixMilli(ms), nil
	}

	for _, layout := range zonedLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TargetFromTime(t)
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return TargetFromTime(t)
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return TargetFromTime(t)
		}
	}
	return Target{}, &InvalidTargetError{Input: raw, Err: errUnrecognizedFormat}
}

// MustParseTarget is ParseTarget for literals known to be valid, panics otherwise
func MustParseTarget(raw string) Target {
	t, err := ParseTarget(raw)
	if err != nil {
		panic(err)
	}
	return t
}

// UnixMilli returns the resolved instant in epoch milliseconds
func (t Target) UnixMilli() int64 {
	return t.ms
}

// Time returns the target as a local time value
func (t Target) Time() time.Time {
	return time.UnixMilli(t.ms)
}

// IsValid reports whether the target was resolved through a constructor
func (t Target) IsValid() bool {
	return t.valid
}

// RemainingMs is target minus now in milliseconds, negative once expired
func (t Target) RemainingMs(now time.Time) int64 {
	return t.ms - now.UnixMilli()
}

func (t Target) String() string {
	if !t.valid {
		return "<unset>"
	}
	return t.Time().Format(time.RFC3339)
}

func isDigits(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}
