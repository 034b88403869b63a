package engine

import (
	"errors"
	"fmt"
)

// ErrInvalidTarget is matched by every target resolution failure
var ErrInvalidTarget = errors.New("invalid countdown target")

// InvalidTargetError reports a target that cannot be resolved to a single instant
type InvalidTargetError struct {
	Input string
	Err   error
}

func (e *InvalidTargetError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%v: %q", ErrInvalidTarget, e.Input)
	}
	return fmt.Sprintf("%v: %q: %v", ErrInvalidTarget, e.Input, e.Err)
}

// Unwrap exposes both the sentinel and the underlying parse failure
func (e *InvalidTargetError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrInvalidTarget}
	}
	return []error{ErrInvalidTarget, e.Err}
}
