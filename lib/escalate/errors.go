// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package escalate

import (
	"errors"
	"fmt"
	"time"
)

// ErrCancelled is returned when the user dismisses the credential
// prompt. Callers treat it as a silent abort: nothing is shown to the
// user on this path.
var ErrCancelled = errors.New("escalate: cancelled by user")

// TimeoutError is returned when the helper produced no protocol
// progress within the configured bound while the user was not being
// prompted. The helper process has been killed by the time the caller
// sees this.
type TimeoutError struct {
	// Duration is the configured timeout that elapsed.
	Duration time.Duration

	// Diagnostic is whatever stderr text had accumulated when the
	// timeout fired.
	Diagnostic string
}

// Error implements error.
func (e *TimeoutError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("escalate: no response from helper within %v: %s", e.Duration, e.Diagnostic)
	}
	return fmt.Sprintf("escalate: no response from helper within %v", e.Duration)
}

// HelperExitError is returned when the helper exits nonzero: wrong
// password attempts exhausted, permission denied, unwritable path.
type HelperExitError struct {
	// Code is the helper's exit code.
	Code int

	// Diagnostic is the stderr text accumulated since the last
	// protocol marker, surfaced verbatim to the user.
	Diagnostic string
}

// Error implements error.
func (e *HelperExitError) Error() string {
	if e.Diagnostic != "" {
		return fmt.Sprintf("escalate: helper exited with status %d: %s", e.Code, e.Diagnostic)
	}
	return fmt.Sprintf("escalate: helper exited with status %d", e.Code)
}
