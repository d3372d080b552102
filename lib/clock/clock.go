// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

// Package clock abstracts timer scheduling so the escalation timeout
// guard can be tested deterministically. Production code injects
// [Real]; tests inject [Fake] and drive time with Advance.
package clock

import "time"

// Clock schedules deferred work. The escalation orchestrator never
// reads wall-clock time for protocol decisions; it only arms and
// disarms a deadline, so the interface stays deliberately narrow.
type Clock interface {
	// Now returns the current time.
	Now() time.Time

	// AfterFunc waits for duration d, then calls f in its own
	// goroutine (real clock) or synchronously during Advance (fake
	// clock). The returned Timer cancels the pending call with Stop.
	AfterFunc(d time.Duration, f func()) Timer
}

// Timer is a handle to a pending AfterFunc call.
type Timer interface {
	// Stop prevents the timer from firing. Returns true if the call
	// stops the timer, false if it already fired or was stopped.
	Stop() bool
}
