// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package escalate

import (
	"time"

	"github.com/rootwrite/rootwrite/lib/clock"
)

// timeoutGuard owns the single outstanding protocol deadline. Arming
// replaces any previous timer rather than stacking a second one, and
// each arming gets a fresh fire channel, so a stale fire from a
// superseded timer can never be observed: the event loop only ever
// selects on the channel of the currently armed timer.
//
// Not safe for concurrent use; only the event loop touches it. The
// timer callback runs on another goroutine but writes solely to its
// own captured channel.
type timeoutGuard struct {
	clock    clock.Clock
	duration time.Duration

	timer clock.Timer
	fired chan struct{}
}

func newTimeoutGuard(clk clock.Clock, duration time.Duration) *timeoutGuard {
	return &timeoutGuard{clock: clk, duration: duration}
}

// Arm starts the deadline, replacing any previous one.
func (g *timeoutGuard) Arm() {
	g.Disarm()

	fired := make(chan struct{}, 1)
	g.fired = fired
	g.timer = g.clock.AfterFunc(g.duration, func() {
		fired <- struct{}{}
	})
}

// Disarm stops the deadline. Selecting on C afterwards blocks forever.
func (g *timeoutGuard) Disarm() {
	if g.timer != nil {
		g.timer.Stop()
		g.timer = nil
	}
	g.fired = nil
}

// C returns the fire channel of the currently armed timer, or nil
// (never ready) when disarmed.
func (g *timeoutGuard) C() <-chan struct{} {
	if g.fired == nil {
		return nil
	}
	return g.fired
}
