// Copyright 2026 The Rootwrite Authors
// SPDX-License-Identifier: Apache-2.0

package clock

import (
	"sort"
	"sync"
	"time"
)

// Fake returns a FakeClock initialized to the given time. Time stands
// still until Advance is called; pending AfterFunc callbacks whose
// deadlines are crossed fire synchronously, in deadline order.
//
// FakeClock is safe for concurrent use by multiple goroutines, but do
// not call Advance from within a callback — that would deadlock.
func Fake(initial time.Time) *FakeClock {
	return &FakeClock{current: initial}
}

// FakeClock is a deterministic Clock for tests.
type FakeClock struct {
	mu      sync.Mutex
	current time.Time
	waiters []*fakeTimer
}

// fakeTimer is a pending AfterFunc registration.
type fakeTimer struct {
	clock    *FakeClock
	deadline time.Time
	callback func()
	stopped  bool
	fired    bool
}

// Now returns the current fake time.
func (c *FakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// AfterFunc registers f to fire when the clock advances past d from
// now. If d <= 0, f fires on the next Advance call, not immediately.
func (c *FakeClock) AfterFunc(d time.Duration, f func()) Timer {
	c.mu.Lock()
	defer c.mu.Unlock()

	timer := &fakeTimer{
		clock:    c,
		deadline: c.current.Add(d),
		callback: f,
	}
	c.waiters = append(c.waiters, timer)
	return timer
}

// Advance moves the fake time forward by d and fires every pending
// timer whose deadline has been reached, in deadline order. Callbacks
// run synchronously with the clock's lock released, so they may arm
// new timers.
func (c *FakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	c.current = c.current.Add(d)
	now := c.current

	var due []*fakeTimer
	var remaining []*fakeTimer
	for _, timer := range c.waiters {
		if timer.stopped || timer.fired {
			continue
		}
		if !timer.deadline.After(now) {
			timer.fired = true
			due = append(due, timer)
		} else {
			remaining = append(remaining, timer)
		}
	}
	c.waiters = remaining
	sort.Slice(due, func(i, j int) bool { return due[i].deadline.Before(due[j].deadline) })
	c.mu.Unlock()

	for _, timer := range due {
		timer.callback()
	}
}

// Pending reports how many timers are armed. Tests use this to assert
// the replace-not-stack invariant of the timeout guard.
func (c *FakeClock) Pending() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	count := 0
	for _, timer := range c.waiters {
		if !timer.stopped && !timer.fired {
			count++
		}
	}
	return count
}

func (t *fakeTimer) Stop() bool {
	t.clock.mu.Lock()
	defer t.clock.mu.Unlock()

	if t.stopped || t.fired {
		return false
	}
	t.stopped = true
	return true
}
