// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tickstest implements a fake ticks.Clock for unit tests.
package tickstest

import (
	"sync"
	"time"

	"github.com/GermanBionicSystems/brewpanel/ticks"
)

// Clock is a ticks.Clock where time only moves on Sleep or Advance.
//
// Sleep returns immediately after advancing the clock, so code that blocks
// for seconds runs instantly under test.
type Clock struct {
	sync.Mutex
	// Now is the time elapsed since the clock started.
	Now time.Duration
	// Slept accumulates every duration passed to Sleep.
	Slept time.Duration
	// OnSleep, when set, is called after every Sleep with the new time.
	OnSleep func(now time.Duration)
}

// Seconds implements ticks.Clock.
func (c *Clock) Seconds() uint32 {
	c.Lock()
	defer c.Unlock()
	return uint32(c.Now / time.Second)
}

// Since implements ticks.Clock.
func (c *Clock) Since(t uint32) uint32 {
	return c.Seconds() - t
}

// Sleep implements ticks.Clock.
func (c *Clock) Sleep(d time.Duration) {
	c.Lock()
	c.Now += d
	c.Slept += d
	now := c.Now
	f := c.OnSleep
	c.Unlock()
	if f != nil {
		f(now)
	}
}

// Advance moves the clock forward without counting it as sleep.
func (c *Clock) Advance(d time.Duration) {
	c.Lock()
	defer c.Unlock()
	c.Now += d
}

func (c *Clock) String() string {
	return "tickstest.Clock"
}

var _ ticks.Clock = &Clock{}
