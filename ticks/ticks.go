// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package ticks provides the time source shared by the display driver and the
// menu: a monotonic seconds counter and a blocking sleep.
//
// Seconds wrap at 2^32. Since uses unsigned subtraction so that elapsed time
// stays correct across a wrap.
package ticks

import (
	"sync"
	"time"
)

// Clock is a monotonic time source.
type Clock interface {
	// Seconds returns the number of seconds since the clock started.
	Seconds() uint32
	// Since returns the seconds elapsed since t, a value previously returned
	// by Seconds.
	Since(t uint32) uint32
	// Sleep blocks for d.
	Sleep(d time.Duration)
}

type hostClock struct {
	start time.Time
}

var (
	hostOnce sync.Once
	host     *hostClock
)

// Host returns the process wide clock backed by the monotonic time of the
// host.
func Host() Clock {
	hostOnce.Do(func() {
		host = &hostClock{start: time.Now()}
	})
	return host
}

func (c *hostClock) Seconds() uint32 {
	return uint32(time.Since(c.start) / time.Second)
}

func (c *hostClock) Since(t uint32) uint32 {
	return c.Seconds() - t
}

func (c *hostClock) Sleep(d time.Duration) {
	time.Sleep(d)
}

func (c *hostClock) String() string {
	return "ticks.Host"
}

var _ Clock = &hostClock{}
