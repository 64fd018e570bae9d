// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tickstest

import (
	"testing"
	"time"
)

func TestClock(t *testing.T) {
	c := &Clock{}
	var calls int
	c.OnSleep = func(time.Duration) { calls++ }
	stamp := c.Seconds()
	c.Sleep(1500 * time.Millisecond)
	c.Advance(time.Second)
	if got := c.Since(stamp); got != 2 {
		t.Errorf("Since() expected 2, received %d", got)
	}
	if c.Slept != 1500*time.Millisecond {
		t.Errorf("Slept expected 1.5s, received %s", c.Slept)
	}
	if calls != 1 {
		t.Errorf("OnSleep expected 1 call, received %d", calls)
	}
}
