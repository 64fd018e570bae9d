// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package menu

import (
	"time"

	"github.com/GermanBionicSystems/brewpanel/ticks"
)

const (
	// Timeout ends an editing session after this long without a change.
	Timeout = 10 * time.Second
	// BlinkTick is the pause between two polls of the input.
	BlinkTick = 3 * time.Millisecond
	// ShowPhase and HidePhase are the blink counter values at which the
	// candidate is shown and hidden. The counter wraps at 256.
	ShowPhase = 0
	HidePhase = 128
)

// Input is the rotary encoder as seen by the menu.
type Input interface {
	SetRange(start, minimum, maximum int)
	Read() int
	Changed() bool
	Pushed() bool
	ResetPushed()
}

// Handlers are the callbacks of a blink loop. Nil handlers are skipped.
type Handlers struct {
	// OnChange is called when the input moved.
	OnChange func()
	// OnShow draws the candidate.
	OnShow func()
	// OnHide blanks the candidate.
	OnHide func()
	// OnCommit is called once when the button is pushed.
	OnCommit func()
}

// BlinkLoop polls in every BlinkTick, blinking the candidate, until the
// button is pushed or Timeout elapses without a change.
//
// A change restarts the blink cycle, so the new candidate is shown on the
// same tick. A push takes precedence over the blink schedule. It returns
// true when the candidate was committed.
func BlinkLoop(clock ticks.Clock, in Input, h Handlers) bool {
	last := clock.Seconds()
	timeout := uint32(Timeout / time.Second)
	var counter uint8
	for clock.Since(last) < timeout {
		if in.Changed() {
			last = clock.Seconds()
			counter = ShowPhase
			call(h.OnChange)
		}
		if in.Pushed() {
			in.ResetPushed()
			call(h.OnShow)
			call(h.OnCommit)
			return true
		}
		switch counter {
		case ShowPhase:
			call(h.OnShow)
		case HidePhase:
			call(h.OnHide)
		}
		counter++
		clock.Sleep(BlinkTick)
	}
	return false
}

func call(f func()) {
	if f != nil {
		f()
	}
}
