// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package encoder keeps the state of a rotary encoder with a push button: a
// bounded position, a changed flag and a latched push.
//
// Decoding the quadrature pulses is left to the caller, which feeds steps
// with Turn. The push button can be fed with Push, or watched on a GPIO pin
// with WatchButton.
package encoder

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

var log = logrus.WithField("pkg", "encoder")

// Dev is a rotary encoder. It's safe for concurrent use: the menu polls it
// while another goroutine feeds it.
type Dev struct {
	mu       sync.Mutex
	steps    int
	prevRead int
	minimum  int
	maximum  int
	pushed   bool
}

// New returns an encoder with the range [0, 0].
func New() *Dev {
	return &Dev{}
}

// SetRange sets the position to start and bounds it to [minimum, maximum].
// The position is not clamped; Turn brings it back into range.
func (e *Dev) SetRange(start, minimum, maximum int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.steps = start
	e.prevRead = start
	e.minimum = minimum
	e.maximum = maximum
}

// Read returns the current position.
func (e *Dev) Read() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.steps
}

// Changed reports whether the position moved since the previous call.
func (e *Dev) Changed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.steps == e.prevRead {
		return false
	}
	e.prevRead = e.steps
	return true
}

// Pushed reports whether the button was pushed since the last ResetPushed.
func (e *Dev) Pushed() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.pushed
}

// ResetPushed clears the push latch.
func (e *Dev) ResetPushed() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pushed = false
}

// Turn moves the position by steps, clamped to the range.
func (e *Dev) Turn(steps int) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.steps = max(e.minimum, min(e.steps+steps, e.maximum))
}

// Push latches a button push.
func (e *Dev) Push() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.pushed = true
}

func (e *Dev) String() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return fmt.Sprintf("encoder{%d in [%d,%d], pushed=%t}", e.steps, e.minimum, e.maximum, e.pushed)
}

// WatchButton latches a push for every falling edge on pin, which must be
// wired active low. It returns when ctx is done, or with an error if the pin
// can't be set up for edge detection.
func (e *Dev) WatchButton(ctx context.Context, pin gpio.PinIn) error {
	if err := pin.In(gpio.PullUp, gpio.FallingEdge); err != nil {
		return fmt.Errorf("encoder: %s: %w", pin, err)
	}
	log.WithField("pin", pin.String()).Debug("watching push button")
	for {
		select {
		case <-ctx.Done():
			return nil
		default:
		}
		if pin.WaitForEdge(100 * time.Millisecond) {
			e.Push()
		}
	}
}
