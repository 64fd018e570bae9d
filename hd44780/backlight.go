// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"time"

	"periph.io/x/conn/v3/display"
)

// BacklightOn turns the backlight on. The expander is written right away.
func (lcd *Dev) BacklightOn() {
	lcd.backlight = bitBacklight
	_ = lcd.expanderWrite(0)
}

// BacklightOff turns the backlight off. The expander is written right away.
func (lcd *Dev) BacklightOff() {
	lcd.backlight = 0
	_ = lcd.expanderWrite(0)
}

// BacklightIsOn reports the effective backlight state.
func (lcd *Dev) BacklightIsOn() bool {
	return lcd.backlight != 0
}

// Backlight implements display.DisplayBacklight. Any intensity above 0 turns
// the backlight on.
func (lcd *Dev) Backlight(intensity display.Intensity) error {
	if intensity > 0 {
		lcd.backlight = bitBacklight
	} else {
		lcd.backlight = 0
	}
	return lcd.expanderWrite(0)
}

// ResetBacklightTimer records user activity, restarting the auto-off period.
func (lcd *Dev) ResetBacklightTimer() {
	lcd.backlightTime = lcd.clock.Seconds()
}

// UpdateBacklight applies the auto-off policy: the backlight is off in
// simulation, or when the timeout is set and more than that has passed
// since the last ResetBacklightTimer. Otherwise it's on.
func (lcd *Dev) UpdateBacklight() {
	idle := time.Duration(lcd.clock.Since(lcd.backlightTime)) * time.Second
	off := lcd.opts.Simulate || (lcd.opts.BacklightTimeout != 0 && idle > lcd.opts.BacklightTimeout)
	if off {
		lcd.BacklightOff()
	} else {
		lcd.BacklightOn()
	}
}

var _ display.DisplayBacklight = &Dev{}
