// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import "periph.io/x/conn/v3/gpio"

// command sends value with RS low.
func (lcd *Dev) command(value byte) error {
	return lcd.send(value, 0)
}

// send writes value as two nibbles, high first. mode holds the low control
// bits, bitRS for data or 0 for a command.
func (lcd *Dev) send(value, mode byte) error {
	err := lcd.write4Bits(value&0xf0 | mode)
	if e := lcd.write4Bits(value<<4 | mode); err == nil {
		err = e
	}
	return err
}

// write4Bits presents value on the expander and latches it with an enable
// pulse. The nibble must already be in the upper 4 bits.
func (lcd *Dev) write4Bits(value byte) error {
	err := lcd.expanderWrite(value)
	if e := lcd.pulseEnable(value); err == nil {
		err = e
	}
	return err
}

func (lcd *Dev) pulseEnable(value byte) error {
	err := lcd.expanderWrite(value | bitEnable)
	lcd.clock.Sleep(delayEnablePulse)
	if e := lcd.expanderWrite(value &^ bitEnable); err == nil {
		err = e
	}
	lcd.clock.Sleep(delaySettle)
	return err
}

// expanderWrite is the only place talking to the bus. The backlight bit is
// added to every byte.
func (lcd *Dev) expanderWrite(value byte) error {
	err := lcd.reg.Out(gpio.GPIOValue(value | lcd.backlight))
	if err != nil {
		if lcd.busErrors == 0 {
			log.WithError(err).Warn("expander write failed, continuing without display")
		}
		lcd.busErrors++
	}
	return err
}
