// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// This package provides a driver for the TI/NXP PCF857X I2C I/O Expander. These
// devices provide 8 pins (PCF8574) or 16 pins (PCF8575) of
// "quasi-bidirectional" input/output. This device is commonly used in LCD
// backpacks, particularly those sold as LCD2004, LCD1602.
//
// The PCF8575 is a 16-pin device that is functionally identical to the PCF8574.
// When communicating with the PCF8575 reads and writes are 2 bytes wide, while
// they're one byte wide with the PCF8574.
//
// # Datasheet
//
// https://www.ti.com/lit/ds/symlink/pcf8574.pdf
//
// A good description of the I2C LCD backpack usage can be found here:
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// # Notes
//
// This chip doesn't implement normal i2c register architectures. You write 8 or
// 16 bits out, and that sets the corresponding pins. This driver is output
// only, as the LCD backpack never reads the pins back. Every call to Out is exactly one bus
// transaction, even when the value didn't change. LCD backpacks depend on
// that to clock the enable line.
//
// Setting a pin to Low activates an Open Drain to ground.
package pcf857x

import (
	"errors"
	"fmt"
	"sync"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/gpio"
	"periph.io/x/conn/v3/i2c"
)

// Variant represents the actual chip model.
type Variant string

const (
	PCF8574 Variant = "PCF8574"
	PCF8575 Variant = "PCF8575"

	DefaultAddress uint16 = 0x27
)

var (
	ErrUnknownVariant = errors.New("pcf857x: unknown variant")
)

// Dev is representation of a PCF857x device.
type Dev struct {
	width    int
	mask     gpio.GPIOValue
	chipType Variant

	mu sync.Mutex
	d  *i2c.Dev
}

// New creates a new PCF857x io expander and returns it. chip should be one of
// the Variant constants above. No bus traffic happens until the first Out.
func New(bus i2c.Bus, address uint16, chip Variant) (*Dev, error) {
	dev := &Dev{d: &i2c.Dev{Bus: bus, Addr: address}, chipType: chip}
	switch chip {
	case PCF8574:
		dev.width = 8
	case PCF8575:
		dev.width = 16
	default:
		return nil, fmt.Errorf("%w %q", ErrUnknownVariant, chip)
	}
	dev.mask = gpio.GPIOValue((1 << dev.width) - 1)
	return dev, nil
}

// Width returns the number of GPIO lines of the chip.
func (dev *Dev) Width() int {
	return dev.width
}

// Out writes value to the output latch in a single transaction. Bits beyond
// the chip width are ignored.
func (dev *Dev) Out(value gpio.GPIOValue) error {
	dev.mu.Lock()
	defer dev.mu.Unlock()
	return dev.write(value & dev.mask)
}

// write performs the low-level write to the device. dev.mu must be held.
func (dev *Dev) write(value gpio.GPIOValue) error {
	w := make([]byte, dev.width/8)
	for ix := range w {
		w[ix] = byte(value >> (ix * 8))
	}
	if err := dev.d.Tx(w, nil); err != nil {
		return fmt.Errorf("pcf857x: %w", err)
	}
	return nil
}

// Halt releases all pins by writing them High, which is the power-on state
// of the chip.
func (dev *Dev) Halt() error {
	return dev.Out(dev.mask)
}

func (dev *Dev) String() string {
	return fmt.Sprintf("%s_%x", dev.chipType, dev.d.Addr)
}

var _ conn.Resource = &Dev{}
