// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"github.com/GermanBionicSystems/brewpanel/pcf857x"
	"periph.io/x/conn/v3/i2c"
)

// NewPCF857xBackpack returns a display configured to use the pcf8574 i2c
// backpacks.
//
// # Product Information
//
// https://www.handsontec.com/dataspecs/I2C_2004_LCD.pdf
//
// The backpack wires the expander as RS=P0, RW=P1, E=P2, backlight=P3 and
// D4-D7=P4-P7, which is the bit layout the driver uses. R/W is always driven
// low. Call Init on the result before use.
func NewPCF857xBackpack(bus i2c.Bus, address uint16, opts *Opts) (*Dev, error) {
	pcf, err := pcf857x.New(bus, address, pcf857x.PCF8574)
	if err != nil {
		return nil, err
	}
	return New(pcf, opts)
}
