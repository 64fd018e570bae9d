// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

import (
	"fmt"

	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/display"
)

// The methods in this file adapt Dev to periph.io/x/conn/v3/display.TextDisplay.
// Positions there are 1 based, and out of range positions are errors rather
// than clamped.

// AutoScroll enables or disables autoscroll.
func (lcd *Dev) AutoScroll(enabled bool) error {
	lcd.setMode(entryShiftIncrement, enabled)
	return nil
}

// Return the number of columns the display supports
func (lcd *Dev) Cols() int {
	return lcd.opts.Cols
}

// Return the number of rows the display supports.
func (lcd *Dev) Rows() int {
	return lcd.opts.Rows
}

// Return the min column position.
func (lcd *Dev) MinCol() int {
	return 1
}

// Return the min row position.
func (lcd *Dev) MinRow() int {
	return 1
}

// Set the cursor mode. You can pass multiple arguments.
// Cursor(CursorOff, CursorUnderline)
func (lcd *Dev) Cursor(modes ...display.CursorMode) error {
	control := lcd.displayControl
	for _, mode := range modes {
		switch mode {
		case display.CursorOff:
			control &^= cursorOn | blinkOn
		case display.CursorUnderline:
			control |= cursorOn
		case display.CursorBlock, display.CursorBlink:
			control |= blinkOn
		default:
			return fmt.Errorf("hd44780: unexpected cursor: %d", mode)
		}
	}
	lcd.displayControl = control
	return lcd.command(cmdDisplayControl | lcd.displayControl)
}

// Move the cursor forward or backward.
func (lcd *Dev) Move(dir display.CursorDirection) error {
	switch dir {
	case display.Backward:
		// The controller would wrap to the end of the other line.
		if lcd.col == 0 {
			return nil
		}
		lcd.col--
		return lcd.command(cmdCursorShift)
	case display.Forward:
		lcd.col++
		return lcd.command(cmdCursorShift | moveRight)
	case display.Down, display.Up:
		return fmt.Errorf("hd44780: %w", display.ErrNotImplemented)
	default:
		return fmt.Errorf("hd44780: unexpected direction: %d", dir)
	}
}

// MoveTo moves the cursor to row, col, both 1 based.
func (lcd *Dev) MoveTo(row, col int) error {
	if row < lcd.MinRow() || row > lcd.opts.Rows || col < lcd.MinCol() || col > lcd.opts.Cols {
		return fmt.Errorf("hd44780: MoveTo(%d,%d) value out of range", row, col)
	}
	lcd.row, lcd.col = row-1, col-1
	return lcd.command(cmdSetDDRAMAddr | (byte(col-1) + rowOffsets[row-1]))
}

// Display turns the display on or off.
func (lcd *Dev) Display(on bool) error {
	if on {
		lcd.displayControl |= displayOn
	} else {
		lcd.displayControl &^= displayOn
	}
	return lcd.command(cmdDisplayControl | lcd.displayControl)
}

// Halt clears the display, turns the backlight off, and turns the display off.
func (lcd *Dev) Halt() error {
	err := lcd.Clear()
	if e := lcd.Backlight(0); err == nil {
		err = e
	}
	if e := lcd.Display(false); err == nil {
		err = e
	}
	return err
}

var _ display.TextDisplay = &Dev{}
var _ conn.Resource = &Dev{}
