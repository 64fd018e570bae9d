// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package hd44780 controls the Hitachi LCD display chipset HD-44780 wired in
// 4 bit mode behind an 8 bit I²C GPIO expander, the common LCD1602/LCD2004
// "backpack".
//
// Every logical byte is sent as two nibbles. Each nibble is three expander
// writes: data with enable low, enable high, enable low. The expander byte
// carries the nibble in its upper 4 bits, the register select, read/write and
// enable lines in the low bits, and the backlight bit, which is OR'd into
// every write so the backlight survives all bus traffic.
//
// The driver keeps a mirror of the characters written through WriteByte, so
// the content of the screen can be read back with GetLine.
//
// Bus failures are tolerated: an operation always runs to completion, its
// delays still elapse and the mirror is still updated. The first failure is
// logged and all are counted by BusErrors.
//
// # Datasheet
//
// https://www.sparkfun.com/datasheets/LCD/HD44780.pdf
package hd44780

import (
	"errors"
	"fmt"
	"time"

	"github.com/GermanBionicSystems/brewpanel/ticks"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio"
)

// Commands.
const (
	cmdClearDisplay   byte = 0x01
	cmdReturnHome     byte = 0x02
	cmdEntryModeSet   byte = 0x04
	cmdDisplayControl byte = 0x08
	cmdCursorShift    byte = 0x10
	cmdFunctionSet    byte = 0x20
	cmdSetCGRAMAddr   byte = 0x40
	cmdSetDDRAMAddr   byte = 0x80
)

// Flags of the commands above.
const (
	// cmdEntryModeSet
	entryLeft           byte = 0x02
	entryShiftIncrement byte = 0x01

	// cmdDisplayControl
	displayOn byte = 0x04
	cursorOn  byte = 0x02
	blinkOn   byte = 0x01

	// cmdCursorShift
	displayMove byte = 0x08
	moveRight   byte = 0x04

	// cmdFunctionSet
	mode4Bit byte = 0x00
	twoLines byte = 0x08
	dots5x8  byte = 0x00
)

// Bits of the expander byte.
const (
	bitRS        byte = 0x01
	bitRW        byte = 0x02
	bitEnable    byte = 0x04
	bitBacklight byte = 0x08
)

// Protocol delays. The datasheet minimums are in the comments, the values
// used are widened.
const (
	delayPowerOn     = 50 * time.Millisecond
	delayReset       = time.Second
	delayInit8Bit    = 4500 * time.Microsecond // 4.1ms
	delayInitLast    = 150 * time.Microsecond  // 100µs
	delayEnablePulse = time.Microsecond        // 450ns
	delaySettle      = 50 * time.Microsecond   // 37µs
	delayClearHome   = 2 * time.Millisecond    // 1.52ms
)

const (
	maxRows = 4
	maxCols = 40

	// degreeSource is the byte written for a degree sign; degreeDisplay is
	// the code point reported for it by GetLine.
	degreeSource  byte = 0b11011111
	degreeDisplay byte = 0xb0
)

var rowOffsets = [maxRows]byte{0x00, 0x40, 0x14, 0x54}

var (
	ErrGeometry = errors.New("hd44780: invalid geometry")

	log = logrus.WithField("pkg", "hd44780")
)

// Register is the output latch of an 8 bit I²C GPIO expander. Each call to
// Out must be exactly one bus transaction.
type Register interface {
	Out(value gpio.GPIOValue) error
}

// Opts holds the configuration of the display.
type Opts struct {
	// Cols and Rows are the geometry of the display, typically 20×4 or 16×2.
	Cols int
	Rows int
	// BacklightTimeout is the inactivity period after which UpdateBacklight
	// turns the backlight off. Zero disables the timeout.
	BacklightTimeout time.Duration
	// Simulate forces the backlight off, for devices running without
	// hardware.
	Simulate bool
	// Clock is the time source for delays and the backlight timer. Defaults
	// to ticks.Host().
	Clock ticks.Clock
}

// Dev is a HD44780 display behind an I²C expander.
//
// Dev is not safe for concurrent use.
type Dev struct {
	reg   Register
	clock ticks.Clock
	opts  Opts

	displayFunction byte
	displayControl  byte
	displayMode     byte
	backlight       byte
	backlightTime   uint32
	bufferOnly      bool

	row     int
	col     int
	content [][]byte

	busErrors int
}

// New returns a display writing to reg. The geometry is validated here and
// the content mirror is sized from it.
//
// New doesn't talk to the display, call Init once before anything else.
func New(reg Register, opts *Opts) (*Dev, error) {
	if opts.Rows < 1 || opts.Rows > maxRows || opts.Cols < 1 || opts.Cols > maxCols {
		return nil, fmt.Errorf("%w: %d×%d", ErrGeometry, opts.Cols, opts.Rows)
	}
	lcd := &Dev{reg: reg, clock: opts.Clock, opts: *opts}
	if lcd.clock == nil {
		lcd.clock = ticks.Host()
	}
	lcd.content = make([][]byte, opts.Rows)
	for ix := range lcd.content {
		lcd.content[ix] = make([]byte, opts.Cols+1)
	}
	lcd.fillMirror()
	return lcd, nil
}

// Init runs the power-on sequence of the HD44780 for 4 bit operation, as
// documented in the datasheet, then turns the display on, clears it and
// moves the cursor home.
func (lcd *Dev) Init() {
	lcd.displayFunction = mode4Bit | dots5x8
	if lcd.opts.Rows > 1 {
		lcd.displayFunction |= twoLines
	}
	lcd.row, lcd.col = 0, 0

	lcd.clock.Sleep(delayPowerOn)
	// Pull RS and R/W low to begin commands.
	_ = lcd.expanderWrite(0)
	lcd.clock.Sleep(delayReset)

	// The controller starts in 8 bit mode, or is in an unknown state. Force
	// 8 bit mode three times, then switch to 4 bit mode.
	_ = lcd.write4Bits(0x03 << 4)
	lcd.clock.Sleep(delayInit8Bit)
	_ = lcd.write4Bits(0x03 << 4)
	lcd.clock.Sleep(delayInit8Bit)
	_ = lcd.write4Bits(0x03 << 4)
	lcd.clock.Sleep(delayInitLast)
	_ = lcd.write4Bits(0x02 << 4)

	_ = lcd.command(cmdFunctionSet | lcd.displayFunction)

	lcd.displayControl = displayOn
	_ = lcd.command(cmdDisplayControl | lcd.displayControl)

	_ = lcd.Clear()

	lcd.displayMode = entryLeft
	_ = lcd.command(cmdEntryModeSet | lcd.displayMode)

	_ = lcd.Home()
	lcd.backlightTime = lcd.clock.Seconds()
}

// Clear clears the display and the mirror and moves the cursor to (0,0).
func (lcd *Dev) Clear() error {
	err := lcd.command(cmdClearDisplay)
	lcd.fillMirror()
	lcd.row, lcd.col = 0, 0
	lcd.clock.Sleep(delayClearHome)
	return err
}

// Home moves the cursor to (0,0). The content is left alone.
func (lcd *Dev) Home() error {
	err := lcd.command(cmdReturnHome)
	lcd.row, lcd.col = 0, 0
	lcd.clock.Sleep(delayClearHome)
	return err
}

// SetCursor moves the cursor to col, row, both 0 based. A row past the last
// line is clamped to the last line. col is not clamped past the end of the
// line: keeping text inside the line is up to the caller, and characters
// written beyond the last column reach the controller but not the mirror.
func (lcd *Dev) SetCursor(col, row int) {
	row = clamp(row, 0, lcd.opts.Rows-1)
	col = max(col, 0)
	lcd.row, lcd.col = row, col
	_ = lcd.command(cmdSetDDRAMAddr | (byte(col)+rowOffsets[row])&0x7f)
}

// CursorPos returns the logical cursor position.
func (lcd *Dev) CursorPos() (col, row int) {
	return lcd.col, lcd.row
}

// DisplayOn turns the display on.
func (lcd *Dev) DisplayOn() {
	lcd.setControl(displayOn, true)
}

// DisplayOff turns the display off. The content is retained.
func (lcd *Dev) DisplayOff() {
	lcd.setControl(displayOn, false)
}

// CursorOn shows the underline cursor.
func (lcd *Dev) CursorOn() {
	lcd.setControl(cursorOn, true)
}

// CursorOff hides the underline cursor.
func (lcd *Dev) CursorOff() {
	lcd.setControl(cursorOn, false)
}

// BlinkOn turns on the blinking block cursor.
func (lcd *Dev) BlinkOn() {
	lcd.setControl(blinkOn, true)
}

// BlinkOff turns off the blinking block cursor.
func (lcd *Dev) BlinkOff() {
	lcd.setControl(blinkOn, false)
}

// LeftToRight makes text flow left to right.
func (lcd *Dev) LeftToRight() {
	lcd.setMode(entryLeft, true)
}

// RightToLeft makes text flow right to left.
func (lcd *Dev) RightToLeft() {
	lcd.setMode(entryLeft, false)
}

// AutoscrollOn right justifies text from the cursor.
func (lcd *Dev) AutoscrollOn() {
	lcd.setMode(entryShiftIncrement, true)
}

// AutoscrollOff left justifies text from the cursor.
func (lcd *Dev) AutoscrollOff() {
	lcd.setMode(entryShiftIncrement, false)
}

// ScrollDisplayLeft shifts the whole display one position left.
//
// The mirror is not shifted; GetLine keeps returning what was written.
func (lcd *Dev) ScrollDisplayLeft() {
	_ = lcd.command(cmdCursorShift | displayMove)
}

// ScrollDisplayRight shifts the whole display one position right.
func (lcd *Dev) ScrollDisplayRight() {
	_ = lcd.command(cmdCursorShift | displayMove | moveRight)
}

// CreateChar fills one of the 8 user defined characters. slot is masked to
// 0-7; the character is then displayed by writing byte(slot).
//
// The address counter is left in character generator RAM, call SetCursor
// before writing text again.
func (lcd *Dev) CreateChar(slot int, bitmap [8]byte) {
	slot &= 0x7
	_ = lcd.command(cmdSetCGRAMAddr | byte(slot<<3))
	for _, row := range bitmap {
		_ = lcd.send(row, bitRS)
	}
}

// BusErrors returns the number of expander writes that failed.
func (lcd *Dev) BusErrors() int {
	return lcd.busErrors
}

func (lcd *Dev) String() string {
	return fmt.Sprintf("HD44780::%v - Rows: %d, Cols: %d", lcd.reg, lcd.opts.Rows, lcd.opts.Cols)
}

func (lcd *Dev) setControl(flag byte, on bool) {
	if on {
		lcd.displayControl |= flag
	} else {
		lcd.displayControl &^= flag
	}
	_ = lcd.command(cmdDisplayControl | lcd.displayControl)
}

func (lcd *Dev) setMode(flag byte, on bool) {
	if on {
		lcd.displayMode |= flag
	} else {
		lcd.displayMode &^= flag
	}
	_ = lcd.command(cmdEntryModeSet | lcd.displayMode)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
