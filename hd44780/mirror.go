// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package hd44780

// WriteByte writes c at the cursor and advances the cursor one column. The
// character is recorded in the mirror; it's sent to the display unless the
// driver is in buffer only mode.
//
// A column past the end of the line is sent but not mirrored.
func (lcd *Dev) WriteByte(c byte) error {
	if lcd.col < lcd.opts.Cols {
		lcd.content[lcd.row][lcd.col] = c
	}
	lcd.col++
	if lcd.bufferOnly {
		return nil
	}
	return lcd.send(c, bitRS)
}

// Write writes p through WriteByte. It always returns len(p) and the first
// bus error.
func (lcd *Dev) Write(p []byte) (n int, err error) {
	for _, c := range p {
		if e := lcd.WriteByte(c); err == nil {
			err = e
		}
		n++
	}
	return n, err
}

// WriteString writes text through WriteByte.
func (lcd *Dev) WriteString(text string) (n int, err error) {
	for ix := 0; ix < len(text); ix++ {
		if e := lcd.WriteByte(text[ix]); err == nil {
			err = e
		}
		n++
	}
	return n, err
}

// Print writes s at the cursor. Bytes are sent as is, use the HD44780 ROM
// code for anything outside ASCII.
func (lcd *Dev) Print(s string) {
	_, _ = lcd.WriteString(s)
}

// PrintAt moves the cursor to col, row and writes s.
func (lcd *Dev) PrintAt(col, row int, s string) {
	lcd.SetCursor(col, row)
	lcd.Print(s)
}

// PrintSpacesToRestOfLine blanks the current line from the cursor to the
// last column.
func (lcd *Dev) PrintSpacesToRestOfLine() {
	for lcd.col < lcd.opts.Cols {
		_ = lcd.WriteByte(' ')
	}
}

// SetBufferOnly switches buffer only mode. In that mode writes only update
// the mirror and generate no bus traffic.
func (lcd *Dev) SetBufferOnly(on bool) {
	lcd.bufferOnly = on
}

// BufferOnly reports whether buffer only mode is on.
func (lcd *Dev) BufferOnly() bool {
	return lcd.bufferOnly
}

// GetLine copies the mirrored content of row into buf and terminates it with
// a 0 byte. buf must hold Cols()+1 bytes; a shorter buf gets as much as fits.
// The legacy degree glyph is reported as 0xB0. It returns the number of
// characters copied.
func (lcd *Dev) GetLine(row int, buf []byte) int {
	if row < 0 || row >= lcd.opts.Rows || len(buf) == 0 {
		return 0
	}
	n := min(lcd.opts.Cols, len(buf)-1)
	src := lcd.content[row]
	for ix := range n {
		c := src[ix]
		if c == degreeSource {
			c = degreeDisplay
		}
		buf[ix] = c
	}
	buf[n] = 0
	return n
}

// Line returns the mirrored content of row, see GetLine.
func (lcd *Dev) Line(row int) string {
	buf := make([]byte, lcd.opts.Cols+1)
	n := lcd.GetLine(row, buf)
	return string(buf[:n])
}

func (lcd *Dev) fillMirror() {
	for _, line := range lcd.content {
		for ix := range lcd.opts.Cols {
			line[ix] = ' '
		}
		line[lcd.opts.Cols] = 0
	}
}
