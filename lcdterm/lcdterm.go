// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package lcdterm mirrors a character LCD in the terminal using ANSI escape
// codes.
//
// Useful to run the panel without the hardware, or to watch what a remote
// panel shows.
package lcdterm

import (
	"bytes"
	"fmt"
	"image/color"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/maruel/ansi256"
	"github.com/mattn/go-colorable"
)

// Opts represents the options available for this display.
type Opts struct {
	// W receives the output. Defaults to a colorable stdout.
	W io.Writer
	// Palette renders the backlight indicator. Defaults to ansi256.Default.
	Palette *ansi256.Palette
	// On and Off are the backlight indicator colors.
	On  color.NRGBA
	Off color.NRGBA

	_ struct{}
}

// Backlight colors of the common blue HD44780 modules.
var (
	DefaultOn  = color.NRGBA{0x20, 0x60, 0xFF, 0xFF}
	DefaultOff = color.NRGBA{0x00, 0x00, 0x00, 0xFF}
)

// Dev draws LCD lines framed in the terminal, redrawing in place.
type Dev struct {
	w       io.Writer
	palette ansi256.Palette
	on      color.NRGBA
	off     color.NRGBA

	drawn int
	buf   bytes.Buffer
}

// New returns a Dev that displays at the console.
func New(opts *Opts) *Dev {
	if opts == nil {
		opts = &Opts{}
	}
	p := opts.Palette
	if p == nil {
		p = ansi256.Default
	}
	d := &Dev{
		w:       opts.W,
		palette: *p,
		on:      opts.On,
		off:     opts.Off,
	}
	if d.w == nil {
		d.w = colorable.NewColorableStdout()
	}
	if d.on == (color.NRGBA{}) {
		d.on = DefaultOn
	}
	if d.off == (color.NRGBA{}) {
		d.off = DefaultOff
	}
	return d
}

func (d *Dev) String() string {
	return "LCDTerm"
}

// Halt implements conn.Resource.
//
// It resets the terminal attributes and leaves the last frame in place.
func (d *Dev) Halt() error {
	d.drawn = 0
	_, err := io.WriteString(d.w, "\033[0m\n")
	return err
}

// Render draws lines in a frame, with a block showing the backlight state
// next to the first line. Every call after the first overwrites the previous
// frame.
func (d *Dev) Render(lines []string, backlight bool) error {
	width := 0
	for _, l := range lines {
		width = max(width, utf8.RuneCountInString(l))
	}
	c := d.off
	if backlight {
		c = d.on
	}
	d.buf.Reset()
	if d.drawn != 0 {
		fmt.Fprintf(&d.buf, "\033[%dA", d.drawn)
	}
	border := "+" + strings.Repeat("-", width) + "+"
	_, _ = d.buf.WriteString("\r\033[0m" + border + "\033[K\n")
	for i, l := range lines {
		_, _ = d.buf.WriteString("|" + l + strings.Repeat(" ", width-utf8.RuneCountInString(l)) + "|")
		if i == 0 {
			_, _ = d.buf.WriteString(" " + d.palette.Block(c) + "\033[0m")
		}
		_, _ = d.buf.WriteString("\033[K\n")
	}
	_, _ = d.buf.WriteString(border + "\033[K\n")
	d.drawn = len(lines) + 2
	_, err := d.buf.WriteTo(d.w)
	return err
}
