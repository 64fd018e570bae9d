// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package snapshot renders the content of a character LCD as an image, to
// document what the panel showed.
package snapshot

import (
	"fmt"
	"image"
	"image/color"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/gofont/gomono"
)

// Opts represents the rendering options.
type Opts struct {
	// Size is the Go Mono font size in points. When 0, the 7x13 bitmap font
	// is used.
	Size float64
	// Padding around the character cells, in pixels. Defaults to 8.
	Padding int
	// On and Off are the background colors with the backlight on and off.
	On  color.Color
	Off color.Color
	// Text is the character color.
	Text color.Color
}

var defaultOpts = Opts{
	Padding: 8,
	On:      color.NRGBA{0x20, 0x60, 0xFF, 0xFF},
	Off:     color.NRGBA{0x10, 0x18, 0x30, 0xFF},
	Text:    color.NRGBA{0xF0, 0xF0, 0xFF, 0xFF},
}

// Render draws lines as the LCD shows them, one character per cell.
func Render(lines []string, backlight bool, opts *Opts) (image.Image, error) {
	o := defaultOpts
	if opts != nil {
		o.Size = opts.Size
		if opts.Padding > 0 {
			o.Padding = opts.Padding
		}
		if opts.On != nil {
			o.On = opts.On
		}
		if opts.Off != nil {
			o.Off = opts.Off
		}
		if opts.Text != nil {
			o.Text = opts.Text
		}
	}
	face, err := o.face()
	if err != nil {
		return nil, err
	}
	adv, _ := face.GlyphAdvance('0')
	m := face.Metrics()
	cellW, cellH, ascent := adv.Ceil(), m.Height.Ceil(), m.Ascent.Ceil()

	cols := 0
	runes := make([][]rune, len(lines))
	for i, l := range lines {
		runes[i] = []rune(l)
		cols = max(cols, len(runes[i]))
	}
	pad := o.Padding
	dc := gg.NewContext(cols*cellW+2*pad, len(lines)*cellH+2*pad)
	if backlight {
		dc.SetColor(o.On)
	} else {
		dc.SetColor(o.Off)
	}
	dc.Clear()
	dc.SetFontFace(face)
	dc.SetColor(o.Text)
	for row, l := range runes {
		y := float64(pad + row*cellH + ascent)
		for col, r := range l {
			if r == ' ' {
				continue
			}
			dc.DrawString(string(r), float64(pad+col*cellW), y)
		}
	}
	return dc.Image(), nil
}

// SavePNG renders lines and writes them to path as a PNG file.
func SavePNG(path string, lines []string, backlight bool, opts *Opts) error {
	img, err := Render(lines, backlight, opts)
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("snapshot: %w", err)
	}
	return nil
}

func (o *Opts) face() (font.Face, error) {
	if o.Size <= 0 {
		return basicfont.Face7x13, nil
	}
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("snapshot: %w", err)
	}
	return truetype.NewFace(f, &truetype.Options{Size: o.Size}), nil
}
