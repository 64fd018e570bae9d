// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package panel lays out the controller status on a 20×4 character LCD:
//
//	Mode   Beer Constant
//	Beer   19.6  20.0 °C
//	Fridge 18.2  18.0 °C
//	Heating for 1h02m
//
// Actual temperatures start at column 6, settings at column 12.
package panel

import (
	"fmt"
	"strings"

	"github.com/GermanBionicSystems/brewpanel/hd44780"
	"github.com/GermanBionicSystems/brewpanel/temperature"
	"github.com/GermanBionicSystems/brewpanel/tempcontrol"
	"periph.io/x/conn/v3/physic"
)

// Flags select what the panel shows on the fridge row.
type Flags uint8

const (
	// FlagDisplayRoom shows the room temperature instead of the fridge.
	FlagDisplayRoom Flags = 1 << iota
	// FlagAlternateRoom alternates between fridge and room temperature.
	FlagAlternateRoom
)

const (
	// ModeCol is where the mode name starts on row 0.
	ModeCol = 7
	// ActualCol and SettingCol are the temperature columns of rows 1 and 2.
	ActualCol  = 6
	SettingCol = 12
	unitCol    = 18

	// degree is the HD44780 ROM A00 code of the degree sign.
	degree = "\xdf"
)

// Source provides what the panel displays about the controller.
type Source interface {
	Mode() tempcontrol.Mode
	BeerSetting() physic.Temperature
	FridgeSetting() physic.Temperature
}

// Status is a snapshot of the measured temperatures and controller state.
type Status struct {
	Beer   physic.Temperature
	Fridge physic.Temperature
	Room   physic.Temperature
	State  string
}

// Panel draws the controller status on the display.
type Panel struct {
	lcd   *hd44780.Dev
	src   Source
	flags Flags
}

// New returns a panel drawing on lcd. lcd must be initialized.
func New(lcd *hd44780.Dev, src Source) *Panel {
	return &Panel{lcd: lcd, src: src}
}

// Flags returns the display flags.
func (p *Panel) Flags() Flags {
	return p.flags
}

// SetFlags changes the display flags. The fridge row label follows on the
// next PrintStationaryText.
func (p *Panel) SetFlags(f Flags) {
	p.flags = f
}

// AlternateRoom swaps the fridge row between fridge and room temperature
// when FlagAlternateRoom is set. Call it periodically.
func (p *Panel) AlternateRoom() {
	if p.flags&FlagAlternateRoom == 0 {
		return
	}
	p.flags ^= FlagDisplayRoom
	p.PrintStationaryText()
}

// PrintStationaryText prints the labels and units.
func (p *Panel) PrintStationaryText() {
	p.lcd.PrintAt(0, 0, "Mode")
	p.lcd.PrintAt(0, 1, "Beer  ")
	if p.flags&FlagDisplayRoom != 0 {
		p.lcd.PrintAt(0, 2, "Room  ")
	} else {
		p.lcd.PrintAt(0, 2, "Fridge")
	}
	p.printDegreeUnit(unitCol, 1)
	p.printDegreeUnit(unitCol, 2)
}

// PrintMode prints the mode name, blanking the rest of the line.
func (p *Panel) PrintMode() {
	p.lcd.PrintAt(ModeCol, 0, p.src.Mode().String())
	p.lcd.PrintSpacesToRestOfLine()
}

// PrintAt prints s at col, row.
func (p *Panel) PrintAt(col, row int, s string) {
	p.lcd.PrintAt(col, row, s)
}

// PrintTemperatureAt prints t right aligned in 5 columns with one decimal.
func (p *Panel) PrintTemperatureAt(col, row int, t physic.Temperature) {
	p.lcd.PrintAt(col, row, fmt.Sprintf("%5s", temperature.Format(t, 1)))
}

// PrintState prints the controller state on the last row.
func (p *Panel) PrintState(state string) {
	p.lcd.PrintAt(0, p.lcd.Rows()-1, state)
	p.lcd.PrintSpacesToRestOfLine()
}

// PrintAll redraws the whole screen.
func (p *Panel) PrintAll(s Status) {
	p.PrintStationaryText()
	p.PrintMode()
	p.PrintTemperatureAt(ActualCol, 1, s.Beer)
	p.PrintTemperatureAt(SettingCol, 1, p.src.BeerSetting())
	if p.flags&FlagDisplayRoom != 0 {
		p.PrintTemperatureAt(ActualCol, 2, s.Room)
		p.PrintAt(SettingCol, 2, "      ")
	} else {
		p.PrintTemperatureAt(ActualCol, 2, s.Fridge)
		p.PrintTemperatureAt(SettingCol, 2, p.src.FridgeSetting())
	}
	if p.lcd.Rows() > 3 {
		p.PrintState(s.State)
	}
}

// Lines returns the content of every row, decoded as Latin-1 so the degree
// sign reads as °.
func (p *Panel) Lines() []string {
	lines := make([]string, p.lcd.Rows())
	buf := make([]byte, p.lcd.Cols()+1)
	for row := range lines {
		n := p.lcd.GetLine(row, buf)
		var sb strings.Builder
		for _, c := range buf[:n] {
			sb.WriteRune(rune(c))
		}
		lines[row] = sb.String()
	}
	return lines
}

func (p *Panel) printDegreeUnit(col, row int) {
	p.lcd.PrintAt(col, row, degree+"C")
}
