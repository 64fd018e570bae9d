// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package panel

import (
	"testing"

	"github.com/GermanBionicSystems/brewpanel/hd44780"
	"github.com/GermanBionicSystems/brewpanel/pcf857x"
	"github.com/GermanBionicSystems/brewpanel/temperature"
	"github.com/GermanBionicSystems/brewpanel/tempcontrol"
	"github.com/GermanBionicSystems/brewpanel/ticks/tickstest"
	"github.com/google/go-cmp/cmp"
	"periph.io/x/conn/v3/i2c/i2ctest"
)

func getPanel(t *testing.T) (*Panel, *tempcontrol.Settings) {
	t.Helper()
	lcd, err := hd44780.NewPCF857xBackpack(&i2ctest.Record{}, pcf857x.DefaultAddress, &hd44780.Opts{Rows: 4, Cols: 20, Clock: &tickstest.Clock{}})
	if err != nil {
		t.Fatal(err)
	}
	lcd.Init()
	settings := tempcontrol.New()
	return New(lcd, settings), settings
}

func TestPrintAll(t *testing.T) {
	p, settings := getPanel(t)
	settings.SetMode(tempcontrol.BeerConstant)
	settings.SetBeerTemp(temperature.FromTenths(200))
	settings.SetFridgeTemp(temperature.FromTenths(180))
	p.PrintAll(Status{
		Beer:   temperature.FromTenths(196),
		Fridge: temperature.FromTenths(-12),
		Room:   temperature.Invalid,
		State:  "Heating for 1h02m",
	})
	want := []string{
		"Mode   Beer Constant",
		"Beer   19.6  20.0 °C",
		"Fridge -1.2  18.0 °C",
		"Heating for 1h02m   ",
	}
	if diff := cmp.Diff(want, p.Lines()); diff != "" {
		t.Errorf("PrintAll() mismatch (-want +got):\n%s", diff)
	}
}

func TestRoomFlag(t *testing.T) {
	p, _ := getPanel(t)
	p.SetFlags(FlagDisplayRoom | FlagAlternateRoom)
	if p.Flags() != FlagDisplayRoom|FlagAlternateRoom {
		t.Errorf("unexpected flags %b", p.Flags())
	}
	p.PrintAll(Status{Room: temperature.FromTenths(215)})
	if got := p.Lines()[2]; got != "Room   21.5       °C" {
		t.Errorf("room row received %q", got)
	}
}

func TestPrintModeBlanksRest(t *testing.T) {
	p, settings := getPanel(t)
	settings.SetMode(tempcontrol.FridgeConstant)
	p.PrintMode()
	settings.SetMode(tempcontrol.Off)
	p.PrintMode()
	if got := p.Lines()[0]; got != "       Off          " {
		t.Errorf("mode row received %q", got)
	}
}

func TestPrintTemperatureAt(t *testing.T) {
	p, _ := getPanel(t)
	p.PrintTemperatureAt(SettingCol, 1, temperature.Disabled)
	p.PrintTemperatureAt(ActualCol, 1, temperature.FromTenths(5))
	if got := p.Lines()[1][ActualCol:17]; got != "  0.5  --.-" {
		t.Errorf("received %q", got)
	}
}

func TestAlternateRoom(t *testing.T) {
	p, _ := getPanel(t)
	p.AlternateRoom()
	if p.Flags() != 0 {
		t.Fatalf("flags changed without FlagAlternateRoom: %b", p.Flags())
	}
	p.SetFlags(FlagAlternateRoom)
	p.AlternateRoom()
	if got := p.Lines()[2][:6]; got != "Room  " {
		t.Errorf("first swap shows %q", got)
	}
	p.AlternateRoom()
	if got := p.Lines()[2][:6]; got != "Fridge" {
		t.Errorf("second swap shows %q", got)
	}
}
