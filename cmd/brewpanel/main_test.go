// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package main

import (
	"context"
	"strings"
	"testing"

	"github.com/GermanBionicSystems/brewpanel/encoder"
	"github.com/GermanBionicSystems/brewpanel/hd44780"
	"github.com/GermanBionicSystems/brewpanel/panel"
	"github.com/GermanBionicSystems/brewpanel/pcf857x"
	"github.com/GermanBionicSystems/brewpanel/tempcontrol"
	"github.com/GermanBionicSystems/brewpanel/ticks/tickstest"
)

func simulatedLCD(t *testing.T) *hd44780.Dev {
	t.Helper()
	bus, closeBus, err := openBus(runConfig{simulate: true})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(closeBus)
	if _, ok := bus.(discardBus); !ok {
		t.Fatalf("simulation must not keep bus traffic, received %T", bus)
	}
	lcd, err := hd44780.NewPCF857xBackpack(bus, pcf857x.DefaultAddress, &hd44780.Opts{Cols: 20, Rows: 4, Simulate: true, Clock: &tickstest.Clock{}})
	if err != nil {
		t.Fatal(err)
	}
	lcd.Init()
	lcd.SetBufferOnly(true)
	return lcd
}

func TestSimulatedBusRetainsNothing(t *testing.T) {
	lcd := simulatedLCD(t)
	pnl := panel.New(lcd, tempcontrol.New())
	sensors := newProbes(discardBus{}, runConfig{})
	refresh := func() {
		lcd.UpdateBacklight()
		pnl.PrintAll(sensors.status())
	}
	for range 1000 {
		refresh()
	}
	if n := lcd.BusErrors(); n != 0 {
		t.Fatalf("expected no bus errors, received %d", n)
	}
	if got := pnl.Lines()[3]; !strings.HasPrefix(got, "No sensors") {
		t.Errorf("state row %q", got)
	}

	var bus discardBus
	w, r := []byte{0x08}, []byte{0xff, 0xff}
	if allocs := testing.AllocsPerRun(1000, func() { _ = bus.Tx(pcf857x.DefaultAddress, w, r) }); allocs != 0 {
		t.Errorf("Tx allocated %.1f times per call", allocs)
	}
	if r[0] != 0 || r[1] != 0 {
		t.Errorf("reads must return zeros, received %#v", r)
	}
}

func TestReadKeys(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	enc := encoder.New()
	enc.SetRange(5, 0, 10)
	activity := make(chan struct{}, 1)

	readKeys(ctx, strings.NewReader("+\n+\n-\n\nq\n+\n"), cancel, enc, activity)

	if got := enc.Read(); got != 6 {
		t.Errorf("expected the encoder at 6, received %d", got)
	}
	if !enc.Pushed() {
		t.Error("an empty line must push the button")
	}
	if ctx.Err() == nil {
		t.Error("q must cancel the context")
	}
	select {
	case <-activity:
	default:
		t.Error("keys must report activity")
	}
}

func TestReadKeysEOF(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	enc := encoder.New()
	enc.SetRange(0, 0, 2)

	readKeys(ctx, strings.NewReader("+-++x\n"), cancel, enc, make(chan struct{}, 1))

	if got := enc.Read(); got != 2 {
		t.Errorf("expected the encoder at 2, received %d", got)
	}
	if enc.Pushed() {
		t.Error("a non empty line must not push the button")
	}
	if ctx.Err() != nil {
		t.Error("the end of input must not cancel the context")
	}
}

type countingPicker struct {
	calls int
}

func (c *countingPicker) PickSettingToChange() {
	c.calls++
}

func TestOpenMenuOnPush(t *testing.T) {
	lcd := simulatedLCD(t)
	enc := encoder.New()
	picker := &countingPicker{}
	if openMenuOnPush(enc, lcd, picker) || picker.calls != 0 {
		t.Fatal("the menu must not open without a push")
	}
	enc.Push()
	if !openMenuOnPush(enc, lcd, picker) || picker.calls != 1 {
		t.Fatalf("a push must open the menu once, opened %d times", picker.calls)
	}
	if enc.Pushed() {
		t.Error("the push must be consumed")
	}
	if openMenuOnPush(enc, lcd, picker) || picker.calls != 1 {
		t.Error("one push must open the menu once")
	}
}
