// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package probe

import (
	"testing"

	"github.com/GermanBionicSystems/brewpanel/temperature"
	"periph.io/x/conn/v3/i2c/i2ctest"
	"periph.io/x/conn/v3/physic"
)

const addr = DefaultAddress

func TestCountToTemperature(t *testing.T) {
	tests := []struct {
		bits     [2]byte
		expected physic.Temperature
	}{
		{[2]byte{0x64, 0x00}, physic.ZeroCelsius + 100*physic.Kelvin},
		{[2]byte{0x19, 0x00}, physic.ZeroCelsius + 25*physic.Kelvin},
		{[2]byte{0x01, 0x90}, physic.ZeroCelsius + 1_562_500*physic.MicroKelvin},
		{[2]byte{0x00, 0x00}, physic.ZeroCelsius},
		{[2]byte{0xff, 0xf0}, physic.ZeroCelsius - 62_500*physic.MicroKelvin},
		{[2]byte{0xe7, 0x00}, physic.ZeroCelsius - 25*physic.Kelvin},
		{[2]byte{0xc9, 0x00}, physic.ZeroCelsius - 55*physic.Kelvin},
	}
	for _, test := range tests {
		if got := countToTemperature(test.bits); got != test.expected {
			t.Errorf("countToTemperature(%#v) = %s, expected %s", test.bits, got, test.expected)
		}
	}
}

func TestTemperature(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: addr, W: []byte{regTemperature}, R: []byte{0x14, 0x40}},
		},
		DontPanic: true,
	}
	defer pb.Close()
	p := New(pb, addr, "beer")
	if got := temperature.Format(p.Temperature(), 1); got != "20.3" {
		t.Errorf("received %s", got)
	}
	// The playback is exhausted, the sensor is now gone.
	if got := p.Temperature(); got != temperature.Invalid {
		t.Errorf("expected Invalid, received %s", got)
	}
	if s := p.String(); s != "probe beer@0x48" {
		t.Errorf("String() = %q", s)
	}
}

func TestHalt(t *testing.T) {
	pb := &i2ctest.Playback{
		Ops: []i2ctest.IO{
			{Addr: addr, W: []byte{regConfiguration}, R: []byte{0x60, 0xa0}},
			{Addr: addr, W: []byte{regConfiguration, 0x61, 0xa0}},
		},
	}
	p := New(pb, addr, "fridge")
	if err := p.Halt(); err != nil {
		t.Fatal(err)
	}
	if err := pb.Close(); err != nil {
		t.Fatal(err)
	}
}
