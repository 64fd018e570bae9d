// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package tempcontrol

import (
	"testing"

	"github.com/GermanBionicSystems/brewpanel/temperature"
)

func TestModes(t *testing.T) {
	for ix, m := range MenuModes {
		if m.Index() != ix {
			t.Errorf("%s.Index() expected %d, received %d", m, ix, m.Index())
		}
	}
	if Test.Index() != -1 {
		t.Errorf("Test must not be offered by the menu, received %d", Test.Index())
	}
	if s := Mode('x').String(); s != "Invalid mode" {
		t.Errorf("unexpected String() %q", s)
	}
}

func TestSettings(t *testing.T) {
	s := New()
	if s.Mode() != Off {
		t.Errorf("expected Off, received %s", s.Mode())
	}
	if !temperature.IsDisabledOrInvalid(s.BeerSetting()) || !temperature.IsDisabledOrInvalid(s.FridgeSetting()) {
		t.Error("expected both settings disabled")
	}
	s.SetMode(BeerConstant)
	s.SetBeerTemp(temperature.FromTenths(195))
	s.SetFridgeTemp(temperature.FromTenths(40))
	if s.Mode() != BeerConstant {
		t.Errorf("expected BeerConstant, received %s", s.Mode())
	}
	if got := temperature.ToTenths(s.BeerSetting()); got != 195 {
		t.Errorf("beer expected 195, received %d", got)
	}
	if got := temperature.ToTenths(s.FridgeSetting()); got != 40 {
		t.Errorf("fridge expected 40, received %d", got)
	}
	s.SetBounds(temperature.FromCelsius(-5), temperature.FromCelsius(40))
	if temperature.ToTenths(s.SettingMin()) != -50 || temperature.ToTenths(s.SettingMax()) != 400 {
		t.Errorf("unexpected bounds %s..%s", s.SettingMin(), s.SettingMax())
	}
}
