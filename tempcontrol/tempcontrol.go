// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package tempcontrol holds the operating mode and the setpoints of the
// temperature controller, as seen by the panel.
//
// The control algorithm itself lives elsewhere; Settings only stores what
// the user chose and bounds it.
package tempcontrol

import (
	"sync"

	"github.com/GermanBionicSystems/brewpanel/temperature"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"
)

// Mode is the operating mode of the controller.
type Mode byte

const (
	BeerConstant   Mode = 'b'
	FridgeConstant Mode = 'f'
	BeerProfile    Mode = 'p'
	Off            Mode = 'o'
	Test           Mode = 't'
)

// MenuModes is the order in which the menu cycles through the modes.
var MenuModes = [...]Mode{BeerConstant, FridgeConstant, BeerProfile, Off}

// Index returns the position of m in MenuModes, or -1.
func (m Mode) Index() int {
	for ix, mode := range MenuModes {
		if mode == m {
			return ix
		}
	}
	return -1
}

func (m Mode) String() string {
	switch m {
	case BeerConstant:
		return "Beer Constant"
	case FridgeConstant:
		return "Fridge Const."
	case BeerProfile:
		return "Beer Profile"
	case Off:
		return "Off"
	case Test:
		return "** Testing **"
	default:
		return "Invalid mode"
	}
}

var log = logrus.WithField("pkg", "tempcontrol")

// Settings is an in-memory store of the controller settings. It's safe for
// concurrent use.
type Settings struct {
	mu     sync.Mutex
	mode   Mode
	beer   physic.Temperature
	fridge physic.Temperature
	min    physic.Temperature
	max    physic.Temperature
}

// New returns settings in Off mode with both setpoints disabled, bounded to
// 1°C..30°C.
func New() *Settings {
	return &Settings{
		mode:   Off,
		beer:   temperature.Disabled,
		fridge: temperature.Disabled,
		min:    temperature.FromCelsius(1),
		max:    temperature.FromCelsius(30),
	}
}

// Mode returns the operating mode.
func (s *Settings) Mode() Mode {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mode
}

// SetMode changes the operating mode.
func (s *Settings) SetMode(m Mode) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.mode != m {
		log.WithFields(logrus.Fields{"from": s.mode.String(), "to": m.String()}).Info("mode changed")
	}
	s.mode = m
}

// BeerSetting returns the beer setpoint.
func (s *Settings) BeerSetting() physic.Temperature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.beer
}

// SetBeerTemp changes the beer setpoint.
func (s *Settings) SetBeerTemp(t physic.Temperature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.beer = t
	log.WithField("beer", temperature.Format(t, 1)).Info("beer setting changed")
}

// FridgeSetting returns the fridge setpoint.
func (s *Settings) FridgeSetting() physic.Temperature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.fridge
}

// SetFridgeTemp changes the fridge setpoint.
func (s *Settings) SetFridgeTemp(t physic.Temperature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fridge = t
	log.WithField("fridge", temperature.Format(t, 1)).Info("fridge setting changed")
}

// SettingMin returns the lowest setpoint the user may choose.
func (s *Settings) SettingMin() physic.Temperature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.min
}

// SettingMax returns the highest setpoint the user may choose.
func (s *Settings) SettingMax() physic.Temperature {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.max
}

// SetBounds changes the setpoint range.
func (s *Settings) SetBounds(lo, hi physic.Temperature) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.min, s.max = lo, hi
}
