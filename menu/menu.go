// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package menu implements the rotary encoder menu of the panel: choosing
// which setting to change, the operating mode, and the beer and fridge
// setpoints.
//
// Every editor runs a BlinkLoop: the value being edited blinks until the
// user pushes the button, and the session is abandoned after Timeout without
// a turn.
package menu

import (
	"github.com/GermanBionicSystems/brewpanel/panel"
	"github.com/GermanBionicSystems/brewpanel/temperature"
	"github.com/GermanBionicSystems/brewpanel/tempcontrol"
	"github.com/GermanBionicSystems/brewpanel/ticks"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/physic"
)

// DefaultSetting is offered when the current setpoint is disabled or
// invalid.
var DefaultSetting = temperature.FromCelsius(20)

const (
	settingCol   = 12
	beerRow      = 1
	fridgeRow    = 2
	modeCol      = 7
	blankMode    = "             "
	blankSetting = "      "
)

var log = logrus.WithField("pkg", "menu")

// Screen is the part of the panel the menu draws on.
type Screen interface {
	PrintStationaryText()
	PrintMode()
	PrintAt(col, row int, s string)
	PrintTemperatureAt(col, row int, t physic.Temperature)
	Flags() panel.Flags
	SetFlags(f panel.Flags)
}

// Engine is the temperature controller whose settings the menu changes.
type Engine interface {
	Mode() tempcontrol.Mode
	SetMode(m tempcontrol.Mode)
	BeerSetting() physic.Temperature
	SetBeerTemp(t physic.Temperature)
	FridgeSetting() physic.Temperature
	SetFridgeTemp(t physic.Temperature)
	SettingMin() physic.Temperature
	SettingMax() physic.Temperature
}

// Annotator records user visible events.
type Annotator interface {
	BeerAnnotation(format string, args ...any)
	FridgeAnnotation(format string, args ...any)
}

// Config holds the collaborators of a Menu. All are required.
type Config struct {
	Clock     ticks.Clock
	Input     Input
	Screen    Screen
	Engine    Engine
	Annotator Annotator
}

// Menu is the interactive menu. It's not safe for concurrent use.
type Menu struct {
	clock  ticks.Clock
	in     Input
	screen Screen
	engine Engine
	notes  Annotator
}

// New returns a menu using the collaborators in cfg.
func New(cfg Config) *Menu {
	return &Menu{
		clock:  cfg.Clock,
		in:     cfg.Input,
		screen: cfg.Screen,
		engine: cfg.Engine,
		notes:  cfg.Annotator,
	}
}

// PickSettingToChange lets the user choose between the mode, the beer
// setting and the fridge setting, then opens the matching editor. The room
// temperature display is suspended for the duration of the session.
func (m *Menu) PickSettingToChange() {
	saved := m.screen.Flags()
	m.screen.SetFlags(saved &^ (panel.FlagDisplayRoom | panel.FlagAlternateRoom))
	defer m.screen.SetFlags(saved)

	m.in.SetRange(0, 0, 2)
	ok := BlinkLoop(m.clock, m.in, Handlers{
		OnShow: m.screen.PrintStationaryText,
		OnHide: func() {
			m.screen.PrintAt(0, m.in.Read(), blankSetting)
		},
		OnCommit: m.settingSelected,
	})
	if !ok {
		log.Debug("setting selection timed out")
	}
}

func (m *Menu) settingSelected() {
	switch m.in.Read() {
	case 0:
		m.PickMode()
	case 1:
		m.engine.SetMode(tempcontrol.BeerConstant)
		m.screen.PrintMode()
		m.PickBeerSetting()
	case 2:
		m.engine.SetMode(tempcontrol.FridgeConstant)
		m.screen.PrintMode()
		m.PickFridgeSetting()
	}
}

// PickMode cycles through the modes, applying each one as it's shown. On
// timeout the mode in effect before the session is restored.
func (m *Menu) PickMode() {
	old := m.engine.Mode()
	start := max(old.Index(), 0)
	m.in.SetRange(start, 0, len(tempcontrol.MenuModes)-1)
	ok := BlinkLoop(m.clock, m.in, Handlers{
		OnChange: func() {
			if ix := m.in.Read(); ix >= 0 && ix < len(tempcontrol.MenuModes) {
				m.engine.SetMode(tempcontrol.MenuModes[ix])
			}
		},
		OnShow: m.screen.PrintMode,
		OnHide: func() {
			m.screen.PrintAt(modeCol, 0, blankMode)
		},
		OnCommit: m.modeSelected,
	})
	if !ok {
		log.WithField("mode", old.String()).Debug("mode selection timed out, restoring")
		m.engine.SetMode(old)
	}
}

func (m *Menu) modeSelected() {
	switch m.engine.Mode() {
	case tempcontrol.BeerConstant:
		m.PickBeerSetting()
	case tempcontrol.FridgeConstant:
		m.PickFridgeSetting()
	case tempcontrol.BeerProfile:
		m.notes.BeerAnnotation("Changed to profile mode in menu.")
	case tempcontrol.Off:
		m.notes.BeerAnnotation("Temp control turned off in menu.")
	}
}

// PickBeerSetting edits the beer setpoint on row 1.
func (m *Menu) PickBeerSetting() {
	m.pickSetting(setpoint{
		name:   "Beer",
		row:    beerRow,
		get:    m.engine.BeerSetting,
		set:    m.engine.SetBeerTemp,
		notify: m.notes.BeerAnnotation,
	})
}

// PickFridgeSetting edits the fridge setpoint on row 2.
func (m *Menu) PickFridgeSetting() {
	m.pickSetting(setpoint{
		name:   "Fridge",
		row:    fridgeRow,
		get:    m.engine.FridgeSetting,
		set:    m.engine.SetFridgeTemp,
		notify: m.notes.FridgeAnnotation,
	})
}

type setpoint struct {
	name   string
	row    int
	get    func() physic.Temperature
	set    func(physic.Temperature)
	notify func(format string, args ...any)
}

// pickSetting runs the setpoint editor. The starting value isn't clamped to
// the engine bounds; the first turn brings it in range.
func (m *Menu) pickSetting(sp setpoint) {
	candidate := sp.get()
	if temperature.IsDisabledOrInvalid(candidate) {
		candidate = DefaultSetting
	}
	m.in.SetRange(temperature.ToTenths(candidate), temperature.ToTenths(m.engine.SettingMin()), temperature.ToTenths(m.engine.SettingMax()))
	show := func() {
		m.screen.PrintTemperatureAt(settingCol, sp.row, candidate)
	}
	ok := BlinkLoop(m.clock, m.in, Handlers{
		OnChange: func() {
			candidate = temperature.FromTenths(m.in.Read())
			show()
		},
		OnShow: show,
		OnHide: func() {
			m.screen.PrintAt(settingCol, sp.row, blankSetting)
		},
		OnCommit: func() {
			sp.set(candidate)
			sp.notify("%s temp set to %s in Menu.", sp.name, temperature.Format(candidate, 1))
		},
	})
	if !ok {
		log.WithField("setting", sp.name).Debug("setpoint edit timed out")
	}
}
