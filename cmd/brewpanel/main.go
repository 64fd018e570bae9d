// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// brewpanel runs the fermentation controller front panel: a 20×4 HD44780
// LCD behind a PCF8574 backpack, driven by a rotary encoder menu.
//
// Without hardware, -simulate keeps the LCD content in memory and the
// terminal preview shows it. Keys on stdin stand in for the encoder: "+" and
// "-" turn it, an empty line pushes it, "q" quits.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"time"

	"github.com/GermanBionicSystems/brewpanel/annotate"
	"github.com/GermanBionicSystems/brewpanel/encoder"
	"github.com/GermanBionicSystems/brewpanel/hd44780"
	"github.com/GermanBionicSystems/brewpanel/lcdterm"
	"github.com/GermanBionicSystems/brewpanel/menu"
	"github.com/GermanBionicSystems/brewpanel/panel"
	"github.com/GermanBionicSystems/brewpanel/pcf857x"
	"github.com/GermanBionicSystems/brewpanel/probe"
	"github.com/GermanBionicSystems/brewpanel/snapshot"
	"github.com/GermanBionicSystems/brewpanel/tempcontrol"
	"github.com/GermanBionicSystems/brewpanel/temperature"
	"github.com/GermanBionicSystems/brewpanel/ticks"
	"github.com/peterbourgon/ff/v3"
	"github.com/peterbourgon/ff/v3/ffcli"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3/gpio/gpioreg"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/i2c/i2creg"
	"periph.io/x/conn/v3/physic"
	"periph.io/x/host/v3"
)

var version = "devel"

const (
	refreshPeriod   = 250 * time.Millisecond
	alternatePeriod = 5 * time.Second
)

type runConfig struct {
	bus              string
	addr             uint
	cols             int
	rows             int
	backlightTimeout time.Duration
	button           string
	beerProbe        uint
	fridgeProbe      uint
	roomProbe        uint
	simulate         bool
	logLevel         string
	snapshot         string
}

func main() {
	if err := run(); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			os.Exit(0)
		}
		logrus.WithError(err).Error("brewpanel failed")
		os.Exit(1)
	}
}

func run() error {
	return buildCLI().ParseAndRun(context.Background(), os.Args[1:])
}

func buildCLI() *ffcli.Command {
	var cfg runConfig
	runFlagSet := flag.NewFlagSet("brewpanel run", flag.ExitOnError)
	runFlagSet.StringVar(&cfg.bus, "bus", "", "I²C bus name, empty for the first one")
	runFlagSet.UintVar(&cfg.addr, "addr", uint(pcf857x.DefaultAddress), "I²C address of the LCD backpack")
	runFlagSet.IntVar(&cfg.cols, "cols", 20, "LCD columns")
	runFlagSet.IntVar(&cfg.rows, "rows", 4, "LCD rows")
	runFlagSet.DurationVar(&cfg.backlightTimeout, "backlight-timeout", 10*time.Minute, "Turn the backlight off after this long without input, 0 to keep it on")
	runFlagSet.StringVar(&cfg.button, "button", "", "GPIO pin of the encoder push button, empty to use stdin only")
	runFlagSet.UintVar(&cfg.beerProbe, "beer-probe", 0, "I²C address of the beer temperature sensor, 0 if absent")
	runFlagSet.UintVar(&cfg.fridgeProbe, "fridge-probe", 0, "I²C address of the fridge temperature sensor, 0 if absent")
	runFlagSet.UintVar(&cfg.roomProbe, "room-probe", 0, "I²C address of the room temperature sensor, 0 if absent")
	runFlagSet.BoolVar(&cfg.simulate, "simulate", false, "Run without hardware")
	runFlagSet.StringVar(&cfg.logLevel, "log-level", "info", "Log level: debug, info, warn, error")
	runFlagSet.StringVar(&cfg.snapshot, "snapshot", "", "Write a PNG of the screen to this file on exit")
	_ = runFlagSet.String("config", "", "Config file (optional)")

	runCmd := &ffcli.Command{
		Name:       "run",
		ShortUsage: "brewpanel run [flags]",
		ShortHelp:  "Run the panel",
		FlagSet:    runFlagSet,
		Options: []ff.Option{
			ff.WithEnvVarPrefix("BREWPANEL"),
			ff.WithConfigFileFlag("config"),
			ff.WithConfigFileParser(ff.PlainParser),
		},
		Exec: func(ctx context.Context, _ []string) error {
			return execRun(ctx, cfg)
		},
	}

	versionCmd := &ffcli.Command{
		Name:       "version",
		ShortUsage: "brewpanel version",
		ShortHelp:  "Print the version",
		Exec: func(_ context.Context, _ []string) error {
			fmt.Println("brewpanel", version)
			return nil
		},
	}

	return &ffcli.Command{
		Name:        "brewpanel",
		ShortUsage:  "brewpanel <subcommand> [flags]",
		FlagSet:     flag.NewFlagSet("brewpanel", flag.ExitOnError),
		Subcommands: []*ffcli.Command{runCmd, versionCmd},
		Exec: func(_ context.Context, _ []string) error {
			return flag.ErrHelp
		},
	}
}

func execRun(ctx context.Context, cfg runConfig) error {
	level, err := logrus.ParseLevel(cfg.logLevel)
	if err != nil {
		return err
	}
	logrus.SetLevel(level)
	logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	bus, closeBus, err := openBus(cfg)
	if err != nil {
		return err
	}
	defer closeBus()

	lcd, err := hd44780.NewPCF857xBackpack(bus, uint16(cfg.addr), &hd44780.Opts{
		Cols:             cfg.cols,
		Rows:             cfg.rows,
		BacklightTimeout: cfg.backlightTimeout,
		Simulate:         cfg.simulate,
		Clock:            ticks.Host(),
	})
	if err != nil {
		return err
	}
	lcd.Init()
	if cfg.simulate {
		lcd.SetBufferOnly(true)
	}
	lcd.BacklightOn()

	ctx, cancel := signal.NotifyContext(ctx, os.Interrupt)
	defer cancel()

	settings := tempcontrol.New()
	enc := encoder.New()
	notes := annotate.New(logrus.StandardLogger(), 8)
	term := lcdterm.New(nil)
	pnl := panel.New(lcd, settings)
	preview := &previewScreen{Panel: pnl, lcd: lcd, term: term}
	m := menu.New(menu.Config{
		Clock:     ticks.Host(),
		Input:     enc,
		Screen:    preview,
		Engine:    settings,
		Annotator: notes,
	})

	activity := make(chan struct{}, 1)
	go readKeys(ctx, os.Stdin, cancel, enc, activity)
	if cfg.button != "" {
		pin := gpioreg.ByName(cfg.button)
		if pin == nil {
			return fmt.Errorf("brewpanel: unknown pin %q", cfg.button)
		}
		go func() {
			if err := enc.WatchButton(ctx, pin); err != nil {
				logrus.WithError(err).Error("push button disabled")
			}
		}()
	}

	sensors := newProbes(bus, cfg)
	if sensors.room != nil {
		pnl.SetFlags(panel.FlagAlternateRoom)
	}
	_ = lcd.Clear()
	pnl.PrintAll(sensors.status())
	logrus.WithFields(logrus.Fields{"lcd": lcd.String(), "simulate": cfg.simulate}).Info("panel running")

	t := time.NewTicker(refreshPeriod)
	defer t.Stop()
	alternate := time.NewTicker(alternatePeriod)
	defer alternate.Stop()
loop:
	for {
		select {
		case <-ctx.Done():
			break loop
		case <-activity:
			lcd.ResetBacklightTimer()
		case <-alternate.C:
			pnl.AlternateRoom()
		case <-t.C:
		}
		openMenuOnPush(enc, lcd, m)
		lcd.UpdateBacklight()
		pnl.PrintAll(sensors.status())
		preview.render()
	}

	for _, a := range notes.Recent() {
		logrus.WithField("channel", string(a.Channel)).Debug(a.Text)
	}
	if cfg.snapshot != "" {
		if err := snapshot.SavePNG(cfg.snapshot, pnl.Lines(), lcd.BacklightIsOn(), nil); err != nil {
			return err
		}
		logrus.WithField("path", cfg.snapshot).Info("snapshot written")
	}
	sensors.halt()
	logrus.WithField("bus_errors", lcd.BusErrors()).Info("panel stopped")
	if err := term.Halt(); err != nil {
		return err
	}
	return lcd.Halt()
}

// openBus returns the I²C bus of the display, or a bus that discards
// everything when simulating.
func openBus(cfg runConfig) (i2c.Bus, func(), error) {
	if cfg.simulate {
		return discardBus{}, func() {}, nil
	}
	if _, err := host.Init(); err != nil {
		return nil, nil, err
	}
	bus, err := i2creg.Open(cfg.bus)
	if err != nil {
		return nil, nil, err
	}
	return bus, func() { _ = bus.Close() }, nil
}

type probes struct {
	beer, fridge, room *probe.Dev
}

func newProbes(bus i2c.Bus, cfg runConfig) *probes {
	p := &probes{}
	if cfg.beerProbe != 0 {
		p.beer = probe.New(bus, uint16(cfg.beerProbe), "beer")
	}
	if cfg.fridgeProbe != 0 {
		p.fridge = probe.New(bus, uint16(cfg.fridgeProbe), "fridge")
	}
	if cfg.roomProbe != 0 {
		p.room = probe.New(bus, uint16(cfg.roomProbe), "room")
	}
	return p
}

func (p *probes) status() panel.Status {
	s := panel.Status{
		Beer:   read(p.beer),
		Fridge: read(p.fridge),
		Room:   read(p.room),
		State:  "Idle",
	}
	if p.beer == nil && p.fridge == nil {
		s.State = "No sensors"
	}
	return s
}

func (p *probes) halt() {
	for _, d := range []*probe.Dev{p.beer, p.fridge, p.room} {
		if d == nil {
			continue
		}
		if err := d.Halt(); err != nil {
			logrus.WithError(err).Warn("halting sensor")
		}
	}
}

func read(d *probe.Dev) physic.Temperature {
	if d == nil {
		return temperature.Invalid
	}
	return d.Temperature()
}

// discardBus is the bus of a simulated panel. Writes are dropped and reads
// return zeros; the driver's mirror is the only copy of the screen.
type discardBus struct{}

func (discardBus) String() string {
	return "discard"
}

func (discardBus) Tx(addr uint16, w, r []byte) error {
	clear(r)
	return nil
}

func (discardBus) SetSpeed(f physic.Frequency) error {
	return nil
}

var _ i2c.Bus = discardBus{}

// settingPicker is the entry point of the menu.
type settingPicker interface {
	PickSettingToChange()
}

// openMenuOnPush runs the menu when the button was pushed outside of it. The
// backlight stays on for the whole session. It reports whether the menu ran.
func openMenuOnPush(enc *encoder.Dev, lcd *hd44780.Dev, m settingPicker) bool {
	if !enc.Pushed() {
		return false
	}
	enc.ResetPushed()
	lcd.ResetBacklightTimer()
	lcd.UpdateBacklight()
	m.PickSettingToChange()
	lcd.ResetBacklightTimer()
	return true
}

// readKeys feeds the encoder from keys until ctx is done or keys is
// exhausted.
func readKeys(ctx context.Context, keys io.Reader, cancel context.CancelFunc, enc *encoder.Dev, activity chan<- struct{}) {
	r := bufio.NewReader(keys)
	for ctx.Err() == nil {
		line, err := r.ReadString('\n')
		if err != nil {
			return
		}
		line = strings.TrimSpace(line)
		if line == "" {
			enc.Push()
		}
		for _, c := range line {
			switch c {
			case '+':
				enc.Turn(1)
			case '-':
				enc.Turn(-1)
			case 'q':
				cancel()
				return
			}
		}
		select {
		case activity <- struct{}{}:
		default:
		}
	}
}

// previewScreen refreshes the terminal preview every time the menu draws.
type previewScreen struct {
	*panel.Panel
	lcd  *hd44780.Dev
	term *lcdterm.Dev
}

func (p *previewScreen) PrintStationaryText() {
	p.Panel.PrintStationaryText()
	p.render()
}

func (p *previewScreen) PrintMode() {
	p.Panel.PrintMode()
	p.render()
}

func (p *previewScreen) PrintAt(col, row int, s string) {
	p.Panel.PrintAt(col, row, s)
	p.render()
}

func (p *previewScreen) PrintTemperatureAt(col, row int, t physic.Temperature) {
	p.Panel.PrintTemperatureAt(col, row, t)
	p.render()
}

func (p *previewScreen) render() {
	if err := p.term.Render(p.Panel.Lines(), p.lcd.BacklightIsOn()); err != nil {
		logrus.WithError(err).Debug("preview")
	}
}
