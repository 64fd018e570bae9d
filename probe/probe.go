// Copyright 2024 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package probe reads the beer, fridge and room temperatures from TMP102
// compatible I²C sensors.
//
// The sensor runs in its power-on configuration: continuous conversion at
// 4 Hz with 12 bit resolution.
package probe

import (
	"fmt"
	"sync"

	"github.com/GermanBionicSystems/brewpanel/temperature"
	"github.com/sirupsen/logrus"
	"periph.io/x/conn/v3"
	"periph.io/x/conn/v3/i2c"
	"periph.io/x/conn/v3/physic"
)

// DefaultAddress is the address with ADD0 tied to ground.
const DefaultAddress uint16 = 0x48

const (
	regTemperature   byte = 0
	regConfiguration byte = 1

	shutdownBit = 1 << 8

	resolution physic.Temperature = 62_500 * physic.MicroKelvin
)

var log = logrus.WithField("pkg", "probe")

// Dev is one temperature sensor. It's safe for concurrent use.
type Dev struct {
	name string

	mu     sync.Mutex
	d      *i2c.Dev
	failed bool
}

// New returns the sensor at addr on bus. name identifies it in logs. No bus
// traffic happens until the first read.
func New(bus i2c.Bus, addr uint16, name string) *Dev {
	return &Dev{name: name, d: &i2c.Dev{Bus: bus, Addr: addr}}
}

// Sense reads the temperature into env.Temperature.
func (p *Dev) Sense(env *physic.Env) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	r := [2]byte{}
	if err := p.d.Tx([]byte{regTemperature}, r[:]); err != nil {
		return fmt.Errorf("probe %s: %w", p.name, err)
	}
	env.Temperature = countToTemperature(r)
	return nil
}

// Temperature returns the current temperature, or temperature.Invalid when
// the sensor can't be read. A sensor going away and coming back is logged
// once each way.
func (p *Dev) Temperature() physic.Temperature {
	var env physic.Env
	err := p.Sense(&env)
	p.mu.Lock()
	defer p.mu.Unlock()
	if err != nil {
		if !p.failed {
			log.WithError(err).Warn("sensor disconnected")
		}
		p.failed = true
		return temperature.Invalid
	}
	if p.failed {
		log.WithField("sensor", p.name).Info("sensor reconnected")
	}
	p.failed = false
	return env.Temperature
}

// Halt puts the sensor in shutdown mode. Implements conn.Resource.
func (p *Dev) Halt() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	r := [2]byte{}
	if err := p.d.Tx([]byte{regConfiguration}, r[:]); err != nil {
		return fmt.Errorf("probe %s: %w", p.name, err)
	}
	config := uint16(r[0])<<8 | uint16(r[1]) | shutdownBit
	if err := p.d.Tx([]byte{regConfiguration, byte(config >> 8), byte(config)}, nil); err != nil {
		return fmt.Errorf("probe %s: %w", p.name, err)
	}
	return nil
}

func (p *Dev) String() string {
	return fmt.Sprintf("probe %s@%#x", p.name, p.d.Addr)
}

// countToTemperature decodes the left aligned 12 bit two's complement
// reading.
func countToTemperature(r [2]byte) physic.Temperature {
	count := int16(uint16(r[0])<<8|uint16(r[1])) >> 4
	return physic.ZeroCelsius + physic.Temperature(count)*resolution
}

var _ conn.Resource = &Dev{}
