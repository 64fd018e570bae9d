// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package temperature holds the conversions between physic.Temperature and
// the fixed point forms used by the panel: tenths of a degree Celsius for
// the rotary encoder, and short decimal strings for the display.
package temperature

import (
	"math"
	"strconv"

	"periph.io/x/conn/v3/physic"
)

const (
	// Disabled marks a setting that is not in use.
	Disabled physic.Temperature = math.MinInt64
	// Invalid marks a setting or reading that could not be determined.
	Invalid physic.Temperature = math.MinInt64 + 1

	tenth = physic.Celsius / 10
)

// IsDisabledOrInvalid reports whether t is one of the sentinels.
func IsDisabledOrInvalid(t physic.Temperature) bool {
	return t == Disabled || t == Invalid
}

// FromCelsius returns the temperature of c whole degrees Celsius.
func FromCelsius(c int) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(c)*physic.Celsius
}

// FromTenths returns the temperature of n tenths of a degree Celsius.
func FromTenths(n int) physic.Temperature {
	return physic.ZeroCelsius + physic.Temperature(n)*tenth
}

// ToTenths returns t in tenths of a degree Celsius, rounded to nearest.
func ToTenths(t physic.Temperature) int {
	d := t - physic.ZeroCelsius
	if d < 0 {
		return int((d - tenth/2) / tenth)
	}
	return int((d + tenth/2) / tenth)
}

// Format returns t in degrees Celsius with the given number of decimals,
// 0 to 3. Sentinels are rendered as "--.-".
func Format(t physic.Temperature, decimals int) string {
	if IsDisabledOrInvalid(t) {
		return "--.-"
	}
	decimals = max(0, min(decimals, 3))
	scale := int64(1)
	for range decimals {
		scale *= 10
	}
	unit := int64(physic.Celsius) / scale
	d := int64(t - physic.ZeroCelsius)
	neg := d < 0
	if neg {
		d = -d
	}
	n := (d + unit/2) / unit
	s := strconv.FormatInt(n/scale, 10)
	if decimals > 0 {
		frac := strconv.FormatInt(n%scale, 10)
		for len(frac) < decimals {
			frac = "0" + frac
		}
		s += "." + frac
	}
	if neg && n != 0 {
		s = "-" + s
	}
	return s
}
