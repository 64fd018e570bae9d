// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package brewpanel is a container for the packages of a fermentation
// controller front panel: a HD44780 character LCD behind a PCF8574 I²C
// backpack, edited with a rotary encoder.
//
// The executable is in cmd/brewpanel.
package brewpanel
