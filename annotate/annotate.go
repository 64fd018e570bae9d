// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// Package annotate records human readable notes about what the user changed,
// one per channel (beer or fridge), for the host to show along the logged
// temperatures.
package annotate

import (
	"fmt"
	"sync"

	"github.com/sirupsen/logrus"
)

// Channel identifies the temperature an annotation refers to.
type Channel string

const (
	Beer   Channel = "beer"
	Fridge Channel = "fridge"
)

// Annotation is one recorded note.
type Annotation struct {
	Channel Channel
	Text    string
}

// Logger writes annotations to a logrus logger and keeps the most recent
// ones. It's safe for concurrent use.
type Logger struct {
	entry *logrus.Entry
	keep  int

	mu     sync.Mutex
	recent []Annotation
}

// New returns a Logger writing to l that keeps the last keep annotations.
// A nil l uses the standard logrus logger.
func New(l *logrus.Logger, keep int) *Logger {
	if l == nil {
		l = logrus.StandardLogger()
	}
	return &Logger{entry: l.WithField("pkg", "annotate"), keep: keep}
}

// BeerAnnotation records a note about the beer temperature.
func (a *Logger) BeerAnnotation(format string, args ...any) {
	a.annotate(Beer, format, args...)
}

// FridgeAnnotation records a note about the fridge temperature.
func (a *Logger) FridgeAnnotation(format string, args ...any) {
	a.annotate(Fridge, format, args...)
}

// Recent returns the kept annotations, oldest first.
func (a *Logger) Recent() []Annotation {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]Annotation(nil), a.recent...)
}

func (a *Logger) annotate(ch Channel, format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	a.entry.WithField("channel", string(ch)).Info(text)
	if a.keep <= 0 {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.recent = append(a.recent, Annotation{Channel: ch, Text: text})
	if len(a.recent) > a.keep {
		a.recent = a.recent[len(a.recent)-a.keep:]
	}
}
