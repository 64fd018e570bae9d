// Copyright 2017 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package lcdterm

import (
	"bytes"
	"strings"
	"testing"

	"github.com/maruel/ansi256"
)

func TestRender(t *testing.T) {
	var buf bytes.Buffer
	d := New(&Opts{W: &buf})
	if s := d.String(); s != "LCDTerm" {
		t.Fatal(s)
	}
	lines := []string{"Mode   Off", "Beer    --.-  °C"}
	if err := d.Render(lines, true); err != nil {
		t.Fatal(err)
	}
	out := buf.String()
	if strings.Contains(out, "\033[4A") {
		t.Fatal("first frame must not move the cursor up")
	}
	for _, want := range []string{
		"+----------------+",
		"|Mode   Off      | " + ansi256.Default.Block(DefaultOn),
		"|Beer    --.-  °C|",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("missing %q in %q", want, out)
		}
	}

	buf.Reset()
	if err := d.Render(lines, false); err != nil {
		t.Fatal(err)
	}
	out = buf.String()
	if !strings.HasPrefix(out, "\033[4A") {
		t.Errorf("expected redraw in place, got %q", out)
	}
	if !strings.Contains(out, ansi256.Default.Block(DefaultOff)) {
		t.Errorf("backlight off not shown in %q", out)
	}

	buf.Reset()
	if err := d.Halt(); err != nil {
		t.Fatal(err)
	}
	if buf.String() != "\033[0m\n" {
		t.Fatalf("%q", buf.String())
	}
}

func TestNilOpts(t *testing.T) {
	d := New(nil)
	if d.w == nil || d.on != DefaultOn || d.off != DefaultOff {
		t.Fatalf("defaults not applied: %+v", d)
	}
}
