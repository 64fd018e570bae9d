// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

package annotate

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestLogger(t *testing.T) {
	l, hook := test.NewNullLogger()
	a := New(l, 2)
	a.BeerAnnotation("%s temp set to %s in Menu.", "Beer", "20.0")
	a.FridgeAnnotation("Fridge temp set to %s in Menu.", "4.5")
	a.BeerAnnotation("Temp control turned off in menu.")

	if len(hook.Entries) != 3 {
		t.Fatalf("expected 3 log entries, received %d", len(hook.Entries))
	}
	last := hook.LastEntry()
	if last.Level != logrus.InfoLevel || last.Message != "Temp control turned off in menu." {
		t.Errorf("unexpected entry %v %q", last.Level, last.Message)
	}
	if last.Data["channel"] != "beer" {
		t.Errorf("expected channel beer, received %v", last.Data["channel"])
	}
	want := []Annotation{
		{Fridge, "Fridge temp set to 4.5 in Menu."},
		{Beer, "Temp control turned off in menu."},
	}
	if diff := cmp.Diff(want, a.Recent()); diff != "" {
		t.Errorf("Recent() mismatch (-want +got):\n%s", diff)
	}
}
