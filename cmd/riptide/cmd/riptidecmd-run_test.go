// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

// setRunFlag marks a run flag as explicitly given, restoring the default
// (and the unchanged state) when the test finishes
func setRunFlag(t *testing.T, name string, val string) {
	t.Helper()
	f := runCmd.Flags().Lookup(name)
	if f == nil {
		t.Fatalf("flag %q not registered", name)
	}
	if err := runCmd.Flags().Set(name, val); err != nil {
		t.Fatalf("set flag %s: %v", name, err)
	}
	t.Cleanup(func() {
		f.Value.Set(f.DefValue)
		f.Changed = false
	})
}

func TestResolveDemoSectionDefaults(t *testing.T) {
	demo, err := resolveDemoSection(runCmd, t.TempDir())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if demo.Start != 9 || demo.StopAt != 5 || demo.TickMs != 800 || demo.HeaderTickMs != 500 {
		t.Fatalf("defaults: %+v", demo)
	}
}

func TestResolveDemoSectionFileThenFlag(t *testing.T) {
	dir := t.TempDir()
	data := []byte("demo:\n  start: 12\n  stopat: 3\n")
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	// file values win over defaults, unset fields still default
	demo, err := resolveDemoSection(runCmd, dir)
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if demo.Start != 12 || demo.StopAt != 3 || demo.TickMs != 800 {
		t.Fatalf("file merge: %+v", demo)
	}

	// a changed flag wins over the file value
	setRunFlag(t, "start", "20")
	demo, err = resolveDemoSection(runCmd, dir)
	if err != nil {
		t.Fatalf("resolve with flag: %v", err)
	}
	if demo.Start != 20 || demo.StopAt != 3 {
		t.Fatalf("flag override: %+v", demo)
	}
}

// an explicit zero flag is a real value, not an unset marker
func TestResolveDemoSectionExplicitZeroFlag(t *testing.T) {
	setRunFlag(t, "start", "0")
	setRunFlag(t, "stopat", "0")
	demo, err := resolveDemoSection(runCmd, t.TempDir())
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if demo.Start != 0 || demo.StopAt != 0 {
		t.Fatalf("explicit zero replaced by defaults: %+v", demo)
	}
	if demo.TickMs != 800 || demo.HeaderTickMs != 500 {
		t.Fatalf("untouched fields should default: %+v", demo)
	}
}

func TestResolveDemoSectionStopAtValidation(t *testing.T) {
	setRunFlag(t, "stopat", "20")
	if _, err := resolveDemoSection(runCmd, t.TempDir()); err == nil {
		t.Fatalf("expected stopat > start error")
	}
}
