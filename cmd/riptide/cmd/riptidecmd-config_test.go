// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadConfigOptionalMissing(t *testing.T) {
	cfg, err := loadConfigOptional(t.TempDir())
	if err != nil {
		t.Fatalf("missing config should not error: %v", err)
	}
	if cfg.Demo.Start != 0 || cfg.Demo.TickMs != 0 {
		t.Fatalf("missing config should be empty: %+v", cfg)
	}
}

func TestLoadConfigOptionalParse(t *testing.T) {
	dir := t.TempDir()
	data := []byte("demo:\n  start: 12\n  stopat: 3\n  tickms: 250\n")
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), data, 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	cfg, err := loadConfigOptional(dir)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Demo.Start != 12 || cfg.Demo.StopAt != 3 || cfg.Demo.TickMs != 250 {
		t.Fatalf("parsed config: %+v", cfg.Demo)
	}
	if cfg.Demo.HeaderTickMs != 0 {
		t.Fatalf("unset field should be zero: %+v", cfg.Demo)
	}
}

func TestLoadConfigOptionalBadYaml(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte("demo: ["), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadConfigOptional(dir); err == nil {
		t.Fatalf("expected parse error")
	}
}
