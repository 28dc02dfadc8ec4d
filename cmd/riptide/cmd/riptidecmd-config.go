// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"errors"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const ConfigFileName = "riptide.yaml"

// DemoConfig holds the optional riptide.yaml settings for the demo app.
// Flags given on the command line win over file values.
type DemoConfig struct {
	Demo DemoSection `yaml:"demo"`
}

type DemoSection struct {
	Start        int `yaml:"start,omitempty"`
	StopAt       int `yaml:"stopat,omitempty"`
	TickMs       int `yaml:"tickms,omitempty"`
	HeaderTickMs int `yaml:"headertickms,omitempty"`
}

// loadConfigOptional reads riptide.yaml from dir if present; a missing
// file yields an empty config, not an error.
func loadConfigOptional(dir string) (*DemoConfig, error) {
	path := dir + "/" + ConfigFileName
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &DemoConfig{}, nil
		}
		return nil, fmt.Errorf("failed to read %s: %w", ConfigFileName, err)
	}
	var cfg DemoConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", ConfigFileName, err)
	}
	return &cfg, nil
}
