// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/wavetermdev/riptide/app"
	"github.com/wavetermdev/riptide/element"
	"github.com/wavetermdev/riptide/ui"
)

var runStart int
var runStopAt int
var runTickMs int
var runHeaderTickMs int

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the counter demo app, painting each frame to stdout",
	RunE:  runRunCmd,
}

func init() {
	runCmd.Flags().IntVar(&runStart, "start", 0, "countdown start value (overrides riptide.yaml)")
	runCmd.Flags().IntVar(&runStopAt, "stopat", 0, "countdown stop value (overrides riptide.yaml)")
	runCmd.Flags().IntVar(&runTickMs, "tickms", 0, "countdown tick in milliseconds (overrides riptide.yaml)")
	runCmd.Flags().IntVar(&runHeaderTickMs, "headertickms", 0, "header tick in milliseconds (overrides riptide.yaml)")
	rootCmd.AddCommand(runCmd)
}

func resolveDemoSection(flags *cobra.Command, dir string) (*DemoSection, error) {
	cfg, err := loadConfigOptional(dir)
	if err != nil {
		return nil, err
	}
	demo := cfg.Demo
	// demo defaults fill in whatever the file left unset; a changed flag
	// then wins outright, even when set to zero
	if demo.Start == 0 {
		demo.Start = 9
	}
	if demo.StopAt == 0 {
		demo.StopAt = 5
	}
	if demo.TickMs == 0 {
		demo.TickMs = 800
	}
	if demo.HeaderTickMs == 0 {
		demo.HeaderTickMs = 500
	}
	if flags.Flags().Changed("start") {
		demo.Start = runStart
	}
	if flags.Flags().Changed("stopat") {
		demo.StopAt = runStopAt
	}
	if flags.Flags().Changed("tickms") {
		demo.TickMs = runTickMs
	}
	if flags.Flags().Changed("headertickms") {
		demo.HeaderTickMs = runHeaderTickMs
	}
	if demo.StopAt > demo.Start {
		return nil, fmt.Errorf("stopat (%d) must not exceed start (%d)", demo.StopAt, demo.Start)
	}
	return &demo, nil
}

func makePainter() func(tree element.Primitive) {
	clearScreen := isatty.IsTerminal(os.Stdout.Fd())
	return func(tree element.Primitive) {
		if clearScreen {
			fmt.Print("\x1b[H\x1b[2J")
		}
		fmt.Print(element.DebugString(tree))
	}
}

func runRunCmd(cmd *cobra.Command, args []string) error {
	cwd, err := os.Getwd()
	if err != nil {
		return err
	}
	demo, err := resolveDemoSection(cmd, cwd)
	if err != nil {
		return err
	}
	var demoApp *app.App
	rootComp := ui.Counter{
		Start:      demo.Start,
		StopAt:     demo.StopAt,
		Tick:       time.Duration(demo.TickMs) * time.Millisecond,
		HeaderTick: time.Duration(demo.HeaderTickMs) * time.Millisecond,
		OnDone: func() {
			demoApp.Stop()
		},
	}
	demoApp = app.MakeApp(rootComp, app.AppOpts{OnRender: makePainter()})
	demoApp.Run()
	fmt.Println("done")
	return nil
}
