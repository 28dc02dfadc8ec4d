// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package app ties the engine together for a process: exactly one root
// context and one work loop, owned explicitly by an App rather than
// living as package globals.
package app

import (
	"github.com/wavetermdev/riptide/element"
	"github.com/wavetermdev/riptide/engine"
	"github.com/wavetermdev/riptide/util"
	"github.com/wavetermdev/riptide/workloop"
)

type AppOpts struct {
	// OnRender receives each freshly materialized primitive tree. The
	// render target must not alter engine state.
	OnRender func(tree element.Primitive)
}

// App is the root driver: it holds the single root context and re-renders
// it from the work loop's pre-sleep hook whenever it is invalidated.
type App struct {
	opts AppOpts
	loop *workloop.WorkLoop
	root *engine.ComponentContext
}

func MakeApp(rootComp element.Component, opts AppOpts) *App {
	app := &App{opts: opts}
	app.loop = workloop.MakeWorkLoop(app.RenderPass)
	app.root = engine.MakeComponentContext(rootComp, app.loop)
	return app
}

func (a *App) Loop() *workloop.WorkLoop {
	return a.loop
}

func (a *App) Root() *engine.ComponentContext {
	return a.root
}

// SetRootProps feeds updated root-level props into the existing root
// context without discarding it. The component's concrete type and key
// must match the current root component.
func (a *App) SetRootProps(comp element.Component) error {
	return a.root.SetProps(comp)
}

// RenderPass materializes the root if it is invalidated and hands the
// tree to the render target. This is the loop's pre-sleep hook; tests and
// custom drivers may also call it directly.
func (a *App) RenderPass() {
	defer func() {
		util.PanicHandler("app render pass", recover())
	}()
	if !a.root.Invalidated() {
		return
	}
	tree := a.root.Materialize()
	if a.opts.OnRender != nil {
		a.opts.OnRender(tree)
	}
}

// Run enters the work loop and blocks until Stop.
func (a *App) Run() {
	a.loop.RunForever()
}

func (a *App) Stop() {
	a.loop.Stop()
}
