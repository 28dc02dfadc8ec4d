// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package ui

import (
	"fmt"
	"time"

	"github.com/wavetermdev/riptide/app"
	"github.com/wavetermdev/riptide/element"
)

// Counter is the demo root component: a countdown list plus a header that
// counts renders upward. Both sides advance through external timers
// spawned from effects; the timers re-enter the engine only through state
// setters. When the countdown reaches StopAt, OnDone is called (typically
// wired to App.Stop).
type Counter struct {
	Key        string
	Start      int
	StopAt     int
	Tick       time.Duration
	HeaderTick time.Duration
	OnDone     func()
}

func (co Counter) ElemKey() string { return co.Key }

func (co Counter) Render(rc element.RenderContext) element.Elem {
	header, setHeader := app.UseState(rc, 0)
	count, setCount := app.UseState(rc, co.Start)

	app.UseEffect(rc, func() {
		if count == co.StopAt {
			if co.OnDone != nil {
				co.OnDone()
			}
			return
		}
		time.AfterFunc(co.Tick, func() {
			setCount(count - 1)
		})
	}, []any{count})

	app.UseEffect(rc, func() {
		time.AfterFunc(co.HeaderTick, func() {
			setHeader(header + 1)
		})
	}, []any{header})

	return ItemList{
		Count:      count,
		TextPrefix: "Sample",
		Title:      fmt.Sprintf("Header (count: %d)", header),
	}
}
