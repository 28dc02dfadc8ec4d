// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package engine

import (
	"github.com/outrigdev/goid"

	"github.com/wavetermdev/riptide/element"
	"github.com/wavetermdev/riptide/util"
)

// effectSlot is one use_effect hook record: the deferred callback plus the
// dependency sequence it was stored with.
type effectSlot struct {
	fn   func()
	deps []any
}

// renderComponent invokes the bound component's render function, recording
// the render goroutine id for the duration so hook calls can be checked.
func (c *ComponentContext) renderComponent() element.Elem {
	c.lock.Lock()
	c.renderGoId = goid.Get()
	comp := c.comp
	c.lock.Unlock()
	defer func() {
		c.lock.Lock()
		c.renderGoId = 0
		c.lock.Unlock()
	}()
	return comp.Render(c)
}

// hooks are only valid while this context's render function is on the
// stack, on the render goroutine
func (c *ComponentContext) checkHookContext(hookName string) {
	c.lock.Lock()
	renderGoId := c.renderGoId
	c.lock.Unlock()
	if renderGoId == 0 || renderGoId != goid.Get() {
		panic(hookName + " must be called from the component's render function (possible out of order or conditional hooks)")
	}
}

// UseState returns the state value stored at the current hook cursor and a
// setter for it. The first call at a given cursor position stores initial;
// afterwards initial is ignored. The setter overwrites the slot in place,
// invalidates this context with propagation, and wakes the work loop; it
// may be called from any goroutine, at any time.
func (c *ComponentContext) UseState(initial any) (any, func(any)) {
	c.checkHookContext("UseState")
	c.lock.Lock()
	idx := c.stateIdx
	c.stateIdx++
	if idx >= len(c.states) {
		c.states = append(c.states, initial)
	}
	val := c.states[idx]
	c.lock.Unlock()

	setState := func(newVal any) {
		c.lock.Lock()
		c.states[idx] = newVal
		c.invalidateNoLock(true)
		c.lock.Unlock()
		c.loop.Wake()
	}
	return val, setState
}

// UseEffect registers a deferred callback. On first allocation, or when
// deps differs by value from the previous render's sequence, the slot is
// replaced and fn is enqueued on the work loop; an unchanged sequence
// enqueues nothing. Nil deps always re-run (like React with no dependency
// array). Effects are never invoked synchronously during render.
func (c *ComponentContext) UseEffect(fn func(), deps []any) {
	c.checkHookContext("UseEffect")
	c.lock.Lock()
	idx := c.effectIdx
	c.effectIdx++
	enqueue := false
	if idx >= len(c.effects) {
		c.effects = append(c.effects, &effectSlot{fn: fn, deps: deps})
		enqueue = true
	} else if deps == nil || !util.DepsEqual(c.effects[idx].deps, deps) {
		c.effects[idx] = &effectSlot{fn: fn, deps: deps}
		enqueue = true
	}
	c.lock.Unlock()
	if enqueue {
		c.loop.PushWork(fn)
	}
}

// UseRef returns the mutable cell stored at the current hook cursor,
// allocating it with initial on the first call. The same cell is returned
// on every subsequent render; writes to Current never invalidate.
func (c *ComponentContext) UseRef(initial any) *element.Ref {
	c.checkHookContext("UseRef")
	c.lock.Lock()
	defer c.lock.Unlock()
	if c.refIdx >= len(c.refs) {
		c.refs = append(c.refs, &element.Ref{Current: initial})
	}
	ref := c.refs[c.refIdx]
	c.refIdx++
	return ref
}
