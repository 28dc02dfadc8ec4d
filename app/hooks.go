// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package app

import (
	"github.com/wavetermdev/riptide/element"
)

// UseState is the typed wrapper over the engine's untyped state hook.
// It returns the current slot value and a typed setter. Setting a new
// value invalidates the owning context (with propagation) and wakes the
// work loop. Must be called from a component's render function.
func UseState[T any](rc element.RenderContext, initial T) (T, func(T)) {
	val, setVal := rc.UseState(initial)
	rtnVal, ok := val.(T)
	if !ok {
		panic("UseState hook value has the wrong type (possible out of order or conditional hooks)")
	}
	typedSetVal := func(newVal T) {
		setVal(newVal)
	}
	return rtnVal, typedSetVal
}

// UseEffect registers a deferred effect callback with a dependency
// sequence. See engine.ComponentContext.UseEffect for the enqueue rules.
func UseEffect(rc element.RenderContext, fn func(), deps []any) {
	rc.UseEffect(fn, deps)
}

// Ref is a typed view over an element.Ref cell.
type Ref[T any] struct {
	cell *element.Ref
}

// UseRef is the typed wrapper over the engine's ref hook. The underlying
// cell is allocated once per hook slot and survives re-renders; reads and
// writes through the returned view never trigger invalidation.
func UseRef[T any](rc element.RenderContext, initial T) Ref[T] {
	return Ref[T]{cell: rc.UseRef(initial)}
}

// Cell returns the underlying untyped cell.
func (r Ref[T]) Cell() *element.Ref {
	return r.cell
}

func (r Ref[T]) Get() T {
	val, ok := r.cell.Current.(T)
	if !ok {
		var zero T
		return zero
	}
	return val
}

func (r Ref[T]) Set(val T) {
	r.cell.Current = val
}
