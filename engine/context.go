// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package engine implements the reconciler: one ComponentContext per live
// component instance, owning hook slot storage, keyed child matching,
// invalidation state, and the materialize algorithm.
package engine

import (
	"errors"
	"fmt"
	"reflect"
	"sync"

	"github.com/google/uuid"

	"github.com/wavetermdev/riptide/element"
	"github.com/wavetermdev/riptide/workloop"
)

var (
	ErrTypeMismatch = errors.New("component type mismatch")
	ErrKeyMismatch  = errors.New("component key mismatch")
)

// childKey buckets sibling child contexts for reconciliation. Within a
// bucket, matching across renders is strictly positional.
type childKey struct {
	TypeName string
	Key      string
}

// ComponentContext is the persistent node bound 1:1 to one logical
// component instance across its lifetime. This is the engine's equivalent
// of React's fiber nodes: component identity, hook state, and the cached
// materialized subtree all live here, while the element values flowing
// through Render are ephemeral.
type ComponentContext struct {
	id   string
	loop *workloop.WorkLoop

	// shared across the whole context tree; guards slot and flag access
	// so state setters can be called from arbitrary goroutines
	lock *sync.Mutex

	comp element.Component

	// non-owning back-reference, used only for invalidation bubbling;
	// never traversed to mutate the parent's child collections. Cleared
	// on detach (the teardown signal).
	parent *ComponentContext

	invalidated  bool
	materialized element.Primitive

	effects   []*effectSlot
	effectIdx int
	refs      []*element.Ref
	refIdx    int
	states    []any
	stateIdx  int

	subMap     map[childKey][]*ComponentContext
	prevSubMap map[childKey][]*ComponentContext

	// goroutine id of the render in progress; 0 outside of render
	renderGoId uint64
}

var _ element.RenderContext = (*ComponentContext)(nil)

// MakeComponentContext creates a root context bound to comp. The work loop
// receives this tree's deferred effects and wake-ups; it is injected here
// rather than being an ambient global.
func MakeComponentContext(comp element.Component, loop *workloop.WorkLoop) *ComponentContext {
	return &ComponentContext{
		id:          uuid.New().String(),
		loop:        loop,
		lock:        &sync.Mutex{},
		comp:        comp,
		invalidated: true,
		subMap:      make(map[childKey][]*ComponentContext),
		prevSubMap:  make(map[childKey][]*ComponentContext),
	}
}

func makeSubcontext(parent *ComponentContext, comp element.Component) *ComponentContext {
	return &ComponentContext{
		id:          uuid.New().String(),
		loop:        parent.loop,
		lock:        parent.lock,
		comp:        comp,
		parent:      parent,
		invalidated: true,
		subMap:      make(map[childKey][]*ComponentContext),
		prevSubMap:  make(map[childKey][]*ComponentContext),
	}
}

// Id returns the context's unique id, assigned at creation and stable for
// the context's lifetime. Engine diagnostics (mismatch errors, invariant
// panics) carry it so a failure can be tied back to a live context.
func (c *ComponentContext) Id() string {
	return c.id
}

// Component returns the currently bound component value.
func (c *ComponentContext) Component() element.Component {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.comp
}

// Parent returns the parent context, or nil for the root and for contexts
// that have been detached.
func (c *ComponentContext) Parent() *ComponentContext {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.parent
}

func (c *ComponentContext) Invalidated() bool {
	c.lock.Lock()
	defer c.lock.Unlock()
	return c.invalidated
}

// Invalidate marks the cached subtree stale. With propagate, every
// ancestor up to the root is invalidated as well (used by state setters so
// a cached-serving ancestor cannot short-circuit). Idempotent.
func (c *ComponentContext) Invalidate(propagate bool) {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.invalidateNoLock(propagate)
}

func (c *ComponentContext) invalidateNoLock(propagate bool) {
	c.invalidated = true
	if propagate && c.parent != nil {
		c.parent.invalidateNoLock(true)
	}
}

// SetProps replaces the bound component value with newComp. A structurally
// equal value is a no-op. The concrete type and the key must both match
// the bound component; a mismatch is rejected atomically (the prior value
// and invalidation state are left untouched) with an error wrapping
// ErrTypeMismatch or ErrKeyMismatch. On a real change the context is
// invalidated locally only: the parent's shallow output already named this
// child, so ancestors stay clean.
func (c *ComponentContext) SetProps(newComp element.Component) error {
	c.lock.Lock()
	defer c.lock.Unlock()
	if element.Equal(newComp, c.comp) {
		return nil
	}
	if reflect.TypeOf(newComp) != reflect.TypeOf(c.comp) {
		return fmt.Errorf("%w: context %s holds %s, cannot be replaced with %s",
			ErrTypeMismatch, c.id, element.TypeName(c.comp), element.TypeName(newComp))
	}
	if newComp.ElemKey() != c.comp.ElemKey() {
		return fmt.Errorf("%w: context %s expected %s key %q but got %q",
			ErrKeyMismatch, c.id, element.TypeName(c.comp), c.comp.ElemKey(), newComp.ElemKey())
	}
	c.comp = newComp
	c.invalidateNoLock(false)
	return nil
}

// ChildContexts returns this context's current-generation children in the
// (typeName, key) bucket, in render order.
func (c *ComponentContext) ChildContexts(typeName string, key string) []*ComponentContext {
	c.lock.Lock()
	defer c.lock.Unlock()
	subs := c.subMap[childKey{TypeName: typeName, Key: key}]
	rtn := make([]*ComponentContext, len(subs))
	copy(rtn, subs)
	return rtn
}

// Materialize expands this context's component into a fully primitive
// subtree. When the context is clean and a cache exists, the cached tree
// is returned unchanged with no hook or reconciliation work (the
// incremental-recomputation guarantee).
func (c *ComponentContext) Materialize() element.Primitive {
	c.lock.Lock()
	if !c.invalidated && c.materialized != nil {
		defer c.lock.Unlock()
		return c.materialized
	}
	c.lock.Unlock()

	c.beginMaterialization()
	shallowSubtree := c.renderComponent()
	tree := c.materializeElem(shallowSubtree)
	c.finalizeSubcontexts()

	c.lock.Lock()
	c.materialized = tree
	c.lock.Unlock()
	return tree
}

func (c *ComponentContext) beginMaterialization() {
	c.lock.Lock()
	defer c.lock.Unlock()
	c.invalidated = false
	c.effectIdx = 0
	c.refIdx = 0
	c.stateIdx = 0
	c.prevSubMap = c.subMap
	c.subMap = make(map[childKey][]*ComponentContext)
}

func (c *ComponentContext) materializeElem(e element.Elem) element.Primitive {
	switch elem := e.(type) {
	case element.Primitive:
		children := elem.ElemChildren()
		if len(children) == 0 {
			// structural sharing, no copy
			return elem
		}
		newChildren := make([]element.Elem, len(children))
		for idx, child := range children {
			newChildren[idx] = c.materializeElem(child)
		}
		return elem.WithChildren(newChildren)
	case element.Component:
		subcontext := c.initSubcontext(elem)
		return subcontext.Materialize()
	default:
		// the element variant set is closed; reaching this is an engine
		// invariant violation, not a user error
		panic(fmt.Sprintf("non-materializable element %T in context %s", e, c.id))
	}
}

// initSubcontext finds the child context for a subcomponent, or creates
// one. The Nth request for a (type, key) bucket this render matches the
// Nth previously existing context in that bucket.
func (c *ComponentContext) initSubcontext(subcomp element.Component) *ComponentContext {
	key := childKey{TypeName: element.TypeName(subcomp), Key: subcomp.ElemKey()}

	c.lock.Lock()
	var subcontext *ComponentContext
	if prev := c.prevSubMap[key]; len(c.subMap[key]) < len(prev) {
		subcontext = prev[len(c.subMap[key])]
	}
	c.lock.Unlock()

	if subcontext != nil {
		if err := subcontext.SetProps(subcomp); err != nil {
			// unreachable: the bucket key pins both type and key
			panic(err)
		}
	} else {
		subcontext = makeSubcontext(c, subcomp)
	}

	c.lock.Lock()
	c.subMap[key] = append(c.subMap[key], subcontext)
	c.lock.Unlock()
	return subcontext
}

// finalizeSubcontexts detaches any previous-generation child context that
// received no matching request this render. Detachment (parent cleared) is
// the removal signal; no per-effect cleanup is invoked.
func (c *ComponentContext) finalizeSubcontexts() {
	c.lock.Lock()
	defer c.lock.Unlock()
	for key, prevSubcontexts := range c.prevSubMap {
		newSubcontexts := c.subMap[key]
		if len(newSubcontexts) >= len(prevSubcontexts) {
			continue
		}
		for _, removed := range prevSubcontexts[len(newSubcontexts):] {
			removed.parent = nil
		}
	}
	c.prevSubMap = make(map[childKey][]*ComponentContext)
}
