// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

package element

import (
	"fmt"
	"reflect"
	"strings"
)

// Elem is an immutable description of a node to render. Every element
// carries an optional key (empty by default) used for reconciliation.
// There are two element families: Primitive (directly renderable) and
// Component (user-defined, expands through its Render function).
type Elem interface {
	ElemKey() string
}

// Primitive is a directly renderable element with no user logic.
// The engine is output agnostic: it only needs child access and a rebuild
// operation for recursive expansion, so render surfaces may define their
// own primitive set beyond the built-in Text and Box.
type Primitive interface {
	Elem
	ElemChildren() []Elem
	// WithChildren returns a copy of the primitive carrying the given
	// (fully expanded) children. Childless primitives return themselves.
	WithChildren(children []Elem) Primitive
}

// Component is a user-defined element. Render must return exactly one
// shallow child element (possibly another Component). Reconciliation
// identity is (concrete type, key); both must stay stable for the lifetime
// of a component instance at a given tree position.
type Component interface {
	Elem
	Render(rc RenderContext) Elem
}

// RenderContext is the hook surface a component sees during render.
// Hook slot identity is determined solely by call order, so a component
// must call its hooks in the same order and count on every render.
type RenderContext interface {
	UseState(initial any) (any, func(any))
	UseEffect(fn func(), deps []any)
	UseRef(initial any) *Ref
}

// Ref is a single mutable cell with stable identity across re-renders.
// Writes to Current are invisible to the invalidation system.
type Ref struct {
	Current any
}

// Text renders a string payload. No children.
type Text struct {
	Key  string
	Text string
}

func (t Text) ElemKey() string { return t.Key }

func (t Text) ElemChildren() []Elem { return nil }

func (t Text) WithChildren([]Elem) Primitive { return t }

// Box renders its children in order.
type Box struct {
	Key      string
	Children []Elem
}

func (b Box) ElemKey() string      { return b.Key }
func (b Box) ElemChildren() []Elem { return b.Children }

func (b Box) WithChildren(children []Elem) Primitive {
	return Box{Key: b.Key, Children: children}
}

// Equal reports structural equality over all fields, children included.
// Note function-valued props never compare equal (reflect.DeepEqual), so a
// component carrying callbacks always registers as changed.
func Equal(a Elem, b Elem) bool {
	return reflect.DeepEqual(a, b)
}

// TypeName returns the concrete type name of a component, used for the
// reconciliation bucket key and error messages. A pointer component is a
// distinct type from its value form ("*pkg.T" vs "pkg.T"), consistent
// with the type check in SetProps.
func TypeName(c Component) string {
	return reflect.TypeOf(c).String()
}

func debugLabel(e Elem) string {
	switch v := e.(type) {
	case Text:
		return fmt.Sprintf("Text(key=%q, text=%q)", v.Key, v.Text)
	case Box:
		return fmt.Sprintf("Box(key=%q)", v.Key)
	default:
		return fmt.Sprintf("%T%+v", e, e)
	}
}

// DebugString renders the element tree as indented text for diagnostics.
// It has no effect on engine state.
func DebugString(e Elem) string {
	text := debugLabel(e) + "\n"
	p, ok := e.(Primitive)
	if !ok {
		return text
	}
	for _, child := range p.ElemChildren() {
		childLines := strings.Split(strings.TrimSuffix(DebugString(child), "\n"), "\n")
		text += "- " + childLines[0] + "\n"
		for _, line := range childLines[1:] {
			text += "  " + line + "\n"
		}
	}
	return text
}
