// Copyright 2025, Command Line Inc.
// SPDX-License-Identifier: Apache-2.0

// Package ui holds a small example component library built entirely on
// the engine's public surface. It illustrates usage; nothing in the
// engine depends on it.
package ui

import (
	"fmt"

	"github.com/wavetermdev/riptide/element"
)

// Header renders a boxed title line.
type Header struct {
	Key   string
	Title string
}

func (h Header) ElemKey() string { return h.Key }

func (h Header) Render(rc element.RenderContext) element.Elem {
	return element.Box{Children: []element.Elem{
		element.Text{Text: h.Title},
	}}
}

// ItemList renders a header followed by Count numbered text lines.
type ItemList struct {
	Key        string
	Count      int
	Title      string
	TextPrefix string
}

func (l ItemList) ElemKey() string { return l.Key }

func (l ItemList) Render(rc element.RenderContext) element.Elem {
	children := []element.Elem{Header{Title: l.Title}}
	for i := 0; i < l.Count; i++ {
		children = append(children, element.Text{Text: fmt.Sprintf("%s %d", l.TextPrefix, i)})
	}
	return element.Box{Children: children}
}
