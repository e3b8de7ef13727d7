/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package card

import "cardesigner/internal/geom"

// Rendered is the visible representation a rendering engine attaches to a
// node. The designer only reads its geometry.
type Rendered struct {
	Bounds geom.Rect
	// Separator is the strip drawn above the element; empty when none was drawn.
	Separator geom.Rect
}

// Element is a content element of a card.
type Element interface {
	Kind() Kind
	// TypeName is the JSON "type" of the element.
	TypeName() string
	// Base exposes the attributes every element shares.
	Base() *ElementBase
	Parent() Element
	// Remove detaches the element from its parent. It reports false when the
	// element has no parent or the parent refuses.
	Remove() bool
	RenderedElement() *Rendered
	SetRenderedElement(r *Rendered)
}

// Branch is an element that holds child elements, in order.
type Branch interface {
	Element
	ItemCount() int
	ItemAt(i int) Element
}

// ItemContainer is a branch that accepts arbitrary elements and supports
// ordered insertion.
type ItemContainer interface {
	Branch
	AddItem(e Element)
	InsertItemAfter(e, after Element) bool
}

// ActionHolder is an element with attached actions.
type ActionHolder interface {
	Element
	ActionCount() int
	ActionAt(i int) Action
	AddAction(a Action)
}

// childRemover is implemented by every element that owns children.
type childRemover interface {
	removeChild(b *ElementBase) bool
}

// ElementBase holds the attributes shared by every element. Concrete element
// types embed it.
type ElementBase struct {
	ID                  string              `mapstructure:"id"`
	Spacing             Spacing             `mapstructure:"spacing"`
	Separator           bool                `mapstructure:"separator"`
	HorizontalAlignment HorizontalAlignment `mapstructure:"horizontalAlignment"`
	Height              Height              `mapstructure:"height"`

	parent   Element
	rendered *Rendered
}

func (b *ElementBase) Base() *ElementBase { return b }

func (b *ElementBase) Parent() Element { return b.parent }

func (b *ElementBase) RenderedElement() *Rendered { return b.rendered }

func (b *ElementBase) SetRenderedElement(r *Rendered) { b.rendered = r }

func (b *ElementBase) Remove() bool {
	r, ok := b.parent.(childRemover)
	if !ok {
		return false
	}
	if !r.removeChild(b) {
		return false
	}
	b.parent = nil
	return true
}

func (b *ElementBase) applyDefaults() {
	if b.Spacing == "" {
		b.Spacing = SpacingDefault
	}
	if b.Height == "" {
		b.Height = HeightAuto
	}
}

// items is the ordered child list shared by the item containers.
type items struct {
	list []Element
}

func (it *items) ItemCount() int { return len(it.list) }

func (it *items) ItemAt(i int) Element {
	if i < 0 || i >= len(it.list) {
		return nil
	}
	return it.list[i]
}

func (it *items) add(owner Element, e Element) {
	detach(e)
	e.Base().parent = owner
	it.list = append(it.list, e)
}

func (it *items) insertAfter(owner Element, e, after Element) bool {
	if e.Base() == after.Base() || it.indexOf(after.Base()) < 0 {
		return false
	}
	detach(e)
	idx := it.indexOf(after.Base())
	e.Base().parent = owner
	it.list = append(it.list, nil)
	copy(it.list[idx+2:], it.list[idx+1:])
	it.list[idx+1] = e
	return true
}

func (it *items) removeChild(b *ElementBase) bool {
	idx := it.indexOf(b)
	if idx < 0 {
		return false
	}
	it.list = append(it.list[:idx], it.list[idx+1:]...)
	return true
}

func (it *items) indexOf(b *ElementBase) int {
	for i, e := range it.list {
		if e.Base() == b {
			return i
		}
	}
	return -1
}

// detach removes e from a previous parent so an element never sits in two lists.
func detach(e Element) {
	if e.Parent() != nil {
		e.Remove()
	}
}

// actions is the ordered action list shared by the action holders.
type actions struct {
	list []Action
}

func (as *actions) ActionCount() int { return len(as.list) }

func (as *actions) ActionAt(i int) Action {
	if i < 0 || i >= len(as.list) {
		return nil
	}
	return as.list[i]
}

func (as *actions) add(owner ActionHolder, a Action) {
	if a.Base().owner != nil {
		a.Remove()
	}
	a.Base().owner = owner
	as.list = append(as.list, a)
}

func (as *actions) removeAction(b *ActionBase) bool {
	for i, a := range as.list {
		if a.Base() == b {
			as.list = append(as.list[:i], as.list[i+1:]...)
			return true
		}
	}
	return false
}
