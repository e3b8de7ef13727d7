/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

package designer

import (
	"cardesigner/internal/card"
	"cardesigner/internal/sheet"
)

const notSet = "(not set)"

// ElementPeer is the variant every content element peer builds on, and the
// fallback for element kinds without a registered peer.
type ElementPeer struct {
	peer    *Peer
	element card.Element
}

func NewElementPeer(d *Designer, e card.Element) *Peer {
	p := newPeer(d)
	p.variant = &ElementPeer{peer: p, element: e}
	return p
}

// Peer returns the peer this variant belongs to.
func (ep *ElementPeer) Peer() *Peer { return ep.peer }

func (ep *ElementPeer) CardElement() card.Element { return ep.element }

func (ep *ElementPeer) Node() any { return ep.element }

func (ep *ElementPeer) BadgeText() string { return ep.element.TypeName() }

func (ep *ElementPeer) HeaderText() string { return "Element type: **" + ep.BadgeText() + "**" }

func (ep *ElementPeer) ReferenceRenderedElement() *card.Rendered {
	return ep.element.RenderedElement()
}

func (ep *ElementPeer) RemoveNode() bool { return ep.element.Remove() }

func (ep *ElementPeer) Commands() []Command {
	cmds := baseCommands(ep.peer)
	if parent, ok := ep.element.Parent().(card.ItemContainer); ok {
		cmds = append(cmds, Command{
			Name: "Insert TextBlock after",
			Execute: func() {
				tb := card.NewTextBlock("New TextBlock")
				if parent.InsertItemAfter(tb, ep.element) {
					ep.adopt(tb)
				}
			},
		})
	}
	return cmds
}

func (ep *ElementPeer) AddPropertySheetEntries(s *sheet.Sheet) {
	b := ep.element.Base()
	s.Add("Id", edited(ep.peer, sheet.NewText(b.ID, false, sheet.WithPlaceholder(notSet)), func(v string) bool {
		b.ID = v
		return true
	}))
	s.Add("Spacing", edited(ep.peer, sheet.NewChoiceSet(string(b.Spacing), sheet.Choices(card.SpacingValues),
		sheet.WithDefault(string(card.SpacingDefault))), func(v string) bool {
		b.Spacing = card.Spacing(v)
		return true
	}))
	s.Add("Show separator", edited(ep.peer, sheet.NewToggle(b.Separator), func(v string) bool {
		b.Separator = v == "true"
		return true
	}))
	align := sheet.NewChoiceSet(string(b.HorizontalAlignment), sheet.Choices(card.HorizontalAlignmentValues),
		sheet.WithPlaceholder(notSet)).AllowEmpty()
	s.Add("Horizontal alignment", edited(ep.peer, align, func(v string) bool {
		b.HorizontalAlignment = card.HorizontalAlignment(v)
		return true
	}))
	s.Add("Height", edited(ep.peer, sheet.NewChoiceSet(string(b.Height), sheet.Choices(card.HeightValues),
		sheet.WithDefault(string(card.HeightAuto))), func(v string) bool {
		b.Height = card.Height(v)
		return true
	}))
}

// layoutSeparator hides the strip for spacing "none" and otherwise shows it
// while the peer is selected or hovered.
func (ep *ElementPeer) layoutSeparator(r *Region, selected, hover bool) {
	if ep.element.Base().Spacing == card.SpacingNone {
		r.Visible = false
		return
	}
	r.Visible = selected || hover
}

// adopt creates the peer of a freshly inserted element and reports it.
func (ep *ElementPeer) adopt(e card.Element) {
	d := ep.peer.designer
	ep.peer.newPeerCreated(d.elementRegistry().CreatePeerInstance(d, e))
}

// addItemCommand appends a new text block to c.
func (ep *ElementPeer) addItemCommand(c card.ItemContainer) Command {
	return Command{
		Name: "Add TextBlock inside",
		Execute: func() {
			tb := card.NewTextBlock("New TextBlock")
			c.AddItem(tb)
			ep.adopt(tb)
		},
	}
}

// actionCommands are the three "add action" commands of action holders.
func (ep *ElementPeer) actionCommands(h card.ActionHolder) []Command {
	add := func(a card.Action) {
		h.AddAction(a)
		d := ep.peer.designer
		ep.peer.newPeerCreated(d.actionRegistry().CreatePeerInstance(d, a))
	}
	return []Command{
		{Name: "Add OpenUrl action", Execute: func() { add(card.NewOpenURLAction("New OpenUrl action")) }},
		{Name: "Add ShowCard action", Execute: func() { add(card.NewShowCardAction("New ShowCard action")) }},
		{Name: "Add Http action", Execute: func() { add(card.NewHTTPAction("New Http action")) }},
	}
}

func baseCommands(p *Peer) []Command {
	return []Command{{Name: "Remove", Execute: func() { p.Remove() }}}
}

// edited wires in so that every value change is applied to the node and
// reported as a change. apply returns false to drop the edit.
func edited[I sheet.Input](p *Peer, in I, apply func(v string) bool) I {
	in.OnValueChanged(func(changed sheet.Input) {
		if apply(changed.Value()) {
			p.changed()
		}
	})
	return in
}
