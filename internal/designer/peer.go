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
	"strings"

	"github.com/google/uuid"

	"cardesigner/internal/card"
	"cardesigner/internal/geom"
	"cardesigner/internal/sheet"
)

// Command is a user-invocable operation exposed by a peer.
type Command struct {
	Name    string
	Execute func()
}

// Variant is the node-specific half of a peer. Every variant embeds either
// ElementPeer or ActionPeer, which supply the shared behaviour, and adds its
// own commands and property fields on top.
type Variant interface {
	// Node returns the wrapped card element or action.
	Node() any
	BadgeText() string
	ReferenceRenderedElement() *card.Rendered
	// AddPropertySheetEntries appends the variant's fields to s. Overrides
	// call the embedded contribution first.
	AddPropertySheetEntries(s *sheet.Sheet)
	Commands() []Command
	// RemoveNode detaches the node from the document.
	RemoveNode() bool
	// HeaderText is the first line of the property sheet.
	HeaderText() string
}

// separated is implemented by variants that draw a separator overlay.
type separated interface {
	layoutSeparator(r *Region, selected, hover bool)
}

// Peer mirrors one card node on the design surface. It owns the overlay
// regions and the selection and hover state; the node itself belongs to the
// document.
type Peer struct {
	id       string
	designer *Designer
	variant  Variant

	selected  bool
	mouseOver bool

	main      *Region
	separator *Region

	sink Sink
}

func newPeer(d *Designer) *Peer {
	return &Peer{id: uuid.NewString(), designer: d}
}

func (p *Peer) ID() string { return p.id }

func (p *Peer) Designer() *Designer { return p.designer }

func (p *Peer) Variant() Variant { return p.variant }

func (p *Peer) Node() any { return p.variant.Node() }

func (p *Peer) BadgeText() string { return p.variant.BadgeText() }

func (p *Peer) ReferenceRenderedElement() *card.Rendered {
	return p.variant.ReferenceRenderedElement()
}

func (p *Peer) IsSelected() bool { return p.selected }

func (p *Peer) IsMouseOver() bool { return p.mouseOver }

// SetSelected flips the selected flag. Nothing happens when the value does
// not change.
func (p *Peer) SetSelected(v bool) {
	if v == p.selected {
		return
	}
	p.selected = v
	p.UpdateLayout()
	p.publish(Event{Type: EventSelectionChanged, Peer: p})
}

func (p *Peer) SetMouseOver(v bool) {
	if v == p.mouseOver {
		return
	}
	p.mouseOver = v
	p.UpdateLayout()
}

// Regions returns the overlay regions, main first. Empty before Render.
func (p *Peer) Regions() []*Region {
	var out []*Region
	if p.main != nil {
		out = append(out, p.main)
	}
	if p.separator != nil {
		out = append(out, p.separator)
	}
	return out
}

// Render rebuilds the overlay regions and lays them out.
func (p *Peer) Render() {
	p.main = &Region{PeerID: p.id, Role: RoleMain, Badge: p.BadgeText()}
	p.separator = nil
	if _, ok := p.variant.(separated); ok {
		p.separator = &Region{PeerID: p.id, Role: RoleSeparator}
	}
	p.UpdateLayout()
}

// UpdateLayout copies the rendered geometry of the node into the overlay
// regions. It does nothing before Render.
func (p *Peer) UpdateLayout() {
	if p.main == nil {
		return
	}
	ref := p.ReferenceRenderedElement()
	p.main.Bounds = geom.Rect{}
	p.main.Visible = ref != nil
	if ref != nil {
		p.main.Bounds = ref.Bounds
	}
	p.main.Selected = p.selected
	p.main.Hover = p.mouseOver
	if p.separator != nil {
		if ref != nil {
			p.separator.Bounds = ref.Separator
		} else {
			p.separator.Bounds = geom.Rect{}
		}
		p.separator.Selected = p.selected
		p.separator.Hover = p.mouseOver
		p.variant.(separated).layoutSeparator(p.separator, p.selected, p.mouseOver)
	}
}

// HitTest reports whether pt falls inside the visible main region.
func (p *Peer) HitTest(pt geom.Pt) bool {
	return p.main != nil && p.main.Visible && p.main.Bounds.Contains(pt)
}

func (p *Peer) Commands() []Command { return p.variant.Commands() }

// Command finds a command by name, ignoring case.
func (p *Peer) Command(name string) (Command, bool) {
	for _, c := range p.Commands() {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return Command{}, false
}

// Execute runs the named command and reports whether it exists.
func (p *Peer) Execute(name string) bool {
	c, ok := p.Command(name)
	if !ok {
		return false
	}
	p.designer.metricsOrNil().commandExecuted(c.Name)
	c.Execute()
	return true
}

func (p *Peer) AddPropertySheetEntries(s *sheet.Sheet) { p.variant.AddPropertySheetEntries(s) }

// BuildPropertySheet returns a fresh sheet for this peer. Edits made through
// it go straight to the node.
func (p *Peer) BuildPropertySheet() *sheet.Sheet {
	s := sheet.New()
	s.Header = p.variant.HeaderText()
	p.AddPropertySheetEntries(s)
	return s
}

// Remove detaches the node from the document. On success the overlay leaves
// the design surface and EventRemoved is published; on failure nothing
// changes.
func (p *Peer) Remove() bool {
	if !p.variant.RemoveNode() {
		p.designer.removalRefused(p)
		return false
	}
	p.designer.metricsOrNil().removal(true)
	p.detachRegions()
	p.publish(Event{Type: EventRemoved, Peer: p})
	return true
}

func (p *Peer) detachRegions() {
	if p.designer == nil || p.designer.overlays == nil {
		return
	}
	for _, r := range p.Regions() {
		p.designer.overlays.Detach(r)
	}
}

// changed tells the designer the node was mutated.
func (p *Peer) changed() {
	p.publish(Event{Type: EventChanged, Peer: p})
}

// newPeerCreated reports a child peer produced by one of this peer's
// commands.
func (p *Peer) newPeerCreated(child *Peer) {
	p.changed()
	p.publish(Event{Type: EventPeerCreated, Peer: p, Child: child})
}

func (p *Peer) bind(s Sink) { p.sink = s }

func (p *Peer) publish(ev Event) {
	if p.sink != nil {
		p.sink(ev)
	}
}
