/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except
 * in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the
 *  specific language governing permissions and limitations under the License.
 */

// Package designer keeps a card document and its overlay peers in sync. The
// Designer owns the peers and the selection; every peer mirrors one element
// or action and reports back through a single event sink.
package designer

import (
	"log/slog"
	"slices"

	"cardesigner/internal/card"
	"cardesigner/internal/geom"
	applog "cardesigner/internal/log"
)

// Engine renders a card into markup and attaches rendered bounds to its
// nodes.
type Engine interface {
	Render(c *card.AdaptiveCard) (string, error)
}

// Option configures a Designer.
type Option func(*Designer)

// WithElementRegistry makes the designer resolve element peers through r
// instead of the shared ElementPeers.
func WithElementRegistry(r *ElementRegistry) Option { return func(d *Designer) { d.elements = r } }

// WithActionRegistry makes the designer resolve action peers through r
// instead of the shared ActionPeers.
func WithActionRegistry(r *ActionRegistry) Option { return func(d *Designer) { d.actions = r } }

func WithLogger(l *slog.Logger) Option { return func(d *Designer) { d.log = l } }

func WithMetrics(m *Metrics) Option { return func(d *Designer) { d.metrics = m } }

// Designer orchestrates rendering, peers and selection. It is not safe for
// concurrent use; hosts drive it from their UI thread.
type Designer struct {
	host     Surface
	overlays OverlaySurface
	engine   Engine

	elements *ElementRegistry
	actions  *ActionRegistry
	log      *slog.Logger
	metrics  *Metrics

	card     *card.AdaptiveCard
	peers    []*Peer
	selected *Peer

	onSelectedPeerChanged func(*Peer)
	listeners             []func(Event)
}

func New(host Surface, overlays OverlaySurface, engine Engine, opts ...Option) *Designer {
	d := &Designer{host: host, overlays: overlays, engine: engine}
	for _, o := range opts {
		o(d)
	}
	if d.log == nil {
		d.log = applog.WithComponent("designer")
	}
	return d
}

func (d *Designer) Card() *card.AdaptiveCard { return d.card }

// SetCard replaces the document. A different root triggers Render.
func (d *Designer) SetCard(c *card.AdaptiveCard) {
	if c == d.card {
		return
	}
	d.card = c
	d.Render()
}

// SelectedPeer returns the selected peer or nil.
func (d *Designer) SelectedPeer() *Peer { return d.selected }

// Peers returns the live peers in creation order.
func (d *Designer) Peers() []*Peer { return slices.Clone(d.peers) }

// OnSelectedPeerChanged sets the observer called once per selection change.
func (d *Designer) OnSelectedPeerChanged(fn func(*Peer)) { d.onSelectedPeerChanged = fn }

// AddListener registers fn to see every peer event after the designer has
// handled it.
func (d *Designer) AddListener(fn func(Event)) { d.listeners = append(d.listeners, fn) }

// Render discards every peer, renders the card and rebuilds the peers from
// the document tree.
func (d *Designer) Render() {
	if d.overlays != nil {
		d.overlays.Clear()
	}
	for _, p := range d.peers {
		p.bind(nil)
	}
	d.peers = nil
	d.setSelected(nil)
	d.renderCard()
	if d.card != nil {
		d.build(d.card)
	}
	d.metrics.livePeers(len(d.peers))
	d.log.Debug("designer rendered", slog.Int("peers", len(d.peers)))
}

// UpdateLayout refreshes the overlay geometry of every live peer.
func (d *Designer) UpdateLayout() {
	for _, p := range d.peers {
		p.UpdateLayout()
	}
}

// RemoveSelected removes the selected peer's node. It reports false when
// nothing is selected or the node refused removal.
func (d *Designer) RemoveSelected() bool {
	if d.selected == nil {
		return false
	}
	return d.selected.Remove()
}

// Select makes p the selected peer; nil clears the selection. Peers that
// are not live are ignored.
func (d *Designer) Select(p *Peer) {
	if p != nil && !slices.Contains(d.peers, p) {
		return
	}
	d.setSelected(p)
}

// PeerAt returns the topmost peer whose overlay contains pt.
func (d *Designer) PeerAt(pt geom.Pt) *Peer {
	for i := len(d.peers) - 1; i >= 0; i-- {
		if d.peers[i].HitTest(pt) {
			return d.peers[i]
		}
	}
	return nil
}

// Hover marks the peer under pt as hovered and clears the flag on all
// others. It returns the hovered peer.
func (d *Designer) Hover(pt geom.Pt) *Peer {
	target := d.PeerAt(pt)
	for _, p := range d.peers {
		p.SetMouseOver(p == target)
	}
	return target
}

// PeerFor returns the live peer wrapping node.
func (d *Designer) PeerFor(node any) *Peer {
	for _, p := range d.peers {
		if p.Node() == node {
			return p
		}
	}
	return nil
}

func (d *Designer) setSelected(p *Peer) {
	if p == d.selected {
		return
	}
	old := d.selected
	d.selected = p
	if old != nil {
		old.SetSelected(false)
	}
	if p != nil {
		p.SetSelected(true)
	}
	if d.onSelectedPeerChanged != nil {
		d.onSelectedPeerChanged(p)
	}
}

func (d *Designer) renderCard() {
	if d.host == nil {
		return
	}
	if d.card == nil || d.engine == nil {
		d.host.SetContent("")
		return
	}
	markup, err := d.engine.Render(d.card)
	if err != nil {
		d.log.Error("render card", slog.Any("error", err))
		d.host.SetContent("")
		return
	}
	d.host.SetContent(markup)
	d.metrics.rendered()
}

// build creates and wires the peers for e, its actions and its children,
// depth first.
func (d *Designer) build(e card.Element) {
	d.wire(d.elementRegistry().CreatePeerInstance(d, e))
	if h, ok := e.(card.ActionHolder); ok {
		for i := 0; i < h.ActionCount(); i++ {
			d.wire(d.actionRegistry().CreatePeerInstance(d, h.ActionAt(i)))
		}
	}
	if c, ok := e.(card.Branch); ok {
		for i := 0; i < c.ItemCount(); i++ {
			d.build(c.ItemAt(i))
		}
	}
}

func (d *Designer) wire(p *Peer) {
	d.peers = append(d.peers, p)
	p.bind(d.handle)
	p.Render()
	if d.overlays != nil {
		for _, r := range p.Regions() {
			d.overlays.Attach(r)
		}
	}
	d.log.Debug("peer created", applog.Peer(p.ID(), p.BadgeText()))
}

func (d *Designer) handle(ev Event) {
	switch ev.Type {
	case EventSelectionChanged:
		if !slices.Contains(d.peers, ev.Peer) {
			break
		}
		if ev.Peer.IsSelected() {
			d.setSelected(ev.Peer)
		} else if ev.Peer == d.selected {
			d.setSelected(nil)
		}
	case EventChanged:
		d.refresh()
	case EventRemoved:
		d.peerRemoved(ev.Peer)
	case EventPeerCreated:
		d.wire(ev.Child)
		d.metrics.livePeers(len(d.peers))
		d.setSelected(ev.Child)
	}
	for _, fn := range d.listeners {
		fn(ev)
	}
}

func (d *Designer) peerRemoved(p *Peer) {
	d.evict(p)
	if p == d.selected {
		d.setSelected(nil)
	}
	// Peers of the removed node's descendants go in the same step.
	for _, q := range d.Peers() {
		if d.attached(q.Node()) {
			continue
		}
		q.detachRegions()
		d.evict(q)
		if q == d.selected {
			d.setSelected(nil)
		}
	}
	d.metrics.livePeers(len(d.peers))
	d.refresh()
}

func (d *Designer) evict(p *Peer) {
	if i := slices.Index(d.peers, p); i >= 0 {
		d.peers = slices.Delete(d.peers, i, i+1)
	}
	p.bind(nil)
}

func (d *Designer) refresh() {
	d.renderCard()
	d.UpdateLayout()
}

// attached reports whether node still hangs below the current root.
func (d *Designer) attached(node any) bool {
	var e card.Element
	switch n := node.(type) {
	case card.Element:
		e = n
	case card.Action:
		e = n.Owner()
	}
	for e != nil {
		if root, ok := e.(*card.AdaptiveCard); ok && root == d.card {
			return true
		}
		e = e.Parent()
	}
	return false
}

func (d *Designer) removalRefused(p *Peer) {
	if d == nil {
		return
	}
	d.metrics.removal(false)
	d.log.Debug("removal refused", applog.Peer(p.ID(), p.BadgeText()))
}

func (d *Designer) metricsOrNil() *Metrics {
	if d == nil {
		return nil
	}
	return d.metrics
}

func (d *Designer) elementRegistry() *ElementRegistry {
	if d == nil || d.elements == nil {
		return ElementPeers
	}
	return d.elements
}

func (d *Designer) actionRegistry() *ActionRegistry {
	if d == nil || d.actions == nil {
		return ActionPeers
	}
	return d.actions
}
