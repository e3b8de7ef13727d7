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
	"fmt"
	"maps"
	"slices"
	"sync"

	"cardesigner/internal/card"
)

// Factory builds the peer for one node.
type Factory[N any] func(d *Designer, node N) *Peer

// Registry maps a node kind to the factory of its peer. Lookups are by exact
// kind; kinds without a binding get the fallback factory. Binding changes
// only affect peers created afterwards.
type Registry[K comparable, N any] struct {
	mu       sync.RWMutex
	kinds    []K
	bindings map[K]Factory[N]

	kindOf   func(N) K
	fallback Factory[N]
	defaults func(r *Registry[K, N])
}

// NewRegistry creates a registry and applies its default bindings.
func NewRegistry[K comparable, N any](kindOf func(N) K, fallback Factory[N], defaults func(r *Registry[K, N])) *Registry[K, N] {
	r := &Registry[K, N]{kindOf: kindOf, fallback: fallback, defaults: defaults}
	r.Reset()
	return r
}

// Reset drops every binding and restores the defaults.
func (r *Registry[K, N]) Reset() {
	r.Clear()
	if r.defaults != nil {
		r.defaults(r)
	}
}

// Clear drops every binding.
func (r *Registry[K, N]) Clear() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.kinds = nil
	r.bindings = make(map[K]Factory[N])
}

// RegisterPeer binds kind to f, replacing an existing binding.
func (r *Registry[K, N]) RegisterPeer(kind K, f Factory[N]) {
	if f == nil {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[kind]; !ok {
		r.kinds = append(r.kinds, kind)
	}
	r.bindings[kind] = f
}

// UnregisterPeer removes the binding for kind, if any.
func (r *Registry[K, N]) UnregisterPeer(kind K) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.bindings[kind]; !ok {
		return
	}
	delete(r.bindings, kind)
	if i := slices.Index(r.kinds, kind); i >= 0 {
		r.kinds = slices.Delete(r.kinds, i, i+1)
	}
}

// Lookup returns the factory bound to kind.
func (r *Registry[K, N]) Lookup(kind K) (Factory[N], bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.bindings[kind]
	return f, ok
}

// Kinds lists the bound kinds in registration order.
func (r *Registry[K, N]) Kinds() []K {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return slices.Clone(r.kinds)
}

// CreatePeerInstance builds the peer for node. It never fails: unbound kinds
// use the fallback factory.
func (r *Registry[K, N]) CreatePeerInstance(d *Designer, node N) *Peer {
	f, ok := r.Lookup(r.kindOf(node))
	if ok {
		if p := f(d, node); p != nil {
			return p
		}
	}
	return r.fallback(d, node)
}

// ElementRegistry resolves content element peers.
type ElementRegistry = Registry[card.Kind, card.Element]

// ActionRegistry resolves action peers.
type ActionRegistry = Registry[card.ActionKind, card.Action]

// Shared default registries used by designers that were not given their own.
var (
	ElementPeers *ElementRegistry
	ActionPeers  *ActionRegistry
)

func init() {
	ElementPeers = NewElementRegistry()
	ActionPeers = NewActionRegistry()
}

// ElementVariants maps variant names to element peer factories. Hosts use it
// to bind kinds by name, for example from configuration.
var ElementVariants = map[string]Factory[card.Element]{
	"CardPeer":      bindElement(NewCardPeer),
	"ContainerPeer": bindElement(NewContainerPeer),
	"ColumnSetPeer": bindElement(NewColumnSetPeer),
	"ColumnPeer":    bindElement(NewColumnPeer),
	"ActionSetPeer": bindElement(NewActionSetPeer),
	"ImagePeer":     bindElement(NewImagePeer),
	"TextBlockPeer": bindElement(NewTextBlockPeer),
	"ElementPeer":   NewElementPeer,
}

// NewElementRegistry returns a registry with the built-in element peers bound.
func NewElementRegistry() *ElementRegistry {
	return NewRegistry(card.Element.Kind, NewElementPeer, func(r *ElementRegistry) {
		r.RegisterPeer(card.KindContainer, bindElement(NewContainerPeer))
		r.RegisterPeer(card.KindAdaptiveCard, bindElement(NewCardPeer))
		r.RegisterPeer(card.KindTextBlock, bindElement(NewTextBlockPeer))
		r.RegisterPeer(card.KindImage, bindElement(NewImagePeer))
		r.RegisterPeer(card.KindActionSet, bindElement(NewActionSetPeer))
		r.RegisterPeer(card.KindColumnSet, bindElement(NewColumnSetPeer))
		r.RegisterPeer(card.KindColumn, bindElement(NewColumnPeer))
	})
}

// NewActionRegistry returns an action registry. It has no default bindings,
// so every action gets an ActionPeer until a host registers its own.
func NewActionRegistry() *ActionRegistry {
	return NewRegistry(card.Action.Kind, NewActionPeer, nil)
}

// bindElement adapts a typed constructor to the element registry. A node of
// the wrong concrete type gets the fallback peer.
func bindElement[T card.Element](build func(*Designer, T) *Peer) Factory[card.Element] {
	return func(d *Designer, e card.Element) *Peer {
		if v, ok := e.(T); ok {
			return build(d, v)
		}
		return NewElementPeer(d, e)
	}
}

// Bind applies name based bindings: every key is a card type name and every
// value an ElementVariants name. Bindings are checked in type name order and
// nothing is registered unless all of them resolve.
func Bind(r *ElementRegistry, bindings map[string]string) error {
	kinds := make([]card.Kind, 0, len(bindings))
	factories := make([]Factory[card.Element], 0, len(bindings))
	for _, typeName := range slices.Sorted(maps.Keys(bindings)) {
		kind := card.KindOf(typeName)
		if kind == card.KindUnknown {
			return fmt.Errorf("bind peer: unknown element type %q", typeName)
		}
		variant := bindings[typeName]
		f, ok := ElementVariants[variant]
		if !ok {
			return fmt.Errorf("bind peer: unknown variant %q for %s", variant, typeName)
		}
		kinds = append(kinds, kind)
		factories = append(factories, f)
	}
	for i, kind := range kinds {
		r.RegisterPeer(kind, factories[i])
	}
	return nil
}

// Unbind removes the bindings of the named card types. Nothing is removed
// when one of the names is unknown.
func Unbind(r *ElementRegistry, typeNames []string) error {
	kinds := make([]card.Kind, 0, len(typeNames))
	for _, typeName := range typeNames {
		kind := card.KindOf(typeName)
		if kind == card.KindUnknown {
			return fmt.Errorf("unbind peer: unknown element type %q", typeName)
		}
		kinds = append(kinds, kind)
	}
	for _, kind := range kinds {
		r.UnregisterPeer(kind)
	}
	return nil
}
