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
	"slices"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"cardesigner/internal/card"
	applog "cardesigner/internal/log"
	"cardesigner/internal/render"
)

func TestElementRegistryDefaults(t *testing.T) {
	r := NewElementRegistry()
	tests := []struct {
		name string
		node card.Element
		want func(Variant) bool
	}{
		{"card", card.NewAdaptiveCard(), func(v Variant) bool { _, ok := v.(*CardPeer); return ok }},
		{"container", card.NewContainer(), func(v Variant) bool { _, ok := v.(*ContainerPeer); return ok }},
		{"column set", card.NewColumnSet(), func(v Variant) bool { _, ok := v.(*ColumnSetPeer); return ok }},
		{"column", card.NewColumn(), func(v Variant) bool { _, ok := v.(*ColumnPeer); return ok }},
		{"action set", card.NewActionSet(), func(v Variant) bool { _, ok := v.(*ActionSetPeer); return ok }},
		{"image", card.NewImage("u"), func(v Variant) bool { _, ok := v.(*ImagePeer); return ok }},
		{"text block", card.NewTextBlock("t"), func(v Variant) bool { _, ok := v.(*TextBlockPeer); return ok }},
		{"fact set", card.NewFactSet(), func(v Variant) bool { _, ok := v.(*ElementPeer); return ok }},
		{"input", card.NewTextInput(), func(v Variant) bool { _, ok := v.(*ElementPeer); return ok }},
		{"unknown", &card.Unknown{Type: "Media"}, func(v Variant) bool { _, ok := v.(*ElementPeer); return ok }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := r.CreatePeerInstance(nil, tt.node)
			if !tt.want(p.Variant()) {
				t.Fatalf("unexpected variant %T", p.Variant())
			}
			if p.Node() != any(tt.node) {
				t.Fatalf("peer wraps the wrong node")
			}
		})
	}
	if got := len(r.Kinds()); got != 7 {
		t.Fatalf("expected 7 default bindings, got %d", got)
	}
}

func TestUnregisterFallsBack(t *testing.T) {
	r := NewElementRegistry()
	r.UnregisterPeer(card.KindTextBlock)
	r.UnregisterPeer(card.KindTextBlock)
	p := r.CreatePeerInstance(nil, card.NewTextBlock("t"))
	if _, ok := p.Variant().(*ElementPeer); !ok {
		t.Fatalf("expected fallback *ElementPeer, got %T", p.Variant())
	}
	if slices.Contains(r.Kinds(), card.KindTextBlock) {
		t.Fatalf("kind still listed after unregister")
	}
}

func TestRegisterOverridesAndReset(t *testing.T) {
	r := NewElementRegistry()
	r.RegisterPeer(card.KindTextBlock, NewElementPeer)
	r.RegisterPeer(card.KindFactSet, ElementVariants["ContainerPeer"])
	if got := len(r.Kinds()); got != 8 {
		t.Fatalf("override must not add a kind, expected 8 got %d", got)
	}
	if _, ok := r.CreatePeerInstance(nil, card.NewTextBlock("t")).Variant().(*ElementPeer); !ok {
		t.Fatalf("override not applied")
	}
	// A binding for the wrong concrete type still yields a usable peer.
	if _, ok := r.CreatePeerInstance(nil, card.NewFactSet()).Variant().(*ElementPeer); !ok {
		t.Fatalf("mismatched binding must fall back")
	}
	r.Clear()
	if len(r.Kinds()) != 0 {
		t.Fatalf("Clear left bindings")
	}
	if _, ok := r.CreatePeerInstance(nil, card.NewAdaptiveCard()).Variant().(*ElementPeer); !ok {
		t.Fatalf("cleared registry must use the fallback")
	}
	r.Reset()
	if _, ok := r.CreatePeerInstance(nil, card.NewTextBlock("t")).Variant().(*TextBlockPeer); !ok {
		t.Fatalf("Reset did not restore defaults")
	}
}

func TestActionRegistryHasNoDefaults(t *testing.T) {
	r := NewActionRegistry()
	if len(r.Kinds()) != 0 {
		t.Fatalf("action registry should ship empty")
	}
	for _, a := range []card.Action{card.NewOpenURLAction("o"), card.NewShowCardAction("s"), card.NewHTTPAction("h"), card.NewSubmitAction("x")} {
		if _, ok := r.CreatePeerInstance(nil, a).Variant().(*ActionPeer); !ok {
			t.Fatalf("expected *ActionPeer for %s", a.TypeName())
		}
	}
}

type submitPeer struct {
	ActionPeer
}

func TestActionRegistryExtension(t *testing.T) {
	r := NewActionRegistry()
	r.RegisterPeer(card.ActionSubmit, func(d *Designer, a card.Action) *Peer {
		p := newPeer(d)
		p.variant = &submitPeer{ActionPeer{peer: p, action: a}}
		return p
	})
	if _, ok := r.CreatePeerInstance(nil, card.NewSubmitAction("s")).Variant().(*submitPeer); !ok {
		t.Fatalf("registered action peer not used")
	}
	if _, ok := r.CreatePeerInstance(nil, card.NewOpenURLAction("o")).Variant().(*ActionPeer); !ok {
		t.Fatalf("other actions must keep the fallback")
	}
}

func TestInjectedRegistryIsIsolated(t *testing.T) {
	own := NewElementRegistry()
	own.UnregisterPeer(card.KindTextBlock)
	d := New(&HostBuffer{}, &Layer{}, render.New(render.DefaultOptions()),
		WithLogger(applog.Nop()), WithElementRegistry(own))
	c := card.NewAdaptiveCard()
	tb := card.NewTextBlock("t")
	c.AddItem(tb)
	d.SetCard(c)

	if _, ok := d.PeerFor(tb).Variant().(*ElementPeer); !ok {
		t.Fatalf("designer ignored its injected registry")
	}
	if _, ok := ElementPeers.Lookup(card.KindTextBlock); !ok {
		t.Fatalf("shared registry was modified")
	}
}

func TestBindByName(t *testing.T) {
	r := NewElementRegistry()
	if err := Bind(r, map[string]string{"FactSet": "ElementPeer", "Image": "ElementPeer"}); err != nil {
		t.Fatalf("Bind error: %v", err)
	}
	if _, ok := r.CreatePeerInstance(nil, card.NewImage("u")).Variant().(*ElementPeer); !ok {
		t.Fatalf("Image binding not replaced")
	}
	if err := Bind(r, map[string]string{"Nope": "ElementPeer"}); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if err := Bind(r, map[string]string{"Image": "NopePeer"}); err == nil {
		t.Fatalf("expected error for unknown variant")
	}
	if err := Unbind(r, []string{"Container"}); err != nil {
		t.Fatalf("Unbind error: %v", err)
	}
	if _, ok := r.Lookup(card.KindContainer); ok {
		t.Fatalf("Container still bound")
	}
	if err := Unbind(r, []string{"Nope"}); err == nil {
		t.Fatalf("expected error for unknown type")
	}
}

func TestBindIsAllOrNothing(t *testing.T) {
	bad := map[string]string{
		"Column": "ElementPeer",
		"Image":  "NopePeer",
		"Zzz":    "ElementPeer",
	}
	for i := 0; i < 20; i++ {
		r := NewElementRegistry()
		err := Bind(r, bad)
		if err == nil || !strings.Contains(err.Error(), `"NopePeer"`) {
			t.Fatalf("run %d: expected the Image binding to fail first, got %v", i, err)
		}
		if _, ok := r.CreatePeerInstance(nil, card.NewColumn()).Variant().(*ColumnPeer); !ok {
			t.Fatalf("run %d: failed Bind left Column rebound", i)
		}
	}

	r := NewElementRegistry()
	if err := Unbind(r, []string{"TextBlock", "Nope"}); err == nil {
		t.Fatalf("expected error for unknown type")
	}
	if _, ok := r.Lookup(card.KindTextBlock); !ok {
		t.Fatalf("failed Unbind removed TextBlock")
	}
}

func TestMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics(reg)
	d, _, _ := newTestDesigner(WithMetrics(m))
	f := newFixture()
	d.SetCard(f.card)
	if got := testutil.ToFloat64(m.Renders); got != 1 {
		t.Fatalf("expected 1 render, got %v", got)
	}
	if got := testutil.ToFloat64(m.Peers); got != 4 {
		t.Fatalf("expected 4 live peers, got %v", got)
	}
	d.PeerFor(f.card).Execute("Remove")
	d.PeerFor(f.text).Execute("Remove")
	if got := testutil.ToFloat64(m.Commands.WithLabelValues("Remove")); got != 2 {
		t.Fatalf("expected 2 remove commands, got %v", got)
	}
	if got := testutil.ToFloat64(m.Removals.WithLabelValues("refused")); got != 1 {
		t.Fatalf("expected 1 refused removal, got %v", got)
	}
	if got := testutil.ToFloat64(m.Removals.WithLabelValues("removed")); got != 1 {
		t.Fatalf("expected 1 removal, got %v", got)
	}
	if got := testutil.ToFloat64(m.Peers); got != 3 {
		t.Fatalf("expected 3 live peers, got %v", got)
	}
}
